package locate

import (
	"os"
	"path/filepath"
)

// Finder binds the locator to the directories a desktop user actually keeps
// documents in: the dedicated study folder plus the well-known home folders.
type Finder struct {
	locator  *Locator
	studyDir string
	roots    []string
}

func NewFinder(studyDir string) *Finder {
	roots := []string{studyDir}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots,
			filepath.Join(home, "Documents"),
			filepath.Join(home, "Downloads"),
			filepath.Join(home, "Desktop"),
		)
	}
	return &Finder{
		locator:  NewLocator(),
		studyDir: studyDir,
		roots:    roots,
	}
}

// SearchDocuments ranks files across all known directories for a spoken
// target phrase.
func (f *Finder) SearchDocuments(target string) []Candidate {
	return f.locator.SearchAll(target, f.roots)
}

// ListStudyFolder lists the study folder contents, newest first.
func (f *Finder) ListStudyFolder() []Candidate {
	return f.locator.ListDir(f.studyDir)
}
