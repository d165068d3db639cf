package locate

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Candidate is one file found for a spoken target phrase.
// Score 100 is reserved for exact substring matches; fuzzy scores stay below it.
type Candidate struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Score int    `json:"score"`
}

const (
	fuzzyCutoff  = 35
	minNameLen   = 3
	perDirLimit  = 2
	globalTopN   = 5
	DefaultLimit = 5
)

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"__pycache__":  true,
	"vendor":       true,
}

// SupportedExt reports whether ext (with leading dot, any case) is a readable
// document type.
func SupportedExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".pdf", ".doc", ".docx", ".epub", ".txt":
		return true
	}
	return false
}

// Locator ranks on-disk files against a spoken target phrase.
type Locator struct{}

func NewLocator() *Locator {
	return &Locator{}
}

// Search walks rootDir and returns up to limit candidates ranked for target.
// Exact substring hits score 100 and keep walk order; if they alone fill the
// limit the fuzzy phase is skipped. Remaining slots are filled by token-set
// similarity, discarding names shorter than 3 runes or scoring 35 or less.
// The final list is always sorted by score descending before truncation.
func (l *Locator) Search(target, rootDir string, limit int) []Candidate {
	if limit <= 0 {
		limit = DefaultLimit
	}

	paths := collectDocuments(rootDir)
	if len(paths) == 0 {
		return nil
	}

	targetLower := strings.ToLower(strings.TrimSpace(target))

	results := make([]Candidate, 0, limit)
	seen := make(map[string]bool)

	// Phase 1: exact substring matches, walk order preserved.
	for _, p := range paths {
		base := filepath.Base(p)
		if targetLower != "" && strings.Contains(strings.ToLower(base), targetLower) {
			results = append(results, Candidate{Name: base, Path: p, Score: 100})
			seen[p] = true
		}
	}
	if len(results) >= limit {
		return results[:limit]
	}

	// Phase 2: fuzzy token-set ranking over everything else. We score up to
	// 3x the limit so post-filtering still leaves enough candidates.
	scored := make([]Candidate, 0, len(paths))
	for _, p := range paths {
		if seen[p] {
			continue
		}
		base := filepath.Base(p)
		scored = append(scored, Candidate{
			Name:  base,
			Path:  p,
			Score: fuzzy.TokenSetRatio(target, base),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > limit*3 {
		scored = scored[:limit*3]
	}

	for _, c := range scored {
		if len([]rune(c.Name)) < minNameLen {
			continue
		}
		if c.Score <= fuzzyCutoff || seen[c.Path] {
			continue
		}
		// Fuzzy scores must rank strictly below exact hits.
		if c.Score >= 100 {
			c.Score = 99
		}
		results = append(results, c)
		seen[c.Path] = true
		if len(results) >= limit {
			break
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// SearchAll runs Search over several roots with a small per-directory cap,
// merges everything, re-sorts globally by score and keeps the top five.
// Missing directories are skipped silently.
func (l *Locator) SearchAll(target string, roots []string) []Candidate {
	var merged []Candidate
	for _, dir := range roots {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		merged = append(merged, l.Search(target, dir, perDirLimit)...)
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score > merged[j].Score })
	if len(merged) > globalTopN {
		merged = merged[:globalTopN]
	}
	return merged
}

// ListDir returns the supported documents directly inside dir (no recursion),
// newest first. Used for the study-desk folder listing.
func (l *Locator) ListDir(dir string) []Candidate {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	type fileInfo struct {
		cand    Candidate
		modTime int64
	}
	var found []fileInfo
	for _, e := range entries {
		if e.IsDir() || !SupportedExt(filepath.Ext(e.Name())) {
			continue
		}
		var mod int64
		if info, err := e.Info(); err == nil {
			mod = info.ModTime().UnixNano()
		}
		found = append(found, fileInfo{
			cand:    Candidate{Name: e.Name(), Path: filepath.Join(dir, e.Name()), Score: 100},
			modTime: mod,
		})
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].modTime > found[j].modTime })

	out := make([]Candidate, 0, len(found))
	for _, f := range found {
		out = append(out, f.cand)
	}
	return out
}

// collectDocuments walks root and gathers supported document paths, skipping
// hidden directories and well-known junk directories. Unreadable directories
// are skipped, never fatal.
func collectDocuments(root string) []string {
	var paths []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if SupportedExt(filepath.Ext(d.Name())) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths
}
