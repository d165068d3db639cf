package bookmark

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one saved reading position inside a document.
type Entry struct {
	Page  int    `json:"page"`
	Label string `json:"label"`
	Note  string `json:"note"`
}

// Manager keeps per-document bookmark lists, persisted as one JSON file per
// document under the data directory.
type Manager struct {
	dataDir     string
	bookmarks   map[string][]Entry
	currentFile string
}

func NewManager(dataDir string) *Manager {
	_ = os.MkdirAll(dataDir, 0o755)
	return &Manager{
		dataDir:   dataDir,
		bookmarks: make(map[string][]Entry),
	}
}

// SetDocument switches the active document and loads its persisted bookmarks.
func (m *Manager) SetDocument(filePath string) {
	m.currentFile = filePath
	m.load(filePath)
}

// Add saves a bookmark for the active document. Bookmarking an already
// bookmarked page updates its label and note instead of duplicating it.
func (m *Manager) Add(page int, label, note string) bool {
	if m.currentFile == "" {
		return false
	}
	list := m.bookmarks[m.currentFile]
	for i := range list {
		if list[i].Page == page {
			list[i].Label = label
			list[i].Note = note
			m.bookmarks[m.currentFile] = list
			m.save()
			return true
		}
	}
	m.bookmarks[m.currentFile] = append(list, Entry{Page: page, Label: label, Note: note})
	m.save()
	return true
}

// Remove deletes the bookmark for page, reporting whether one existed.
func (m *Manager) Remove(page int) bool {
	if m.currentFile == "" {
		return false
	}
	list := m.bookmarks[m.currentFile]
	kept := list[:0]
	for _, b := range list {
		if b.Page != page {
			kept = append(kept, b)
		}
	}
	removed := len(kept) < len(list)
	m.bookmarks[m.currentFile] = kept
	if removed {
		m.save()
	}
	return removed
}

// List returns the bookmarks of the active document, oldest first.
func (m *Manager) List() []Entry {
	list := m.bookmarks[m.currentFile]
	out := make([]Entry, len(list))
	copy(out, list)
	return out
}

// Last returns the most recently added bookmark, if any.
func (m *Manager) Last() (Entry, bool) {
	list := m.bookmarks[m.currentFile]
	if len(list) == 0 {
		return Entry{}, false
	}
	return list[len(list)-1], true
}

func (m *Manager) IsBookmarked(page int) bool {
	for _, b := range m.bookmarks[m.currentFile] {
		if b.Page == page {
			return true
		}
	}
	return false
}

func (m *Manager) storePath(filePath string) string {
	safe := filepath.Base(filePath)
	safe = strings.ReplaceAll(safe, " ", "_")
	safe = strings.ReplaceAll(safe, ".", "_")
	return filepath.Join(m.dataDir, safe+"_bookmarks.json")
}

func (m *Manager) save() {
	if m.currentFile == "" {
		return
	}
	data, err := json.MarshalIndent(m.bookmarks[m.currentFile], "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(m.storePath(m.currentFile), data, 0o644)
}

func (m *Manager) load(filePath string) {
	raw, err := os.ReadFile(m.storePath(filePath))
	if err != nil {
		m.bookmarks[filePath] = []Entry{}
		return
	}
	var list []Entry
	if err := json.Unmarshal(raw, &list); err != nil {
		m.bookmarks[filePath] = []Entry{}
		return
	}
	m.bookmarks[filePath] = list
}
