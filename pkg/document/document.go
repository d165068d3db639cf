package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Page is one pre-parsed unit of a loaded document: a PDF page or a text
// section. Index is the position in the page sequence.
type Page struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// SearchResult is one in-document substring hit with surrounding context.
type SearchResult struct {
	Page    int    `json:"page"`
	Label   string `json:"label"`
	Snippet string `json:"snippet"`
}

const (
	maxFullTextChars = 50000

	snippetBefore = 60
	snippetAfter  = 120
)

// Store holds the currently loaded document as a page sequence with a cursor.
// One store per process; callers never parse file formats themselves.
type Store struct {
	pages    []Page
	current  int
	filePath string
	docType  string
	title    string
}

func NewStore() *Store {
	return &Store{title: "Untitled Document"}
}

// Load replaces the current document with the file at path.
// Supported types: .pdf and .txt. The cursor resets to the first page.
func (s *Store) Load(path string) error {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		pages   []Page
		docType string
		err     error
	)
	switch ext {
	case ".pdf":
		pages, err = loadPDF(path)
		docType = "PDF"
	case ".txt":
		pages, err = loadTxt(path)
		docType = "TXT"
	default:
		return fmt.Errorf("unsupported file type: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	if len(pages) == 0 {
		return errors.New("document has no readable text")
	}

	s.pages = pages
	s.current = 0
	s.filePath = path
	s.docType = docType
	s.title = filepath.Base(path)
	return nil
}

// Unload discards the current document and resets the cursor.
func (s *Store) Unload() {
	s.pages = nil
	s.current = 0
	s.filePath = ""
	s.docType = ""
	s.title = "Untitled Document"
}

func (s *Store) PageCount() int   { return len(s.pages) }
func (s *Store) CurrentPage() int { return s.current }
func (s *Store) FilePath() string { return s.filePath }
func (s *Store) DocType() string  { return s.docType }
func (s *Store) Title() string    { return s.title }

// Pages returns a copy of the page sequence.
func (s *Store) Pages() []Page {
	out := make([]Page, len(s.pages))
	copy(out, s.pages)
	return out
}

func (s *Store) PageText(index int) string {
	if index < 0 || index >= len(s.pages) {
		return ""
	}
	return s.pages[index].Text
}

func (s *Store) PageLabel(index int) string {
	if index < 0 || index >= len(s.pages) {
		return ""
	}
	return s.pages[index].Label
}

func (s *Store) CurrentText() string {
	return s.PageText(s.current)
}

func (s *Store) CurrentLabel() string {
	if s.current < 0 || s.current >= len(s.pages) {
		return "Unknown"
	}
	return s.pages[s.current].Label
}

func (s *Store) Next() bool {
	if s.current < len(s.pages)-1 {
		s.current++
		return true
	}
	return false
}

func (s *Store) Prev() bool {
	if s.current > 0 {
		s.current--
		return true
	}
	return false
}

func (s *Store) GoTo(index int) bool {
	if index >= 0 && index < len(s.pages) {
		s.current = index
		return true
	}
	return false
}

// FullText returns all pages joined by blank lines, truncated to maxChars.
// maxChars <= 0 applies the default 50k cap.
func (s *Store) FullText(maxChars int) string {
	if maxChars <= 0 {
		maxChars = maxFullTextChars
	}
	parts := make([]string, len(s.pages))
	for i, p := range s.pages {
		parts[i] = p.Text
	}
	combined := strings.Join(parts, "\n\n")
	if len(combined) > maxChars {
		return combined[:maxChars]
	}
	return combined
}

// ChapterText returns the text of a single page, 1-indexed. Out-of-range
// chapters return an empty string.
func (s *Store) ChapterText(chapter int) string {
	return s.PageText(chapter - 1)
}

// Search finds case-insensitive substring matches of query across all pages,
// one snippet per matching page.
func (s *Store) Search(query string) []SearchResult {
	q := strings.ToLower(query)
	results := []SearchResult{}
	if q == "" {
		return results
	}
	for _, p := range s.pages {
		pos := strings.Index(strings.ToLower(p.Text), q)
		if pos < 0 {
			continue
		}
		start := pos - snippetBefore
		if start < 0 {
			start = 0
		}
		end := pos + snippetAfter
		if end > len(p.Text) {
			end = len(p.Text)
		}
		results = append(results, SearchResult{
			Page:    p.Index,
			Label:   p.Label,
			Snippet: p.Text[start:end],
		})
	}
	return results
}
