package command

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"voiceread-be/pkg/bookmark"
	"voiceread-be/pkg/locate"
)

type fakeDoc struct {
	pages    int
	cur      int
	loaded   []string
	failLoad bool
}

func (d *fakeDoc) PageCount() int      { return d.pages }
func (d *fakeDoc) CurrentPage() int    { return d.cur }
func (d *fakeDoc) CurrentLabel() string {
	return fmt.Sprintf("Page %d", d.cur+1)
}
func (d *fakeDoc) CurrentText() string {
	return fmt.Sprintf("text of page %d", d.cur+1)
}
func (d *fakeDoc) Title() string   { return "fake.pdf" }
func (d *fakeDoc) DocType() string { return "PDF" }

func (d *fakeDoc) Next() bool {
	if d.cur < d.pages-1 {
		d.cur++
		return true
	}
	return false
}

func (d *fakeDoc) Prev() bool {
	if d.cur > 0 {
		d.cur--
		return true
	}
	return false
}

func (d *fakeDoc) GoTo(index int) bool {
	if index >= 0 && index < d.pages {
		d.cur = index
		return true
	}
	return false
}

func (d *fakeDoc) Load(path string) error {
	if d.failLoad {
		return errors.New("load failed")
	}
	d.loaded = append(d.loaded, path)
	d.pages = 10
	d.cur = 0
	return nil
}

type fakeFinder struct {
	search []locate.Candidate
	study  []locate.Candidate
}

func (f *fakeFinder) SearchDocuments(target string) []locate.Candidate { return f.search }
func (f *fakeFinder) ListStudyFolder() []locate.Candidate              { return f.study }

type fakeMarks struct {
	doc     string
	entries []bookmark.Entry
}

func (m *fakeMarks) SetDocument(path string) { m.doc = path }
func (m *fakeMarks) Add(page int, label, note string) bool {
	m.entries = append(m.entries, bookmark.Entry{Page: page, Label: label, Note: note})
	return true
}
func (m *fakeMarks) List() []bookmark.Entry { return m.entries }
func (m *fakeMarks) Last() (bookmark.Entry, bool) {
	if len(m.entries) == 0 {
		return bookmark.Entry{}, false
	}
	return m.entries[len(m.entries)-1], true
}

func newTestInterpreter(doc *fakeDoc, finder *fakeFinder, marks *fakeMarks) *Interpreter {
	if doc == nil {
		doc = &fakeDoc{pages: 10}
	}
	if finder == nil {
		finder = &fakeFinder{}
	}
	if marks == nil {
		marks = &fakeMarks{}
	}
	return NewInterpreter(doc, finder, marks)
}

func TestInterpretBasicIntents(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantAction string
	}{
		{name: "stop", text: "stop", wantAction: ActionStop},
		{name: "stop inside phrase", text: "please be quiet", wantAction: ActionStop},
		{name: "browse", text: "open other file", wantAction: ActionOpenFileDialog},
		{name: "read", text: "read document", wantAction: ActionRead},
		{name: "help", text: "help", wantAction: ActionSpeak},
		{name: "summary", text: "summarize this for me", wantAction: ActionStreamSummary},
		{name: "unrecognized single word", text: "banana", wantAction: ActionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := newTestInterpreter(nil, nil, nil)
			got := it.Interpret(tt.text, NewSession(""), true)
			if got.Action != tt.wantAction {
				t.Errorf("Interpret(%q).Action = %q, want %q", tt.text, got.Action, tt.wantAction)
			}
		})
	}
}

func TestInterpretGotoPage(t *testing.T) {
	doc := &fakeDoc{pages: 10}
	it := newTestInterpreter(doc, nil, nil)

	got := it.Interpret("go to page 3", NewSession(""), true)

	if got.Action != ActionNavigate {
		t.Fatalf("Action = %q, want %q", got.Action, ActionNavigate)
	}
	if doc.cur != 2 {
		t.Errorf("current page = %d, want 2 (0-indexed)", doc.cur)
	}
	if got.Page == nil || *got.Page != 2 {
		t.Errorf("Page field = %v, want 2", got.Page)
	}
	if got.Label != "Page 3" {
		t.Errorf("Label = %q, want %q", got.Label, "Page 3")
	}
	if got.Text == "" {
		t.Error("Text should carry the page text")
	}
}

func TestInterpretNavigation(t *testing.T) {
	doc := &fakeDoc{pages: 3}
	it := newTestInterpreter(doc, nil, nil)
	sess := NewSession("")

	it.Interpret("next page", sess, true)
	if doc.cur != 1 {
		t.Fatalf("after next page cur = %d, want 1", doc.cur)
	}

	it.Interpret("last page", sess, true)
	if doc.cur != 2 {
		t.Fatalf("after last page cur = %d, want 2", doc.cur)
	}

	// Clamped at the end.
	it.Interpret("next page", sess, true)
	if doc.cur != 2 {
		t.Fatalf("after next page at end cur = %d, want 2", doc.cur)
	}

	it.Interpret("first page", sess, true)
	if doc.cur != 0 {
		t.Fatalf("after first page cur = %d, want 0", doc.cur)
	}

	it.Interpret("previous page", sess, true)
	if doc.cur != 0 {
		t.Fatalf("after previous page at start cur = %d, want 0", doc.cur)
	}
}

func TestInterpretNoDocumentGate(t *testing.T) {
	doc := &fakeDoc{pages: 0}
	it := newTestInterpreter(doc, nil, nil)

	got := it.Interpret("read document", NewSession(""), true)

	if got.Action != ActionError {
		t.Fatalf("Action = %q, want %q", got.Action, ActionError)
	}
	if got.Message != "No document loaded." {
		t.Errorf("Message = %q", got.Message)
	}
}

func TestInterpretAsk(t *testing.T) {
	it := newTestInterpreter(nil, nil, nil)

	got := it.Interpret("what does photosynthesis mean", NewSession(""), true)
	if got.Action != ActionStreamAnswer {
		t.Fatalf("Action = %q, want %q", got.Action, ActionStreamAnswer)
	}
	if got.Question != "what does photosynthesis mean" {
		t.Errorf("Question = %q", got.Question)
	}

	got = it.Interpret("what does photosynthesis mean", NewSession(""), false)
	if got.Action != ActionError {
		t.Fatalf("without AI, Action = %q, want %q", got.Action, ActionError)
	}
}

func TestInterpretBookmarks(t *testing.T) {
	doc := &fakeDoc{pages: 10, cur: 4}
	marks := &fakeMarks{}
	it := newTestInterpreter(doc, nil, marks)
	sess := NewSession("")

	got := it.Interpret("bookmark this page", sess, true)
	if got.Action != ActionBookmark {
		t.Fatalf("Action = %q, want %q", got.Action, ActionBookmark)
	}
	if len(marks.entries) != 1 || marks.entries[0].Page != 4 {
		t.Fatalf("entries = %+v, want one entry at page 4", marks.entries)
	}

	// "go to bookmark" contains "mark"; it must not be swallowed by add.
	doc.cur = 0
	got = it.Interpret("go to bookmark", sess, true)
	if got.Action != ActionNavigate {
		t.Fatalf("Action = %q, want %q", got.Action, ActionNavigate)
	}
	if doc.cur != 4 {
		t.Errorf("cur = %d, want 4", doc.cur)
	}
	if len(marks.entries) != 1 {
		t.Errorf("goto must not add a bookmark, entries = %d", len(marks.entries))
	}
}

func TestInterpretBookmarkGotoEmpty(t *testing.T) {
	it := newTestInterpreter(&fakeDoc{pages: 10}, nil, &fakeMarks{})

	got := it.Interpret("go to bookmark", NewSession(""), true)
	if got.Action != ActionError {
		t.Fatalf("Action = %q, want %q", got.Action, ActionError)
	}
}

func TestGlobalSearchOpensSession(t *testing.T) {
	finder := &fakeFinder{search: []locate.Candidate{
		{Name: "presentaton_guide.pdf", Path: "/docs/presentaton_guide.pdf", Score: 86},
	}}
	it := newTestInterpreter(nil, finder, nil)
	sess := NewSession("")

	got := it.Interpret("search for presentation guide", sess, true)

	if got.Action != ActionSpeak {
		t.Fatalf("Action = %q, want %q", got.Action, ActionSpeak)
	}
	if !sess.Awaiting {
		t.Fatal("session should be awaiting selection")
	}
	if len(sess.Candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(sess.Candidates))
	}
	if !strings.Contains(got.TTSText, "1: presentaton_guide.") {
		t.Errorf("spoken listing should number the candidate as 1, got %q", got.TTSText)
	}
}

func TestGlobalSearchNoMatches(t *testing.T) {
	it := newTestInterpreter(nil, &fakeFinder{}, nil)
	sess := NewSession("")

	got := it.Interpret("search for nonexistent thing", sess, true)

	if got.Action != ActionSpeak {
		t.Fatalf("Action = %q, want %q", got.Action, ActionSpeak)
	}
	if sess.Awaiting {
		t.Error("session must stay idle when nothing matched")
	}
}

func TestOpenFileListsStudyFolder(t *testing.T) {
	finder := &fakeFinder{study: []locate.Candidate{
		{Name: "alpha.pdf", Path: "/desk/alpha.pdf", Score: 100},
		{Name: "beta.txt", Path: "/desk/beta.txt", Score: 100},
	}}
	it := newTestInterpreter(nil, finder, nil)
	sess := NewSession("")

	got := it.Interpret("open file", sess, true)

	if !sess.Awaiting {
		t.Fatal("session should be awaiting selection")
	}
	if !strings.Contains(got.TTSText, "I found 2 files") {
		t.Errorf("TTSText = %q", got.TTSText)
	}
}

func TestExtractTarget(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"search for biology notes", "biology notes"},
		{"find my budget report", "budget report"},
		{"can you look for the file called thesis", "thesis"},
		{"locate", "locate"},
	}
	for _, tt := range tests {
		if got := extractTarget(tt.text); got != tt.want {
			t.Errorf("extractTarget(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
