package command

import (
	"fmt"
	"path/filepath"
	"strings"

	"voiceread-be/pkg/bookmark"
	"voiceread-be/pkg/locate"
)

// DocumentSource is the pre-parsed page sequence the interpreter navigates.
// It never parses file formats itself.
type DocumentSource interface {
	PageCount() int
	CurrentPage() int
	CurrentLabel() string
	CurrentText() string
	Title() string
	DocType() string
	Next() bool
	Prev() bool
	GoTo(index int) bool
	Load(path string) error
}

// FileFinder supplies file candidates for the two search intents.
type FileFinder interface {
	// SearchDocuments ranks files across the well-known user directories.
	SearchDocuments(target string) []locate.Candidate
	// ListStudyFolder lists the dedicated documents folder, newest first.
	ListStudyFolder() []locate.Candidate
}

// BookmarkStore persists reading positions per document.
type BookmarkStore interface {
	SetDocument(path string)
	Add(page int, label, note string) bool
	List() []bookmark.Entry
	Last() (bookmark.Entry, bool)
}

// Keyword sets, matched as case-insensitive substrings of the normalized
// utterance. No stemming.
var (
	browsePhrases = []string{"open other file", "browse computer", "browse folders",
		"open different file", "open another file", "another file"}
	stopPhrases      = []string{"stop", "pause", "quiet"}
	cancelPhrases    = []string{"cancel", "nevermind"}
	nextPhrases      = []string{"next", "more", "continue"}
	prevPhrases      = []string{"previous", "back", "go back"}
	searchPhrases    = []string{"search for", "find my", "look for", "locate"}
	repeatPhrases    = []string{"repeat", "say that again", "what were the options", "repeat names"}
	openFilePhrases  = []string{"open file", "upload document", "upload file", "open document"}
	readPhrases      = []string{"read document", "read page", "read this", "start reading"}
	prevPagePhrases  = []string{"previous page", "prev page", "go back"}
	gotoPhrases      = []string{"go to page", "jump to page"}
	bookmarkGotoWord = []string{"go to bookmark", "my bookmark"}
	bookmarkAddWord  = []string{"add", "save", "mark", "this"}
)

const helpMessage = "Commands: open file, read document, summarize, brief summary, " +
	"detailed summary, next page, previous page, go to page N, bookmark this, " +
	"go to bookmark, ask your question, stop."

// rule is one ordered intent rule: the first rule whose match fires consumes
// the utterance. Keeping the chain as a table makes the priority order
// auditable and each handler testable on its own.
type rule struct {
	name  string
	match func(in *input) bool
	run   func(in *input) Action
}

type input struct {
	text    string
	sess    *Session
	aiReady bool
}

// Interpreter classifies a normalized utterance into an Action via ordered
// intent rules, mutating only the selection session. Document and bookmark
// mutations go through the injected collaborators.
type Interpreter struct {
	docs  DocumentSource
	files FileFinder
	marks BookmarkStore
	rules []rule
}

func NewInterpreter(docs DocumentSource, files FileFinder, marks BookmarkStore) *Interpreter {
	it := &Interpreter{docs: docs, files: files, marks: marks}
	it.rules = []rule{
		{name: "browse_computer", match: matchAny(browsePhrases), run: it.browseComputer},
		{name: "stop", match: matchAny(stopPhrases), run: it.stop},
		{name: "file_selection", match: func(in *input) bool { return in.sess.Awaiting }, run: it.handleSelection},
		{name: "global_search", match: matchAny(searchPhrases), run: it.globalSearch},
		// Normally claimed by file_selection above; kept so a repeat request
		// with a stale session flag still answers instead of falling through.
		{name: "repeat_listing", match: func(in *input) bool {
			return in.sess.Awaiting && containsAny(in.text, repeatPhrases)
		}, run: it.repeatListing},
		{name: "open_file", match: matchAny(openFilePhrases), run: it.openFile},
		{name: "no_document", match: func(in *input) bool { return it.docs.PageCount() == 0 }, run: it.noDocument},
		{name: "read", match: matchAny(readPhrases), run: it.read},
		{name: "next_page", match: func(in *input) bool {
			return strings.Contains(in.text, "next page") || in.text == "next" || strings.Contains(in.text, "forward")
		}, run: it.nextPage},
		{name: "previous_page", match: matchAny(prevPagePhrases), run: it.prevPage},
		{name: "goto_page", match: matchAny(gotoPhrases), run: it.gotoPage},
		{name: "first_page", match: matchAny([]string{"first page", "beginning"}), run: it.firstPage},
		{name: "last_page", match: matchAny([]string{"last page", "end of"}), run: it.lastPage},
		{name: "summary_short", match: matchAny([]string{"short summary", "brief summary"}), run: it.summary("short")},
		{name: "summary_detailed", match: matchAny([]string{"detailed summary", "long summary"}), run: it.summary("detailed")},
		{name: "summary", match: matchAny([]string{"summarize", "summary"}), run: it.summary("medium")},
		// Goto must outrank add: "mark" is a substring of "bookmark", so the
		// add keywords would otherwise swallow "go to bookmark".
		{name: "bookmark_goto", match: matchAny(bookmarkGotoWord), run: it.bookmarkGoto},
		{name: "bookmark_add", match: func(in *input) bool {
			return strings.Contains(in.text, "bookmark") && containsAny(in.text, bookmarkAddWord)
		}, run: it.bookmarkAdd},
		{name: "help", match: matchAny([]string{"help"}), run: it.help},
		{name: "ask", match: func(in *input) bool { return len(strings.Fields(in.text)) >= 2 }, run: it.ask},
	}
	return it
}

// Interpret classifies one utterance. aiReady gates the question fallback.
func (it *Interpreter) Interpret(text string, sess *Session, aiReady bool) Action {
	in := &input{
		text:    strings.ToLower(strings.TrimSpace(text)),
		sess:    sess,
		aiReady: aiReady,
	}
	for _, r := range it.rules {
		if r.match(in) {
			return r.run(in)
		}
	}
	return Action{Action: ActionError, Message: fmt.Sprintf("Command not recognized: %s", in.text)}
}

func matchAny(phrases []string) func(in *input) bool {
	return func(in *input) bool { return containsAny(in.text, phrases) }
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// pageState attaches the current page cursor to an action.
func (it *Interpreter) pageState(a Action) Action {
	page := it.docs.CurrentPage()
	total := it.docs.PageCount()
	a.Page = &page
	a.Total = &total
	a.Label = it.docs.CurrentLabel()
	a.Text = it.docs.CurrentText()
	return a
}

// ── handlers ──

func (it *Interpreter) browseComputer(in *input) Action {
	in.sess.Close()
	return Action{
		Action:  ActionOpenFileDialog,
		Message: "Opening computer file browser...",
		TTSText: "Opening your computer's file browser. Please use your screen reader to select a file.",
	}
}

func (it *Interpreter) stop(in *input) Action {
	in.sess.Close()
	return Action{Action: ActionStop, Message: "Stopped."}
}

func (it *Interpreter) globalSearch(in *input) Action {
	target := extractTarget(in.text)
	matches := it.files.SearchDocuments(target)
	if len(matches) == 0 {
		return Action{
			Action:  ActionSpeak,
			Message: fmt.Sprintf("No files found matching '%s'.", target),
			TTSText: fmt.Sprintf("I couldn't find any documents matching %s.", target),
		}
	}

	in.sess.Open(matches)

	tts := []string{fmt.Sprintf("I found %d matches for %s.", len(matches), target)}
	tts = append(tts, spokenListing(matches, 0)...)
	tts = append(tts, "Which one would you like to open? Say the number, or say 'repeat names'.")
	return Action{
		Action:  ActionSpeak,
		Message: fmt.Sprintf("Found matching files. Say a number (1-%d) to select.", len(matches)),
		TTSText: strings.Join(tts, " "),
	}
}

func (it *Interpreter) repeatListing(in *input) Action {
	tts := []string{"Here are the options again."}
	tts = append(tts, spokenListing(in.sess.Window(), in.sess.Offset)...)
	tts = append(tts, "Say the number or name to open.")
	return Action{Action: ActionSpeak, Message: "Repeating options...", TTSText: strings.Join(tts, " ")}
}

func (it *Interpreter) openFile(in *input) Action {
	found := it.files.ListStudyFolder()
	if len(found) == 0 {
		return Action{
			Action:  ActionSpeak,
			Message: "No documents found in the documents folder. Say 'open other file' to browse your computer.",
			TTSText: "I could not find any documents on your study desk. Say 'open other file' to browse your computer.",
		}
	}

	in.sess.Open(found)

	tts := []string{fmt.Sprintf("I found %d files on your study desk.", len(found))}
	tts = append(tts, spokenListing(in.sess.Window(), 0)...)
	if len(found) > selectionWindow {
		tts = append(tts, "Say the number, the name, say 'next', or say 'open other file' to browse your computer.")
	} else {
		tts = append(tts, "Which one would you like to open? Say the number, the name, or say 'open other file' to browse your computer.")
	}
	return Action{
		Action:  ActionSpeak,
		Message: fmt.Sprintf("Listening for file selection (1-%d)...", len(found)),
		TTSText: strings.Join(tts, " "),
	}
}

func (it *Interpreter) noDocument(in *input) Action {
	return Action{Action: ActionError, Message: "No document loaded."}
}

func (it *Interpreter) read(in *input) Action {
	return it.pageState(Action{
		Action:  ActionRead,
		TTSText: it.docs.CurrentLabel() + ". " + it.docs.CurrentText(),
	})
}

func (it *Interpreter) nextPage(in *input) Action {
	it.docs.Next()
	return it.pageState(Action{Action: ActionNavigate, Message: it.docs.CurrentLabel()})
}

func (it *Interpreter) prevPage(in *input) Action {
	it.docs.Prev()
	return it.pageState(Action{Action: ActionNavigate, Message: it.docs.CurrentLabel()})
}

func (it *Interpreter) gotoPage(in *input) Action {
	if n, ok := numberFrom(in.text); ok {
		it.docs.GoTo(n - 1)
	}
	return it.pageState(Action{Action: ActionNavigate, Message: it.docs.CurrentLabel()})
}

func (it *Interpreter) firstPage(in *input) Action {
	it.docs.GoTo(0)
	return it.pageState(Action{Action: ActionNavigate})
}

func (it *Interpreter) lastPage(in *input) Action {
	it.docs.GoTo(it.docs.PageCount() - 1)
	return it.pageState(Action{Action: ActionNavigate})
}

func (it *Interpreter) summary(length string) func(in *input) Action {
	return func(in *input) Action {
		return it.pageState(Action{Action: ActionStreamSummary, Length: length})
	}
}

func (it *Interpreter) bookmarkAdd(in *input) Action {
	label := it.docs.CurrentLabel()
	it.marks.Add(it.docs.CurrentPage(), label, "")
	return Action{
		Action:    ActionBookmark,
		Message:   fmt.Sprintf("Bookmarked: %s", label),
		Bookmarks: it.marks.List(),
	}
}

func (it *Interpreter) bookmarkGoto(in *input) Action {
	last, ok := it.marks.Last()
	if !ok {
		return Action{Action: ActionError, Message: "No bookmarks saved."}
	}
	it.docs.GoTo(last.Page)
	return it.pageState(Action{Action: ActionNavigate, Message: last.Label})
}

func (it *Interpreter) help(in *input) Action {
	return Action{Action: ActionSpeak, Message: helpMessage}
}

func (it *Interpreter) ask(in *input) Action {
	if !in.aiReady {
		return Action{Action: ActionError, Message: "AI assistant not configured."}
	}
	return it.pageState(Action{Action: ActionStreamAnswer, Question: in.text})
}

// ── helpers ──

// spokenListing renders candidates as numbered spoken items, extension
// stripped, numbering continued from offset.
func spokenListing(cands []locate.Candidate, offset int) []string {
	parts := make([]string, 0, len(cands))
	for i, c := range cands {
		parts = append(parts, fmt.Sprintf("%d: %s.", offset+i+1, stripExt(c.Name)))
	}
	return parts
}

func stripExt(name string) string {
	if locate.SupportedExt(filepath.Ext(name)) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

var targetFillers = []string{
	"search for", "find my", "look for", "locate",
	"file named", "file called", "can you", "could you", "please", "open",
}

var targetStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "my": true, "me": true,
	"for": true, "file": true, "document": true, "called": true, "named": true,
}

// extractTarget strips the trigger phrase and conversational filler from a
// search utterance, leaving the phrase to rank files against.
func extractTarget(text string) string {
	out := text
	for _, f := range targetFillers {
		out = strings.ReplaceAll(out, f, " ")
	}
	var kept []string
	for _, w := range strings.Fields(out) {
		if !targetStopwords[w] {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return strings.TrimSpace(text)
	}
	return strings.Join(kept, " ")
}
