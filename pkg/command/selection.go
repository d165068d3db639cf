package command

import (
	"fmt"
	"strings"
)

// handleSelection owns every turn while a selection dialogue is awaiting.
// Cancel, pagination and repeat keep the session alive; any other utterance
// consumes it, whether or not a candidate resolves. One resolution attempt
// per listing is intentional: a failed pick requires re-issuing the search.
func (it *Interpreter) handleSelection(in *input) Action {
	sess := in.sess

	if containsAny(in.text, cancelPhrases) {
		sess.Close()
		return Action{Action: ActionSpeak, Message: "Cancelled file selection.", TTSText: "Okay, cancelled."}
	}

	if containsAny(in.text, nextPhrases) {
		return it.paginateNext(sess)
	}
	if containsAny(in.text, prevPhrases) {
		return it.paginatePrev(sess)
	}
	if containsAny(in.text, repeatPhrases) {
		return it.repeatListing(in)
	}

	return it.resolveSelection(in)
}

func (it *Interpreter) paginateNext(sess *Session) Action {
	newOffset := sess.Offset + selectionWindow
	if newOffset >= len(sess.Candidates) {
		msg := "You are at the end of the list. Say 'previous' to go back."
		return Action{Action: ActionSpeak, Message: msg, TTSText: msg}
	}
	sess.Offset = newOffset
	return it.windowListing(sess)
}

func (it *Interpreter) paginatePrev(sess *Session) Action {
	if sess.Offset == 0 {
		return Action{
			Action:  ActionSpeak,
			Message: "You are at the beginning of the list. Say 'next' for more.",
			TTSText: "You are already at the beginning of the list. Say 'next' for more.",
		}
	}
	newOffset := sess.Offset - selectionWindow
	if newOffset < 0 {
		newOffset = 0
	}
	sess.Offset = newOffset
	return it.windowListing(sess)
}

func (it *Interpreter) windowListing(sess *Session) Action {
	window := sess.Window()
	last := sess.Offset + len(window)
	tts := []string{fmt.Sprintf("Reading files %d to %d.", sess.Offset+1, last)}
	tts = append(tts, spokenListing(window, sess.Offset)...)
	tts = append(tts, "Say the number, the name, or 'next' for more.")
	return Action{Action: ActionSpeak, Message: "Listening for file selection...", TTSText: strings.Join(tts, " ")}
}

// resolveSelection tries the ordinal against the full candidate list first,
// then a substring match on extension-stripped names. The session is consumed
// regardless of the outcome.
func (it *Interpreter) resolveSelection(in *input) Action {
	sess := in.sess
	candidates := sess.Candidates
	sess.Close()

	idx := -1
	if n, ok := numberFrom(in.text); ok && n >= 1 && n <= len(candidates) {
		idx = n - 1
	} else {
		for i, c := range candidates {
			if strings.Contains(in.text, strings.ToLower(stripExt(c.Name))) {
				idx = i
				break
			}
		}
	}

	if idx < 0 {
		return Action{
			Action:  ActionSpeak,
			Message: "File not recognized. Please try saying 'open file' again.",
			TTSText: "I didn't catch that. Please try saying open file again.",
		}
	}

	selected := candidates[idx]
	if err := it.docs.Load(selected.Path); err != nil {
		return Action{
			Action:  ActionError,
			Message: fmt.Sprintf("Could not load %s.", selected.Name),
			TTSText: "Sorry, there was an error loading the file.",
		}
	}
	it.marks.SetDocument(selected.Path)

	return it.pageState(Action{
		Action:  ActionFileLoaded,
		Title:   it.docs.Title(),
		Ext:     it.docs.DocType(),
		Message: fmt.Sprintf("Opened %s. Say 'read document' to start.", selected.Name),
		TTSText: fmt.Sprintf("Opened %s. You can say 'read document' or 'summarize'.", selected.Name),
	})
}
