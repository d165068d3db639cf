package command

import "voiceread-be/pkg/bookmark"

// Action tags returned to the client. The client reacts to the tag; everything
// else on the Action is supporting payload.
const (
	ActionSpeak          = "speak"
	ActionStop           = "stop"
	ActionError          = "error"
	ActionRead           = "read"
	ActionNavigate       = "navigate"
	ActionFileLoaded     = "file_loaded"
	ActionOpenFileDialog = "open_file_dialog"
	ActionStreamSummary  = "stream_summary"
	ActionStreamAnswer   = "stream_answer"
	ActionBookmark       = "bookmark"
)

// Action is the structured result of interpreting one utterance. It is built
// fresh per utterance and never mutated after return. Fields that do not apply
// to the action tag stay unset and are omitted from the JSON body entirely,
// so clients must treat missing fields as absent rather than null.
type Action struct {
	Action    string           `json:"action"`
	Message   string           `json:"message,omitempty"`
	TTSText   string           `json:"tts_text,omitempty"`
	Title     string           `json:"title,omitempty"`
	Ext       string           `json:"ext,omitempty"`
	Length    string           `json:"length,omitempty"`
	Question  string           `json:"question,omitempty"`
	Page      *int             `json:"page,omitempty"`
	Total     *int             `json:"total,omitempty"`
	Label     string           `json:"label,omitempty"`
	Text      string           `json:"text,omitempty"`
	Bookmarks []bookmark.Entry `json:"bookmarks,omitempty"`
}
