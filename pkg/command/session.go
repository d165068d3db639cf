package command

import "voiceread-be/pkg/locate"

// DefaultSessionID is used when the client does not name a session. The
// process serves a single local user, so one shared session is the norm.
const DefaultSessionID = "local"

// selectionWindow is how many candidates are spoken per listing page.
const selectionWindow = 5

// Session is the multi-turn file-selection dialogue state. Idle means no
// listing is pending; Awaiting means a candidate list was spoken and the next
// utterance may select from it. Offset is the start of the visible window and
// is always a multiple of the window size, never negative, never past the end.
type Session struct {
	ID         string             `json:"id"`
	Awaiting   bool               `json:"awaiting"`
	Candidates []locate.Candidate `json:"candidates"`
	Offset     int                `json:"offset"`
}

func NewSession(id string) *Session {
	if id == "" {
		id = DefaultSessionID
	}
	return &Session{ID: id}
}

// Open starts a new selection dialogue over candidates, resetting pagination.
func (s *Session) Open(candidates []locate.Candidate) {
	s.Awaiting = true
	s.Candidates = candidates
	s.Offset = 0
}

// Close returns the session to Idle, dropping the candidate list.
func (s *Session) Close() {
	s.Awaiting = false
	s.Candidates = nil
	s.Offset = 0
}

// Window returns the candidates visible at the current offset.
func (s *Session) Window() []locate.Candidate {
	if s.Offset >= len(s.Candidates) {
		return nil
	}
	end := s.Offset + selectionWindow
	if end > len(s.Candidates) {
		end = len(s.Candidates)
	}
	return s.Candidates[s.Offset:end]
}
