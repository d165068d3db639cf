package events

import "time"

const (
	// DocumentChangedType is published whenever a new document is loaded so
	// that the chunk index can be rebuilt in the background.
	DocumentChangedType = "DOCUMENT_CHANGED"
)

// Event is the contract every domain event satisfies.
type Event interface {
	EventType() string
	OccurredAt() time.Time
}

// BaseEvent carries the fields shared by all events.
type BaseEvent struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// DocumentChanged signals that the active document was replaced.
type DocumentChanged struct {
	BaseEvent
	Path      string `json:"path"`
	PageCount int    `json:"page_count"`
}

func NewDocumentChanged(path string, pageCount int) DocumentChanged {
	return DocumentChanged{
		BaseEvent: BaseEvent{
			Type:      DocumentChangedType,
			Timestamp: time.Now(),
		},
		Path:      path,
		PageCount: pageCount,
	}
}
