package dto

type CommandRequest struct {
	Text      string `json:"text" validate:"required"`
	SessionID string `json:"session_id"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AskRequest struct {
	Question string        `json:"question" validate:"required"`
	History  []ChatMessage `json:"history"`
}

type SummarizeRequest struct {
	Length     string `json:"length" validate:"omitempty,oneof=short medium detailed"`
	ChapterNum int    `json:"chapter_num"`
}
