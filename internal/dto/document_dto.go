package dto

import (
	"voiceread-be/pkg/bookmark"
	"voiceread-be/pkg/document"
)

type StatusResponse struct {
	ApiReady    bool   `json:"api_ready"`
	DocLoaded   bool   `json:"doc_loaded"`
	DocTitle    string `json:"doc_title,omitempty"`
	DocType     string `json:"doc_type,omitempty"`
	PageCount   int    `json:"page_count"`
	CurrentPage int    `json:"current_page"`
}

type UploadResponse struct {
	Title     string `json:"title"`
	DocType   string `json:"doc_type"`
	PageCount int    `json:"page_count"`
}

// PageStateResponse mirrors what a screen reader client needs to speak a page:
// the 1-indexed position, the label printed in the document, and the raw text.
type PageStateResponse struct {
	Page  int    `json:"page"`
	Total int    `json:"total"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

type NavigateRequest struct {
	Action string `json:"action" validate:"required,oneof=next prev goto first last"`
	Page   int    `json:"page"`
}

type SearchResponse struct {
	Query   string                  `json:"query"`
	Matches []document.SearchResult `json:"matches"`
}

type FullTextResponse struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type BookmarkRequest struct {
	Page int    `json:"page" validate:"min=0"`
	Note string `json:"note"`
}

type BookmarksResponse struct {
	Bookmarks []bookmark.Entry `json:"bookmarks"`
}
