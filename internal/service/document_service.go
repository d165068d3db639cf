package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"voiceread-be/internal/dto"
	"voiceread-be/internal/pkg/logger"
	"voiceread-be/pkg/bookmark"
	"voiceread-be/pkg/document"
	"voiceread-be/pkg/events"
)

// Sentinel errors mapped to HTTP status codes at the controller layer.
var (
	ErrNoDocument       = errors.New("no document loaded")
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrPageOutOfRange   = errors.New("page out of range")
	ErrBookmarkNotFound = errors.New("bookmark not found")
)

type IDocumentService interface {
	Status(ctx context.Context) *dto.StatusResponse
	Upload(ctx context.Context, filename string, src io.Reader) (*dto.UploadResponse, error)
	Page(ctx context.Context, index int) (*dto.PageStateResponse, error)
	Navigate(ctx context.Context, req *dto.NavigateRequest) (*dto.PageStateResponse, error)
	Search(ctx context.Context, query string) (*dto.SearchResponse, error)
	FullText(ctx context.Context) (*dto.FullTextResponse, error)
	Bookmarks(ctx context.Context) (*dto.BookmarksResponse, error)
	AddBookmark(ctx context.Context, req *dto.BookmarkRequest) (*dto.BookmarksResponse, error)
	RemoveBookmark(ctx context.Context, page int) (*dto.BookmarksResponse, error)
}

type documentService struct {
	docs      *document.Store
	marks     *bookmark.Manager
	publisher IPublisherService
	aiReady   bool
	docsDir   string
	log       logger.ILogger
}

func NewDocumentService(
	docs *document.Store,
	marks *bookmark.Manager,
	publisher IPublisherService,
	aiReady bool,
	docsDir string,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		docs:      docs,
		marks:     marks,
		publisher: publisher,
		aiReady:   aiReady,
		docsDir:   docsDir,
		log:       log,
	}
}

func (s *documentService) Status(ctx context.Context) *dto.StatusResponse {
	return &dto.StatusResponse{
		ApiReady:    s.aiReady,
		DocLoaded:   s.docs.PageCount() > 0,
		DocTitle:    s.docs.Title(),
		DocType:     s.docs.DocType(),
		PageCount:   s.docs.PageCount(),
		CurrentPage: s.docs.CurrentPage(),
	}
}

// Upload saves the file into the documents folder, loads it as the active
// document and publishes a document-changed event so the index rebuilds.
func (s *documentService) Upload(ctx context.Context, filename string, src io.Reader) (*dto.UploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" && ext != ".txt" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	if err := os.MkdirAll(s.docsDir, 0o755); err != nil {
		return nil, err
	}

	dest := filepath.Join(s.docsDir, filepath.Base(filename))
	if _, err := os.Stat(dest); err == nil {
		// Keep the existing file; store the new upload under a unique name.
		base := strings.TrimSuffix(filepath.Base(filename), ext)
		dest = filepath.Join(s.docsDir, fmt.Sprintf("%s_%s%s", base, uuid.New().String()[:8], ext))
	}

	out, err := os.Create(dest)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dest)
		return nil, err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return nil, err
	}

	if err := s.docs.Load(dest); err != nil {
		os.Remove(dest)
		return nil, err
	}
	s.marks.SetDocument(dest)

	s.log.Info("document", "document loaded", map[string]interface{}{
		"title": s.docs.Title(),
		"type":  s.docs.DocType(),
		"pages": s.docs.PageCount(),
	})

	s.publishChanged(ctx)

	return &dto.UploadResponse{
		Title:     s.docs.Title(),
		DocType:   s.docs.DocType(),
		PageCount: s.docs.PageCount(),
	}, nil
}

func (s *documentService) Page(ctx context.Context, index int) (*dto.PageStateResponse, error) {
	if s.docs.PageCount() == 0 {
		return nil, ErrNoDocument
	}
	if !s.docs.GoTo(index) {
		return nil, ErrPageOutOfRange
	}
	return s.pageState(), nil
}

func (s *documentService) Navigate(ctx context.Context, req *dto.NavigateRequest) (*dto.PageStateResponse, error) {
	if s.docs.PageCount() == 0 {
		return nil, ErrNoDocument
	}

	switch req.Action {
	case "next":
		s.docs.Next()
	case "prev":
		s.docs.Prev()
	case "goto":
		if !s.docs.GoTo(req.Page) {
			return nil, ErrPageOutOfRange
		}
	case "first":
		s.docs.GoTo(0)
	case "last":
		s.docs.GoTo(s.docs.PageCount() - 1)
	}

	return s.pageState(), nil
}

func (s *documentService) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	if s.docs.PageCount() == 0 {
		return nil, ErrNoDocument
	}
	return &dto.SearchResponse{
		Query:   query,
		Matches: s.docs.Search(query),
	}, nil
}

func (s *documentService) FullText(ctx context.Context) (*dto.FullTextResponse, error) {
	if s.docs.PageCount() == 0 {
		return nil, ErrNoDocument
	}
	return &dto.FullTextResponse{
		Title: s.docs.Title(),
		Text:  s.docs.FullText(0),
	}, nil
}

func (s *documentService) Bookmarks(ctx context.Context) (*dto.BookmarksResponse, error) {
	if s.docs.PageCount() == 0 {
		return nil, ErrNoDocument
	}
	return &dto.BookmarksResponse{Bookmarks: s.marks.List()}, nil
}

func (s *documentService) AddBookmark(ctx context.Context, req *dto.BookmarkRequest) (*dto.BookmarksResponse, error) {
	if s.docs.PageCount() == 0 {
		return nil, ErrNoDocument
	}
	if req.Page < 0 || req.Page >= s.docs.PageCount() {
		return nil, ErrPageOutOfRange
	}
	label := s.docs.PageLabel(req.Page)
	s.marks.Add(req.Page, label, req.Note)
	return &dto.BookmarksResponse{Bookmarks: s.marks.List()}, nil
}

func (s *documentService) RemoveBookmark(ctx context.Context, page int) (*dto.BookmarksResponse, error) {
	if s.docs.PageCount() == 0 {
		return nil, ErrNoDocument
	}
	if !s.marks.Remove(page) {
		return nil, ErrBookmarkNotFound
	}
	return &dto.BookmarksResponse{Bookmarks: s.marks.List()}, nil
}

func (s *documentService) pageState() *dto.PageStateResponse {
	return &dto.PageStateResponse{
		Page:  s.docs.CurrentPage(),
		Total: s.docs.PageCount(),
		Label: s.docs.CurrentLabel(),
		Text:  s.docs.CurrentText(),
	}
}

// publishChanged never fails the caller; indexing is auxiliary to loading.
func (s *documentService) publishChanged(ctx context.Context) {
	evt := events.NewDocumentChanged(s.docs.FilePath(), s.docs.PageCount())
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.log.Warn("document", "failed to publish document-changed event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
