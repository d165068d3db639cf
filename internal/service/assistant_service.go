package service

import (
	"context"
	"encoding/json"
	"errors"

	"voiceread-be/internal/dto"
	"voiceread-be/internal/pkg/logger"
	"voiceread-be/internal/repository/memory"
	"voiceread-be/pkg/assistant"
	"voiceread-be/pkg/command"
	"voiceread-be/pkg/document"
	"voiceread-be/pkg/events"
	"voiceread-be/pkg/llm"
)

// ErrAINotReady gates the AI endpoints when no provider is configured.
var ErrAINotReady = errors.New("ai assistant not configured")

type IAssistantService interface {
	Ready() bool
	Command(ctx context.Context, req *dto.CommandRequest) *command.Action
	Summarize(ctx context.Context, req *dto.SummarizeRequest) (<-chan string, error)
	Ask(ctx context.Context, req *dto.AskRequest) (<-chan string, error)
}

type assistantService struct {
	interpreter *command.Interpreter
	sessions    memory.ISessionRepository
	docs        *document.Store
	summarizer  *assistant.Summarizer
	answerer    *assistant.Answerer
	publisher   IPublisherService
	aiReady     bool
	log         logger.ILogger
}

func NewAssistantService(
	interpreter *command.Interpreter,
	sessions memory.ISessionRepository,
	docs *document.Store,
	summarizer *assistant.Summarizer,
	answerer *assistant.Answerer,
	publisher IPublisherService,
	aiReady bool,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		interpreter: interpreter,
		sessions:    sessions,
		docs:        docs,
		summarizer:  summarizer,
		answerer:    answerer,
		publisher:   publisher,
		aiReady:     aiReady,
		log:         log,
	}
}

func (s *assistantService) Ready() bool {
	return s.aiReady
}

// Command runs one utterance through the interpreter. A file-loaded result
// means the interpreter swapped the active document, so the index rebuild
// event is published here.
func (s *assistantService) Command(ctx context.Context, req *dto.CommandRequest) *command.Action {
	sess := s.sessions.GetOrCreate(req.SessionID)
	action := s.interpreter.Interpret(req.Text, sess, s.aiReady)
	s.sessions.Save(sess)

	s.log.Info("assistant", "command interpreted", map[string]interface{}{
		"session": sess.ID,
		"action":  action.Action,
	})

	if action.Action == command.ActionFileLoaded {
		s.publishChanged(ctx)
	}
	return &action
}

func (s *assistantService) Summarize(ctx context.Context, req *dto.SummarizeRequest) (<-chan string, error) {
	if !s.aiReady {
		return nil, ErrAINotReady
	}
	if s.docs.PageCount() == 0 {
		return nil, ErrNoDocument
	}

	var text string
	if req.ChapterNum > 0 {
		text = s.docs.ChapterText(req.ChapterNum)
		if text == "" {
			return nil, ErrPageOutOfRange
		}
	} else {
		text = s.docs.FullText(0)
	}

	return s.summarizer.Summarize(ctx, text, req.Length), nil
}

func (s *assistantService) Ask(ctx context.Context, req *dto.AskRequest) (<-chan string, error) {
	if !s.aiReady {
		return nil, ErrAINotReady
	}
	if s.docs.PageCount() == 0 {
		return nil, ErrNoDocument
	}

	history := make([]llm.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	return s.answerer.Answer(ctx, req.Question, history), nil
}

func (s *assistantService) publishChanged(ctx context.Context) {
	evt := events.NewDocumentChanged(s.docs.FilePath(), s.docs.PageCount())
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.log.Warn("assistant", "failed to publish document-changed event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
