package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"voiceread-be/internal/pkg/logger"
	"voiceread-be/pkg/document"
	"voiceread-be/pkg/events"
	"voiceread-be/pkg/retrieval"
)

type IIndexerService interface {
	Consume(ctx context.Context) error
}

// indexerService rebuilds the chunk index in the background whenever a
// document-changed event arrives, keeping document loads fast for the caller.
type indexerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	docs      *document.Store
	indexer   *retrieval.Indexer
	log       logger.ILogger
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	docs *document.Store,
	indexer *retrieval.Indexer,
	log logger.ILogger,
) IIndexerService {
	return &indexerService{
		pubSub:    pubSub,
		topicName: topicName,
		docs:      docs,
		indexer:   indexer,
		log:       log,
	}
}

func (s *indexerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var evt events.DocumentChanged
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		s.log.Error("indexer", "failed to unmarshal event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads would fail every retry
		return
	}

	s.log.Info("indexer", "rebuilding index", map[string]interface{}{
		"path":  evt.Path,
		"pages": evt.PageCount,
	})

	if err := s.indexer.Rebuild(ctx, s.docs.Pages()); err != nil {
		// Rebuild already published an empty index; retrieval degrades to its
		// full-text fallback and the next document load triggers a fresh build.
		s.log.Error("indexer", "rebuild failed", map[string]interface{}{
			"path":  evt.Path,
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	msg.Ack()
}
