package bootstrap

import (
	"context"
	"log"

	"voiceread-be/internal/config"
	"voiceread-be/internal/controller"
	"voiceread-be/internal/pkg/logger"
	"voiceread-be/internal/repository/memory"
	"voiceread-be/internal/service"
	"voiceread-be/pkg/assistant"
	"voiceread-be/pkg/bookmark"
	"voiceread-be/pkg/command"
	"voiceread-be/pkg/document"
	"voiceread-be/pkg/embedding"
	"voiceread-be/pkg/embedding/tfidf"
	"voiceread-be/pkg/llm/factory"
	"voiceread-be/pkg/locate"
	"voiceread-be/pkg/retrieval"
	"voiceread-be/pkg/vectorindex"
	vectormemory "voiceread-be/pkg/vectorindex/memory"
	"voiceread-be/pkg/vectorindex/pgvector"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	DocumentController  controller.IDocumentController
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	// Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = tfidf.NewProvider()
		log.Printf("[INFO] Using Embedding Provider: TF-IDF (local)")
	}

	// LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.Groq,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Groq without a key still constructs, but the AI endpoints stay gated.
	aiReady := cfg.Ai.LLMProvider != "groq" || cfg.Keys.Groq != ""

	// 4. Index
	// TF-IDF vocabularies are rebuilt per document, so the in-memory backend
	// gets a fresh index AND a fresh TF-IDF provider per rebuild: the live
	// index keeps querying the vocabulary its vectors were built with while
	// the background rebuild prepares its own. The pgvector backend reuses
	// one handle and relies on its destroy-and-recreate Reset.
	var indexFactory retrieval.IndexFactory
	if cfg.Ai.VectorBackend == "pgvector" && cfg.Database.Connection != "" {
		pgIndex, err := pgvector.NewIndex(context.Background(), cfg.Database.Connection, embeddingProvider)
		if err != nil {
			log.Fatalf("[FATAL] Failed to connect to pgvector: %v", err)
		}
		indexFactory = func() (vectorindex.Index, error) { return pgIndex, nil }
		log.Printf("[INFO] Using Vector Backend: PGVECTOR")
	} else {
		indexFactory = func() (vectorindex.Index, error) {
			provider := embeddingProvider
			if cfg.Ai.EmbeddingProvider != "ollama" {
				provider = tfidf.NewProvider()
			}
			return vectormemory.NewIndex(provider), nil
		}
		log.Printf("[INFO] Using Vector Backend: MEMORY")
	}

	// 5. Document State
	docStore := document.NewStore()
	marks := bookmark.NewManager(cfg.Paths.DataDir)
	finder := locate.NewFinder(cfg.Paths.DocsDir)
	interpreter := command.NewInterpreter(docStore, finder, marks)
	sessionRepo := memory.NewSessionRepository()

	// 6. Retrieval Pipeline
	indexer := retrieval.NewIndexer(indexFactory, sysLogger)
	retriever := retrieval.NewRetriever(indexer, docStore, sysLogger)
	contextualizer := assistant.NewContextualizer(llmProvider)
	answerer := assistant.NewAnswerer(llmProvider, contextualizer, retriever, sysLogger)
	summarizer := assistant.NewSummarizer(llmProvider, sysLogger)

	// 7. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.DocumentChangedTopic)
	indexerService := service.NewIndexerService(
		pubSub,
		cfg.Keys.DocumentChangedTopic,
		docStore,
		indexer,
		sysLogger,
	)

	documentService := service.NewDocumentService(
		docStore,
		marks,
		publisherService,
		aiReady,
		cfg.Paths.DocsDir,
		sysLogger,
	)
	assistantService := service.NewAssistantService(
		interpreter,
		sessionRepo,
		docStore,
		summarizer,
		answerer,
		publisherService,
		aiReady,
		sysLogger,
	)

	// 8. Controllers
	return &Container{
		DocumentController:  controller.NewDocumentController(documentService),
		AssistantController: controller.NewAssistantController(assistantService),

		IndexerService: indexerService,
	}
}
