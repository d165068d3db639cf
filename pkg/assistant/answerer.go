package assistant

import (
	"context"
	"fmt"

	"voiceread-be/internal/pkg/logger"
	"voiceread-be/pkg/llm"
)

// retrieveK is how many passages back a document question.
const retrieveK = 5

// ContextSource resolves a query to supporting document text.
type ContextSource interface {
	Retrieve(ctx context.Context, query string, k int) string
}

// Answerer assembles the question-answering pipeline: contextualize the
// question, retrieve supporting text with the standalone form, then stream
// the generation with the ORIGINAL question and raw history so the reply's
// phrasing stays faithful to what the user actually asked.
type Answerer struct {
	provider       llm.LLMProvider
	contextualizer *Contextualizer
	retriever      ContextSource
	log            logger.ILogger
}

func NewAnswerer(provider llm.LLMProvider, contextualizer *Contextualizer, retriever ContextSource, log logger.ILogger) *Answerer {
	return &Answerer{
		provider:       provider,
		contextualizer: contextualizer,
		retriever:      retriever,
		log:            log,
	}
}

// Answer streams the reply tokens. The user always receives a terminal
// response: a failure to open the stream yields a single apology fragment.
func (a *Answerer) Answer(ctx context.Context, question string, history []llm.Message) <-chan string {
	standalone := a.contextualizer.Standalone(ctx, question, history)
	docContext := a.retriever.Retrieve(ctx, standalone, retrieveK)

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: fmt.Sprintf(answerSystemPrompt, truncate(docContext, maxPromptContext)),
	})
	for _, m := range history {
		if m.Role == "user" || m.Role == "assistant" {
			messages = append(messages, m)
		}
	}
	messages = append(messages, llm.Message{Role: "user", Content: question})

	stream, err := a.provider.ChatStream(ctx, messages,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(1536),
	)
	if err != nil {
		a.log.Error("assistant", "answer stream failed to open", map[string]interface{}{
			"error": err.Error(),
		})
		return apology("Sorry, I could not answer that right now.")
	}
	return stream
}

func apology(message string) <-chan string {
	ch := make(chan string, 1)
	ch <- message
	close(ch)
	return ch
}
