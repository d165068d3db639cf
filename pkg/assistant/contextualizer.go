package assistant

import (
	"context"
	"strings"

	"voiceread-be/pkg/llm"
)

// historyWindow caps how much conversation the reformulation sees: the last
// two exchanges.
const historyWindow = 4

// Contextualizer rewrites follow-up questions into standalone form so
// retrieval works on pronouns-free queries.
type Contextualizer struct {
	provider llm.LLMProvider
}

func NewContextualizer(provider llm.LLMProvider) *Contextualizer {
	return &Contextualizer{provider: provider}
}

// Standalone returns question rewritten against history. An empty history is
// an identity transform with no external call. Any provider failure also
// returns the question unchanged; contextualization must never block
// answering.
func (c *Contextualizer) Standalone(ctx context.Context, question string, history []llm.Message) string {
	if len(history) == 0 {
		return question
	}

	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}

	messages := make([]llm.Message, 0, len(recent)+2)
	messages = append(messages, llm.Message{Role: "system", Content: contextualizePrompt})
	for _, m := range recent {
		if m.Role == "user" || m.Role == "assistant" {
			messages = append(messages, m)
		}
	}
	messages = append(messages, llm.Message{Role: "user", Content: question})

	out, err := c.provider.Chat(ctx, messages,
		llm.WithTemperature(0),
		llm.WithMaxTokens(256),
	)
	out = strings.TrimSpace(out)
	if err != nil || out == "" {
		return question
	}
	return out
}
