package assistant

import (
	"context"
	"fmt"

	"voiceread-be/internal/pkg/logger"
	"voiceread-be/pkg/llm"
)

// Summarizer streams spoken-style document summaries at three length presets.
type Summarizer struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewSummarizer(provider llm.LLMProvider, log logger.ILogger) *Summarizer {
	return &Summarizer{provider: provider, log: log}
}

// Summarize streams a summary of text. Unknown length presets fall back to
// medium. A failure to open the stream yields a single apology fragment.
func (s *Summarizer) Summarize(ctx context.Context, text, length string) <-chan string {
	instruction, ok := summaryLengths[length]
	if !ok {
		instruction = summaryLengths["medium"]
	}

	prompt := fmt.Sprintf(summaryPrompt, instruction, truncate(text, maxPromptContext))
	stream, err := s.provider.ChatStream(ctx,
		[]llm.Message{{Role: "user", Content: prompt}},
		llm.WithTemperature(0.4),
		llm.WithMaxTokens(1024),
	)
	if err != nil {
		s.log.Error("assistant", "summary stream failed to open", map[string]interface{}{
			"error": err.Error(),
		})
		return apology("Sorry, the summary is unavailable right now.")
	}
	return stream
}
