package retrieval

import (
	"context"
	"strings"

	"voiceread-be/internal/pkg/logger"
)

const (
	// FallbackChars is the size of the full-text excerpt used whenever the
	// index cannot produce results. It doubles as the cap on joined passages.
	FallbackChars = 10000

	passageSeparator = "\n---\n"
)

// FullTextSource supplies the concatenated document text for the fallback.
type FullTextSource interface {
	FullText(maxChars int) string
}

// Retriever resolves a query to the best supporting text. It never fails its
// caller: an absent or empty index, or any query error, degrades silently to
// the leading slice of the full document text.
type Retriever struct {
	indexer *Indexer
	docs    FullTextSource
	log     logger.ILogger
}

func NewRetriever(indexer *Indexer, docs FullTextSource, log logger.ILogger) *Retriever {
	return &Retriever{indexer: indexer, docs: docs, log: log}
}

// Retrieve returns up to k nearest passages joined with a visible separator,
// or the fallback excerpt.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) string {
	count := r.indexer.Count()
	if count == 0 {
		return r.fallback()
	}
	if k > count {
		k = count
	}

	hits, err := r.indexer.Query(ctx, query, k)
	if err != nil || len(hits) == 0 {
		if err != nil {
			r.log.Warn("retriever", "query failed, using fallback", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return r.fallback()
	}

	passages := make([]string, len(hits))
	for i, h := range hits {
		passages[i] = h.Text
	}
	joined := strings.Join(passages, passageSeparator)
	if len(joined) > FallbackChars {
		joined = joined[:FallbackChars]
	}
	return joined
}

func (r *Retriever) fallback() string {
	return r.docs.FullText(FallbackChars)
}
