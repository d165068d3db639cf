package retrieval

import (
	"context"
	"errors"
	"sync"

	"voiceread-be/internal/pkg/logger"
	"voiceread-be/pkg/document"
	"voiceread-be/pkg/vectorindex"
)

// IndexFactory builds an empty index backend for one rebuild.
type IndexFactory func() (vectorindex.Index, error)

// Indexer owns the live document index. Rebuilds are wholesale: a fresh index
// is populated off to the side and then swapped in under the write lock, so
// readers see either the old complete index or the new one, never a partial
// build. Stale chunks cannot survive a rebuild.
type Indexer struct {
	mu      sync.RWMutex
	factory IndexFactory
	index   vectorindex.Index
	log     logger.ILogger
}

func NewIndexer(factory IndexFactory, log logger.ILogger) *Indexer {
	return &Indexer{factory: factory, log: log}
}

// Rebuild replaces the index with one built from pages. No pages, or no text
// on any page, publishes an empty index rather than an error. A build failure
// also publishes an empty index; retrieval degrades to its fallback.
func (ix *Indexer) Rebuild(ctx context.Context, pages []document.Page) error {
	fresh, err := ix.factory()
	if err != nil {
		return err
	}
	if err := fresh.Reset(ctx); err != nil {
		return err
	}

	chunks := SplitPages(pages)
	buildErr := error(nil)
	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		metas := make([]map[string]interface{}, len(chunks))
		ids := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
			metas[i] = map[string]interface{}{"page": c.Page, "label": c.Label}
			ids[i] = c.ID
		}
		if err := fresh.Add(ctx, texts, metas, ids); err != nil {
			// Publish an explicitly empty index; the retriever fallback
			// masks the failure from the user.
			_ = fresh.Reset(ctx)
			buildErr = err
			ix.log.Error("indexer", "index build failed", map[string]interface{}{
				"error":  err.Error(),
				"chunks": len(chunks),
			})
		}
	}

	ix.mu.Lock()
	ix.index = fresh
	ix.mu.Unlock()

	if buildErr == nil {
		ix.log.Info("indexer", "index rebuilt", map[string]interface{}{
			"pages":  len(pages),
			"chunks": len(chunks),
		})
	}
	return buildErr
}

// Count reports the number of chunks in the live index, zero when no index
// has been published yet.
func (ix *Indexer) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.index == nil {
		return 0
	}
	return ix.index.Count()
}

// Query runs a similarity search against the live index.
func (ix *Indexer) Query(ctx context.Context, text string, k int) ([]vectorindex.Hit, error) {
	ix.mu.RLock()
	idx := ix.index
	ix.mu.RUnlock()
	if idx == nil {
		return nil, errors.New("no index built")
	}
	return idx.Query(ctx, text, k)
}
