package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"voiceread-be/pkg/embedding"
	"voiceread-be/pkg/vectorindex"
)

type entry struct {
	id   string
	text string
	meta map[string]interface{}
	vec  []float32
}

// Index is an in-memory vector store using brute-force cosine similarity.
// Vectors are assumed L2-normalized by the provider, so similarity is a dot
// product.
type Index struct {
	mu       sync.RWMutex
	provider embedding.EmbeddingProvider
	entries  []entry
}

var _ vectorindex.Index = &Index{}

func NewIndex(provider embedding.EmbeddingProvider) *Index {
	return &Index{provider: provider}
}

// Add embeds and stores texts. Rebuilds arrive as Reset followed by a single
// wholesale Add, so a corpus-dependent provider gets its Prepare call here.
func (idx *Index) Add(ctx context.Context, texts []string, metas []map[string]interface{}, ids []string) error {
	if len(texts) != len(ids) || (metas != nil && len(metas) != len(texts)) {
		return errors.New("texts, metas and ids length mismatch")
	}

	if prep, ok := idx.provider.(embedding.Preparer); ok {
		if err := prep.Prepare(texts); err != nil {
			return err
		}
	}

	entries := make([]entry, 0, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := idx.provider.Generate(text, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return err
		}
		var meta map[string]interface{}
		if metas != nil {
			meta = metas[i]
		}
		entries = append(entries, entry{
			id:   ids[i],
			text: text,
			meta: meta,
			vec:  res.Embedding.Values,
		})
	}

	idx.mu.Lock()
	idx.entries = append(idx.entries, entries...)
	idx.mu.Unlock()
	return nil
}

// Query embeds text and returns the k most similar stored texts.
func (idx *Index) Query(ctx context.Context, text string, k int) ([]vectorindex.Hit, error) {
	if k <= 0 {
		k = 5
	}
	res, err := idx.provider.Generate(text, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	qv := res.Embedding.Values

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	hits := make([]vectorindex.Hit, 0, len(idx.entries))
	for _, e := range idx.entries {
		hits = append(hits, vectorindex.Hit{
			ID:    e.id,
			Text:  e.text,
			Meta:  e.meta,
			Score: dot(e.vec, qv),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

func (idx *Index) Reset(ctx context.Context) error {
	idx.mu.Lock()
	idx.entries = nil
	idx.mu.Unlock()
	return nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
