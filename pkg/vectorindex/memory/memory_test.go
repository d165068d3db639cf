package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voiceread-be/pkg/embedding/tfidf"
)

func corpus() ([]string, []map[string]interface{}, []string) {
	texts := []string{
		"photosynthesis converts light energy inside plant cells",
		"the french revolution reshaped european politics",
		"mitochondria produce energy for the cell",
	}
	metas := []map[string]interface{}{
		{"page": 0, "label": "Page 1"},
		{"page": 1, "label": "Page 2"},
		{"page": 2, "label": "Page 3"},
	}
	ids := []string{"p0_c0", "p1_c0", "p2_c0"}
	return texts, metas, ids
}

func TestAddAndQuery(t *testing.T) {
	idx := NewIndex(tfidf.NewProvider())
	texts, metas, ids := corpus()

	require.NoError(t, idx.Add(context.Background(), texts, metas, ids))
	require.Equal(t, 3, idx.Count())

	hits, err := idx.Query(context.Background(), "how do plants use light energy", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "p0_c0", hits[0].ID, "the photosynthesis chunk should rank first")
	assert.Equal(t, "Page 1", hits[0].Meta["label"])
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
}

func TestAddLengthMismatch(t *testing.T) {
	idx := NewIndex(tfidf.NewProvider())
	err := idx.Add(context.Background(), []string{"a", "b"}, nil, []string{"one"})
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	idx := NewIndex(tfidf.NewProvider())
	texts, metas, ids := corpus()
	require.NoError(t, idx.Add(context.Background(), texts, metas, ids))

	require.NoError(t, idx.Reset(context.Background()))
	assert.Equal(t, 0, idx.Count())
}

func TestAddCancelledContext(t *testing.T) {
	idx := NewIndex(tfidf.NewProvider())
	texts, metas, ids := corpus()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, idx.Add(ctx, texts, metas, ids))
	assert.Equal(t, 0, idx.Count(), "a partial add must not leak entries")
}
