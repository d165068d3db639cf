package retrieval

import (
	"context"
	"errors"
	"sync"
	"testing"

	"voiceread-be/internal/pkg/logger"
	"voiceread-be/pkg/document"
	"voiceread-be/pkg/embedding/tfidf"
	"voiceread-be/pkg/vectorindex"
	vectormemory "voiceread-be/pkg/vectorindex/memory"
)

type fakeIndex struct {
	texts    []string
	failAdd  bool
	failQry  bool
	queryHit []vectorindex.Hit
}

func (f *fakeIndex) Add(ctx context.Context, texts []string, metas []map[string]interface{}, ids []string) error {
	if f.failAdd {
		return errors.New("backend down")
	}
	f.texts = append(f.texts, texts...)
	return nil
}

func (f *fakeIndex) Query(ctx context.Context, text string, k int) ([]vectorindex.Hit, error) {
	if f.failQry {
		return nil, errors.New("query failed")
	}
	if k > len(f.queryHit) {
		k = len(f.queryHit)
	}
	return f.queryHit[:k], nil
}

func (f *fakeIndex) Count() int { return len(f.texts) }

func (f *fakeIndex) Reset(ctx context.Context) error {
	f.texts = nil
	return nil
}

func factoryOf(idx *fakeIndex) IndexFactory {
	return func() (vectorindex.Index, error) { return idx, nil }
}

func TestIndexerRebuild(t *testing.T) {
	idx := &fakeIndex{}
	ix := NewIndexer(factoryOf(idx), logger.NewNop())

	if ix.Count() != 0 {
		t.Fatalf("Count before build = %d, want 0", ix.Count())
	}
	if _, err := ix.Query(context.Background(), "q", 3); err == nil {
		t.Fatal("Query before build should error")
	}

	err := ix.Rebuild(context.Background(), []document.Page{wordsPage(0, 700)})
	if err != nil {
		t.Fatal(err)
	}
	if ix.Count() != 3 {
		t.Fatalf("Count = %d, want 3", ix.Count())
	}
}

func TestIndexerRebuildReplaces(t *testing.T) {
	first := &fakeIndex{}
	ix := NewIndexer(factoryOf(first), logger.NewNop())
	if err := ix.Rebuild(context.Background(), []document.Page{wordsPage(0, 700)}); err != nil {
		t.Fatal(err)
	}

	// A second rebuild from a different document leaves nothing of the first.
	ix.factory = factoryOf(&fakeIndex{})
	if err := ix.Rebuild(context.Background(), []document.Page{wordsPage(0, 100)}); err != nil {
		t.Fatal(err)
	}
	if ix.Count() != 1 {
		t.Fatalf("Count = %d, want 1 after replacement", ix.Count())
	}
}

func TestIndexerRebuildEmptyPages(t *testing.T) {
	idx := &fakeIndex{}
	ix := NewIndexer(factoryOf(idx), logger.NewNop())

	if err := ix.Rebuild(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if ix.Count() != 0 {
		t.Fatalf("Count = %d, want 0 for no pages", ix.Count())
	}
}

func TestIndexerBuildFailurePublishesEmpty(t *testing.T) {
	idx := &fakeIndex{failAdd: true}
	ix := NewIndexer(factoryOf(idx), logger.NewNop())

	err := ix.Rebuild(context.Background(), []document.Page{wordsPage(0, 700)})
	if err == nil {
		t.Fatal("expected build error")
	}
	// The failed build still swaps in an explicitly empty index.
	if ix.Count() != 0 {
		t.Fatalf("Count = %d, want 0 after failed build", ix.Count())
	}
}

// Background rebuilds race live queries through the embedding provider, so
// exercise the real in-memory backend with one shared TF-IDF provider under
// -race: queries must keep returning complete vectors while rebuilds swap
// the vocabulary underneath them.
func TestIndexerRebuildConcurrentWithQuery(t *testing.T) {
	provider := tfidf.NewProvider()
	ix := NewIndexer(func() (vectorindex.Index, error) {
		return vectormemory.NewIndex(provider), nil
	}, logger.NewNop())

	pages := []document.Page{wordsPage(0, 700), wordsPage(1, 300)}
	if err := ix.Rebuild(context.Background(), pages); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if err := ix.Rebuild(context.Background(), pages); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	for i := 0; i < 200; i++ {
		if _, err := ix.Query(context.Background(), "w10 w250 w600", 3); err != nil {
			t.Fatal(err)
		}
	}
	wg.Wait()
}

func TestIndexerFactoryFailureKeepsOldIndex(t *testing.T) {
	idx := &fakeIndex{}
	ix := NewIndexer(factoryOf(idx), logger.NewNop())
	if err := ix.Rebuild(context.Background(), []document.Page{wordsPage(0, 700)}); err != nil {
		t.Fatal(err)
	}

	ix.factory = func() (vectorindex.Index, error) { return nil, errors.New("no backend") }
	if err := ix.Rebuild(context.Background(), []document.Page{wordsPage(0, 100)}); err == nil {
		t.Fatal("expected factory error")
	}
	if ix.Count() != 3 {
		t.Fatalf("Count = %d, old index should survive a factory failure", ix.Count())
	}
}
