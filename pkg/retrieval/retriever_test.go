package retrieval

import (
	"context"
	"strings"
	"testing"

	"voiceread-be/internal/pkg/logger"
	"voiceread-be/pkg/vectorindex"
)

type fakeFullText struct {
	text string
}

func (f *fakeFullText) FullText(maxChars int) string {
	if len(f.text) > maxChars {
		return f.text[:maxChars]
	}
	return f.text
}

func longText(n int) string {
	return strings.Repeat("a", n)
}

func TestRetrieveEmptyIndexFallsBack(t *testing.T) {
	ix := NewIndexer(factoryOf(&fakeIndex{}), logger.NewNop())
	docs := &fakeFullText{text: longText(30000)}
	r := NewRetriever(ix, docs, logger.NewNop())

	got := r.Retrieve(context.Background(), "anything", 5)

	// Exactly the first 10,000 characters, regardless of query or k.
	if len(got) != FallbackChars {
		t.Fatalf("len = %d, want %d", len(got), FallbackChars)
	}
	if got != docs.text[:FallbackChars] {
		t.Fatal("fallback is not the leading slice of the full text")
	}

	if again := r.Retrieve(context.Background(), "different query", 1); again != got {
		t.Fatal("fallback must not depend on the query")
	}
}

func TestRetrieveJoinsPassages(t *testing.T) {
	idx := &fakeIndex{
		texts: []string{"x", "y"},
		queryHit: []vectorindex.Hit{
			{ID: "p0_c0", Text: "first passage", Score: 0.9},
			{ID: "p0_c1", Text: "second passage", Score: 0.7},
		},
	}
	ix := NewIndexer(factoryOf(idx), logger.NewNop())
	if err := ix.Rebuild(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	// Rebuild resets the fake; restore its contents for the query path.
	idx.texts = []string{"x", "y"}

	r := NewRetriever(ix, &fakeFullText{text: "fallback"}, logger.NewNop())
	got := r.Retrieve(context.Background(), "q", 5)

	want := "first passage\n---\nsecond passage"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRetrieveQueryFailureFallsBack(t *testing.T) {
	idx := &fakeIndex{failQry: true}
	ix := NewIndexer(factoryOf(idx), logger.NewNop())
	if err := ix.Rebuild(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	idx.texts = []string{"x"}

	r := NewRetriever(ix, &fakeFullText{text: "the full document text"}, logger.NewNop())
	got := r.Retrieve(context.Background(), "q", 3)

	if got != "the full document text" {
		t.Fatalf("got %q, want the fallback text", got)
	}
}

func TestRetrieveClampsK(t *testing.T) {
	idx := &fakeIndex{
		queryHit: []vectorindex.Hit{{ID: "p0_c0", Text: "only one", Score: 1}},
	}
	ix := NewIndexer(factoryOf(idx), logger.NewNop())
	if err := ix.Rebuild(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	idx.texts = []string{"only one"}

	r := NewRetriever(ix, &fakeFullText{text: "fallback"}, logger.NewNop())
	got := r.Retrieve(context.Background(), "q", 50)

	if got != "only one" {
		t.Fatalf("got %q", got)
	}
}
