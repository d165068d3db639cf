package vectorindex

import "context"

// Hit is one ranked passage returned by a query.
type Hit struct {
	ID    string
	Text  string
	Meta  map[string]interface{}
	Score float32
}

// Index is the embedding-index collaborator: texts go in with metadata and
// stable ids, semantically nearest texts come back out. Rebuilds are
// destroy-and-recreate via Reset followed by one wholesale Add.
type Index interface {
	Add(ctx context.Context, texts []string, metas []map[string]interface{}, ids []string) error
	Query(ctx context.Context, text string, k int) ([]Hit, error)
	Count() int
	Reset(ctx context.Context) error
}
