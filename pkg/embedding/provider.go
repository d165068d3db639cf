package embedding

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}

// Preparer is an optional upgrade for providers that need to see the whole
// corpus before they can embed anything (e.g. TF-IDF vocabulary building).
// Index backends call it once per wholesale rebuild.
type Preparer interface {
	Prepare(corpus []string) error
}

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}
