package tfidf

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"voiceread-be/pkg/embedding"
)

// Provider implements a simple TF-IDF vectorizer. It builds a vocabulary from
// the corpus handed to Prepare and computes smoothed IDF values; vectors are
// L2-normalized so cosine similarity reduces to a dot product.
//
// Prepare may run concurrently with Generate (background rebuilds vs live
// queries), so the vocabulary, idf and dimension swap together under mu.
type Provider struct {
	mu           sync.RWMutex
	vocabulary   map[string]int
	idf          []float64
	dimension    int
	prepared     bool
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

var _ embedding.EmbeddingProvider = &Provider{}
var _ embedding.Preparer = &Provider{}

// NewProvider creates an unprepared TF-IDF provider.
func NewProvider() *Provider {
	return &Provider{
		vocabulary:   make(map[string]int),
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Prepare builds the vocabulary and IDF values from the provided corpus.
func (p *Provider) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF prepare")
	}
	// Build vocabulary and document frequencies
	df := make(map[string]int)
	for _, text := range corpus {
		tokens := p.tokenize(text)
		seen := make(map[string]struct{})
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return errors.New("no tokens found in corpus")
	}
	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		vocabulary[term] = i
		// Smoothed IDF
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	p.mu.Lock()
	p.vocabulary = vocabulary
	p.idf = idf
	p.dimension = len(terms)
	p.prepared = true
	p.mu.Unlock()
	return nil
}

// Dimension returns the dimensionality of the produced embedding vectors.
func (p *Provider) Dimension() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.dimension
}

// Generate computes the TF-IDF embedding for the given text. TaskType is
// ignored; TF-IDF has no notion of retrieval task variants.
func (p *Provider) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.prepared {
		return nil, errors.New("tfidf provider not prepared")
	}
	vec := make([]float64, p.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range p.tokenize(text) {
		if idx, ok := p.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total > 0 {
		for idx, count := range tf {
			tfv := float64(count) / float64(total)
			vec[idx] = tfv * p.idf[idx]
		}
		// L2 normalize
		norm := 0.0
		for _, v := range vec {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm > 0 {
			for i := range vec {
				vec[i] /= norm
			}
		}
	}

	values := make([]float32, len(vec))
	for i, v := range vec {
		values[i] = float32(v)
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: values},
	}, nil
}

func (p *Provider) tokenize(text string) []string {
	lower := strings.ToLower(text)
	raw := p.tokenPattern.FindAllString(lower, -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := p.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to",
		"of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were",
		"be", "been", "being", "it", "this", "that", "these", "those", "from",
		"up", "down", "over", "under", "again", "further", "than", "so", "such",
		"into", "about", "between", "through", "during", "before", "after",
		"above", "below", "out", "off", "own", "same", "too", "very", "can",
		"will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
