package retrieval

import (
	"fmt"
	"strings"

	"voiceread-be/pkg/document"
)

// Window geometry for retrieval chunks: 300-word windows advancing 250 words
// at a time, so consecutive chunks share a 50-word overlap.
const (
	chunkWords  = 300
	chunkStride = 250
)

// Chunk is one retrieval unit cut from a document page. IDs are stable within
// a build: page index plus window ordinal.
type Chunk struct {
	ID    string
	Text  string
	Page  int
	Label string
}

// SplitPages cuts every page into overlapping word windows, preserving page
// order and window order within a page. A page shorter than one window still
// produces exactly one chunk; pages with no words produce none.
func SplitPages(pages []document.Page) []Chunk {
	var chunks []Chunk
	for _, p := range pages {
		words := strings.Fields(p.Text)
		if len(words) == 0 {
			continue
		}
		for ord, start := 0, 0; ; ord, start = ord+1, start+chunkStride {
			end := start + chunkWords
			if end > len(words) {
				end = len(words)
			}
			chunks = append(chunks, Chunk{
				ID:    fmt.Sprintf("p%d_c%d", p.Index, ord),
				Text:  strings.Join(words[start:end], " "),
				Page:  p.Index,
				Label: p.Label,
			})
			if end == len(words) {
				break
			}
		}
	}
	return chunks
}
