package document

import (
	"fmt"
	"os"
	"strings"
)

// Plain text files have no natural page boundaries, so we cut them into
// fixed-size word sections.
const txtSectionWords = 600

func loadTxt(path string) ([]Page, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	words := strings.Fields(string(raw))
	var pages []Page
	for i := 0; i < len(words); i += txtSectionWords {
		end := i + txtSectionWords
		if end > len(words) {
			end = len(words)
		}
		idx := i / txtSectionWords
		pages = append(pages, Page{
			Index: idx,
			Label: fmt.Sprintf("Section %d", idx+1),
			Text:  strings.Join(words[i:end], " "),
		})
	}
	return pages, nil
}
