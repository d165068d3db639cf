package document

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

func loadPDF(path string) ([]Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []Page
	for n := 1; n <= r.NumPage(); n++ {
		p := r.Page(n)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// One unreadable page should not sink the whole document.
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, Page{
			Index: len(pages),
			Label: fmt.Sprintf("Page %d", n),
			Text:  text,
		})
	}
	return pages, nil
}
