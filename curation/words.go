package curation

import (
	"context"
	"fmt"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/contentstream"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// StreamWords lists the words shown by the content streams of p, in page
// points with the origin at the top-left. Streams that cannot be decoded
// add nothing.
func StreamWords(p Page) []model.Word {
	filters := p.Filters()
	var words []model.Word
	for i, raw := range p.Streams() {
		var names []string
		if i < len(filters) {
			names = filters[i]
		}
		content, err := contentstream.DecodeStream(raw, names)
		if err != nil {
			log.Warn("stream skipped for words", "stream", i, "error", err)
			continue
		}
		words = append(words, contentstream.Words(content, p.Height())...)
	}
	return words
}

// PageWords reads the stream words of every table page of the session,
// ready for Jobs.
func (s *Session) PageWords(ctx context.Context, src PageSource) (map[int][]model.Word, error) {
	out := make(map[int][]model.Word)
	for _, page := range s.TablePages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := src.Page(page)
		if err != nil {
			return nil, fmt.Errorf("curation: reading page %d: %w", page, err)
		}
		out[page] = StreamWords(p)
	}
	return out, nil
}
