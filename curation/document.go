package curation

import (
	"fmt"
	"sync"
)

// Page is the part of a document page the filters work on. Streams are the
// raw content streams in drawing order; Filters holds the declared filter
// chain of each stream.
type Page interface {
	Height() float64
	Streams() [][]byte
	Filters() [][]string

	// WithStreams returns a copy of the page carrying new content streams
	// with their filter chains. The receiver is left untouched.
	WithStreams(streams [][]byte, filters [][]string) Page
}

// PageSource provides the pages of an input document
type PageSource interface {
	NumPages() int
	Page(i int) (Page, error)
}

// PageSink receives output pages in order
type PageSink interface {
	Append(p Page) error
}

// MemoryPage is a Page held in memory
type MemoryPage struct {
	H        float64
	Contents [][]byte
	Encoding [][]string
}

func (p *MemoryPage) Height() float64 { return p.H }

func (p *MemoryPage) Streams() [][]byte { return p.Contents }

func (p *MemoryPage) Filters() [][]string { return p.Encoding }

func (p *MemoryPage) WithStreams(streams [][]byte, filters [][]string) Page {
	return &MemoryPage{H: p.H, Contents: streams, Encoding: filters}
}

// MemoryDocument is a page list usable as both source and sink
type MemoryDocument struct {
	mu    sync.Mutex
	pages []Page
}

// NewMemoryDocument creates a document holding pages
func NewMemoryDocument(pages ...Page) *MemoryDocument {
	return &MemoryDocument{pages: pages}
}

func (d *MemoryDocument) NumPages() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pages)
}

func (d *MemoryDocument) Page(i int) (Page, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.pages) {
		return nil, fmt.Errorf("curation: page %d out of range [0,%d)", i, len(d.pages))
	}
	return d.pages[i], nil
}

func (d *MemoryDocument) Append(p Page) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pages = append(d.pages, p)
	return nil
}
