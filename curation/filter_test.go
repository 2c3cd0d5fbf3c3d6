package curation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/internal/filters"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// twoTexts shows "dentro" near the top of an 800 point page and "fuera"
// near its bottom
const twoTexts = "BT\n1 0 0 1 50 750 Tm\n(dentro) Tj\nET\nBT\n1 0 0 1 50 100 Tm\n(fuera) Tj\nET"

func textPage(content string) *MemoryPage {
	return &MemoryPage{H: 800, Contents: [][]byte{[]byte(content)}, Encoding: [][]string{nil}}
}

func streamOf(t *testing.T, p Page) string {
	t.Helper()
	if len(p.Streams()) != 1 {
		t.Fatalf("expected one stream, got %d", len(p.Streams()))
	}
	return string(p.Streams()[0])
}

func outputs(t *testing.T, d *MemoryDocument) []Page {
	t.Helper()
	var out []Page
	for i := 0; i < d.NumPages(); i++ {
		p, err := d.Page(i)
		if err != nil {
			t.Fatalf("Page(%d): %v", i, err)
		}
		out = append(out, p)
	}
	return out
}

type failingSource struct{ n int }

func (f failingSource) NumPages() int { return f.n }

func (f failingSource) Page(i int) (Page, error) {
	return nil, fmt.Errorf("page %d is damaged", i)
}

// TestFilterPages tests one output page per table region
func TestFilterPages(t *testing.T) {
	s := NewSession()
	s.AddRegion(Table, 0, model.NewRect(0, 0, 200, 100))
	s.AddRegion(Table, 0, model.NewRect(0, 650, 200, 750))

	src := NewMemoryDocument(textPage(twoTexts), textPage(twoTexts))
	sink := NewMemoryDocument()
	st, err := FilterPages(context.Background(), src, sink, s, DefaultOptions())
	if err != nil {
		t.Fatalf("FilterPages failed: %v", err)
	}

	out := outputs(t, sink)
	if len(out) != 2 || st.Pages != 2 {
		t.Fatalf("expected 2 pages, got %d (stats %+v)", len(out), st)
	}
	first, second := streamOf(t, out[0]), streamOf(t, out[1])
	if strings.Contains(first, "dentro") || !strings.Contains(first, "fuera") {
		t.Errorf("first region not removed: %q", first)
	}
	if !strings.Contains(second, "dentro") || strings.Contains(second, "fuera") {
		t.Errorf("second region not removed: %q", second)
	}
	if st.RemovedLines != 2 {
		t.Errorf("expected 2 removed lines, got %d", st.RemovedLines)
	}

	// the source is left untouched
	if p, _ := src.Page(0); streamOf(t, p) != twoTexts {
		t.Error("source page was modified")
	}
}

// TestFilterPagesMarkers tests table keys written at removed regions
func TestFilterPagesMarkers(t *testing.T) {
	s := NewSession()
	s.AddRegion(Table, 1, model.NewRect(0, 0, 200, 100))
	s.AddRegion(Table, 1, model.NewRect(0, 650, 200, 750))

	sink := NewMemoryDocument()
	opts := DefaultOptions()
	opts.Markers = true
	if _, err := FilterPages(context.Background(), NewMemoryDocument(textPage(""), textPage(twoTexts)), sink, s, opts); err != nil {
		t.Fatalf("FilterPages failed: %v", err)
	}

	out := outputs(t, sink)
	if len(out) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(out))
	}
	if !strings.Contains(streamOf(t, out[0]), "Llave_Unica_Tabla_2_1") {
		t.Errorf("missing first key in %q", streamOf(t, out[0]))
	}
	if !strings.Contains(streamOf(t, out[1]), "Llave_Unica_Tabla_2_2") {
		t.Errorf("missing second key in %q", streamOf(t, out[1]))
	}
}

// TestFilterPagesException tests that exceptions are flipped with the
// region
func TestFilterPagesException(t *testing.T) {
	s := NewSession()
	s.AddRegion(Table, 0, model.NewRect(0, 0, 200, 100))
	s.AddException(0, model.NewRect(40, 40, 60, 60))

	sink := NewMemoryDocument()
	if _, err := FilterPages(context.Background(), NewMemoryDocument(textPage(twoTexts)), sink, s, DefaultOptions()); err != nil {
		t.Fatalf("FilterPages failed: %v", err)
	}
	out := outputs(t, sink)
	if got := streamOf(t, out[0]); got != twoTexts {
		t.Errorf("text inside the exception was removed: %q", got)
	}
}

// TestFilterPagesOrder tests that outputs follow page order with many
// workers
func TestFilterPagesOrder(t *testing.T) {
	s := NewSession()
	var pages []Page
	for i := 0; i < 8; i++ {
		pages = append(pages, textPage(twoTexts))
		s.AddRegion(Table, i, model.NewRect(0, 0, 200, 100))
	}

	sink := NewMemoryDocument()
	opts := Options{Workers: 4, Markers: true}
	if _, err := FilterPages(context.Background(), NewMemoryDocument(pages...), sink, s, opts); err != nil {
		t.Fatalf("FilterPages failed: %v", err)
	}
	for i, p := range outputs(t, sink) {
		key := fmt.Sprintf("Llave_Unica_Tabla_%d_1", i+1)
		if !strings.Contains(streamOf(t, p), key) {
			t.Errorf("output %d lacks %s", i, key)
		}
	}
}

// TestFilterPagesCompressed tests decoding of flate streams and the pass
// through of undecodable ones
func TestFilterPagesCompressed(t *testing.T) {
	packed, err := filters.Deflate([]byte(twoTexts))
	if err != nil {
		t.Fatalf("Deflate failed: %v", err)
	}
	garbage := []byte{0, 1, 2, 3, 0xff}
	page := &MemoryPage{
		H:        800,
		Contents: [][]byte{packed, garbage},
		Encoding: [][]string{{"FlateDecode"}, {"FlateDecode"}},
	}

	s := NewSession()
	s.AddRegion(Table, 0, model.NewRect(0, 0, 200, 100))
	sink := NewMemoryDocument()
	st, err := FilterPages(context.Background(), NewMemoryDocument(page), sink, s, DefaultOptions())
	if err != nil {
		t.Fatalf("FilterPages failed: %v", err)
	}

	out := outputs(t, sink)[0]
	if got := string(out.Streams()[0]); strings.Contains(got, "dentro") || !strings.Contains(got, "fuera") {
		t.Errorf("compressed stream not filtered: %q", got)
	}
	if out.Filters()[0] != nil {
		t.Errorf("decoded stream should have no filters, got %v", out.Filters()[0])
	}
	if !bytes.Equal(out.Streams()[1], garbage) || out.Filters()[1][0] != "FlateDecode" {
		t.Error("undecodable stream should pass through with its filters")
	}
	if st.Undecodable != 1 {
		t.Errorf("expected 1 undecodable stream, got %d", st.Undecodable)
	}
}

// TestFilterPagesMarkerUndecodableLast tests that the key goes to the last
// stream that decodes when the final stream cannot be read
func TestFilterPagesMarkerUndecodableLast(t *testing.T) {
	garbage := []byte{0, 1, 2, 3, 0xff}
	page := &MemoryPage{
		H:        800,
		Contents: [][]byte{[]byte(twoTexts), garbage},
		Encoding: [][]string{nil, {"FlateDecode"}},
	}

	s := NewSession()
	s.AddRegion(Table, 0, model.NewRect(0, 0, 200, 100))
	sink := NewMemoryDocument()
	opts := DefaultOptions()
	opts.Markers = true
	if _, err := FilterPages(context.Background(), NewMemoryDocument(page), sink, s, opts); err != nil {
		t.Fatalf("FilterPages failed: %v", err)
	}

	out := outputs(t, sink)[0]
	if got := string(out.Streams()[0]); !strings.Contains(got, "Llave_Unica_Tabla_1_1") || strings.Contains(got, "dentro") {
		t.Errorf("first stream lacks the key or kept the table: %q", got)
	}
	if !bytes.Equal(out.Streams()[1], garbage) {
		t.Error("undecodable stream should pass through unchanged")
	}
}

// TestFilterPagesSourceError tests that a page read error stops the run
func TestFilterPagesSourceError(t *testing.T) {
	s := NewSession()
	s.AddRegion(Table, 0, model.NewRect(0, 0, 10, 10))

	sink := NewMemoryDocument()
	_, err := FilterPages(context.Background(), failingSource{n: 1}, sink, s, DefaultOptions())
	if err == nil || !strings.Contains(err.Error(), "damaged") {
		t.Fatalf("expected page error, got %v", err)
	}
	if sink.NumPages() != 0 {
		t.Error("nothing should be written on failure")
	}
}

// TestFilterPagesCanceled tests that a canceled context is reported
func TestFilterPagesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSession()
	s.AddRegion(Table, 0, model.NewRect(0, 0, 10, 10))
	_, err := FilterPages(ctx, NewMemoryDocument(textPage(twoTexts)), NewMemoryDocument(), s, DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// TestMarkTables tests one output per page with every table replaced
func TestMarkTables(t *testing.T) {
	s := NewSession()
	s.AddRegion(Table, 0, model.NewRect(0, 0, 200, 100))
	s.AddRegion(Table, 0, model.NewRect(0, 650, 200, 750))

	sink := NewMemoryDocument()
	if _, err := MarkTables(context.Background(), NewMemoryDocument(textPage(twoTexts), textPage(twoTexts)), sink, s, DefaultOptions()); err != nil {
		t.Fatalf("MarkTables failed: %v", err)
	}

	out := outputs(t, sink)
	if len(out) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(out))
	}
	first := streamOf(t, out[0])
	if strings.Contains(first, "dentro") || strings.Contains(first, "fuera") {
		t.Errorf("tables not removed: %q", first)
	}
	if !strings.Contains(first, "Llave_Unica_Tabla_1_1") || !strings.Contains(first, "Llave_Unica_Tabla_1_2") {
		t.Errorf("missing keys in %q", first)
	}
	if got := streamOf(t, out[1]); got != twoTexts {
		t.Errorf("page without tables changed: %q", got)
	}
}

// TestCutRegions tests that each region keeps only its own content
func TestCutRegions(t *testing.T) {
	plan := []Region{
		{Key: ColumnLeft, Page: 0, Rect: model.NewRect(0, 0, 200, 100)},
		{Key: ColumnLeft, Page: 0, Rect: model.NewRect(0, 650, 200, 750)},
		{Key: Footer, Page: 5, Rect: model.NewRect(0, 0, 10, 10)},
	}

	sink := NewMemoryDocument()
	if _, err := CutRegions(context.Background(), NewMemoryDocument(textPage(twoTexts)), sink, plan, DefaultOptions()); err != nil {
		t.Fatalf("CutRegions failed: %v", err)
	}

	out := outputs(t, sink)
	if len(out) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(out))
	}
	if got := streamOf(t, out[0]); !strings.Contains(got, "dentro") || strings.Contains(got, "fuera") {
		t.Errorf("top region wrong: %q", got)
	}
	if got := streamOf(t, out[1]); strings.Contains(got, "dentro") || !strings.Contains(got, "fuera") {
		t.Errorf("bottom region wrong: %q", got)
	}
}

// TestReplaceImages tests image keys numbered across a page's streams
func TestReplaceImages(t *testing.T) {
	page := &MemoryPage{H: 800, Contents: [][]byte{
		[]byte("q\n200 0 0 100 50 60 cm\n/Im1 Do\nQ"),
		[]byte("q\n10 0 0 10 5 5 cm\n/Im2 Do\nQ"),
	}}

	sink := NewMemoryDocument()
	refs, st, err := ReplaceImages(context.Background(), NewMemoryDocument(textPage(twoTexts), page), sink, DefaultOptions())
	if err != nil {
		t.Fatalf("ReplaceImages failed: %v", err)
	}
	if len(refs) != 2 || st.StrippedObjects != 2 {
		t.Fatalf("expected 2 images, got %+v (stats %+v)", refs, st)
	}
	if refs[0].Key != "Llave_Unica_Imagen_2_1" || refs[0].Name != "Im1" || refs[0].Page != 1 {
		t.Errorf("unexpected first ref %+v", refs[0])
	}
	if refs[1].Key != "Llave_Unica_Imagen_2_2" || refs[1].At != (model.Point{X: 5, Y: 5}) {
		t.Errorf("unexpected second ref %+v", refs[1])
	}

	out := outputs(t, sink)
	if got := string(out[1].Streams()[1]); !strings.Contains(got, "Llave_Unica_Imagen_2_2") {
		t.Errorf("second stream lacks its key: %q", got)
	}
}
