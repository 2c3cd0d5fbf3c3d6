package curation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/contentstream"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// Key names the kind of a selected area
type Key string

const (
	HeaderLeft     Key = "header_left"
	HeaderRight    Key = "header_right"
	ColumnLeft     Key = "column_left"
	ColumnRight    Key = "column_right"
	Footer         Key = "footer"
	Table          Key = "table"
	ImageException Key = "image_exception"

	// Single column layout used for documents meant for narrow screens
	MobileHeader Key = "mobile_header"
	MobileColumn Key = "mobile_column"
	MobileFooter Key = "mobile_footer"
)

// layoutKeys are the areas drawn once and reused on every page
var layoutKeys = map[Key]bool{
	HeaderLeft:   true,
	HeaderRight:  true,
	ColumnLeft:   true,
	ColumnRight:  true,
	Footer:       true,
	MobileHeader: true,
	MobileColumn: true,
	MobileFooter: true,
}

var (
	// ErrUnknownKey is returned for an area key the session does not know
	ErrUnknownKey = errors.New("curation: unknown area key")

	// ErrMissingArea is returned when a required layout area is not defined
	ErrMissingArea = errors.New("curation: required area not defined")
)

// DefaultZoom is the raster scale used for table crops
const DefaultZoom = 4.0

// Region is one area of one page. Rect uses page points with the origin at
// the top-left corner.
type Region struct {
	Key  Key        `json:"key"`
	Page int        `json:"page"`
	Rect model.Rect `json:"rect"`
}

func (r Region) String() string {
	return fmt.Sprintf("%s@%d(%.1f,%.1f,%.1f,%.1f)", r.Key, r.Page,
		r.Rect.Left, r.Rect.Top, r.Rect.Right, r.Rect.Bottom)
}

// Session holds every area selected for a document
type Session struct {
	// Layout holds the areas shared by all pages
	Layout map[Key]model.Rect

	// Tables holds the table areas of each page in selection order
	Tables map[int][]model.Rect

	// Exceptions holds areas kept intact by filtering and ignored by
	// perimeter checks
	Exceptions contentstream.ExceptionSet

	// Skip holds the pages whose perimeter check is not run
	Skip map[int]bool

	Mobile  bool
	Zoom    float64
	Margins model.Margins
}

// NewSession creates an empty session with default zoom and margins
func NewSession() *Session {
	return &Session{
		Layout:     make(map[Key]model.Rect),
		Tables:     make(map[int][]model.Rect),
		Exceptions: make(contentstream.ExceptionSet),
		Skip:       make(map[int]bool),
		Zoom:       DefaultZoom,
		Margins:    model.DefaultMargins,
	}
}

// AddRegion records an area. Layout areas replace any previous selection
// with the same key and ignore page; tables and exceptions accumulate per
// page.
func (s *Session) AddRegion(key Key, page int, r model.Rect) error {
	r = r.Normalize()
	switch {
	case key == Table:
		s.Tables[page] = append(s.Tables[page], r)
	case key == ImageException:
		s.AddException(page, r)
	case layoutKeys[key]:
		s.Layout[key] = r
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// AddException records an exception area on a page
func (s *Session) AddException(page int, r model.Rect) {
	s.Exceptions.Add(page, r.Normalize())
}

// SkipPage toggles the perimeter check of a page
func (s *Session) SkipPage(page int) {
	if s.Skip[page] {
		delete(s.Skip, page)
		return
	}
	s.Skip[page] = true
}

// Skipped reports whether the perimeter check of page is disabled
func (s *Session) Skipped(page int) bool {
	return s.Skip[page]
}

// Regions returns the table regions of a page in selection order
func (s *Session) Regions(page int) []Region {
	rects := s.Tables[page]
	out := make([]Region, len(rects))
	for i, r := range rects {
		out[i] = Region{Key: Table, Page: page, Rect: r}
	}
	return out
}

// TablePages returns the pages holding at least one table, ascending
func (s *Session) TablePages() []int {
	var pages []int
	for p, rects := range s.Tables {
		if len(rects) > 0 {
			pages = append(pages, p)
		}
	}
	sort.Ints(pages)
	return pages
}

// Check reports the first required layout area that is missing. The mobile
// layout needs its header and column; the regular one needs both header
// halves, both columns and the footer.
func (s *Session) Check() error {
	required := []Key{HeaderLeft, HeaderRight, ColumnLeft, ColumnRight, Footer}
	if s.Mobile {
		required = []Key{MobileHeader, MobileColumn}
	}
	for _, k := range required {
		if _, ok := s.Layout[k]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingArea, k)
		}
	}
	return nil
}

// perimeterExceptions returns the areas ignored by the perimeter check of a
// page. The mobile header stands in for the exceptions in mobile mode.
func (s *Session) perimeterExceptions(page int) []model.Rect {
	if !s.Mobile {
		return s.Exceptions[page]
	}
	if h, ok := s.Layout[MobileHeader]; ok && page == 0 {
		return []model.Rect{h}
	}
	return nil
}

type sessionFile struct {
	Zoom       float64              `json:"zoom,omitempty"`
	Margins    *model.Margins       `json:"margins,omitempty"`
	Mobile     bool                 `json:"mobile,omitempty"`
	Layout     map[Key]model.Rect   `json:"layout,omitempty"`
	Tables     map[int][]model.Rect `json:"tables,omitempty"`
	Exceptions map[int][]model.Rect `json:"exceptions,omitempty"`
	Skip       []int                `json:"skip,omitempty"`
}

// ReadSession decodes a session from its JSON form. Missing zoom and
// margins take their defaults.
func ReadSession(r io.Reader) (*Session, error) {
	var f sessionFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("curation: decoding session: %w", err)
	}

	s := NewSession()
	s.Mobile = f.Mobile
	if f.Zoom > 0 {
		s.Zoom = f.Zoom
	}
	if f.Margins != nil {
		s.Margins = *f.Margins
	}
	for k, r := range f.Layout {
		if !layoutKeys[k] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, k)
		}
		s.Layout[k] = r.Normalize()
	}
	for page, rects := range f.Tables {
		for _, r := range rects {
			s.Tables[page] = append(s.Tables[page], r.Normalize())
		}
	}
	for page, rects := range f.Exceptions {
		for _, r := range rects {
			s.AddException(page, r)
		}
	}
	for _, p := range f.Skip {
		s.Skip[p] = true
	}
	return s, nil
}

// LoadSession reads a session file
func LoadSession(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("curation: opening session: %w", err)
	}
	defer f.Close()
	return ReadSession(f)
}

// Write encodes the session as indented JSON
func (s *Session) Write(w io.Writer) error {
	margins := s.Margins
	f := sessionFile{
		Zoom:       s.Zoom,
		Margins:    &margins,
		Mobile:     s.Mobile,
		Layout:     s.Layout,
		Tables:     s.Tables,
		Exceptions: s.Exceptions,
	}
	for p := range s.Skip {
		f.Skip = append(f.Skip, p)
	}
	sort.Ints(f.Skip)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}
