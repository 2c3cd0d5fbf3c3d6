package curation

import (
	"sort"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// Plan lists the regions cut out of a document of the given page count, in
// output order. Regular layouts start with both header halves on the first
// page, give every page its left and right columns and end with the footer
// on the last page. On a page with exceptions each column is split into the
// pieces above, between and below them, and each exception becomes a region
// of its own. Mobile layouts are handled by planMobile.
func Plan(s *Session, pages int) []Region {
	if pages <= 0 {
		return nil
	}
	if s.Mobile {
		return planMobile(s, pages)
	}

	var out []Region
	add := func(key Key, page int, r model.Rect) {
		if r.Width() > 0 && r.Height() > 0 {
			out = append(out, Region{Key: key, Page: page, Rect: r})
		}
	}

	for _, k := range []Key{HeaderLeft, HeaderRight} {
		if r, ok := s.Layout[k]; ok {
			add(k, 0, r)
		}
	}

	columns := []Key{ColumnLeft, ColumnRight}
	for page := 0; page < pages; page++ {
		exceptions := sortedByTop(s.Exceptions[page])
		if len(exceptions) == 0 {
			for _, k := range columns {
				if r, ok := s.Layout[k]; ok {
					add(k, page, r)
				}
			}
			continue
		}

		// cursor is the top of the part of each column still to be cut
		cursor := make(map[Key]float64, len(columns))
		for _, k := range columns {
			cursor[k] = s.Layout[k].Top
		}
		for _, ex := range exceptions {
			for _, k := range columns {
				col, ok := s.Layout[k]
				if ok && cursor[k] < ex.Top {
					add(k, page, model.Rect{Left: col.Left, Top: cursor[k], Right: col.Right, Bottom: ex.Top})
				}
			}
			add(ImageException, page, ex)
			for _, k := range columns {
				cursor[k] = max(cursor[k], ex.Bottom)
			}
		}
		for _, k := range columns {
			col, ok := s.Layout[k]
			if ok && col.Bottom > cursor[k] {
				add(k, page, model.Rect{Left: col.Left, Top: cursor[k], Right: col.Right, Bottom: col.Bottom})
			}
		}
	}

	if r, ok := s.Layout[Footer]; ok {
		add(Footer, pages-1, r)
	}
	return out
}

// planMobile cuts a single column per page. The first page starts below the
// header, skipped pages stop at the top of the footer and the footer closes
// the last page.
func planMobile(s *Session, pages int) []Region {
	var out []Region
	header, hasHeader := s.Layout[MobileHeader]
	column, hasColumn := s.Layout[MobileColumn]
	footer, hasFooter := s.Layout[MobileFooter]

	if hasHeader {
		out = append(out, Region{Key: MobileHeader, Page: 0, Rect: header})
	}
	for page := 0; page < pages; page++ {
		switch {
		case s.Skipped(page) && hasColumn && hasFooter:
			out = append(out, Region{Key: MobileColumn, Page: page, Rect: model.Rect{
				Left: column.Left, Top: column.Top, Right: column.Right, Bottom: footer.Top,
			}})
		case page == 0 && hasHeader && hasColumn:
			if column.Bottom > header.Bottom {
				out = append(out, Region{Key: MobileColumn, Page: page, Rect: model.Rect{
					Left: column.Left, Top: header.Bottom, Right: column.Right, Bottom: column.Bottom,
				}})
			}
		case hasColumn:
			out = append(out, Region{Key: MobileColumn, Page: page, Rect: column})
		}
	}
	if hasFooter {
		out = append(out, Region{Key: MobileFooter, Page: pages - 1, Rect: footer})
	}
	return out
}

func sortedByTop(rects []model.Rect) []model.Rect {
	out := append([]model.Rect(nil), rects...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Top < out[j].Top })
	return out
}
