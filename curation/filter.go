package curation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/contentstream"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/internal/logger"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

var log = logger.Get("curation")

// Stats sums the stream rewrites of one run
type Stats struct {
	Pages           int
	RemovedLines    int
	StrippedObjects int
	Malformed       int

	// Undecodable counts streams copied unchanged because they could not
	// be decoded
	Undecodable int
}

func (s *Stats) add(r contentstream.Result) {
	s.RemovedLines += r.RemovedLines
	s.StrippedObjects += r.StrippedObjects
	s.Malformed += r.Malformed
}

func (s *Stats) merge(o Stats) {
	s.Pages += o.Pages
	s.RemovedLines += o.RemovedLines
	s.StrippedObjects += o.StrippedObjects
	s.Malformed += o.Malformed
	s.Undecodable += o.Undecodable
}

// pass rewrites one decoded stream; mark is set for the stream that
// receives markers.
type pass func(content []byte, mark bool) contentstream.Result

// rewrite applies the passes in order to every stream of p and returns the
// new page. Decoded streams are stored without filters; streams that fail
// to decode keep their bytes and filters. Markers go to the last stream
// that decodes.
func rewrite(p Page, passes ...pass) (Page, Stats) {
	var st Stats
	streams := p.Streams()
	filters := p.Filters()

	decoded := make([][]byte, len(streams))
	ok := make([]bool, len(streams))
	names := make([][]string, len(streams))
	markAt := -1
	for i, raw := range streams {
		if i < len(filters) {
			names[i] = filters[i]
		}
		content, err := contentstream.DecodeStream(raw, names[i])
		if err != nil {
			log.Warn("leaving stream unmodified", "stream", i, "error", err, "bytes", len(raw))
			continue
		}
		decoded[i], ok[i] = content, true
		markAt = i
	}
	if len(streams) > 0 && markAt < 0 {
		log.Warn("page has no decodable stream, markers cannot be written", "streams", len(streams))
	} else if markAt >= 0 && markAt < len(streams)-1 {
		log.Debug("markers moved to the last decodable stream", "stream", markAt)
	}

	outStreams := make([][]byte, len(streams))
	outFilters := make([][]string, len(streams))
	for i, raw := range streams {
		if !ok[i] {
			outStreams[i] = raw
			outFilters[i] = names[i]
			st.Undecodable++
			continue
		}
		content := decoded[i]
		for _, fn := range passes {
			res := fn(content, i == markAt)
			st.add(res)
			content = res.Content
		}
		outStreams[i] = content
	}
	st.Pages = 1
	return p.WithStreams(outStreams, outFilters), st
}

// removeArea builds a pass dropping the content inside spec's target, with
// an optional marker written in the marked stream.
func removeArea(spec contentstream.AreaSpec, marker string) pass {
	return func(content []byte, mark bool) contentstream.Result {
		if marker != "" && mark {
			return contentstream.FilterStreamWithMarker(content, spec, marker)
		}
		return contentstream.FilterStream(content, spec)
	}
}

// areaSpec converts a top-left region of a page into the bottom-left spec
// used on its content, carrying the page's exceptions that touch it.
func (s *Session) areaSpec(page int, r model.Rect, height float64, mode contentstream.Mode) contentstream.AreaSpec {
	flipped := make(contentstream.ExceptionSet)
	for _, ex := range s.Exceptions[page] {
		flipped.Add(page, ex.FlipY(height))
	}
	spec := flipped.For(page, r.FlipY(height))
	spec.Mode = mode
	return spec
}

// pageWork produces the output pages of input page number page; i is its
// position in the run.
type pageWork func(i, page int, p Page) ([]Page, Stats)

// run processes pages concurrently, at most opts.Workers at a time, and
// appends their outputs to sink in the order of pages.
func run(ctx context.Context, src PageSource, sink PageSink, pages []int, opts Options, work pageWork) (Stats, error) {
	opts = opts.withDefaults()
	outputs := make([][]Page, len(pages))
	stats := make([]Stats, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := src.Page(page)
			if err != nil {
				return fmt.Errorf("curation: reading page %d: %w", page, err)
			}
			outputs[i], stats[i] = work(i, page, p)
			log.Debug("page processed", "page", page, "outputs", len(outputs[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	var total Stats
	for i, out := range outputs {
		for _, p := range out {
			if err := sink.Append(p); err != nil {
				return total, fmt.Errorf("curation: writing output of page %d: %w", pages[i], err)
			}
		}
		total.merge(stats[i])
	}
	return total, nil
}

// FilterPages writes one page per table region with the region's content
// removed, each made from its own copy of the source page. With
// opts.Markers the region's table key is written where the table was.
func FilterPages(ctx context.Context, src PageSource, sink PageSink, s *Session, opts Options) (Stats, error) {
	pages := inRange(s.TablePages(), src.NumPages())
	return run(ctx, src, sink, pages, opts, func(_, page int, p Page) ([]Page, Stats) {
		var out []Page
		var total Stats
		for idx, r := range s.Regions(page) {
			marker := ""
			if opts.Markers {
				marker = contentstream.TableKey(page, idx)
			}
			spec := s.areaSpec(page, r.Rect, p.Height(), contentstream.RemoveInside)
			np, st := rewrite(p, removeArea(spec, marker))
			out = append(out, np)
			total.merge(st)
		}
		return out, total
	})
}

// MarkTables writes every source page with all of its table regions
// removed, each replaced by its table key.
func MarkTables(ctx context.Context, src PageSource, sink PageSink, s *Session, opts Options) (Stats, error) {
	return run(ctx, src, sink, allPages(src.NumPages()), opts, func(_, page int, p Page) ([]Page, Stats) {
		var passes []pass
		for idx, r := range s.Regions(page) {
			spec := s.areaSpec(page, r.Rect, p.Height(), contentstream.RemoveInside)
			passes = append(passes, removeArea(spec, contentstream.TableKey(page, idx)))
		}
		np, st := rewrite(p, passes...)
		return []Page{np}, st
	})
}

// CutRegions writes one page per planned region keeping only the content
// inside it.
func CutRegions(ctx context.Context, src PageSource, sink PageSink, plan []Region, opts Options) (Stats, error) {
	byPage := make(map[int][]Region)
	var pages []int
	for _, r := range plan {
		if _, seen := byPage[r.Page]; !seen {
			pages = append(pages, r.Page)
		}
		byPage[r.Page] = append(byPage[r.Page], r)
	}
	pages = inRange(pages, src.NumPages())

	return run(ctx, src, sink, pages, opts, func(_, page int, p Page) ([]Page, Stats) {
		var out []Page
		var total Stats
		for _, r := range byPage[page] {
			spec := contentstream.AreaSpec{
				Target: r.Rect.FlipY(p.Height()),
				Mode:   contentstream.KeepInside,
			}
			np, st := rewrite(p, removeArea(spec, ""))
			out = append(out, np)
			total.merge(st)
		}
		return out, total
	})
}

// ImageRef records an image invocation replaced by a key
type ImageRef struct {
	Page int
	Key  string
	Name string
	At   model.Point
}

// ReplaceImages writes every source page with its image invocations
// replaced by image keys, and returns the replaced images in page order.
func ReplaceImages(ctx context.Context, src PageSource, sink PageSink, opts Options) ([]ImageRef, Stats, error) {
	pages := allPages(src.NumPages())
	refs := make([][]ImageRef, len(pages))

	st, err := run(ctx, src, sink, pages, opts, func(i, page int, p Page) ([]Page, Stats) {
		// numbering runs across all streams of the page
		count := 0
		np, st := rewrite(p, func(content []byte, _ bool) contentstream.Result {
			base := count
			res, placed := contentstream.ReplaceImages(content, func(n int) string {
				return contentstream.ImageKey(page, base+n-1)
			})
			for _, pl := range placed {
				refs[i] = append(refs[i], ImageRef{
					Page: page,
					Key:  contentstream.ImageKey(page, base+pl.Index-1),
					Name: pl.Name,
					At:   pl.At,
				})
			}
			count += len(placed)
			return res
		})
		return []Page{np}, st
	})
	if err != nil {
		return nil, Stats{}, err
	}

	var out []ImageRef
	for _, r := range refs {
		out = append(out, r...)
	}
	return out, st, nil
}

func allPages(n int) []int {
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i
	}
	return pages
}

// inRange drops page numbers outside [0,n) with a warning
func inRange(pages []int, n int) []int {
	out := pages[:0:0]
	for _, p := range pages {
		if p < 0 || p >= n {
			log.Warn("region on missing page ignored", "page", p, "pages", n)
			continue
		}
		out = append(out, p)
	}
	return out
}
