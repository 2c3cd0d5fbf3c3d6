// Command curar runs the curation steps on files: region plans, table
// extraction from crop rasters and content stream rewriting.
//
// Usage:
//
//	curar plan -session sesion.json -pages 12
//	curar table -image tabla.png -crop 100,200,300,400 [-words palabras.json] [-stream contenido.bin -height 792] [-ocr] [-html] [-backend opencv]
//	curar tables -session sesion.json -dir tablas [-words palabras.json] [-workers 4]
//	curar filter -in contenido.bin -out salida.bin -rect 0,0,200,100 -height 792 [-keep] [-marker texto]
//	curar strip-text -in contenido.bin -out salida.bin
//	curar images -in contenido.bin -out salida.bin -page 0
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/contentstream"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/contour"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/curation"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/internal/logger"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/ocr"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/raster"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/tables"
)

var log = logger.Get("curar")

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{"plan", "list the regions cut from a document", runPlan},
	{"table", "extract one table from a crop raster", runTable},
	{"tables", "extract every table of a session", runTables},
	{"filter", "remove or keep the content of an area of a stream", runFilter},
	{"strip-text", "remove every text line of a stream", runStripText},
	{"images", "replace the images of a stream by keys", runImages},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	for _, c := range commands {
		if c.name == os.Args[1] {
			if err := c.run(os.Args[2:]); err != nil {
				log.Error("command failed", "command", c.name, "error", err)
				os.Exit(1)
			}
			return
		}
	}
	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: curar <command> [flags]")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-11s %s\n", c.name, c.usage)
	}
}

// parseRect reads "left,top,right,bottom"
func parseRect(s string) (model.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return model.Rect{}, fmt.Errorf("rectangle %q needs four comma separated numbers", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.Rect{}, fmt.Errorf("rectangle %q: %w", s, err)
		}
		v[i] = f
	}
	return model.NewRect(v[0], v[1], v[2], v[3]), nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// readWords loads a JSON word list, either a plain array or an object
// keyed by page number
func readWords(path string) (map[int][]model.Word, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var byPage map[int][]model.Word
	if err := json.Unmarshal(data, &byPage); err == nil {
		return byPage, nil
	}
	var words []model.Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("reading words %s: %w", path, err)
	}
	return map[int][]model.Word{0: words}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runPlan(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	sessionPath := fs.String("session", "", "session JSON file")
	pages := fs.Int("pages", 0, "number of pages of the document")
	fs.Parse(args)

	s, err := curation.LoadSession(*sessionPath)
	if err != nil {
		return err
	}
	if err := s.Check(); err != nil {
		return err
	}
	return writeJSON(os.Stdout, curation.Plan(s, *pages))
}

// useBackend switches the pipeline's detector to the named contour backend
func useBackend(tp *curation.TablePipeline, name string) error {
	b, err := contour.BackendByName(name)
	if err != nil {
		return err
	}
	cfg := tp.Detector.Config()
	cfg.Backend = b
	return tp.Detector.Configure(cfg)
}

func runTable(args []string) error {
	fs := flag.NewFlagSet("table", flag.ExitOnError)
	image := fs.String("image", "", "table crop raster")
	cropFlag := fs.String("crop", "", "table region as left,top,right,bottom in page points")
	wordsPath := fs.String("words", "", "JSON word list in page points")
	useOCR := fs.Bool("ocr", false, "read the words from the raster with tesseract")
	streamPath := fs.String("stream", "", "content stream of the page, whose text adds words")
	height := fs.Float64("height", 792, "page height in points, used with -stream")
	lang := fs.String("lang", ocr.DefaultConfig().Language, "tesseract language")
	asHTML := fs.Bool("html", false, "write HTML instead of JSON")
	backend := fs.String("backend", "native", "contour backend, native or opencv")
	fs.Parse(args)

	crop, err := parseRect(*cropFlag)
	if err != nil {
		return err
	}
	words, err := readWords(*wordsPath)
	if err != nil {
		return err
	}

	tp := curation.NewTablePipeline(model.DefaultMargins)
	if err := useBackend(tp, *backend); err != nil {
		return err
	}
	if *streamPath != "" {
		found, err := streamWords(*streamPath, *height)
		if err != nil {
			return err
		}
		words = map[int][]model.Word{0: append(words[0], found...)}
	}
	if *useOCR {
		found, err := ocrWords(tp, *image, crop, *lang)
		if err != nil {
			return err
		}
		words = map[int][]model.Word{0: append(words[0], found...)}
	}

	results, err := tp.ExtractAll(context.Background(),
		[]curation.TableJob{{Crop: crop, Path: *image, Words: words[0]}}, 1)
	if err != nil {
		return err
	}
	res := results[0]
	if res.Err != nil {
		return res.Err
	}
	if *asHTML {
		return tables.RenderHTML(os.Stdout, res.Table)
	}
	return writeJSON(os.Stdout, res.Table)
}

// streamWords reads the words shown by a content stream file
func streamWords(path string, height float64) ([]model.Word, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	page := &curation.MemoryPage{H: height, Contents: [][]byte{raw}}
	words := curation.StreamWords(page)
	log.Debug("stream words read", "count", len(words))
	return words, nil
}

// ocrWords reads the words of a crop raster and moves them to page space
func ocrWords(tp *curation.TablePipeline, path string, crop model.Rect, lang string) ([]model.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := raster.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	config := ocr.DefaultConfig()
	config.Language = lang
	client, err := ocr.New(config)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	words, err := client.Words(data)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	log.Debug("ocr words read", "count", len(words))
	return tp.RasterWords(words, crop, b.Dx(), b.Dy()), nil
}

func runTables(args []string) error {
	fs := flag.NewFlagSet("tables", flag.ExitOnError)
	sessionPath := fs.String("session", "", "session JSON file")
	dir := fs.String("dir", ".", "directory holding tabla_<page>_<n>.png crops")
	wordsPath := fs.String("words", "", "JSON words by page, in page points")
	workers := fs.Int("workers", 0, "tables extracted at once (0 for one per CPU)")
	backend := fs.String("backend", "native", "contour backend, native or opencv")
	fs.Parse(args)

	s, err := curation.LoadSession(*sessionPath)
	if err != nil {
		return err
	}
	words, err := readWords(*wordsPath)
	if err != nil {
		return err
	}

	jobs := s.Jobs(words, func(page, index int) string {
		return filepath.Join(*dir, fmt.Sprintf("tabla_%d_%d.png", page+1, index+1))
	})
	tp := curation.NewTablePipeline(s.Margins)
	if err := useBackend(tp, *backend); err != nil {
		return err
	}
	results, err := tp.ExtractAll(context.Background(), jobs, *workers)
	if err != nil {
		return err
	}

	out := make(map[string]*model.Table, len(results))
	for _, r := range results {
		if r.Err != nil {
			log.Warn("table skipped", "key", r.Key, "error", r.Err)
			continue
		}
		out[r.Key] = r.Table
	}
	log.Info("tables extracted", "ok", len(out), "total", len(results))
	return writeJSON(os.Stdout, out)
}

// streamFlags are shared by the commands that rewrite one stream file
type streamFlags struct {
	in, out, filter *string
}

func addStreamFlags(fs *flag.FlagSet) streamFlags {
	return streamFlags{
		in:     fs.String("in", "", "content stream file"),
		out:    fs.String("out", "", "output file"),
		filter: fs.String("filter", "", "comma separated filters of the input, e.g. FlateDecode"),
	}
}

// rewriteFile applies fn to the decoded stream and writes the result
// uncompressed. An undecodable stream is copied as is.
func (f streamFlags) rewriteFile(fn func([]byte) contentstream.Result) error {
	raw, err := os.ReadFile(*f.in)
	if err != nil {
		return err
	}
	var res contentstream.Result
	out, ok := contentstream.FilterRaw(raw, splitList(*f.filter), func(content []byte) []byte {
		res = fn(content)
		return res.Content
	})
	if !ok {
		log.Warn("stream could not be decoded, copied unchanged", "file", *f.in)
	}
	log.Info("stream rewritten",
		"lines", res.RemovedLines,
		"xobjects", res.StrippedObjects,
		"malformed", res.Malformed)
	return os.WriteFile(*f.out, out, 0644)
}

func runFilter(args []string) error {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	sf := addStreamFlags(fs)
	rectFlag := fs.String("rect", "", "area as left,top,right,bottom with the origin at the top-left")
	height := fs.Float64("height", 792, "page height in points")
	keep := fs.Bool("keep", false, "keep the area and remove everything else")
	marker := fs.String("marker", "", "text written at the removed area")
	except := fs.String("except", "", "semicolon separated exception areas")
	fs.Parse(args)

	r, err := parseRect(*rectFlag)
	if err != nil {
		return err
	}
	spec := contentstream.AreaSpec{Target: r.FlipY(*height)}
	if *keep {
		spec.Mode = contentstream.KeepInside
	}
	for _, e := range strings.Split(*except, ";") {
		if e == "" {
			continue
		}
		ex, err := parseRect(e)
		if err != nil {
			return err
		}
		spec.Exceptions = append(spec.Exceptions, ex.FlipY(*height))
	}

	return sf.rewriteFile(func(content []byte) contentstream.Result {
		if *marker != "" {
			return contentstream.FilterStreamWithMarker(content, spec, *marker)
		}
		return contentstream.FilterStream(content, spec)
	})
}

func runStripText(args []string) error {
	fs := flag.NewFlagSet("strip-text", flag.ExitOnError)
	sf := addStreamFlags(fs)
	fs.Parse(args)
	return sf.rewriteFile(contentstream.StripText)
}

func runImages(args []string) error {
	fs := flag.NewFlagSet("images", flag.ExitOnError)
	sf := addStreamFlags(fs)
	page := fs.Int("page", 0, "zero based page number used in the keys")
	fs.Parse(args)

	return sf.rewriteFile(func(content []byte) contentstream.Result {
		res, placed := contentstream.ReplaceImages(content, func(n int) string {
			return contentstream.ImageKey(*page, n-1)
		})
		for _, p := range placed {
			fmt.Printf("%s\t%s\t%.2f\t%.2f\n", contentstream.ImageKey(*page, p.Index-1), p.Name, p.At.X, p.At.Y)
		}
		return res
	})
}
