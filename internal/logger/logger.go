// Package logger provides the module-prefixed structured logger used across
// the curation packages.
//
// Output goes to stderr. CURACION_DEBUG=1 enables debug records,
// CURACION_COLOR=1 colours the level names and CURACION_LOG_FILE appends an
// uncoloured copy of every record, debug included, to the named file.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
)

var rootLogger *slog.Logger

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorWhite  = "\033[37m"
	colorGray   = "\033[90m"
)

func init() {
	level := slog.LevelInfo
	if debug, _ := strconv.ParseBool(os.Getenv("CURACION_DEBUG")); debug {
		level = slog.LevelDebug
	}
	colors, _ := strconv.ParseBool(os.Getenv("CURACION_COLOR"))

	var h slog.Handler = newHandler(os.Stderr, level, colors)
	if path := os.Getenv("CURACION_LOG_FILE"); path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger: cannot open %s: %v\n", path, err)
		} else {
			h = &multiHandler{handlers: []slog.Handler{h, newHandler(file, slog.LevelDebug, false)}}
		}
	}
	rootLogger = slog.New(h)
}

// Get returns a logger with the given module prefix for easier filtering
func Get(module string) *slog.Logger {
	return rootLogger.With("module", module)
}

// New builds a standalone logger writing to w. Used by the command line tool
// and by tests that inspect log output.
func New(w io.Writer, level slog.Level, module string) *slog.Logger {
	return slog.New(newHandler(w, level, false)).With("module", module)
}

type customHandler struct {
	mu         *sync.Mutex
	w          io.Writer
	level      slog.Level
	attrs      []slog.Attr
	group      string
	withColors bool
}

func newHandler(w io.Writer, level slog.Level, colors bool) *customHandler {
	return &customHandler{mu: &sync.Mutex{}, w: w, level: level, withColors: colors}
}

func (h *customHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *customHandler) Handle(_ context.Context, record slog.Record) error {
	var color, levelStr string
	switch record.Level {
	case slog.LevelDebug:
		color, levelStr = colorWhite, "DEBUG"
	case slog.LevelInfo:
		color, levelStr = colorBlue, "INFO"
	case slog.LevelWarn:
		color, levelStr = colorYellow, "WARNING"
	case slog.LevelError:
		color, levelStr = colorRed, "ERROR"
	default:
		color, levelStr = colorWhite, record.Level.String()
	}

	var module string
	var args []string
	add := func(a slog.Attr) {
		if a.Key == "module" {
			module = a.Value.String()
			return
		}
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		args = append(args, fmt.Sprintf("%s=%v", key, a.Value))
	}
	for _, a := range h.attrs {
		add(a)
	}
	record.Attrs(func(a slog.Attr) bool {
		add(a)
		return true
	})

	var sb strings.Builder
	// Format: [module] LEVEL: msg (args) [HH:MM:SS]
	if module != "" {
		if h.withColors {
			fmt.Fprintf(&sb, "%s[%s]%s ", colorGray, module, colorReset)
		} else {
			fmt.Fprintf(&sb, "[%s] ", module)
		}
	}
	if h.withColors {
		fmt.Fprintf(&sb, "%s%s%s: %s", color, levelStr, colorReset, record.Message)
	} else {
		fmt.Fprintf(&sb, "%s: %s", levelStr, record.Message)
	}
	if len(args) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(args, ", "))
	}
	fmt.Fprintf(&sb, " [%s]\n", record.Time.Format("15:04:05"))

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *customHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)
	c := *h
	c.attrs = newAttrs
	return &c
}

func (h *customHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.group = name
	return &c
}

type multiHandler struct {
	handlers []slog.Handler
}

func (mh *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range mh.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (mh *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range mh.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (mh *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := &multiHandler{}
	for _, h := range mh.handlers {
		out.handlers = append(out.handlers, h.WithAttrs(attrs))
	}
	return out
}

func (mh *multiHandler) WithGroup(name string) slog.Handler {
	out := &multiHandler{}
	for _, h := range mh.handlers {
		out.handlers = append(out.handlers, h.WithGroup(name))
	}
	return out
}
