// Package logging provides component loggers backed by log/slog and a
// colored console handler for the command line.
package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fatih/color"
)

// New returns a logger tagged with the component name. The logger resolves
// slog.Default at each call, so it can be created before Setup runs.
func New(component string) *slog.Logger {
	return slog.New(&defaultHandler{}).With("component", component)
}

// Setup installs a ConsoleHandler writing to w as the default logger.
func Setup(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(NewConsoleHandler(w, level)))
}

// Level returns the level used for the given verbosity.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelInfo
	}
	return slog.LevelWarn
}

type defaultHandler struct {
	wrap []func(slog.Handler) slog.Handler
}

func (h *defaultHandler) resolve() slog.Handler {
	handler := slog.Default().Handler()
	for _, wrap := range h.wrap {
		handler = wrap(handler)
	}
	return handler
}

func (h *defaultHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slog.Default().Handler().Enabled(ctx, level)
}

func (h *defaultHandler) Handle(ctx context.Context, record slog.Record) error {
	return h.resolve().Handle(ctx, record)
}

func (h *defaultHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(inner slog.Handler) slog.Handler { return inner.WithAttrs(attrs) })
}

func (h *defaultHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(func(inner slog.Handler) slog.Handler { return inner.WithGroup(name) })
}

func (h *defaultHandler) with(wrap func(slog.Handler) slog.Handler) *defaultHandler {
	chain := make([]func(slog.Handler) slog.Handler, 0, len(h.wrap)+1)
	chain = append(chain, h.wrap...)
	return &defaultHandler{wrap: append(chain, wrap)}
}

// ConsoleHandler writes one line per record: a colored level, the message
// and the attributes as key=value pairs.
type ConsoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

func NewConsoleHandler(w io.Writer, level slog.Leveler) *ConsoleHandler {
	return &ConsoleHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
	}
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgCyan),
	slog.LevelInfo:  color.New(color.FgGreen),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed, color.Bold),
}

func (h *ConsoleHandler) Handle(_ context.Context, record slog.Record) error {
	var buf bytes.Buffer

	label := fmt.Sprintf("%-5s", record.Level.String())
	if c, ok := levelColors[record.Level]; ok {
		label = c.Sprint(label)
	}
	buf.WriteString(label)
	buf.WriteByte(' ')
	buf.WriteString(record.Message)

	for _, attr := range h.attrs {
		writeAttr(&buf, "", attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(&buf, h.prefix, attr)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func writeAttr(buf *bytes.Buffer, prefix string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		for _, inner := range attr.Value.Group() {
			writeAttr(buf, prefix+attr.Key+".", inner)
		}
		return
	}
	fmt.Fprintf(buf, " %s%s=%v", prefix, attr.Key, attr.Value.Resolve().Any())
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		attr.Key = h.prefix + attr.Key
		clone.attrs = append(clone.attrs, attr)
	}
	return &clone
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

var _ slog.Handler = (*ConsoleHandler)(nil)
