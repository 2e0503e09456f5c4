package utils

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Level is the minimum level ColorHandler prints. The CLI lowers it to debug
// with --verbose.
var Level = new(slog.LevelVar)

type ColorHandler struct {
	mu    *sync.Mutex
	level slog.Leveler
	attrs []slog.Attr
	group string
}

func NewColorHandler() *ColorHandler {
	return &ColorHandler{mu: &sync.Mutex{}, level: Level}
}

func (h *ColorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *ColorHandler) Handle(_ context.Context, r slog.Record) error {
	var color lipgloss.Style
	switch r.Level {
	case slog.LevelDebug:
		color = Muted
	case slog.LevelInfo:
		color = Default
	case slog.LevelWarn:
		color = Warning
	case slog.LevelError:
		color = Fail
	default:
		color = Default
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	msg := Gray.Render(r.Time.Format(time.TimeOnly)) + " " + color.Render(r.Message)

	if r.Level == slog.LevelWarn {
		msg = Gray.Render(r.Time.Format(time.TimeOnly)) + " " + WarningWithBackground.Render("WARNING") + " " + color.Render(r.Message)
	}

	if r.Level == slog.LevelError {
		msg = Gray.Render(r.Time.Format(time.TimeOnly)) + " " + ErrorWithBackground.Render("✗ ERROR") + " " + color.Render(r.Message)
	}

	for _, a := range h.attrs {
		msg += " " + Muted.Render(a.Key) + "=" + fmt.Sprintf("%v", a.Value.Any())
	}

	r.Attrs(func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		msg += " " + Muted.Render(key) + "=" + fmt.Sprintf("%v", a.Value.Any())
		return true
	})

	_, err := fmt.Fprintln(Output, msg)
	return err
}

func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if h.group != "" {
		prefixed := make([]slog.Attr, len(attrs))
		for i, a := range attrs {
			prefixed[i] = slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
		}
		attrs = prefixed
	}
	return &ColorHandler{
		mu:    h.mu,
		level: h.level,
		attrs: append(slices.Clone(h.attrs), attrs...),
		group: h.group,
	}
}

func (h *ColorHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &ColorHandler{
		mu:    h.mu,
		level: h.level,
		attrs: h.attrs,
		group: group,
	}
}
