package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor returns an attribute carried by ctx, if any.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// ContextHandler adds attributes taken from the record's context before
// passing the record on. An extracted attribute is dropped when its key is
// empty or already present, either on the record itself or bound at top level
// through WithAttrs. The first extractor to yield a key wins.
type ContextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
	bound      map[string]struct{}
	grouped    bool
}

// NewContextHandler wraps next. Nil extractors are ignored.
func NewContextHandler(next slog.Handler, extractors ...ContextExtractor) *ContextHandler {
	h := &ContextHandler{next: next, bound: map[string]struct{}{}}
	for _, ex := range extractors {
		if ex != nil {
			h.extractors = append(h.extractors, ex)
		}
	}
	return h
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if len(h.extractors) == 0 {
		return h.next.Handle(ctx, rec)
	}

	seen := make(map[string]struct{}, rec.NumAttrs()+len(h.extractors))
	if !h.grouped {
		rec.Attrs(func(a slog.Attr) bool {
			seen[a.Key] = struct{}{}
			return true
		})
	}

	extra := make([]slog.Attr, 0, len(h.extractors))
	for _, ex := range h.extractors {
		attr, ok := ex(ctx)
		if !ok || attr.Key == "" {
			continue
		}
		if _, dup := seen[attr.Key]; dup {
			continue
		}
		if _, dup := h.bound[attr.Key]; dup && !h.grouped {
			continue
		}
		seen[attr.Key] = struct{}{}
		extra = append(extra, attr)
	}
	rec.AddAttrs(extra...)
	return h.next.Handle(ctx, rec)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone(h.next.WithAttrs(attrs))
	if !h.grouped {
		for _, a := range attrs {
			clone.bound[a.Key] = struct{}{}
		}
	}
	return clone
}

// WithGroup nests later attributes, extracted ones included. Duplicate keys
// are only suppressed outside of groups.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone(h.next.WithGroup(name))
	clone.grouped = true
	return clone
}

func (h *ContextHandler) clone(next slog.Handler) *ContextHandler {
	bound := make(map[string]struct{}, len(h.bound))
	for k := range h.bound {
		bound[k] = struct{}{}
	}
	return &ContextHandler{
		next:       next,
		extractors: h.extractors,
		bound:      bound,
		grouped:    h.grouped,
	}
}
