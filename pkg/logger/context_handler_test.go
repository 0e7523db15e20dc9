package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vendkit/pkg/logger"
)

type sessionKey struct{}

func sessionFromContext(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(sessionKey{}).(string)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.SessionID(id), true
}

func newContextLogger(buf *bytes.Buffer, extractors ...logger.ContextExtractor) *slog.Logger {
	return slog.New(logger.NewContextHandler(slog.NewJSONHandler(buf, nil), extractors...))
}

func withSession(id string) context.Context {
	return context.WithValue(context.Background(), sessionKey{}, id)
}

func TestContextHandler(t *testing.T) {
	t.Parallel()

	t.Run("adds extracted attribute", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := newContextLogger(buf, nil, sessionFromContext)

		log.InfoContext(withSession("s-1"), "selected")
		assert.Equal(t, "s-1", decode(t, buf)["session_id"])

		buf.Reset()
		log.InfoContext(context.Background(), "selected")
		assert.NotContains(t, decode(t, buf), "session_id")
	})

	t.Run("skips attributes without key", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := newContextLogger(buf, func(context.Context) (slog.Attr, bool) {
			return slog.Attr{Value: slog.StringValue("orphan")}, true
		})

		log.InfoContext(context.Background(), "msg")
		assert.NotContains(t, buf.String(), "orphan")
	})

	t.Run("record attribute wins", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := newContextLogger(buf, sessionFromContext)

		log.InfoContext(withSession("from-ctx"), "sold", logger.SessionID("explicit"))
		assert.Equal(t, 1, strings.Count(buf.String(), `"session_id"`))
		assert.Equal(t, "explicit", decode(t, buf)["session_id"])
	})

	t.Run("bound attribute wins", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := newContextLogger(buf, sessionFromContext).With(logger.SessionID("bound"))

		log.InfoContext(withSession("from-ctx"), "sold")
		assert.Equal(t, 1, strings.Count(buf.String(), `"session_id"`))
		assert.Equal(t, "bound", decode(t, buf)["session_id"])
	})

	t.Run("first extractor wins", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		fixed := func(context.Context) (slog.Attr, bool) { return logger.SessionID("fallback"), true }
		log := newContextLogger(buf, sessionFromContext, fixed)

		log.InfoContext(withSession("s-2"), "msg")
		assert.Equal(t, 1, strings.Count(buf.String(), `"session_id"`))
		assert.Equal(t, "s-2", decode(t, buf)["session_id"])
	})

	t.Run("extracted attribute follows group", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := newContextLogger(buf, sessionFromContext).
			With(logger.SessionID("outer")).
			WithGroup("purchase")

		log.InfoContext(withSession("inner"), "msg", logger.Component("terminal"))
		entry := decode(t, buf)
		assert.Equal(t, "outer", entry["session_id"])
		group, ok := entry["purchase"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "inner", group["session_id"])
		assert.Equal(t, "terminal", group["component"])
	})

	t.Run("enabled follows wrapped handler", func(t *testing.T) {
		t.Parallel()
		h := logger.NewContextHandler(
			slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}),
			sessionFromContext,
		)
		assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
		assert.True(t, h.Enabled(context.Background(), slog.LevelError))
	})
}
