package repl_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vendkit/pkg/catalog"
	"github.com/dmitrymomot/vendkit/pkg/repl"
	"github.com/dmitrymomot/vendkit/pkg/terminal"
)

func newREPL() (*repl.REPL, *terminal.Terminal) {
	term := terminal.New(catalog.Default().Start())
	return repl.New(term, repl.WithPrompt("")), term
}

func run(t *testing.T, script string) string {
	t.Helper()
	r, _ := newREPL()
	out := &bytes.Buffer{}
	require.NoError(t, r.Run(context.Background(), strings.NewReader(script), out))
	return out.String()
}

func TestReferenceSession(t *testing.T) {
	t.Parallel()

	out := run(t, strings.Join([]string{
		"select water",
		"insert 1 1 2",
		"buy",
		"insert 10",
		"buy",
		"select water",
		"select soda",
		"insert 50",
		"buy",
		"quit",
		"show",
	}, "\n"))

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"selected Water for 10, insert coins",
		"paid 4, due 6",
		"error: you have to add 6 money to buy Water product",
		"paid 14, due 0",
		"here is your Water, change [2 2]",
		"error: there is no such Water product anymore",
		"selected Soda for 11, insert coins",
		"paid 50, due 0",
		"error: there is not enough money to give change from 39",
		"bye",
	}, lines)
}

func TestCancel(t *testing.T) {
	t.Parallel()

	out := run(t, "select soda\ninsert 10 1\ncancel\nselect soda\ncancel\n")
	assert.Contains(t, out, "cancelled, returning [10 1]\n")
	assert.True(t, strings.HasSuffix(out, "cancelled\n"))
}

func TestInputErrors(t *testing.T) {
	t.Parallel()

	out := run(t, strings.Join([]string{
		"",
		"dance",
		"buy",
		"select",
		"select coffee",
		"select juice",
		"select water",
		"insert",
		"insert 3",
		"insert ten",
	}, "\n"))

	assert.Contains(t, out, `error: unknown command "dance", type help`)
	assert.Contains(t, out, "error: cannot buy while awaiting a selection")
	assert.Contains(t, out, "error: usage: select <product>")
	assert.Contains(t, out, "error: unknown product name")
	assert.Contains(t, out, "error: there is no Juice product in this machine")
	assert.Contains(t, out, "error: usage: insert <coin>...")
	assert.Contains(t, out, "error: unknown coin denomination: 3")
	assert.Equal(t, 8, strings.Count(out, "error: "))
}

func TestShowAndHelp(t *testing.T) {
	t.Parallel()

	out := run(t, "HELP\nselect water\ninsert 5\nshow\n")
	assert.Contains(t, out, "commands:")
	assert.Contains(t, out, "phase: payment")
	assert.Contains(t, out, "Water  price  10  left 1")
	assert.Contains(t, out, "   50 x 1")
	assert.Contains(t, out, "total: 88")
	assert.Contains(t, out, "buying Water: paid 5, due 5")
}

func TestExec(t *testing.T) {
	t.Parallel()
	r, term := newREPL()
	ctx := context.Background()
	out := &bytes.Buffer{}

	quit, err := r.Exec(ctx, "  select   Soda ", out)
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, terminal.PhasePayment, term.Phase())

	_, err = r.Exec(ctx, "fly", out)
	assert.True(t, errors.Is(err, repl.ErrUnknownCommand))

	quit, err = r.Exec(ctx, "exit", out)
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestRunPrompt(t *testing.T) {
	t.Parallel()
	term := terminal.New(catalog.Default().Start())
	r := repl.New(term)

	out := &bytes.Buffer{}
	require.NoError(t, r.Run(context.Background(), strings.NewReader("help\n"), out))
	assert.True(t, strings.HasPrefix(out.String(), "> commands:"))
	assert.True(t, strings.HasSuffix(out.String(), "> "))
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()
	r, _ := newREPL()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Run(ctx, strings.NewReader("show\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunStopsWhileWaitingForInput(t *testing.T) {
	t.Parallel()
	r, _ := newREPL()

	in, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, in, io.Discard) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run kept waiting for input after the context was cancelled")
	}
}

func TestRunStopsAfterLineOnCancel(t *testing.T) {
	t.Parallel()
	r, term := newREPL()

	in, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	out := &bytes.Buffer{}
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, in, out) }()

	_, err := io.WriteString(w, "select water\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return term.Phase() == terminal.PhasePayment
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}
