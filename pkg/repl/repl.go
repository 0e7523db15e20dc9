// Package repl is a line-oriented command interpreter over a terminal.Terminal.
//
// Each input line is one command. Failures such as an unknown product or an
// insufficient payment are printed and the loop goes on; only quit, exit,
// end of input or a cancelled context stop it.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/vendkit/pkg/logger"
	"github.com/dmitrymomot/vendkit/pkg/money"
	"github.com/dmitrymomot/vendkit/pkg/product"
	"github.com/dmitrymomot/vendkit/pkg/terminal"
)

// ErrUnknownCommand is returned by Exec for input that names no command.
var ErrUnknownCommand = errors.New("unknown command")

const helpText = `commands:
  show                 print phase, products and coins
  select <product>     start buying a product (water, juice, soda)
  insert <coin>...     insert coins (1 2 5 10 20 50)
  buy                  complete the purchase
  cancel               abandon the purchase and get the coins back
  help                 print this help
  quit | exit          leave
`

// Option configures a REPL.
type Option func(*REPL)

// WithPrompt sets the prompt written before each line. Empty disables it.
func WithPrompt(p string) Option {
	return func(r *REPL) { r.prompt = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *REPL) {
		if l != nil {
			r.log = l
		}
	}
}

// REPL reads commands and applies them to a terminal.
type REPL struct {
	term   *terminal.Terminal
	prompt string
	log    *slog.Logger
}

func New(term *terminal.Terminal, opts ...Option) *REPL {
	r := &REPL{term: term, prompt: "> ", log: logger.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("repl"))
	return r
}

// Run processes lines from in until quit, end of input or ctx is done.
// Cancelling ctx stops Run even while it waits for input.
// Only read errors and context cancellation are returned.
func (r *REPL) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	lines, readErr := readLines(ctx, in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.prompt != "" {
			fmt.Fprint(out, r.prompt)
		}

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			return err
		case line = <-lines:
		}

		quit, err := r.Exec(ctx, line, out)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			r.log.DebugContext(ctx, "command failed", logger.Error(err))
			fmt.Fprintf(out, "error: %s\n", err)
		}
		if quit {
			return nil
		}
	}
}

// readLines scans in on its own goroutine. Lines are delivered unbuffered, so the
// scanner's final error is only sent after every line has been taken.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()
	return lines, readErr
}

// Exec runs a single command line, writing its result to out.
// quit reports whether the line asked to leave.
func (r *REPL) Exec(ctx context.Context, line string, out io.Writer) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		fmt.Fprintln(out, "bye")
		return true, nil
	case "help", "?":
		fmt.Fprint(out, helpText)
		return false, nil
	case "show":
		printSnapshot(out, r.term.Snapshot())
		return false, nil
	case "select":
		return false, r.selectProduct(ctx, args, out)
	case "insert":
		return false, r.insert(ctx, args, out)
	case "buy":
		return false, r.buy(ctx, out)
	case "cancel":
		return false, r.cancel(ctx, out)
	default:
		return false, fmt.Errorf("%w %q, type help", ErrUnknownCommand, cmd)
	}
}

func (r *REPL) selectProduct(ctx context.Context, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: select <product>")
	}
	name, err := product.ParseName(args[0])
	if err != nil {
		return err
	}
	session, err := r.term.Select(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "selected %s for %d, insert coins\n", session.Product.Name(), session.Product.Price())
	return nil
}

func (r *REPL) insert(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: insert <coin>...")
	}
	coins, err := money.ParseCoins(args...)
	if err != nil {
		return err
	}
	session, err := r.term.Insert(ctx, coins...)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "paid %d, due %d\n", session.Paid, session.Due)
	return nil
}

func (r *REPL) buy(ctx context.Context, out io.Writer) error {
	receipt, err := r.term.Buy(ctx)
	if err != nil {
		return err
	}
	if receipt.Change.IsEmpty() {
		fmt.Fprintf(out, "here is your %s\n", receipt.Product.Name())
		return nil
	}
	fmt.Fprintf(out, "here is your %s, change %s\n", receipt.Product.Name(), receipt.Change)
	return nil
}

func (r *REPL) cancel(ctx context.Context, out io.Writer) error {
	refund, err := r.term.Cancel(ctx)
	if err != nil {
		return err
	}
	if refund.Coins.IsEmpty() {
		fmt.Fprintln(out, "cancelled")
		return nil
	}
	fmt.Fprintf(out, "cancelled, returning %s\n", refund.Coins)
	return nil
}

func printSnapshot(out io.Writer, snap terminal.Snapshot) {
	fmt.Fprintf(out, "phase: %s\n", snap.Phase)
	fmt.Fprintln(out, "products:")
	for _, pc := range snap.Products {
		fmt.Fprintf(out, "  %-6s price %3d  left %d\n", pc.Product.Name(), pc.Product.Price(), pc.Count)
	}
	fmt.Fprintln(out, "coins:")
	for _, cc := range snap.Coins {
		fmt.Fprintf(out, "  %3d x %d\n", cc.Coin.Value(), cc.Count)
	}
	fmt.Fprintf(out, "total: %d\n", snap.CoinTotal())
	if s := snap.Session; s != nil {
		fmt.Fprintf(out, "buying %s: paid %d, due %d\n", s.Product.Name(), s.Paid, s.Due)
	}
}
