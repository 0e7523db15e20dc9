package terminal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/vendkit/pkg/logger"
	"github.com/dmitrymomot/vendkit/pkg/money"
	"github.com/dmitrymomot/vendkit/pkg/product"
	"github.com/dmitrymomot/vendkit/pkg/vending"
)

// Terminal owns a started machine and serialises access to it.
// It is safe for concurrent use.
type Terminal struct {
	mu    sync.Mutex
	phase Phase

	// Exactly one of selecting and payment is set, matching phase.
	selecting *vending.Selecting
	payment   *vending.Payment

	sessionID string
	startedAt time.Time

	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// New wraps machine. The terminal takes ownership: machine must not be used afterwards.
// It panics if machine is nil.
func New(machine *vending.Selecting, opts ...Option) *Terminal {
	if machine == nil {
		panic("terminal: nil machine")
	}
	t := &Terminal{
		phase:     PhaseSelecting,
		selecting: machine,
		log:       logger.Discard(),
		now:       time.Now,
		newID:     defaultIDGenerator,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With(logger.Component("terminal"))
	return t
}

// Phase returns the current phase.
func (t *Terminal) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// Snapshot returns the phase, both inventories and the open session if any.
func (t *Terminal) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{Phase: t.phase}
	switch t.phase {
	case PhasePayment:
		snap.Products = t.payment.Products()
		snap.Coins = t.payment.Coins()
		s := t.session()
		snap.Session = &s
	default:
		snap.Products = t.selecting.Products()
		snap.Coins = t.selecting.Coins()
	}
	return snap
}

// Select starts a transaction for name.
//
// The returned error is a *vending.UnknownProductError, a *vending.OutOfStockError
// or a *PhaseError; in every case the machine is left as it was.
func (t *Terminal) Select(ctx context.Context, name product.Name) (Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.begin(ctx, CmdSelect); err != nil {
		return Session{}, err
	}

	payment, err := t.selecting.Select(name)
	if err != nil {
		t.log.WarnContext(ctx, "selection rejected", logger.Product(name.String()), logger.Error(err))
		return Session{}, err
	}

	t.selecting = nil
	t.payment = payment
	t.sessionID = t.newID()
	t.startedAt = t.now()
	t.advance(CmdSelect)

	t.log.InfoContext(ctx, "product selected",
		logger.SessionID(t.sessionID),
		logger.Product(name.String()),
		logger.Amount(payment.Product().Price()),
	)
	return t.session(), nil
}

// Insert adds coins to the open transaction. Either all coins are accepted
// or, if any is not a known denomination, none.
func (t *Terminal) Insert(ctx context.Context, coins ...money.Coin) (Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.begin(ctx, CmdInsert); err != nil {
		return Session{}, err
	}
	if len(coins) == 0 {
		return Session{}, ErrNoCoins
	}
	for _, c := range coins {
		if !c.Valid() {
			return Session{}, fmt.Errorf("%w: %d", money.ErrUnknownCoin, int(c))
		}
	}

	t.payment.InsertCoins(coins...)
	t.advance(CmdInsert)

	t.log.DebugContext(ctx, "coins inserted",
		logger.SessionID(t.sessionID),
		logger.Coins(money.New(coins...).Values()),
		logger.Amount(t.payment.Paid()),
	)
	return t.session(), nil
}

// Buy completes the open transaction.
//
// An *vending.InsufficientPaymentError keeps the transaction open. A
// *vending.NoChangeError closes it: the inserted coins stay in the machine
// and the product is not dispensed.
func (t *Terminal) Buy(ctx context.Context) (Receipt, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.begin(ctx, CmdBuy); err != nil {
		return Receipt{}, err
	}

	paid := t.payment.Paid()
	purchase, err := t.payment.Buy()
	if err != nil {
		var noChange *vending.NoChangeError
		if errors.As(err, &noChange) {
			t.log.WarnContext(ctx, "purchase failed, coins kept",
				logger.SessionID(t.sessionID),
				logger.Amount(noChange.ChangeDue),
				logger.Error(err),
			)
			t.close(noChange.Machine, PhaseSelecting)
			return Receipt{}, err
		}
		t.log.InfoContext(ctx, "payment incomplete", logger.SessionID(t.sessionID), logger.Error(err))
		return Receipt{}, err
	}

	receipt := Receipt{
		SessionID: t.sessionID,
		Product:   purchase.Product,
		Paid:      paid,
		Change:    purchase.Change,
		At:        t.now(),
	}
	t.close(purchase.Machine, transitions[t.phase][CmdBuy])

	t.log.InfoContext(ctx, "product sold",
		logger.SessionID(receipt.SessionID),
		logger.Product(receipt.Product.Name().String()),
		logger.Amount(receipt.Paid),
		logger.Coins(receipt.Change.Values()),
	)
	return receipt, nil
}

// Cancel abandons the open transaction and hands back the inserted coins.
func (t *Terminal) Cancel(ctx context.Context) (Refund, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.begin(ctx, CmdCancel); err != nil {
		return Refund{}, err
	}

	refund := Refund{
		SessionID: t.sessionID,
		Product:   t.payment.Product(),
		Coins:     t.payment.Inserted(),
		At:        t.now(),
	}
	t.close(t.payment.Cancel(), transitions[t.phase][CmdCancel])

	t.log.InfoContext(ctx, "purchase cancelled",
		logger.SessionID(refund.SessionID),
		logger.Coins(refund.Coins.Values()),
	)
	return refund, nil
}

func (t *Terminal) begin(ctx context.Context, cmd Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkPhase(t.phase, cmd); err != nil {
		t.log.DebugContext(ctx, "command rejected", logger.Phase(t.phase.String()), logger.Error(err))
		return err
	}
	return nil
}

func (t *Terminal) advance(cmd Command) {
	t.phase = transitions[t.phase][cmd]
}

func (t *Terminal) close(next *vending.Selecting, phase Phase) {
	t.selecting = next
	t.payment = nil
	t.sessionID = ""
	t.startedAt = time.Time{}
	t.phase = phase
}

func (t *Terminal) session() Session {
	return Session{
		ID:        t.sessionID,
		Product:   t.payment.Product(),
		Inserted:  t.payment.Inserted(),
		Paid:      t.payment.Paid(),
		Due:       t.payment.Due(),
		StartedAt: t.startedAt,
	}
}
