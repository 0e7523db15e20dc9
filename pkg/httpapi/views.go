package httpapi

import (
	"time"

	"github.com/dmitrymomot/vendkit/pkg/terminal"
)

type productView struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
	Count int    `json:"count"`
}

type coinView struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

type sessionView struct {
	ID        string    `json:"id"`
	Product   string    `json:"product"`
	Price     int       `json:"price"`
	Inserted  []int     `json:"inserted"`
	Paid      int       `json:"paid"`
	Due       int       `json:"due"`
	StartedAt time.Time `json:"started_at"`
}

type machineView struct {
	Phase     string        `json:"phase"`
	Allowed   []string      `json:"allowed"`
	Products  []productView `json:"products"`
	Coins     []coinView    `json:"coins"`
	CoinTotal int           `json:"coin_total"`
	Session   *sessionView  `json:"session,omitempty"`
}

type receiptView struct {
	SessionID string    `json:"session_id"`
	Product   string    `json:"product"`
	Price     int       `json:"price"`
	Paid      int       `json:"paid"`
	Change    []int     `json:"change"`
	At        time.Time `json:"at"`
}

type refundView struct {
	SessionID string    `json:"session_id"`
	Product   string    `json:"product"`
	Coins     []int     `json:"coins"`
	At        time.Time `json:"at"`
}

func newSessionView(s terminal.Session) sessionView {
	return sessionView{
		ID:        s.ID,
		Product:   s.Product.Name().String(),
		Price:     s.Product.Price(),
		Inserted:  s.Inserted.Values(),
		Paid:      s.Paid,
		Due:       s.Due,
		StartedAt: s.StartedAt,
	}
}

func newMachineView(snap terminal.Snapshot) machineView {
	v := machineView{
		Phase:     snap.Phase.String(),
		Products:  make([]productView, 0, len(snap.Products)),
		Coins:     make([]coinView, 0, len(snap.Coins)),
		CoinTotal: snap.CoinTotal(),
	}
	for _, cmd := range snap.Phase.Commands() {
		v.Allowed = append(v.Allowed, cmd.String())
	}
	for _, pc := range snap.Products {
		v.Products = append(v.Products, productView{
			Name:  pc.Product.Name().String(),
			Price: pc.Product.Price(),
			Count: pc.Count,
		})
	}
	for _, cc := range snap.Coins {
		v.Coins = append(v.Coins, coinView{Value: cc.Coin.Value(), Count: cc.Count})
	}
	if snap.Session != nil {
		s := newSessionView(*snap.Session)
		v.Session = &s
	}
	return v
}

func newReceiptView(r terminal.Receipt) receiptView {
	return receiptView{
		SessionID: r.SessionID,
		Product:   r.Product.Name().String(),
		Price:     r.Product.Price(),
		Paid:      r.Paid,
		Change:    r.Change.Values(),
		At:        r.At,
	}
}

func newRefundView(r terminal.Refund) refundView {
	return refundView{
		SessionID: r.SessionID,
		Product:   r.Product.Name().String(),
		Coins:     r.Coins.Values(),
		At:        r.At,
	}
}
