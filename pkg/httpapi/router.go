package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/vendkit/pkg/logger"
	"github.com/dmitrymomot/vendkit/pkg/money"
	"github.com/dmitrymomot/vendkit/pkg/product"
	"github.com/dmitrymomot/vendkit/pkg/terminal"
)

const maxBodyBytes = 1 << 16

// RouterOption configures NewRouter.
type RouterOption func(*api)

// WithRouterLogger sets the logger used for request and error logging.
func WithRouterLogger(l *slog.Logger) RouterOption {
	return func(a *api) {
		if l != nil {
			a.log = l
		}
	}
}

type api struct {
	term *terminal.Terminal
	log  *slog.Logger
}

// NewRouter exposes term over JSON:
//
//	GET  /healthz
//	GET  /machine
//	POST /machine/select  {"product": "water"}
//	POST /machine/coins   {"coins": [10, 2]}
//	POST /machine/buy
//	POST /machine/cancel
func NewRouter(term *terminal.Terminal, opts ...RouterOption) http.Handler {
	a := &api{term: term, log: logger.Discard()}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With(logger.Component("httpapi"))

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(requestLogger(a.log))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, Envelope{Error: &ErrorDetail{
			Code: "not_found", Message: http.StatusText(http.StatusNotFound),
		}})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, Envelope{Error: &ErrorDetail{
			Code: "method_not_allowed", Message: http.StatusText(http.StatusMethodNotAllowed),
		}})
	})

	r.Get("/healthz", a.health)
	r.Route("/machine", func(r chi.Router) {
		r.Get("/", a.show)
		r.Post("/select", a.selectProduct)
		r.Post("/coins", a.insertCoins)
		r.Post("/buy", a.buy)
		r.Post("/cancel", a.cancel)
	})

	return r
}

func (a *api) health(w http.ResponseWriter, _ *http.Request) {
	writeData(w, map[string]string{"status": "ok"})
}

func (a *api) show(w http.ResponseWriter, _ *http.Request) {
	writeData(w, newMachineView(a.term.Snapshot()))
}

type selectRequest struct {
	Product string `json:"product"`
}

func (a *api) selectProduct(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decode(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	name, err := product.ParseName(req.Product)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	session, err := a.term.Select(r.Context(), name)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeData(w, newSessionView(session))
}

type coinsRequest struct {
	Coins []int `json:"coins"`
}

func (a *api) insertCoins(w http.ResponseWriter, r *http.Request) {
	var req coinsRequest
	if err := decode(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	coins := make([]money.Coin, 0, len(req.Coins))
	for _, v := range req.Coins {
		c, err := money.CoinOf(v)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		coins = append(coins, c)
	}
	session, err := a.term.Insert(r.Context(), coins...)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeData(w, newSessionView(session))
}

func (a *api) buy(w http.ResponseWriter, r *http.Request) {
	receipt, err := a.term.Buy(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeData(w, newReceiptView(receipt))
}

func (a *api) cancel(w http.ResponseWriter, r *http.Request) {
	refund, err := a.term.Cancel(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeData(w, newRefundView(refund))
}

func (a *api) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, _ := errorToDetail(err)
	if status >= http.StatusInternalServerError {
		a.log.ErrorContext(r.Context(), "request failed", logger.Error(err))
	}
	writeError(w, err)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &badRequestError{err: err}
	}
	if dec.More() {
		return &badRequestError{err: errors.New("unexpected data after JSON object")}
	}
	return nil
}
