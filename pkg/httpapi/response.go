package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/vendkit/pkg/money"
	"github.com/dmitrymomot/vendkit/pkg/product"
	"github.com/dmitrymomot/vendkit/pkg/terminal"
	"github.com/dmitrymomot/vendkit/pkg/vending"
)

// Envelope is the body of every response.
type Envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	status, detail := errorToDetail(err)
	writeJSON(w, status, Envelope{Error: detail})
}

// errorToDetail maps domain errors to a status code and error body.
// Unrecognised errors become a 500 without leaking their message.
func errorToDetail(err error) (int, *ErrorDetail) {
	var (
		unknown      *vending.UnknownProductError
		outOfStock   *vending.OutOfStockError
		insufficient *vending.InsufficientPaymentError
		noChange     *vending.NoChangeError
		phase        *terminal.PhaseError
		bad          *badRequestError
	)

	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest, &ErrorDetail{Code: "bad_request", Message: bad.Error()}
	case errors.As(err, &unknown):
		return http.StatusNotFound, &ErrorDetail{
			Code:    "unknown_product",
			Message: err.Error(),
			Details: map[string]any{"product": unknown.Name.String()},
		}
	case errors.Is(err, product.ErrUnknownName):
		return http.StatusNotFound, &ErrorDetail{Code: "unknown_product", Message: err.Error()}
	case errors.As(err, &outOfStock):
		return http.StatusConflict, &ErrorDetail{
			Code:    "out_of_stock",
			Message: err.Error(),
			Details: map[string]any{"product": outOfStock.Name.String()},
		}
	case errors.As(err, &insufficient):
		return http.StatusPaymentRequired, &ErrorDetail{
			Code:    "insufficient_payment",
			Message: err.Error(),
			Details: map[string]any{
				"product":   insufficient.Name.String(),
				"shortfall": insufficient.Shortfall,
			},
		}
	case errors.As(err, &noChange):
		return http.StatusConflict, &ErrorDetail{
			Code:    "no_change",
			Message: err.Error(),
			Details: map[string]any{"change_due": noChange.ChangeDue},
		}
	case errors.As(err, &phase):
		return http.StatusConflict, &ErrorDetail{
			Code:    "invalid_phase",
			Message: err.Error(),
			Details: map[string]any{
				"phase":   phase.Phase.String(),
				"command": phase.Command.String(),
				"allowed": phase.Phase.Commands(),
			},
		}
	case errors.Is(err, money.ErrUnknownCoin):
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    "invalid_coin",
			Message: err.Error(),
			Details: map[string]any{"accepted": coinValues(money.Coins())},
		}
	case errors.Is(err, terminal.ErrNoCoins):
		return http.StatusUnprocessableEntity, &ErrorDetail{Code: "no_coins", Message: err.Error()}
	default:
		return http.StatusInternalServerError, &ErrorDetail{
			Code:    "internal_error",
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}
}

type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return "malformed request body: " + e.err.Error() }

func (e *badRequestError) Unwrap() error { return e.err }

func coinValues(coins []money.Coin) []int {
	out := make([]int, len(coins))
	for i, c := range coins {
		out[i] = c.Value()
	}
	return out
}
