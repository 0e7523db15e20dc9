package vending

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/vendkit/pkg/product"
)

var (
	// ErrUnknownProduct is wrapped by UnknownProductError.
	ErrUnknownProduct = errors.New("product is not in the catalog")

	// ErrOutOfStock is wrapped by OutOfStockError.
	ErrOutOfStock = errors.New("product is out of stock")

	// ErrInsufficientPayment is wrapped by InsufficientPaymentError.
	ErrInsufficientPayment = errors.New("not enough money inserted")

	// ErrNoChange is wrapped by NoChangeError.
	ErrNoChange = errors.New("not enough money to give change")

	// ErrConsumed is the panic value raised when a machine handle is used after a transition.
	ErrConsumed = errors.New("vending: machine handle used after transition")
)

// UnknownProductError is returned by Select for a name that was never stocked.
type UnknownProductError struct {
	Machine *Selecting
	Name    product.Name
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("there is no %s product in this machine", e.Name)
}

func (e *UnknownProductError) Unwrap() error { return ErrUnknownProduct }

// OutOfStockError is returned by Select for a known product with zero items left.
type OutOfStockError struct {
	Machine *Selecting
	Name    product.Name
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("there is no such %s product anymore", e.Name)
}

func (e *OutOfStockError) Unwrap() error { return ErrOutOfStock }

// InsufficientPaymentError is returned by Buy when the inserted coins do not cover the price.
// Machine still holds the coins inserted so far.
type InsufficientPaymentError struct {
	Machine   *Payment
	Name      product.Name
	Shortfall int
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("you have to add %d money to buy %s product", e.Shortfall, e.Name)
}

func (e *InsufficientPaymentError) Unwrap() error { return ErrInsufficientPayment }

// NoChangeError is returned by Buy when the change cannot be paid out.
// The inserted coins have already been absorbed and the product was not dispensed.
type NoChangeError struct {
	Machine   *Selecting
	ChangeDue int
	cause     error
}

func (e *NoChangeError) Error() string {
	return fmt.Sprintf("there is not enough money to give change from %d", e.ChangeDue)
}

func (e *NoChangeError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrNoChange}
	}
	return []error{ErrNoChange, e.cause}
}

// IsUnknownProduct reports whether err names a product the machine never stocked.
func IsUnknownProduct(err error) bool {
	return errors.Is(err, ErrUnknownProduct)
}

// IsOutOfStock reports whether err is a selection of a depleted product.
func IsOutOfStock(err error) bool {
	return errors.Is(err, ErrOutOfStock)
}

// IsInsufficientPayment reports whether err is a purchase attempt that was short of the price.
func IsInsufficientPayment(err error) bool {
	return errors.Is(err, ErrInsufficientPayment)
}

// IsNoChange reports whether err is a purchase that failed for lack of change.
func IsNoChange(err error) bool {
	return errors.Is(err, ErrNoChange)
}
