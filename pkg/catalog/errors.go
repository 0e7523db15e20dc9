package catalog

import "errors"

var (
	// ErrReadStock is returned when the stock file cannot be read.
	ErrReadStock = errors.New("failed to read stock file")

	// ErrParseStock is returned for malformed YAML or unknown fields.
	ErrParseStock = errors.New("failed to parse stock file")

	// ErrInvalidStock is returned for well-formed stock that fails validation.
	ErrInvalidStock = errors.New("invalid stock")

	// ErrCancelled is returned when the context ends before loading finishes.
	ErrCancelled = errors.New("stock loading cancelled")
)
