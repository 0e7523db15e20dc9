// Package httpapi serves a terminal.Terminal over JSON.
//
// Every response uses the same envelope:
//
//	{"data": {...}}
//	{"error": {"code": "insufficient_payment", "message": "...", "details": {"shortfall": 6}}}
//
// Domain errors map to status codes: unknown products 404, out of stock and
// no change 409, insufficient payment 402, commands outside their phase 409,
// malformed bodies 400 and invalid coins 422.
//
// NewRouter builds the chi router with request id and request logging
// middleware. Server runs it with graceful shutdown on context cancellation
// or SIGINT/SIGTERM.
package httpapi
