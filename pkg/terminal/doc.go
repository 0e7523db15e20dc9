// Package terminal runs a vending machine behind a single mutex-guarded handle.
//
// The vending package encodes phases as distinct types, which suits code that
// drives one purchase at a time. Front-ends that receive commands from the
// outside (a REPL, an HTTP API) need one value they can keep and call into
// whatever the current phase is. Terminal is that value: it holds whichever
// phase handle is live, checks every command against a phase/command table and
// answers with a *PhaseError when the command does not fit.
//
//	selecting --select--> payment
//	payment   --insert--> payment
//	payment   --buy-----> selecting
//	payment   --cancel--> selecting
//
// Every transaction gets a session id (a UUID by default). Buy returns a
// Receipt and Cancel returns a Refund listing the coins handed back.
// Operations are logged through slog with session, product and coin attributes.
package terminal
