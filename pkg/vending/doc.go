// Package vending implements the transaction engine of a coin-operated vending machine.
//
// The machine owns a product inventory and a coin inventory and drives one
// purchase at a time through a fixed protocol. Each phase of that protocol is a
// distinct Go type that only exposes the operations legal in that phase, so an
// out-of-order call such as buying before selecting does not compile:
//
//	Provisioning --Start--> Selecting --Select--> Payment --Buy/Cancel--> Selecting
//
// # Phases
//
//   - Provisioning: stock products and coins. An empty machine is legal.
//   - Selecting: pick a product by name. The machine rests here between purchases.
//   - Payment: insert coins, then Buy or Cancel.
//
// # Ownership
//
// Every transition consumes the value it is called on and returns the next
// phase. The consumed handle must not be used again; doing so panics with
// ErrConsumed. Recoverable failures do not consume anything: the typed error
// carries the machine value needed to continue.
//
//	m := vending.New().
//	    AddProducts(product.New(product.Water, 10)).
//	    AddCoins(money.One, money.Two, money.Five).
//	    Start()
//
//	pay, err := m.Select(product.Water)
//	if err != nil {
//	    var oos *vending.OutOfStockError
//	    if errors.As(err, &oos) {
//	        m = oos.Machine // still selecting
//	    }
//	}
//
//	pay.InsertCoins(money.Ten, money.Two)
//	purchase, err := pay.Buy()
//	// purchase.Change.Values() == []int{2}
//
// # Failures
//
//   - OutOfStockError: the product is known but depleted. The machine is unchanged.
//   - InsufficientPaymentError: Buy was called before enough coins were inserted.
//     The inserted coins are kept; insert more and Buy again.
//   - NoChangeError: the change could not be paid out. The inserted coins stay in
//     the machine's coin inventory, the product is not dispensed and the machine
//     returns to Selecting. This asymmetry is intentional.
//   - UnknownProductError: the name was never stocked.
//
// # Concurrency
//
// Machine values are not safe for concurrent use. Wrap them in a single-writer
// layer (see package terminal) when several callers share one machine.
package vending
