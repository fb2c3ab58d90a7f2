// Package credits holds the player's balance, the only state that survives
// from one round to the next.
package credits

import "sync"

// Ledger is an in-memory credits balance. Debits are checked and applied under
// one lock so a balance never goes negative.
type Ledger struct {
	mu      sync.Mutex
	balance int
	initial int
}

// NewLedger creates a ledger holding the initial balance. Reset returns to it.
func NewLedger(initial int) *Ledger {
	if initial < 0 {
		initial = 0
	}
	return &Ledger{balance: initial, initial: initial}
}

// Balance returns the current balance.
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Affordable reports whether amount is positive and covered by the balance.
func (l *Ledger) Affordable(amount int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return amount > 0 && amount <= l.balance
}

// Add credits a positive amount. Non-positive amounts are ignored.
func (l *Ledger) Add(amount int) {
	if amount <= 0 {
		return
	}
	l.mu.Lock()
	l.balance += amount
	l.mu.Unlock()
}

// Subtract debits amount if the balance covers it and reports whether it did.
// An insufficient balance leaves the ledger unchanged.
func (l *Ledger) Subtract(amount int) bool {
	if amount <= 0 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if amount > l.balance {
		return false
	}
	l.balance -= amount
	return true
}

// Reset restores the initial balance.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.balance = l.initial
	l.mu.Unlock()
}

// TopUp credits amount when the balance has fallen below threshold and
// reports whether it did.
func (l *Ledger) TopUp(threshold, amount int) bool {
	if amount <= 0 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balance >= threshold {
		return false
	}
	l.balance += amount
	return true
}
