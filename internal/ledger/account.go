package ledger

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/WingTeck/golub-banka/internal/models"
)

// maxHistory bounds the per-account transaction log; the oldest entry is
// evicted first.
const maxHistory = 10

// Account is a live pigeon account. Identity fields are immutable after
// creation; balance and history are mutated only by the Engine while holding
// the account mutex.
type Account struct {
	mu sync.Mutex

	id         string
	owner      string
	name       string
	cardNumber string

	balance decimal.Decimal
	history []models.Transaction
}

// ID returns the immutable account identifier.
func (a *Account) ID() string { return a.id }

// Owner returns the immutable owner key.
func (a *Account) Owner() string { return a.owner }

// CardNumber returns the immutable 16-digit card number.
func (a *Account) CardNumber() string { return a.cardNumber }

// Snapshot returns a value copy of the account's current state.
func (a *Account) Snapshot() models.Pigeon {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *Account) snapshotLocked() models.Pigeon {
	history := make([]models.Transaction, len(a.history))
	copy(history, a.history)
	return models.Pigeon{
		ID:           a.id,
		Owner:        a.owner,
		Name:         a.name,
		CardNumber:   a.cardNumber,
		Balance:      a.balance,
		Transactions: history,
	}
}

// record appends a transaction, evicting the oldest entry once the history
// is full. Caller must hold the account mutex.
func (a *Account) record(t models.Transaction) {
	if len(a.history) >= maxHistory {
		a.history = append(a.history[1:], t)
	} else {
		a.history = append(a.history, t)
	}
}

// assertConsistent panics if the account violates a ledger invariant. A
// violation means an Engine bug, not bad caller input; no precondition-checked
// operation can reach this.
func (a *Account) assertConsistent() {
	if a.balance.IsNegative() {
		panic(fmt.Sprintf("ledger: account %s has negative balance %s", a.id, a.balance))
	}
	if len(a.history) > maxHistory {
		panic(fmt.Sprintf("ledger: account %s history exceeds %d entries", a.id, maxHistory))
	}
	if n := len(a.history); n > 0 {
		if last := a.history[n-1]; !last.BalanceAfter.Equal(a.balance) {
			panic(fmt.Sprintf("ledger: account %s balance %s does not match last balanceAfter %s",
				a.id, a.balance, last.BalanceAfter))
		}
	}
}
