package ledger

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/WingTeck/golub-banka/internal/logger"
	"github.com/WingTeck/golub-banka/internal/models"
)

// Policy selects how the directory keys accounts to owners.
type Policy string

const (
	// OneAccountPerOwner rejects a second account for the same owner key.
	// This is the default.
	OneAccountPerOwner Policy = "single"

	// MultiAccountPerOwner allows several accounts per owner; owner-keyed
	// resolution returns the first-created match and logs a warning.
	MultiAccountPerOwner Policy = "multi"
)

// Directory allocates account identifiers and card numbers and resolves
// external references to live accounts. It owns the id/card sequence counter
// and the lookup indices; balance mutation is the Engine's job.
type Directory struct {
	mu     sync.RWMutex
	policy Policy
	seq    int64

	byID    map[string]*Account
	byCard  map[string]*Account
	byOwner map[string][]*Account // creation order
}

// NewDirectory creates an empty directory with the given keying policy.
func NewDirectory(policy Policy) *Directory {
	if policy != MultiAccountPerOwner {
		policy = OneAccountPerOwner
	}
	return &Directory{
		policy:  policy,
		byID:    make(map[string]*Account),
		byCard:  make(map[string]*Account),
		byOwner: make(map[string][]*Account),
	}
}

// Policy returns the directory's keying policy.
func (d *Directory) Policy() Policy { return d.policy }

// CreateAccount allocates the next sequence number, derives the account id
// and card number from it, and registers the account with zero balance and
// empty history. The counter is never decremented, even if the caller later
// abandons the account.
func (d *Directory) CreateAccount(owner, name string) (models.Pigeon, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.policy == OneAccountPerOwner && len(d.byOwner[owner]) > 0 {
		return models.Pigeon{}, ErrDuplicateOwner
	}

	d.seq++
	a := &Account{
		id:         fmt.Sprintf("PIGEON-%04d", d.seq),
		owner:      owner,
		name:       name,
		cardNumber: fmt.Sprintf("%016d", d.seq),
		balance:    decimal.Zero,
	}

	d.byID[a.id] = a
	d.byCard[a.cardNumber] = a
	d.byOwner[owner] = append(d.byOwner[owner], a)

	return a.Snapshot(), nil
}

// Resolve maps a parsed reference to a live account. Owner references that
// match several accounts return the first-created one under the multi policy,
// with a warning; under the single policy that state is a conflict.
func (d *Directory) Resolve(ref Reference) (*Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	switch ref.Kind {
	case ByID:
		if a, ok := d.byID[ref.Value]; ok {
			return a, nil
		}
	case ByCardNumber:
		if a, ok := d.byCard[ref.Value]; ok {
			return a, nil
		}
	case ByOwner:
		accounts := d.byOwner[ref.Value]
		switch {
		case len(accounts) == 1:
			return accounts[0], nil
		case len(accounts) > 1:
			if d.policy == OneAccountPerOwner {
				return nil, ErrAmbiguousOwner
			}
			logger.Log.Warnw("owner resolves to multiple accounts, using first created",
				"owner", ref.Value,
				"accounts", len(accounts),
				"picked", accounts[0].ID(),
			)
			return accounts[0], nil
		}
	}
	return nil, ErrNotFound
}

// FindByCardNumber resolves a card number to a live account.
func (d *Directory) FindByCardNumber(cardNumber string) (*Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if a, ok := d.byCard[cardNumber]; ok {
		return a, nil
	}
	return nil, ErrNotFound
}

// List returns snapshots of all accounts registered under an owner key, in
// creation order.
func (d *Directory) List(owner string) []models.Pigeon {
	d.mu.RLock()
	accounts := d.byOwner[owner]
	d.mu.RUnlock()

	out := make([]models.Pigeon, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Snapshot())
	}
	return out
}

// Accounts returns snapshots of every account in the directory.
func (d *Directory) Accounts() []models.Pigeon {
	d.mu.RLock()
	accounts := make([]*Account, 0, len(d.byID))
	for _, a := range d.byID {
		accounts = append(accounts, a)
	}
	d.mu.RUnlock()

	out := make([]models.Pigeon, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Snapshot())
	}
	return out
}

// Sequence returns the current value of the id/card sequence counter.
func (d *Directory) Sequence() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.seq
}

// Restore rebuilds the directory from persisted state, replacing anything
// registered so far. The counter resumes from the persisted value or from the
// highest sequence any restored account was allocated from, whichever is
// larger, so a stale persisted counter can never re-mint an existing id or
// card number. Persisted state is external data: skew the write-behind layer
// can produce (a missing history tail after a partial write) is repaired with
// a warning, keeping the account balance authoritative.
func (d *Directory) Restore(seq int64, accounts []models.Pigeon) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq = seq
	d.byID = make(map[string]*Account, len(accounts))
	d.byCard = make(map[string]*Account, len(accounts))
	d.byOwner = make(map[string][]*Account)

	for _, p := range accounts {
		if n, err := strconv.ParseInt(p.CardNumber, 10, 64); err == nil && n > d.seq {
			d.seq = n
		}

		history := make([]models.Transaction, len(p.Transactions))
		copy(history, p.Transactions)
		if len(history) > maxHistory {
			history = history[len(history)-maxHistory:]
		}
		if n := len(history); n > 0 && !history[n-1].BalanceAfter.Equal(p.Balance) {
			logger.Log.Warnw("restored history does not match account balance, keeping account balance",
				"account_id", p.ID,
				"balance", p.Balance,
				"last_balance_after", history[n-1].BalanceAfter,
			)
		}

		if prev, ok := d.byID[p.ID]; ok {
			logger.Log.Warnw("duplicate account id in restored state, keeping first",
				"account_id", p.ID, "owner", prev.owner, "dropped_owner", p.Owner)
			continue
		}

		a := &Account{
			id:         p.ID,
			owner:      p.Owner,
			name:       p.Name,
			cardNumber: p.CardNumber,
			balance:    p.Balance,
			history:    history,
		}
		d.byID[a.id] = a
		d.byCard[a.cardNumber] = a
		d.byOwner[a.owner] = append(d.byOwner[a.owner], a)
	}
}
