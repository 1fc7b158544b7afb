package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/WingTeck/golub-banka/internal/models"
)

// Engine applies balance-changing operations to accounts. Every operation is
// a single atomic transition: it either fully applies, or fails with a domain
// error and leaves all state untouched. Per-account serialization comes from
// the account mutex; transfers lock both accounts in card-number order so two
// opposite-direction transfers cannot deadlock.
type Engine struct {
	dir *Directory
	now func() time.Time
}

// NewEngine creates an engine bound to a directory.
func NewEngine(dir *Directory) *Engine {
	return &Engine{dir: dir, now: time.Now}
}

// validAmount reports whether an amount is positive with at most two decimal
// places.
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2))
}

// Deposit adds amount to the account balance and records a Deposit entry.
// Deposits are never rejected for balance reasons.
func (e *Engine) Deposit(a *Account, amount decimal.Decimal) (models.Pigeon, error) {
	if !validAmount(amount) {
		return models.Pigeon{}, ErrInvalidAmount
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.balance = a.balance.Add(amount)
	a.record(models.Transaction{
		Timestamp:    e.now(),
		Type:         models.TransactionDeposit,
		Amount:       amount,
		BalanceAfter: a.balance,
	})
	a.assertConsistent()

	return a.snapshotLocked(), nil
}

// Withdraw subtracts amount from the account balance and records a
// Withdrawal entry. The balance is never allowed to go negative.
func (e *Engine) Withdraw(a *Account, amount decimal.Decimal) (models.Pigeon, error) {
	if !validAmount(amount) {
		return models.Pigeon{}, ErrInvalidAmount
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.balance.LessThan(amount) {
		return models.Pigeon{}, ErrInsufficientFunds
	}

	a.balance = a.balance.Sub(amount)
	a.record(models.Transaction{
		Timestamp:    e.now(),
		Type:         models.TransactionWithdrawal,
		Amount:       amount,
		BalanceAfter: a.balance,
	})
	a.assertConsistent()

	return a.snapshotLocked(), nil
}

// Transfer moves amount from the sender to the account owning
// receiverCardNumber as one atomic unit: either both sides commit or neither
// does. Returns snapshots of both parties; the receiver snapshot is for
// post-commit plumbing, the external contract only surfaces the sender.
func (e *Engine) Transfer(sender *Account, receiverCardNumber string, amount decimal.Decimal) (models.Pigeon, models.Pigeon, error) {
	if !validAmount(amount) {
		return models.Pigeon{}, models.Pigeon{}, ErrInvalidAmount
	}

	receiver, err := e.dir.FindByCardNumber(receiverCardNumber)
	if err != nil {
		return models.Pigeon{}, models.Pigeon{}, ErrRecipientNotFound
	}
	if receiver == sender {
		return models.Pigeon{}, models.Pigeon{}, ErrSelfTransfer
	}

	// Fixed global lock order by card number, not sender-then-receiver.
	first, second := sender, receiver
	if second.cardNumber < first.cardNumber {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if sender.balance.LessThan(amount) {
		return models.Pigeon{}, models.Pigeon{}, ErrInsufficientFunds
	}

	now := e.now()

	sender.balance = sender.balance.Sub(amount)
	sender.record(models.Transaction{
		Timestamp:    now,
		Type:         models.TransactionTransferSent,
		Amount:       amount,
		Counterparty: receiver.owner,
		BalanceAfter: sender.balance,
	})

	receiver.balance = receiver.balance.Add(amount)
	receiver.record(models.Transaction{
		Timestamp:    now,
		Type:         models.TransactionTransferReceived,
		Amount:       amount,
		Counterparty: sender.owner,
		BalanceAfter: receiver.balance,
	})

	sender.assertConsistent()
	receiver.assertConsistent()

	return sender.snapshotLocked(), receiver.snapshotLocked(), nil
}
