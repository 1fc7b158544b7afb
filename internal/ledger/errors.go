package ledger

import "errors"

// Domain errors. Every failed operation returns exactly one of these and
// leaves all account state untouched.
var (
	// ErrInvalidAmount is returned when an amount is non-positive or has more
	// than two decimal places.
	ErrInvalidAmount = errors.New("amount must be positive with at most two decimal places")

	// ErrInsufficientFunds is returned when a withdrawal or transfer would
	// drive the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotFound is returned when a reference does not resolve to any account.
	ErrNotFound = errors.New("account not found")

	// ErrRecipientNotFound is returned when a transfer target card number
	// does not resolve.
	ErrRecipientNotFound = errors.New("recipient account not found")

	// ErrSelfTransfer is returned when sender and receiver are the same
	// account; self funding must use Deposit.
	ErrSelfTransfer = errors.New("cannot transfer to own card number")

	// ErrDuplicateOwner is returned by CreateAccount under the
	// one-account-per-owner policy when the owner already has an account.
	ErrDuplicateOwner = errors.New("owner already has an account")

	// ErrAmbiguousOwner is returned when an owner reference matches more than
	// one account under the one-account-per-owner policy.
	ErrAmbiguousOwner = errors.New("owner reference is ambiguous")
)
