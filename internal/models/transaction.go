package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of a ledger entry. It is a closed enumeration,
// not free text.
type TransactionType string

const (
	TransactionDeposit          TransactionType = "Deposit"
	TransactionWithdrawal       TransactionType = "Withdrawal"
	TransactionTransferSent     TransactionType = "TransferSent"
	TransactionTransferReceived TransactionType = "TransferReceived"
)

// Transaction is one entry in a pigeon account's bounded history.
type Transaction struct {
	Timestamp    time.Time       `json:"timestamp"`              // when the operation was applied
	Type         TransactionType `json:"type"`                   // entry kind
	Amount       decimal.Decimal `json:"amount"`                 // amount moved, always positive
	Counterparty string          `json:"counterparty,omitempty"` // other party's owner key, empty for deposit/withdrawal
	BalanceAfter decimal.Decimal `json:"balanceAfter"`           // account balance right after this entry
}

// TransactionDB represents a persisted transaction row in the database.
type TransactionDB struct {
	PigeonID     string          `json:"pigeon_id" db:"pigeon_id"`         // Account the entry belongs to
	Timestamp    time.Time       `json:"timestamp" db:"timestamp"`         // Application time
	Type         string          `json:"type" db:"type"`                   // Entry kind
	Amount       decimal.Decimal `json:"amount" db:"amount"`               // Amount moved
	Counterparty string          `json:"counterparty" db:"counterparty"`   // Other party, may be empty
	BalanceAfter decimal.Decimal `json:"balance_after" db:"balance_after"` // Balance snapshot
}

// TransactionEvent is the message published to Kafka after a ledger
// operation commits.
type TransactionEvent struct {
	EventID      string          `json:"event_id"`               // unique event identifier
	AccountID    string          `json:"account_id"`             // pigeon account id
	Timestamp    int64           `json:"timestamp"`              // Unix seconds
	Type         TransactionType `json:"type"`                   // entry kind
	Amount       decimal.Decimal `json:"amount"`                 // amount moved
	Counterparty string          `json:"counterparty,omitempty"` // other party, if any
	BalanceAfter decimal.Decimal `json:"balance_after"`          // balance after the entry
}
