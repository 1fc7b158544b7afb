package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pigeon is a point-in-time snapshot of a pigeon account as returned by the
// ledger. Snapshots are value copies; mutating one never touches ledger state.
type Pigeon struct {
	ID           string          `json:"id"`           // PIGEON-NNNN, assigned at creation
	Owner        string          `json:"owner"`        // owner key the account is registered under
	Name         string          `json:"name"`         // caller-supplied display label
	CardNumber   string          `json:"cardNumber"`   // 16-digit transfer-routing key
	Balance      decimal.Decimal `json:"balance"`      // current balance, never negative
	Transactions []Transaction   `json:"transactions,omitempty"`
}

// PigeonDB represents a pigeon account row in the database.
type PigeonDB struct {
	PigeonID   string          `json:"pigeon_id" db:"pigeon_id"`     // Primary key
	Owner      string          `json:"owner" db:"owner"`             // Owner key
	Name       string          `json:"name" db:"name"`               // Display label
	CardNumber string          `json:"card_number" db:"card_number"` // Unique card number
	Balance    decimal.Decimal `json:"balance" db:"balance"`         // Current balance
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`   // Creation timestamp
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`   // Last update timestamp
}

// CredentialsDB represents an owner's login credentials row in the database.
type CredentialsDB struct {
	Owner        string    `json:"owner" db:"owner"`                 // Primary key
	PasswordHash string    `json:"password_hash" db:"password_hash"` // bcrypt hash, never plain text
	CreatedAt    time.Time `json:"created_at" db:"created_at"`       // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`       // Last update timestamp
}
