package ledger

import "regexp"

// ReferenceKind tags which lookup index a reference addresses.
type ReferenceKind int

const (
	// ByOwner resolves through the owner key index.
	ByOwner ReferenceKind = iota
	// ByID resolves through the account id index.
	ByID
	// ByCardNumber resolves through the card number index.
	ByCardNumber
)

// Reference is a parsed external account reference. Callers construct it with
// ParseReference at the boundary so the ledger never sniffs string shapes.
type Reference struct {
	Kind  ReferenceKind
	Value string
}

var (
	idPattern   = regexp.MustCompile(`^PIGEON-\d{4,}$`)
	cardPattern = regexp.MustCompile(`^\d{16}$`)
)

// ParseReference classifies a raw reference string by shape: the account id
// pattern takes precedence, then a 16-digit numeric string is treated as a
// card number, anything else as an owner key.
func ParseReference(raw string) Reference {
	switch {
	case idPattern.MatchString(raw):
		return Reference{Kind: ByID, Value: raw}
	case cardPattern.MatchString(raw):
		return Reference{Kind: ByCardNumber, Value: raw}
	default:
		return Reference{Kind: ByOwner, Value: raw}
	}
}
