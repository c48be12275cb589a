package domain

import (
	"github.com/google/uuid"

	dErrors "vorsorge/pkg/domain-errors"
)

// UserID identifies an account in the hosted identity service. It is a
// distinct type over uuid.UUID so user identifiers cannot be confused with
// other UUID-valued identifiers at compile time.
type UserID uuid.UUID

// ParseUserID constructs a UserID from external input.
//
// Usage: call from handlers/adapters at trust boundaries; direct casting
// bypasses validation.
func ParseUserID(s string) (UserID, error) {
	if s == "" {
		return UserID{}, dErrors.New(dErrors.CodeInvalidInput, "user ID cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, dErrors.New(dErrors.CodeInvalidInput, "user ID must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return UserID{}, dErrors.New(dErrors.CodeInvalidInput, "user ID cannot be the nil UUID")
	}
	return UserID(parsed), nil
}

// String returns the canonical UUID string form.
func (id UserID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the ID is the zero value.
func (id UserID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// ConsentID identifies a single consent ledger entry.
type ConsentID uuid.UUID

// NewConsentID allocates a fresh surrogate identifier for a ledger entry.
func NewConsentID() ConsentID {
	return ConsentID(uuid.New())
}

func (id ConsentID) String() string {
	return uuid.UUID(id).String()
}

func (id ConsentID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}
