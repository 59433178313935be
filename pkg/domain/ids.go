// Package domain holds domain primitives shared across modules.
//
// Identifiers are distinct named types over uuid.UUID so the compiler rejects
// mixing a PersonID with a UnitID. IDs must be valid, non-nil UUIDs; the
// ParseXxxID functions enforce that at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "druid/pkg/domain-errors"
)

type (
	// PersonID identifies a research staff identity record.
	PersonID uuid.UUID
	// UnitID identifies an organizational unit.
	UnitID uuid.UUID
)

func (id PersonID) String() string { return uuid.UUID(id).String() }
func (id UnitID) String() string   { return uuid.UUID(id).String() }

func (id PersonID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id UnitID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs serialize as their UUID string form.
func (id PersonID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id UnitID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }

func (id *PersonID) UnmarshalText(b []byte) error {
	parsed, err := ParsePersonID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *UnitID) UnmarshalText(b []byte) error {
	parsed, err := ParseUnitID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParsePersonID validates s as a non-nil UUID and returns it as a PersonID.
func ParsePersonID(s string) (PersonID, error) {
	u, err := parseUUID(s, "person id")
	return PersonID(u), err
}

// ParseUnitID validates s as a non-nil UUID and returns it as a UnitID.
func ParseUnitID(s string) (UnitID, error) {
	u, err := parseUUID(s, "unit id")
	return UnitID(u), err
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, what+" is not a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" must not be the nil UUID")
	}
	return u, nil
}
