package models

import (
	"time"

	id "druid/pkg/domain"
)

// PersonStatus is the administrative status of a research staff record.
type PersonStatus string

const (
	// StatusValidated marks a verified, active identity.
	StatusValidated PersonStatus = "VALIDATED"
	// StatusNonValidated marks an author form harvested from publications,
	// pending validation.
	StatusNonValidated PersonStatus = "NON_VALIDATED"
	// StatusLeft marks staff who left the institution. Records are never
	// hard-deleted; this status marks departure.
	StatusLeft PersonStatus = "LEFT"
	// StatusAnticipated marks a future recruitment registered ahead of time.
	StatusAnticipated PersonStatus = "ANTICIPATED"
)

var personStatuses = map[PersonStatus]struct{}{
	StatusValidated:    {},
	StatusNonValidated: {},
	StatusLeft:         {},
	StatusAnticipated:  {},
}

// IsValid reports whether the status is one of the known enum values.
func (s PersonStatus) IsValid() bool {
	_, ok := personStatuses[s]
	return ok
}

// Employment captures the contract and grade information of a person.
// All fields are free-form categoricals fed by the institutional HR source.
type Employment struct {
	Employer         string `json:"employer"`
	ContractType     string `json:"contract_type,omitempty"`
	Grade            string `json:"grade,omitempty"`
	InternalTypology string `json:"internal_typology,omitempty"`
	CNU              string `json:"cnu,omitempty"`
	StartDate        string `json:"start_date,omitempty"`
	EndDate          string `json:"end_date,omitempty"`
}

// Affiliation is a time-bounded link between a person and an organizational
// unit. The unit is referenced by display name, not by identifier; the store
// deliberately keeps the loose label contract of the upstream sources.
//
// Dates are ISO-8601 day strings (YYYY-MM-DD) so lexicographic comparison
// matches chronological order. Start/end ordering is not enforced on write;
// DatesOrdered surfaces it as an advisory instead.
type Affiliation struct {
	UnitName  string `json:"unit_name"`
	Team      string `json:"team,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// DatesOrdered reports whether start <= end when both bounds are present.
func (a Affiliation) DatesOrdered() bool {
	if a.StartDate == "" || a.EndDate == "" {
		return true
	}
	return a.StartDate <= a.EndDate
}

// Person is the aggregate root for a researcher or support staff identity.
//
// Invariants:
//   - At most one affiliation has IsPrimary=true. The store's UpsertAffiliation
//     normalizes this by force-clearing every other primary flag, so a second
//     primary can never be observed.
//   - Groups holds group names without duplicates; membership mutations are
//     idempotent.
//
// Removing the primary affiliation leaves the person with zero primaries; no
// other affiliation is auto-promoted. That mirrors the upstream behavior and
// keeps primary resolution honest (absent, never guessed).
type Person struct {
	ID  id.PersonID `json:"id"`
	UID string      `json:"uid,omitempty"`

	Civility    string `json:"civility,omitempty"`
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
	BirthName   string `json:"birth_name,omitempty"`
	BirthDate   string `json:"birth_date,omitempty"`
	Nationality string `json:"nationality,omitempty"`

	// DisplayName is the list-formatted name, e.g. "DUPONT Jean".
	DisplayName string `json:"display_name"`

	Email          string `json:"email"`
	SecondaryEmail string `json:"secondary_email,omitempty"`
	Phone          string `json:"phone,omitempty"`

	Status       PersonStatus  `json:"status"`
	Employment   Employment    `json:"employment"`
	Affiliations []Affiliation `json:"affiliations"`

	// Groups holds transverse group names, denormalized on the person.
	Groups []string `json:"groups"`

	// Identifiers maps external identifier systems (orcid, idref, halId,
	// scopusId, researcherId) to their values.
	Identifiers map[string]string `json:"identifiers,omitempty"`

	LastSync time.Time `json:"last_sync,omitzero"`
}

// PrimaryAffiliation resolves to the first affiliation flagged primary.
// When none is flagged it returns ok=false; callers must not fall back to the
// first affiliation in the list.
func (p *Person) PrimaryAffiliation() (Affiliation, bool) {
	for _, a := range p.Affiliations {
		if a.IsPrimary {
			return a, true
		}
	}
	return Affiliation{}, false
}

// InGroup reports membership of the named group.
func (p *Person) InGroup(name string) bool {
	for _, g := range p.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// Advisories returns non-blocking validation warnings for the person.
func (p *Person) Advisories() []Advisory {
	var out []Advisory
	for i, a := range p.Affiliations {
		if !a.DatesOrdered() {
			out = append(out, Advisory{
				Field:   "affiliations",
				Message: "affiliation " + a.UnitName + " ends before it starts",
				Index:   i,
			})
		}
	}
	return out
}

// Clone returns a deep copy so store reads never alias internal state.
func (p *Person) Clone() *Person {
	cp := *p
	cp.Affiliations = append([]Affiliation(nil), p.Affiliations...)
	cp.Groups = append([]string(nil), p.Groups...)
	if p.Identifiers != nil {
		cp.Identifiers = make(map[string]string, len(p.Identifiers))
		for k, v := range p.Identifiers {
			cp.Identifiers[k] = v
		}
	}
	return &cp
}
