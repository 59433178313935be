package view

// FilterAll is the categorical filter value that matches every record.
// An empty filter is treated the same way so zero-value queries are usable.
const FilterAll = "ALL"

// SortDirection orders a projection ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// PersonSortKey enumerates the sortable columns of the person view.
type PersonSortKey string

const (
	PersonSortDisplayName PersonSortKey = "displayName"
	PersonSortStatus      PersonSortKey = "status"
	PersonSortEmployer    PersonSortKey = "employer"
	PersonSortUnit        PersonSortKey = "unit"
	PersonSortTeam        PersonSortKey = "team"
)

var personSortKeys = map[PersonSortKey]struct{}{
	PersonSortDisplayName: {},
	PersonSortStatus:      {},
	PersonSortEmployer:    {},
	PersonSortUnit:        {},
	PersonSortTeam:        {},
}

// IsValid reports whether the key is one of the enumerated sort keys.
// Projections treat unknown keys as "leave ordering unchanged".
func (k PersonSortKey) IsValid() bool {
	_, ok := personSortKeys[k]
	return ok
}

// PersonSort is a sort key plus direction. The zero value means unsorted.
type PersonSort struct {
	Key       PersonSortKey `json:"key"`
	Direction SortDirection `json:"direction"`
}

// NextPersonSort implements the column-header toggle: selecting the current
// ascending key flips to descending; selecting any other key resets to
// ascending.
func NextPersonSort(current PersonSort, key PersonSortKey) PersonSort {
	if current.Key == key && current.Direction == Ascending {
		return PersonSort{Key: key, Direction: Descending}
	}
	return PersonSort{Key: key, Direction: Ascending}
}

// PersonQuery is the view specification for the person list. All predicates
// are ANDed; each categorical filter is either FilterAll (or empty) or one
// exact value.
type PersonQuery struct {
	// Search is a case-insensitive substring matched against the display
	// name, the primary affiliation's unit name, and the email address.
	// Empty matches everything.
	Search string `json:"search"`

	Status   string `json:"status"`
	Employer string `json:"employer"`
	// Unit matches persons having ANY affiliation with this unit name, not
	// only the primary one.
	Unit     string `json:"unit"`
	Typology string `json:"typology"`

	Sort PersonSort `json:"sort"`
}

// UnitSortKey enumerates the sortable columns of the unit view.
type UnitSortKey string

const (
	UnitSortIdentity UnitSortKey = "identity"
	UnitSortLevel    UnitSortKey = "level"
	UnitSortStatus   UnitSortKey = "status"
)

var unitSortKeys = map[UnitSortKey]struct{}{
	UnitSortIdentity: {},
	UnitSortLevel:    {},
	UnitSortStatus:   {},
}

func (k UnitSortKey) IsValid() bool {
	_, ok := unitSortKeys[k]
	return ok
}

// UnitSort is a sort key plus direction for unit views.
type UnitSort struct {
	Key       UnitSortKey   `json:"key"`
	Direction SortDirection `json:"direction"`
}

// NextUnitSort mirrors NextPersonSort for unit views.
func NextUnitSort(current UnitSort, key UnitSortKey) UnitSort {
	if current.Key == key && current.Direction == Ascending {
		return UnitSort{Key: key, Direction: Descending}
	}
	return UnitSort{Key: key, Direction: Ascending}
}

// UnitQuery is the view specification for the unit list.
type UnitQuery struct {
	// Search is a case-insensitive substring matched against the official
	// name, the acronym, and the RNSR identifier.
	Search string `json:"search"`

	Level  string `json:"level"`
	Status string `json:"status"`
	// Supervisor matches units whose supervisor set contains this name.
	Supervisor string `json:"supervisor"`

	Sort UnitSort `json:"sort"`
}

// passes reports whether a categorical filter admits the value.
func passes(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}
