// Package view implements the derived view engine: pure, deterministic
// projections of an entity-store snapshot under a view specification.
//
// The engine never mutates anything. Given the same snapshot and query it
// always produces the same ordered result, which is what makes incremental
// re-rendering and testing straightforward. Filtering runs before sorting so
// "select all" always operates on the post-filter, post-sort set.
//
// Aggregates (filter vocabularies, group roll-ups) are computed over the
// UNFILTERED collection so option lists stay stable while the user narrows a
// view, and are memoized on the snapshot version.
package view

import (
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"druid/internal/directory/models"
	"druid/internal/directory/store"
	pkgstrings "druid/pkg/platform/strings"
)

// aggregateCacheSize bounds the version-keyed memo. Snapshots arrive in
// version order, so two entries would do; a little headroom costs nothing.
const aggregateCacheSize = 8

// Engine projects snapshots. Safe for concurrent use: the collator is guarded
// because golang.org/x/text collators reuse internal buffers.
type Engine struct {
	mu       sync.Mutex
	collator *collate.Collator
	memo     *lru.Cache[uint64, *aggregates]
}

// NewEngine builds an engine with French collation, matching the directory's
// locale, and a version-keyed aggregate memo.
func NewEngine() *Engine {
	memo, _ := lru.New[uint64, *aggregates](aggregateCacheSize)
	return &Engine{
		collator: collate.New(language.French, collate.Loose),
		memo:     memo,
	}
}

// compare orders a before b using locale-aware collation. Empty values sort
// before any non-empty string.
func (e *Engine) compare(a, b string) int {
	if a == "" || b == "" {
		switch {
		case a == b:
			return 0
		case a == "":
			return -1
		default:
			return 1
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.collator.CompareString(a, b)
}

// --- person projection ---

// MatchPerson reports whether the person satisfies every predicate of the
// query (logical AND across independent filters).
func MatchPerson(p *models.Person, q PersonQuery) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		primaryUnit := ""
		if primary, ok := p.PrimaryAffiliation(); ok {
			primaryUnit = primary.UnitName
		}
		if !strings.Contains(strings.ToLower(p.DisplayName), needle) &&
			!strings.Contains(strings.ToLower(primaryUnit), needle) &&
			!strings.Contains(strings.ToLower(p.Email), needle) {
			return false
		}
	}
	if !passes(q.Status, string(p.Status)) {
		return false
	}
	if !passes(q.Employer, p.Employment.Employer) {
		return false
	}
	if q.Unit != "" && q.Unit != FilterAll {
		found := false
		for _, a := range p.Affiliations {
			if a.UnitName == q.Unit {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return passes(q.Typology, p.Employment.InternalTypology)
}

// personSortValue projects the field a sort key compares on.
func personSortValue(p *models.Person, key PersonSortKey) string {
	switch key {
	case PersonSortDisplayName:
		return p.DisplayName
	case PersonSortStatus:
		return string(p.Status)
	case PersonSortEmployer:
		return p.Employment.Employer
	case PersonSortUnit:
		if primary, ok := p.PrimaryAffiliation(); ok {
			return primary.UnitName
		}
		return ""
	case PersonSortTeam:
		if primary, ok := p.PrimaryAffiliation(); ok {
			return primary.Team
		}
		return ""
	}
	return ""
}

// ProjectPersons filters then stably sorts the snapshot's persons under the
// query. With no sort key (or an unknown one) the snapshot's insertion order
// is preserved for the filtered subset.
func (e *Engine) ProjectPersons(snap store.Snapshot, q PersonQuery) []*models.Person {
	out := make([]*models.Person, 0, len(snap.Persons))
	for _, p := range snap.Persons {
		if MatchPerson(p, q) {
			out = append(out, p)
		}
	}
	if !q.Sort.Key.IsValid() {
		return out
	}
	desc := q.Sort.Direction == Descending
	sort.SliceStable(out, func(i, j int) bool {
		c := e.compare(personSortValue(out[i], q.Sort.Key), personSortValue(out[j], q.Sort.Key))
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// MemberCandidates returns persons eligible for quick-add into the named
// group: not already members, display name matching the search term, capped
// at limit (<=0 means no cap). Snapshot order is preserved.
func (e *Engine) MemberCandidates(snap store.Snapshot, group, search string, limit int) []*models.Person {
	needle := strings.ToLower(search)
	var out []*models.Person
	for _, p := range snap.Persons {
		if p.InGroup(group) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.DisplayName), needle) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// --- unit projection ---

// MatchUnit reports whether the unit satisfies every predicate of the query.
func MatchUnit(u *models.OrganizationalUnit, q UnitQuery) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(u.OfficialName), needle) &&
			!strings.Contains(strings.ToLower(u.Acronym), needle) &&
			!strings.Contains(strings.ToLower(u.RNSRID), needle) {
			return false
		}
	}
	if !passes(q.Level, string(u.Level)) {
		return false
	}
	if !passes(q.Status, string(u.Status)) {
		return false
	}
	if q.Supervisor != "" && q.Supervisor != FilterAll && !u.HasSupervisor(q.Supervisor) {
		return false
	}
	return true
}

func unitSortValue(u *models.OrganizationalUnit, key UnitSortKey) string {
	switch key {
	case UnitSortIdentity:
		return u.Acronym
	case UnitSortLevel:
		return string(u.Level)
	case UnitSortStatus:
		return string(u.Status)
	}
	return ""
}

// ProjectUnits filters then stably sorts the snapshot's units under the query.
func (e *Engine) ProjectUnits(snap store.Snapshot, q UnitQuery) []*models.OrganizationalUnit {
	out := make([]*models.OrganizationalUnit, 0, len(snap.Units))
	for _, u := range snap.Units {
		if MatchUnit(u, q) {
			out = append(out, u)
		}
	}
	if !q.Sort.Key.IsValid() {
		return out
	}
	desc := q.Sort.Direction == Descending
	sort.SliceStable(out, func(i, j int) bool {
		c := e.compare(unitSortValue(out[i], q.Sort.Key), unitSortValue(out[j], q.Sort.Key))
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// --- aggregates ---

// PersonVocabulary holds the distinct non-empty filter options extracted from
// the unfiltered person collection, sorted for deterministic display.
type PersonVocabulary struct {
	Employers  []string `json:"employers"`
	Units      []string `json:"units"`
	Typologies []string `json:"typologies"`
	Groups     []string `json:"groups"`
}

// UnitVocabulary holds the distinct filter options of the unit collection.
type UnitVocabulary struct {
	Supervisors []string `json:"supervisors"`
}

type aggregates struct {
	personVocab PersonVocabulary
	unitVocab   UnitVocabulary
	groupCounts map[string]int
}

// aggregate computes (or recalls) all cross-entity aggregates for a snapshot.
// The memo key is the snapshot version: the store bumps it on every effective
// mutation, so a hit is always current.
func (e *Engine) aggregate(snap store.Snapshot) *aggregates {
	if agg, ok := e.memo.Get(snap.Version); ok {
		return agg
	}

	var employers, units, typologies, groupNames []string
	counts := make(map[string]int)
	for _, p := range snap.Persons {
		employers = append(employers, p.Employment.Employer)
		typologies = append(typologies, p.Employment.InternalTypology)
		for _, a := range p.Affiliations {
			units = append(units, a.UnitName)
		}
		for _, g := range p.Groups {
			groupNames = append(groupNames, g)
			counts[g]++
		}
	}
	// Configured-but-empty groups still belong to the vocabulary with count 0.
	for _, g := range snap.Groups {
		groupNames = append(groupNames, g.Name)
	}

	var supervisors []string
	for _, u := range snap.Units {
		supervisors = append(supervisors, u.Supervisors...)
	}

	agg := &aggregates{
		personVocab: PersonVocabulary{
			Employers:  pkgstrings.DedupeAndTrimSorted(employers),
			Units:      pkgstrings.DedupeAndTrimSorted(units),
			Typologies: pkgstrings.DedupeAndTrimSorted(typologies),
			Groups:     pkgstrings.DedupeAndTrimSorted(groupNames),
		},
		unitVocab:   UnitVocabulary{Supervisors: pkgstrings.DedupeAndTrimSorted(supervisors)},
		groupCounts: counts,
	}
	e.memo.Add(snap.Version, agg)
	return agg
}

// PersonVocabularies extracts filter-option lists from the unfiltered person
// collection. Option lists must not shrink as the user filters, so this never
// looks at a query.
func (e *Engine) PersonVocabularies(snap store.Snapshot) PersonVocabulary {
	return e.aggregate(snap).personVocab
}

// UnitVocabularies extracts filter-option lists from the unit collection.
func (e *Engine) UnitVocabularies(snap store.Snapshot) UnitVocabulary {
	return e.aggregate(snap).unitVocab
}

// GroupCounts maps each group name to its member count, derived by scanning
// every person's group set exactly once per snapshot version.
func (e *Engine) GroupCounts(snap store.Snapshot) map[string]int {
	return e.aggregate(snap).groupCounts
}
