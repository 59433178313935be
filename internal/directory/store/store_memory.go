// Package store implements the in-memory entity store: the single mutation
// authority over persons, organizational units, and group configuration.
//
// Every read hands out deep copies, so callers can never alias internal state.
// A monotonically increasing version counter changes on every effective
// mutation; derived-view aggregates memoize on it. Subscribers receive a
// non-blocking change signal so the presentation layer can re-render.
//
// Invalid-but-ignorable input (empty group name, duplicate group, out-of-range
// affiliation index) is a silent no-op, never an error. Only genuinely missing
// entities surface sentinel.ErrNotFound.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"druid/internal/directory/models"
	id "druid/pkg/domain"
	"druid/pkg/platform/sentinel"
)

// Snapshot is a read-only copy of the store contents at one version. The
// derived view engine operates on snapshots exclusively and never mutates.
type Snapshot struct {
	Persons []*models.Person
	Units   []*models.OrganizationalUnit
	Groups  []models.Group
	Version uint64
}

// Memory is the in-memory entity store.
//
// The group-membership index mirrors the denormalized group-name sets held on
// each person. The person-side list is the source of truth; the index is
// maintained incrementally on every membership mutation and the two never
// diverge because all mutations go through this store under one lock.
type Memory struct {
	mu sync.RWMutex

	persons     map[id.PersonID]*models.Person
	personOrder []id.PersonID

	units     map[id.UnitID]*models.OrganizationalUnit
	unitOrder []id.UnitID

	groups       map[string]*models.Group
	groupMembers map[string]map[id.PersonID]struct{}

	version     uint64
	subscribers []chan struct{}
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		persons:      make(map[id.PersonID]*models.Person),
		units:        make(map[id.UnitID]*models.OrganizationalUnit),
		groups:       make(map[string]*models.Group),
		groupMembers: make(map[string]map[id.PersonID]struct{}),
	}
}

// Subscribe registers a change listener. Signals are best-effort: a slow
// listener misses intermediate notifications but always receives one after
// the latest mutation, which bounds staleness to the next interaction.
func (m *Memory) Subscribe() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan struct{}, 1)
	m.subscribers = append(m.subscribers, ch)
	return ch
}

// Version returns the current change counter.
func (m *Memory) Version(_ context.Context) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

// Snapshot returns a deep copy of the full store state.
func (m *Memory) Snapshot(_ context.Context) Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		Persons: m.listPersonsLocked(),
		Units:   m.listUnitsLocked(),
		Groups:  m.listGroupsLocked(),
		Version: m.version,
	}
}

// bump records an effective mutation and pings subscribers. Callers hold the
// write lock.
func (m *Memory) bump() {
	m.version++
	for _, ch := range m.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// --- persons ---

// PutPerson inserts or replaces a person record, keeping insertion order for
// stable unsorted listings and refreshing the group index for that person.
func (m *Memory) PutPerson(_ context.Context, p *models.Person) error {
	if p == nil || p.ID.IsNil() {
		return sentinel.ErrInvalidState
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.persons[p.ID]; ok {
		m.detachFromIndexLocked(p.ID, existing.Groups)
	} else {
		m.personOrder = append(m.personOrder, p.ID)
	}
	cp := p.Clone()
	m.persons[p.ID] = cp
	m.attachToIndexLocked(p.ID, cp.Groups)
	m.bump()
	return nil
}

// FindPerson returns a copy of the person or sentinel.ErrNotFound.
func (m *Memory) FindPerson(_ context.Context, personID id.PersonID) (*models.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.persons[personID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

// ListPersons returns copies of all persons in insertion order.
func (m *Memory) ListPersons(_ context.Context) []*models.Person {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listPersonsLocked()
}

func (m *Memory) listPersonsLocked() []*models.Person {
	out := make([]*models.Person, 0, len(m.personOrder))
	for _, pid := range m.personOrder {
		out = append(out, m.persons[pid].Clone())
	}
	return out
}

// DeletePerson removes a person and detaches them from the group index.
// In normal operation staff are marked LEFT instead; deletion exists for
// administrative cleanup of erroneous imports.
func (m *Memory) DeletePerson(_ context.Context, personID id.PersonID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.persons[personID]
	if !ok {
		return sentinel.ErrNotFound
	}
	m.detachFromIndexLocked(personID, p.Groups)
	delete(m.persons, personID)
	for i, pid := range m.personOrder {
		if pid == personID {
			m.personOrder = append(m.personOrder[:i], m.personOrder[i+1:]...)
			break
		}
	}
	m.bump()
	return nil
}

// UpsertAffiliation inserts or replaces an affiliation at a position. An index
// outside the current slice appends. When the incoming affiliation is flagged
// primary, every other affiliation is force-cleared first so at most one
// primary ever exists. Date ordering is not validated (pass-through).
func (m *Memory) UpsertAffiliation(_ context.Context, personID id.PersonID, aff models.Affiliation, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.persons[personID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if aff.IsPrimary {
		for i := range p.Affiliations {
			p.Affiliations[i].IsPrimary = false
		}
	}
	if index >= 0 && index < len(p.Affiliations) {
		p.Affiliations[index] = aff
	} else {
		p.Affiliations = append(p.Affiliations, aff)
	}
	m.bump()
	return nil
}

// RemoveAffiliation deletes the affiliation at index. Out-of-range indexes are
// a silent no-op. Removing the primary leaves zero primaries: nothing is
// auto-promoted.
func (m *Memory) RemoveAffiliation(_ context.Context, personID id.PersonID, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.persons[personID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if index < 0 || index >= len(p.Affiliations) {
		return nil
	}
	p.Affiliations = append(p.Affiliations[:index], p.Affiliations[index+1:]...)
	m.bump()
	return nil
}

// AddGroupMembership adds the person to the named group. Idempotent: adding a
// group already present never duplicates and does not count as a change.
func (m *Memory) AddGroupMembership(_ context.Context, personID id.PersonID, group string) error {
	group = strings.TrimSpace(group)
	if group == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.persons[personID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if p.InGroup(group) {
		return nil
	}
	p.Groups = append(p.Groups, group)
	m.attachToIndexLocked(personID, []string{group})
	m.bump()
	return nil
}

// RemoveGroupMembership removes the person from the named group. Idempotent.
func (m *Memory) RemoveGroupMembership(_ context.Context, personID id.PersonID, group string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.persons[personID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !p.InGroup(group) {
		return nil
	}
	for i, g := range p.Groups {
		if g == group {
			p.Groups = append(p.Groups[:i], p.Groups[i+1:]...)
			break
		}
	}
	m.detachFromIndexLocked(personID, []string{group})
	m.bump()
	return nil
}

// --- units ---

// PutUnit inserts or replaces a unit record.
func (m *Memory) PutUnit(_ context.Context, u *models.OrganizationalUnit) error {
	if u == nil || u.ID.IsNil() {
		return sentinel.ErrInvalidState
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.units[u.ID]; !ok {
		m.unitOrder = append(m.unitOrder, u.ID)
	}
	m.units[u.ID] = u.Clone()
	m.bump()
	return nil
}

// FindUnit returns a copy of the unit or sentinel.ErrNotFound.
func (m *Memory) FindUnit(_ context.Context, unitID id.UnitID) (*models.OrganizationalUnit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.units[unitID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return u.Clone(), nil
}

// ListUnits returns copies of all units in insertion order.
func (m *Memory) ListUnits(_ context.Context) []*models.OrganizationalUnit {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listUnitsLocked()
}

func (m *Memory) listUnitsLocked() []*models.OrganizationalUnit {
	out := make([]*models.OrganizationalUnit, 0, len(m.unitOrder))
	for _, uid := range m.unitOrder {
		out = append(out, m.units[uid].Clone())
	}
	return out
}

// --- groups ---

// CreateGroup registers an empty group configuration. An empty name after
// trimming or an existing group with the exact same name is a silent no-op;
// the returned bool says whether anything was created.
func (m *Memory) CreateGroup(_ context.Context, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.groups[name]; exists {
		return false
	}
	m.groups[name] = &models.Group{Name: name}
	m.bump()
	return true
}

// DeleteGroup removes the group configuration and detaches the name from
// every person's membership set in the same locked operation, so no reader
// ever observes a person referencing a deleted group.
func (m *Memory) DeleteGroup(_ context.Context, name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, configured := m.groups[name]
	members := m.groupMembers[name]
	if !configured && len(members) == 0 {
		return false
	}

	for pid := range members {
		p := m.persons[pid]
		for i, g := range p.Groups {
			if g == name {
				p.Groups = append(p.Groups[:i], p.Groups[i+1:]...)
				break
			}
		}
	}
	delete(m.groupMembers, name)
	delete(m.groups, name)
	m.bump()
	return true
}

// SetGroupMailingAddress updates the mailing-list address for a group. Pure
// key/value update: the address syntax is not validated, and setting it on a
// group known only through person memberships materializes its configuration.
func (m *Memory) SetGroupMailingAddress(_ context.Context, name, address string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[name]
	if !ok {
		g = &models.Group{Name: name}
		m.groups[name] = g
	}
	g.MailingList = address
	m.bump()
}

// ListGroups returns the union of configured groups and group names present
// on any person, sorted by name. Groups referenced only by memberships get an
// implicit empty configuration.
func (m *Memory) ListGroups(_ context.Context) []models.Group {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listGroupsLocked()
}

func (m *Memory) listGroupsLocked() []models.Group {
	names := make(map[string]struct{}, len(m.groups))
	for name := range m.groups {
		names[name] = struct{}{}
	}
	for name, members := range m.groupMembers {
		if len(members) > 0 {
			names[name] = struct{}{}
		}
	}
	out := make([]models.Group, 0, len(names))
	for name := range names {
		if g, ok := m.groups[name]; ok {
			out = append(out, *g)
		} else {
			out = append(out, models.Group{Name: name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GroupMembers returns copies of the persons belonging to the named group,
// in store insertion order.
func (m *Memory) GroupMembers(_ context.Context, name string) []*models.Person {
	m.mu.RLock()
	defer m.mu.RUnlock()
	members := m.groupMembers[name]
	out := make([]*models.Person, 0, len(members))
	for _, pid := range m.personOrder {
		if _, ok := members[pid]; ok {
			out = append(out, m.persons[pid].Clone())
		}
	}
	return out
}

// --- group index maintenance ---

func (m *Memory) attachToIndexLocked(personID id.PersonID, groups []string) {
	for _, g := range groups {
		set, ok := m.groupMembers[g]
		if !ok {
			set = make(map[id.PersonID]struct{})
			m.groupMembers[g] = set
		}
		set[personID] = struct{}{}
	}
}

func (m *Memory) detachFromIndexLocked(personID id.PersonID, groups []string) {
	for _, g := range groups {
		if set, ok := m.groupMembers[g]; ok {
			delete(set, personID)
			if len(set) == 0 {
				delete(m.groupMembers, g)
			}
		}
	}
}
