// Package selection tracks which currently-visible entity identifiers are
// selected and applies bulk mutations to exactly that set.
//
// A selection is scoped to one derived view. "Select all" is defined against
// the view's visible id list, never the full store, and the all-selected state
// is a pure function of (selection ∩ visible) versus visible rather than a
// stored flag, so it can never desynchronize when the visible set changes
// between renders.
package selection

import (
	"context"

	id "druid/pkg/domain"
)

// MembershipStore is the slice of the entity store bulk actions need.
type MembershipStore interface {
	AddGroupMembership(ctx context.Context, personID id.PersonID, group string) error
}

// Selection is a set of selected person identifiers. Not safe for concurrent
// use; each view owns one and drives it from its event loop.
type Selection struct {
	ids map[id.PersonID]struct{}
}

// New returns an empty selection.
func New() *Selection {
	return &Selection{ids: make(map[id.PersonID]struct{})}
}

// Toggle flips membership of a single id.
func (s *Selection) Toggle(personID id.PersonID) {
	if _, ok := s.ids[personID]; ok {
		delete(s.ids, personID)
		return
	}
	s.ids[personID] = struct{}{}
}

// Has reports whether the id is selected.
func (s *Selection) Has(personID id.PersonID) bool {
	_, ok := s.ids[personID]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected ids in unspecified order.
func (s *Selection) IDs() []id.PersonID {
	out := make([]id.PersonID, 0, len(s.ids))
	for pid := range s.ids {
		out = append(out, pid)
	}
	return out
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[id.PersonID]struct{})
}

// AllVisibleSelected reports whether every visible id is selected. An empty
// visible list is never "all selected".
func (s *Selection) AllVisibleSelected(visible []id.PersonID) bool {
	if len(visible) == 0 {
		return false
	}
	for _, pid := range visible {
		if !s.Has(pid) {
			return false
		}
	}
	return true
}

// SelectAllVisible implements the tri-state header checkbox: when every
// visible id is already selected the visible ids are deselected; any partial
// or empty state moves toward fully selected. Ids outside the visible list
// are left untouched.
func (s *Selection) SelectAllVisible(visible []id.PersonID) {
	if s.AllVisibleSelected(visible) {
		for _, pid := range visible {
			delete(s.ids, pid)
		}
		return
	}
	for _, pid := range visible {
		s.ids[pid] = struct{}{}
	}
}

// Prune drops every selected id not present in valid. Call it whenever the
// underlying view or store changes so stale ids never linger.
func (s *Selection) Prune(valid []id.PersonID) {
	keep := make(map[id.PersonID]struct{}, len(valid))
	for _, pid := range valid {
		keep[pid] = struct{}{}
	}
	for pid := range s.ids {
		if _, ok := keep[pid]; !ok {
			delete(s.ids, pid)
		}
	}
}

// ApplyBulkGroupAdd adds every selected person to the named group through the
// store's idempotent membership op and clears the selection afterward. Each
// add is independently idempotent, so there is no partial-application state
// to roll back; the first real error aborts and keeps the selection intact so
// the caller can retry.
func (s *Selection) ApplyBulkGroupAdd(ctx context.Context, store MembershipStore, group string) error {
	for pid := range s.ids {
		if err := store.AddGroupMembership(ctx, pid, group); err != nil {
			return err
		}
	}
	s.Clear()
	return nil
}
