// Package service orchestrates the directory: it fronts the entity store with
// the derived view engine, emits audit events for mutations, and records
// metrics. Handlers talk to this layer only.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"druid/internal/audit"
	"druid/internal/directory/metrics"
	"druid/internal/directory/models"
	"druid/internal/directory/selection"
	"druid/internal/directory/store"
	"druid/internal/directory/view"
	id "druid/pkg/domain"
	dErrors "druid/pkg/domain-errors"
	"druid/pkg/platform/sentinel"
	"druid/pkg/requestcontext"
)

// memberCandidateLimit caps the quick-add suggestion list.
const memberCandidateLimit = 5

// Directory is the application service over the entity store and view engine.
type Directory struct {
	store   *store.Memory
	engine  *view.Engine
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Publisher
}

// Option configures a Directory.
type Option func(*Directory)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Directory) { d.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Directory) { d.metrics = m }
}

func WithAuditPublisher(p *audit.Publisher) Option {
	return func(d *Directory) { d.audit = p }
}

// New constructs the directory service.
func New(st *store.Memory, opts ...Option) *Directory {
	d := &Directory{
		store:  st,
		engine: view.NewEngine(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// GroupSummary pairs a group's configuration with its derived member count.
type GroupSummary struct {
	models.Group
	Members int `json:"members"`
}

func (d *Directory) emit(ctx context.Context, action, entity, entityID, detail string) {
	if d.audit == nil {
		return
	}
	d.audit.Emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Detail:    detail,
		RequestID: requestcontext.RequestID(ctx),
	})
}

func (d *Directory) count(operation string) {
	if d.metrics != nil {
		d.metrics.IncrementMutation(operation)
	}
}

func (d *Directory) observeProjection(start time.Time) {
	if d.metrics != nil {
		d.metrics.ObserveProjection(start)
	}
}

func wrapNotFound(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, what+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "store operation failed")
}

// --- person views ---

// ListPersons projects the person collection under the view specification.
func (d *Directory) ListPersons(ctx context.Context, q view.PersonQuery) []*models.Person {
	defer d.observeProjection(time.Now())
	return d.engine.ProjectPersons(d.store.Snapshot(ctx), q)
}

// GetPerson returns one person with its validation advisories resolved by the
// caller via models.Person.Advisories.
func (d *Directory) GetPerson(ctx context.Context, personID id.PersonID) (*models.Person, error) {
	p, err := d.store.FindPerson(ctx, personID)
	if err != nil {
		return nil, wrapNotFound(err, "person")
	}
	return p, nil
}

// PersonVocabularies returns the filter-option lists for person views.
func (d *Directory) PersonVocabularies(ctx context.Context) view.PersonVocabulary {
	return d.engine.PersonVocabularies(d.store.Snapshot(ctx))
}

// --- person mutations ---

// UpsertAffiliation inserts or replaces an affiliation, preserving the
// single-primary invariant, and returns the person's advisories so the
// presentation layer can warn without blocking.
func (d *Directory) UpsertAffiliation(ctx context.Context, personID id.PersonID, aff models.Affiliation, index int) ([]models.Advisory, error) {
	if err := d.store.UpsertAffiliation(ctx, personID, aff, index); err != nil {
		return nil, wrapNotFound(err, "person")
	}
	d.count("affiliation_upsert")
	d.emit(ctx, "affiliation_upsert", "person", personID.String(), aff.UnitName)

	p, err := d.store.FindPerson(ctx, personID)
	if err != nil {
		return nil, wrapNotFound(err, "person")
	}
	return p.Advisories(), nil
}

// RemoveAffiliation removes the affiliation at index; out of range is a
// silent no-op. No other affiliation is promoted to primary.
func (d *Directory) RemoveAffiliation(ctx context.Context, personID id.PersonID, index int) error {
	if err := d.store.RemoveAffiliation(ctx, personID, index); err != nil {
		return wrapNotFound(err, "person")
	}
	d.count("affiliation_remove")
	d.emit(ctx, "affiliation_remove", "person", personID.String(), "")
	return nil
}

// AddGroupMembership adds the person to a group (idempotent).
func (d *Directory) AddGroupMembership(ctx context.Context, personID id.PersonID, group string) error {
	if err := d.store.AddGroupMembership(ctx, personID, group); err != nil {
		return wrapNotFound(err, "person")
	}
	d.count("group_membership_add")
	d.emit(ctx, "group_membership_add", "person", personID.String(), group)
	return nil
}

// RemoveGroupMembership removes the person from a group (idempotent).
func (d *Directory) RemoveGroupMembership(ctx context.Context, personID id.PersonID, group string) error {
	if err := d.store.RemoveGroupMembership(ctx, personID, group); err != nil {
		return wrapNotFound(err, "person")
	}
	d.count("group_membership_remove")
	d.emit(ctx, "group_membership_remove", "person", personID.String(), group)
	return nil
}

// --- unit views & mutations ---

// ListUnits projects the unit collection under the view specification.
func (d *Directory) ListUnits(ctx context.Context, q view.UnitQuery) []*models.OrganizationalUnit {
	defer d.observeProjection(time.Now())
	return d.engine.ProjectUnits(d.store.Snapshot(ctx), q)
}

// GetUnit returns one unit.
func (d *Directory) GetUnit(ctx context.Context, unitID id.UnitID) (*models.OrganizationalUnit, error) {
	u, err := d.store.FindUnit(ctx, unitID)
	if err != nil {
		return nil, wrapNotFound(err, "unit")
	}
	return u, nil
}

// SaveUnit stores the unit unconditionally and returns validation advisories.
// Validation warns, it never rejects: an ACTIVE unit without a director is
// stored and flagged.
func (d *Directory) SaveUnit(ctx context.Context, u *models.OrganizationalUnit) ([]models.Advisory, error) {
	if u == nil || u.ID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unit id is required")
	}
	if err := d.store.PutUnit(ctx, u); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save unit")
	}
	d.count("unit_save")
	d.emit(ctx, "unit_save", "unit", u.ID.String(), u.Acronym)
	return u.Advisories(), nil
}

// UnitVocabularies returns the filter-option lists for unit views.
func (d *Directory) UnitVocabularies(ctx context.Context) view.UnitVocabulary {
	return d.engine.UnitVocabularies(d.store.Snapshot(ctx))
}

// --- groups ---

// ListGroups returns all groups (configured plus implicit) with derived
// member counts.
func (d *Directory) ListGroups(ctx context.Context) []GroupSummary {
	snap := d.store.Snapshot(ctx)
	counts := d.engine.GroupCounts(snap)
	out := make([]GroupSummary, 0, len(snap.Groups))
	for _, g := range snap.Groups {
		out = append(out, GroupSummary{Group: g, Members: counts[g.Name]})
	}
	return out
}

// CreateGroup registers a group. Empty or duplicate names are silent no-ops;
// the bool reports whether anything was created.
func (d *Directory) CreateGroup(ctx context.Context, name string) bool {
	created := d.store.CreateGroup(ctx, name)
	if created {
		d.count("group_create")
		d.emit(ctx, "group_create", "group", name, "")
	}
	return created
}

// DeleteGroup removes the group and cascades the detach across all persons.
func (d *Directory) DeleteGroup(ctx context.Context, name string) bool {
	removed := d.store.DeleteGroup(ctx, name)
	if removed {
		d.count("group_delete")
		d.emit(ctx, "group_delete", "group", name, "")
	}
	return removed
}

// SetGroupMailingAddress updates the mailing-list address for a group.
func (d *Directory) SetGroupMailingAddress(ctx context.Context, name, address string) {
	d.store.SetGroupMailingAddress(ctx, name, address)
	d.count("group_mailing_set")
	d.emit(ctx, "group_mailing_set", "group", name, address)
}

// GroupMembers lists the persons belonging to the named group.
func (d *Directory) GroupMembers(ctx context.Context, name string) []*models.Person {
	return d.store.GroupMembers(ctx, name)
}

// MemberCandidates suggests persons for quick-add into a group.
func (d *Directory) MemberCandidates(ctx context.Context, group, search string) []*models.Person {
	return d.engine.MemberCandidates(d.store.Snapshot(ctx), group, search, memberCandidateLimit)
}

// --- bulk actions ---

// BulkGroupAdd applies the selection semantics of the list views: the
// selected ids are pruned to the visible id list, every remaining person gets
// the group membership, and the (ephemeral) selection is cleared. Returns how
// many persons were touched.
func (d *Directory) BulkGroupAdd(ctx context.Context, visible, selected []id.PersonID, group string) (int, error) {
	if group == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "group name is required")
	}
	sel := selection.New()
	for _, pid := range selected {
		sel.Toggle(pid)
	}
	sel.Prune(visible)
	size := sel.Len()
	if err := sel.ApplyBulkGroupAdd(ctx, d.store, group); err != nil {
		return 0, wrapNotFound(err, "person")
	}
	if d.metrics != nil {
		d.metrics.ObserveBulkGroupAdd(size)
	}
	d.count("bulk_group_add")
	d.emit(ctx, "bulk_group_add", "group", group, "")
	d.logger.InfoContext(ctx, "bulk group add applied",
		"group", group,
		"persons", size,
	)
	return size, nil
}

// Subscribe exposes the store's change notification for presentation layers
// that re-render on mutation.
func (d *Directory) Subscribe() <-chan struct{} {
	return d.store.Subscribe()
}
