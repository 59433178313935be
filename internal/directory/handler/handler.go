// Package handler is the thin HTTP layer over the directory service. It
// delegates to the service without embedding business logic so transport
// concerns remain isolated.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"druid/internal/directory/models"
	"druid/internal/directory/service"
	"druid/internal/directory/view"
	id "druid/pkg/domain"
	"druid/pkg/platform/httputil"
	"druid/pkg/requestcontext"
)

// Service is the slice of the directory service the handlers need.
type Service interface {
	ListPersons(ctx context.Context, q view.PersonQuery) []*models.Person
	GetPerson(ctx context.Context, personID id.PersonID) (*models.Person, error)
	PersonVocabularies(ctx context.Context) view.PersonVocabulary
	UpsertAffiliation(ctx context.Context, personID id.PersonID, aff models.Affiliation, index int) ([]models.Advisory, error)
	RemoveAffiliation(ctx context.Context, personID id.PersonID, index int) error
	AddGroupMembership(ctx context.Context, personID id.PersonID, group string) error
	RemoveGroupMembership(ctx context.Context, personID id.PersonID, group string) error

	ListUnits(ctx context.Context, q view.UnitQuery) []*models.OrganizationalUnit
	GetUnit(ctx context.Context, unitID id.UnitID) (*models.OrganizationalUnit, error)
	SaveUnit(ctx context.Context, u *models.OrganizationalUnit) ([]models.Advisory, error)
	UnitVocabularies(ctx context.Context) view.UnitVocabulary

	ListGroups(ctx context.Context) []service.GroupSummary
	CreateGroup(ctx context.Context, name string) bool
	DeleteGroup(ctx context.Context, name string) bool
	SetGroupMailingAddress(ctx context.Context, name, address string)
	GroupMembers(ctx context.Context, name string) []*models.Person
	MemberCandidates(ctx context.Context, group, search string) []*models.Person

	BulkGroupAdd(ctx context.Context, visible, selected []id.PersonID, group string) (int, error)
}

// Handler wires directory endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a directory handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts directory endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/directory", func(r chi.Router) {
		r.Get("/persons", h.HandleListPersons)
		r.Get("/persons/vocabulary", h.HandlePersonVocabulary)
		r.Get("/persons/{personID}", h.HandleGetPerson)
		r.Put("/persons/{personID}/affiliations/{index}", h.HandleUpsertAffiliation)
		r.Delete("/persons/{personID}/affiliations/{index}", h.HandleRemoveAffiliation)
		r.Post("/persons/{personID}/groups", h.HandleAddGroupMembership)
		r.Delete("/persons/{personID}/groups/{group}", h.HandleRemoveGroupMembership)

		r.Get("/units", h.HandleListUnits)
		r.Get("/units/vocabulary", h.HandleUnitVocabulary)
		r.Get("/units/{unitID}", h.HandleGetUnit)
		r.Put("/units/{unitID}", h.HandleSaveUnit)

		r.Get("/groups", h.HandleListGroups)
		r.Post("/groups", h.HandleCreateGroup)
		r.Delete("/groups/{group}", h.HandleDeleteGroup)
		r.Put("/groups/{group}/mailing-list", h.HandleSetMailingList)
		r.Get("/groups/{group}/members", h.HandleGroupMembers)
		r.Get("/groups/{group}/candidates", h.HandleMemberCandidates)

		r.Post("/selection/bulk-group-add", h.HandleBulkGroupAdd)
	})
}

func (h *Handler) personID(r *http.Request) (id.PersonID, error) {
	return id.ParsePersonID(chi.URLParam(r, "personID"))
}

func (h *Handler) unitID(r *http.Request) (id.UnitID, error) {
	return id.ParseUnitID(chi.URLParam(r, "unitID"))
}

// groupName extracts the {group} path segment. Group names routinely contain
// spaces, so the escaped form has to be decoded before store lookups.
func (h *Handler) groupName(r *http.Request) string {
	raw := chi.URLParam(r, "group")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// HandleListPersons handles GET /directory/persons.
func (h *Handler) HandleListPersons(w http.ResponseWriter, r *http.Request) {
	persons := h.service.ListPersons(r.Context(), personQueryFromRequest(r))
	httputil.WriteJSON(w, http.StatusOK, PersonListResponse{Persons: persons, Total: len(persons)})
}

// HandleGetPerson handles GET /directory/persons/{personID}.
func (h *Handler) HandleGetPerson(w http.ResponseWriter, r *http.Request) {
	personID, err := h.personID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.service.GetPerson(r.Context(), personID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PersonDetailResponse{Person: p, Advisories: p.Advisories()})
}

// HandlePersonVocabulary handles GET /directory/persons/vocabulary.
func (h *Handler) HandlePersonVocabulary(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.PersonVocabularies(r.Context()))
}

// HandleUpsertAffiliation handles PUT /directory/persons/{personID}/affiliations/{index}.
func (h *Handler) HandleUpsertAffiliation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, err := h.personID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		index = -1 // append
	}
	req, err := httputil.Decode[UpsertAffiliationRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	advisories, err := h.service.UpsertAffiliation(ctx, personID, req.ToModel(), index)
	if err != nil {
		h.logger.ErrorContext(ctx, "affiliation upsert failed",
			"request_id", requestcontext.RequestID(ctx),
			"person_id", personID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MutationResponse{Applied: true, Advisories: advisories})
}

// HandleRemoveAffiliation handles DELETE /directory/persons/{personID}/affiliations/{index}.
// An out-of-range index is a silent no-op and still answers 204.
func (h *Handler) HandleRemoveAffiliation(w http.ResponseWriter, r *http.Request) {
	personID, err := h.personID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		index = -1
	}
	if err := h.service.RemoveAffiliation(r.Context(), personID, index); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddGroupMembership handles POST /directory/persons/{personID}/groups.
func (h *Handler) HandleAddGroupMembership(w http.ResponseWriter, r *http.Request) {
	personID, err := h.personID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[AddGroupMembershipRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.AddGroupMembership(r.Context(), personID, req.Group); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemoveGroupMembership handles DELETE /directory/persons/{personID}/groups/{group}.
func (h *Handler) HandleRemoveGroupMembership(w http.ResponseWriter, r *http.Request) {
	personID, err := h.personID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.RemoveGroupMembership(r.Context(), personID, h.groupName(r)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListUnits handles GET /directory/units.
func (h *Handler) HandleListUnits(w http.ResponseWriter, r *http.Request) {
	units := h.service.ListUnits(r.Context(), unitQueryFromRequest(r))
	httputil.WriteJSON(w, http.StatusOK, UnitListResponse{Units: units, Total: len(units)})
}

// HandleGetUnit handles GET /directory/units/{unitID}.
func (h *Handler) HandleGetUnit(w http.ResponseWriter, r *http.Request) {
	unitID, err := h.unitID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	u, err := h.service.GetUnit(r.Context(), unitID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, UnitDetailResponse{Unit: u, Advisories: u.Advisories()})
}

// HandleSaveUnit handles PUT /directory/units/{unitID}. Validation advisories
// (ACTIVE unit without a director) come back with the 200: the save is never
// blocked.
func (h *Handler) HandleSaveUnit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	unitID, err := h.unitID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	u, err := httputil.Decode[models.OrganizationalUnit](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	u.ID = unitID
	advisories, err := h.service.SaveUnit(ctx, &u)
	if err != nil {
		h.logger.ErrorContext(ctx, "unit save failed",
			"request_id", requestcontext.RequestID(ctx),
			"unit_id", unitID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MutationResponse{Applied: true, Advisories: advisories})
}

// HandleUnitVocabulary handles GET /directory/units/vocabulary.
func (h *Handler) HandleUnitVocabulary(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.UnitVocabularies(r.Context()))
}

// HandleListGroups handles GET /directory/groups.
func (h *Handler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.ListGroups(r.Context()))
}

// HandleCreateGroup handles POST /directory/groups. Duplicate or empty names
// are ignorable no-ops, reported via Applied=false rather than an error.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[CreateGroupRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	created := h.service.CreateGroup(r.Context(), req.Name)
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httputil.WriteJSON(w, status, MutationResponse{Applied: created})
}

// HandleDeleteGroup handles DELETE /directory/groups/{group}.
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	h.service.DeleteGroup(r.Context(), h.groupName(r))
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetMailingList handles PUT /directory/groups/{group}/mailing-list.
func (h *Handler) HandleSetMailingList(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[SetMailingListRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.service.SetGroupMailingAddress(r.Context(), h.groupName(r), req.Address)
	w.WriteHeader(http.StatusNoContent)
}

// HandleGroupMembers handles GET /directory/groups/{group}/members.
func (h *Handler) HandleGroupMembers(w http.ResponseWriter, r *http.Request) {
	persons := h.service.GroupMembers(r.Context(), h.groupName(r))
	httputil.WriteJSON(w, http.StatusOK, PersonListResponse{Persons: persons, Total: len(persons)})
}

// HandleMemberCandidates handles GET /directory/groups/{group}/candidates.
func (h *Handler) HandleMemberCandidates(w http.ResponseWriter, r *http.Request) {
	persons := h.service.MemberCandidates(r.Context(), h.groupName(r), r.URL.Query().Get("q"))
	httputil.WriteJSON(w, http.StatusOK, PersonListResponse{Persons: persons, Total: len(persons)})
}

// HandleBulkGroupAdd handles POST /directory/selection/bulk-group-add.
func (h *Handler) HandleBulkGroupAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := httputil.Decode[BulkGroupAddRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	applied, err := h.service.BulkGroupAdd(ctx, req.Visible, req.Selected, req.Group)
	if err != nil {
		h.logger.ErrorContext(ctx, "bulk group add failed",
			"request_id", requestcontext.RequestID(ctx),
			"group", req.Group,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BulkGroupAddResponse{Group: req.Group, Applied: applied})
}
