package handler

import (
	"net/http"

	"druid/internal/directory/models"
	"druid/internal/directory/view"
	id "druid/pkg/domain"
)

// personQueryFromRequest builds the view specification from list query
// params. Absent filters default to match-all; an unknown sort key is passed
// through and the engine treats it as "leave ordering unchanged".
func personQueryFromRequest(r *http.Request) view.PersonQuery {
	q := r.URL.Query()
	return view.PersonQuery{
		Search:   q.Get("q"),
		Status:   q.Get("status"),
		Employer: q.Get("employer"),
		Unit:     q.Get("unit"),
		Typology: q.Get("typology"),
		Sort: view.PersonSort{
			Key:       view.PersonSortKey(q.Get("sort")),
			Direction: sortDirection(q.Get("dir")),
		},
	}
}

func unitQueryFromRequest(r *http.Request) view.UnitQuery {
	q := r.URL.Query()
	return view.UnitQuery{
		Search:     q.Get("q"),
		Level:      q.Get("level"),
		Status:     q.Get("status"),
		Supervisor: q.Get("supervisor"),
		Sort: view.UnitSort{
			Key:       view.UnitSortKey(q.Get("sort")),
			Direction: sortDirection(q.Get("dir")),
		},
	}
}

func sortDirection(s string) view.SortDirection {
	if s == string(view.Descending) {
		return view.Descending
	}
	return view.Ascending
}

// UpsertAffiliationRequest carries an affiliation payload for PUT.
type UpsertAffiliationRequest struct {
	UnitName  string `json:"unit_name"`
	Team      string `json:"team"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsPrimary bool   `json:"is_primary"`
}

func (r UpsertAffiliationRequest) ToModel() models.Affiliation {
	return models.Affiliation{
		UnitName:  r.UnitName,
		Team:      r.Team,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		IsPrimary: r.IsPrimary,
	}
}

// AddGroupMembershipRequest names the group to add a person to.
type AddGroupMembershipRequest struct {
	Group string `json:"group"`
}

// CreateGroupRequest names the group to create.
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// SetMailingListRequest carries the mailing-list address for a group.
type SetMailingListRequest struct {
	Address string `json:"address"`
}

// BulkGroupAddRequest carries the selection state of a list view: the ids
// currently visible after filter+sort, the selected ids, and the target
// group. Selected ids outside the visible list are ignored.
type BulkGroupAddRequest struct {
	Group    string        `json:"group"`
	Visible  []id.PersonID `json:"visible"`
	Selected []id.PersonID `json:"selected"`
}
