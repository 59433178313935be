package handler

import (
	"druid/internal/directory/models"
)

// PersonListResponse wraps a projected person list.
type PersonListResponse struct {
	Persons []*models.Person `json:"persons"`
	Total   int              `json:"total"`
}

// PersonDetailResponse pairs a person with their validation advisories.
type PersonDetailResponse struct {
	Person     *models.Person    `json:"person"`
	Advisories []models.Advisory `json:"advisories,omitempty"`
}

// UnitListResponse wraps a projected unit list.
type UnitListResponse struct {
	Units []*models.OrganizationalUnit `json:"units"`
	Total int                          `json:"total"`
}

// UnitDetailResponse pairs a unit with its validation advisories.
type UnitDetailResponse struct {
	Unit       *models.OrganizationalUnit `json:"unit"`
	Advisories []models.Advisory          `json:"advisories,omitempty"`
}

// MutationResponse reports a mutation outcome. Applied=false means the store
// treated the request as an ignorable no-op (duplicate group, empty name).
type MutationResponse struct {
	Applied    bool              `json:"applied"`
	Advisories []models.Advisory `json:"advisories,omitempty"`
}

// BulkGroupAddResponse reports how many persons a bulk add touched.
type BulkGroupAddResponse struct {
	Group   string `json:"group"`
	Applied int    `json:"applied"`
}
