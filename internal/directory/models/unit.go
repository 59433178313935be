package models

import (
	id "druid/pkg/domain"
)

// UnitLevel places a unit in the four-level national hierarchy.
type UnitLevel string

const (
	LevelEtablissement UnitLevel = "ETABLISSEMENT"
	LevelIntermediaire UnitLevel = "INTERMEDIAIRE"
	LevelEntite        UnitLevel = "ENTITE"
	LevelEquipe        UnitLevel = "EQUIPE"
)

// UnitStatus is the lifecycle status of a unit.
type UnitStatus string

const (
	UnitProjet      UnitStatus = "PROJET"
	UnitActive      UnitStatus = "ACTIVE"
	UnitEnFermeture UnitStatus = "EN_FERMETURE"
	UnitFermee      UnitStatus = "FERMEE"
)

// UnitNature is the legal nature of a unit.
type UnitNature string

const (
	NaturePublic UnitNature = "PUBLIC"
	NaturePrive  UnitNature = "PRIVE"
	NatureMixte  UnitNature = "MIXTE"
)

// UnitMission is the main mission carried by a unit.
type UnitMission string

const (
	MissionRecherche     UnitMission = "RECHERCHE"
	MissionServicesSci   UnitMission = "SERVICES_SCIENTIFIQUES"
	MissionServicesAdmin UnitMission = "SERVICES_ADMINISTRATIFS"
)

// LineageType classifies a succession event between units.
type LineageType string

const (
	LineageSuccession  LineageType = "SUCCESSION"
	LineageIntegration LineageType = "INTEGRATION"
	LineageFusion      LineageType = "FUSION"
	LineageScission    LineageType = "SCISSION"
)

// LineageLink records a succession/merger/split relationship with another
// unit. The related unit is captured by name alongside its id because closed
// units may no longer resolve.
type LineageLink struct {
	RelatedUnitID   string      `json:"related_unit_id,omitempty"`
	RelatedUnitName string      `json:"related_unit_name"`
	Type            LineageType `json:"type"`
	Date            string      `json:"date"`
}

// OrganizationalUnit is a research structure at one of the four hierarchy
// levels. The hierarchy itself is informal: Cluster and Supervisors reference
// other structures by display name, never by identifier, matching the loose
// label contract of the national registries the data comes from.
type OrganizationalUnit struct {
	ID         id.UnitID `json:"id"`
	TrackingID string    `json:"tracking_id,omitempty"`

	Level        UnitLevel  `json:"level"`
	Nature       UnitNature `json:"nature"`
	Type         string     `json:"type,omitempty"`
	Acronym      string     `json:"acronym"`
	OfficialName string     `json:"official_name"`
	Description  string     `json:"description,omitempty"`
	Cluster      string     `json:"cluster,omitempty"`

	Code    string `json:"code,omitempty"`
	RNSRID  string `json:"rnsr_id,omitempty"`
	RNestID string `json:"rnest_id,omitempty"`
	SIREN   string `json:"siren,omitempty"`

	Status       UnitStatus    `json:"status"`
	Lineage      []LineageLink `json:"lineage,omitempty"`
	CreationDate string        `json:"creation_date,omitempty"`
	CloseDate    string        `json:"close_date,omitempty"`

	PrimaryMission    UnitMission `json:"primary_mission,omitempty"`
	SecondaryMission  UnitMission `json:"secondary_mission,omitempty"`
	ScientificDomains []string    `json:"scientific_domains,omitempty"`
	ERCFields         []string    `json:"erc_fields,omitempty"`
	HCERESDomain      string      `json:"hceres_domain,omitempty"`
	EvaluationWave    string      `json:"evaluation_wave,omitempty"`

	Director         string   `json:"director,omitempty"`
	Supervisors      []string `json:"supervisors,omitempty"`
	InstitutionCodes string   `json:"institution_codes,omitempty"`
	DoctoralSchools  []string `json:"doctoral_schools,omitempty"`

	Address string `json:"address,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Website string `json:"website,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`

	RORID            string            `json:"ror_id,omitempty"`
	HALCollectionURL string            `json:"hal_collection_url,omitempty"`
	Identifiers      map[string]string `json:"identifiers,omitempty"`
	Signature        string            `json:"signature,omitempty"`
}

// HasSupervisor reports whether the named organization supervises the unit.
func (u *OrganizationalUnit) HasSupervisor(name string) bool {
	for _, s := range u.Supervisors {
		if s == name {
			return true
		}
	}
	return false
}

// Advisories returns non-blocking validation warnings. An ACTIVE unit without
// a director is the canonical one: the rule warns, it never blocks a save.
func (u *OrganizationalUnit) Advisories() []Advisory {
	var out []Advisory
	if u.Status == UnitActive && u.Director == "" {
		out = append(out, Advisory{
			Field:   "director",
			Message: "an active unit should have a director",
		})
	}
	return out
}

// Clone returns a deep copy so store reads never alias internal state.
func (u *OrganizationalUnit) Clone() *OrganizationalUnit {
	cp := *u
	cp.Lineage = append([]LineageLink(nil), u.Lineage...)
	cp.ScientificDomains = append([]string(nil), u.ScientificDomains...)
	cp.ERCFields = append([]string(nil), u.ERCFields...)
	cp.Supervisors = append([]string(nil), u.Supervisors...)
	cp.DoctoralSchools = append([]string(nil), u.DoctoralSchools...)
	if u.Identifiers != nil {
		cp.Identifiers = make(map[string]string, len(u.Identifiers))
		for k, v := range u.Identifiers {
			cp.Identifiers[k] = v
		}
	}
	return &cp
}
