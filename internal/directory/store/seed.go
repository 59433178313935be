package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"druid/internal/directory/models"
	id "druid/pkg/domain"
)

// Seed loads the demonstration directory dataset: a handful of researchers,
// the unit hierarchy of one establishment, and the configured functional
// groups. Returns the ids of the seeded persons in insertion order so tests
// and demos can reference them.
func Seed(ctx context.Context, m *Memory) []id.PersonID {
	lastSync := time.Date(2023, 10, 25, 0, 0, 0, 0, time.UTC)

	persons := []*models.Person{
		{
			ID:          id.PersonID(uuid.New()),
			UID:         "u12345",
			Civility:    "M.",
			FirstName:   "Jean",
			LastName:    "Dupont",
			BirthName:   "Dupont",
			BirthDate:   "1980-05-15",
			Nationality: "Française",
			DisplayName: "Dupont, Jean",
			Email:       "jean.dupont@univ-example.fr",
			Status:      models.StatusValidated,
			Employment: models.Employment{
				Employer:         "Université",
				ContractType:     "Titulaire",
				Grade:            "Professeur des Universités",
				InternalTypology: "Enseignant-chercheur",
				CNU:              "27",
				StartDate:        "2010-09-01",
			},
			Affiliations: []models.Affiliation{
				{UnitName: "LIF", Team: "Algorithmique", StartDate: "2010-09-01", EndDate: "2017-12-31"},
				{UnitName: "LIS", Team: "Algorithmique & Graphes", StartDate: "2018-01-01", IsPrimary: true},
			},
			Groups: []string{"Conseil Scientifique", "Pilotes Open Science"},
			Identifiers: map[string]string{
				"orcid": "0000-0001-2345-6789",
				"idref": "123456789",
				"halId": "jean-dupont",
			},
			LastSync: lastSync,
		},
		{
			ID:          id.PersonID(uuid.New()),
			Civility:    "Mme",
			FirstName:   "Alice",
			LastName:    "Martin",
			DisplayName: "Martin, Alice",
			Email:       "alice.martin@external.org",
			Status:      models.StatusNonValidated,
			Employment: models.Employment{
				Employer:         "CNRS",
				ContractType:     "Contractuel",
				Grade:            "Chargé de Recherche",
				InternalTypology: "Chercheur",
				CNU:              "30",
				StartDate:        "2020-01-01",
			},
			Affiliations: []models.Affiliation{
				{UnitName: "CEREGE", Team: "Climat", StartDate: "2020-01-01", IsPrimary: true},
			},
		},
		{
			ID:          id.PersonID(uuid.New()),
			UID:         "u67890",
			Civility:    "Mme",
			FirstName:   "Marie",
			LastName:    "Curie",
			BirthName:   "Sklodowska",
			BirthDate:   "1867-11-07",
			Nationality: "Polonaise / Française",
			DisplayName: "Curie, Marie",
			Email:       "marie.curie@univ-example.fr",
			Status:      models.StatusLeft,
			Employment: models.Employment{
				Employer:         "Université",
				ContractType:     "Titulaire",
				Grade:            "Professeur",
				InternalTypology: "Enseignant-chercheur",
				StartDate:        "1906-05-01",
				EndDate:          "1934-07-04",
			},
			Affiliations: []models.Affiliation{
				{UnitName: "Institut du Radium", Team: "Radioactivité", StartDate: "1909-01-01", EndDate: "1934-07-04", IsPrimary: true},
			},
			Groups:      []string{"Anciens Membres"},
			Identifiers: map[string]string{"idref": "987654321"},
			LastSync:    lastSync.Add(24 * time.Hour),
		},
		{
			ID:          id.PersonID(uuid.New()),
			FirstName:   "A.",
			LastName:    "Martin",
			DisplayName: "A. Martin",
			Email:       "-",
			Status:      models.StatusNonValidated,
			Employment: models.Employment{
				Employer:         "Unknown",
				InternalTypology: "Doctorant",
			},
			Affiliations: []models.Affiliation{
				{UnitName: "Unknown", Team: "-", IsPrimary: true},
			},
		},
		{
			ID:          id.PersonID(uuid.New()),
			UID:         "u99999",
			Civility:    "M.",
			FirstName:   "Alan",
			LastName:    "Turing",
			BirthDate:   "1912-06-23",
			Nationality: "Britannique",
			DisplayName: "Turing, Alan",
			Email:       "alan.turing@univ-example.fr",
			Status:      models.StatusAnticipated,
			Employment: models.Employment{
				Employer:         "CNRS",
				ContractType:     "Invité",
				Grade:            "Directeur de Recherche",
				InternalTypology: "Chercheur",
				CNU:              "27",
				StartDate:        "2024-01-01",
			},
			Affiliations: []models.Affiliation{
				{UnitName: "LIS", Team: "IA & Logique", StartDate: "2024-01-01", IsPrimary: true},
			},
			Groups:      []string{"Recrutements 2024"},
			Identifiers: map[string]string{"orcid": "0000-0002-1234-5678"},
		},
	}

	units := []*models.OrganizationalUnit{
		{
			ID:                id.UnitID(uuid.New()),
			TrackingID:        "ETAB-044",
			Level:             models.LevelEtablissement,
			Status:            models.UnitActive,
			Nature:            models.NaturePublic,
			Acronym:           "NU",
			OfficialName:      "Nantes Université",
			Type:              "EPE",
			Code:              "044",
			RNSRID:            "202223456A",
			SIREN:             "130029747",
			RORID:             "04z8jg214",
			Director:          "Carine Bernault",
			PrimaryMission:    models.MissionRecherche,
			ScientificDomains: []string{"Pluridisciplinaire"},
			Address:           "1 Quai de Tourville",
			ZipCode:           "44000",
			City:              "Nantes",
			Country:           "France",
			Website:           "https://www.univ-nantes.fr",
			Email:             "contact@univ-nantes.fr",
			Identifiers:       map[string]string{"idrefId": "026396486"},
			CreationDate:      "2022-01-01",
		},
		{
			ID:                id.UnitID(uuid.New()),
			TrackingID:        "POLE-SCI",
			Level:             models.LevelIntermediaire,
			Status:            models.UnitActive,
			Nature:            models.NaturePublic,
			Acronym:           "Pôle Sciences",
			OfficialName:      "Pôle Sciences et Technologie",
			Type:              "Pôle",
			Code:              "P01",
			Cluster:           "Nantes Université",
			Director:          "Prof. Science",
			Supervisors:       []string{"Nantes Université"},
			PrimaryMission:    models.MissionServicesAdmin,
			ScientificDomains: []string{"Sciences Fondamentales"},
			Address:           "2 rue de la Houssinière",
			ZipCode:           "44300",
			City:              "Nantes",
			Country:           "France",
			CreationDate:      "2022-01-01",
		},
		{
			ID:               id.UnitID(uuid.New()),
			TrackingID:       "U7020_1",
			Level:            models.LevelEntite,
			Status:           models.UnitActive,
			Nature:           models.NatureMixte,
			Acronym:          "LIS",
			OfficialName:     "Laboratoire d'Informatique et Systèmes",
			Type:             "UMR",
			Code:             "7020",
			RNSRID:           "201822446V",
			RNestID:          "STR-001",
			RORID:            "00z0af360",
			Cluster:          "Pôle Sciences",
			Director:         "Prof. Ada Lovelace",
			Supervisors:      []string{"CNRS", "Aix-Marseille Université", "Université de Toulon"},
			InstitutionCodes: "130015506|0131843H",
			DoctoralSchools:  []string{"ED 184 - Maths Info", "ED 548 - Mer et Sciences"},
			PrimaryMission:   models.MissionRecherche,
			ScientificDomains: []string{
				"Informatique", "Automatique", "Signal",
			},
			ERCFields:        []string{"PE6_10", "PE6_11"},
			HCERESDomain:     "ST6",
			EvaluationWave:   "Vague C",
			Address:          "Campus de Saint-Jérôme, Avenue Escadrille Normandie-Niemen",
			ZipCode:          "13397",
			City:             "Marseille",
			Country:          "France",
			Website:          "https://www.lis-lab.fr",
			HALCollectionURL: "https://hal.archives-ouvertes.fr/LIS",
			Email:            "contact@lis-lab.fr",
			Phone:            "+33 4 91 28 00 00",
			Identifiers: map[string]string{
				"idrefId":  "026359874",
				"scopusId": "60028048",
			},
			Lineage: []models.LineageLink{
				{RelatedUnitID: "OLD-001", RelatedUnitName: "LIF (Laboratoire Informatique Fondamentale)", Type: models.LineageFusion, Date: "2018-01-01"},
				{RelatedUnitID: "OLD-002", RelatedUnitName: "LSIS", Type: models.LineageFusion, Date: "2018-01-01"},
			},
			Signature:    "Aix Marseille Univ, Université de Toulon, CNRS, LIS, Marseille, France",
			CreationDate: "2018-01-01",
		},
		{
			ID:                id.UnitID(uuid.New()),
			TrackingID:        "U7330_2",
			Level:             models.LevelEntite,
			Status:            models.UnitActive,
			Nature:            models.NatureMixte,
			Acronym:           "CEREGE",
			OfficialName:      "Centre Européen de Recherche et d'Enseignement des Géosciences de l'Environnement",
			Type:              "UMR",
			Code:              "7330",
			RNSRID:            "199512067E",
			RNestID:           "STR-002",
			Cluster:           "Pôle Environnement",
			Director:          "Dr. Jane Goodall",
			Supervisors:       []string{"CNRS", "AMU", "IRD", "INRAE", "Collège de France"},
			DoctoralSchools:   []string{"ED 251 - Sciences de l'Environnement"},
			PrimaryMission:    models.MissionRecherche,
			ScientificDomains: []string{"Géosciences", "Environnement", "Climat"},
			ERCFields:         []string{"PE10"},
			EvaluationWave:    "Vague C",
			Address:           "Europole de l'Arbois, BP 80",
			ZipCode:           "13545",
			City:              "Aix-en-Provence",
			Country:           "France",
			Website:           "https://www.cerege.fr",
			Email:             "direction@cerege.fr",
			Phone:             "+33 4 42 97 15 00",
			CreationDate:      "1995-01-01",
		},
		{
			ID:                id.UnitID(uuid.New()),
			TrackingID:        "TEAM-TAL",
			Level:             models.LevelEquipe,
			Status:            models.UnitActive,
			Nature:            models.NaturePublic,
			Acronym:           "TAL",
			OfficialName:      "Traitement Automatique du Langage",
			Type:              "Equipe",
			Code:              "E01",
			Cluster:           "LIS",
			Director:          "Dr. Noam Chomsky",
			Supervisors:       []string{"CNRS", "AMU"},
			PrimaryMission:    models.MissionRecherche,
			ScientificDomains: []string{"Linguistique", "IA"},
			ERCFields:         []string{"PE6"},
			Address:           "Campus St Jérôme",
			ZipCode:           "13013",
			City:              "Marseille",
			Country:           "France",
			CreationDate:      "2019-01-01",
		},
		{
			ID:                id.UnitID(uuid.New()),
			TrackingID:        "PROJ-001",
			Level:             models.LevelEntite,
			Status:            models.UnitProjet,
			Nature:            models.NaturePublic,
			Acronym:           "IA-LAB",
			OfficialName:      "Institut d'Intelligence Artificielle",
			Type:              "UPR",
			Code:              "PROJ-AI",
			Supervisors:       []string{"Université"},
			PrimaryMission:    models.MissionRecherche,
			ScientificDomains: []string{"IA", "Data Science"},
			Address:           "To be defined",
			City:              "Marseille",
			Country:           "France",
			CreationDate:      "2025-01-01",
		},
	}

	groups := []models.Group{
		{Name: "Conseil Scientifique", MailingList: "cs-labo@univ.fr"},
		{Name: "Pilotes Open Science", MailingList: "open-science@univ.fr"},
		{Name: "Anciens Membres"},
	}

	ids := make([]id.PersonID, 0, len(persons))
	for _, p := range persons {
		_ = m.PutPerson(ctx, p)
		ids = append(ids, p.ID)
	}
	for _, u := range units {
		_ = m.PutUnit(ctx, u)
	}
	for _, g := range groups {
		m.CreateGroup(ctx, g.Name)
		if g.MailingList != "" {
			m.SetGroupMailingAddress(ctx, g.Name, g.MailingList)
		}
	}
	return ids
}
