package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"druid/internal/audit"
	"druid/internal/directory/models"
	"druid/internal/directory/store"
	"druid/internal/directory/view"
	id "druid/pkg/domain"
	dErrors "druid/pkg/domain-errors"
)

type DirectorySuite struct {
	suite.Suite
	store     *store.Memory
	publisher *audit.Publisher
	service   *Directory
	ctx       context.Context
}

func (s *DirectorySuite) SetupTest() {
	s.store = store.NewMemory()
	s.publisher = audit.NewPublisher(16)
	s.service = New(s.store, WithAuditPublisher(s.publisher))
	s.ctx = context.Background()
}

func TestDirectorySuite(t *testing.T) {
	suite.Run(t, new(DirectorySuite))
}

func (s *DirectorySuite) addPerson(displayName string) id.PersonID {
	p := &models.Person{
		ID:          id.PersonID(uuid.New()),
		DisplayName: displayName,
		Email:       "someone@univ-example.fr",
		Status:      models.StatusValidated,
	}
	s.Require().NoError(s.store.PutPerson(s.ctx, p))
	return p.ID
}

// drainAudit empties the publisher inbox and returns the pending events.
func (s *DirectorySuite) drainAudit() []audit.Event {
	var events []audit.Event
	for {
		select {
		case e := <-s.publisher.Inbox():
			events = append(events, e)
		default:
			return events
		}
	}
}

func (s *DirectorySuite) TestGetPerson() {
	s.Run("returns the stored person", func() {
		pid := s.addPerson("Dupont, Jean")
		p, err := s.service.GetPerson(s.ctx, pid)
		s.Require().NoError(err)
		s.Equal("Dupont, Jean", p.DisplayName)
	})

	s.Run("maps a missing person to a not-found code", func() {
		_, err := s.service.GetPerson(s.ctx, id.PersonID(uuid.New()))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *DirectorySuite) TestUpsertAffiliation() {
	s.Run("stores the affiliation and reports date advisories", func() {
		pid := s.addPerson("Martin, Alice")
		advisories, err := s.service.UpsertAffiliation(s.ctx, pid, models.Affiliation{
			UnitName:  "CEREGE",
			StartDate: "2024-06-01",
			EndDate:   "2023-01-01",
			IsPrimary: true,
		}, -1)
		s.Require().NoError(err)
		s.Require().Len(advisories, 1)
		s.Equal("affiliations", advisories[0].Field)

		p, err := s.service.GetPerson(s.ctx, pid)
		s.Require().NoError(err)
		s.Len(p.Affiliations, 1)
	})

	s.Run("emits an audit event", func() {
		pid := s.addPerson("Dupont, Jean")
		s.drainAudit()
		_, err := s.service.UpsertAffiliation(s.ctx, pid, models.Affiliation{UnitName: "LIS", IsPrimary: true}, -1)
		s.Require().NoError(err)

		events := s.drainAudit()
		s.Require().Len(events, 1)
		s.Equal("affiliation_upsert", events[0].Action)
		s.Equal(pid.String(), events[0].EntityID)
		s.Equal("LIS", events[0].Detail)
	})

	s.Run("unknown person yields a not-found code", func() {
		_, err := s.service.UpsertAffiliation(s.ctx, id.PersonID(uuid.New()), models.Affiliation{UnitName: "LIS"}, 0)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *DirectorySuite) TestSaveUnit() {
	s.Run("saves an active unit without director and flags it", func() {
		u := &models.OrganizationalUnit{
			ID:           id.UnitID(uuid.New()),
			Level:        models.LevelEntite,
			Status:       models.UnitActive,
			Acronym:      "IA-LAB",
			OfficialName: "Institut d'Intelligence Artificielle",
		}
		advisories, err := s.service.SaveUnit(s.ctx, u)
		s.Require().NoError(err)
		s.Require().Len(advisories, 1)
		s.Equal("director", advisories[0].Field)

		saved, err := s.service.GetUnit(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal("IA-LAB", saved.Acronym)
	})

	s.Run("a unit with a director saves clean", func() {
		u := &models.OrganizationalUnit{
			ID:       id.UnitID(uuid.New()),
			Status:   models.UnitActive,
			Acronym:  "LIS",
			Director: "Prof. Ada Lovelace",
		}
		advisories, err := s.service.SaveUnit(s.ctx, u)
		s.Require().NoError(err)
		s.Empty(advisories)
	})

	s.Run("rejects a missing id", func() {
		_, err := s.service.SaveUnit(s.ctx, &models.OrganizationalUnit{Acronym: "X"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *DirectorySuite) TestGroups() {
	s.Run("create and delete report whether anything changed", func() {
		s.True(s.service.CreateGroup(s.ctx, "Bureau"))
		s.False(s.service.CreateGroup(s.ctx, "Bureau"))
		s.False(s.service.CreateGroup(s.ctx, "  "))

		s.True(s.service.DeleteGroup(s.ctx, "Bureau"))
		s.False(s.service.DeleteGroup(s.ctx, "Bureau"))
	})

	s.Run("no-op mutations emit no audit event", func() {
		s.True(s.service.CreateGroup(s.ctx, "Conseil Scientifique"))
		s.drainAudit()

		s.False(s.service.CreateGroup(s.ctx, "Conseil Scientifique"))
		s.Empty(s.drainAudit())
	})

	s.Run("summaries carry derived member counts", func() {
		pid := s.addPerson("Dupont, Jean")
		s.True(s.service.CreateGroup(s.ctx, "Pilotes Open Science"))
		s.True(s.service.CreateGroup(s.ctx, "Vide"))
		s.Require().NoError(s.service.AddGroupMembership(s.ctx, pid, "Pilotes Open Science"))

		byName := make(map[string]GroupSummary)
		for _, g := range s.service.ListGroups(s.ctx) {
			byName[g.Name] = g
		}
		s.Equal(1, byName["Pilotes Open Science"].Members)
		s.Zero(byName["Vide"].Members)
	})

	s.Run("deleting a group cascades through member counts", func() {
		pid := s.addPerson("Curie, Marie")
		s.Require().NoError(s.service.AddGroupMembership(s.ctx, pid, "Anciens Membres"))
		s.True(s.service.DeleteGroup(s.ctx, "Anciens Membres"))

		p, err := s.service.GetPerson(s.ctx, pid)
		s.Require().NoError(err)
		s.False(p.InGroup("Anciens Membres"))
	})
}

func (s *DirectorySuite) TestMemberCandidates() {
	s.Run("caps suggestions at five", func() {
		for _, name := range []string{
			"Martin, A.", "Martin, B.", "Martin, C.", "Martin, D.", "Martin, E.", "Martin, F.",
		} {
			s.addPerson(name)
		}
		got := s.service.MemberCandidates(s.ctx, "Bureau", "martin")
		s.Len(got, 5)
	})
}

func (s *DirectorySuite) TestBulkGroupAdd() {
	s.Run("applies only the selected ids that are visible", func() {
		ids := make([]id.PersonID, 0, 10)
		for i := 0; i < 10; i++ {
			ids = append(ids, s.addPerson("Quelqu'un"))
		}
		visible := ids[:4]
		selected := []id.PersonID{ids[0], ids[2], ids[5], ids[7], ids[9]}

		applied, err := s.service.BulkGroupAdd(s.ctx, visible, selected, "Conseil Scientifique")
		s.Require().NoError(err)
		s.Equal(2, applied)

		members := s.service.GroupMembers(s.ctx, "Conseil Scientifique")
		s.Require().Len(members, 2)
		s.Equal(ids[0], members[0].ID)
		s.Equal(ids[2], members[1].ID)
	})

	s.Run("requires a group name", func() {
		_, err := s.service.BulkGroupAdd(s.ctx, nil, nil, "")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("an empty pruned selection touches nobody", func() {
		pid := s.addPerson("Turing, Alan")
		applied, err := s.service.BulkGroupAdd(s.ctx, nil, []id.PersonID{pid}, "Bureau")
		s.Require().NoError(err)
		s.Zero(applied)
		s.Empty(s.service.GroupMembers(s.ctx, "Bureau"))
	})
}

func (s *DirectorySuite) TestViews() {
	s.Run("person list applies filter then sort", func() {
		for _, p := range []*models.Person{
			{ID: id.PersonID(uuid.New()), DisplayName: "Zola, Émile", Status: models.StatusValidated,
				Employment: models.Employment{Employer: "CNRS"}},
			{ID: id.PersonID(uuid.New()), DisplayName: "Arago, François", Status: models.StatusValidated,
				Employment: models.Employment{Employer: "CNRS"}},
			{ID: id.PersonID(uuid.New()), DisplayName: "Curie, Marie", Status: models.StatusLeft,
				Employment: models.Employment{Employer: "Université"}},
		} {
			s.Require().NoError(s.store.PutPerson(s.ctx, p))
		}

		got := s.service.ListPersons(s.ctx, view.PersonQuery{
			Employer: "CNRS",
			Sort:     view.PersonSort{Key: view.PersonSortDisplayName, Direction: view.Ascending},
		})
		s.Require().Len(got, 2)
		s.Equal("Arago, François", got[0].DisplayName)
		s.Equal("Zola, Émile", got[1].DisplayName)
	})

	s.Run("subscription fires on mutation", func() {
		ch := s.service.Subscribe()
		s.addPerson("Dupont, Jean")
		select {
		case <-ch:
		default:
			s.Fail("expected a change signal")
		}
	})
}
