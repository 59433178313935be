package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"druid/internal/directory/models"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	ids := Seed(ctx, m)

	t.Run("loads the demonstration dataset", func(t *testing.T) {
		require.Len(t, ids, 5)
		assert.Len(t, m.ListPersons(ctx), 5)
		assert.Len(t, m.ListUnits(ctx), 6)
	})

	t.Run("every person has at most one primary affiliation", func(t *testing.T) {
		for _, p := range m.ListPersons(ctx) {
			primaries := 0
			for _, a := range p.Affiliations {
				if a.IsPrimary {
					primaries++
				}
			}
			assert.LessOrEqual(t, primaries, 1, p.DisplayName)
		}
	})

	t.Run("group list is the union of configs and memberships", func(t *testing.T) {
		groups := m.ListGroups(ctx)
		names := make([]string, 0, len(groups))
		for _, g := range groups {
			names = append(names, g.Name)
		}
		// "Recrutements 2024" is never configured; it exists only through
		// Turing's membership.
		assert.Equal(t, []string{
			"Anciens Membres",
			"Conseil Scientifique",
			"Pilotes Open Science",
			"Recrutements 2024",
		}, names)
	})

	t.Run("configured mailing addresses survive", func(t *testing.T) {
		for _, g := range m.ListGroups(ctx) {
			if g.Name == "Conseil Scientifique" {
				assert.Equal(t, "cs-labo@univ.fr", g.MailingList)
			}
		}
	})

	t.Run("the projected unit carries no director", func(t *testing.T) {
		var projet *models.OrganizationalUnit
		for _, u := range m.ListUnits(ctx) {
			if u.Status == models.UnitProjet {
				projet = u
			}
		}
		require.NotNil(t, projet)
		assert.Empty(t, projet.Director)
	})
}
