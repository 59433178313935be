package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "druid/pkg/domain"
)

func TestPrimaryAffiliation(t *testing.T) {
	t.Run("resolves the flagged affiliation", func(t *testing.T) {
		p := &Person{Affiliations: []Affiliation{
			{UnitName: "LIF"},
			{UnitName: "LIS", IsPrimary: true},
		}}
		primary, ok := p.PrimaryAffiliation()
		require.True(t, ok)
		assert.Equal(t, "LIS", primary.UnitName)
	})

	t.Run("no flag means no primary, never a fallback", func(t *testing.T) {
		p := &Person{Affiliations: []Affiliation{{UnitName: "LIF"}}}
		_, ok := p.PrimaryAffiliation()
		assert.False(t, ok)
	})

	t.Run("no affiliations at all", func(t *testing.T) {
		_, ok := (&Person{}).PrimaryAffiliation()
		assert.False(t, ok)
	})
}

func TestAffiliationDatesOrdered(t *testing.T) {
	assert.True(t, Affiliation{StartDate: "2020-01-01", EndDate: "2021-01-01"}.DatesOrdered())
	assert.True(t, Affiliation{StartDate: "2020-01-01", EndDate: "2020-01-01"}.DatesOrdered())
	assert.False(t, Affiliation{StartDate: "2021-01-01", EndDate: "2020-01-01"}.DatesOrdered())
	// Open-ended bounds cannot be out of order.
	assert.True(t, Affiliation{StartDate: "2020-01-01"}.DatesOrdered())
	assert.True(t, Affiliation{EndDate: "2020-01-01"}.DatesOrdered())
}

func TestPersonAdvisories(t *testing.T) {
	p := &Person{Affiliations: []Affiliation{
		{UnitName: "LIS", StartDate: "2018-01-01"},
		{UnitName: "CEREGE", StartDate: "2024-06-01", EndDate: "2023-01-01"},
	}}

	advisories := p.Advisories()
	require.Len(t, advisories, 1)
	assert.Equal(t, "affiliations", advisories[0].Field)
	assert.Equal(t, 1, advisories[0].Index)
	assert.Contains(t, advisories[0].Message, "CEREGE")
}

func TestPersonClone(t *testing.T) {
	p := &Person{
		ID:           id.PersonID(uuid.New()),
		DisplayName:  "Dupont, Jean",
		Affiliations: []Affiliation{{UnitName: "LIS", IsPrimary: true}},
		Groups:       []string{"Conseil Scientifique"},
		Identifiers:  map[string]string{"orcid": "0000-0001-2345-6789"},
	}

	cp := p.Clone()
	require.Equal(t, p, cp)

	cp.Affiliations[0].UnitName = "mutated"
	cp.Groups[0] = "mutated"
	cp.Identifiers["orcid"] = "mutated"

	assert.Equal(t, "LIS", p.Affiliations[0].UnitName)
	assert.Equal(t, "Conseil Scientifique", p.Groups[0])
	assert.Equal(t, "0000-0001-2345-6789", p.Identifiers["orcid"])
}

func TestPersonStatusIsValid(t *testing.T) {
	for _, s := range []PersonStatus{StatusValidated, StatusNonValidated, StatusLeft, StatusAnticipated} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, PersonStatus("RETIRED").IsValid())
	assert.False(t, PersonStatus("").IsValid())
}

func TestInGroup(t *testing.T) {
	p := &Person{Groups: []string{"Conseil Scientifique"}}
	assert.True(t, p.InGroup("Conseil Scientifique"))
	assert.False(t, p.InGroup("conseil scientifique"), "group names are case-sensitive")
	assert.False(t, p.InGroup("Bureau"))
}
