package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPersonSort(t *testing.T) {
	tests := []struct {
		name     string
		current  PersonSort
		key      PersonSortKey
		expected PersonSort
	}{
		{
			name:     "first click on a column sorts ascending",
			current:  PersonSort{},
			key:      PersonSortDisplayName,
			expected: PersonSort{Key: PersonSortDisplayName, Direction: Ascending},
		},
		{
			name:     "second click on the same column flips to descending",
			current:  PersonSort{Key: PersonSortDisplayName, Direction: Ascending},
			key:      PersonSortDisplayName,
			expected: PersonSort{Key: PersonSortDisplayName, Direction: Descending},
		},
		{
			name:     "third click starts over ascending",
			current:  PersonSort{Key: PersonSortDisplayName, Direction: Descending},
			key:      PersonSortDisplayName,
			expected: PersonSort{Key: PersonSortDisplayName, Direction: Ascending},
		},
		{
			name:     "clicking another column resets to ascending",
			current:  PersonSort{Key: PersonSortDisplayName, Direction: Descending},
			key:      PersonSortEmployer,
			expected: PersonSort{Key: PersonSortEmployer, Direction: Ascending},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextPersonSort(tt.current, tt.key))
		})
	}
}

func TestNextUnitSort(t *testing.T) {
	current := UnitSort{Key: UnitSortIdentity, Direction: Ascending}
	assert.Equal(t, UnitSort{Key: UnitSortIdentity, Direction: Descending}, NextUnitSort(current, UnitSortIdentity))
	assert.Equal(t, UnitSort{Key: UnitSortLevel, Direction: Ascending}, NextUnitSort(current, UnitSortLevel))
}

func TestSortKeyValidity(t *testing.T) {
	assert.True(t, PersonSortDisplayName.IsValid())
	assert.True(t, PersonSortTeam.IsValid())
	assert.False(t, PersonSortKey("salary").IsValid())
	assert.False(t, PersonSortKey("").IsValid())

	assert.True(t, UnitSortIdentity.IsValid())
	assert.False(t, UnitSortKey("budget").IsValid())
}
