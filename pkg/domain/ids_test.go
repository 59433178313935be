package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "druid/pkg/domain-errors"
)

func TestParsePersonID(t *testing.T) {
	t.Run("accepts a valid UUID", func(t *testing.T) {
		raw := uuid.NewString()
		pid, err := ParsePersonID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, pid.String())
		assert.False(t, pid.IsNil())
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := ParsePersonID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := ParsePersonID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects the nil UUID", func(t *testing.T) {
		_, err := ParsePersonID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestIDJSONRoundTrip(t *testing.T) {
	pid := PersonID(uuid.New())

	raw, err := json.Marshal(pid)
	require.NoError(t, err)
	assert.JSONEq(t, `"`+pid.String()+`"`, string(raw))

	var back PersonID
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, pid, back)
}

func TestTypedIDsStayDistinct(t *testing.T) {
	raw := uuid.NewString()
	pid, err := ParsePersonID(raw)
	require.NoError(t, err)
	uid, err := ParseUnitID(raw)
	require.NoError(t, err)

	// Same underlying UUID, different types: equality only compiles within a
	// type, which is the point of the named types.
	assert.Equal(t, pid.String(), uid.String())
}
