package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleBoss.Valid())
	assert.True(t, RolePlayer.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestParseGameID(t *testing.T) {
	id, err := ParseGameID("65A1B2C3D4E5F60718293A4B")
	require.NoError(t, err)
	assert.Equal(t, GameID("65a1b2c3d4e5f60718293a4b"), id)

	for _, raw := range []string{"", "not-an-id", "65a1b2c3d4e5f60718293a4", "zza1b2c3d4e5f60718293a4b"} {
		_, err := ParseGameID(raw)
		assert.ErrorIs(t, err, ErrMalformedID, raw)
	}
}

func TestPositionPair(t *testing.T) {
	p := NewPosition([2]int{3, 4})
	assert.Equal(t, Position{Row: 3, Col: 4}, p)
	assert.Equal(t, [2]int{3, 4}, p.Pair())
}
