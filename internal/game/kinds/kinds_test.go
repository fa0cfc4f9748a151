package kinds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnemyVariant(t *testing.T) {
	for _, v := range Variants {
		got, err := ParseEnemyVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.True(t, got.Valid())
	}

	got, err := ParseEnemyVariant(" Big ")
	require.NoError(t, err)
	assert.Equal(t, Big, got)

	_, err = ParseEnemyVariant("enemy-huge")
	require.ErrorIs(t, err, ErrUnknownVariant)
	assert.False(t, EnemyVariant(9).Valid())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "player", Player.String())
	assert.Equal(t, "hostile", Hostile.String())
	assert.Equal(t, "none", Faction(0).String())
	assert.Equal(t, "laser", KindLaser.String())
}
