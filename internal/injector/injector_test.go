package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/skyfire/internal/config"
	inputs "github.com/zeusync/skyfire/internal/core/models/interfaces"
)

func TestInitializeApp(t *testing.T) {
	cfg := config.Default()

	app, cleanup, err := InitializeApp(cfg, inputs.StaticInput{})
	require.NoError(t, err)
	defer cleanup()

	assert.Same(t, cfg, app.Config)
	require.NotNil(t, app.Logger)
	require.NotNil(t, app.Metrics)
	require.NotNil(t, app.Game)

	_, alive := app.Game.Ship()
	assert.True(t, alive)

	families, err := app.Metrics.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families, "spawning the ship is recorded")
}

func TestInitializeAppBadLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "loud"

	_, _, err := InitializeApp(cfg, inputs.StaticInput{})
	require.Error(t, err)
}
