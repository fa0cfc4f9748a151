package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/skyfire/internal/config"
	inputs "github.com/zeusync/skyfire/internal/core/models/interfaces"
	"github.com/zeusync/skyfire/internal/core/observability/interfaces"
	"github.com/zeusync/skyfire/internal/core/observability/log"
	"github.com/zeusync/skyfire/internal/core/observability/metrics"
	"github.com/zeusync/skyfire/internal/game"
)

// App is everything the binary needs to run one simulation.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Metrics *metrics.Prometheus
	Game    *game.Game
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	wire.Bind(new(interfaces.Recorder), new(*metrics.Prometheus)),
	ProvideGame,
	wire.Struct(new(App), "*"),
)

// ProvideLogger builds the process logger from the log section. The cleanup
// flushes buffered entries.
func ProvideLogger(cfg *config.Config) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger, err := log.New(log.Config{Level: level, Encoding: cfg.Log.Encoding})
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideMetrics() *metrics.Prometheus {
	return metrics.NewPrometheus()
}

func ProvideGame(cfg *config.Config, logger *log.Logger, recorder interfaces.Recorder, input inputs.InputSource) (*game.Game, error) {
	return game.New(cfg, game.Deps{
		Logger:   logger,
		Recorder: recorder,
		Input:    input,
	})
}
