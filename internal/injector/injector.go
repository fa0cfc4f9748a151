//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/skyfire/internal/config"
	inputs "github.com/zeusync/skyfire/internal/core/models/interfaces"
)

func InitializeApp(cfg *config.Config, input inputs.InputSource) (*App, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
