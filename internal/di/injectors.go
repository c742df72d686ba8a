//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"goaltracker/internal"
	"goaltracker/internal/console"
	"goaltracker/internal/controllers"
	"goaltracker/internal/export"
	"goaltracker/internal/providers"
	"goaltracker/internal/scheduler"
	"goaltracker/internal/services"
	"goaltracker/internal/storage"
	"goaltracker/internal/structures"
)

var trackerSet = wire.NewSet(
	providers.NewConfigProvider,
	provideLogger,
	storage.NewCompressor,
	providePreferenceStore,
	storage.NewRepository,
	export.NewExporter,
	export.NewLogSharer,
	wire.Bind(new(export.SharerInterface), new(*export.LogSharer)),
	services.NewTrackerService,
	scheduler.NewScheduler,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		trackerSet,
		provideGaugeSource,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitConsole(cfg *structures.CliFlags) (*console.Console, func(), error) {

	wire.Build(
		trackerSet,
		providers.NewNoopMetricsProvider,
		console.NewConsole,
	)

	return nil, nil, nil
}
