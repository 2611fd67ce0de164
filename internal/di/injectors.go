//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"scad/internal"
	"scad/internal/classify"
	"scad/internal/controllers"
	"scad/internal/platform"
	"scad/internal/providers"
	"scad/internal/services"
	"scad/internal/snapshot"
	"scad/internal/store"
	"scad/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewEventCounters,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		store.NewRedisStore,
		classify.NewClassifier,
		platform.NewRosterClient,

		services.NewTrackerService,
		services.NewQueryService,
		services.NewRosterService,

		snapshot.NewZstdCompressor,
		snapshot.NewExporter,
		snapshot.NewScheduler,

		controllers.NewEventsController,
		controllers.NewQueryController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
