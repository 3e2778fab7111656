package components

import (
	"multipark-dashboard/internal/domain/booking"
	"multipark-dashboard/internal/pkg/clock"
	"multipark-dashboard/internal/pkg/config"
	"multipark-dashboard/internal/usecase/commands"
	"multipark-dashboard/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) (booking.SplitRatio, error) {
		return booking.NewSplitRatio(cfg.Split.PartnerPercent)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)
