package components

import (
	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/pkg/clock"
	"gestion-turnos/internal/pkg/config"
	"gestion-turnos/internal/pkg/password"
	"gestion-turnos/internal/usecase"
	"gestion-turnos/internal/usecase/commands"
	"gestion-turnos/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	password.NewHasher,
	NewTariff,
	func(tariff *booking.Tariff) booking.PriceCalculator {
		return tariff
	},
	booking.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewRoomCommands,
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewRoomQueries,
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// NewTariff builds the price table from TARIFF_* and VENUE_TIMEZONE.
func NewTariff(cfg config.Config) (*booking.Tariff, error) {
	loc, err := cfg.Venue.Location()
	if err != nil {
		return nil, err
	}
	return booking.NewTariff(cfg.Tariff.Rates(), loc), nil
}
