package components

import (
	"gestion-turnos/internal/infra/cache"
	"gestion-turnos/internal/infra/repository"
	"gestion-turnos/internal/infra/uow"
	"gestion-turnos/internal/pkg/config"
	"gestion-turnos/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Booking
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(shared.BookingRepository)),
		),
		// User
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(shared.UserRepository)),
		),
		// Room
		repository.NewRoomRepository,
		NewRoomCatalog,
	),
)

func NewDBTX(pool *pgxpool.Pool) repository.DBTX {
	return pool
}

// NewRoomCatalog puts the redis read-through cache in front of the room table when redis is configured.
func NewRoomCatalog(rooms *repository.RoomRepository, client *redis.Client, cfg config.Config) shared.RoomRepository {
	if client == nil {
		return rooms
	}
	return cache.NewRoomCatalog(rooms, client, cfg.Redis.TTL)
}
