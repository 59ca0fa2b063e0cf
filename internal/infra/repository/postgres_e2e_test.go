//go:build e2e

package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/domain/user"
	"gestion-turnos/internal/infra"
	"gestion-turnos/internal/infra/db"
	"gestion-turnos/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "test"
	testPassword = "testpass"
)

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container
)

type PostgresSuite struct {
	suite.Suite
	pool *pgxpool.Pool

	bookings *BookingRepository
	rooms    *RoomRepository
	users    *UserRepository
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	t := s.T()
	startPostgreSQLContainerOnce(t)

	ctx := context.Background()
	port, err := postgresTestContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err)
	host, err := postgresTestContainer.Host(ctx)
	require.NoError(t, err)

	cfg := config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   "postgres",
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 5,
	}

	pool, cleanup, err := db.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	require.NoError(t, applyMigrations(ctx, pool))

	s.pool = pool
	s.bookings = NewBookingRepository(pool)
	s.rooms = NewRoomRepository(pool)
	s.users = NewUserRepository(pool)
}

func (s *PostgresSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE bookings, rooms, users")
	s.Require().NoError(err)
}

func (s *PostgresSuite) TestBookingRoundTrip() {
	ctx := context.Background()
	rm, payer := s.seed(ctx)

	b := s.newBooking(rm, payer, time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC), booking.StatusActive)
	s.Require().NoError(s.bookings.Create(ctx, b))

	got, err := s.bookings.FindByID(ctx, b.ID())
	s.Require().NoError(err)
	s.Equal(rm.Number(), got.RoomNumber())
	s.Equal(payer.Email().Value(), got.PayerEmail())
	s.Equal(b.Amount(), got.Amount())
	s.True(b.StartTime().Equal(got.StartTime()))

	mine, err := s.bookings.FindByPayer(ctx, payer.ID())
	s.Require().NoError(err)
	s.Len(mine, 1)

	s.Require().NoError(s.bookings.Delete(ctx, b.ID()))
	_, err = s.bookings.FindByID(ctx, b.ID())
	s.True(infra.IsKind(err, infra.KindNotFound))
}

func (s *PostgresSuite) TestHasOverlapIgnoresCancelledAndSelf() {
	ctx := context.Background()
	rm, payer := s.seed(ctx)
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	active := s.newBooking(rm, payer, start, booking.StatusActive)
	cancelled := s.newBooking(rm, payer, start.Add(4*time.Hour), booking.StatusCancelled)
	s.Require().NoError(s.bookings.Create(ctx, active))
	s.Require().NoError(s.bookings.Create(ctx, cancelled))

	overlapping, err := booking.NewTimeSlot(start.Add(time.Hour), start.Add(3*time.Hour))
	s.Require().NoError(err)
	adjacent, err := booking.NewTimeSlot(start.Add(2*time.Hour), start.Add(3*time.Hour))
	s.Require().NoError(err)

	got, err := s.bookings.HasOverlap(ctx, rm.ID(), overlapping, nil)
	s.Require().NoError(err)
	s.True(got)

	id := active.ID()
	got, err = s.bookings.HasOverlap(ctx, rm.ID(), overlapping, &id)
	s.Require().NoError(err)
	s.False(got)

	got, err = s.bookings.HasOverlap(ctx, rm.ID(), adjacent, nil)
	s.Require().NoError(err)
	s.False(got)

	got, err = s.bookings.HasOverlap(ctx, rm.ID(), cancelled.TimeSlot(), nil)
	s.Require().NoError(err)
	s.False(got)
}

func (s *PostgresSuite) TestExclusionConstraintRejectsDoubleBooking() {
	ctx := context.Background()
	rm, payer := s.seed(ctx)
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	s.Require().NoError(s.bookings.Create(ctx, s.newBooking(rm, payer, start, booking.StatusActive)))
	err := s.bookings.Create(ctx, s.newBooking(rm, payer, start.Add(time.Hour), booking.StatusPendingPayment))

	s.Require().Error(err)
	s.True(infra.IsKind(err, infra.KindConflict))
}

func (s *PostgresSuite) TestFindActiveEndedBefore() {
	ctx := context.Background()
	rm, payer := s.seed(ctx)
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	ended := s.newBooking(rm, payer, start, booking.StatusActive)
	upcoming := s.newBooking(rm, payer, start.Add(24*time.Hour), booking.StatusActive)
	s.Require().NoError(s.bookings.Create(ctx, ended))
	s.Require().NoError(s.bookings.Create(ctx, upcoming))

	got, err := s.bookings.FindActiveEndedBefore(ctx, start.Add(3*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(ended.ID(), got[0].ID())
}

func (s *PostgresSuite) TestRoomDescriptionAndList() {
	ctx := context.Background()
	rm, _ := s.seed(ctx)

	updated, err := rm.WithDescription("Proyector y pizarra", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.rooms.Update(ctx, updated))

	rooms, err := s.rooms.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(rooms, 1)
	s.Equal("Proyector y pizarra", rooms[0].Description())

	dup, err := room.NewRoom(rm.Number(), room.SizeLarge, 20, "", time.Now())
	s.Require().NoError(err)
	err = s.rooms.Create(ctx, dup)
	s.True(infra.IsKind(err, infra.KindDuplicateKey))
}

func (s *PostgresSuite) seed(ctx context.Context) (*room.Room, *user.User) {
	now := time.Now().UTC()

	rm, err := room.NewRoom(7, room.SizeMedium, 8, "", now)
	s.Require().NoError(err)
	s.Require().NoError(s.rooms.Create(ctx, rm))

	email, err := user.NewEmail(fmt.Sprintf("client-%s@example.com", uuid.NewString()[:8]))
	s.Require().NoError(err)
	u, err := user.NewUser(email, "hash", user.RoleClient, user.Profile{FirstName: "Ana"}, now)
	s.Require().NoError(err)
	s.Require().NoError(s.users.Create(ctx, u))

	return rm, u
}

func (s *PostgresSuite) newBooking(rm *room.Room, payer *user.User, start time.Time, status booking.Status) *booking.Booking {
	slot, err := booking.NewTimeSlot(start, start.Add(2*time.Hour))
	s.Require().NoError(err)
	amount, err := booking.NewDefaultTariff().ComputePrice(rm.Size(), slot.Start(), slot.End())
	s.Require().NoError(err)

	return booking.ReconstructBooking(
		uuid.New(),
		booking.RoomRefOf(rm),
		booking.Payer{ID: payer.ID(), Email: payer.Email().Value()},
		slot,
		booking.PaymentCash,
		amount,
		status,
		start, start,
	)
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	file := filepath.Join("..", "..", "..", "migrations", "001_initial_schema.sql")
	sqlContent, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", file, err)
	}
	if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", file, err)
	}
	return nil
}

func startPostgreSQLContainerOnce(t *testing.T) {
	postgresContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off"},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
		defer cancel()

		var err error
		postgresTestContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "failed to start postgres container")

		t.Cleanup(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = postgresTestContainer.Terminate(ctx)
		})
	})
}
