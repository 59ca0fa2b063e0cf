//go:build unit

package cache

import (
	"context"
	"testing"
	"time"

	"gestion-turnos/internal/domain/room"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRooms struct {
	rooms   map[uuid.UUID]*room.Room
	finds   int
	lists   int
	updates int
}

func (s *stubRooms) Create(_ context.Context, r *room.Room) error {
	s.rooms[r.ID()] = r
	return nil
}

func (s *stubRooms) Update(_ context.Context, r *room.Room) error {
	s.updates++
	s.rooms[r.ID()] = r
	return nil
}

func (s *stubRooms) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.rooms, id)
	return nil
}

func (s *stubRooms) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	s.finds++
	return s.rooms[id], nil
}

func (s *stubRooms) Lock(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	return s.FindByID(ctx, id)
}

func (s *stubRooms) List(_ context.Context) ([]*room.Room, error) {
	s.lists++
	out := make([]*room.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out, nil
}

// unreachableClient fails every command without retrying.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 50 * time.Millisecond,
	})
}

func TestRoomCatalog_FallsBackWhenRedisIsDown(t *testing.T) {
	r, err := room.NewRoom(4, room.SizeLarge, 12, "Sala grande", time.Now())
	require.NoError(t, err)

	next := &stubRooms{rooms: map[uuid.UUID]*room.Room{r.ID(): r}}
	client := unreachableClient()
	t.Cleanup(func() { _ = client.Close() })
	catalog := NewRoomCatalog(next, client, time.Minute)

	got, err := catalog.FindByID(context.Background(), r.ID())
	require.NoError(t, err)
	assert.Equal(t, r.Number(), got.Number())
	assert.Equal(t, 1, next.finds)

	rooms, err := catalog.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Equal(t, 1, next.lists)

	updated, err := r.WithDescription("Con proyector", time.Now())
	require.NoError(t, err)
	require.NoError(t, catalog.Update(context.Background(), updated))
	assert.Equal(t, 1, next.updates)
}

func TestCachedRoomRoundTrip(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r := room.ReconstructRoom(uuid.New(), 9, room.SizeMedium, 6, "Sala mediana", created, created.Add(time.Hour))

	got := fromRoom(r).toRoom()

	assert.Equal(t, r, got)
}
