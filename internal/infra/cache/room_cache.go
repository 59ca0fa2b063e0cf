package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	roomKeyPrefix = "room:"
	roomListKey   = "rooms:all"
)

type cachedRoom struct {
	ID          uuid.UUID `json:"id"`
	Number      int       `json:"number"`
	Size        room.Size `json:"size"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func fromRoom(r *room.Room) cachedRoom {
	return cachedRoom{
		ID:          r.ID(),
		Number:      r.Number(),
		Size:        r.Size(),
		Capacity:    r.Capacity(),
		Description: r.Description(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

func (c cachedRoom) toRoom() *room.Room {
	return room.ReconstructRoom(c.ID, c.Number, c.Size, c.Capacity, c.Description, c.CreatedAt, c.UpdatedAt)
}

// RoomCatalog is a read-through cache in front of the room repository.
// Redis failures are logged and the repository answers instead.
type RoomCatalog struct {
	next   shared.RoomRepository
	client *redis.Client
	ttl    time.Duration
}

func NewRoomCatalog(next shared.RoomRepository, client *redis.Client, ttl time.Duration) *RoomCatalog {
	return &RoomCatalog{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

func (c *RoomCatalog) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	key := roomKeyPrefix + id.String()

	var cached cachedRoom
	if c.get(ctx, key, &cached) {
		return cached.toRoom(), nil
	}

	r, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, fromRoom(r))
	return r, nil
}

func (c *RoomCatalog) List(ctx context.Context) ([]*room.Room, error) {
	var cached []cachedRoom
	if c.get(ctx, roomListKey, &cached) {
		rooms := make([]*room.Room, len(cached))
		for i, cr := range cached {
			rooms[i] = cr.toRoom()
		}
		return rooms, nil
	}

	rooms, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	toCache := make([]cachedRoom, len(rooms))
	for i, r := range rooms {
		toCache[i] = fromRoom(r)
	}
	c.set(ctx, roomListKey, toCache)
	return rooms, nil
}

func (c *RoomCatalog) Lock(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	return c.next.Lock(ctx, id)
}

func (c *RoomCatalog) Create(ctx context.Context, r *room.Room) error {
	if err := c.next.Create(ctx, r); err != nil {
		return err
	}
	c.invalidate(ctx, r.ID())
	return nil
}

func (c *RoomCatalog) Update(ctx context.Context, r *room.Room) error {
	if err := c.next.Update(ctx, r); err != nil {
		return err
	}
	c.invalidate(ctx, r.ID())
	return nil
}

func (c *RoomCatalog) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *RoomCatalog) get(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("room cache read failed", "key", key, "error", err.Error())
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		slog.Warn("room cache entry corrupted", "key", key, "error", err.Error())
		return false
	}
	return true
}

func (c *RoomCatalog) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("room cache write failed", "key", key, "error", err.Error())
	}
}

func (c *RoomCatalog) invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, roomKeyPrefix+id.String(), roomListKey).Err(); err != nil {
		slog.Warn("room cache invalidation failed", "room_id", id, "error", err.Error())
	}
}

func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
