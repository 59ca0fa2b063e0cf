package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidNumber      = errors.New("room number must be positive")
	ErrInvalidCapacity    = errors.New("room capacity must be positive")
	ErrDescriptionTooLong = errors.New("room description is too long")
)

const MaxDescriptionLength = 500

// Room is catalog reference data. Bookings copy the fields they price on.
type Room struct {
	id          uuid.UUID
	number      int
	size        Size
	capacity    int
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewRoom(number int, size Size, capacity int, description string, now time.Time) (*Room, error) {
	if number <= 0 {
		return nil, ErrInvalidNumber
	}
	if !size.IsValid() {
		return nil, ErrInvalidSize
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	desc, err := normalizeDescription(description)
	if err != nil {
		return nil, err
	}

	return &Room{
		id:          uuid.New(),
		number:      number,
		size:        size,
		capacity:    capacity,
		description: desc,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructRoom(
	id uuid.UUID,
	number int,
	size Size,
	capacity int,
	description string,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:          id,
		number:      number,
		size:        size,
		capacity:    capacity,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// WithDescription returns a copy carrying the new description.
func (r *Room) WithDescription(description string, now time.Time) (*Room, error) {
	desc, err := normalizeDescription(description)
	if err != nil {
		return nil, err
	}
	updated := *r
	updated.description = desc
	updated.updatedAt = now
	return &updated, nil
}

func normalizeDescription(description string) (string, error) {
	desc := strings.TrimSpace(description)
	if len([]rune(desc)) > MaxDescriptionLength {
		return "", ErrDescriptionTooLong
	}
	return desc, nil
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Number() int          { return r.number }
func (r *Room) Size() Size           { return r.size }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) Description() string  { return r.description }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }
