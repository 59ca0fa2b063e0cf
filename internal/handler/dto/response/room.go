package response

import (
	"time"

	"gestion-turnos/internal/domain/room"

	"github.com/google/uuid"
)

type RoomResponse struct {
	ID          uuid.UUID `json:"id"`
	Number      int       `json:"number"`
	Size        string    `json:"size"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromRoom(r *room.Room) *RoomResponse {
	return &RoomResponse{
		ID:          r.ID(),
		Number:      r.Number(),
		Size:        r.Size().String(),
		Capacity:    r.Capacity(),
		Description: r.Description(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

func FromRooms(rooms []*room.Room) []*RoomResponse {
	out := make([]*RoomResponse, len(rooms))
	for i, r := range rooms {
		out[i] = FromRoom(r)
	}
	return out
}
