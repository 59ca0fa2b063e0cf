package request

import (
	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/usecase/commands"
)

type CreateRoomRequest struct {
	Number      int    `json:"number" binding:"required,gt=0"`
	Size        string `json:"size" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,gt=0"`
	Description string `json:"description" binding:"max=500"`
}

func (r CreateRoomRequest) ToInput() (commands.CreateRoomInput, error) {
	size, err := room.ParseSize(r.Size)
	if err != nil {
		return commands.CreateRoomInput{}, err
	}
	return commands.CreateRoomInput{
		Number:      r.Number,
		Size:        size,
		Capacity:    r.Capacity,
		Description: r.Description,
	}, nil
}

type UpdateRoomDescriptionRequest struct {
	Description string `json:"description" binding:"max=500"`
}
