package request

import (
	"tablero/internal/domain/floor"
	"tablero/internal/usecase/commands"
)

type UpdateTablePositionRequest struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	ExpectedVersion *int    `json:"expectedVersion,omitempty"`
	AreaID          string  `json:"areaId,omitempty"`
	CanvasWidth     float64 `json:"canvasWidth,omitempty"`
	CanvasHeight    float64 `json:"canvasHeight,omitempty"`
	IsMergedView    bool    `json:"isMergedView,omitempty"`
}

func (r UpdateTablePositionRequest) ToInput(tableID string) commands.UpdateTablePositionInput {
	return commands.UpdateTablePositionInput{
		TableID:         tableID,
		X:               r.X,
		Y:               r.Y,
		ExpectedVersion: r.ExpectedVersion,
		AreaID:          r.AreaID,
		CanvasWidth:     r.CanvasWidth,
		CanvasHeight:    r.CanvasHeight,
		IsMergedView:    r.IsMergedView,
	}
}

type CreateTableRequest struct {
	AreaID   string `json:"areaId" binding:"required"`
	Capacity int    `json:"capacity,omitempty"`
	Type     string `json:"type,omitempty"`
}

func (r CreateTableRequest) ToInput() commands.CreateTableInput {
	return commands.CreateTableInput{
		AreaID:   r.AreaID,
		Capacity: r.Capacity,
		Type:     floor.TableType(r.Type),
	}
}
