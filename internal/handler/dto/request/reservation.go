package request

import (
	"tablero/internal/domain/reservation"
	"tablero/internal/usecase/commands"
)

type CreateReservationRequest struct {
	TableIDs   []string `json:"tableIds" binding:"required"`
	ClientName string   `json:"clientName" binding:"required"`
	PartySize  int      `json:"partySize" binding:"required"`
	Date       string   `json:"date" binding:"required"`
	StartTime  string   `json:"startTime" binding:"required"`
	EndTime    string   `json:"endTime" binding:"required"`
	Status     *string  `json:"status,omitempty"`
	Duration   *int     `json:"duration,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

func (r CreateReservationRequest) ToInput() commands.CreateReservationInput {
	input := commands.CreateReservationInput{
		TableIDs:   r.TableIDs,
		ClientName: r.ClientName,
		PartySize:  r.PartySize,
		Date:       r.Date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Notes:      r.Notes,
	}
	if r.Status != nil {
		input.Status = reservation.Status(*r.Status)
	}
	if r.Duration != nil {
		input.Duration = *r.Duration
	} else {
		input.Duration = reservation.WindowMinutes(r.StartTime, r.EndTime)
	}
	return input
}

type CreateWalkInRequest struct {
	TableID    string `json:"tableId" binding:"required"`
	ClientName string `json:"clientName,omitempty"`
	PartySize  int    `json:"partySize,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

func (r CreateWalkInRequest) ToInput() commands.CreateWalkInInput {
	return commands.CreateWalkInInput{
		TableID:    r.TableID,
		ClientName: r.ClientName,
		PartySize:  r.PartySize,
		Notes:      r.Notes,
	}
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
