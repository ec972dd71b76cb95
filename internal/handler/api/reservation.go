package api

import (
	"net/http"
	"strconv"

	"tablero/internal/domain/reservation"
	reqdto "tablero/internal/handler/dto/request"
	"tablero/internal/handler/httperr"
	"tablero/internal/pkg/errs"
	"tablero/internal/usecase/commands"
	"tablero/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.FloorQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, qrs queries.FloorQueries) *ReservationHandler {
	return &ReservationHandler{
		commands: cmds,
		queries:  qrs,
	}
}

// ListReservations returns the reservations for ?date (default today),
// optionally narrowed to ?areaId.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	reservations, err := h.queries.ListReservations(c.Request.Context(), c.Query("date"), c.Query("areaId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// CreateReservation requires an Idempotency-Key header; replays of the same
// key and payload return the originally created reservation.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	idempotencyKey := c.GetHeader("Idempotency-Key")
	if idempotencyKey == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation,
			errs.New("missing Idempotency-Key header"),
			"Idempotency-Key header is required", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.commands.CreateReservation(c.Request.Context(), req.ToInput(), idempotencyKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	var req reqdto.UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.commands.UpdateStatus(c.Request.Context(), c.Param("id"), reservation.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ReservationHandler) CreateWalkIn(c *gin.Context) {
	var req reqdto.CreateWalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.commands.CreateWalkIn(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetAvailability suggests free tables for ?date&partySize&startTime with an
// optional ?areaId preference.
func (h *ReservationHandler) GetAvailability(c *gin.Context) {
	partySize, err := strconv.Atoi(c.DefaultQuery("partySize", "0"))
	if err != nil {
		respondBindError(c, err)
		return
	}

	availability, err := h.queries.GetAvailability(
		c.Request.Context(),
		c.Query("date"),
		partySize,
		c.Query("startTime"),
		c.Query("areaPreference"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}
