package api

import (
	"errors"
	"net/http"

	"tablero/internal/handler/httperr"
	"tablero/internal/usecase/commands"
	"tablero/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// respondError maps usecase errors onto the public envelope. Typed errors
// carry structured details; sentinel errors map to bare code/message pairs.
func respondError(c *gin.Context, err error) {
	var vipErr *commands.VipUnitLimitError
	var capacityErr *commands.CapacityExceededError
	var idemErr *commands.IdempotencyReuseError
	var transitionErr *commands.InvalidTransitionError
	var occErr *commands.ConcurrencyConflictError

	switch {
	case errors.As(err, &vipErr):
		httperr.AbortWithError(c, http.StatusConflict, httperr.CodeConflict, err,
			"Simultaneous VIP unit limit reached", gin.H{
				"cap":      vipErr.Cap,
				"unitKeys": vipErr.UnitKeys,
			})
	case errors.As(err, &capacityErr):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, httperr.CodeUnprocessable, err,
			"Party size exceeds combined table capacity", gin.H{
				"partySize": capacityErr.PartySize,
				"capacity":  capacityErr.Capacity,
			})
	case errors.As(err, &idemErr):
		httperr.AbortWithError(c, http.StatusConflict, httperr.CodeIdempotencyConflict, err,
			"Idempotency key already used with a different payload", gin.H{
				"priorReservationId": idemErr.PriorReservationID,
			})
	case errors.As(err, &transitionErr):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, httperr.CodeUnprocessable, err,
			"Status transition not allowed", gin.H{
				"current":   transitionErr.Current,
				"requested": transitionErr.Requested,
			})
	case errors.As(err, &occErr):
		httperr.AbortWithError(c, http.StatusConflict, httperr.CodeConcurrencyConflict, err,
			"Table was modified by another request", gin.H{
				"tableId":         occErr.TableID,
				"expectedVersion": occErr.ExpectedVersion,
				"currentVersion":  occErr.CurrentVersion,
				"updatedAt":       occErr.UpdatedAt,
			})
	case errors.Is(err, commands.ErrValidation),
		errors.Is(err, queries.ErrInvalidStartTime),
		errors.Is(err, queries.ErrInvalidPartySize):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, httperr.CodeValidation, err,
			err.Error(), nil)
	case errors.Is(err, commands.ErrPastReservation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, httperr.CodeUnprocessable, err,
			"Reservation start time is in the past", nil)
	case errors.Is(err, commands.ErrTableConflict):
		httperr.AbortWithError(c, http.StatusConflict, httperr.CodeConflict, err,
			"Table already reserved in that time window", nil)
	case errors.Is(err, commands.ErrAreaFull):
		httperr.AbortWithError(c, http.StatusConflict, httperr.CodeConflict, err,
			"Area has reached its table limit", nil)
	case errors.Is(err, commands.ErrAreaNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, httperr.CodeNotFound, err,
			"Area not found", nil)
	case errors.Is(err, commands.ErrTableNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, httperr.CodeNotFound, err,
			"Table not found", nil)
	case errors.Is(err, commands.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, httperr.CodeNotFound, err,
			"Reservation not found", nil)
	case errors.Is(err, commands.ErrResetUnsupported):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, httperr.CodeUnprocessable, err,
			"Reset is not supported by the configured store", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, httperr.CodeInternal, err,
			"Internal server error", nil)
	}
}

func respondBindError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, err,
		"Invalid request format", nil)
}
