package api

import (
	"net/http"

	reqdto "tablero/internal/handler/dto/request"
	"tablero/internal/usecase/commands"
	"tablero/internal/usecase/positionqueue"
	"tablero/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type FloorHandler struct {
	tables      commands.TableCommands
	rescmds     commands.ReservationCommands
	queries     queries.FloorQueries
	positioning *positionqueue.Dispatcher
}

func NewFloorHandler(
	tables commands.TableCommands,
	rescmds commands.ReservationCommands,
	qrs queries.FloorQueries,
	positioning *positionqueue.Dispatcher,
) *FloorHandler {
	return &FloorHandler{
		tables:      tables,
		rescmds:     rescmds,
		queries:     qrs,
		positioning: positioning,
	}
}

func (h *FloorHandler) ListAreas(c *gin.Context) {
	areas, err := h.queries.ListAreas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, areas)
}

// ListTables returns all tables, or the tables of ?areaId when given.
func (h *FloorHandler) ListTables(c *gin.Context) {
	tables, err := h.queries.ListTables(c.Request.Context(), c.Query("areaId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (h *FloorHandler) CreateTable(c *gin.Context) {
	var req reqdto.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.tables.CreateTable(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdatePosition routes the write through the per-table dispatcher so drag
// bursts collapse to a single store write.
func (h *FloorHandler) UpdatePosition(c *gin.Context) {
	var req reqdto.UpdateTablePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.positioning.Update(c.Request.Context(), req.ToInput(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ReleaseTable closes the table's active reservation. Releasing a table with
// nothing active is not an error; released reports whether anything changed.
func (h *FloorHandler) ReleaseTable(c *gin.Context) {
	released, ok, err := h.rescmds.ReleaseTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{"ok": true, "released": ok}
	if released != nil {
		body["reservation"] = released
	}
	c.JSON(http.StatusOK, body)
}

// GetFloorLayout returns the combined snapshot the canvas renders in one
// round trip: areas, tables with visual status, and the date's reservations.
func (h *FloorHandler) GetFloorLayout(c *gin.Context) {
	layout, err := h.queries.GetFloorLayout(c.Request.Context(), c.Query("date"), c.Query("areaId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, layout)
}

// Reset reseeds the store to the demo floor. Only the memory driver
// supports it.
func (h *FloorHandler) Reset(c *gin.Context) {
	if err := h.tables.Reset(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
