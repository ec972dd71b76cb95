package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tablero/internal/handler/api"
	"tablero/internal/handler/middleware"
	"tablero/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, floorHandler *api.FloorHandler, reservationHandler *api.ReservationHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, floorHandler, reservationHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, floorHandler *api.FloorHandler, reservationHandler *api.ReservationHandler) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/areas", Handler: floorHandler.ListAreas},
			{Method: http.MethodGet, Path: "/floor-layout", Handler: floorHandler.GetFloorLayout},
			{Method: http.MethodGet, Path: "/availability", Handler: reservationHandler.GetAvailability},
			{Method: http.MethodPost, Path: "/admin/reset", Handler: floorHandler.Reset},
		})

		tables := apiGroup.Group("/tables")
		{
			addRoutes(tables, []route{
				{Method: http.MethodGet, Path: "", Handler: floorHandler.ListTables},
				{Method: http.MethodPost, Path: "", Handler: floorHandler.CreateTable},
				{Method: http.MethodPatch, Path: "/:id/position", Handler: floorHandler.UpdatePosition},
				{Method: http.MethodPost, Path: "/:id/release", Handler: floorHandler.ReleaseTable},
			})
		}

		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.ListReservations},
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: reservationHandler.UpdateStatus},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/walkins", Handler: reservationHandler.CreateWalkIn},
		})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
