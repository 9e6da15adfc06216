package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/csxl/coworking-api/internal/config"
	"github.com/csxl/coworking-api/internal/handler"
	"github.com/csxl/coworking-api/internal/middleware"
	"github.com/csxl/coworking-api/internal/model"
)

// Handlers bundles the handler set the router wires up.
type Handlers struct {
	Coworking      *handler.CoworkingHandler
	Ambassador     *handler.AmbassadorHandler
	OperatingHours *handler.OperatingHoursHandler
}

// Register mounts every route on the Echo instance. The health check is
// open; everything else lives under /v1/coworking behind JWT auth with
// the Redis token bucket in front. The response cache wraps only the
// availability and schedule reads, where repeat polling is heaviest.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	v1 := e.Group("/v1/coworking")
	v1.Use(rateLimit)
	v1.Use(middleware.JWTAuth(jwtSecret))

	v1.GET("/seats", h.Coworking.GetSeats, cache)
	v1.GET("/availability", h.Coworking.GetSeatAvailability, cache)
	v1.GET("/operating-hours", h.OperatingHours.GetSchedule, cache)

	v1.POST("/reservation", h.Coworking.DraftReservation)
	v1.GET("/reservation/:id", h.Coworking.GetReservation)
	v1.PUT("/reservation/:id", h.Coworking.UpdateReservation)
	v1.GET("/reservations", h.Coworking.ListReservations)
	v1.GET("/room-reservations", h.Coworking.GetRoomReservations)

	admin := v1.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.POST("/operating-hours", h.OperatingHours.Create)
	admin.DELETE("/operating-hours/:id", h.OperatingHours.Delete)

	staff := v1.Group("/ambassador", middleware.RequireRole(model.RoleAmbassador, model.RoleAdmin))
	staff.GET("/xl", h.Ambassador.GetXLReservations)
	staff.GET("/rooms", h.Ambassador.GetRoomReservations)
	staff.PUT("/checkin", h.Ambassador.Checkin)
}
