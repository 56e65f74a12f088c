// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/guilhermereis1k/oscar-cinema/internal/config"
	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
	"github.com/guilhermereis1k/oscar-cinema/internal/handler"
	"github.com/guilhermereis1k/oscar-cinema/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	Movies  *handler.MovieHandler
	Rooms   *handler.RoomHandler
	Catalog *handler.CatalogHandler
	Session *handler.SessionHandler
	Ticket  *handler.TicketHandler
}

// New builds the Echo instance with three route tiers: public reads,
// authenticated customer routes and staff-only management routes.
func New(cfg config.Config, rdb *redis.Client, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.TokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	auth := middleware.JWTAuth(cfg.JWTSecret)
	staff := middleware.RequireRole(string(domain.RoleAdmin), string(domain.RoleEmployee))

	e.GET("/health/live", h.Health.Live)
	e.GET("/health/ready", h.Health.Ready)

	v1 := e.Group("/v1")

	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/auth/refresh", h.Auth.Refresh)
	v1.POST("/auth/logout", h.Auth.Logout, auth)
	v1.GET("/auth/me", h.Auth.Me, auth)

	// Public catalog reads, served through the response cache.
	v1.GET("/movies", h.Movies.List, cache)
	v1.GET("/movies/:id", h.Movies.Get, cache)
	v1.GET("/rooms", h.Rooms.List, cache)
	v1.GET("/rooms/:id", h.Rooms.Get, cache)
	v1.GET("/rooms/:id/seats", h.Rooms.ListSeats, cache)
	v1.GET("/seat-types", h.Catalog.ListSeatTypes, cache)
	v1.GET("/exhibition-types", h.Catalog.ListExhibitionTypes, cache)
	v1.GET("/sessions", h.Session.List, cache)
	v1.GET("/sessions/:id", h.Session.Get, cache)
	// Seat maps change on every booking, so they skip the cache.
	v1.GET("/sessions/:id/seats", h.Session.SeatMap)

	// Customer routes.
	v1.POST("/tickets", h.Ticket.Create, auth)
	v1.GET("/tickets/mine", h.Ticket.Mine, auth)
	v1.GET("/tickets/:id", h.Ticket.Get, auth)

	// Staff management routes.
	mgmt := v1.Group("", auth, staff)
	mgmt.POST("/movies", h.Movies.Create)
	mgmt.PUT("/movies/:id", h.Movies.Update)
	mgmt.DELETE("/movies/:id", h.Movies.Delete)

	mgmt.POST("/rooms", h.Rooms.Create)
	mgmt.PUT("/rooms/:id", h.Rooms.Update)
	mgmt.DELETE("/rooms/:id", h.Rooms.Delete)
	mgmt.POST("/rooms/:id/seats", h.Rooms.AddSeats)
	mgmt.DELETE("/rooms/:id/seats/:seat_id", h.Rooms.DeleteSeat)

	mgmt.POST("/seat-types", h.Catalog.CreateSeatType)
	mgmt.PATCH("/seat-types/:id/price", h.Catalog.UpdateSeatTypePrice)
	mgmt.DELETE("/seat-types/:id", h.Catalog.DeleteSeatType)
	mgmt.POST("/exhibition-types", h.Catalog.CreateExhibitionType)
	mgmt.PATCH("/exhibition-types/:id/price", h.Catalog.UpdateExhibitionTypePrice)
	mgmt.DELETE("/exhibition-types/:id", h.Catalog.DeleteExhibitionType)

	mgmt.POST("/sessions", h.Session.Create)
	mgmt.PUT("/sessions/:id", h.Session.Update)
	mgmt.POST("/sessions/:id/finish", h.Session.Finish)
	mgmt.DELETE("/sessions/:id", h.Session.Delete)

	mgmt.PATCH("/tickets/:id/payment", h.Ticket.SetPaymentStatus)

	return e
}
