package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/trip-planner/internal/config"
	"github.com/iliyamo/trip-planner/internal/handler"
	"github.com/iliyamo/trip-planner/internal/middleware"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth       *handler.AuthHandler
	Activities *handler.ActivityHandler
	Photos     *handler.PhotoHandler
	Comments   *handler.CommentHandler
}

// Register mounts all routes. /health and /auth/login are open; everything
// else sits behind the JWT gate, with the optional rate limiter in front
// so unauthenticated floods are cut off before token verification.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers) {
	e.GET("/health", handler.Health)
	e.POST("/auth/login", h.Auth.Login)

	g := e.Group("")
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	g.Use(middleware.JWTAuth(cfg.JWTSecret))

	g.GET("/activities", h.Activities.List)
	g.GET("/activities/:id", h.Activities.Get)
	g.POST("/activities", h.Activities.Create)
	g.PUT("/activities/:id", h.Activities.Update)
	g.PATCH("/activities/:id/toggle-complete", h.Activities.ToggleComplete)
	g.DELETE("/activities/:id", h.Activities.Delete)

	g.POST("/photos", h.Photos.Create)
	g.GET("/photos/gallery", h.Photos.Gallery)
	g.DELETE("/photos/:id", h.Photos.Delete)

	g.POST("/comments", h.Comments.Create)
	g.DELETE("/comments/:id", h.Comments.Delete)
}
