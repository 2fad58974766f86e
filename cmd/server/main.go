package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/trip-planner/internal/config"
	"github.com/iliyamo/trip-planner/internal/database"
	"github.com/iliyamo/trip-planner/internal/handler"
	"github.com/iliyamo/trip-planner/internal/logger"
	"github.com/iliyamo/trip-planner/internal/queue"
	"github.com/iliyamo/trip-planner/internal/repository"
	"github.com/iliyamo/trip-planner/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "dev"})

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer db.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(corsConfig(cfg)))

	activities := repository.NewActivityRepo(db)
	photos := repository.NewPhotoRepo(db)
	comments := repository.NewCommentRepo(db)

	activityHandler := handler.NewActivityHandler(activities, photos, comments)
	if queue.Enabled() {
		activityHandler.Events = queue.Publisher{}
		log.Info().Msg("activity.completed events enabled")
	}

	h := router.Handlers{
		Auth: handler.NewAuthHandler(cfg.JWTSecret,
			repository.NewCredentialRepo(db), repository.NewSessionRepo(db)),
		Activities: activityHandler,
		Photos:     handler.NewPhotoHandler(photos),
		Comments:   handler.NewCommentHandler(comments),
	}
	router.Register(e, cfg, config.NewRedisClient(), h)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

// corsConfig allows the origins from CORS_ORIGINS, or any origin when the
// variable is unset (the original deployment served the SPA cross-origin).
func corsConfig(cfg config.Config) echomiddleware.CORSConfig {
	c := echomiddleware.DefaultCORSConfig
	if cfg.CORSOrigins != "" {
		var origins []string
		for _, o := range strings.Split(cfg.CORSOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.AllowOrigins = origins
	}
	return c
}
