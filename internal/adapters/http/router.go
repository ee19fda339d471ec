package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mentorlink/webicast/internal/adapters/signal"
	"github.com/mentorlink/webicast/internal/app"
	"github.com/mentorlink/webicast/internal/config"
)

func SetupRouter(ctx context.Context, cfg *config.Config, orch *app.Orchestrator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	ctl := signal.NewSignalWSController(cfg, orch)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")

	api := r.Group("/api")

	api.GET("/ws/signal", func(c *gin.Context) {
		ctl.HandleSignal(ctx, c)
	})

	// Read-only view of the live rooms; everything else about webinars is
	// plain CRUD owned by the platform API, not this server.
	api.GET("/streams", func(c *gin.Context) {
		c.JSON(http.StatusOK, orch.LiveStreams())
	})

	return r
}
