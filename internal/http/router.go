package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/socialbot-ai/backend/internal/config"
	"github.com/socialbot-ai/backend/internal/db"
	"github.com/socialbot-ai/backend/internal/http/handlers"
	"github.com/socialbot-ai/backend/internal/http/middleware"
	"github.com/socialbot-ai/backend/internal/quality"
	"github.com/socialbot-ai/backend/internal/respond"
	"github.com/socialbot-ai/backend/internal/training"

	_ "github.com/socialbot-ai/backend/docs"
)

func Router(cfg config.Config, store *db.Store, engine *respond.Engine, trainer *training.Trainer, monitor *quality.Monitor, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:    store,
		Engine:   engine,
		Trainer:  trainer,
		Monitor:  monitor,
		Logger:   logger,
		AdminKey: cfg.AdminKey,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/respond", h.Respond)
		api.GET("/businesses/:id/brand-voice", h.BrandVoiceGet)
		api.GET("/businesses/:id/quality/report", h.QualityReport)
		api.GET("/businesses/:id/responses", h.ResponsesList)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/businesses/:id/brand-voice/train", h.BrandVoiceTrain)
		admin.POST("/businesses/:id/brand-voice/update", h.BrandVoiceUpdate)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
