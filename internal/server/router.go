package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/yungbote/focustown-backend/internal/handlers"
  "github.com/yungbote/focustown-backend/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware    *middleware.AuthMiddleware
  GameCornerHandler *handlers.GameCornerHandler
  ActivityHandler   *handlers.ActivityHandler
  SettingsHandler   *handlers.SettingsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(otelgin.Middleware("focustown"))
  router.Use(middleware.AttachTraceContext())

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)

// ===============
// || Protected ||
// ===============
  api := router.Group("/api")
  api.Use(cfg.AuthMiddleware.RequireAuth())
  // Game Corner
  api.POST("/game-corner/rewards", cfg.GameCornerHandler.GenerateRewards)
  // Location activities
  api.POST("/activities/start", cfg.ActivityHandler.StartActivity)
  api.POST("/activities/:sessionID/complete", cfg.ActivityHandler.CompleteActivity)
  api.POST("/activities/:sessionID/claim", cfg.ActivityHandler.ClaimReward)
  api.GET("/activities/:sessionID", cfg.ActivityHandler.GetSession)
  api.DELETE("/activities", cfg.ActivityHandler.ClearSessions)
  api.GET("/locations/:location/status", cfg.ActivityHandler.GetLocationStatus)
  // Roller settings
  api.GET("/settings/sources", cfg.SettingsHandler.GetSources)
  api.PUT("/settings/sources", cfg.SettingsHandler.UpdateSources)

  return router
}
