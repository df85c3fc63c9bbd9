package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/focustown-backend/internal/handlers"
	"github.com/yungbote/focustown-backend/internal/logger"
	"github.com/yungbote/focustown-backend/internal/middleware"
	"github.com/yungbote/focustown-backend/internal/server"
)

type Handlers struct {
	GameCorner *handlers.GameCornerHandler
	Activity   *handlers.ActivityHandler
	Settings   *handlers.SettingsHandler
}

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireHandlers(log *logger.Logger, serviceset Services, reposet Repos) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		GameCorner: handlers.NewGameCornerHandler(log, serviceset.GameCorner),
		Activity:   handlers.NewActivityHandler(log, serviceset.Activities),
		Settings:   handlers.NewSettingsHandler(log, reposet.User),
	}
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, serviceset.Auth),
	}
}

func wireRouter(handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:    middlewareset.Auth,
		GameCornerHandler: handlerset.GameCorner,
		ActivityHandler:   handlerset.Activity,
		SettingsHandler:   handlerset.Settings,
	})
}
