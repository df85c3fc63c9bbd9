package app

import (
	"fmt"
	"os"
	"strings"

	"gorm.io/gorm"

	redisclient "github.com/yungbote/focustown-backend/internal/clients/redis"
	"github.com/yungbote/focustown-backend/internal/logger"
	"github.com/yungbote/focustown-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Roller       services.MonsterRoller
	Initializer  services.MonsterInitializer
	Claims       services.ClaimService
	GameCorner   services.GameCornerService
	Activities   services.ActivityService
	SessionStore *services.SessionStore
	ClaimLock    redisclient.ClaimLock
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	var claimLock redisclient.ClaimLock
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		lock, err := redisclient.NewClaimLock(log)
		if err != nil {
			return Services{}, fmt.Errorf("init claim lock: %w", err)
		}
		claimLock = lock
	} else {
		log.Warn("REDIS_ADDR not set, using in-process claim lock")
		claimLock = redisclient.NewLocalClaimLock()
	}

	prompts, err := services.LoadPromptCatalog()
	if err != nil {
		return Services{}, err
	}

	auth := services.NewAuthService(cfg.JWTSecretKey, cfg.AccessTokenTTL, log)
	roller := services.NewMonsterRoller(reposet.Species, log)
	initializer := services.NewMonsterInitializer(reposet.Monster, log)
	claims := services.NewClaimService(db, reposet.Trainer, reposet.Monster, reposet.Inventory, initializer, claimLock, log)
	sessionStore := services.NewSessionStore(reposet.ActivitySession, log)
	gameCorner := services.NewGameCornerService(reposet.User, reposet.Trainer, roller, claims, log)
	activities := services.NewActivityService(sessionStore, prompts, reposet.User, reposet.Trainer, roller, claims, log)

	return Services{
		Auth:         auth,
		Roller:       roller,
		Initializer:  initializer,
		Claims:       claims,
		GameCorner:   gameCorner,
		Activities:   activities,
		SessionStore: sessionStore,
		ClaimLock:    claimLock,
	}, nil
}
