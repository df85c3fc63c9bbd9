package app

import (
	"time"

	"github.com/yungbote/focustown-backend/internal/logger"
	"github.com/yungbote/focustown-backend/internal/utils"
)

type Config struct {
	JWTSecretKey            string
	AccessTokenTTL          time.Duration
	SessionEvictionInterval time.Duration
	Environment             string
	Version                 string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	evictionSeconds := utils.GetEnvAsInt("SESSION_EVICTION_INTERVAL", 600, log)
	environment := utils.GetEnv("ENVIRONMENT", "development", log)
	version := utils.GetEnv("SERVICE_VERSION", "dev", log)
	return Config{
		JWTSecretKey:            jwtSecretKey,
		AccessTokenTTL:          time.Duration(accessTokenTTLSeconds) * time.Second,
		SessionEvictionInterval: time.Duration(evictionSeconds) * time.Second,
		Environment:             environment,
		Version:                 version,
	}
}
