package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/focustown-backend/internal/logger"
	"github.com/yungbote/focustown-backend/internal/repos"
)

type Repos struct {
	User            repos.UserRepo
	Trainer         repos.TrainerRepo
	Monster         repos.MonsterRepo
	Inventory       repos.InventoryRepo
	Species         repos.SpeciesRepo
	ActivitySession repos.ActivitySessionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:            repos.NewUserRepo(db, log),
		Trainer:         repos.NewTrainerRepo(db, log),
		Monster:         repos.NewMonsterRepo(db, log),
		Inventory:       repos.NewInventoryRepo(db, log),
		Species:         repos.NewSpeciesRepo(db, log),
		ActivitySession: repos.NewActivitySessionRepo(db, log),
	}
}
