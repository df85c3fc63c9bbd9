package services

import (
  "context"
  "math"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/repos"
  "github.com/yungbote/focustown-backend/internal/types"
)

const maxMonsterLevel = 100

// MonsterInitializer materializes rolled monsters into owned rows and
// recomputes stats on level changes.
type MonsterInitializer interface {
  Materialize(ctx context.Context, tx *gorm.DB, trainerID, userID uuid.UUID, rolled *RolledMonster, whereMet string) (*types.Monster, error)
  LevelUp(ctx context.Context, tx *gorm.DB, monsterID uuid.UUID, levels int) (*types.Monster, error)
}

type monsterInitializer struct {
  monsterRepo repos.MonsterRepo
  rng         *lockedRand
  log         *logger.Logger
}

func NewMonsterInitializer(monsterRepo repos.MonsterRepo, baseLog *logger.Logger) MonsterInitializer {
  return &monsterInitializer{
    monsterRepo: monsterRepo,
    rng:         newLockedRand(newSeed()),
    log:         baseLog.With("service", "MonsterInitializer"),
  }
}

// Materialize turns a rolled species into an owned monster and persists
// it. Stats derive from the level, friendship starts at a random 0-70,
// and the starting moveset is drawn from the monster's type pool.
func (mi *monsterInitializer) Materialize(ctx context.Context, tx *gorm.DB, trainerID, userID uuid.UUID, rolled *RolledMonster, whereMet string) (*types.Monster, error) {
  species := rolled.Species
  monster := &types.Monster{
    ID:          uuid.New(),
    TrainerID:   trainerID,
    UserID:      userID,
    Name:        species.Name,
    Species1:    species.Name,
    Type1:       species.Type1,
    Type2:       species.Type2,
    Attribute:   species.Attribute,
    Level:       rolled.Level,
    Stage:       species.Stage,
    Rank:        species.Rank,
    IsLegendary: species.IsLegendary,
    IsMythical:  species.IsMythical,
    Source:      species.Source,
    WhereMet:    whereMet,
    Friendship:  mi.rng.Intn(71),
  }
  moves := movesFor(mi.rng, species.Type1, species.Type2, species.Attribute, moveCountForLevel(rolled.Level))
  monster.Moveset = marshalMoveset(moves)
  applyStats(monster)

  if err := mi.monsterRepo.Create(ctx, tx, monster); err != nil {
    return nil, err
  }
  mi.log.Info("materialized monster",
    "monsterID", monster.ID,
    "species", monster.Species1,
    "level", monster.Level,
    "tier", rolled.Tier)
  return monster, nil
}

// LevelUp raises a monster's level (capped at 100), bumps friendship by
// 1-3 per level gained, teaches any moves the new level is due, and
// recomputes stats.
func (mi *monsterInitializer) LevelUp(ctx context.Context, tx *gorm.DB, monsterID uuid.UUID, levels int) (*types.Monster, error) {
  if levels <= 0 {
    return nil, ErrInvalidStats
  }
  monster, err := mi.monsterRepo.GetByID(ctx, tx, monsterID)
  if err != nil {
    return nil, err
  }
  if monster.Level >= maxMonsterLevel {
    return monster, nil
  }

  newLevel := monster.Level + levels
  if newLevel > maxMonsterLevel {
    newLevel = maxMonsterLevel
  }
  gained := newLevel - monster.Level
  knownCount := moveCountForLevel(monster.Level)
  monster.Level = newLevel

  if dueCount := moveCountForLevel(newLevel); dueCount > knownCount {
    learned := movesFor(mi.rng, monster.Type1, monster.Type2, monster.Attribute, dueCount-knownCount)
    monster.Moveset = marshalMoveset(append(decodeMoveset(monster.Moveset), learned...))
  }

  friendship := monster.Friendship + gained*(1+mi.rng.Intn(3))
  if friendship > 255 {
    friendship = 255
  }
  monster.Friendship = friendship

  applyStats(monster)

  if err := mi.monsterRepo.Update(ctx, tx, monster); err != nil {
    return nil, err
  }
  return monster, nil
}

// applyStats recomputes the stat block from the monster's level. The
// base value scales with level; HP additionally gains a flat
// level-plus-ten bonus.
func applyStats(m *types.Monster) {
  base := 20 + int(math.Floor(float64(m.Level)*2.5))
  m.HP = (2*base)*m.Level/100 + m.Level + 10
  m.Attack = (2*base)*m.Level/100 + 5
  m.Defense = (2*base)*m.Level/100 + 5
  m.Speed = (2*base)*m.Level/100 + 5
}

