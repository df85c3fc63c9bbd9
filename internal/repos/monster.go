package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/types"
)

var ErrMonsterNotFound = errors.New("monster not found")

type MonsterRepo interface {
  Create(ctx context.Context, tx *gorm.DB, monster *types.Monster) error
  GetByID(ctx context.Context, tx *gorm.DB, monsterID uuid.UUID) (*types.Monster, error)
  GetByTrainerID(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID) ([]*types.Monster, error)
  Update(ctx context.Context, tx *gorm.DB, monster *types.Monster) error
}

type monsterRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMonsterRepo(db *gorm.DB, baseLog *logger.Logger) MonsterRepo {
  repoLog := baseLog.With("repo", "MonsterRepo")
  return &monsterRepo{db: db, log: repoLog}
}

func (mr *monsterRepo) Create(ctx context.Context, tx *gorm.DB, monster *types.Monster) error {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  if monster.ID == uuid.Nil {
    monster.ID = uuid.New()
  }
  return transaction.WithContext(ctx).Create(monster).Error
}

func (mr *monsterRepo) GetByID(ctx context.Context, tx *gorm.DB, monsterID uuid.UUID) (*types.Monster, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  var result types.Monster
  if err := transaction.WithContext(ctx).
    Where("id = ?", monsterID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, ErrMonsterNotFound
    }
    return nil, err
  }
  return &result, nil
}

func (mr *monsterRepo) GetByTrainerID(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID) ([]*types.Monster, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  var results []*types.Monster
  if err := transaction.WithContext(ctx).
    Where("trainer_id = ?", trainerID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mr *monsterRepo) Update(ctx context.Context, tx *gorm.DB, monster *types.Monster) error {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  result := transaction.WithContext(ctx).
    Model(&types.Monster{}).
    Where("id = ?", monster.ID).
    Updates(map[string]interface{}{
      "name":       monster.Name,
      "trainer_id": monster.TrainerID,
      "level":      monster.Level,
      "hp":         monster.HP,
      "attack":     monster.Attack,
      "defense":    monster.Defense,
      "speed":      monster.Speed,
      "friendship": monster.Friendship,
      "moveset":    monster.Moveset,
    })
  if result.Error != nil {
    return result.Error
  }
  if result.RowsAffected == 0 {
    return ErrMonsterNotFound
  }
  return nil
}
