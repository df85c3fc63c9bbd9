package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/types"
)

var ErrTrainerNotFound = errors.New("trainer not found")

type TrainerRepo interface {
  GetByID(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID) (*types.Trainer, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Trainer, error)
  UpdateCurrency(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, newBalance, newTotalEarned int) error
  UpdateLevel(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, newLevel int) error
}

type trainerRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTrainerRepo(db *gorm.DB, baseLog *logger.Logger) TrainerRepo {
  repoLog := baseLog.With("repo", "TrainerRepo")
  return &trainerRepo{db: db, log: repoLog}
}

func (tr *trainerRepo) GetByID(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID) (*types.Trainer, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var result types.Trainer
  if err := transaction.WithContext(ctx).
    Where("id = ?", trainerID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, ErrTrainerNotFound
    }
    return nil, err
  }
  return &result, nil
}

func (tr *trainerRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Trainer, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.Trainer
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tr *trainerRepo) UpdateCurrency(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, newBalance, newTotalEarned int) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  result := transaction.WithContext(ctx).
    Model(&types.Trainer{}).
    Where("id = ?", trainerID).
    Updates(map[string]interface{}{
      "currency_amount":       newBalance,
      "total_earned_currency": newTotalEarned,
    })
  if result.Error != nil {
    return result.Error
  }
  if result.RowsAffected == 0 {
    return ErrTrainerNotFound
  }
  return nil
}

func (tr *trainerRepo) UpdateLevel(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, newLevel int) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  result := transaction.WithContext(ctx).
    Model(&types.Trainer{}).
    Where("id = ?", trainerID).
    Update("level", newLevel)
  if result.Error != nil {
    return result.Error
  }
  if result.RowsAffected == 0 {
    return ErrTrainerNotFound
  }
  return nil
}
