package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/types"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepo interface {
  GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
  UpdateRollerSettings(ctx context.Context, tx *gorm.DB, userID uuid.UUID, settings datatypes.JSON) error
}

type userRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
  repoLog := baseLog.With("repo", "UserRepo")
  return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  var result types.User
  if err := transaction.WithContext(ctx).
    Where("id = ?", userID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, ErrUserNotFound
    }
    return nil, err
  }
  return &result, nil
}

func (ur *userRepo) UpdateRollerSettings(ctx context.Context, tx *gorm.DB, userID uuid.UUID, settings datatypes.JSON) error {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  result := transaction.WithContext(ctx).
    Model(&types.User{}).
    Where("id = ?", userID).
    Update("roller_settings", settings)
  if result.Error != nil {
    return result.Error
  }
  if result.RowsAffected == 0 {
    return ErrUserNotFound
  }
  return nil
}
