package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/types"
)

var ErrSessionNotFound = errors.New("activity session not found")

type ActivitySessionRepo interface {
  Upsert(ctx context.Context, tx *gorm.DB, session *types.ActivitySession) error
  FindBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.ActivitySession, error)
  FindActiveByUserAndLocation(ctx context.Context, tx *gorm.DB, userID uuid.UUID, location string) (*types.ActivitySession, error)
}

type activitySessionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewActivitySessionRepo(db *gorm.DB, baseLog *logger.Logger) ActivitySessionRepo {
  repoLog := baseLog.With("repo", "ActivitySessionRepo")
  return &activitySessionRepo{db: db, log: repoLog}
}

func (ar *activitySessionRepo) Upsert(ctx context.Context, tx *gorm.DB, session *types.ActivitySession) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "session_id"}},
      DoUpdates: clause.AssignmentColumns([]string{"status", "rewards", "completed_at"}),
    }).
    Create(session).Error
}

func (ar *activitySessionRepo) FindBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.ActivitySession, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var result types.ActivitySession
  if err := transaction.WithContext(ctx).
    Where("session_id = ?", sessionID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, ErrSessionNotFound
    }
    return nil, err
  }
  return &result, nil
}

func (ar *activitySessionRepo) FindActiveByUserAndLocation(ctx context.Context, tx *gorm.DB, userID uuid.UUID, location string) (*types.ActivitySession, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var result types.ActivitySession
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND location = ? AND status = ?", userID, location, types.SessionStatusActive).
    Order("created_at DESC").
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, ErrSessionNotFound
    }
    return nil, err
  }
  return &result, nil
}
