package repos

import (
  "context"
  "encoding/json"
  "errors"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/types"
)

type InventoryRepo interface {
  GetBucket(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, category string) (*types.InventoryBucket, error)
  CreateBucket(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, category string, items map[string]int) (*types.InventoryBucket, error)
  ReplaceBucket(ctx context.Context, tx *gorm.DB, bucketID uuid.UUID, items map[string]int) error
}

type inventoryRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewInventoryRepo(db *gorm.DB, baseLog *logger.Logger) InventoryRepo {
  repoLog := baseLog.With("repo", "InventoryRepo")
  return &inventoryRepo{db: db, log: repoLog}
}

func (ir *inventoryRepo) GetBucket(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, category string) (*types.InventoryBucket, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  var result types.InventoryBucket
  if err := transaction.WithContext(ctx).
    Where("trainer_id = ? AND category = ?", trainerID, category).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (ir *inventoryRepo) CreateBucket(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, category string, items map[string]int) (*types.InventoryBucket, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  raw, err := json.Marshal(items)
  if err != nil {
    return nil, err
  }
  bucket := &types.InventoryBucket{
    ID:        uuid.New(),
    TrainerID: trainerID,
    Category:  category,
    Items:     datatypes.JSON(raw),
  }
  if err := transaction.WithContext(ctx).Create(bucket).Error; err != nil {
    return nil, err
  }
  return bucket, nil
}

func (ir *inventoryRepo) ReplaceBucket(ctx context.Context, tx *gorm.DB, bucketID uuid.UUID, items map[string]int) error {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  raw, err := json.Marshal(items)
  if err != nil {
    return err
  }
  return transaction.WithContext(ctx).
    Model(&types.InventoryBucket{}).
    Where("id = ?", bucketID).
    Update("items", datatypes.JSON(raw)).Error
}
