package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// InventoryBucket holds one trainer's item counts for one category as a
// name→quantity JSON document. Writes replace the whole document.
type InventoryBucket struct {
  ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  TrainerID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_trainer_category" json:"trainer_id"`
  Category  string         `gorm:"not null;uniqueIndex:idx_trainer_category;column:category" json:"category"`
  Items     datatypes.JSON `gorm:"type:jsonb;column:items" json:"items"`
  CreatedAt time.Time      `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (InventoryBucket) TableName() string {
  return "inventory_bucket"
}
