package types

import (
  "time"
  "github.com/google/uuid"
)

type Trainer struct {
  ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  UserID               uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
  Name                 string    `gorm:"not null;column:name" json:"name"`
  Level                int       `gorm:"not null;default:1;column:level" json:"level"`
  CurrencyAmount       int       `gorm:"not null;default:0;column:currency_amount" json:"currency_amount"`
  TotalEarnedCurrency  int       `gorm:"not null;default:0;column:total_earned_currency" json:"total_earned_currency"`
  CreatedAt            time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt            time.Time `gorm:"not null" json:"updated_at"`
}

func (Trainer) TableName() string {
  return "trainer"
}
