package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

type User struct {
  ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  DiscordID       string         `gorm:"uniqueIndex;not null;column:discord_id" json:"discord_id"`
  Username        string         `gorm:"not null;column:username" json:"username"`
  IsAdmin         bool           `gorm:"not null;default:false;column:is_admin" json:"is_admin"`
  RollerSettings  datatypes.JSON `gorm:"type:jsonb;column:roller_settings" json:"roller_settings"`
  CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
