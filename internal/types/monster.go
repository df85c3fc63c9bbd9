package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

type Monster struct {
  ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  TrainerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"trainer_id"`
  UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
  Name        string         `gorm:"not null;column:name" json:"name"`
  Species1    string         `gorm:"not null;column:species1" json:"species1"`
  Species2    string         `gorm:"column:species2" json:"species2,omitempty"`
  Species3    string         `gorm:"column:species3" json:"species3,omitempty"`
  Type1       string         `gorm:"column:type1" json:"type1"`
  Type2       string         `gorm:"column:type2" json:"type2,omitempty"`
  Attribute   string         `gorm:"column:attribute" json:"attribute,omitempty"`
  Level       int            `gorm:"not null;default:1;column:level" json:"level"`
  Stage       string         `gorm:"column:stage" json:"stage,omitempty"`
  Rank        string         `gorm:"column:rank" json:"rank,omitempty"`
  IsLegendary bool           `gorm:"not null;default:false;column:is_legendary" json:"is_legendary"`
  IsMythical  bool           `gorm:"not null;default:false;column:is_mythical" json:"is_mythical"`
  HP          int            `gorm:"not null;default:0;column:hp" json:"hp"`
  Attack      int            `gorm:"not null;default:0;column:attack" json:"attack"`
  Defense     int            `gorm:"not null;default:0;column:defense" json:"defense"`
  Speed       int            `gorm:"not null;default:0;column:speed" json:"speed"`
  Friendship  int            `gorm:"not null;default:0;column:friendship" json:"friendship"`
  Moveset     datatypes.JSON `gorm:"type:jsonb;column:moveset" json:"moveset"`
  Source      string         `gorm:"column:source" json:"source,omitempty"`
  WhereMet    string         `gorm:"column:where_met" json:"where_met,omitempty"`
  CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Monster) TableName() string {
  return "monster"
}
