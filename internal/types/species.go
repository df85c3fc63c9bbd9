package types

import (
  "github.com/google/uuid"
)

// Species is one row of the roller pool: a creature definition from one of
// the pluggable source franchises.
type Species struct {
  ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Name        string    `gorm:"not null;index;column:name" json:"name"`
  Source      string    `gorm:"not null;index;column:source" json:"source"` // pokemon|digimon|yokai|nexomon|pals|fakemon
  Type1       string    `gorm:"column:type1" json:"type1"`
  Type2       string    `gorm:"column:type2" json:"type2,omitempty"`
  Attribute   string    `gorm:"column:attribute" json:"attribute,omitempty"`
  Stage       string    `gorm:"index;column:stage" json:"stage,omitempty"`
  Rank        string    `gorm:"index;column:rank" json:"rank,omitempty"`
  IsLegendary bool      `gorm:"not null;default:false;column:is_legendary" json:"is_legendary"`
  IsMythical  bool      `gorm:"not null;default:false;column:is_mythical" json:"is_mythical"`
  BaseHP      int       `gorm:"not null;default:10;column:base_hp" json:"base_hp"`
  BaseAttack  int       `gorm:"not null;default:10;column:base_attack" json:"base_attack"`
  BaseDefense int       `gorm:"not null;default:10;column:base_defense" json:"base_defense"`
  BaseSpeed   int       `gorm:"not null;default:10;column:base_speed" json:"base_speed"`
}

func (Species) TableName() string {
  return "species"
}
