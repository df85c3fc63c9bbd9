package types

import (
  "fmt"
  "time"
  "github.com/google/uuid"
)

type RewardCategory string

const (
  RewardCoin    RewardCategory = "coin"
  RewardItem    RewardCategory = "item"
  RewardLevel   RewardCategory = "level"
  RewardMonster RewardCategory = "monster"
)

type Rarity string

const (
  RarityCommon    Rarity = "common"
  RarityUncommon  Rarity = "uncommon"
  RarityRare      Rarity = "rare"
  RarityEpic      Rarity = "epic"
  RarityMythical  Rarity = "mythical"
  RarityLegendary Rarity = "legendary"
)

// RewardData is the category-specific payload. Only the fields for the
// reward's own category are populated.
type RewardData struct {
  // coin
  Amount int `json:"amount,omitempty"`

  // item
  Name        string `json:"name,omitempty"`
  Category    string `json:"category,omitempty"`
  Quantity    int    `json:"quantity,omitempty"`

  // level
  Levels      int        `json:"levels,omitempty"`
  ForMonster  bool       `json:"for_monster,omitempty"`
  MonsterID   *uuid.UUID `json:"monster_id,omitempty"`
  MonsterName string     `json:"monster_name,omitempty"`

  // monster
  Species1  string `json:"species1,omitempty"`
  Species2  string `json:"species2,omitempty"`
  Species3  string `json:"species3,omitempty"`
  Type1     string `json:"type1,omitempty"`
  Type2     string `json:"type2,omitempty"`
  Attribute string `json:"attribute,omitempty"`
  Level     int    `json:"level,omitempty"`
  Source    string `json:"source,omitempty"`
  Stage     string `json:"stage,omitempty"`
  Rank      string `json:"rank,omitempty"`
  Tier      string `json:"tier,omitempty"`
  IsSpecial bool   `json:"is_special,omitempty"`

  Title       string `json:"title,omitempty"`
  Description string `json:"description,omitempty"`
}

// Reward is the central entity of the engine. It is created in memory by the
// slot planner, optionally persisted inside an ActivitySession's rewards
// document, and mutated exactly once when claimed.
type Reward struct {
  ID         string         `json:"id"`
  Type       RewardCategory `json:"type"`
  Rarity     Rarity         `json:"rarity"`
  Data       RewardData     `json:"reward_data"`
  AssignedTo *uuid.UUID     `json:"assigned_to,omitempty"`
  Claimed    bool           `json:"claimed"`
  ClaimedBy  *uuid.UUID     `json:"claimed_by,omitempty"`
  ClaimedAt  *time.Time     `json:"claimed_at,omitempty"`
}

// NewRewardID builds a category-prefixed opaque reward id, e.g. "coin-<uuid>".
func NewRewardID(category RewardCategory) string {
  return fmt.Sprintf("%s-%s", category, uuid.New())
}

// MarkClaimed flips the claim fields. The caller is responsible for checking
// Claimed beforehand; claim state is never un-set.
func (r *Reward) MarkClaimed(trainerID uuid.UUID) {
  now := time.Now().UTC()
  r.Claimed = true
  r.ClaimedBy = &trainerID
  r.ClaimedAt = &now
}
