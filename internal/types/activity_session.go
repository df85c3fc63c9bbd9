package types

import (
  "encoding/json"
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

type SessionStatus string

const (
  SessionStatusActive    SessionStatus = "active"
  SessionStatusCompleted SessionStatus = "completed"
)

type ActivitySession struct {
  SessionID   uuid.UUID      `gorm:"type:uuid;primaryKey;column:session_id" json:"session_id"`
  UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
  Location    string         `gorm:"not null;index;column:location" json:"location"`
  Activity    string         `gorm:"not null;column:activity" json:"activity"`
  PromptID    int            `gorm:"not null;column:prompt_id" json:"prompt_id"`
  Difficulty  string         `gorm:"not null;default:'normal';column:difficulty" json:"difficulty"`
  Status      SessionStatus  `gorm:"not null;default:'active';index;column:status" json:"status"`
  Rewards     datatypes.JSON `gorm:"type:jsonb;column:rewards" json:"rewards"`
  CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
  CompletedAt *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (ActivitySession) TableName() string {
  return "activity_session"
}

// RewardList decodes the rewards document. A missing or malformed document
// decodes to an empty list rather than failing the whole session load.
func (s *ActivitySession) RewardList() []Reward {
  if len(s.Rewards) == 0 {
    return []Reward{}
  }
  var rewards []Reward
  if err := json.Unmarshal(s.Rewards, &rewards); err != nil {
    return []Reward{}
  }
  return rewards
}

// SetRewardList encodes and stores the rewards document.
func (s *ActivitySession) SetRewardList(rewards []Reward) error {
  raw, err := json.Marshal(rewards)
  if err != nil {
    return err
  }
  s.Rewards = datatypes.JSON(raw)
  return nil
}
