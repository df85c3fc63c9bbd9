package services

import (
  "errors"
  "math"
)

// SessionStats is the per-session productivity input everything scales
// from.
type SessionStats struct {
  TotalMinutes     int `json:"totalMinutes"`
  SessionsComplete int `json:"sessionsComplete"`
  PerformanceScore int `json:"performanceScore"`
}

var ErrInvalidStats = errors.New("invalid session stats")

// Validate rejects negative inputs and out-of-range performance scores.
func (s SessionStats) Validate() error {
  if s.TotalMinutes < 0 || s.SessionsComplete < 0 {
    return ErrInvalidStats
  }
  if s.PerformanceScore < 0 || s.PerformanceScore > 100 {
    return ErrInvalidStats
  }
  return nil
}

// Multipliers are the capped per-dimension bonuses plus their combined
// total.
type Multipliers struct {
  TimeBonus        float64
  SessionBonus     float64
  PerformanceBonus float64
  Total            float64
}

// ComputeMultipliers derives the bonus multipliers from session stats.
// Time caps at 2.0 (hit at 100 minutes), sessions at 1.5 (hit at 6
// sessions), performance contributes up to 0.5.
func ComputeMultipliers(stats SessionStats) Multipliers {
  m := Multipliers{
    TimeBonus:        math.Min(2.0, float64(stats.TotalMinutes)/50.0),
    SessionBonus:     math.Min(1.5, float64(stats.SessionsComplete)/4.0),
    PerformanceBonus: float64(stats.PerformanceScore) / 200.0,
  }
  m.Total = 1.0 + m.TimeBonus + m.SessionBonus + m.PerformanceBonus
  return m
}

// BaseCoinAmount is the pre-variance coin payout for a session.
func BaseCoinAmount(stats SessionStats, m Multipliers) int {
  base := 80.0 + 15.0*float64(stats.SessionsComplete) + 2.0*float64(stats.TotalMinutes)
  return int(math.Floor(base * m.Total))
}

// DropScaling is the shared growth factor for item stacks and level
// grants: time relative to a 25-minute session times sessions relative
// to a pair of them, never below 1.
func DropScaling(stats SessionStats) float64 {
  timeScale := math.Max(1, float64(stats.TotalMinutes)/25.0)
  sessionScale := math.Max(1, float64(stats.SessionsComplete)/2.0)
  return timeScale * sessionScale
}

// ItemQuantityRange gives the [base, max] stack size for an item drop
// of the given rarity.
func ItemQuantityRange(rarity string, scaling float64) (int, int) {
  switch rarity {
  case "common":
    return 2, min(9, int(math.Floor(2+scaling*2)))
  case "uncommon":
    return 1, min(6, int(math.Floor(1+scaling*1.5)))
  default:
    return 1, min(4, int(math.Floor(1+scaling)))
  }
}

// MaxLevelGain caps a level reward's roll range.
func MaxLevelGain(scaling float64) int {
  return min(15, int(math.Floor(1+scaling*2.5)))
}
