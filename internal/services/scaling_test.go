package services

import (
	"math"
	"testing"
)

func TestSessionStatsValidate(t *testing.T) {
	tests := []struct {
		name    string
		stats   SessionStats
		wantErr bool
	}{
		{"typical", SessionStats{TotalMinutes: 50, SessionsComplete: 2, PerformanceScore: 80}, false},
		{"zero", SessionStats{}, false},
		{"negative minutes", SessionStats{TotalMinutes: -1}, true},
		{"negative sessions", SessionStats{SessionsComplete: -1}, true},
		{"score above 100", SessionStats{PerformanceScore: 101}, true},
		{"score at 100", SessionStats{PerformanceScore: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestComputeMultipliers(t *testing.T) {
	tests := []struct {
		name      string
		stats     SessionStats
		wantTotal float64
	}{
		{"all zero", SessionStats{}, 1.0},
		{"typical session", SessionStats{TotalMinutes: 50, SessionsComplete: 2, PerformanceScore: 100}, 1 + 1.0 + 0.5 + 0.5},
		{"time capped at 2x", SessionStats{TotalMinutes: 500}, 3.0},
		{"sessions capped at 1.5x", SessionStats{SessionsComplete: 100}, 2.5},
		{"everything capped", SessionStats{TotalMinutes: 1000, SessionsComplete: 100, PerformanceScore: 100}, 1 + 2.0 + 1.5 + 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMultipliers(tt.stats)
			if math.Abs(m.Total-tt.wantTotal) > 1e-9 {
				t.Errorf("Total = %v, want %v", m.Total, tt.wantTotal)
			}
		})
	}
}

func TestBaseCoinAmount(t *testing.T) {
	stats := SessionStats{TotalMinutes: 25, SessionsComplete: 1, PerformanceScore: 60}
	m := ComputeMultipliers(stats)

	// 80 + 15 + 50 = 145 pre-multiplier.
	want := int(math.Floor(145 * m.Total))
	if got := BaseCoinAmount(stats, m); got != want {
		t.Errorf("BaseCoinAmount() = %d, want %d", got, want)
	}
}

func TestBaseCoinAmountGrowsWithEffort(t *testing.T) {
	small := SessionStats{TotalMinutes: 25, SessionsComplete: 1, PerformanceScore: 60}
	big := SessionStats{TotalMinutes: 100, SessionsComplete: 4, PerformanceScore: 100}

	smallCoin := BaseCoinAmount(small, ComputeMultipliers(small))
	bigCoin := BaseCoinAmount(big, ComputeMultipliers(big))
	if bigCoin <= smallCoin {
		t.Errorf("expected %d > %d for the larger session", bigCoin, smallCoin)
	}
}

func TestItemQuantityRange(t *testing.T) {
	shortSession := DropScaling(SessionStats{TotalMinutes: 25, SessionsComplete: 1})
	longSession := DropScaling(SessionStats{TotalMinutes: 100, SessionsComplete: 4})

	tests := []struct {
		name     string
		rarity   string
		scaling  float64
		wantLow  int
		wantHigh int
	}{
		{"common short", "common", shortSession, 2, 4},
		{"common long capped", "common", longSession, 2, 9},
		{"uncommon short", "uncommon", shortSession, 1, 2},
		{"rare long capped", "rare", longSession, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high := ItemQuantityRange(tt.rarity, tt.scaling)
			if low != tt.wantLow || high != tt.wantHigh {
				t.Errorf("ItemQuantityRange(%s, %v) = (%d, %d), want (%d, %d)",
					tt.rarity, tt.scaling, low, high, tt.wantLow, tt.wantHigh)
			}
		})
	}
}

func TestMaxLevelGain(t *testing.T) {
	if got := MaxLevelGain(DropScaling(SessionStats{TotalMinutes: 25, SessionsComplete: 1})); got != 3 {
		t.Errorf("short session MaxLevelGain = %d, want 3", got)
	}
	if got := MaxLevelGain(DropScaling(SessionStats{TotalMinutes: 1000, SessionsComplete: 50})); got != 15 {
		t.Errorf("huge session MaxLevelGain = %d, want cap 15", got)
	}
}
