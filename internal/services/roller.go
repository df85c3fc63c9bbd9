package services

import (
  "context"
  crand "crypto/rand"
  "encoding/binary"
  "errors"
  "math/rand"
  "sync"
  "time"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/repos"
  "github.com/yungbote/focustown-backend/internal/types"
)

var ErrNoCandidates = errors.New("no species candidates for tier")

// RollParams narrows a single monster roll beyond the user's source
// settings.
type RollParams struct {
  Settings    *SourceSettings
  TypePool    []string
  ForceTier   string
  ForceLegend bool
  // Seed, when non-zero, drives this roll alone so callers can replay
  // or pre-commit an outcome. Zero falls back to the shared stream.
  Seed int64
}

// RolledMonster is a fully-specified monster payload ready to be
// attached to a reward.
type RolledMonster struct {
  Species types.Species
  Level   int
  Tier    string
  Rarity  types.Rarity
}

// MonsterRoller turns a roll request into a concrete species, level and
// rarity.
type MonsterRoller interface {
  Roll(ctx context.Context, params RollParams) (*RolledMonster, error)
}

type dbMonsterRoller struct {
  speciesRepo repos.SpeciesRepo
  rng         *lockedRand
  log         *logger.Logger
}

func NewMonsterRoller(speciesRepo repos.SpeciesRepo, baseLog *logger.Logger) MonsterRoller {
  return &dbMonsterRoller{
    speciesRepo: speciesRepo,
    rng:         newLockedRand(newSeed()),
    log:         baseLog.With("service", "MonsterRoller"),
  }
}

// NewMonsterRollerWithSeed is for tests that need deterministic rolls.
func NewMonsterRollerWithSeed(speciesRepo repos.SpeciesRepo, seed int64, baseLog *logger.Logger) MonsterRoller {
  return &dbMonsterRoller{
    speciesRepo: speciesRepo,
    rng:         newLockedRand(seed),
    log:         baseLog.With("service", "MonsterRoller"),
  }
}

func (mr *dbMonsterRoller) Roll(ctx context.Context, params RollParams) (*RolledMonster, error) {
  settings := params.Settings
  if settings == nil {
    settings = ParseSourceSettings(nil)
  }

  var rng randSource = mr.rng
  if params.Seed != 0 {
    rng = rand.New(rand.NewSource(params.Seed))
  }

  tierRoll := rng.Float64()
  if params.ForceLegend {
    tierRoll = 0
  } else if params.ForceTier != "" {
    tierRoll = tierRollFor(params.ForceTier)
  }
  selection := SelectTier(tierRoll, rng.Float64(), settings)
  if len(params.TypePool) > 0 {
    selection.Filter.Types = params.TypePool
  }

  candidates, err := mr.speciesRepo.FindCandidates(ctx, nil, selection.Filter)
  if err != nil {
    return nil, err
  }
  if len(candidates) == 0 && len(selection.Filter.Types) > 0 {
    // A narrow type pool can empty out rare tiers; retry without it.
    selection.Filter.Types = nil
    candidates, err = mr.speciesRepo.FindCandidates(ctx, nil, selection.Filter)
    if err != nil {
      return nil, err
    }
  }
  if len(candidates) == 0 {
    mr.log.Warn("tier has no candidates", "tier", selection.Tier)
    return nil, ErrNoCandidates
  }

  species := candidates[rng.Intn(len(candidates))]
  level := selection.MinLevel + rng.Intn(selection.MaxLevel-selection.MinLevel+1)

  return &RolledMonster{
    Species: species,
    Level:   level,
    Tier:    selection.Tier,
    Rarity:  DeriveRarity(&species, selection.Rarity),
  }, nil
}

func tierRollFor(tier string) float64 {
  switch tier {
  case TierLegendary:
    return 0
  case TierExceptional:
    return 0.0005
  case TierEvolved:
    return 0.01
  }
  return 0.5
}

// randSource is the slice of math/rand both the shared lockedRand and
// a per-roll seeded *rand.Rand satisfy.
type randSource interface {
  Float64() float64
  Intn(n int) int
}

// lockedRand is a mutex-guarded math/rand.Rand so a single roller can
// serve concurrent requests.
type lockedRand struct {
  mu  sync.Mutex
  rng *rand.Rand
}

func newLockedRand(seed int64) *lockedRand {
  return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (lr *lockedRand) Float64() float64 {
  lr.mu.Lock()
  defer lr.mu.Unlock()
  return lr.rng.Float64()
}

func (lr *lockedRand) Intn(n int) int {
  lr.mu.Lock()
  defer lr.mu.Unlock()
  return lr.rng.Intn(n)
}

// newSeed draws a seed from the OS entropy pool so restarts never
// replay a roll sequence.
func newSeed() int64 {
  var buf [8]byte
  if _, err := crand.Read(buf[:]); err != nil {
    return time.Now().UnixNano()
  }
  return int64(binary.LittleEndian.Uint64(buf[:]))
}
