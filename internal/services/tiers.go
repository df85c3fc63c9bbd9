package services

import (
  "math"

  "github.com/yungbote/focustown-backend/internal/repos"
  "github.com/yungbote/focustown-backend/internal/types"
)

// Tier names, rarest first.
const (
  TierLegendary   = "legendary"
  TierExceptional = "exceptional"
  TierEvolved     = "evolved"
  TierNormal      = "normal"
)

// TierSelection describes the candidate pool a roll should draw from
// plus its level band and the presumed rarity before the rolled
// species is inspected.
type TierSelection struct {
  Tier     string
  Filter   repos.SpeciesFilter
  MinLevel int
  MaxLevel int
  Rarity   types.Rarity
}

func boolPtr(v bool) *bool { return &v }

// tierEntry is one rung of the ladder: the first rung whose threshold
// exceeds the roll wins.
type tierEntry struct {
  threshold float64
  build     func(subRoll float64, settings *SourceSettings) TierSelection
}

var tierLadder = []tierEntry{
  {threshold: 0.0001, build: legendarySelection},
  {threshold: 0.001, build: exceptionalSelection},
  {threshold: 0.02, build: evolvedSelection},
  {threshold: math.Inf(1), build: normalSelection},
}

// SelectTier maps a uniform roll to a tier and candidate filter by
// walking the ladder in order. Every tier's source pool is intersected
// with the user's enabled sources; an empty intersection falls back to
// the full enabled set.
func SelectTier(roll float64, subRoll float64, settings *SourceSettings) TierSelection {
  for _, entry := range tierLadder {
    if roll < entry.threshold {
      return entry.build(subRoll, settings)
    }
  }
  return normalSelection(subRoll, settings)
}

func legendarySelection(_ float64, settings *SourceSettings) TierSelection {
  return TierSelection{
    Tier: TierLegendary,
    Filter: repos.SpeciesFilter{
      Sources:     sourcePool([]string{"pokemon"}, settings),
      Stages:      []string{"Base", "Stage 1", "Stage 2"},
      IsLegendary: boolPtr(true),
    },
    MinLevel: 10,
    MaxLevel: 25,
    Rarity:   types.RarityLegendary,
  }
}

// exceptionalSelection splits the band into equal thirds across
// mythical pokemon, Ultimate digimon, and S-rank yokai; a third whose
// source the user has disabled is re-targeted to an enabled branch.
func exceptionalSelection(subRoll float64, settings *SourceSettings) TierSelection {
  selection := TierSelection{
    Tier:     TierExceptional,
    MinLevel: 8,
    MaxLevel: 20,
    Rarity:   types.RarityMythical,
  }
  switch exceptionalBranch(subRoll, settings) {
  case "digimon":
    selection.Filter = repos.SpeciesFilter{
      Sources: sourcePool([]string{"digimon"}, settings),
      Ranks:   []string{"Ultimate"},
    }
  case "yokai":
    selection.Filter = repos.SpeciesFilter{
      Sources: sourcePool([]string{"yokai"}, settings),
      Ranks:   []string{"S"},
    }
  default:
    selection.Filter = repos.SpeciesFilter{
      Sources:    sourcePool([]string{"pokemon"}, settings),
      IsMythical: boolPtr(true),
    }
  }
  return selection
}

func evolvedSelection(_ float64, settings *SourceSettings) TierSelection {
  return TierSelection{
    Tier: TierEvolved,
    Filter: repos.SpeciesFilter{
      Sources: settings.EnabledSources(),
      Stages:  []string{"Stage 1", "Stage 2"},
      Ranks:   []string{"Child", "Adult", "Perfect", "A", "B"},
    },
    MinLevel: 5,
    MaxLevel: 12,
    Rarity:   types.RarityEpic,
  }
}

func normalSelection(_ float64, settings *SourceSettings) TierSelection {
  return TierSelection{
    Tier: TierNormal,
    Filter: repos.SpeciesFilter{
      Sources: settings.EnabledSources(),
      Stages:  []string{"Base", "Doesn't Evolve"},
      Ranks:   []string{"Baby I", "Baby II", "Child", "E", "D", "C"},
    },
    MinLevel: 1,
    MaxLevel: 5,
    Rarity:   types.RarityRare,
  }
}

// sourcePool intersects a tier's allowed source pools with the user's
// enabled sources. An empty intersection yields the full enabled set so
// a disabled pool never pins the roll to sources the user turned off.
func sourcePool(allowed []string, settings *SourceSettings) []string {
  enabled := settings.EnabledSources()
  var pool []string
  for _, name := range allowed {
    for _, on := range enabled {
      if name == on {
        pool = append(pool, name)
        break
      }
    }
  }
  if len(pool) == 0 {
    return enabled
  }
  return pool
}

func exceptionalBranch(subRoll float64, settings *SourceSettings) string {
  branch := "pokemon"
  switch {
  case subRoll < 1.0/3.0:
    branch = "pokemon"
  case subRoll < 2.0/3.0:
    branch = "digimon"
  default:
    branch = "yokai"
  }
  if settings.Has(branch) {
    return branch
  }
  // Re-target a disabled branch to the first enabled one that has an
  // exceptional pool.
  for _, name := range settings.EnabledSources() {
    switch name {
    case "pokemon", "digimon", "yokai":
      return name
    }
  }
  return "pokemon"
}

// DeriveRarity re-derives the reward rarity from the rolled species'
// own flags, which wins over the tier's presumed rarity.
func DeriveRarity(species *types.Species, fallback types.Rarity) types.Rarity {
  switch {
  case species.IsLegendary:
    return types.RarityLegendary
  case species.IsMythical, species.Rank == "Ultimate", species.Rank == "S":
    return types.RarityMythical
  case species.Stage == "Stage 2", species.Rank == "Perfect", species.Rank == "A":
    return types.RarityEpic
  case species.Stage == "Stage 1", species.Rank == "Adult", species.Rank == "B":
    return types.RarityRare
  }
  return fallback
}
