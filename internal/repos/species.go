package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/types"
)

// SpeciesFilter narrows candidate species for a roll. Zero-valued fields
// are ignored; slices filter with IN semantics.
type SpeciesFilter struct {
  Sources     []string
  Stages      []string
  Ranks       []string
  Types       []string
  IsLegendary *bool
  IsMythical  *bool
}

type SpeciesRepo interface {
  FindCandidates(ctx context.Context, tx *gorm.DB, filter SpeciesFilter) ([]types.Species, error)
}

type speciesRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSpeciesRepo(db *gorm.DB, baseLog *logger.Logger) SpeciesRepo {
  repoLog := baseLog.With("repo", "SpeciesRepo")
  return &speciesRepo{db: db, log: repoLog}
}

func (sr *speciesRepo) FindCandidates(ctx context.Context, tx *gorm.DB, filter SpeciesFilter) ([]types.Species, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  query := transaction.WithContext(ctx).Model(&types.Species{})
  if len(filter.Sources) > 0 {
    query = query.Where("source IN ?", filter.Sources)
  }
  // Stage and rank are alternatives: rankless lines match on stage,
  // stageless lines on rank.
  switch {
  case len(filter.Stages) > 0 && len(filter.Ranks) > 0:
    query = query.Where("stage IN ? OR rank IN ?", filter.Stages, filter.Ranks)
  case len(filter.Stages) > 0:
    query = query.Where("stage IN ?", filter.Stages)
  case len(filter.Ranks) > 0:
    query = query.Where("rank IN ?", filter.Ranks)
  }
  if len(filter.Types) > 0 {
    query = query.Where("type1 IN ? OR type2 IN ?", filter.Types, filter.Types)
  }
  if filter.IsLegendary != nil {
    query = query.Where("is_legendary = ?", *filter.IsLegendary)
  }
  if filter.IsMythical != nil {
    query = query.Where("is_mythical = ?", *filter.IsMythical)
  }

  var results []types.Species
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
