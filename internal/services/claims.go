package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  redisclient "github.com/yungbote/focustown-backend/internal/clients/redis"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/repos"
  "github.com/yungbote/focustown-backend/internal/types"
)

var (
  ErrAlreadyClaimed = errors.New("reward already claimed")
  ErrClaimContended = errors.New("reward claim in progress")
)

const claimLockTTL = 30 * time.Second

// ClaimResult reports the effect a claim had on the trainer's account.
type ClaimResult struct {
  Reward     *types.Reward  `json:"reward"`
  NewBalance int            `json:"new_balance,omitempty"`
  Monster    *types.Monster `json:"monster,omitempty"`
  Message    string         `json:"message"`
}

// ClaimService applies a reward to a trainer exactly once. Claims of
// the same reward race through a lock keyed on the reward id; losers
// see ErrClaimContended, repeats see ErrAlreadyClaimed. nameOverride
// renames a monster reward on claim and is ignored elsewhere.
type ClaimService interface {
  Apply(ctx context.Context, trainerID uuid.UUID, reward *types.Reward, nameOverride string) (*ClaimResult, error)
}

type claimService struct {
  db            *gorm.DB
  trainerRepo   repos.TrainerRepo
  monsterRepo   repos.MonsterRepo
  inventoryRepo repos.InventoryRepo
  initializer   MonsterInitializer
  lock          redisclient.ClaimLock
  rng           *lockedRand
  log           *logger.Logger
}

func NewClaimService(
  db *gorm.DB,
  trainerRepo repos.TrainerRepo,
  monsterRepo repos.MonsterRepo,
  inventoryRepo repos.InventoryRepo,
  initializer MonsterInitializer,
  lock redisclient.ClaimLock,
  baseLog *logger.Logger,
) ClaimService {
  return &claimService{
    db:            db,
    trainerRepo:   trainerRepo,
    monsterRepo:   monsterRepo,
    inventoryRepo: inventoryRepo,
    initializer:   initializer,
    lock:          lock,
    rng:           newLockedRand(newSeed()),
    log:           baseLog.With("service", "ClaimService"),
  }
}

func (cs *claimService) Apply(ctx context.Context, trainerID uuid.UUID, reward *types.Reward, nameOverride string) (*ClaimResult, error) {
  if reward.Claimed {
    return nil, ErrAlreadyClaimed
  }

  acquired, err := cs.lock.Acquire(ctx, reward.ID, claimLockTTL)
  if err != nil {
    return nil, err
  }
  if !acquired {
    return nil, ErrClaimContended
  }
  defer func() { _ = cs.lock.Release(ctx, reward.ID) }()

  // Re-check under the lock: a concurrent claimant may have won while
  // we waited.
  if reward.Claimed {
    return nil, ErrAlreadyClaimed
  }

  var result *ClaimResult
  err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    var txErr error
    switch reward.Type {
    case types.RewardCoin:
      result, txErr = cs.applyCoin(ctx, tx, trainerID, reward)
    case types.RewardItem:
      result, txErr = cs.applyItem(ctx, tx, trainerID, reward)
    case types.RewardLevel:
      result, txErr = cs.applyLevel(ctx, tx, trainerID, reward)
    case types.RewardMonster:
      result, txErr = cs.applyMonster(ctx, tx, trainerID, reward, nameOverride)
    default:
      txErr = fmt.Errorf("unknown reward type %q", reward.Type)
    }
    return txErr
  })
  if err != nil {
    return nil, err
  }

  reward.MarkClaimed(trainerID)
  result.Reward = reward
  return result, nil
}

func (cs *claimService) applyCoin(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, reward *types.Reward) (*ClaimResult, error) {
  trainer, err := cs.trainerRepo.GetByID(ctx, tx, trainerID)
  if err != nil {
    return nil, err
  }
  newBalance := trainer.CurrencyAmount + reward.Data.Amount
  newTotal := trainer.TotalEarnedCurrency + reward.Data.Amount
  if err := cs.trainerRepo.UpdateCurrency(ctx, tx, trainerID, newBalance, newTotal); err != nil {
    return nil, err
  }
  return &ClaimResult{
    NewBalance: newBalance,
    Message:    fmt.Sprintf("Received %d coins!", reward.Data.Amount),
  }, nil
}

func (cs *claimService) applyItem(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, reward *types.Reward) (*ClaimResult, error) {
  category := reward.Data.Category
  if category == "" {
    category = "items"
  }

  bucket, err := cs.inventoryRepo.GetBucket(ctx, tx, trainerID, category)
  if err != nil {
    return nil, err
  }
  if bucket == nil {
    items := map[string]int{reward.Data.Name: reward.Data.Quantity}
    if _, err := cs.inventoryRepo.CreateBucket(ctx, tx, trainerID, category, items); err != nil {
      return nil, err
    }
  } else {
    items := map[string]int{}
    if len(bucket.Items) > 0 {
      if err := json.Unmarshal(bucket.Items, &items); err != nil {
        return nil, fmt.Errorf("decode inventory bucket %s: %w", bucket.ID, err)
      }
    }
    items[reward.Data.Name] += reward.Data.Quantity
    if err := cs.inventoryRepo.ReplaceBucket(ctx, tx, bucket.ID, items); err != nil {
      return nil, err
    }
  }
  return &ClaimResult{
    Message: fmt.Sprintf("Received %dx %s!", reward.Data.Quantity, reward.Data.Name),
  }, nil
}

func (cs *claimService) applyLevel(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, reward *types.Reward) (*ClaimResult, error) {
  levels := reward.Data.Levels
  if levels < 1 {
    levels = 1
  }

  if reward.Data.ForMonster {
    target := reward.Data.MonsterID
    if target == nil {
      owned, err := cs.monsterRepo.GetByTrainerID(ctx, tx, trainerID)
      if err != nil {
        return nil, err
      }
      if len(owned) > 0 {
        id := owned[cs.rng.Intn(len(owned))].ID
        target = &id
      }
    }
    if target != nil {
      monster, err := cs.initializer.LevelUp(ctx, tx, *target, levels)
      if err != nil {
        return nil, err
      }
      return &ClaimResult{
        Monster: monster,
        Message: fmt.Sprintf("%s grew %d level(s)!", monster.Name, levels),
      }, nil
    }
    // No monsters yet; the levels land on the trainer instead.
  }

  trainer, err := cs.trainerRepo.GetByID(ctx, tx, trainerID)
  if err != nil {
    return nil, err
  }
  newLevel := trainer.Level + levels
  if err := cs.trainerRepo.UpdateLevel(ctx, tx, trainerID, newLevel); err != nil {
    return nil, err
  }
  return &ClaimResult{
    Message: fmt.Sprintf("Trainer gained %d level(s)!", levels),
  }, nil
}

func (cs *claimService) applyMonster(ctx context.Context, tx *gorm.DB, trainerID uuid.UUID, reward *types.Reward, nameOverride string) (*ClaimResult, error) {
  trainer, err := cs.trainerRepo.GetByID(ctx, tx, trainerID)
  if err != nil {
    return nil, err
  }

  // An existing monster id means a re-parent, not a new row.
  if reward.Data.MonsterID != nil {
    monster, err := cs.monsterRepo.GetByID(ctx, tx, *reward.Data.MonsterID)
    if err != nil {
      return nil, err
    }
    monster.TrainerID = trainerID
    if nameOverride != "" {
      monster.Name = nameOverride
    }
    if err := cs.monsterRepo.Update(ctx, tx, monster); err != nil {
      return nil, err
    }
    return &ClaimResult{
      Monster: monster,
      Message: fmt.Sprintf("%s joined your team!", monster.Name),
    }, nil
  }

  rolled := &RolledMonster{
    Species: types.Species{
      Name:        reward.Data.Species1,
      Source:      reward.Data.Source,
      Type1:       reward.Data.Type1,
      Type2:       reward.Data.Type2,
      Attribute:   reward.Data.Attribute,
      Stage:       reward.Data.Stage,
      Rank:        reward.Data.Rank,
      IsLegendary: reward.Rarity == types.RarityLegendary,
      IsMythical:  reward.Rarity == types.RarityMythical,
    },
    Level:  reward.Data.Level,
    Tier:   reward.Data.Tier,
    Rarity: reward.Rarity,
  }
  if rolled.Level < 1 {
    rolled.Level = 1
  }

  whereMet := reward.Data.Description
  if whereMet == "" {
    whereMet = "Game Corner"
  }
  monster, err := cs.initializer.Materialize(ctx, tx, trainerID, trainer.UserID, rolled, whereMet)
  if err != nil {
    return nil, err
  }
  if nameOverride != "" {
    monster.Name = nameOverride
    if err := cs.monsterRepo.Update(ctx, tx, monster); err != nil {
      return nil, err
    }
  }
  return &ClaimResult{
    Monster: monster,
    Message: fmt.Sprintf("Caught %s (Lv. %d)!", monster.Name, monster.Level),
  }, nil
}
