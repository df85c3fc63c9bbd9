package services

import (
  "context"
  "errors"
  "fmt"
  "math"
  "github.com/google/uuid"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/repos"
  "github.com/yungbote/focustown-backend/internal/types"
)

var ErrNoTrainers = errors.New("user has no trainers")

// gameCornerItem is one entry of the static drop pool the slot planner
// draws item rewards from.
type gameCornerItem struct {
  Name     string
  Category string
  Rarity   string
}

var gameCornerItems = []gameCornerItem{
  {Name: "Potion", Category: "items", Rarity: "common"},
  {Name: "Super Potion", Category: "items", Rarity: "uncommon"},
  {Name: "Revive", Category: "items", Rarity: "rare"},
  {Name: "Oran Berry", Category: "berries", Rarity: "common"},
  {Name: "Sitrus Berry", Category: "berries", Rarity: "uncommon"},
  {Name: "Poke Ball", Category: "balls", Rarity: "common"},
  {Name: "Great Ball", Category: "balls", Rarity: "uncommon"},
  {Name: "Ultra Ball", Category: "balls", Rarity: "rare"},
  {Name: "Sweet Pastry", Category: "pastries", Rarity: "common"},
  {Name: "Deluxe Pastry", Category: "pastries", Rarity: "uncommon"},
}

// GameCornerResult is a generation run's full outcome: the planned
// slots plus the effect each auto-claim had.
type GameCornerResult struct {
  Rewards []types.Reward `json:"rewards"`
  Claims  []*ClaimResult `json:"claims"`
}

// GameCornerService plans a gambling-style reward batch from session
// stats and immediately claims every slot for its assigned trainer.
type GameCornerService interface {
  GenerateRewards(ctx context.Context, userID uuid.UUID, stats SessionStats, forceMonsterRoll bool) (*GameCornerResult, error)
}

type gameCornerService struct {
  userRepo    repos.UserRepo
  trainerRepo repos.TrainerRepo
  roller      MonsterRoller
  claims      ClaimService
  rng         *lockedRand
  log         *logger.Logger
}

func NewGameCornerService(
  userRepo repos.UserRepo,
  trainerRepo repos.TrainerRepo,
  roller MonsterRoller,
  claims ClaimService,
  baseLog *logger.Logger,
) GameCornerService {
  return &gameCornerService{
    userRepo:    userRepo,
    trainerRepo: trainerRepo,
    roller:      roller,
    claims:      claims,
    rng:         newLockedRand(newSeed()),
    log:         baseLog.With("service", "GameCornerService"),
  }
}

func (gc *gameCornerService) GenerateRewards(ctx context.Context, userID uuid.UUID, stats SessionStats, forceMonsterRoll bool) (*GameCornerResult, error) {
  if err := stats.Validate(); err != nil {
    return nil, err
  }

  user, err := gc.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  trainers, err := gc.trainerRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  if len(trainers) == 0 {
    return nil, ErrNoTrainers
  }
  settings := ParseSourceSettings(user.RollerSettings)

  multipliers := ComputeMultipliers(stats)
  baseCoin := BaseCoinAmount(stats, multipliers)

  baseSlots := int(math.Max(2, math.Floor(1+float64(stats.SessionsComplete)*0.8)))
  // Every full half hour of focus guarantees at least one bonus slot.
  bonusSlots := 0
  if span := stats.TotalMinutes / 30; span >= 1 {
    bonusSlots = 1 + gc.rng.Intn(span)
  }
  totalSlots := baseSlots + bonusSlots

  coinChance := math.Min(2.0, 0.6+multipliers.Total*0.2)
  itemChance := math.Min(1.8, 0.4+multipliers.Total*0.15)
  levelChance := math.Min(1.5, 0.3+multipliers.Total*0.1)
  monsterChance := math.Min(0.8, 0.05+multipliers.Total*0.08)

  gc.log.Info("planning game corner batch",
    "userID", userID,
    "slots", totalSlots,
    "multiplier", multipliers.Total)

  pickTrainer := func() uuid.UUID {
    return trainers[gc.rng.Intn(len(trainers))].ID
  }

  var rewards []types.Reward

  if forceMonsterRoll {
    if reward, err := gc.monsterReward(ctx, settings, pickTrainer()); err == nil {
      rewards = append(rewards, *reward)
    }
  }
  // Admins always receive at least one monster, which keeps the rare
  // tiers testable without grinding rolls.
  if user.IsAdmin && !forceMonsterRoll {
    if reward, err := gc.monsterReward(ctx, settings, pickTrainer()); err == nil {
      rewards = append(rewards, *reward)
    }
  }

  for slot := 0; slot < totalSlots; slot++ {
    roll := gc.rng.Float64()
    switch {
    case slot == 0 || roll < coinChance/float64(totalSlots):
      rewards = append(rewards, gc.coinReward(baseCoin, pickTrainer()))
    case roll < (coinChance+itemChance)/float64(totalSlots):
      rewards = append(rewards, gc.itemReward(stats, pickTrainer()))
    case roll < (coinChance+itemChance+levelChance)/float64(totalSlots):
      rewards = append(rewards, gc.levelReward(stats, pickTrainer()))
    case roll < (coinChance+itemChance+levelChance+monsterChance)/float64(totalSlots):
      reward, err := gc.monsterReward(ctx, settings, pickTrainer())
      if err != nil {
        gc.log.Warn("monster roll failed, slot skipped", "error", err)
        continue
      }
      rewards = append(rewards, *reward)
    }
  }

  if len(rewards) == 0 {
    rewards = append(rewards, gc.coinReward(baseCoin, pickTrainer()))
  }

  // Game corner rewards are pre-committed gambles; claim them all now
  // in order. A failing claim leaves that reward unclaimed and never
  // aborts its siblings.
  result := &GameCornerResult{Rewards: rewards}
  for i := range result.Rewards {
    reward := &result.Rewards[i]
    claim, err := gc.claims.Apply(ctx, *reward.AssignedTo, reward, "")
    if err != nil {
      gc.log.Warn("auto-claim failed, reward left unclaimed",
        "rewardID", reward.ID,
        "type", reward.Type,
        "error", err)
      continue
    }
    result.Claims = append(result.Claims, claim)
  }
  return result, nil
}

func (gc *gameCornerService) coinReward(baseCoin int, trainerID uuid.UUID) types.Reward {
  // Each coin slot swings between 30% and 300% of the base payout.
  gamble := 0.3 + gc.rng.Float64()*2.7
  amount := int(math.Floor(float64(baseCoin) * gamble))
  if amount < 1 {
    amount = 1
  }
  return types.Reward{
    ID:         types.NewRewardID(types.RewardCoin),
    Type:       types.RewardCoin,
    Rarity:     types.RarityCommon,
    AssignedTo: &trainerID,
    Data: types.RewardData{
      Amount: amount,
      Title:  "Coins",
    },
  }
}

func (gc *gameCornerService) itemReward(stats SessionStats, trainerID uuid.UUID) types.Reward {
  item := gameCornerItems[gc.rng.Intn(len(gameCornerItems))]
  low, high := ItemQuantityRange(item.Rarity, DropScaling(stats))
  if high < low {
    high = low
  }
  quantity := low + gc.rng.Intn(high-low+1)

  return types.Reward{
    ID:         types.NewRewardID(types.RewardItem),
    Type:       types.RewardItem,
    Rarity:     types.Rarity(item.Rarity),
    AssignedTo: &trainerID,
    Data: types.RewardData{
      Name:     item.Name,
      Category: item.Category,
      Quantity: quantity,
      Title:    fmt.Sprintf("%dx %s", quantity, item.Name),
    },
  }
}

func (gc *gameCornerService) levelReward(stats SessionStats, trainerID uuid.UUID) types.Reward {
  levels := 1 + gc.rng.Intn(MaxLevelGain(DropScaling(stats)))
  forMonster := gc.rng.Float64() < 0.4

  title := fmt.Sprintf("%d Level(s) for Trainer", levels)
  if forMonster {
    title = fmt.Sprintf("%d Level(s) for Monster", levels)
  }
  return types.Reward{
    ID:         types.NewRewardID(types.RewardLevel),
    Type:       types.RewardLevel,
    Rarity:     types.RarityUncommon,
    AssignedTo: &trainerID,
    Data: types.RewardData{
      Levels:     levels,
      ForMonster: forMonster,
      Title:      title,
    },
  }
}

func (gc *gameCornerService) monsterReward(ctx context.Context, settings *SourceSettings, trainerID uuid.UUID) (*types.Reward, error) {
  rolled, err := gc.roller.Roll(ctx, RollParams{Settings: settings})
  if err != nil {
    return nil, err
  }
  return rolledReward(rolled, trainerID), nil
}

// rolledReward packs a rolled monster into a claimable reward payload.
func rolledReward(rolled *RolledMonster, trainerID uuid.UUID) *types.Reward {
  species := rolled.Species
  return &types.Reward{
    ID:         types.NewRewardID(types.RewardMonster),
    Type:       types.RewardMonster,
    Rarity:     rolled.Rarity,
    AssignedTo: &trainerID,
    Data: types.RewardData{
      Species1:  species.Name,
      Type1:     species.Type1,
      Type2:     species.Type2,
      Attribute: species.Attribute,
      Level:     rolled.Level,
      Source:    species.Source,
      Stage:     species.Stage,
      Rank:      species.Rank,
      Tier:      rolled.Tier,
      IsSpecial: rolled.Tier == TierLegendary || rolled.Tier == TierExceptional,
      Title:     species.Name,
    },
  }
}
