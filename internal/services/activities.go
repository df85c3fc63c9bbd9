package services

import (
  "context"
  "errors"
  "fmt"
  "sort"
  "strings"
  "time"
  "github.com/google/uuid"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/repos"
  "github.com/yungbote/focustown-backend/internal/types"
)

var (
  ErrUnknownLocation     = errors.New("unknown location or activity")
  ErrRewardNotFound      = errors.New("reward not found in session")
  ErrSessionNotCompleted = errors.New("activity session not completed yet")
)

// RewardConfig tunes what a completed activity at one location can pay
// out. Coin is unconditional; the other categories roll independently.
type RewardConfig struct {
  BaseCoinAmount          int
  CoinVariance            int
  ItemChance              float64
  ItemCategory            string
  ItemPool                []string
  LevelChance             float64
  MonsterChance           float64
  AllowedMonsterTypes     []string
  GuaranteedMonsterOnHard bool
  LegendaryChance         float64
}

var rewardConfigs = map[string]RewardConfig{
  "garden/tend": {
    BaseCoinAmount:      100,
    CoinVariance:        100,
    ItemChance:          0.7,
    ItemCategory:        "berries",
    ItemPool:            []string{"Oran Berry", "Pecha Berry", "Sitrus Berry", "Leppa Berry"},
    LevelChance:         0.3,
    MonsterChance:       0.3,
    AllowedMonsterTypes: []string{"Grass", "Bug", "Normal", "Flying", "Ground"},
  },
  "farm/work": {
    BaseCoinAmount:      100,
    CoinVariance:        100,
    ItemChance:          0.7,
    ItemCategory:        "eggs",
    ItemPool:            []string{"Plain Egg", "Speckled Egg", "Golden Egg"},
    LevelChance:         0.3,
    MonsterChance:       0.3,
    AllowedMonsterTypes: []string{"Normal", "Ground", "Fighting", "Fire"},
  },
  "pirates_dock/fishing": {
    BaseCoinAmount:          120,
    CoinVariance:            150,
    ItemChance:              0.2,
    ItemCategory:            "items",
    ItemPool:                []string{"Pearl", "Big Pearl", "Fishing Lure"},
    LevelChance:             0.25,
    MonsterChance:           0.8,
    AllowedMonsterTypes:     []string{"Water", "Ice", "Dragon"},
    GuaranteedMonsterOnHard: true,
    LegendaryChance:         0.001,
  },
  "pirates_dock/swab": {
    BaseCoinAmount:      120,
    CoinVariance:        150,
    ItemChance:          0.8,
    ItemCategory:        "items",
    ItemPool:            []string{"Old Rope", "Ship Polish", "Sea Salt"},
    LevelChance:         0.25,
    MonsterChance:       0.2,
    AllowedMonsterTypes: []string{"Water", "Steel", "Fighting", "Dark"},
  },
}

// GetRewardConfig exposes the tuning table for a location/activity
// pair.
func GetRewardConfig(location, activity string) (RewardConfig, bool) {
  config, ok := rewardConfigs[promptKey(location, activity)]
  return config, ok
}

// LocationStatus summarizes one location for the town map.
type LocationStatus struct {
  Location      string                 `json:"location"`
  Activities    []string               `json:"activities"`
  ActiveSession *types.ActivitySession `json:"active_session,omitempty"`
}

// StartedActivity is what a player gets back when they begin a task.
type StartedActivity struct {
  Session *types.ActivitySession `json:"session"`
  Prompt  Prompt                 `json:"prompt"`
}

// CompletedActivity carries a completed session together with its
// freshly generated, still-unclaimed rewards.
type CompletedActivity struct {
  Session *types.ActivitySession `json:"session"`
  Rewards []types.Reward         `json:"rewards"`
}

// ActivityService runs the location-activity loop: hand out a prompt,
// complete the session into a reward batch, and let the player claim
// each reward.
type ActivityService interface {
  StartActivity(ctx context.Context, userID uuid.UUID, location, activity string) (*StartedActivity, error)
  CompleteActivity(ctx context.Context, userID, sessionID uuid.UUID) (*CompletedActivity, error)
  ClaimReward(ctx context.Context, userID, sessionID uuid.UUID, rewardID string, trainerID uuid.UUID, nameOverride string) (*ClaimResult, error)
  GetSession(ctx context.Context, sessionID uuid.UUID) (*types.ActivitySession, error)
  GetLocationStatus(ctx context.Context, userID uuid.UUID, location string) (*LocationStatus, error)
  ClearSessions(ctx context.Context, userID uuid.UUID) (int64, error)
}

type activityService struct {
  store       *SessionStore
  prompts     *PromptCatalog
  userRepo    repos.UserRepo
  trainerRepo repos.TrainerRepo
  roller      MonsterRoller
  claims      ClaimService
  rng         *lockedRand
  log         *logger.Logger
}

func NewActivityService(
  store *SessionStore,
  prompts *PromptCatalog,
  userRepo repos.UserRepo,
  trainerRepo repos.TrainerRepo,
  roller MonsterRoller,
  claims ClaimService,
  baseLog *logger.Logger,
) ActivityService {
  return &activityService{
    store:       store,
    prompts:     prompts,
    userRepo:    userRepo,
    trainerRepo: trainerRepo,
    roller:      roller,
    claims:      claims,
    rng:         newLockedRand(newSeed()),
    log:         baseLog.With("service", "ActivityService"),
  }
}

func (as *activityService) StartActivity(ctx context.Context, userID uuid.UUID, location, activity string) (*StartedActivity, error) {
  if _, ok := GetRewardConfig(location, activity); !ok {
    return nil, ErrUnknownLocation
  }

  // Starting is idempotent per location: an existing active session is
  // returned instead of opening a second one.
  if existing, err := as.store.ActiveAt(ctx, userID, location); err != nil {
    return nil, err
  } else if existing != nil {
    if existing.Activity != activity {
      return nil, ErrSessionActive
    }
    prompt, ok := as.prompts.ByID(location, activity, existing.PromptID)
    if !ok {
      prompt = as.prompts.Random(location, activity, as.rng.Float64())
    }
    return &StartedActivity{Session: existing, Prompt: prompt}, nil
  }

  prompt := as.prompts.Random(location, activity, as.rng.Float64())
  session := &types.ActivitySession{
    SessionID:  uuid.New(),
    UserID:     userID,
    Location:   location,
    Activity:   activity,
    PromptID:   prompt.ID,
    Difficulty: prompt.Difficulty,
    Status:     types.SessionStatusActive,
    CreatedAt:  time.Now().UTC(),
  }
  if err := as.store.Put(ctx, session); err != nil {
    return nil, err
  }
  as.log.Info("activity started",
    "userID", userID,
    "location", location,
    "activity", activity,
    "sessionID", session.SessionID)
  return &StartedActivity{Session: session, Prompt: prompt}, nil
}

func (as *activityService) CompleteActivity(ctx context.Context, userID, sessionID uuid.UUID) (*CompletedActivity, error) {
  session, err := as.store.Get(ctx, sessionID)
  if err != nil {
    return nil, err
  }
  if session.UserID != userID {
    return nil, repos.ErrSessionNotFound
  }
  if session.Status == types.SessionStatusCompleted {
    return nil, ErrSessionCompleted
  }

  config, ok := GetRewardConfig(session.Location, session.Activity)
  if !ok {
    return nil, ErrUnknownLocation
  }

  user, err := as.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  trainers, err := as.trainerRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  if len(trainers) == 0 {
    return nil, ErrNoTrainers
  }
  settings := ParseSourceSettings(user.RollerSettings)

  rewards := as.generateRewards(ctx, session, config, settings, trainers)
  if err := as.store.Complete(ctx, session, rewards); err != nil {
    return nil, err
  }
  as.log.Info("activity completed",
    "sessionID", sessionID,
    "location", session.Location,
    "rewards", len(rewards))
  return &CompletedActivity{Session: session, Rewards: rewards}, nil
}

func (as *activityService) generateRewards(
  ctx context.Context,
  session *types.ActivitySession,
  config RewardConfig,
  settings *SourceSettings,
  trainers []*types.Trainer,
) []types.Reward {
  pickTrainer := func() uuid.UUID {
    return trainers[as.rng.Intn(len(trainers))].ID
  }

  var rewards []types.Reward

  // Coin pays out unconditionally.
  coinTrainer := pickTrainer()
  rewards = append(rewards, types.Reward{
    ID:         types.NewRewardID(types.RewardCoin),
    Type:       types.RewardCoin,
    Rarity:     types.RarityCommon,
    AssignedTo: &coinTrainer,
    Data: types.RewardData{
      Amount: config.BaseCoinAmount + as.rng.Intn(config.CoinVariance),
      Title:  "Coins",
    },
  })

  if as.rng.Float64() < config.ItemChance && len(config.ItemPool) > 0 {
    name := config.ItemPool[as.rng.Intn(len(config.ItemPool))]
    quantity := 1 + as.rng.Intn(3)
    itemTrainer := pickTrainer()
    rewards = append(rewards, types.Reward{
      ID:         types.NewRewardID(types.RewardItem),
      Type:       types.RewardItem,
      Rarity:     types.RarityUncommon,
      AssignedTo: &itemTrainer,
      Data: types.RewardData{
        Name:     name,
        Category: config.ItemCategory,
        Quantity: quantity,
        Title:    fmt.Sprintf("%dx %s", quantity, name),
      },
    })
  }

  if as.rng.Float64() < config.LevelChance {
    levels := 1 + as.rng.Intn(2)
    levelTrainer := pickTrainer()
    rewards = append(rewards, types.Reward{
      ID:         types.NewRewardID(types.RewardLevel),
      Type:       types.RewardLevel,
      Rarity:     types.RarityUncommon,
      AssignedTo: &levelTrainer,
      Data: types.RewardData{
        Levels: levels,
        Title:  fmt.Sprintf("%d Level(s) for Trainer", levels),
      },
    })
  }

  guaranteed := config.GuaranteedMonsterOnHard && session.Difficulty == "hard"
  if guaranteed || as.rng.Float64() < config.MonsterChance {
    params := RollParams{
      Settings: settings,
      TypePool: config.AllowedMonsterTypes,
    }
    if config.LegendaryChance > 0 && as.rng.Float64() < config.LegendaryChance {
      params.ForceLegend = true
    } else {
      params.ForceTier = TierNormal
    }
    rolled, err := as.roller.Roll(ctx, params)
    if err != nil {
      as.log.Warn("monster roll failed, reward skipped",
        "sessionID", session.SessionID,
        "error", err)
    } else {
      monsterTrainer := pickTrainer()
      reward := rolledReward(rolled, monsterTrainer)
      reward.Data.Title = monsterTitle(session, guaranteed, rolled)
      reward.Data.Description = session.Location
      rewards = append(rewards, *reward)
    }
  }

  return rewards
}

func monsterTitle(session *types.ActivitySession, guaranteed bool, rolled *RolledMonster) string {
  switch {
  case session.Location == "pirates_dock" && session.Activity == "fishing" && guaranteed:
    return "Rare Water Monster"
  case session.Location == "pirates_dock" && session.Activity == "fishing":
    return "Water Monster"
  case session.Location == "garden":
    return "Grass Monster"
  case session.Location == "farm":
    return "Farm Monster"
  case rolled.Tier == TierLegendary:
    return "Legendary Monster"
  }
  return "Mystery Monster"
}

func (as *activityService) ClaimReward(ctx context.Context, userID, sessionID uuid.UUID, rewardID string, trainerID uuid.UUID, nameOverride string) (*ClaimResult, error) {
  session, err := as.store.Get(ctx, sessionID)
  if err != nil {
    return nil, err
  }
  if session.UserID != userID {
    return nil, repos.ErrSessionNotFound
  }
  if session.Status != types.SessionStatusCompleted {
    return nil, ErrSessionNotCompleted
  }

  rewards := session.RewardList()
  idx := -1
  for i := range rewards {
    if rewards[i].ID == rewardID {
      idx = i
      break
    }
  }
  if idx == -1 {
    return nil, ErrRewardNotFound
  }

  result, err := as.claims.Apply(ctx, trainerID, &rewards[idx], nameOverride)
  if err != nil {
    return nil, err
  }

  // Persist the claimed flag so replays of the same claim are rejected
  // after a restart too.
  if err := session.SetRewardList(rewards); err != nil {
    return nil, err
  }
  if err := as.store.Put(ctx, session); err != nil {
    return nil, err
  }
  return result, nil
}

func (as *activityService) GetSession(ctx context.Context, sessionID uuid.UUID) (*types.ActivitySession, error) {
  return as.store.Get(ctx, sessionID)
}

func (as *activityService) GetLocationStatus(ctx context.Context, userID uuid.UUID, location string) (*LocationStatus, error) {
  var activities []string
  for key := range rewardConfigs {
    loc, act, _ := strings.Cut(key, "/")
    if loc == location {
      activities = append(activities, act)
    }
  }
  if len(activities) == 0 {
    return nil, ErrUnknownLocation
  }
  sort.Strings(activities)

  active, err := as.store.ActiveAt(ctx, userID, location)
  if err != nil {
    return nil, err
  }
  return &LocationStatus{
    Location:      location,
    Activities:    activities,
    ActiveSession: active,
  }, nil
}

func (as *activityService) ClearSessions(ctx context.Context, userID uuid.UUID) (int64, error) {
  return as.store.ClearForUser(ctx, userID)
}
