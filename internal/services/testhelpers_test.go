package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/focustown-backend/internal/logger"
	"github.com/yungbote/focustown-backend/internal/repos"
	"github.com/yungbote/focustown-backend/internal/types"
)

func testLogger() *logger.Logger {
	return logger.NewNop()
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

type fakeTrainerRepo struct {
	mu       sync.Mutex
	trainers map[uuid.UUID]*types.Trainer
}

func newFakeTrainerRepo(trainers ...*types.Trainer) *fakeTrainerRepo {
	f := &fakeTrainerRepo{trainers: map[uuid.UUID]*types.Trainer{}}
	for _, tr := range trainers {
		f.trainers[tr.ID] = tr
	}
	return f
}

func (f *fakeTrainerRepo) GetByID(_ context.Context, _ *gorm.DB, trainerID uuid.UUID) (*types.Trainer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tr, ok := f.trainers[trainerID]
	if !ok {
		return nil, repos.ErrTrainerNotFound
	}
	cp := *tr
	return &cp, nil
}

func (f *fakeTrainerRepo) GetByUserID(_ context.Context, _ *gorm.DB, userID uuid.UUID) ([]*types.Trainer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Trainer
	for _, tr := range f.trainers {
		if tr.UserID == userID {
			cp := *tr
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTrainerRepo) UpdateCurrency(_ context.Context, _ *gorm.DB, trainerID uuid.UUID, newBalance, newTotalEarned int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tr, ok := f.trainers[trainerID]
	if !ok {
		return repos.ErrTrainerNotFound
	}
	tr.CurrencyAmount = newBalance
	tr.TotalEarnedCurrency = newTotalEarned
	return nil
}

func (f *fakeTrainerRepo) UpdateLevel(_ context.Context, _ *gorm.DB, trainerID uuid.UUID, newLevel int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tr, ok := f.trainers[trainerID]
	if !ok {
		return repos.ErrTrainerNotFound
	}
	tr.Level = newLevel
	return nil
}

type fakeMonsterRepo struct {
	mu       sync.Mutex
	monsters map[uuid.UUID]*types.Monster
}

func newFakeMonsterRepo(monsters ...*types.Monster) *fakeMonsterRepo {
	f := &fakeMonsterRepo{monsters: map[uuid.UUID]*types.Monster{}}
	for _, m := range monsters {
		f.monsters[m.ID] = m
	}
	return f
}

func (f *fakeMonsterRepo) Create(_ context.Context, _ *gorm.DB, monster *types.Monster) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *monster
	f.monsters[monster.ID] = &cp
	return nil
}

func (f *fakeMonsterRepo) GetByID(_ context.Context, _ *gorm.DB, monsterID uuid.UUID) (*types.Monster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.monsters[monsterID]
	if !ok {
		return nil, repos.ErrMonsterNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMonsterRepo) GetByTrainerID(_ context.Context, _ *gorm.DB, trainerID uuid.UUID) ([]*types.Monster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Monster
	for _, m := range f.monsters {
		if m.TrainerID == trainerID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMonsterRepo) Update(_ context.Context, _ *gorm.DB, monster *types.Monster) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.monsters[monster.ID]; !ok {
		return repos.ErrMonsterNotFound
	}
	cp := *monster
	f.monsters[monster.ID] = &cp
	return nil
}

type fakeInventoryRepo struct {
	mu      sync.Mutex
	buckets map[uuid.UUID]*types.InventoryBucket
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{buckets: map[uuid.UUID]*types.InventoryBucket{}}
}

func (f *fakeInventoryRepo) GetBucket(_ context.Context, _ *gorm.DB, trainerID uuid.UUID, category string) (*types.InventoryBucket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.buckets {
		if b.TrainerID == trainerID && b.Category == category {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInventoryRepo) CreateBucket(_ context.Context, _ *gorm.DB, trainerID uuid.UUID, category string, items map[string]int) (*types.InventoryBucket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	bucket := &types.InventoryBucket{
		ID:        uuid.New(),
		TrainerID: trainerID,
		Category:  category,
		Items:     datatypes.JSON(raw),
	}
	f.buckets[bucket.ID] = bucket
	cp := *bucket
	return &cp, nil
}

func (f *fakeInventoryRepo) ReplaceBucket(_ context.Context, _ *gorm.DB, bucketID uuid.UUID, items map[string]int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.buckets[bucketID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	b.Items = datatypes.JSON(raw)
	return nil
}

func (f *fakeInventoryRepo) items(t *testing.T, trainerID uuid.UUID, category string) map[string]int {
	t.Helper()
	bucket, err := f.GetBucket(context.Background(), nil, trainerID, category)
	if err != nil {
		t.Fatalf("get bucket: %v", err)
	}
	if bucket == nil {
		return nil
	}
	out := map[string]int{}
	if err := json.Unmarshal(bucket.Items, &out); err != nil {
		t.Fatalf("decode bucket: %v", err)
	}
	return out
}

type fakeSpeciesRepo struct {
	species []types.Species
}

func (f *fakeSpeciesRepo) FindCandidates(_ context.Context, _ *gorm.DB, filter repos.SpeciesFilter) ([]types.Species, error) {
	var out []types.Species
	for _, s := range f.species {
		if !matchIn(s.Source, filter.Sources) {
			continue
		}
		if len(filter.Stages) > 0 || len(filter.Ranks) > 0 {
			stageOK := len(filter.Stages) > 0 && contains(filter.Stages, s.Stage)
			rankOK := len(filter.Ranks) > 0 && contains(filter.Ranks, s.Rank)
			if !stageOK && !rankOK {
				continue
			}
		}
		if len(filter.Types) > 0 && !matchIn(s.Type1, filter.Types) && !matchIn(s.Type2, filter.Types) {
			continue
		}
		if filter.IsLegendary != nil && s.IsLegendary != *filter.IsLegendary {
			continue
		}
		if filter.IsMythical != nil && s.IsMythical != *filter.IsMythical {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func matchIn(value string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	return contains(allowed, value)
}

func contains(list []string, value string) bool {
	for _, a := range list {
		if value == a {
			return true
		}
	}
	return false
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*types.ActivitySession
	finds    int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[uuid.UUID]*types.ActivitySession{}}
}

func (f *fakeSessionRepo) Upsert(_ context.Context, _ *gorm.DB, session *types.ActivitySession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *session
	f.sessions[session.SessionID] = &cp
	return nil
}

func (f *fakeSessionRepo) FindBySessionID(_ context.Context, _ *gorm.DB, sessionID uuid.UUID) (*types.ActivitySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, repos.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) FindActiveByUserAndLocation(_ context.Context, _ *gorm.DB, userID uuid.UUID, location string) (*types.ActivitySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.UserID == userID && s.Location == location && s.Status == types.SessionStatusActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repos.ErrSessionNotFound
}

type fakeUserRepo struct {
	users map[uuid.UUID]*types.User
}

func newFakeUserRepo(users ...*types.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[uuid.UUID]*types.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ *gorm.DB, userID uuid.UUID) (*types.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, repos.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdateRollerSettings(_ context.Context, _ *gorm.DB, userID uuid.UUID, settings datatypes.JSON) error {
	u, ok := f.users[userID]
	if !ok {
		return repos.ErrUserNotFound
	}
	u.RollerSettings = settings
	return nil
}

// fixedRoller always returns the same monster, keeping reward plans
// deterministic in tests.
type fixedRoller struct {
	rolled *RolledMonster
	err    error
}

func (f *fixedRoller) Roll(_ context.Context, _ RollParams) (*RolledMonster, error) {
	if f.err != nil {
		return nil, f.err
	}
	cp := *f.rolled
	return &cp, nil
}

func basicSpeciesSet() []types.Species {
	return []types.Species{
		{ID: uuid.New(), Name: "Sproutling", Source: "pokemon", Type1: "Grass", Stage: "Base", BaseHP: 45},
		{ID: uuid.New(), Name: "Emberling", Source: "pokemon", Type1: "Fire", Stage: "Base", BaseHP: 39},
		{ID: uuid.New(), Name: "Wavelet", Source: "pokemon", Type1: "Water", Stage: "Base", BaseHP: 44},
		{ID: uuid.New(), Name: "Stormwing", Source: "pokemon", Type1: "Electric", Stage: "Stage 1", BaseHP: 60},
		{ID: uuid.New(), Name: "Aurorix", Source: "pokemon", Type1: "Ice", Stage: "Stage 2", IsLegendary: true, BaseHP: 100},
		{ID: uuid.New(), Name: "Dreamveil", Source: "pokemon", Type1: "Psychic", Stage: "Base", IsMythical: true, BaseHP: 100},
		{ID: uuid.New(), Name: "Pupmon", Source: "digimon", Type1: "Data", Rank: "Child", BaseHP: 40},
		{ID: uuid.New(), Name: "Omnimon", Source: "digimon", Type1: "Vaccine", Rank: "Ultimate", BaseHP: 110},
		{ID: uuid.New(), Name: "Whispurr", Source: "yokai", Type1: "Charming", Rank: "E", BaseHP: 35},
		{ID: uuid.New(), Name: "Shogunyan", Source: "yokai", Type1: "Brave", Rank: "S", BaseHP: 105},
	}
}
