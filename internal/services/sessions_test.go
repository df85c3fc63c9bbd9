package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/focustown-backend/internal/repos"
	"github.com/yungbote/focustown-backend/internal/types"
)

func newTestSession(userID uuid.UUID, location string) *types.ActivitySession {
	return &types.ActivitySession{
		SessionID: uuid.New(),
		UserID:    userID,
		Location:  location,
		Activity:  "tend",
		Status:    types.SessionStatusActive,
		CreatedAt: time.Now().UTC(),
	}
}

func TestSessionStorePutAndGet(t *testing.T) {
	repo := newFakeSessionRepo()
	store := NewSessionStore(repo, testLogger())
	session := newTestSession(uuid.New(), "garden")

	if err := store.Put(context.Background(), session); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := store.Get(context.Background(), session.SessionID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.SessionID != session.SessionID {
		t.Errorf("got session %s, want %s", got.SessionID, session.SessionID)
	}
	if repo.finds != 0 {
		t.Errorf("cached Get should not hit the repo, finds = %d", repo.finds)
	}
}

func TestSessionStoreHydratesOnMiss(t *testing.T) {
	repo := newFakeSessionRepo()
	session := newTestSession(uuid.New(), "farm")
	if err := repo.Upsert(context.Background(), nil, session); err != nil {
		t.Fatal(err)
	}

	store := NewSessionStore(repo, testLogger())
	got, err := store.Get(context.Background(), session.SessionID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Location != "farm" {
		t.Errorf("Location = %s, want farm", got.Location)
	}
	if repo.finds != 1 {
		t.Errorf("finds = %d, want 1", repo.finds)
	}

	// Second read is served from cache.
	if _, err := store.Get(context.Background(), session.SessionID); err != nil {
		t.Fatal(err)
	}
	if repo.finds != 1 {
		t.Errorf("finds after cached read = %d, want 1", repo.finds)
	}
}

func TestSessionStoreGetUnknown(t *testing.T) {
	store := NewSessionStore(newFakeSessionRepo(), testLogger())
	_, err := store.Get(context.Background(), uuid.New())
	if !errors.Is(err, repos.ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStoreCompleteOnce(t *testing.T) {
	repo := newFakeSessionRepo()
	store := NewSessionStore(repo, testLogger())
	session := newTestSession(uuid.New(), "garden")
	if err := store.Put(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	rewards := []types.Reward{*coinReward(25)}
	if err := store.Complete(context.Background(), session, rewards); err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if session.Status != types.SessionStatusCompleted {
		t.Errorf("Status = %s, want completed", session.Status)
	}
	if session.CompletedAt == nil {
		t.Error("CompletedAt should be set")
	}

	stored, _ := repo.FindBySessionID(context.Background(), nil, session.SessionID)
	list := stored.RewardList()
	if len(list) != 1 || list[0].Data.Amount != 25 {
		t.Errorf("persisted rewards = %+v", list)
	}

	if err := store.Complete(context.Background(), session, rewards); !errors.Is(err, ErrSessionCompleted) {
		t.Errorf("second Complete() error = %v, want ErrSessionCompleted", err)
	}
}

func TestSessionStoreActiveAt(t *testing.T) {
	repo := newFakeSessionRepo()
	store := NewSessionStore(repo, testLogger())
	userID := uuid.New()

	active, err := store.ActiveAt(context.Background(), userID, "garden")
	if err != nil {
		t.Fatalf("ActiveAt() error: %v", err)
	}
	if active != nil {
		t.Fatalf("expected no active session, got %+v", active)
	}

	session := newTestSession(userID, "garden")
	if err := store.Put(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	active, err = store.ActiveAt(context.Background(), userID, "garden")
	if err != nil {
		t.Fatal(err)
	}
	if active == nil || active.SessionID != session.SessionID {
		t.Errorf("ActiveAt() = %+v, want session %s", active, session.SessionID)
	}
}

func TestSessionStoreClearForUser(t *testing.T) {
	repo := newFakeSessionRepo()
	store := NewSessionStore(repo, testLogger())
	userID := uuid.New()

	active := newTestSession(userID, "garden")
	if err := store.Put(context.Background(), active); err != nil {
		t.Fatal(err)
	}
	done := newTestSession(userID, "farm")
	if err := store.Complete(context.Background(), done, nil); err != nil {
		t.Fatal(err)
	}
	other := newTestSession(uuid.New(), "garden")
	if err := store.Put(context.Background(), other); err != nil {
		t.Fatal(err)
	}

	removed, err := store.ClearForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("ClearForUser() error: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want only the completed session evicted", removed)
	}

	// The active session stays cached and the other user is untouched.
	if _, err := store.Get(context.Background(), active.SessionID); err != nil {
		t.Errorf("active session should remain: %v", err)
	}
	if _, err := store.Get(context.Background(), other.SessionID); err != nil {
		t.Errorf("other user's session should remain: %v", err)
	}

	// Clearing never deletes durable history; the completed session
	// re-hydrates from the repo.
	hydrated, err := store.Get(context.Background(), done.SessionID)
	if err != nil {
		t.Fatalf("Get() after clear error: %v", err)
	}
	if hydrated.Status != types.SessionStatusCompleted {
		t.Errorf("status = %s, want completed", hydrated.Status)
	}
}

// errorSessionRepo simulates a durable-store outage.
type errorSessionRepo struct{}

func (errorSessionRepo) Upsert(context.Context, *gorm.DB, *types.ActivitySession) error {
	return errors.New("db down")
}

func (errorSessionRepo) FindBySessionID(context.Context, *gorm.DB, uuid.UUID) (*types.ActivitySession, error) {
	return nil, errors.New("db down")
}

func (errorSessionRepo) FindActiveByUserAndLocation(context.Context, *gorm.DB, uuid.UUID, string) (*types.ActivitySession, error) {
	return nil, errors.New("db down")
}

func TestSessionStorePutSurvivesRepoOutage(t *testing.T) {
	store := NewSessionStore(errorSessionRepo{}, testLogger())
	session := newTestSession(uuid.New(), "garden")

	if err := store.Put(context.Background(), session); err != nil {
		t.Fatalf("Put() should degrade gracefully, got: %v", err)
	}

	// The in-memory copy stays authoritative.
	got, err := store.Get(context.Background(), session.SessionID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.SessionID != session.SessionID {
		t.Errorf("got session %s, want %s", got.SessionID, session.SessionID)
	}
}

func TestSessionStoreEvictStale(t *testing.T) {
	repo := newFakeSessionRepo()
	store := NewSessionStore(repo, testLogger())
	store.ttl = 10 * time.Millisecond

	session := newTestSession(uuid.New(), "garden")
	if err := store.Put(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	time.Sleep(20 * time.Millisecond)
	if n := store.EvictStale(); n != 1 {
		t.Errorf("EvictStale() = %d, want 1", n)
	}

	// Eviction only drops the cache entry; the durable row hydrates back.
	if _, err := store.Get(context.Background(), session.SessionID); err != nil {
		t.Errorf("Get() after eviction error: %v", err)
	}
	if repo.finds != 1 {
		t.Errorf("finds = %d, want re-hydration to hit the repo once", repo.finds)
	}
}
