package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/focustown-backend/internal/logger"
	"github.com/yungbote/focustown-backend/internal/types"
)

func TestActivitySessionRepoUpsert(t *testing.T) {
	db := testDB(t, &types.ActivitySession{})
	repo := NewActivitySessionRepo(db, logger.NewNop())
	ctx := context.Background()

	session := &types.ActivitySession{
		SessionID: uuid.New(),
		UserID:    uuid.New(),
		Location:  "garden",
		Activity:  "tend",
		Status:    types.SessionStatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Upsert(ctx, nil, session); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	// Second upsert updates in place rather than inserting a duplicate.
	now := time.Now().UTC()
	session.Status = types.SessionStatusCompleted
	session.CompletedAt = &now
	if err := repo.Upsert(ctx, nil, session); err != nil {
		t.Fatalf("second Upsert() error: %v", err)
	}

	found, err := repo.FindBySessionID(ctx, nil, session.SessionID)
	if err != nil {
		t.Fatalf("FindBySessionID() error: %v", err)
	}
	if found.Status != types.SessionStatusCompleted {
		t.Errorf("Status = %s, want completed", found.Status)
	}
	if found.CompletedAt == nil {
		t.Error("CompletedAt should persist")
	}
}

func TestActivitySessionRepoFindActive(t *testing.T) {
	db := testDB(t, &types.ActivitySession{})
	repo := NewActivitySessionRepo(db, logger.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	if _, err := repo.FindActiveByUserAndLocation(ctx, nil, userID, "garden"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}

	completed := &types.ActivitySession{
		SessionID: uuid.New(),
		UserID:    userID,
		Location:  "garden",
		Activity:  "tend",
		Status:    types.SessionStatusCompleted,
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	active := &types.ActivitySession{
		SessionID: uuid.New(),
		UserID:    userID,
		Location:  "garden",
		Activity:  "tend",
		Status:    types.SessionStatusActive,
		CreatedAt: time.Now().UTC(),
	}
	for _, s := range []*types.ActivitySession{completed, active} {
		if err := repo.Upsert(ctx, nil, s); err != nil {
			t.Fatal(err)
		}
	}

	found, err := repo.FindActiveByUserAndLocation(ctx, nil, userID, "garden")
	if err != nil {
		t.Fatalf("FindActiveByUserAndLocation() error: %v", err)
	}
	if found.SessionID != active.SessionID {
		t.Errorf("found %s, want the active session %s", found.SessionID, active.SessionID)
	}
}

func TestActivitySessionRepoFindUnknown(t *testing.T) {
	db := testDB(t, &types.ActivitySession{})
	repo := NewActivitySessionRepo(db, logger.NewNop())

	_, err := repo.FindBySessionID(context.Background(), nil, uuid.New())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}
