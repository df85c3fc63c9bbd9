package services

import (
  "context"
  "errors"
  "sync"
  "time"
  "github.com/google/uuid"
  "golang.org/x/sync/singleflight"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/repos"
  "github.com/yungbote/focustown-backend/internal/types"
)

var (
  ErrSessionCompleted = errors.New("activity session already completed")
  ErrSessionActive    = errors.New("an activity session is already active at this location")
)

const defaultSessionTTL = 6 * time.Hour

type sessionEntry struct {
  session  *types.ActivitySession
  lastSeen time.Time
}

// SessionStore is the hot cache in front of the durable session table.
// Reads hydrate missing entries through a singleflight group so
// concurrent lookups of the same session hit the database once.
type SessionStore struct {
  mu      sync.RWMutex
  entries map[uuid.UUID]*sessionEntry
  ttl     time.Duration
  repo    repos.ActivitySessionRepo
  group   singleflight.Group
  log     *logger.Logger
}

func NewSessionStore(repo repos.ActivitySessionRepo, baseLog *logger.Logger) *SessionStore {
  return &SessionStore{
    entries: map[uuid.UUID]*sessionEntry{},
    ttl:     defaultSessionTTL,
    repo:    repo,
    log:     baseLog.With("service", "SessionStore"),
  }
}

// Put caches a session and persists it. The durable write is
// best-effort: on failure the cached copy stays authoritative and the
// error is only logged.
func (ss *SessionStore) Put(ctx context.Context, session *types.ActivitySession) error {
  if err := ss.repo.Upsert(ctx, nil, session); err != nil {
    ss.log.Warn("session upsert failed, keeping in-memory copy",
      "sessionID", session.SessionID,
      "error", err)
  }
  ss.mu.Lock()
  ss.entries[session.SessionID] = &sessionEntry{session: session, lastSeen: time.Now()}
  ss.mu.Unlock()
  return nil
}

// Get returns a session by id, hydrating from the durable store when
// the cache misses.
func (ss *SessionStore) Get(ctx context.Context, sessionID uuid.UUID) (*types.ActivitySession, error) {
  ss.mu.RLock()
  entry, ok := ss.entries[sessionID]
  ss.mu.RUnlock()
  if ok {
    ss.touch(sessionID)
    return entry.session, nil
  }

  value, err, _ := ss.group.Do(sessionID.String(), func() (any, error) {
    session, err := ss.repo.FindBySessionID(ctx, nil, sessionID)
    if err != nil {
      return nil, err
    }
    ss.mu.Lock()
    ss.entries[sessionID] = &sessionEntry{session: session, lastSeen: time.Now()}
    ss.mu.Unlock()
    return session, nil
  })
  if err != nil {
    return nil, err
  }
  return value.(*types.ActivitySession), nil
}

// ActiveAt returns the user's active session at a location, if any.
// The cache is checked first; a miss falls through to the table.
func (ss *SessionStore) ActiveAt(ctx context.Context, userID uuid.UUID, location string) (*types.ActivitySession, error) {
  ss.mu.RLock()
  for _, entry := range ss.entries {
    s := entry.session
    if s.UserID == userID && s.Location == location && s.Status == types.SessionStatusActive {
      ss.mu.RUnlock()
      return s, nil
    }
  }
  ss.mu.RUnlock()

  session, err := ss.repo.FindActiveByUserAndLocation(ctx, nil, userID, location)
  if err != nil {
    if errors.Is(err, repos.ErrSessionNotFound) {
      return nil, nil
    }
    return nil, err
  }
  ss.mu.Lock()
  ss.entries[session.SessionID] = &sessionEntry{session: session, lastSeen: time.Now()}
  ss.mu.Unlock()
  return session, nil
}

// Complete flips an active session to completed exactly once and
// persists the transition together with its reward payload.
func (ss *SessionStore) Complete(ctx context.Context, session *types.ActivitySession, rewards []types.Reward) error {
  if session.Status == types.SessionStatusCompleted {
    return ErrSessionCompleted
  }
  if err := session.SetRewardList(rewards); err != nil {
    return err
  }
  now := time.Now().UTC()
  session.Status = types.SessionStatusCompleted
  session.CompletedAt = &now
  return ss.Put(ctx, session)
}

// ClearForUser evicts a user's completed sessions from the cache and
// returns how many were dropped. Active sessions stay cached and
// durable rows are never deleted; a later Get re-hydrates them.
func (ss *SessionStore) ClearForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
  ss.mu.Lock()
  defer ss.mu.Unlock()
  var evicted int64
  for id, entry := range ss.entries {
    if entry.session.UserID == userID && entry.session.Status == types.SessionStatusCompleted {
      delete(ss.entries, id)
      evicted++
    }
  }
  return evicted, nil
}

// EvictStale removes cache entries idle past the TTL. Durable rows are
// untouched; a later Get re-hydrates them.
func (ss *SessionStore) EvictStale() int {
  cutoff := time.Now().Add(-ss.ttl)
  ss.mu.Lock()
  defer ss.mu.Unlock()
  evicted := 0
  for id, entry := range ss.entries {
    if entry.lastSeen.Before(cutoff) {
      delete(ss.entries, id)
      evicted++
    }
  }
  return evicted
}

// RunEviction ticks EvictStale until the context ends.
func (ss *SessionStore) RunEviction(ctx context.Context, interval time.Duration) {
  ticker := time.NewTicker(interval)
  defer ticker.Stop()
  for {
    select {
    case <-ctx.Done():
      return
    case <-ticker.C:
      if n := ss.EvictStale(); n > 0 {
        ss.log.Debug("evicted stale sessions", "count", n)
      }
    }
  }
}

func (ss *SessionStore) touch(sessionID uuid.UUID) {
  ss.mu.Lock()
  if entry, ok := ss.entries[sessionID]; ok {
    entry.lastSeen = time.Now()
  }
  ss.mu.Unlock()
}
