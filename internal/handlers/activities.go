package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/middleware"
  "github.com/yungbote/focustown-backend/internal/repos"
  "github.com/yungbote/focustown-backend/internal/services"
)

type ActivityHandler struct {
  log         *logger.Logger
  activitySvc services.ActivityService
}

func NewActivityHandler(log *logger.Logger, activitySvc services.ActivityService) *ActivityHandler {
  return &ActivityHandler{
    log:         log.With("handler", "ActivityHandler"),
    activitySvc: activitySvc,
  }
}

type startActivityRequest struct {
  Location string `json:"location" binding:"required"`
  Activity string `json:"activity" binding:"required"`
}

// POST /api/activities/start
func (h *ActivityHandler) StartActivity(c *gin.Context) {
  userID, ok := middleware.AuthedUserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing user"))
    return
  }

  var req startActivityRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }

  started, err := h.activitySvc.StartActivity(c.Request.Context(), userID, req.Location, req.Activity)
  if err != nil {
    switch {
    case errors.Is(err, services.ErrUnknownLocation):
      RespondError(c, http.StatusNotFound, "unknown_location", err)
    case errors.Is(err, services.ErrSessionActive):
      RespondError(c, http.StatusConflict, "session_active", err)
    default:
      h.log.Error("start activity failed", "userID", userID, "error", err)
      RespondError(c, http.StatusInternalServerError, "internal", err)
    }
    return
  }
  RespondOK(c, started)
}

// POST /api/activities/:sessionID/complete
func (h *ActivityHandler) CompleteActivity(c *gin.Context) {
  userID, ok := middleware.AuthedUserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing user"))
    return
  }
  sessionID, err := uuid.Parse(c.Param("sessionID"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_session_id", err)
    return
  }

  completed, err := h.activitySvc.CompleteActivity(c.Request.Context(), userID, sessionID)
  if err != nil {
    switch {
    case errors.Is(err, repos.ErrSessionNotFound):
      RespondError(c, http.StatusNotFound, "session_not_found", err)
    case errors.Is(err, services.ErrSessionCompleted):
      RespondError(c, http.StatusConflict, "session_completed", err)
    case errors.Is(err, services.ErrNoTrainers):
      RespondError(c, http.StatusConflict, "no_trainers", err)
    default:
      h.log.Error("complete activity failed", "sessionID", sessionID, "error", err)
      RespondError(c, http.StatusInternalServerError, "internal", err)
    }
    return
  }
  RespondOK(c, completed)
}

type claimRewardRequest struct {
  RewardID  string    `json:"rewardId" binding:"required"`
  TrainerID uuid.UUID `json:"trainerId" binding:"required"`
  Name      string    `json:"name"`
}

// POST /api/activities/:sessionID/claim
func (h *ActivityHandler) ClaimReward(c *gin.Context) {
  userID, ok := middleware.AuthedUserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing user"))
    return
  }
  sessionID, err := uuid.Parse(c.Param("sessionID"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_session_id", err)
    return
  }

  var req claimRewardRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }

  result, err := h.activitySvc.ClaimReward(c.Request.Context(), userID, sessionID, req.RewardID, req.TrainerID, req.Name)
  if err != nil {
    switch {
    case errors.Is(err, repos.ErrSessionNotFound):
      RespondError(c, http.StatusNotFound, "session_not_found", err)
    case errors.Is(err, services.ErrSessionNotCompleted):
      RespondError(c, http.StatusConflict, "session_not_completed", err)
    case errors.Is(err, services.ErrRewardNotFound):
      RespondError(c, http.StatusNotFound, "reward_not_found", err)
    case errors.Is(err, services.ErrAlreadyClaimed):
      RespondError(c, http.StatusConflict, "already_claimed", err)
    case errors.Is(err, services.ErrClaimContended):
      RespondError(c, http.StatusConflict, "claim_in_progress", err)
    case errors.Is(err, repos.ErrTrainerNotFound):
      RespondError(c, http.StatusNotFound, "trainer_not_found", err)
    default:
      h.log.Error("claim reward failed", "sessionID", sessionID, "rewardID", req.RewardID, "error", err)
      RespondError(c, http.StatusInternalServerError, "internal", err)
    }
    return
  }
  RespondOK(c, result)
}

// GET /api/activities/:sessionID
func (h *ActivityHandler) GetSession(c *gin.Context) {
  userID, ok := middleware.AuthedUserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing user"))
    return
  }
  sessionID, err := uuid.Parse(c.Param("sessionID"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_session_id", err)
    return
  }

  session, err := h.activitySvc.GetSession(c.Request.Context(), sessionID)
  if err != nil {
    if errors.Is(err, repos.ErrSessionNotFound) {
      RespondError(c, http.StatusNotFound, "session_not_found", err)
      return
    }
    RespondError(c, http.StatusInternalServerError, "internal", err)
    return
  }
  if session.UserID != userID {
    RespondError(c, http.StatusNotFound, "session_not_found", repos.ErrSessionNotFound)
    return
  }
  RespondOK(c, session)
}

// GET /api/locations/:location/status
func (h *ActivityHandler) GetLocationStatus(c *gin.Context) {
  userID, ok := middleware.AuthedUserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing user"))
    return
  }

  status, err := h.activitySvc.GetLocationStatus(c.Request.Context(), userID, c.Param("location"))
  if err != nil {
    if errors.Is(err, services.ErrUnknownLocation) {
      RespondError(c, http.StatusNotFound, "unknown_location", err)
      return
    }
    RespondError(c, http.StatusInternalServerError, "internal", err)
    return
  }
  RespondOK(c, status)
}

// DELETE /api/activities
// Admin/debug: wipe the caller's sessions.
func (h *ActivityHandler) ClearSessions(c *gin.Context) {
  userID, ok := middleware.AuthedUserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing user"))
    return
  }

  removed, err := h.activitySvc.ClearSessions(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "internal", err)
    return
  }
  RespondOK(c, gin.H{"removed": removed})
}
