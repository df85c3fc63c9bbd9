package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/middleware"
  "github.com/yungbote/focustown-backend/internal/services"
)

type GameCornerHandler struct {
  log           *logger.Logger
  gameCornerSvc services.GameCornerService
}

func NewGameCornerHandler(log *logger.Logger, gameCornerSvc services.GameCornerService) *GameCornerHandler {
  return &GameCornerHandler{
    log:           log.With("handler", "GameCornerHandler"),
    gameCornerSvc: gameCornerSvc,
  }
}

type generateRewardsRequest struct {
  TotalMinutes     int  `json:"totalMinutes"`
  SessionsComplete int  `json:"sessionsComplete"`
  PerformanceScore int  `json:"performanceScore"`
  ForceMonsterRoll bool `json:"forceMonsterRoll"`
}

// POST /api/game-corner/rewards
// Roll and auto-claim a reward batch from focus-session stats.
func (h *GameCornerHandler) GenerateRewards(c *gin.Context) {
  userID, ok := middleware.AuthedUserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing user"))
    return
  }

  var req generateRewardsRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }

  stats := services.SessionStats{
    TotalMinutes:     req.TotalMinutes,
    SessionsComplete: req.SessionsComplete,
    PerformanceScore: req.PerformanceScore,
  }
  result, err := h.gameCornerSvc.GenerateRewards(c.Request.Context(), userID, stats, req.ForceMonsterRoll)
  if err != nil {
    switch {
    case errors.Is(err, services.ErrInvalidStats):
      RespondError(c, http.StatusBadRequest, "invalid_stats", err)
    case errors.Is(err, services.ErrNoTrainers):
      RespondError(c, http.StatusConflict, "no_trainers", err)
    default:
      h.log.Error("generate rewards failed", "userID", userID, "error", err)
      RespondError(c, http.StatusInternalServerError, "internal", err)
    }
    return
  }
  RespondOK(c, result)
}
