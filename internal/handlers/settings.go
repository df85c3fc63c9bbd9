package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "gorm.io/datatypes"
  "github.com/yungbote/focustown-backend/internal/logger"
  "github.com/yungbote/focustown-backend/internal/middleware"
  "github.com/yungbote/focustown-backend/internal/repos"
  "github.com/yungbote/focustown-backend/internal/services"
)

type SettingsHandler struct {
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewSettingsHandler(log *logger.Logger, userRepo repos.UserRepo) *SettingsHandler {
  return &SettingsHandler{
    log:      log.With("handler", "SettingsHandler"),
    userRepo: userRepo,
  }
}

// GET /api/settings/sources
// Legacy settings shapes are migrated on read; the response is always
// the current versioned form.
func (h *SettingsHandler) GetSources(c *gin.Context) {
  userID, ok := middleware.AuthedUserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing user"))
    return
  }

  user, err := h.userRepo.GetByID(c.Request.Context(), nil, userID)
  if err != nil {
    if errors.Is(err, repos.ErrUserNotFound) {
      RespondError(c, http.StatusNotFound, "user_not_found", err)
      return
    }
    RespondError(c, http.StatusInternalServerError, "internal", err)
    return
  }
  RespondOK(c, services.ParseSourceSettings(user.RollerSettings))
}

type updateSourcesRequest struct {
  Sources map[string]bool `json:"sources" binding:"required"`
}

// PUT /api/settings/sources
func (h *SettingsHandler) UpdateSources(c *gin.Context) {
  userID, ok := middleware.AuthedUserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing user"))
    return
  }

  var req updateSourcesRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }

  settings := &services.SourceSettings{
    Version: services.SourceSettingsVersion,
    Sources: map[string]bool{},
  }
  for _, name := range services.KnownSources {
    if on, ok := req.Sources[name]; ok {
      settings.Sources[name] = on
    }
  }

  raw, err := settings.Marshal()
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "internal", err)
    return
  }
  if err := h.userRepo.UpdateRollerSettings(c.Request.Context(), nil, userID, datatypes.JSON(raw)); err != nil {
    if errors.Is(err, repos.ErrUserNotFound) {
      RespondError(c, http.StatusNotFound, "user_not_found", err)
      return
    }
    RespondError(c, http.StatusInternalServerError, "internal", err)
    return
  }
  RespondOK(c, settings)
}
