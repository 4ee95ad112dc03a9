package handler

import (
	"github.com/gin-gonic/gin"
	settingsapp "github.com/salonfin/backend/internal/application/settings"
)

// SettingsHandler handles the business parameter endpoints
type SettingsHandler struct {
	BaseHandler
	settings SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settings SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get godoc
//
//	@Summary	The user's business parameters, defaults when never saved
//	@Tags		settings
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	result, err := h.settings.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update godoc
//
//	@Summary	Replace the user's business parameters
//	@Tags		settings
//	@Accept		json
//	@Param		request	body	settings.UpdateSettingsRequest	true	"Request body"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req settingsapp.UpdateSettingsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.settings.Update(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
