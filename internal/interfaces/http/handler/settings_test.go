package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	settingsapp "github.com/salonfin/backend/internal/application/settings"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupSettingsRouter(userID uuid.UUID, svc *mockSettings) *gin.Engine {
	r := newTestEngine(userID)
	h := NewSettingsHandler(svc)
	r.GET("/settings", h.Get)
	r.PUT("/settings", h.Update)
	return r
}

func TestSettingsHandler_Get(t *testing.T) {
	userID := uuid.New()
	svc := &mockSettings{}
	svc.On("Get", mock.Anything, userID).Return(&settingsapp.SettingsResponse{
		UserID:        userID,
		LucroDesejado: decimal.NewFromInt(15),
		ImpostosRate:  decimal.NewFromInt(6),
	}, nil)

	w := doRequest(t, setupSettingsRouter(userID, svc), http.MethodGet, "/settings", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "6", data["impostos_rate"])
	svc.AssertExpectations(t)
}

func TestSettingsHandler_Update(t *testing.T) {
	userID := uuid.New()
	svc := &mockSettings{}
	svc.On("Update", mock.Anything, userID, mock.MatchedBy(func(req settingsapp.UpdateSettingsRequest) bool {
		return req.TeamSize == 3 && req.CommissionRate.Equal(decimal.NewFromInt(40)) && len(req.WorkingDays) == 2
	})).Return(&settingsapp.SettingsResponse{UserID: userID, TeamSize: 3}, nil)

	w := doRequest(t, setupSettingsRouter(userID, svc), http.MethodPut, "/settings", map[string]any{
		"commission_rate": "40",
		"team_size":       3,
		"working_days":    []int{1, 2},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSettingsHandler_UpdateValidationError(t *testing.T) {
	userID := uuid.New()
	svc := &mockSettings{}
	svc.On("Update", mock.Anything, userID, mock.Anything).
		Return(nil, shared.NewDomainError("INVALID_INPUT", "impostos_rate must be at most 100"))

	w := doRequest(t, setupSettingsRouter(userID, svc), http.MethodPut, "/settings", map[string]any{
		"impostos_rate": "120",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidInput, decodeResponse(t, w).Error.Code)
}
