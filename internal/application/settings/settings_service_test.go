package settings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/settings"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindForUser(ctx context.Context, userID uuid.UUID) (*settings.BusinessParams, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.BusinessParams), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, params *settings.BusinessParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func validRequest() UpdateSettingsRequest {
	return UpdateSettingsRequest{
		LucroDesejado:                decimal.NewFromInt(20),
		DespesasIndiretasDepreciacao: decimal.NewFromInt(35),
		ImpostosRate:                 decimal.NewFromInt(6),
		WeightedAverageRate:          decimal.NewFromInt(3),
		CommissionRate:               decimal.NewFromInt(40),
		WorkingDays:                  []int{2, 3, 4, 5, 6},
		Holidays:                     []string{"2024-12-25"},
		TeamSize:                     3,
		DepreciacaoTotal:             decimal.NewFromInt(6000),
		MetaFaturamentoMensal:        decimal.NewFromInt(15000),
		MetaAtendimentosMensal:       120,
	}
}

func TestSettingsService_Get_DefaultsWhenMissing(t *testing.T) {
	repo := new(MockSettingsRepository)
	userID := uuid.New()
	repo.On("FindForUser", mock.Anything, userID).Return(nil, shared.ErrNotFound)

	svc := NewSettingsService(repo, nil, nil)
	resp, err := svc.Get(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, userID, resp.UserID)
	assert.True(t, resp.DespesasDiretas.Equal(decimal.NewFromInt(45)))
	assert.True(t, resp.ImpostosRate.Equal(decimal.NewFromInt(8)))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSettingsService_Get_RepositoryError(t *testing.T) {
	repo := new(MockSettingsRepository)
	userID := uuid.New()
	repo.On("FindForUser", mock.Anything, userID).Return(nil, assert.AnError)

	_, err := NewSettingsService(repo, nil, nil).Get(context.Background(), userID)

	assert.ErrorIs(t, err, assert.AnError)
}

func TestSettingsService_Update(t *testing.T) {
	repo := new(MockSettingsRepository)
	inv := new(MockInvalidator)
	userID := uuid.New()
	repo.On("FindForUser", mock.Anything, userID).Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*settings.BusinessParams")).Return(nil)
	inv.On("Invalidate", mock.Anything, userID).Return(nil)

	svc := NewSettingsService(repo, inv, nil)
	resp, err := svc.Update(context.Background(), userID, validRequest())

	require.NoError(t, err)
	assert.True(t, resp.ImpostosRate.Equal(decimal.NewFromInt(6)))
	assert.True(t, resp.DepreciacaoMensal.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, []int{2, 3, 4, 5, 6}, resp.WorkingDays)
	assert.Equal(t, []string{"2024-12-25"}, resp.Holidays)
	repo.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestSettingsService_Update_PaymentMixSetsWeightedRate(t *testing.T) {
	repo := new(MockSettingsRepository)
	userID := uuid.New()
	repo.On("FindForUser", mock.Anything, userID).Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.PaymentMethods = []PaymentMethodDTO{
		{Name: "Crédito", FeeRate: decimal.NewFromInt(4), Share: decimal.NewFromInt(50)},
		{Name: "PIX", FeeRate: decimal.Zero, Share: decimal.NewFromInt(50)},
	}

	resp, err := NewSettingsService(repo, nil, nil).Update(context.Background(), userID, req)

	require.NoError(t, err)
	assert.True(t, resp.WeightedAverageRate.Equal(decimal.NewFromInt(2)))
}

func TestSettingsService_Update_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *UpdateSettingsRequest)
		wantCode string
	}{
		{"rate above 100", func(r *UpdateSettingsRequest) { r.ImpostosRate = decimal.NewFromInt(120) }, "INVALID_INPUT"},
		{"negative commission", func(r *UpdateSettingsRequest) { r.CommissionRate = decimal.NewFromInt(-1) }, "INVALID_INPUT"},
		{"bad weekday", func(r *UpdateSettingsRequest) { r.WorkingDays = []int{7} }, "INVALID_INPUT"},
		{"duplicate weekday", func(r *UpdateSettingsRequest) { r.WorkingDays = []int{1, 1} }, "INVALID_INPUT"},
		{"bad holiday", func(r *UpdateSettingsRequest) { r.Holidays = []string{"25/12/2024"} }, "INVALID_INPUT"},
		{"split over 100", func(r *UpdateSettingsRequest) {
			r.LucroDesejado = decimal.NewFromInt(60)
			r.DespesasIndiretasDepreciacao = decimal.NewFromInt(50)
		}, "INVALID_RATE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSettingsRepository)
			userID := uuid.New()
			repo.On("FindForUser", mock.Anything, userID).Return(nil, shared.ErrNotFound).Maybe()

			req := validRequest()
			tt.mutate(&req)
			_, err := NewSettingsService(repo, nil, nil).Update(context.Background(), userID, req)

			require.Error(t, err)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantCode, de.Code)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestParseHolidays(t *testing.T) {
	days, err := parseHolidays([]string{"2024-12-25", "2025-01-01"})
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}, days)

	_, err = parseHolidays([]string{"2024-12-25", "25/12/2024"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
