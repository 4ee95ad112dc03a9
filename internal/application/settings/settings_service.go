package settings

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/settings"
	"github.com/salonfin/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReportInvalidator drops cached reports after a parameter change
type ReportInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// SettingsService manages the per-user business parameters
type SettingsService struct {
	repo        settings.Repository
	invalidator ReportInvalidator
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewSettingsService creates a new SettingsService. invalidator may be nil.
func NewSettingsService(repo settings.Repository, invalidator ReportInvalidator, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{
		repo:        repo,
		invalidator: invalidator,
		validate:    NewValidator(),
		logger:      logger,
	}
}

// Params returns the user's business parameters, or the defaults when the
// user never saved any.
func (s *SettingsService) Params(ctx context.Context, userID uuid.UUID) (*settings.BusinessParams, error) {
	p, err := s.repo.FindForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Debug("No saved business params, using defaults", zap.String("user_id", userID.String()))
			return settings.DefaultBusinessParams(userID), nil
		}
		return nil, err
	}
	return p, nil
}

// Get returns the user's business parameters as a response
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*SettingsResponse, error) {
	p, err := s.Params(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToSettingsResponse(p)
	return &resp, nil
}

// Update validates and replaces the user's business parameters
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, req UpdateSettingsRequest) (*SettingsResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	p, err := s.Params(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.LucroDesejado = req.LucroDesejado
	p.DespesasIndiretasDepreciacao = req.DespesasIndiretasDepreciacao
	p.ImpostosRate = req.ImpostosRate
	p.WeightedAverageRate = req.WeightedAverageRate
	p.CommissionRate = req.CommissionRate
	p.TeamSize = req.TeamSize
	p.DepreciacaoValorMobilizado = req.DepreciacaoValorMobilizado
	p.DepreciacaoTotal = req.DepreciacaoTotal
	p.MetaFaturamentoMensal = req.MetaFaturamentoMensal
	p.MetaAtendimentosMensal = req.MetaAtendimentosMensal

	p.PaymentMethods = make([]settings.PaymentMethodFee, 0, len(req.PaymentMethods))
	for _, m := range req.PaymentMethods {
		p.PaymentMethods = append(p.PaymentMethods, settings.PaymentMethodFee{Name: m.Name, FeeRate: m.FeeRate, Share: m.Share})
	}
	p.WorkingDays = make([]time.Weekday, 0, len(req.WorkingDays))
	for _, d := range req.WorkingDays {
		p.WorkingDays = append(p.WorkingDays, time.Weekday(d))
	}
	holidays, err := parseHolidays(req.Holidays)
	if err != nil {
		return nil, err
	}
	p.Holidays = holidays
	p.RefreshWeightedRate()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Touch(time.Now())

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to save business params", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, userID); err != nil {
			s.logger.Warn("Failed to invalidate report cache", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	resp := ToSettingsResponse(p)
	return &resp, nil
}

func parseHolidays(values []string) ([]time.Time, error) {
	days := make([]time.Time, 0, len(values))
	for _, v := range values {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, shared.WrapDomainError("INVALID_INPUT", "holidays must be YYYY-MM-DD dates", err)
		}
		days = append(days, day)
	}
	return days, nil
}
