package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/ledger"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportInvalidator drops cached reports after the ledger changes
type ReportInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// Metrics receives recorded cash flow
type Metrics interface {
	RecordTransaction(ctx context.Context, kind string, amount decimal.Decimal)
}

// TransactionService handles cash-flow ledger operations
type TransactionService struct {
	repo        ledger.TransactionRepository
	invalidator ReportInvalidator
	logger      *zap.Logger
	location    *time.Location
	metrics     Metrics
}

// TransactionOption configures a TransactionService
type TransactionOption func(*TransactionService)

// WithLocation sets the zone date-only input is read in. It should be the
// zone reports are computed in.
func WithLocation(loc *time.Location) TransactionOption {
	return func(s *TransactionService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithMetrics counts created transactions on m
func WithMetrics(m Metrics) TransactionOption {
	return func(s *TransactionService) {
		s.metrics = m
	}
}

// NewTransactionService creates a new TransactionService. invalidator may be nil.
func NewTransactionService(repo ledger.TransactionRepository, invalidator ReportInvalidator, logger *zap.Logger, opts ...TransactionOption) *TransactionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &TransactionService{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger,
		location:    time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create records a new transaction
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req CreateTransactionRequest) (*TransactionResponse, error) {
	date, err := ParseDate(req.Date, s.location)
	if err != nil {
		return nil, err
	}

	tx, err := ledger.NewTransaction(userID, date, ledger.Kind(strings.ToUpper(req.Kind)), valueobject.NewMoney(req.Amount), req.Category, req.Description)
	if err != nil {
		return nil, err
	}
	tx.PaymentMethod = req.PaymentMethod
	if req.Commission != nil {
		if err := tx.SetCommission(*req.Commission); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, tx); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	if s.metrics != nil {
		s.metrics.RecordTransaction(ctx, tx.Kind.String(), tx.Amount.Amount())
	}

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// GetByID returns a single transaction of the user
func (s *TransactionService) GetByID(ctx context.Context, userID, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.repo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// Update edits an existing transaction
func (s *TransactionService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	tx, err := s.repo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	date, err := ParseDate(req.Date, s.location)
	if err != nil {
		return nil, err
	}
	if err := tx.Update(date, ledger.Kind(strings.ToUpper(req.Kind)), valueobject.NewMoney(req.Amount), req.Category, req.Description); err != nil {
		return nil, err
	}
	tx.PaymentMethod = req.PaymentMethod
	tx.Commission = nil
	if req.Commission != nil {
		if err := tx.SetCommission(*req.Commission); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, tx); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// Delete removes a transaction
func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.DeleteForUser(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// List returns a page of the user's transactions and the total count
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, f TransactionListFilter) ([]TransactionResponse, int64, error) {
	page := shared.DefaultFilter()
	page.Page = f.Page
	page.PageSize = f.PageSize
	page.OrderBy = "date"
	page.Search = f.Search
	filter := ledger.TransactionFilter{Filter: page.Normalized()}
	if f.Kind != "" {
		kind := ledger.Kind(strings.ToUpper(f.Kind))
		if !kind.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_KIND", "Transaction kind must be ENTRADA or SAIDA")
		}
		filter.Kind = &kind
	}
	if f.From != "" {
		from, err := ParseDate(f.From, s.location)
		if err != nil {
			return nil, 0, err
		}
		filter.From = &from
	}
	if f.To != "" {
		to, err := ParseDate(f.To, s.location)
		if err != nil {
			return nil, 0, err
		}
		filter.To = &to
	}

	txs, total, err := s.repo.ListForUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		responses = append(responses, ToTransactionResponse(&txs[i]))
	}
	return responses, total, nil
}

func (s *TransactionService) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("Failed to invalidate report cache",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}
