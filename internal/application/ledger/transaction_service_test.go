package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/ledger"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]ledger.Transaction, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListForUser(ctx context.Context, userID uuid.UUID, filter ledger.TransactionFilter) ([]ledger.Transaction, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]ledger.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) Save(ctx context.Context, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestTransactionService_Create(t *testing.T) {
	repo := new(MockTransactionRepository)
	inv := new(MockInvalidator)
	userID := uuid.New()
	repo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Transaction")).Return(nil)
	inv.On("Invalidate", mock.Anything, userID).Return(nil)

	svc := NewTransactionService(repo, inv, nil)
	commission := decimal.NewFromInt(30)
	resp, err := svc.Create(context.Background(), userID, CreateTransactionRequest{
		Date:          "2024-03-05",
		Kind:          "entrada",
		Amount:        decimal.NewFromInt(150),
		Description:   "Corte e escova",
		PaymentMethod: "PIX",
		Commission:    &commission,
	})

	require.NoError(t, err)
	assert.Equal(t, "ENTRADA", resp.Kind)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), resp.Date)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(150)))
	require.NotNil(t, resp.Commission)
	repo.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestTransactionService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		req      CreateTransactionRequest
		wantCode string
	}{
		{"bad date", CreateTransactionRequest{Date: "05/03/2024", Kind: "ENTRADA", Amount: decimal.NewFromInt(1)}, "INVALID_DATE"},
		{"bad kind", CreateTransactionRequest{Date: "2024-03-05", Kind: "TRANSFER", Amount: decimal.NewFromInt(1)}, "INVALID_KIND"},
		{"negative amount", CreateTransactionRequest{Date: "2024-03-05", Kind: "SAIDA", Amount: decimal.NewFromInt(-1)}, "INVALID_AMOUNT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockTransactionRepository)
			_, err := NewTransactionService(repo, nil, nil).Create(context.Background(), uuid.New(), tt.req)

			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantCode, de.Code)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestTransactionService_Update(t *testing.T) {
	repo := new(MockTransactionRepository)
	userID := uuid.New()
	existing, err := ledger.NewTransaction(userID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), ledger.KindSaida, valueobject.NewMoneyFromInt(80), "Produtos", "")
	require.NoError(t, err)
	c := decimal.NewFromInt(5)
	existing.Commission = &c

	repo.On("FindByIDForUser", mock.Anything, userID, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	resp, err := NewTransactionService(repo, nil, nil).Update(context.Background(), userID, existing.ID, UpdateTransactionRequest{
		Date:     "2024-03-06T10:00:00Z",
		Kind:     "SAIDA",
		Amount:   decimal.NewFromInt(95),
		Category: "Aluguel",
	})

	require.NoError(t, err)
	assert.Equal(t, "Aluguel", resp.Category)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(95)))
	assert.Nil(t, resp.Commission)
}

func TestTransactionService_Update_NotFound(t *testing.T) {
	repo := new(MockTransactionRepository)
	userID, id := uuid.New(), uuid.New()
	repo.On("FindByIDForUser", mock.Anything, userID, id).Return(nil, shared.ErrNotFound)

	_, err := NewTransactionService(repo, nil, nil).Update(context.Background(), userID, id, UpdateTransactionRequest{})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTransactionService_Delete(t *testing.T) {
	repo := new(MockTransactionRepository)
	inv := new(MockInvalidator)
	userID, id := uuid.New(), uuid.New()
	repo.On("DeleteForUser", mock.Anything, userID, id).Return(nil)
	inv.On("Invalidate", mock.Anything, userID).Return(assert.AnError)

	// a cache failure does not fail the delete
	err := NewTransactionService(repo, inv, nil).Delete(context.Background(), userID, id)

	assert.NoError(t, err)
	inv.AssertExpectations(t)
}

func TestTransactionService_List(t *testing.T) {
	repo := new(MockTransactionRepository)
	userID := uuid.New()
	tx, err := ledger.NewTransaction(userID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), ledger.KindEntrada, valueobject.NewMoneyFromInt(100), "", "")
	require.NoError(t, err)

	repo.On("ListForUser", mock.Anything, userID, mock.MatchedBy(func(f ledger.TransactionFilter) bool {
		return f.Page == 2 && f.PageSize == 10 && f.Kind != nil && *f.Kind == ledger.KindEntrada &&
			f.From != nil && f.From.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) && f.To == nil
	})).Return([]ledger.Transaction{*tx}, int64(11), nil)

	items, total, err := NewTransactionService(repo, nil, nil).List(context.Background(), userID, TransactionListFilter{
		Page: 2, PageSize: 10, Kind: "ENTRADA", From: "2024-03-01",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, items, 1)
	assert.Equal(t, tx.ID, items[0].ID)
}

func TestTransactionService_List_InvalidKind(t *testing.T) {
	repo := new(MockTransactionRepository)
	_, _, err := NewTransactionService(repo, nil, nil).List(context.Background(), uuid.New(), TransactionListFilter{Kind: "X"})
	assert.Error(t, err)
}

func TestTransactionService_Create_DateOnlyInReportLocation(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	userID := uuid.New()

	var saved []ledger.Transaction
	repo := new(MockTransactionRepository)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Transaction")).
		Run(func(args mock.Arguments) {
			saved = append(saved, *args.Get(1).(*ledger.Transaction))
		}).Return(nil)

	svc := NewTransactionService(repo, nil, nil, WithLocation(brt))
	for _, date := range []string{"2024-03-01", "2024-03-05"} {
		_, err := svc.Create(context.Background(), userID, CreateTransactionRequest{
			Date: date, Kind: "ENTRADA", Amount: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
	}
	require.Len(t, saved, 2)

	// stored as UTC, the first of the month must still belong to March
	stored := make([]ledger.Transaction, len(saved))
	for i, tx := range saved {
		tx.Date = tx.Date.UTC()
		stored[i] = tx
	}
	assert.Len(t, ledger.InPeriod(stored, valueobject.NewMonthPeriod(2024, time.March, brt)), 2)
	assert.Empty(t, ledger.InPeriod(stored, valueobject.NewMonthPeriod(2024, time.February, brt)))
	assert.Len(t, ledger.OnDay(stored, time.Date(2024, 3, 5, 0, 0, 0, 0, brt)), 1)
	assert.Empty(t, ledger.OnDay(stored, time.Date(2024, 3, 4, 0, 0, 0, 0, brt)))
}

func TestParseDate(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)

	d, err := ParseDate("2024-03-01", brt)
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC)))

	d, err = ParseDate("2024-03-01", nil)
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	d, err = ParseDate("2024-03-01T10:00:00Z", brt)
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))

	_, err = ParseDate("01/03/2024", brt)
	assert.ErrorIs(t, err, shared.NewDomainError("INVALID_DATE", ""))
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordTransaction(ctx context.Context, kind string, amount decimal.Decimal) {
	m.Called(ctx, kind, amount)
}

func TestTransactionService_Create_RecordsMetrics(t *testing.T) {
	repo := new(MockTransactionRepository)
	metrics := new(MockMetrics)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Transaction")).Return(nil)
	metrics.On("RecordTransaction", mock.Anything, "SAIDA", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("80.5"))
	})).Once()

	_, err := NewTransactionService(repo, nil, nil, WithMetrics(metrics)).Create(context.Background(), uuid.New(), CreateTransactionRequest{
		Date: "2024-03-05", Kind: "saida", Amount: decimal.RequireFromString("80.5"), Category: "Aluguel",
	})

	require.NoError(t, err)
	metrics.AssertExpectations(t)
}
