package expense

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/expense"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*expense.Category, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]expense.Category, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]expense.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *expense.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SaveBatch(ctx context.Context, categories []expense.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockIndirectExpenseRepository struct {
	mock.Mock
}

func (m *MockIndirectExpenseRepository) FindForMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]expense.IndirectExpense, error) {
	args := m.Called(ctx, userID, month)
	return args.Get(0).([]expense.IndirectExpense), args.Error(1)
}

func (m *MockIndirectExpenseRepository) FindBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]expense.IndirectExpense, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).([]expense.IndirectExpense), args.Error(1)
}

func (m *MockIndirectExpenseRepository) FindOne(ctx context.Context, userID, categoryID uuid.UUID, month time.Time) (*expense.IndirectExpense, error) {
	args := m.Called(ctx, userID, categoryID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.IndirectExpense), args.Error(1)
}

func (m *MockIndirectExpenseRepository) Upsert(ctx context.Context, record *expense.IndirectExpense) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockIndirectExpenseRepository) TotalForMonth(ctx context.Context, userID uuid.UUID, month time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, month)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestExpenseService_ListCategories_SeedsDefaults(t *testing.T) {
	cats := new(MockCategoryRepository)
	userID := uuid.New()
	cats.On("FindAllForUser", mock.Anything, userID).Return([]expense.Category{}, nil)
	cats.On("SaveBatch", mock.Anything, mock.MatchedBy(func(c []expense.Category) bool {
		return len(c) == len(expense.DefaultCategoryNames)
	})).Return(nil)

	svc := NewExpenseService(cats, new(MockIndirectExpenseRepository), nil, nil)
	out, err := svc.ListCategories(context.Background(), userID)

	require.NoError(t, err)
	assert.Len(t, out, len(expense.DefaultCategoryNames))
	assert.Equal(t, "Aluguel", out[0].Name)
	assert.False(t, out[0].IsCustom)
	cats.AssertExpectations(t)
}

func TestExpenseService_CreateCategory_Duplicate(t *testing.T) {
	cats := new(MockCategoryRepository)
	userID := uuid.New()
	cats.On("FindAllForUser", mock.Anything, userID).Return(expense.DefaultCategories(userID), nil)

	_, err := NewExpenseService(cats, nil, nil, nil).CreateCategory(context.Background(), userID, CreateCategoryRequest{Name: " aluguel "})

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "ALREADY_EXISTS", de.Code)
}

func TestExpenseService_CreateCategory(t *testing.T) {
	cats := new(MockCategoryRepository)
	userID := uuid.New()
	cats.On("FindAllForUser", mock.Anything, userID).Return(expense.DefaultCategories(userID), nil)
	cats.On("Save", mock.Anything, mock.AnythingOfType("*expense.Category")).Return(nil)

	resp, err := NewExpenseService(cats, nil, nil, nil).CreateCategory(context.Background(), userID, CreateCategoryRequest{Name: "Seguro", IsFixed: true})

	require.NoError(t, err)
	assert.True(t, resp.IsCustom)
	assert.True(t, resp.IsFixed)
}

func TestExpenseService_DeleteCategory(t *testing.T) {
	userID := uuid.New()

	t.Run("predefined category is protected", func(t *testing.T) {
		cats := new(MockCategoryRepository)
		predefined := expense.DefaultCategories(userID)[0]
		cats.On("FindByIDForUser", mock.Anything, userID, predefined.ID).Return(&predefined, nil)

		err := NewExpenseService(cats, nil, nil, nil).DeleteCategory(context.Background(), userID, predefined.ID)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_STATE", de.Code)
		cats.AssertNotCalled(t, "DeleteForUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("custom category is removed", func(t *testing.T) {
		cats := new(MockCategoryRepository)
		custom, err := expense.NewCategory(userID, "Seguro", true, false)
		require.NoError(t, err)
		cats.On("FindByIDForUser", mock.Anything, userID, custom.ID).Return(custom, nil)
		cats.On("DeleteForUser", mock.Anything, userID, custom.ID).Return(nil)

		err = NewExpenseService(cats, nil, nil, nil).DeleteCategory(context.Background(), userID, custom.ID)

		assert.NoError(t, err)
		cats.AssertExpectations(t)
	})
}

func TestExpenseService_Upsert(t *testing.T) {
	userID := uuid.New()
	category, err := expense.NewCategory(userID, "Energia", false, false)
	require.NoError(t, err)

	t.Run("creates a missing record", func(t *testing.T) {
		cats := new(MockCategoryRepository)
		records := new(MockIndirectExpenseRepository)
		cats.On("FindByIDForUser", mock.Anything, userID, category.ID).Return(category, nil)
		records.On("FindOne", mock.Anything, userID, category.ID, month(2024, time.March)).Return(nil, shared.ErrNotFound)
		records.On("Upsert", mock.Anything, mock.MatchedBy(func(r *expense.IndirectExpense) bool {
			return r.MonthReference.Equal(month(2024, time.March)) && r.MonthlyValue.Equal(decimal.NewFromInt(250))
		})).Return(nil)

		line, err := NewExpenseService(cats, records, nil, nil).Upsert(context.Background(), userID, UpsertExpenseRequest{
			CategoryID: category.ID, Month: "2024-03", Value: decimal.NewFromInt(250),
		})

		require.NoError(t, err)
		assert.Equal(t, "Energia", line.CategoryName)
		records.AssertExpectations(t)
	})

	t.Run("updates an existing record", func(t *testing.T) {
		cats := new(MockCategoryRepository)
		records := new(MockIndirectExpenseRepository)
		existing, err := expense.NewIndirectExpense(userID, category.ID, month(2024, time.March), decimal.NewFromInt(100))
		require.NoError(t, err)
		cats.On("FindByIDForUser", mock.Anything, userID, category.ID).Return(category, nil)
		records.On("FindOne", mock.Anything, userID, category.ID, month(2024, time.March)).Return(existing, nil)
		records.On("Upsert", mock.Anything, existing).Return(nil)

		_, err = NewExpenseService(cats, records, nil, nil).Upsert(context.Background(), userID, UpsertExpenseRequest{
			CategoryID: category.ID, Month: "2024-03", Value: decimal.NewFromInt(300),
		})

		require.NoError(t, err)
		assert.True(t, existing.MonthlyValue.Equal(decimal.NewFromInt(300)))
	})

	t.Run("rejects a bad month", func(t *testing.T) {
		_, err := NewExpenseService(nil, nil, nil, nil).Upsert(context.Background(), userID, UpsertExpenseRequest{
			CategoryID: category.ID, Month: "03/2024",
		})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_DATE", de.Code)
	})
}

func TestExpenseService_ApplyFixed(t *testing.T) {
	userID := uuid.New()
	fixed, err := expense.NewCategory(userID, "Aluguel", false, true)
	require.NoError(t, err)
	january, err := expense.NewIndirectExpense(userID, fixed.ID, month(2024, time.January), decimal.NewFromInt(1800))
	require.NoError(t, err)

	cats := new(MockCategoryRepository)
	records := new(MockIndirectExpenseRepository)
	inv := new(MockInvalidator)
	cats.On("FindByIDForUser", mock.Anything, userID, fixed.ID).Return(fixed, nil)
	records.On("FindOne", mock.Anything, userID, fixed.ID, month(2024, time.January)).Return(january, nil)
	for m := time.February; m <= time.December; m++ {
		records.On("FindOne", mock.Anything, userID, fixed.ID, month(2024, m)).Return(nil, shared.ErrNotFound)
	}
	records.On("Upsert", mock.Anything, mock.MatchedBy(func(r *expense.IndirectExpense) bool {
		return r.MonthlyValue.Equal(decimal.NewFromInt(1800))
	})).Return(nil)
	inv.On("Invalidate", mock.Anything, userID).Return(nil).Once()

	resp, err := NewExpenseService(cats, records, inv, nil).ApplyFixed(context.Background(), userID, fixed.ID, 2024)

	require.NoError(t, err)
	assert.Len(t, resp.Months, 11)
	assert.Equal(t, "2024-02", resp.Months[0])
	assert.Equal(t, "2024-12", resp.Months[10])
	records.AssertNumberOfCalls(t, "Upsert", 11)
	inv.AssertExpectations(t)
}

func TestExpenseService_ApplyFixed_Rejections(t *testing.T) {
	userID := uuid.New()

	t.Run("variable category", func(t *testing.T) {
		cats := new(MockCategoryRepository)
		variable, _ := expense.NewCategory(userID, "Energia", false, false)
		cats.On("FindByIDForUser", mock.Anything, userID, variable.ID).Return(variable, nil)

		_, err := NewExpenseService(cats, nil, nil, nil).ApplyFixed(context.Background(), userID, variable.ID, 2024)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_STATE", de.Code)
	})

	t.Run("january not set", func(t *testing.T) {
		cats := new(MockCategoryRepository)
		records := new(MockIndirectExpenseRepository)
		fixed, _ := expense.NewCategory(userID, "Aluguel", false, true)
		cats.On("FindByIDForUser", mock.Anything, userID, fixed.ID).Return(fixed, nil)
		records.On("FindOne", mock.Anything, userID, fixed.ID, month(2024, time.January)).Return(nil, shared.ErrNotFound)

		_, err := NewExpenseService(cats, records, nil, nil).ApplyFixed(context.Background(), userID, fixed.ID, 2024)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "NOT_FOUND", de.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		cats := new(MockCategoryRepository)
		id := uuid.New()
		cats.On("FindByIDForUser", mock.Anything, userID, id).Return(nil, shared.ErrNotFound)

		_, err := NewExpenseService(cats, nil, nil, nil).ApplyFixed(context.Background(), userID, id, 2024)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_CATEGORY", de.Code)
	})
}

func TestExpenseService_ListMonth(t *testing.T) {
	userID := uuid.New()
	categories := expense.DefaultCategories(userID)[:2]
	record, err := expense.NewIndirectExpense(userID, categories[1].ID, month(2024, time.March), decimal.NewFromInt(120))
	require.NoError(t, err)

	cats := new(MockCategoryRepository)
	records := new(MockIndirectExpenseRepository)
	cats.On("FindAllForUser", mock.Anything, userID).Return(categories, nil)
	records.On("FindForMonth", mock.Anything, userID, month(2024, time.March)).Return([]expense.IndirectExpense{*record}, nil)

	resp, err := NewExpenseService(cats, records, nil, nil).ListMonth(context.Background(), userID, "2024-03")

	require.NoError(t, err)
	require.Len(t, resp.Lines, 2)
	assert.True(t, resp.Lines[0].MonthlyValue.IsZero())
	assert.True(t, resp.Lines[1].MonthlyValue.Equal(decimal.NewFromInt(120)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(120)))
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
