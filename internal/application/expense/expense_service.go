package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/expense"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportInvalidator drops cached reports after expense changes
type ReportInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// ExpenseService handles indirect-expense bookkeeping
type ExpenseService struct {
	categoryRepo expense.CategoryRepository
	expenseRepo  expense.IndirectExpenseRepository
	invalidator  ReportInvalidator
	logger       *zap.Logger
}

// NewExpenseService creates a new ExpenseService. invalidator may be nil.
func NewExpenseService(
	categoryRepo expense.CategoryRepository,
	expenseRepo expense.IndirectExpenseRepository,
	invalidator ReportInvalidator,
	logger *zap.Logger,
) *ExpenseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseService{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		invalidator:  invalidator,
		logger:       logger,
	}
}

// ListCategories returns the user's categories, seeding the predefined
// set the first time a user has none.
func (s *ExpenseService) ListCategories(ctx context.Context, userID uuid.UUID) ([]CategoryResponse, error) {
	categories, err := s.categories(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, ToCategoryResponse(&categories[i]))
	}
	return out, nil
}

func (s *ExpenseService) categories(ctx context.Context, userID uuid.UUID) ([]expense.Category, error) {
	categories, err := s.categoryRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		return categories, nil
	}

	defaults := expense.DefaultCategories(userID)
	if err := s.categoryRepo.SaveBatch(ctx, defaults); err != nil {
		return nil, err
	}
	s.logger.Info("Seeded default expense categories",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(defaults)))
	return defaults, nil
}

// CreateCategory adds a custom category
func (s *ExpenseService) CreateCategory(ctx context.Context, userID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	existing, err := s.categories(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, strings.TrimSpace(req.Name)) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
		}
	}

	category, err := expense.NewCategory(userID, req.Name, true, req.IsFixed)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// DeleteCategory removes a custom category together with its monthly records
func (s *ExpenseService) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return err
	}
	if !category.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Predefined categories cannot be deleted")
	}
	if err := s.categoryRepo.DeleteForUser(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// ListMonth returns every category with its value for the "YYYY-MM" month.
// Categories without a record are listed with a zero value.
func (s *ExpenseService) ListMonth(ctx context.Context, userID uuid.UUID, monthKey string) (*MonthExpensesResponse, error) {
	period, err := parseMonth(monthKey)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.expenseRepo.FindForMonth(ctx, userID, period.Start)
	if err != nil {
		return nil, err
	}

	values := make(map[uuid.UUID]decimal.Decimal, len(records))
	for _, r := range records {
		values[r.CategoryID] = r.MonthlyValue
	}

	resp := &MonthExpensesResponse{
		Month: period.Key(),
		Lines: make([]ExpenseLine, 0, len(categories)),
		Total: decimal.Zero,
	}
	for _, c := range categories {
		v := values[c.ID]
		resp.Lines = append(resp.Lines, ExpenseLine{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			IsFixed:      c.IsFixed,
			MonthlyValue: v,
		})
		resp.Total = resp.Total.Add(v)
	}
	return resp, nil
}

// Upsert sets a category's value for one month, creating the record if needed
func (s *ExpenseService) Upsert(ctx context.Context, userID uuid.UUID, req UpsertExpenseRequest) (*ExpenseLine, error) {
	period, err := parseMonth(req.Month)
	if err != nil {
		return nil, err
	}
	category, err := s.category(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, err
	}

	if err := s.upsert(ctx, userID, category.ID, period.Start, req.Value); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)

	return &ExpenseLine{
		CategoryID:   category.ID,
		CategoryName: category.Name,
		IsFixed:      category.IsFixed,
		MonthlyValue: req.Value,
	}, nil
}

// ApplyFixed copies January's value of a fixed category to February
// through December of the same year.
func (s *ExpenseService) ApplyFixed(ctx context.Context, userID, categoryID uuid.UUID, year int) (*ApplyFixedResponse, error) {
	if year < 1900 || year > 9999 {
		return nil, shared.NewDomainError("INVALID_DATE", "Year is out of range")
	}
	category, err := s.category(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsFixed {
		return nil, shared.NewDomainError("INVALID_STATE", "Only fixed categories can be applied to the whole year")
	}

	january, err := s.expenseRepo.FindOne(ctx, userID, categoryID, time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "January value is not set for this category")
		}
		return nil, err
	}

	months := expense.FixedPropagation(year)
	resp := &ApplyFixedResponse{
		CategoryID: categoryID,
		Year:       year,
		Value:      january.MonthlyValue,
		Months:     make([]string, 0, len(months)),
	}
	for _, month := range months {
		if err := s.upsert(ctx, userID, categoryID, month, january.MonthlyValue); err != nil {
			return nil, err
		}
		resp.Months = append(resp.Months, valueobject.MonthKey(month.Year(), month.Month()))
	}
	s.invalidate(ctx, userID)

	s.logger.Debug("Applied fixed expense to year",
		zap.String("category_id", categoryID.String()),
		zap.Int("year", year))
	return resp, nil
}

// TotalByMonth sums the user's indirect expenses for the "YYYY-MM" month
func (s *ExpenseService) TotalByMonth(ctx context.Context, userID uuid.UUID, monthKey string) (decimal.Decimal, error) {
	period, err := parseMonth(monthKey)
	if err != nil {
		return decimal.Zero, err
	}
	return s.expenseRepo.TotalForMonth(ctx, userID, period.Start)
}

func (s *ExpenseService) category(ctx context.Context, userID, id uuid.UUID) (*expense.Category, error) {
	category, err := s.categoryRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return nil, err
	}
	return category, nil
}

func (s *ExpenseService) upsert(ctx context.Context, userID, categoryID uuid.UUID, month time.Time, value decimal.Decimal) error {
	record, err := s.expenseRepo.FindOne(ctx, userID, categoryID, month)
	switch {
	case err == nil:
		if err := record.SetValue(value); err != nil {
			return err
		}
	case errors.Is(err, shared.ErrNotFound):
		record, err = expense.NewIndirectExpense(userID, categoryID, month, value)
		if err != nil {
			return err
		}
	default:
		return err
	}
	return s.expenseRepo.Upsert(ctx, record)
}

func (s *ExpenseService) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("Failed to invalidate report cache",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

func parseMonth(key string) (valueobject.MonthPeriod, error) {
	period, err := valueobject.ParseMonthKey(key)
	if err != nil {
		return valueobject.MonthPeriod{}, shared.NewDomainError("INVALID_DATE", "Month must be formatted as YYYY-MM")
	}
	return period, nil
}
