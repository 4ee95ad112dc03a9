package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/salonfin/backend/internal/application/catalog"
	expenseapp "github.com/salonfin/backend/internal/application/expense"
	ledgerapp "github.com/salonfin/backend/internal/application/ledger"
	settingsapp "github.com/salonfin/backend/internal/application/settings"
	"github.com/salonfin/backend/internal/domain/catalog"
	"github.com/salonfin/backend/internal/domain/report"
	"github.com/salonfin/backend/internal/interfaces/http/dto"
	"github.com/salonfin/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// typed returns the first mock return value as T, tolerating an untyped nil
func typed[T any](args mock.Arguments) (T, error) {
	var zero T
	if v := args.Get(0); v != nil {
		return v.(T), args.Error(1)
	}
	return zero, args.Error(1)
}

// authenticated simulates the JWT middleware for userID
func authenticated(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.RequestIDKey, "test-request-id")
		if userID != uuid.Nil {
			c.Set(middleware.JWTUserIDKey, userID)
		}
		c.Next()
	}
}

func newTestEngine(userID uuid.UUID) *gin.Engine {
	r := gin.New()
	r.Use(authenticated(userID))
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

type mockDashboard struct {
	mock.Mock
	year  int
	month time.Month
}

func (m *mockDashboard) MonthlyReport(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*report.MonthlyReportData, error) {
	return typed[*report.MonthlyReportData](m.Called(ctx, userID, year, month))
}

func (m *mockDashboard) HistoricalTrend(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]report.HistoricalDataItem, error) {
	return typed[[]report.HistoricalDataItem](m.Called(ctx, userID, year, month))
}

func (m *mockDashboard) CategoryBreakdown(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]report.CategoryBreakdownItem, error) {
	return typed[[]report.CategoryBreakdownItem](m.Called(ctx, userID, year, month))
}

func (m *mockDashboard) OperationalCostComparison(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*report.OperationalComparison, error) {
	return typed[*report.OperationalComparison](m.Called(ctx, userID, year, month))
}

func (m *mockDashboard) ChartData(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*report.ChartData, error) {
	return typed[*report.ChartData](m.Called(ctx, userID, year, month))
}

func (m *mockDashboard) DailyCashFlow(ctx context.Context, userID uuid.UUID, day time.Time) (*report.DailyCashFlow, error) {
	return typed[*report.DailyCashFlow](m.Called(ctx, userID, day))
}

func (m *mockDashboard) GoalProgress(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*report.GoalProgress, error) {
	return typed[*report.GoalProgress](m.Called(ctx, userID, year, month))
}

func (m *mockDashboard) CurrentMonth() (int, time.Month) {
	return m.year, m.month
}

type mockTransactions struct {
	mock.Mock
}

func (m *mockTransactions) Create(ctx context.Context, userID uuid.UUID, req ledgerapp.CreateTransactionRequest) (*ledgerapp.TransactionResponse, error) {
	return typed[*ledgerapp.TransactionResponse](m.Called(ctx, userID, req))
}

func (m *mockTransactions) GetByID(ctx context.Context, userID, id uuid.UUID) (*ledgerapp.TransactionResponse, error) {
	return typed[*ledgerapp.TransactionResponse](m.Called(ctx, userID, id))
}

func (m *mockTransactions) Update(ctx context.Context, userID, id uuid.UUID, req ledgerapp.UpdateTransactionRequest) (*ledgerapp.TransactionResponse, error) {
	return typed[*ledgerapp.TransactionResponse](m.Called(ctx, userID, id, req))
}

func (m *mockTransactions) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockTransactions) List(ctx context.Context, userID uuid.UUID, f ledgerapp.TransactionListFilter) ([]ledgerapp.TransactionResponse, int64, error) {
	args := m.Called(ctx, userID, f)
	items, _ := args.Get(0).([]ledgerapp.TransactionResponse)
	return items, args.Get(1).(int64), args.Error(2)
}

type mockExpenses struct {
	mock.Mock
}

func (m *mockExpenses) ListCategories(ctx context.Context, userID uuid.UUID) ([]expenseapp.CategoryResponse, error) {
	return typed[[]expenseapp.CategoryResponse](m.Called(ctx, userID))
}

func (m *mockExpenses) CreateCategory(ctx context.Context, userID uuid.UUID, req expenseapp.CreateCategoryRequest) (*expenseapp.CategoryResponse, error) {
	return typed[*expenseapp.CategoryResponse](m.Called(ctx, userID, req))
}

func (m *mockExpenses) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockExpenses) ListMonth(ctx context.Context, userID uuid.UUID, monthKey string) (*expenseapp.MonthExpensesResponse, error) {
	return typed[*expenseapp.MonthExpensesResponse](m.Called(ctx, userID, monthKey))
}

func (m *mockExpenses) Upsert(ctx context.Context, userID uuid.UUID, req expenseapp.UpsertExpenseRequest) (*expenseapp.ExpenseLine, error) {
	return typed[*expenseapp.ExpenseLine](m.Called(ctx, userID, req))
}

func (m *mockExpenses) ApplyFixed(ctx context.Context, userID, categoryID uuid.UUID, year int) (*expenseapp.ApplyFixedResponse, error) {
	return typed[*expenseapp.ApplyFixedResponse](m.Called(ctx, userID, categoryID, year))
}

func (m *mockExpenses) TotalByMonth(ctx context.Context, userID uuid.UUID, monthKey string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, monthKey)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ListMaterials(ctx context.Context, userID uuid.UUID) ([]catalogapp.MaterialResponse, error) {
	return typed[[]catalogapp.MaterialResponse](m.Called(ctx, userID))
}

func (m *mockCatalog) CreateMaterial(ctx context.Context, userID uuid.UUID, req catalogapp.SaveMaterialRequest) (*catalogapp.MaterialResponse, error) {
	return typed[*catalogapp.MaterialResponse](m.Called(ctx, userID, req))
}

func (m *mockCatalog) UpdateMaterial(ctx context.Context, userID, id uuid.UUID, req catalogapp.SaveMaterialRequest) (*catalogapp.MaterialResponse, error) {
	return typed[*catalogapp.MaterialResponse](m.Called(ctx, userID, id, req))
}

func (m *mockCatalog) DeleteMaterial(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockCatalog) ListServices(ctx context.Context, userID uuid.UUID) ([]catalogapp.ServiceResponse, error) {
	return typed[[]catalogapp.ServiceResponse](m.Called(ctx, userID))
}

func (m *mockCatalog) GetService(ctx context.Context, userID, id uuid.UUID) (*catalogapp.ServiceResponse, error) {
	return typed[*catalogapp.ServiceResponse](m.Called(ctx, userID, id))
}

func (m *mockCatalog) CreateService(ctx context.Context, userID uuid.UUID, req catalogapp.SaveServiceRequest) (*catalogapp.ServiceResponse, error) {
	return typed[*catalogapp.ServiceResponse](m.Called(ctx, userID, req))
}

func (m *mockCatalog) UpdateService(ctx context.Context, userID, id uuid.UUID, req catalogapp.SaveServiceRequest) (*catalogapp.ServiceResponse, error) {
	return typed[*catalogapp.ServiceResponse](m.Called(ctx, userID, id, req))
}

func (m *mockCatalog) DeleteService(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockCatalog) Analyze(ctx context.Context, userID, id uuid.UUID) (*catalogapp.ServiceAnalysisResponse, error) {
	return typed[*catalogapp.ServiceAnalysisResponse](m.Called(ctx, userID, id))
}

func (m *mockCatalog) UpdateLine(ctx context.Context, userID uuid.UUID, req catalogapp.UpdateLineRequest) (*catalog.MaterialCostLine, error) {
	return typed[*catalog.MaterialCostLine](m.Called(ctx, userID, req))
}

type mockSettings struct {
	mock.Mock
}

func (m *mockSettings) Get(ctx context.Context, userID uuid.UUID) (*settingsapp.SettingsResponse, error) {
	return typed[*settingsapp.SettingsResponse](m.Called(ctx, userID))
}

func (m *mockSettings) Update(ctx context.Context, userID uuid.UUID, req settingsapp.UpdateSettingsRequest) (*settingsapp.SettingsResponse, error) {
	return typed[*settingsapp.SettingsResponse](m.Called(ctx, userID, req))
}

var (
	_ DashboardService   = (*mockDashboard)(nil)
	_ TransactionService = (*mockTransactions)(nil)
	_ ExpenseService     = (*mockExpenses)(nil)
	_ CatalogService     = (*mockCatalog)(nil)
	_ SettingsService    = (*mockSettings)(nil)
)
