package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/salonfin/backend/internal/application/catalog"
	expenseapp "github.com/salonfin/backend/internal/application/expense"
	ledgerapp "github.com/salonfin/backend/internal/application/ledger"
	reportapp "github.com/salonfin/backend/internal/application/report"
	settingsapp "github.com/salonfin/backend/internal/application/settings"
	"github.com/salonfin/backend/internal/domain/catalog"
	"github.com/salonfin/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// DashboardService computes the financial reports
type DashboardService interface {
	MonthlyReport(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*report.MonthlyReportData, error)
	HistoricalTrend(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]report.HistoricalDataItem, error)
	CategoryBreakdown(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]report.CategoryBreakdownItem, error)
	OperationalCostComparison(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*report.OperationalComparison, error)
	ChartData(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*report.ChartData, error)
	DailyCashFlow(ctx context.Context, userID uuid.UUID, day time.Time) (*report.DailyCashFlow, error)
	GoalProgress(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*report.GoalProgress, error)
	CurrentMonth() (int, time.Month)
}

// TransactionService manages ledger rows
type TransactionService interface {
	Create(ctx context.Context, userID uuid.UUID, req ledgerapp.CreateTransactionRequest) (*ledgerapp.TransactionResponse, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*ledgerapp.TransactionResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req ledgerapp.UpdateTransactionRequest) (*ledgerapp.TransactionResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, f ledgerapp.TransactionListFilter) ([]ledgerapp.TransactionResponse, int64, error)
}

// ExpenseService manages expense categories and their monthly values
type ExpenseService interface {
	ListCategories(ctx context.Context, userID uuid.UUID) ([]expenseapp.CategoryResponse, error)
	CreateCategory(ctx context.Context, userID uuid.UUID, req expenseapp.CreateCategoryRequest) (*expenseapp.CategoryResponse, error)
	DeleteCategory(ctx context.Context, userID, id uuid.UUID) error
	ListMonth(ctx context.Context, userID uuid.UUID, monthKey string) (*expenseapp.MonthExpensesResponse, error)
	Upsert(ctx context.Context, userID uuid.UUID, req expenseapp.UpsertExpenseRequest) (*expenseapp.ExpenseLine, error)
	ApplyFixed(ctx context.Context, userID, categoryID uuid.UUID, year int) (*expenseapp.ApplyFixedResponse, error)
	TotalByMonth(ctx context.Context, userID uuid.UUID, monthKey string) (decimal.Decimal, error)
}

// CatalogService manages materials and priced services
type CatalogService interface {
	ListMaterials(ctx context.Context, userID uuid.UUID) ([]catalogapp.MaterialResponse, error)
	CreateMaterial(ctx context.Context, userID uuid.UUID, req catalogapp.SaveMaterialRequest) (*catalogapp.MaterialResponse, error)
	UpdateMaterial(ctx context.Context, userID, id uuid.UUID, req catalogapp.SaveMaterialRequest) (*catalogapp.MaterialResponse, error)
	DeleteMaterial(ctx context.Context, userID, id uuid.UUID) error
	ListServices(ctx context.Context, userID uuid.UUID) ([]catalogapp.ServiceResponse, error)
	GetService(ctx context.Context, userID, id uuid.UUID) (*catalogapp.ServiceResponse, error)
	CreateService(ctx context.Context, userID uuid.UUID, req catalogapp.SaveServiceRequest) (*catalogapp.ServiceResponse, error)
	UpdateService(ctx context.Context, userID, id uuid.UUID, req catalogapp.SaveServiceRequest) (*catalogapp.ServiceResponse, error)
	DeleteService(ctx context.Context, userID, id uuid.UUID) error
	Analyze(ctx context.Context, userID, id uuid.UUID) (*catalogapp.ServiceAnalysisResponse, error)
	UpdateLine(ctx context.Context, userID uuid.UUID, req catalogapp.UpdateLineRequest) (*catalog.MaterialCostLine, error)
}

// SettingsService manages the business parameters
type SettingsService interface {
	Get(ctx context.Context, userID uuid.UUID) (*settingsapp.SettingsResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req settingsapp.UpdateSettingsRequest) (*settingsapp.SettingsResponse, error)
}

var (
	_ DashboardService   = (*reportapp.DashboardService)(nil)
	_ TransactionService = (*ledgerapp.TransactionService)(nil)
	_ ExpenseService     = (*expenseapp.ExpenseService)(nil)
	_ CatalogService     = (*catalogapp.CatalogService)(nil)
	_ SettingsService    = (*settingsapp.SettingsService)(nil)
)
