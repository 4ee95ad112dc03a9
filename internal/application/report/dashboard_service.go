package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/catalog"
	"github.com/salonfin/backend/internal/domain/expense"
	"github.com/salonfin/backend/internal/domain/ledger"
	"github.com/salonfin/backend/internal/domain/report"
	"github.com/salonfin/backend/internal/domain/settings"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ParamsProvider resolves the user's business parameters
type ParamsProvider interface {
	Params(ctx context.Context, userID uuid.UUID) (*settings.BusinessParams, error)
}

// Config holds the report defaults
type Config struct {
	Rates       report.Rates
	TrendWindow int
	Location    *time.Location
}

// DefaultConfig returns the built-in report defaults
func DefaultConfig() Config {
	return Config{
		Rates:       report.DefaultRates(),
		TrendWindow: report.DefaultTrendWindow,
		Location:    time.UTC,
	}
}

// Report kinds, as recorded in metrics
const (
	kindMonthly   = "monthly"
	kindTrend     = "trend"
	kindBreakdown = "breakdown"
	kindDaily     = "daily"
)

// DashboardService loads a user's ledger, expenses, catalog and parameters
// and runs the report engine over them.
type DashboardService struct {
	txRepo      ledger.TransactionRepository
	expenseRepo expense.IndirectExpenseRepository
	serviceRepo catalog.ServiceRepository
	params      ParamsProvider
	cache       ReportCache
	metrics     Metrics
	config      Config
	logger      *zap.Logger
	now         func() time.Time
}

// DashboardOption configures a DashboardService
type DashboardOption func(*DashboardService)

// WithCache enables caching of computed reports
func WithCache(cache ReportCache) DashboardOption {
	return func(s *DashboardService) {
		s.cache = cache
	}
}

// WithMetrics records computed reports and cache lookups on m
func WithMetrics(m Metrics) DashboardOption {
	return func(s *DashboardService) {
		s.metrics = m
	}
}

// WithConfig overrides the report defaults
func WithConfig(cfg Config) DashboardOption {
	return func(s *DashboardService) {
		s.config = cfg
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) DashboardOption {
	return func(s *DashboardService) {
		s.logger = logger
	}
}

// WithClock sets the clock used to resolve "today"
func WithClock(now func() time.Time) DashboardOption {
	return func(s *DashboardService) {
		s.now = now
	}
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	txRepo ledger.TransactionRepository,
	expenseRepo expense.IndirectExpenseRepository,
	serviceRepo catalog.ServiceRepository,
	params ParamsProvider,
	opts ...DashboardOption,
) *DashboardService {
	s := &DashboardService{
		txRepo:      txRepo,
		expenseRepo: expenseRepo,
		serviceRepo: serviceRepo,
		params:      params,
		config:      DefaultConfig(),
		logger:      zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.config.Location == nil {
		s.config.Location = time.UTC
	}
	return s
}

// MonthlyReport computes the full report of one month
func (s *DashboardService) MonthlyReport(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*report.MonthlyReportData, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}
	slot := s.slotFor(ctx, userID, "monthly:"+valueobject.MonthKey(year, month))

	var cached report.MonthlyReportData
	if s.fromCache(ctx, userID, kindMonthly, slot, &cached) {
		return &cached, nil
	}

	start := time.Now()
	period := valueobject.NewMonthPeriod(year, month, s.config.Location)
	txs, err := s.txRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	totals, err := s.expenseTotals(ctx, userID, period, period)
	if err != nil {
		return nil, err
	}
	services, err := s.serviceRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}
	params, err := s.params.Params(ctx, userID)
	if err != nil {
		return nil, err
	}

	r := report.ComputeMonthlyReport(txs, month, year, totals, services, s.reportOptions(params)...)
	s.recordComputed(ctx, kindMonthly, start)
	s.toCache(ctx, userID, slot, r)
	return &r, nil
}

// HistoricalTrend computes the trailing trend ending at the given month
func (s *DashboardService) HistoricalTrend(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]report.HistoricalDataItem, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}
	slot := s.slotFor(ctx, userID, fmt.Sprintf("trend:%s:%d", valueobject.MonthKey(year, month), s.window()))

	var cached []report.HistoricalDataItem
	if s.fromCache(ctx, userID, kindTrend, slot, &cached) {
		return cached, nil
	}

	start := time.Now()
	target := valueobject.NewMonthPeriod(year, month, s.config.Location)
	txs, err := s.txRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	totals, err := s.expenseTotals(ctx, userID, target.AddMonths(-(s.window() - 1)), target)
	if err != nil {
		return nil, err
	}
	params, err := s.params.Params(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := report.ComputeHistoricalTrend(txs, month, year, totals, params,
		report.WithRates(s.config.Rates),
		report.WithLocation(s.config.Location),
		report.WithTrendWindow(s.window()),
	)
	s.recordComputed(ctx, kindTrend, start)
	s.toCache(ctx, userID, slot, items)
	return items, nil
}

// CategoryBreakdown groups the month's exits by category
func (s *DashboardService) CategoryBreakdown(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]report.CategoryBreakdownItem, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}
	start := time.Now()
	txs, err := s.txRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	items := report.ComputeCategoryBreakdown(txs, month, year, report.WithLocation(s.config.Location))
	s.recordComputed(ctx, kindBreakdown, start)
	return items, nil
}

// OperationalCostComparison shows the flat-rate operational estimate next
// to the categorized spending of the month.
func (s *DashboardService) OperationalCostComparison(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*report.OperationalComparison, error) {
	r, err := s.MonthlyReport(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.CategoryBreakdown(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	cmp := report.CompareOperationalCost(*r, breakdown)
	return &cmp, nil
}

// ChartData projects the month's report into chart series
func (s *DashboardService) ChartData(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*report.ChartData, error) {
	r, err := s.MonthlyReport(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	chart := report.ShapeChartData(*r)
	return &chart, nil
}

// DailyCashFlow sums one day's entries and exits. A zero day means today;
// otherwise only its calendar date is used, read in the report location.
func (s *DashboardService) DailyCashFlow(ctx context.Context, userID uuid.UUID, day time.Time) (*report.DailyCashFlow, error) {
	if day.IsZero() {
		day = s.now().In(s.config.Location)
	} else {
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.config.Location)
	}

	start := time.Now()
	txs, err := s.txRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	flow := report.ComputeDailyCashFlow(txs, day)
	s.recordComputed(ctx, kindDaily, start)
	return &flow, nil
}

// GoalProgress measures the month against the configured goals
func (s *DashboardService) GoalProgress(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*report.GoalProgress, error) {
	r, err := s.MonthlyReport(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	params, err := s.params.Params(ctx, userID)
	if err != nil {
		return nil, err
	}
	g := report.ComputeGoalProgress(*r, *params, year, month)
	return &g, nil
}

// Invalidate drops the user's cached reports
func (s *DashboardService) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, userID)
}

// CurrentMonth returns the year and month of the service clock
func (s *DashboardService) CurrentMonth() (int, time.Month) {
	now := s.now().In(s.config.Location)
	return now.Year(), now.Month()
}

func (s *DashboardService) reportOptions(params *settings.BusinessParams) []report.Option {
	return []report.Option{
		report.WithRates(s.config.Rates),
		report.WithTaxRate(params.ImpostosRate),
		report.WithLocation(s.config.Location),
	}
}

func (s *DashboardService) window() int {
	if s.config.TrendWindow <= 0 {
		return report.DefaultTrendWindow
	}
	return s.config.TrendWindow
}

// expenseTotals loads the indirect-expense records between two months and
// indexes them by month key.
func (s *DashboardService) expenseTotals(ctx context.Context, userID uuid.UUID, from, to valueobject.MonthPeriod) (expense.TotalFunc, error) {
	fromUTC := time.Date(from.Year, from.Month, 1, 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(to.Year, to.Month, 1, 0, 0, 0, 0, time.UTC)
	records, err := s.expenseRepo.FindBetween(ctx, userID, fromUTC, toUTC)
	if err != nil {
		return nil, fmt.Errorf("load indirect expenses: %w", err)
	}
	return expense.TotalFuncFrom(records), nil
}

// cacheSlot is a report key scoped to the user's cache generation. It must be taken
// before the report inputs are loaded.
type cacheSlot struct {
	key     string
	enabled bool
}

func (s *DashboardService) slotFor(ctx context.Context, userID uuid.UUID, key string) cacheSlot {
	if s.cache == nil {
		return cacheSlot{}
	}
	gen, err := s.cache.Generation(ctx, userID)
	if err != nil {
		s.logger.Warn("Report cache generation read failed", zap.String("key", key), zap.Error(err))
		return cacheSlot{}
	}
	return cacheSlot{key: fmt.Sprintf("g%d:%s", gen, key), enabled: true}
}

func (s *DashboardService) fromCache(ctx context.Context, userID uuid.UUID, kind string, slot cacheSlot, dest any) bool {
	if !slot.enabled {
		return false
	}
	found, err := s.cache.Get(ctx, userID, slot.key, dest)
	if err != nil {
		s.logger.Warn("Report cache read failed", zap.String("key", slot.key), zap.Error(err))
		return false
	}
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(ctx, kind, found)
	}
	if found {
		s.logger.Debug("Report cache hit", zap.String("key", slot.key), zap.String("user_id", userID.String()))
	}
	return found
}

func (s *DashboardService) toCache(ctx context.Context, userID uuid.UUID, slot cacheSlot, value any) {
	if !slot.enabled {
		return
	}
	if err := s.cache.Set(ctx, userID, slot.key, value); err != nil {
		s.logger.Warn("Report cache write failed", zap.String("key", slot.key), zap.Error(err))
	}
}

func (s *DashboardService) recordComputed(ctx context.Context, kind string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordReportComputed(ctx, kind, time.Since(start))
	}
}

func validateMonth(year int, month time.Month) error {
	if month < time.January || month > time.December {
		return shared.NewDomainError("INVALID_DATE", "Month must be between 1 and 12")
	}
	if year < 1900 || year > 9999 {
		return shared.NewDomainError("INVALID_DATE", "Year is out of range")
	}
	return nil
}
