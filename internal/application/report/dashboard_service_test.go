package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/catalog"
	"github.com/salonfin/backend/internal/domain/expense"
	"github.com/salonfin/backend/internal/domain/ledger"
	"github.com/salonfin/backend/internal/domain/settings"
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
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
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
	return m.Called(ctx, record).Error(0)
}

func (m *MockIndirectExpenseRepository) TotalForMonth(ctx context.Context, userID uuid.UUID, month time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, month)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.Service, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]catalog.Service, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) Save(ctx context.Context, service *catalog.Service) error {
	return m.Called(ctx, service).Error(0)
}

func (m *MockServiceRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type stubParams struct {
	params *settings.BusinessParams
}

func (s stubParams) Params(ctx context.Context, userID uuid.UUID) (*settings.BusinessParams, error) {
	p := *s.params
	return &p, nil
}

// mapCache is a ReportCache over a plain map, serializing like the real caches do
type mapCache struct {
	entries     map[string][]byte
	generations map[uuid.UUID]int64
	invalidated int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte), generations: make(map[uuid.UUID]int64)}
}

func (c *mapCache) Generation(ctx context.Context, userID uuid.UUID) (int64, error) {
	return c.generations[userID], nil
}

func (c *mapCache) Get(ctx context.Context, userID uuid.UUID, key string, dest any) (bool, error) {
	data, ok := c.entries[userID.String()+":"+key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *mapCache) Set(ctx context.Context, userID uuid.UUID, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[userID.String()+":"+key] = data
	return nil
}

func (c *mapCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	c.generations[userID]++
	c.entries = make(map[string][]byte)
	c.invalidated++
	return nil
}

type fixture struct {
	userID   uuid.UUID
	txRepo   *MockTransactionRepository
	expRepo  *MockIndirectExpenseRepository
	svcRepo  *MockServiceRepository
	params   *settings.BusinessParams
	category uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		userID:   uuid.New(),
		txRepo:   new(MockTransactionRepository),
		expRepo:  new(MockIndirectExpenseRepository),
		svcRepo:  new(MockServiceRepository),
		params:   &settings.BusinessParams{ImpostosRate: decimal.NewFromInt(8)},
		category: uuid.New(),
	}

	income, err := ledger.NewTransaction(f.userID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), ledger.KindEntrada, valueobject.NewMoneyFromInt(1000), "", "")
	require.NoError(t, err)
	rent, err := ledger.NewTransaction(f.userID, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), ledger.KindSaida, valueobject.NewMoneyFromInt(200), "Aluguel", "")
	require.NoError(t, err)
	record, err := expense.NewIndirectExpense(f.userID, f.category, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(300))
	require.NoError(t, err)

	f.txRepo.On("FindAllForUser", mock.Anything, f.userID).Return([]ledger.Transaction{*income, *rent}, nil)
	f.expRepo.On("FindBetween", mock.Anything, f.userID, mock.Anything, mock.Anything).Return([]expense.IndirectExpense{*record}, nil)
	f.svcRepo.On("FindAllForUser", mock.Anything, f.userID).Return([]catalog.Service{}, nil)
	return f
}

func (f *fixture) service(opts ...DashboardOption) *DashboardService {
	return NewDashboardService(f.txRepo, f.expRepo, f.svcRepo, stubParams{f.params}, opts...)
}

func TestDashboardService_MonthlyReport(t *testing.T) {
	f := newFixture(t)

	r, err := f.service().MonthlyReport(context.Background(), f.userID, 2024, time.March)

	require.NoError(t, err)
	assert.True(t, r.Faturamento.Equal(decimal.NewFromInt(1000)))
	assert.True(t, r.CustoOperacional.Equal(decimal.NewFromInt(450)))
	assert.True(t, r.LucroLiquido.Equal(decimal.NewFromInt(120)))
	assert.True(t, r.MargemLucro.Equal(decimal.NewFromInt(12)))
	f.expRepo.AssertCalled(t, "FindBetween", mock.Anything, f.userID,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
}

func TestDashboardService_MonthlyReport_UsesConfiguredTax(t *testing.T) {
	f := newFixture(t)
	f.params.ImpostosRate = decimal.NewFromInt(6)

	r, err := f.service().MonthlyReport(context.Background(), f.userID, 2024, time.March)

	require.NoError(t, err)
	assert.True(t, r.Impostos.Equal(decimal.NewFromInt(60)))
}

func TestDashboardService_MonthlyReport_Cache(t *testing.T) {
	f := newFixture(t)
	cache := newMapCache()
	svc := f.service(WithCache(cache))

	first, err := svc.MonthlyReport(context.Background(), f.userID, 2024, time.March)
	require.NoError(t, err)
	second, err := svc.MonthlyReport(context.Background(), f.userID, 2024, time.March)
	require.NoError(t, err)

	assert.True(t, first.LucroLiquido.Equal(second.LucroLiquido))
	f.txRepo.AssertNumberOfCalls(t, "FindAllForUser", 1)

	require.NoError(t, svc.Invalidate(context.Background(), f.userID))
	_, err = svc.MonthlyReport(context.Background(), f.userID, 2024, time.March)
	require.NoError(t, err)
	f.txRepo.AssertNumberOfCalls(t, "FindAllForUser", 2)
	assert.Equal(t, 1, cache.invalidated)
}

func TestDashboardService_MonthlyReport_InvalidMonth(t *testing.T) {
	f := newFixture(t)

	_, err := f.service().MonthlyReport(context.Background(), f.userID, 2024, time.Month(13))

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_DATE", de.Code)
}

func TestDashboardService_HistoricalTrend(t *testing.T) {
	f := newFixture(t)

	items, err := f.service().HistoricalTrend(context.Background(), f.userID, 2024, time.March)

	require.NoError(t, err)
	require.Len(t, items, 6)
	assert.Equal(t, "Out/23", items[0].Label)
	assert.True(t, items[5].LucroLiquido.Equal(decimal.NewFromInt(120)))
	f.expRepo.AssertCalled(t, "FindBetween", mock.Anything, f.userID,
		time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
}

func TestDashboardService_ChartAndComparison(t *testing.T) {
	f := newFixture(t)
	svc := f.service()

	chart, err := svc.ChartData(context.Background(), f.userID, 2024, time.March)
	require.NoError(t, err)
	assert.Len(t, chart.PieSlices, 5)

	cmp, err := svc.OperationalCostComparison(context.Background(), f.userID, 2024, time.March)
	require.NoError(t, err)
	assert.True(t, cmp.Estimated.Equal(decimal.NewFromInt(450)))
	assert.True(t, cmp.Actual.Equal(decimal.NewFromInt(200)))
}

func TestDashboardService_DailyCashFlow_UsesInjectedClock(t *testing.T) {
	f := newFixture(t)
	svc := f.service(WithClock(func() time.Time {
		return time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)
	}))

	flow, err := svc.DailyCashFlow(context.Background(), f.userID, time.Time{})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", flow.Date)
	assert.True(t, flow.Saldo.Equal(decimal.NewFromInt(1000)))

	year, month := svc.CurrentMonth()
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.March, month)
}

func TestDashboardService_GoalProgress(t *testing.T) {
	f := newFixture(t)
	f.params.MetaFaturamentoMensal = decimal.NewFromInt(4000)
	f.params.MetaAtendimentosMensal = 10

	g, err := f.service().GoalProgress(context.Background(), f.userID, 2024, time.March)

	require.NoError(t, err)
	assert.True(t, g.FaturamentoPercent.Equal(decimal.NewFromInt(25)))
	assert.True(t, g.AtendimentosPercent.Equal(decimal.NewFromInt(10)))
}

// invalidatingParams simulates a write landing while a report is computed
type invalidatingParams struct {
	stubParams
	cache *mapCache
	once  bool
}

func (p *invalidatingParams) Params(ctx context.Context, userID uuid.UUID) (*settings.BusinessParams, error) {
	if !p.once {
		p.once = true
		if err := p.cache.Invalidate(ctx, userID); err != nil {
			return nil, err
		}
	}
	return p.stubParams.Params(ctx, userID)
}

func TestDashboardService_MonthlyReport_WriteDuringComputeIsNotCached(t *testing.T) {
	f := newFixture(t)
	cache := newMapCache()
	params := &invalidatingParams{stubParams: stubParams{f.params}, cache: cache}
	svc := NewDashboardService(f.txRepo, f.expRepo, f.svcRepo, params, WithCache(cache))

	_, err := svc.MonthlyReport(context.Background(), f.userID, 2024, time.March)
	require.NoError(t, err)
	_, err = svc.MonthlyReport(context.Background(), f.userID, 2024, time.March)
	require.NoError(t, err)

	// the first result was stored under the generation the write retired
	f.txRepo.AssertNumberOfCalls(t, "FindAllForUser", 2)

	_, err = svc.MonthlyReport(context.Background(), f.userID, 2024, time.March)
	require.NoError(t, err)
	f.txRepo.AssertNumberOfCalls(t, "FindAllForUser", 2)
}

type recordedMetrics struct {
	computed []string
	lookups  []bool
}

func (m *recordedMetrics) RecordReportComputed(ctx context.Context, kind string, elapsed time.Duration) {
	m.computed = append(m.computed, kind)
}

func (m *recordedMetrics) RecordCacheLookup(ctx context.Context, kind string, hit bool) {
	m.lookups = append(m.lookups, hit)
}

func TestDashboardService_Metrics(t *testing.T) {
	f := newFixture(t)
	metrics := &recordedMetrics{}
	svc := f.service(WithCache(newMapCache()), WithMetrics(metrics))

	for i := 0; i < 2; i++ {
		_, err := svc.MonthlyReport(context.Background(), f.userID, 2024, time.March)
		require.NoError(t, err)
	}
	_, err := svc.CategoryBreakdown(context.Background(), f.userID, 2024, time.March)
	require.NoError(t, err)

	assert.Equal(t, []string{"monthly", "breakdown"}, metrics.computed)
	assert.Equal(t, []bool{false, true}, metrics.lookups)
}
