package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/catalog"
	"github.com/salonfin/backend/internal/domain/settings"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMaterialRepository struct {
	mock.Mock
}

func (m *MockMaterialRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.Material, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Material), args.Error(1)
}

func (m *MockMaterialRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]catalog.Material, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]catalog.Material), args.Error(1)
}

func (m *MockMaterialRepository) Save(ctx context.Context, material *catalog.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockMaterialRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
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
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type stubParams struct {
	params *settings.BusinessParams
}

func (s stubParams) Params(ctx context.Context, userID uuid.UUID) (*settings.BusinessParams, error) {
	p := *s.params
	p.UserID = userID
	return &p, nil
}

func pricingParams() *settings.BusinessParams {
	return &settings.BusinessParams{
		WeightedAverageRate:          decimal.NewFromInt(3),
		ImpostosRate:                 decimal.NewFromInt(8),
		DespesasIndiretasDepreciacao: decimal.NewFromInt(35),
		CommissionRate:               decimal.NewFromInt(25),
	}
}

func TestCatalogService_CreateService_PricesWithCurrentParams(t *testing.T) {
	userID := uuid.New()
	// unit cost 2.00
	tinta, err := catalog.NewMaterial(userID, "Tinta", "ml", decimal.NewFromInt(50), valueobject.NewMoneyFromInt(100))
	require.NoError(t, err)

	materials := new(MockMaterialRepository)
	services := new(MockServiceRepository)
	materials.On("FindAllForUser", mock.Anything, userID).Return([]catalog.Material{*tinta}, nil)
	services.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Service")).Return(nil)

	svc := NewCatalogService(materials, services, stubParams{pricingParams()}, nil, nil)
	pricedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return pricedAt }

	resp, err := svc.CreateService(context.Background(), userID, SaveServiceRequest{
		Name:          "Coloração",
		SalePrice:     decimal.NewFromInt(100),
		MaterialCosts: []MaterialLineRequest{{MaterialID: tinta.ID, Quantity: decimal.NewFromInt(5)}},
	})

	require.NoError(t, err)
	require.Len(t, resp.MaterialCosts, 1)
	assert.True(t, resp.MaterialCosts[0].Cost.Equal(decimal.NewFromInt(10)))
	assert.True(t, resp.CommissionRate.Equal(decimal.NewFromInt(25)), "falls back to configured commission")
	assert.True(t, resp.Pricing.TotalCost.Equal(decimal.NewFromInt(46)))
	assert.True(t, resp.Pricing.GrossProfit.Equal(decimal.NewFromInt(54)))
	assert.True(t, resp.Pricing.ProfitMargin.Equal(decimal.NewFromInt(54)))
	assert.Equal(t, pricedAt, resp.Pricing.At)
}

func TestCatalogService_UpdateService_KeepsCostOfMissingMaterial(t *testing.T) {
	userID := uuid.New()
	goneID := uuid.New()
	existing, err := catalog.NewService(userID, "Escova", valueobject.NewMoneyFromInt(60), decimal.NewFromInt(20),
		[]catalog.MaterialCostLine{{MaterialID: goneID, Quantity: decimal.NewFromInt(1), Cost: decimal.NewFromInt(4)}})
	require.NoError(t, err)

	materials := new(MockMaterialRepository)
	services := new(MockServiceRepository)
	services.On("FindByIDForUser", mock.Anything, userID, existing.ID).Return(existing, nil)
	materials.On("FindAllForUser", mock.Anything, userID).Return([]catalog.Material{}, nil)
	services.On("Save", mock.Anything, existing).Return(nil)

	resp, err := NewCatalogService(materials, services, stubParams{pricingParams()}, nil, nil).UpdateService(
		context.Background(), userID, existing.ID, SaveServiceRequest{
			Name:          "Escova",
			SalePrice:     decimal.NewFromInt(70),
			MaterialCosts: []MaterialLineRequest{{MaterialID: goneID, Quantity: decimal.NewFromInt(3)}},
		})

	require.NoError(t, err)
	assert.True(t, resp.MaterialCosts[0].Cost.Equal(decimal.NewFromInt(4)))
	assert.True(t, resp.MaterialCosts[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, resp.CommissionRate.Equal(decimal.NewFromInt(20)), "keeps existing commission")
}

func TestCatalogService_Analyze(t *testing.T) {
	userID := uuid.New()
	existing, err := catalog.NewService(userID, "Corte", valueobject.NewMoneyFromInt(100), decimal.NewFromInt(25),
		[]catalog.MaterialCostLine{{MaterialID: uuid.New(), Quantity: decimal.NewFromInt(1), Cost: decimal.NewFromInt(10)}})
	require.NoError(t, err)
	existing.Reprice(*pricingParams(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	current := pricingParams()
	current.ImpostosRate = decimal.NewFromInt(12)

	services := new(MockServiceRepository)
	services.On("FindByIDForUser", mock.Anything, userID, existing.ID).Return(existing, nil)

	resp, err := NewCatalogService(nil, services, stubParams{current}, nil, nil).Analyze(context.Background(), userID, existing.ID)

	require.NoError(t, err)
	assert.True(t, resp.Analysis.Snapshot.TotalCost.Equal(decimal.NewFromInt(46)))
	assert.True(t, resp.Analysis.Current.TotalCost.Equal(decimal.NewFromInt(50)))
	assert.True(t, resp.Analysis.Current.OperationalCost.Equal(decimal.NewFromInt(35)))
	assert.True(t, resp.Analysis.Stale)
}

func TestCatalogService_UpdateLine(t *testing.T) {
	userID := uuid.New()
	m, err := catalog.NewMaterial(userID, "Tinta", "ml", decimal.NewFromInt(10), valueobject.NewMoneyFromInt(30))
	require.NoError(t, err)
	materials := new(MockMaterialRepository)
	materials.On("FindAllForUser", mock.Anything, userID).Return([]catalog.Material{*m}, nil)
	svc := NewCatalogService(materials, nil, nil, nil, nil)

	line, err := svc.UpdateLine(context.Background(), userID, UpdateLineRequest{MaterialID: m.ID, Quantity: decimal.NewFromInt(5), Cost: decimal.NewFromInt(6)})
	require.NoError(t, err)
	assert.True(t, line.Cost.Equal(decimal.NewFromInt(15)))

	line, err = svc.UpdateLine(context.Background(), userID, UpdateLineRequest{MaterialID: uuid.New(), Quantity: decimal.NewFromInt(5), Cost: decimal.NewFromInt(6)})
	require.NoError(t, err)
	assert.True(t, line.Cost.Equal(decimal.NewFromInt(6)))
}

func TestCatalogService_CreateMaterial_Invalid(t *testing.T) {
	materials := new(MockMaterialRepository)

	_, err := NewCatalogService(materials, nil, nil, nil, nil).CreateMaterial(context.Background(), uuid.New(), SaveMaterialRequest{
		Name: "Luva", Unit: "un", BatchQuantity: decimal.NewFromInt(-1),
	})

	assert.Error(t, err)
	materials.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
