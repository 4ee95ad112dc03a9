package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/catalog"
	"github.com/salonfin/backend/internal/domain/settings"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ParamsProvider resolves the business parameters services are priced with
type ParamsProvider interface {
	Params(ctx context.Context, userID uuid.UUID) (*settings.BusinessParams, error)
}

// ReportInvalidator drops cached reports after catalog changes
type ReportInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// CatalogService handles materials, services and service pricing
type CatalogService struct {
	materialRepo catalog.MaterialRepository
	serviceRepo  catalog.ServiceRepository
	params       ParamsProvider
	invalidator  ReportInvalidator
	logger       *zap.Logger
	now          func() time.Time
}

// NewCatalogService creates a new CatalogService. invalidator may be nil.
func NewCatalogService(
	materialRepo catalog.MaterialRepository,
	serviceRepo catalog.ServiceRepository,
	params ParamsProvider,
	invalidator ReportInvalidator,
	logger *zap.Logger,
) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		materialRepo: materialRepo,
		serviceRepo:  serviceRepo,
		params:       params,
		invalidator:  invalidator,
		logger:       logger,
		now:          time.Now,
	}
}

// ListMaterials returns the user's materials
func (s *CatalogService) ListMaterials(ctx context.Context, userID uuid.UUID) ([]MaterialResponse, error) {
	materials, err := s.materialRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]MaterialResponse, 0, len(materials))
	for i := range materials {
		out = append(out, ToMaterialResponse(&materials[i]))
	}
	return out, nil
}

// CreateMaterial adds a material to the catalog
func (s *CatalogService) CreateMaterial(ctx context.Context, userID uuid.UUID, req SaveMaterialRequest) (*MaterialResponse, error) {
	m, err := catalog.NewMaterial(userID, req.Name, req.Unit, req.BatchQuantity, valueobject.NewMoney(req.BatchPrice))
	if err != nil {
		return nil, err
	}
	if err := s.materialRepo.Save(ctx, m); err != nil {
		return nil, err
	}
	resp := ToMaterialResponse(m)
	return &resp, nil
}

// UpdateMaterial edits a material. Services using it keep their stored
// line costs until they are saved again.
func (s *CatalogService) UpdateMaterial(ctx context.Context, userID, id uuid.UUID, req SaveMaterialRequest) (*MaterialResponse, error) {
	m, err := s.materialRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := m.Update(req.Name, req.Unit, req.BatchQuantity, valueobject.NewMoney(req.BatchPrice)); err != nil {
		return nil, err
	}
	if err := s.materialRepo.Save(ctx, m); err != nil {
		return nil, err
	}
	resp := ToMaterialResponse(m)
	return &resp, nil
}

// DeleteMaterial removes a material. Lines that reference it keep their last cost.
func (s *CatalogService) DeleteMaterial(ctx context.Context, userID, id uuid.UUID) error {
	return s.materialRepo.DeleteForUser(ctx, userID, id)
}

// ListServices returns the user's services with their pricing snapshots
func (s *CatalogService) ListServices(ctx context.Context, userID uuid.UUID) ([]ServiceResponse, error) {
	services, err := s.serviceRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, ToServiceResponse(&services[i]))
	}
	return out, nil
}

// GetService returns one service
func (s *CatalogService) GetService(ctx context.Context, userID, id uuid.UUID) (*ServiceResponse, error) {
	svc, err := s.serviceRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToServiceResponse(svc)
	return &resp, nil
}

// CreateService adds a service, deriving its line costs and freezing its
// pricing with the current parameters.
func (s *CatalogService) CreateService(ctx context.Context, userID uuid.UUID, req SaveServiceRequest) (*ServiceResponse, error) {
	params, idx, err := s.pricingInputs(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := buildLines(nil, req.MaterialCosts, idx)
	svc, err := catalog.NewService(userID, req.Name, valueobject.NewMoney(req.SalePrice), commissionOrDefault(req, params), lines)
	if err != nil {
		return nil, err
	}
	svc.Reprice(*params, s.now())

	if err := s.serviceRepo.Save(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)

	resp := ToServiceResponse(svc)
	return &resp, nil
}

// UpdateService edits a service and reprices it with the current parameters
func (s *CatalogService) UpdateService(ctx context.Context, userID, id uuid.UUID, req SaveServiceRequest) (*ServiceResponse, error) {
	svc, err := s.serviceRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	params, idx, err := s.pricingInputs(ctx, userID)
	if err != nil {
		return nil, err
	}

	commission := svc.CommissionRate
	if req.CommissionRate != nil {
		commission = *req.CommissionRate
	}
	lines := buildLines(svc.MaterialCosts, req.MaterialCosts, idx)
	if err := svc.Update(req.Name, valueobject.NewMoney(req.SalePrice), commission, lines); err != nil {
		return nil, err
	}
	svc.Reprice(*params, s.now())

	if err := s.serviceRepo.Save(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)

	resp := ToServiceResponse(svc)
	return &resp, nil
}

// DeleteService removes a service
func (s *CatalogService) DeleteService(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.serviceRepo.DeleteForUser(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Analyze shows a service's frozen pricing next to a recomputation with
// the parameters configured now.
func (s *CatalogService) Analyze(ctx context.Context, userID, id uuid.UUID) (*ServiceAnalysisResponse, error) {
	svc, err := s.serviceRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	params, err := s.params.Params(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ServiceAnalysisResponse{
		Service:  ToServiceResponse(svc),
		Analysis: catalog.Analyze(*svc, *params),
	}, nil
}

// UpdateLine re-derives the cost of a single material line against the
// user's current materials.
func (s *CatalogService) UpdateLine(ctx context.Context, userID uuid.UUID, req UpdateLineRequest) (*catalog.MaterialCostLine, error) {
	materials, err := s.materialRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	line := catalog.UpdateMaterialLine(
		catalog.MaterialCostLine{MaterialID: req.MaterialID, Quantity: req.Quantity, Cost: req.Cost},
		req.MaterialID,
		req.Quantity,
		catalog.NewMaterialIndex(materials),
	)
	return &line, nil
}

func (s *CatalogService) pricingInputs(ctx context.Context, userID uuid.UUID) (*settings.BusinessParams, catalog.MaterialIndex, error) {
	params, err := s.params.Params(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	materials, err := s.materialRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return params, catalog.NewMaterialIndex(materials), nil
}

func (s *CatalogService) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("Failed to invalidate report cache",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

// buildLines turns requested lines into cost lines. A line whose material
// was already on the service starts from its previous cost, so an
// unresolvable material keeps the last known cost.
func buildLines(previous []catalog.MaterialCostLine, requested []MaterialLineRequest, idx catalog.MaterialIndex) []catalog.MaterialCostLine {
	prior := make(map[uuid.UUID]catalog.MaterialCostLine, len(previous))
	for _, l := range previous {
		prior[l.MaterialID] = l
	}
	lines := make([]catalog.MaterialCostLine, 0, len(requested))
	for _, r := range requested {
		lines = append(lines, catalog.UpdateMaterialLine(prior[r.MaterialID], r.MaterialID, r.Quantity, idx))
	}
	return lines
}
