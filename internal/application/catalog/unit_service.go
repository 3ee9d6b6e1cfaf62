package catalog

import (
	"context"

	"github.com/ak/backend/internal/domain/catalog"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// UnitService manages units of measure
type UnitService struct {
	unitRepo catalog.UnitRepository
	logger   *zap.Logger
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo catalog.UnitRepository, log *zap.Logger) *UnitService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UnitService{unitRepo: unitRepo, logger: log}
}

// Create stores a new unit owned by the caller's company
func (s *UnitService) Create(ctx context.Context, tc shared.TenantContext, req UnitRequest) (*UnitDTO, error) {
	logger.WithLogger(ctx, s.logger).Debug("Request to save Unit", zap.String("name", req.Name))
	if req.ID != nil {
		return nil, shared.ErrIDExists(UnitEntityName)
	}
	if !tc.Valid() {
		return nil, shared.ErrNoTenant
	}
	unit, err := catalog.NewUnit(tc.CompanyID, req.Name, req.options()...)
	if err != nil {
		return nil, err
	}
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}
	dto := ToUnitDTO(unit)
	return &dto, nil
}

// Update replaces a unit of the caller's company
func (s *UnitService) Update(ctx context.Context, tc shared.TenantContext, req UnitRequest) (*UnitDTO, error) {
	if req.ID == nil {
		return nil, shared.ErrIDNull(UnitEntityName)
	}
	if !tc.Valid() {
		return nil, shared.ErrNoTenant
	}
	unit, err := s.unitRepo.FindByID(ctx, tc.CompanyID, *req.ID)
	if err != nil {
		return nil, err
	}
	if err := unit.Update(req.Name, req.options()...); err != nil {
		return nil, err
	}
	unit.AssignCompany(tc.CompanyID)
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}
	dto := ToUnitDTO(unit)
	return &dto, nil
}

// FindOne returns a unit of the caller's company
func (s *UnitService) FindOne(ctx context.Context, tc shared.TenantContext, id int64) (*UnitDTO, error) {
	unit, err := s.unitRepo.FindByID(ctx, tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	dto := ToUnitDTO(unit)
	return &dto, nil
}

// Delete removes a unit of the caller's company
func (s *UnitService) Delete(ctx context.Context, tc shared.TenantContext, id int64) error {
	return s.unitRepo.Delete(ctx, tc.CompanyID, id)
}

// FindByCriteria returns one page of the caller's units
func (s *UnitService) FindByCriteria(ctx context.Context, tc shared.TenantContext, criteria catalog.UnitCriteria, pageable shared.Pageable) (shared.Page[UnitDTO], error) {
	if !tc.Valid() {
		return shared.Page[UnitDTO]{}, shared.ErrNoTenant
	}
	units, total, err := s.unitRepo.FindAll(ctx, criteria.ForCompany(tc.CompanyID), pageable)
	if err != nil {
		return shared.Page[UnitDTO]{}, err
	}
	return shared.NewPage(ToUnitDTOs(units), pageable, total), nil
}

// CountByCriteria counts the caller's matching units
func (s *UnitService) CountByCriteria(ctx context.Context, tc shared.TenantContext, criteria catalog.UnitCriteria) (int64, error) {
	if !tc.Valid() {
		return 0, shared.ErrNoTenant
	}
	return s.unitRepo.Count(ctx, criteria.ForCompany(tc.CompanyID))
}

// Search matches query against the unit name
func (s *UnitService) Search(ctx context.Context, tc shared.TenantContext, query string, pageable shared.Pageable) (shared.Page[UnitDTO], error) {
	criteria := catalog.UnitCriteria{Name: shared.StringContains(shared.NormalizeText(query))}
	return s.FindByCriteria(ctx, tc, criteria, pageable)
}
