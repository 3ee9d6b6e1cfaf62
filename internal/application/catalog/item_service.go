package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/ak/backend/internal/domain/catalog"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/logger"
	"github.com/ak/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ItemService manages items. Group and unit references must point at rows
// of the caller's company.
type ItemService struct {
	itemRepo  catalog.ItemRepository
	groupRepo catalog.ItemGroupRepository
	unitRepo  catalog.UnitRepository
	logger    *zap.Logger
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository, groupRepo catalog.ItemGroupRepository, unitRepo catalog.UnitRepository, log *zap.Logger) *ItemService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ItemService{itemRepo: itemRepo, groupRepo: groupRepo, unitRepo: unitRepo, logger: log}
}

// Create stores a new item owned by the caller's company
func (s *ItemService) Create(ctx context.Context, tc shared.TenantContext, req ItemRequest) (*ItemDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, ItemEntityName, "create",
		attribute.Int64(telemetry.SpanAttrCompanyID, tc.CompanyID))
	defer span.End()

	logger.WithLogger(ctx, s.logger).Debug("Request to save Item", zap.String("name", req.Name))
	if req.ID != nil {
		return nil, shared.ErrIDExists(ItemEntityName)
	}
	if !tc.Valid() {
		return nil, shared.ErrNoTenant
	}
	if err := s.checkReferences(ctx, tc.CompanyID, req); err != nil {
		return nil, err
	}

	item, err := catalog.NewItem(tc.CompanyID, req.Name, req.options()...)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	dto := ToItemDTO(item)
	return &dto, nil
}

// Update replaces an item of the caller's company
func (s *ItemService) Update(ctx context.Context, tc shared.TenantContext, req ItemRequest) (*ItemDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, ItemEntityName, "update",
		attribute.Int64(telemetry.SpanAttrCompanyID, tc.CompanyID))
	defer span.End()

	if req.ID == nil {
		return nil, shared.ErrIDNull(ItemEntityName)
	}
	if !tc.Valid() {
		return nil, shared.ErrNoTenant
	}
	logger.WithLogger(ctx, s.logger).Debug("Request to update Item", zap.Int64("id", *req.ID))

	item, err := s.itemRepo.FindByID(ctx, tc.CompanyID, *req.ID)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, tc.CompanyID, req); err != nil {
		return nil, err
	}
	if err := item.Update(req.Name, req.options()...); err != nil {
		return nil, err
	}
	item.AssignCompany(tc.CompanyID)
	if err := s.itemRepo.Save(ctx, item); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	dto := ToItemDTO(item)
	return &dto, nil
}

// FindOne returns an item of the caller's company
func (s *ItemService) FindOne(ctx context.Context, tc shared.TenantContext, id int64) (*ItemDTO, error) {
	item, err := s.itemRepo.FindByID(ctx, tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	dto := ToItemDTO(item)
	return &dto, nil
}

// Delete removes an item of the caller's company
func (s *ItemService) Delete(ctx context.Context, tc shared.TenantContext, id int64) error {
	logger.WithLogger(ctx, s.logger).Debug("Request to delete Item", zap.Int64("id", id))
	return s.itemRepo.Delete(ctx, tc.CompanyID, id)
}

// FindByCriteria returns one page of the caller's items
func (s *ItemService) FindByCriteria(ctx context.Context, tc shared.TenantContext, criteria catalog.ItemCriteria, pageable shared.Pageable) (shared.Page[ItemDTO], error) {
	ctx, span := telemetry.StartServiceSpan(ctx, ItemEntityName, "find_by_criteria",
		attribute.Int64(telemetry.SpanAttrCompanyID, tc.CompanyID))
	defer span.End()

	if !tc.Valid() {
		return shared.Page[ItemDTO]{}, shared.ErrNoTenant
	}
	items, total, err := s.itemRepo.FindAll(ctx, criteria.ForCompany(tc.CompanyID), pageable)
	if err != nil {
		return shared.Page[ItemDTO]{}, err
	}
	return shared.NewPage(ToItemDTOs(items), pageable, total), nil
}

// CountByCriteria counts the caller's matching items
func (s *ItemService) CountByCriteria(ctx context.Context, tc shared.TenantContext, criteria catalog.ItemCriteria) (int64, error) {
	if !tc.Valid() {
		return 0, shared.ErrNoTenant
	}
	return s.itemRepo.Count(ctx, criteria.ForCompany(tc.CompanyID))
}

// Search matches query against the item name
func (s *ItemService) Search(ctx context.Context, tc shared.TenantContext, query string, pageable shared.Pageable) (shared.Page[ItemDTO], error) {
	criteria := catalog.ItemCriteria{Name: shared.StringContains(shared.NormalizeText(query))}
	return s.FindByCriteria(ctx, tc, criteria, pageable)
}

func (s *ItemService) checkReferences(ctx context.Context, companyID int64, req ItemRequest) error {
	if req.ItemGroupID != nil {
		if _, err := s.groupRepo.FindByID(ctx, companyID, *req.ItemGroupID); err != nil {
			return referenceError(err, "item group", *req.ItemGroupID)
		}
	}
	if req.UnitID != nil {
		if _, err := s.unitRepo.FindByID(ctx, companyID, *req.UnitID); err != nil {
			return referenceError(err, "unit", *req.UnitID)
		}
	}
	return nil
}

func referenceError(err error, what string, id int64) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("INVALID_REFERENCE", fmt.Sprintf("Unknown %s %d", what, id))
	}
	return err
}
