package catalog

import (
	"context"

	"github.com/ak/backend/internal/domain/catalog"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/logger"
	"github.com/ak/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ItemGroupService manages item groups and their item membership
type ItemGroupService struct {
	groupRepo catalog.ItemGroupRepository
	itemRepo  catalog.ItemRepository
	logger    *zap.Logger
}

// NewItemGroupService creates a new ItemGroupService
func NewItemGroupService(groupRepo catalog.ItemGroupRepository, itemRepo catalog.ItemRepository, log *zap.Logger) *ItemGroupService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ItemGroupService{groupRepo: groupRepo, itemRepo: itemRepo, logger: log}
}

func (s *ItemGroupService) span(ctx context.Context, op string, tc shared.TenantContext) (context.Context, func()) {
	ctx, span := telemetry.StartServiceSpan(ctx, ItemGroupEntityName, op,
		attribute.Int64(telemetry.SpanAttrCompanyID, tc.CompanyID))
	return ctx, func() { span.End() }
}

// Create stores a new item group owned by the caller's company
func (s *ItemGroupService) Create(ctx context.Context, tc shared.TenantContext, req ItemGroupRequest) (*ItemGroupDTO, error) {
	ctx, end := s.span(ctx, "create", tc)
	defer end()

	logger.WithLogger(ctx, s.logger).Debug("Request to save ItemGroup", zap.String("name", req.Name))
	if req.ID != nil {
		return nil, shared.ErrIDExists(ItemGroupEntityName)
	}
	if !tc.Valid() {
		return nil, shared.ErrNoTenant
	}

	group, err := catalog.NewItemGroup(tc.CompanyID, req.Name, req.options()...)
	if err != nil {
		return nil, err
	}
	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}
	dto := ToItemGroupDTO(group)
	return &dto, nil
}

// Update replaces an item group of the caller's company
func (s *ItemGroupService) Update(ctx context.Context, tc shared.TenantContext, req ItemGroupRequest) (*ItemGroupDTO, error) {
	ctx, end := s.span(ctx, "update", tc)
	defer end()

	if req.ID == nil {
		return nil, shared.ErrIDNull(ItemGroupEntityName)
	}
	if !tc.Valid() {
		return nil, shared.ErrNoTenant
	}
	logger.WithLogger(ctx, s.logger).Debug("Request to update ItemGroup", zap.Int64("id", *req.ID))

	group, err := s.groupRepo.FindByID(ctx, tc.CompanyID, *req.ID)
	if err != nil {
		return nil, err
	}
	if err := group.Update(req.Name, req.options()...); err != nil {
		return nil, err
	}
	group.AssignCompany(tc.CompanyID)
	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}
	dto := ToItemGroupDTO(group)
	return &dto, nil
}

// FindOne returns an item group of the caller's company
func (s *ItemGroupService) FindOne(ctx context.Context, tc shared.TenantContext, id int64) (*ItemGroupDTO, error) {
	ctx, end := s.span(ctx, "find_one", tc)
	defer end()

	group, err := s.groupRepo.FindByID(ctx, tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	dto := ToItemGroupDTO(group)
	return &dto, nil
}

// Delete removes an item group. Its items stay and lose their group.
func (s *ItemGroupService) Delete(ctx context.Context, tc shared.TenantContext, id int64) error {
	ctx, end := s.span(ctx, "delete", tc)
	defer end()

	logger.WithLogger(ctx, s.logger).Debug("Request to delete ItemGroup", zap.Int64("id", id))
	if _, err := s.groupRepo.FindByID(ctx, tc.CompanyID, id); err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, tc.CompanyID, id)
}

// FindByCriteria returns one page of the caller's item groups
func (s *ItemGroupService) FindByCriteria(ctx context.Context, tc shared.TenantContext, criteria catalog.ItemGroupCriteria, pageable shared.Pageable) (shared.Page[ItemGroupDTO], error) {
	ctx, end := s.span(ctx, "find_by_criteria", tc)
	defer end()

	if !tc.Valid() {
		return shared.Page[ItemGroupDTO]{}, shared.ErrNoTenant
	}
	groups, total, err := s.groupRepo.FindAll(ctx, criteria.ForCompany(tc.CompanyID), pageable)
	if err != nil {
		return shared.Page[ItemGroupDTO]{}, err
	}
	return shared.NewPage(ToItemGroupDTOs(groups), pageable, total), nil
}

// CountByCriteria counts the caller's matching item groups
func (s *ItemGroupService) CountByCriteria(ctx context.Context, tc shared.TenantContext, criteria catalog.ItemGroupCriteria) (int64, error) {
	if !tc.Valid() {
		return 0, shared.ErrNoTenant
	}
	return s.groupRepo.Count(ctx, criteria.ForCompany(tc.CompanyID))
}

// Search matches query against the group name
func (s *ItemGroupService) Search(ctx context.Context, tc shared.TenantContext, query string, pageable shared.Pageable) (shared.Page[ItemGroupDTO], error) {
	criteria := catalog.ItemGroupCriteria{Name: shared.StringContains(shared.NormalizeText(query))}
	return s.FindByCriteria(ctx, tc, criteria, pageable)
}

// Items lists the items of a group
func (s *ItemGroupService) Items(ctx context.Context, tc shared.TenantContext, groupID int64) ([]ItemDTO, error) {
	ctx, end := s.span(ctx, "items", tc)
	defer end()

	group, err := s.groupRepo.FindByIDWithItems(ctx, tc.CompanyID, groupID)
	if err != nil {
		return nil, err
	}
	items := group.Items()
	out := make([]ItemDTO, len(items))
	for i, item := range items {
		out[i] = ToItemDTO(item)
	}
	return out, nil
}

// AddItem moves an item of the caller's company into the group.
// Adding an item that is already a member changes nothing.
func (s *ItemGroupService) AddItem(ctx context.Context, tc shared.TenantContext, groupID, itemID int64) (*ItemDTO, error) {
	ctx, end := s.span(ctx, "add_item", tc)
	defer end()

	group, item, err := s.loadMembership(ctx, tc, groupID, itemID)
	if err != nil {
		return nil, err
	}
	if group.HasItem(item) {
		dto := ToItemDTO(item)
		return &dto, nil
	}

	group.AddItem(item)
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	logger.WithLogger(ctx, s.logger).Info("Item added to group",
		zap.Int64("item_group_id", groupID), zap.Int64("item_id", itemID))
	dto := ToItemDTO(item)
	return &dto, nil
}

// RemoveItem detaches an item from the group.
// Removing an item that is not a member changes nothing.
func (s *ItemGroupService) RemoveItem(ctx context.Context, tc shared.TenantContext, groupID, itemID int64) error {
	ctx, end := s.span(ctx, "remove_item", tc)
	defer end()

	group, item, err := s.loadMembership(ctx, tc, groupID, itemID)
	if err != nil {
		return err
	}
	if !group.HasItem(item) {
		return nil
	}

	group.RemoveItem(item)
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return err
	}
	logger.WithLogger(ctx, s.logger).Info("Item removed from group",
		zap.Int64("item_group_id", groupID), zap.Int64("item_id", itemID))
	return nil
}

// loadMembership loads the group with its items and the item. When the item
// is a member, the instance held by the group is returned.
func (s *ItemGroupService) loadMembership(ctx context.Context, tc shared.TenantContext, groupID, itemID int64) (*catalog.ItemGroup, *catalog.Item, error) {
	if !tc.Valid() {
		return nil, nil, shared.ErrNoTenant
	}
	group, err := s.groupRepo.FindByIDWithItems(ctx, tc.CompanyID, groupID)
	if err != nil {
		return nil, nil, err
	}
	for _, member := range group.Items() {
		if member.ID == itemID {
			return group, member, nil
		}
	}
	item, err := s.itemRepo.FindByID(ctx, tc.CompanyID, itemID)
	if err != nil {
		return nil, nil, err
	}
	return group, item, nil
}
