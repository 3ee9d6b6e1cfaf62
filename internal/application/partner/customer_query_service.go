package partner

import (
	"context"

	"github.com/ak/backend/internal/domain/partner"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/logger"
	"github.com/ak/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CustomerQueryService answers criteria queries over customers.
// The company filter of every criteria is forced to the caller's company.
type CustomerQueryService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerQueryService creates a new CustomerQueryService
func NewCustomerQueryService(customerRepo partner.CustomerRepository, log *zap.Logger) *CustomerQueryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CustomerQueryService{customerRepo: customerRepo, logger: log}
}

// FindByCriteria returns one page of the matching customers
func (s *CustomerQueryService) FindByCriteria(ctx context.Context, tc shared.TenantContext, criteria partner.CustomerCriteria, pageable shared.Pageable) (shared.Page[CustomerDTO], error) {
	ctx, span := telemetry.StartServiceSpan(ctx, CustomerEntityName, "find_by_criteria",
		attribute.Int64(telemetry.SpanAttrCompanyID, tc.CompanyID),
		attribute.Int(telemetry.SpanAttrPage, pageable.Page),
		attribute.Int(telemetry.SpanAttrPageSize, pageable.Size))
	defer span.End()

	logger.WithLogger(ctx, s.logger).Debug("find customers by criteria")

	if !tc.Valid() {
		return shared.Page[CustomerDTO]{}, shared.ErrNoTenant
	}
	customers, total, err := s.customerRepo.FindAll(ctx, criteria.ForCompany(tc.CompanyID), pageable)
	if err != nil {
		telemetry.RecordError(span, err)
		return shared.Page[CustomerDTO]{}, err
	}
	span.SetAttributes(attribute.Int64(telemetry.SpanAttrTotal, total))
	return shared.NewPage(ToCustomerDTOs(customers), pageable, total), nil
}

// CountByCriteria counts the matching customers
func (s *CustomerQueryService) CountByCriteria(ctx context.Context, tc shared.TenantContext, criteria partner.CustomerCriteria) (int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, CustomerEntityName, "count_by_criteria",
		attribute.Int64(telemetry.SpanAttrCompanyID, tc.CompanyID))
	defer span.End()

	if !tc.Valid() {
		return 0, shared.ErrNoTenant
	}
	count, err := s.customerRepo.Count(ctx, criteria.ForCompany(tc.CompanyID))
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, err
	}
	return count, nil
}

// Search matches query against the company name of the caller's customers
func (s *CustomerQueryService) Search(ctx context.Context, tc shared.TenantContext, query string, pageable shared.Pageable) (shared.Page[CustomerDTO], error) {
	ctx, span := telemetry.StartServiceSpan(ctx, CustomerEntityName, "search",
		attribute.String(telemetry.SpanAttrQuery, query))
	defer span.End()

	logger.WithLogger(ctx, s.logger).Debug("Request to search Customers", zap.String("query", query))

	criteria := partner.CustomerCriteria{
		CompanyName: shared.StringContains(shared.NormalizeText(query)),
	}
	return s.FindByCriteria(ctx, tc, criteria, pageable)
}
