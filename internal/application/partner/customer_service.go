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

// CustomerEntityName names customers in alert headers and error bodies
const CustomerEntityName = "customer"

// CustomerService handles customer writes and lookups by id.
// Every operation is scoped to the company of the given tenant context.
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, log *zap.Logger) *CustomerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       log,
	}
}

// Create stores a new customer owned by the caller's company
func (s *CustomerService) Create(ctx context.Context, tc shared.TenantContext, req CustomerRequest) (*CustomerDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, CustomerEntityName, "create",
		attribute.Int64(telemetry.SpanAttrCompanyID, tc.CompanyID))
	defer span.End()

	logger.WithLogger(ctx, s.logger).Debug("Request to save Customer", zap.String("name", req.Name))

	if req.ID != nil {
		return nil, shared.ErrIDExists(CustomerEntityName)
	}
	if !tc.Valid() {
		return nil, shared.ErrNoTenant
	}

	customer, err := partner.NewCustomer(tc.CompanyID, req.Name, req.options()...)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.WithLogger(ctx, s.logger).Info("Customer created", zap.Int64("customer_id", customer.ID))
	dto := ToCustomerDTO(customer)
	return &dto, nil
}

// Update replaces a customer of the caller's company. The stored company is
// always the caller's, whatever the request carries.
func (s *CustomerService) Update(ctx context.Context, tc shared.TenantContext, req CustomerRequest) (*CustomerDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, CustomerEntityName, "update",
		attribute.Int64(telemetry.SpanAttrCompanyID, tc.CompanyID))
	defer span.End()

	logger.WithLogger(ctx, s.logger).Debug("Request to update Customer", zap.Any("id", req.ID))

	if req.ID == nil {
		return nil, shared.ErrIDNull(CustomerEntityName)
	}
	if !tc.Valid() {
		return nil, shared.ErrNoTenant
	}
	span.SetAttributes(attribute.Int64(telemetry.SpanAttrEntityID, *req.ID))

	customer, err := s.customerRepo.FindByID(ctx, tc.CompanyID, *req.ID)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(req.Name, req.options()...); err != nil {
		return nil, err
	}
	customer.AssignCompany(tc.CompanyID)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.WithLogger(ctx, s.logger).Info("Customer updated", zap.Int64("customer_id", customer.ID))
	dto := ToCustomerDTO(customer)
	return &dto, nil
}

// FindOne returns a customer of the caller's company, or shared.ErrNotFound
func (s *CustomerService) FindOne(ctx context.Context, tc shared.TenantContext, id int64) (*CustomerDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, CustomerEntityName, "find_one",
		attribute.Int64(telemetry.SpanAttrCompanyID, tc.CompanyID),
		attribute.Int64(telemetry.SpanAttrEntityID, id))
	defer span.End()

	logger.WithLogger(ctx, s.logger).Debug("Request to get Customer", zap.Int64("id", id))

	customer, err := s.customerRepo.FindByID(ctx, tc.CompanyID, id)
	if err != nil {
		return nil, err
	}
	dto := ToCustomerDTO(customer)
	return &dto, nil
}

// Delete removes a customer of the caller's company
func (s *CustomerService) Delete(ctx context.Context, tc shared.TenantContext, id int64) error {
	ctx, span := telemetry.StartServiceSpan(ctx, CustomerEntityName, "delete",
		attribute.Int64(telemetry.SpanAttrCompanyID, tc.CompanyID),
		attribute.Int64(telemetry.SpanAttrEntityID, id))
	defer span.End()

	logger.WithLogger(ctx, s.logger).Debug("Request to delete Customer", zap.Int64("id", id))

	if err := s.customerRepo.Delete(ctx, tc.CompanyID, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	logger.WithLogger(ctx, s.logger).Info("Customer deleted", zap.Int64("customer_id", id))
	return nil
}
