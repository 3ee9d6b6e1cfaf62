//go:build integration

package integration

import (
	"testing"

	"github.com/ak/backend/internal/domain/partner"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveCustomer(t *testing.T, repo *persistence.GormCustomerRepository, companyID int64, name, companyName string, opts ...partner.CustomerOption) *partner.Customer {
	t.Helper()
	opts = append(opts, partner.WithCompanyName(companyName))
	c, err := partner.NewCustomer(companyID, name, opts...)
	require.NoError(t, err)
	require.NoError(t, repo.Save(t.Context(), c))
	require.NotZero(t, c.ID)
	return c
}

func TestCustomerRepository_SaveAndFind(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormCustomerRepository(tdb.DB)

	saved := saveCustomer(t, repo, 1, "Acme", "Acme Corporation",
		partner.WithCreditLimit(decimal.RequireFromString("1234.5678")),
		partner.WithContact("Wile E.", "+1 555 0100", "wile@acme.example"),
	)

	found, err := repo.FindByID(t.Context(), 1, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", found.CompanyName)
	assert.True(t, decimal.RequireFromString("1234.5678").Equal(found.CreditLimit))
	assert.Equal(t, "wile@acme.example", found.Email)

	require.NoError(t, found.Update("Acme Ltd", partner.WithCompanyName("Acme Limited")))
	require.NoError(t, repo.Save(t.Context(), found))

	found, err = repo.FindByID(t.Context(), 1, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", found.Name)
	assert.Equal(t, "Acme Limited", found.CompanyName)

	require.NoError(t, repo.Delete(t.Context(), 1, saved.ID))
	_, err = repo.FindByID(t.Context(), 1, saved.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCustomerRepository_TenantIsolation(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormCustomerRepository(tdb.DB)

	mine := saveCustomer(t, repo, 1, "Mine", "Shared Name Inc")
	theirs := saveCustomer(t, repo, 2, "Theirs", "Shared Name Inc")

	_, err := repo.FindByID(t.Context(), 1, theirs.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(t.Context(), 1, theirs.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	criteria := partner.CustomerCriteria{CompanyName: shared.StringContains("shared")}.ForCompany(1)
	customers, total, err := repo.FindAll(t.Context(), criteria, shared.DefaultPageable())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, customers, 1)
	assert.Equal(t, mine.ID, customers[0].ID)

	// a client supplied company filter is replaced
	criteria = partner.CustomerCriteria{CompanyID: shared.LongEquals(2)}.ForCompany(1)
	count, err := repo.Count(t.Context(), criteria)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCustomerRepository_PagingAndSorting(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormCustomerRepository(tdb.DB)

	for _, name := range []string{"Delta", "alpha", "Charlie", "bravo", "Echo"} {
		saveCustomer(t, repo, 1, name, name+" GmbH")
	}

	pageable := shared.Pageable{Page: 1, Size: 2, Sort: []shared.Order{{Property: "name", Direction: shared.Desc}}}
	customers, total, err := repo.FindAll(t.Context(), partner.CustomerCriteria{}.ForCompany(1), pageable)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, customers, 2)
	for _, c := range customers {
		assert.Equal(t, int64(1), c.CompanyID)
	}

	limit := decimal.NewFromInt(100)
	saveCustomer(t, repo, 1, "Rich", "Rich AG", partner.WithCreditLimit(decimal.NewFromInt(5000)))
	criteria := partner.CustomerCriteria{CreditLimit: &shared.DecimalFilter{GreaterThan: &limit}}.ForCompany(1)
	count, err := repo.Count(t.Context(), criteria)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
