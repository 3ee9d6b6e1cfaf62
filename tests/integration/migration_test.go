//go:build integration

package integration

import (
	"testing"

	"github.com/ak/backend/internal/infrastructure/migration"
	"github.com/ak/backend/internal/infrastructure/persistence"
	"github.com/ak/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_UpDownUp(t *testing.T) {
	tdb := NewIsolatedTestDB(t)
	m := tdb.Migrator()

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	require.NoError(t, m.Up())
	names, err := migration.ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, names)

	version, dirty, err = m.Version()
	require.NoError(t, err)
	assert.NotZero(t, version)
	assert.False(t, dirty)

	// a second run is a no-op
	require.NoError(t, m.Up())

	for _, table := range []string{"jhi_user", "jhi_authority", "unit", "item_group", "item", "customer"} {
		assert.True(t, tdb.DB.Migrator().HasTable(table), table)
	}

	require.NoError(t, m.Down())
	assert.False(t, tdb.DB.Migrator().HasTable("customer"))

	require.NoError(t, m.Up())
	assert.True(t, tdb.DB.Migrator().HasTable("customer"))
}

func TestMigrations_EveryMigrationHasRollback(t *testing.T) {
	missing, err := migration.MissingRollbacks(migrations.FS)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestMigrations_SeedDefaultUsers(t *testing.T) {
	tdb := NewTestDB(t)
	users := persistence.NewGormUserRepository(tdb.DB)

	admin, err := users.FindByLogin(t.Context(), "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(1), admin.CompanyID)
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.VerifyPassword("admin"))

	user, err := users.FindByLogin(t.Context(), "user")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin())
	assert.True(t, user.CanLogin())

	authorities, err := users.FindAuthorities(t.Context())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ROLE_ADMIN", "ROLE_USER"}, authorities)
}
