package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type row struct {
	ID        int64 `gorm:"primaryKey"`
	CompanyID int64
}

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&row{}))
	require.NoError(t, db.Create([]row{{ID: 1, CompanyID: 1}, {ID: 2, CompanyID: 2}, {ID: 3, CompanyID: 1}}).Error)
	return db
}

func TestCompanyScope(t *testing.T) {
	db := newDB(t)

	t.Run("filters rows of other companies", func(t *testing.T) {
		var rows []row
		require.NoError(t, db.Scopes(CompanyScope(1)).Order("id").Find(&rows).Error)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(1), rows[0].ID)
		assert.Equal(t, int64(3), rows[1].ID)
	})

	t.Run("zero company is an error", func(t *testing.T) {
		var rows []row
		err := db.Scopes(CompanyScope(0)).Find(&rows).Error
		assert.ErrorIs(t, err, ErrCompanyRequired)
		assert.Empty(t, rows)
	})

	t.Run("scoped delete leaves other companies alone", func(t *testing.T) {
		res := db.Scopes(CompanyScope(2)).Where("id = ?", 1).Delete(&row{})
		require.NoError(t, res.Error)
		assert.Zero(t, res.RowsAffected)
	})
}
