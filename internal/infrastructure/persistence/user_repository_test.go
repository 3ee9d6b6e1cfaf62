package persistence

import (
	"context"
	"testing"

	"github.com/ak/backend/internal/domain/identity"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserRepo(t *testing.T) (*GormUserRepository, *gorm.DB) {
	db := newSQLiteDB(t)
	require.NoError(t, db.Create([]models.AuthorityModel{
		{Name: identity.AuthorityAdmin},
		{Name: identity.AuthorityUser},
	}).Error)
	return NewGormUserRepository(db), db
}

func saveUser(t *testing.T, repo *GormUserRepository, companyID int64, login, email string, authorities ...string) *identity.User {
	t.Helper()
	opts := []identity.UserOption{identity.WithActivated(true), identity.WithPasswordHash("$2a$04$hash")}
	if email != "" {
		opts = append(opts, identity.WithEmail(email))
	}
	if len(authorities) > 0 {
		opts = append(opts, identity.WithAuthorities(authorities...))
	}
	u, err := identity.NewUser(companyID, login, opts...)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), u))
	return u
}

func TestGormUserRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo, _ := newUserRepo(t)

	u := saveUser(t, repo, 3, "Admin", "Admin@Example.com", identity.AuthorityAdmin, identity.AuthorityUser)
	require.NotZero(t, u.ID)

	found, err := repo.FindByLogin(ctx, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "admin", found.Login)
	assert.Equal(t, int64(3), found.CompanyID)
	assert.Equal(t, []string{identity.AuthorityAdmin, identity.AuthorityUser}, found.Authorities)
	assert.True(t, found.IsAdmin())

	found, err = repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	found, err = repo.FindByID(ctx, 3, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", found.Login)

	_, err = repo.FindByID(ctx, 4, u.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByEmail(ctx, "")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_UpdateReplacesAuthorities(t *testing.T) {
	ctx := context.Background()
	repo, _ := newUserRepo(t)

	u := saveUser(t, repo, 3, "jane", "", identity.AuthorityAdmin, identity.AuthorityUser)

	require.NoError(t, u.Update("jane", identity.WithAuthorities(identity.AuthorityUser), identity.WithNames("Jane", "Doe")))
	require.NoError(t, repo.Save(ctx, u))

	found, err := repo.FindByLogin(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, []string{identity.AuthorityUser}, found.Authorities)
	assert.Equal(t, "Jane", found.FirstName)
	assert.Empty(t, found.Email)
}

func TestGormUserRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	repo, _ := newUserRepo(t)

	saveUser(t, repo, 3, "john", "john@example.com")

	dup, err := identity.NewUser(4, "john", identity.WithPasswordHash("x"))
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrAlreadyExists)

	// users without email do not collide
	saveUser(t, repo, 3, "noemail1", "")
	saveUser(t, repo, 3, "noemail2", "")
}

func TestGormUserRepository_FindAllByCompany(t *testing.T) {
	ctx := context.Background()
	repo, _ := newUserRepo(t)

	saveUser(t, repo, 3, "alice", "", identity.AuthorityUser)
	saveUser(t, repo, 3, "bob", "", identity.AuthorityAdmin)
	saveUser(t, repo, 4, "carol", "")

	users, total, err := repo.FindAllByCompany(ctx, 3, shared.Pageable{Size: 10, Sort: []shared.Order{{Property: "login", Direction: shared.Desc}}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Login)
	assert.Equal(t, []string{identity.AuthorityAdmin}, users[0].Authorities)
	assert.Equal(t, "alice", users[1].Login)
}

func TestGormUserRepository_DeleteByLogin(t *testing.T) {
	ctx := context.Background()
	repo, db := newUserRepo(t)

	u := saveUser(t, repo, 3, "leaver", "", identity.AuthorityUser)

	assert.ErrorIs(t, repo.DeleteByLogin(ctx, 4, "leaver"), shared.ErrNotFound)
	require.NoError(t, repo.DeleteByLogin(ctx, 3, "LEAVER"))

	_, err := repo.FindByLogin(ctx, "leaver")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var links int64
	require.NoError(t, db.Model(&models.UserAuthorityModel{}).Where("user_id = ?", u.ID).Count(&links).Error)
	assert.Zero(t, links)
}

func TestGormUserRepository_FindAuthorities(t *testing.T) {
	repo, _ := newUserRepo(t)

	names, err := repo.FindAuthorities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{identity.AuthorityAdmin, identity.AuthorityUser}, names)
}
