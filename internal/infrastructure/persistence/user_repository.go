package persistence

import (
	"context"
	"strings"

	"github.com/ak/backend/internal/domain/identity"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/ak/backend/internal/infrastructure/persistence/models"
	"github.com/ak/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM.
// Authorities live in the jhi_user_authority join table and are written
// together with the user in one transaction.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByLogin finds a user by login
func (r *GormUserRepository) FindByLogin(ctx context.Context, login string) (*identity.User, error) {
	return r.findOne(ctx, "login = ?", strings.ToLower(login))
}

// FindByEmail finds a user by email, ignoring case
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	if email == "" {
		return nil, shared.ErrNotFound
	}
	return r.findOne(ctx, "email = ?", strings.ToLower(email))
}

// FindByID finds a user of the given company
func (r *GormUserRepository) FindByID(ctx context.Context, companyID, id int64) (*identity.User, error) {
	return r.findOne(ctx, "id = ? AND company_id = ?", id, companyID)
}

// FindAllByCompany returns one page of the company's users
func (r *GormUserRepository) FindAllByCompany(ctx context.Context, companyID int64, pageable shared.Pageable) ([]identity.User, int64, error) {
	rows, total, err := findPage[models.UserModel](func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.UserModel{}).Scopes(tenant.CompanyScope(companyID))
	}, pageable, UserSortColumns)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(rows))
	for i, m := range rows {
		ids[i] = m.ID
	}
	authorities, err := r.loadAuthorities(ctx, r.db, ids...)
	if err != nil {
		return nil, 0, err
	}

	users := make([]identity.User, len(rows))
	for i, m := range rows {
		users[i] = *m.ToDomain(authorities[m.ID])
	}
	return users, total, nil
}

// Save creates or updates the user and replaces its authorities
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user.IsNew() {
			if err := tx.Create(model).Error; err != nil {
				return translateError(err)
			}
		} else {
			if err := updateScoped(ctx, tx, user.CompanyID, user.ID, model); err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", model.ID).Delete(&models.UserAuthorityModel{}).Error; err != nil {
				return err
			}
		}

		if len(user.Authorities) > 0 {
			links := make([]models.UserAuthorityModel, len(user.Authorities))
			for i, name := range user.Authorities {
				links[i] = models.UserAuthorityModel{UserID: model.ID, AuthorityName: name}
			}
			if err := tx.Create(&links).Error; err != nil {
				return translateError(err)
			}
		}

		user.ID = model.ID
		user.CreatedAt = model.CreatedAt
		user.UpdatedAt = model.UpdatedAt
		return nil
	})
}

// DeleteByLogin deletes a user of the given company with its authorities
func (r *GormUserRepository) DeleteByLogin(ctx context.Context, companyID int64, login string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.UserModel
		err := tx.Scopes(tenant.CompanyScope(companyID)).
			Where("login = ?", strings.ToLower(login)).
			First(&model).Error
		if err != nil {
			return translateError(err)
		}
		if err := tx.Where("user_id = ?", model.ID).Delete(&models.UserAuthorityModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserModel{}, model.ID).Error
	})
}

// FindAuthorities lists the names of all stored authorities
func (r *GormUserRepository) FindAuthorities(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.AuthorityModel{}).
		Order("name").
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *GormUserRepository) findOne(ctx context.Context, query string, args ...any) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	authorities, err := r.loadAuthorities(ctx, r.db, model.ID)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(authorities[model.ID]), nil
}

func (r *GormUserRepository) loadAuthorities(ctx context.Context, db *gorm.DB, userIDs ...int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var links []models.UserAuthorityModel
	if err := db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("authority_name").
		Find(&links).Error; err != nil {
		return nil, err
	}
	for _, link := range links {
		out[link.UserID] = append(out[link.UserID], link.AuthorityName)
	}
	return out, nil
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
