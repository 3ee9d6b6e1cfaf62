package persistence

import (
	"context"
	"fmt"

	"github.com/ak/backend/internal/domain/identity"
	"github.com/ak/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models returns the gorm model of every table
func Models() []any {
	return []any{
		&models.AuthorityModel{},
		&models.UserModel{},
		&models.UserAuthorityModel{},
		&models.UnitModel{},
		&models.ItemGroupModel{},
		&models.ItemModel{},
		&models.CustomerModel{},
	}
}

// defaultUsers mirror the seed migration: admin/admin and user/user in company 1
var defaultUsers = []struct {
	login       string
	hash        string
	authorities []string
}{
	{"admin", "$2a$10$gSAhZrxMllrbgj/kkK9UceBPpChGWJA7SYIb1Mqo.n5aNLq1/oRrC", []string{identity.AuthorityAdmin, identity.AuthorityUser}},
	{"user", "$2a$10$VEjxo0jq2YG9Rbk2HmX9S.k1uZBGYUHdUcid3g/vfiEl7lwWgOH/K", []string{identity.AuthorityUser}},
}

// SyncSchema creates the tables from the gorm models, then inserts the
// authorities and, on an empty user table, the default users. It backs
// the sqlite driver; PostgreSQL schemas come from the SQL migrations.
func (d *Database) SyncSchema(ctx context.Context) error {
	db := d.DB.WithContext(ctx)
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		authorities := make([]models.AuthorityModel, 0, len(identity.KnownAuthorities()))
		for _, name := range identity.KnownAuthorities() {
			authorities = append(authorities, models.AuthorityModel{Name: name})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&authorities).Error; err != nil {
			return fmt.Errorf("failed to seed authorities: %w", err)
		}

		var users int64
		if err := tx.Model(&models.UserModel{}).Count(&users).Error; err != nil {
			return err
		}
		if users > 0 {
			return nil
		}

		for _, u := range defaultUsers {
			email := u.login + "@localhost"
			model := models.UserModel{
				Login:        u.login,
				PasswordHash: u.hash,
				Email:        &email,
				Activated:    true,
				LangKey:      identity.DefaultLangKey,
				CompanyID:    1,
			}
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.login, err)
			}
			for _, a := range u.authorities {
				link := models.UserAuthorityModel{UserID: model.ID, AuthorityName: a}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
