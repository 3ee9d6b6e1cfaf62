package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "akApp", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "ak", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 20, cfg.Pagination.DefaultSize)
		assert.Equal(t, 2000, cfg.Pagination.MaxSize)
		assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpiration)
		assert.Contains(t, cfg.HTTP.CORSExposeHeaders, "X-akApp-alert")
		assert.Contains(t, cfg.HTTP.CORSExposeHeaders, "X-Total-Count")
	})

	t.Run("loads values from environment variables with AK prefix", func(t *testing.T) {
		t.Setenv("AK_APP_NAME", "shopApp")
		t.Setenv("AK_APP_PORT", "9000")
		t.Setenv("AK_DATABASE_HOST", "testdb.local")
		t.Setenv("AK_DATABASE_PORT", "5433")
		t.Setenv("AK_DATABASE_PASSWORD", "testpass")
		t.Setenv("AK_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("AK_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("AK_PAGINATION_MAX_SIZE", "500")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "shopApp", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, 500, cfg.Pagination.MaxSize)
		assert.Contains(t, cfg.HTTP.CORSExposeHeaders, "X-shopApp-alert")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		t.Setenv("AK_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("AK_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		t.Setenv("AK_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("rejects default page size above max", func(t *testing.T) {
		t.Setenv("AK_PAGINATION_DEFAULT_SIZE", "50")
		t.Setenv("AK_PAGINATION_MAX_SIZE", "10")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestProductionValidation(t *testing.T) {
	base := func() *viper.Viper {
		v := viper.New()
		v.Set("app.env", "production")
		v.Set("jwt.secret", "0123456789abcdef0123456789abcdef")
		v.Set("database.password", "secret")
		v.Set("database.sslmode", "require")
		return v
	}

	t.Run("accepts a complete production config", func(t *testing.T) {
		_, err := FromViper(base())
		assert.NoError(t, err)
	})

	t.Run("requires a long jwt secret", func(t *testing.T) {
		v := base()
		v.Set("jwt.secret", "short")
		_, err := FromViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("rejects disabled sslmode", func(t *testing.T) {
		v := base()
		v.Set("database.sslmode", "disable")
		_, err := FromViper(v)
		require.Error(t, err)
	})

	t.Run("rejects wildcard cors origin", func(t *testing.T) {
		v := base()
		v.Set("http.cors_allow_origins", []string{"*"})
		_, err := FromViper(v)
		require.Error(t, err)
	})

	t.Run("rejects open swagger", func(t *testing.T) {
		v := base()
		v.Set("swagger.enabled", true)
		_, err := FromViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "swagger")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("escapes credentials", func(t *testing.T) {
		d := DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, User: "ak", Password: "p@ss/word", DBName: "ak", SSLMode: "disable"}
		assert.Equal(t, "postgres://ak:p%40ss%2Fword@db:5432/ak?sslmode=disable", d.DSN())
	})

	t.Run("sqlite uses the database name as path", func(t *testing.T) {
		d := DatabaseConfig{Driver: "sqlite", DBName: ":memory:"}
		assert.Equal(t, ":memory:", d.DSN())
	})
}
