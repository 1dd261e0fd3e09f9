package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, 1440, cfg.JWT.Expiration, "el token dura 24 horas por defecto")
	assert.False(t, cfg.Auth.RequireToken, "el header X-Tenant-Id sigue siendo suficiente por defecto")
	assert.Equal(t, "bcrypt", cfg.Auth.PasswordHasher)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 2, cfg.DB.MinConns)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "8081")
	v.Set("AUTH_REQUIRE_TOKEN", "true")
	v.Set("DB_MIGRATE", "false")
	v.Set("JWT_EXPIRATION_MINUTES", "no-numero")

	cfg := fromViper(v)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.True(t, cfg.Auth.RequireToken)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, 1440, cfg.JWT.Expiration, "un valor inválido cae al default")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "erpcrm", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/erpcrm?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestValidate(t *testing.T) {
	cfg := fromViper(viper.New())
	require.Error(t, cfg.Validate(), "sin JWT_SECRET no arranca")

	cfg.JWT.Secret = "s3cr3t"
	require.NoError(t, cfg.Validate())

	cfg.Auth.PasswordHasher = "md5"
	require.Error(t, cfg.Validate())
}
