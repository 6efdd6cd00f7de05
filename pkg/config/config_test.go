package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "1010", cfg.Ledger.CashAccount)
	assert.Equal(t, "1020", cfg.Ledger.CardAccount)
	assert.Equal(t, "1030", cfg.Ledger.ReceivableAccount)
	assert.Equal(t, "CO", cfg.Ledger.PhoneRegion)
	assert.False(t, cfg.Redis.Enabled())
	assert.EqualValues(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, time.Hour, cfg.DB.MaxConnLifetime)
	assert.Equal(t, 30*time.Second, cfg.DB.StatementTimeout)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_PoolDesdeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("DB_MAX_CONNS", "8")
	t.Setenv("DB_MIN_CONNS", "1")
	t.Setenv("DB_MAX_CONN_IDLE_TIME", "90s")
	t.Setenv("DB_STATEMENT_TIMEOUT", "no-es-duracion")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.EqualValues(t, 8, cfg.DB.MaxConns)
	assert.EqualValues(t, 1, cfg.DB.MinConns)
	assert.Equal(t, 90*time.Second, cfg.DB.MaxConnIdleTime)
	assert.Equal(t, 30*time.Second, cfg.DB.StatementTimeout, "duración inválida usa el valor por defecto")
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LEDGER_CASH_ACCOUNT", "1105")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "1105", cfg.Ledger.CashAccount)
}

func TestLoad_SinSecretoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "mysql")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "comercial", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/comercial?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
