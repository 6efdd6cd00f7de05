package postgres

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/pkg/config"
)

func fixedLookup(ips ...string) lookupFunc {
	return func(context.Context, string) ([]net.IP, error) {
		out := make([]net.IP, 0, len(ips))
		for _, ip := range ips {
			out = append(out, net.ParseIP(ip))
		}
		return out, nil
	}
}

func TestResolveIPv4(t *testing.T) {
	ctx := context.Background()

	ip, err := resolveIPv4(ctx, "127.0.0.1", nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", ip)

	_, err = resolveIPv4(ctx, "::1", nil)
	assert.Error(t, err)

	ip, err = resolveIPv4(ctx, "db.interno", fixedLookup("2001:db8::1", "10.0.0.7"))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)

	_, err = resolveIPv4(ctx, "db.interno", fixedLookup("2001:db8::1"))
	assert.Error(t, err)
}

func TestDSNWithIPv4(t *testing.T) {
	ctx := context.Background()

	got := dsnWithIPv4(ctx, "postgres://u:p@db.interno/comercial?sslmode=disable", fixedLookup("10.0.0.7"))
	assert.Equal(t, "postgres://u:p@10.0.0.7:5432/comercial?sslmode=disable", got)

	failing := func(context.Context, string) ([]net.IP, error) { return nil, errors.New("sin DNS") }
	original := "postgres://u:p@db.interno:6432/comercial"
	assert.Equal(t, original, dsnWithIPv4(ctx, original, failing))

	assert.Equal(t, "::no-es-url", dsnWithIPv4(ctx, "::no-es-url", failing))
	assert.Equal(t, "host=db user=u", dsnWithIPv4(ctx, "host=db user=u", failing))
}

func TestPoolConfigFor_AplicaLimitesYParametros(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL:      "postgres://app:pw@db.local:5432/comercial?sslmode=disable",
		MaxConns:         12,
		MinConns:         3,
		MaxConnLifetime:  20 * time.Minute,
		MaxConnIdleTime:  5 * time.Minute,
		StatementTimeout: 15 * time.Second,
		ApplicationName:  "comercial-api",
	}

	pc, err := poolConfigFor(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "db.local", pc.ConnConfig.Host)
	assert.EqualValues(t, 12, pc.MaxConns)
	assert.EqualValues(t, 3, pc.MinConns)
	assert.Equal(t, 20*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, "15000", pc.ConnConfig.RuntimeParams["statement_timeout"])
	assert.Equal(t, "comercial-api", pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfigFor_MinMayorQueMaxSeIgnora(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://app:pw@db.local:5432/comercial",
		MaxConns:    2,
		MinConns:    5,
	}
	pc, err := poolConfigFor(context.Background(), cfg)
	require.NoError(t, err)
	assert.EqualValues(t, 2, pc.MaxConns)
	assert.LessOrEqual(t, pc.MinConns, pc.MaxConns)
}

func TestPoolConfigFor_DSNInvalido(t *testing.T) {
	_, err := poolConfigFor(context.Background(), config.DBConfig{DatabaseURL: "postgres://app:pw@db.local:notaport/x"})
	assert.Error(t, err)
}
