package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClasificacionDeErrores(t *testing.T) {
	serialization := fmt.Errorf("update: %w", &pgconn.PgError{Code: "40001"})
	deadlock := &pgconn.PgError{Code: "40P01"}
	unique := &pgconn.PgError{Code: "23505"}
	badUUID := &pgconn.PgError{Code: "22P02"}

	assert.True(t, isRetryable(serialization))
	assert.True(t, isRetryable(deadlock))
	assert.False(t, isRetryable(unique))
	assert.False(t, isRetryable(errors.New("40001")))

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(deadlock))

	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.True(t, isNoRows(badUUID))
	assert.False(t, isNoRows(unique))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "x", nullable("x"))
}
