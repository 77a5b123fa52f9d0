package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"domain error passes through", NewForbidden("no"), CodeForbidden, http.StatusForbidden},
		{"wrapped domain error", fmt.Errorf("svc: %w", NewConflict("dup", nil)), CodeConflict, http.StatusConflict},
		{"no rows", fmt.Errorf("get: %w", pgx.ErrNoRows), CodeNotFound, http.StatusNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"}, CodeConflict, http.StatusConflict},
		{"other pg error", &pgconn.PgError{Code: "23503"}, CodeInternal, http.StatusInternalServerError},
		{"fiber bad request", fiber.NewError(fiber.StatusBadRequest, "bad body"), CodeValidation, http.StatusBadRequest},
		{"fiber not found", fiber.ErrNotFound, CodeNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.status, got.HTTPStatus)
		})
	}
}

func TestToDomainError_UniqueViolationNamesConstraint(t *testing.T) {
	got := ToDomainError(&pgconn.PgError{Code: "23505", ConstraintName: "employees_code_key"})
	assert.Equal(t, "employees_code_key", got.Details["constraint"])
}

func TestMapError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}

func TestNotFoundAs(t *testing.T) {
	err := NotFoundAs(pgx.ErrNoRows, "salary")
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeNotFound, domainErr.Code)
	assert.Equal(t, "salary not found", domainErr.Message)
	assert.True(t, IsNotFound(err))

	other := NotFoundAs(errors.New("conn reset"), "salary")
	require.ErrorAs(t, other, &domainErr)
	assert.Equal(t, CodeInternal, domainErr.Code)
	assert.False(t, IsNotFound(other))
}

func TestDomainError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}
