package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/employee-service/internal/domain"
)

// Malformed ids are answered as missing rows before any query is sent, so a
// nil pool is enough here.
func TestMalformedIDsAreNotFound(t *testing.T) {
	ctx := context.Background()
	const badID = "not-a-uuid"

	calls := map[string]func() error{
		"admin delete": func() error { return NewAdminRepository(nil).Delete(ctx, badID) },
		"admin get": func() error {
			_, err := NewAdminRepository(nil).GetByID(ctx, badID)
			return err
		},
		"department delete": func() error { return NewDepartmentRepository(nil).Delete(ctx, badID) },
		"department get": func() error {
			_, err := NewDepartmentRepository(nil).GetByID(ctx, badID)
			return err
		},
		"employee delete": func() error { return NewEmployeeRepository(nil).Delete(ctx, badID) },
		"employee get": func() error {
			_, err := NewEmployeeRepository(nil).GetByID(ctx, badID)
			return err
		},
		"salary delete": func() error { return NewSalaryRepository(nil).Delete(ctx, badID) },
		"salary get": func() error {
			_, err := NewSalaryRepository(nil).GetByID(ctx, badID)
			return err
		},
		"leave get": func() error {
			_, err := NewLeaveRepository(nil).GetByID(ctx, badID)
			return err
		},
		"leave status": func() error {
			_, err := NewLeaveRepository(nil).UpdateStatus(ctx, badID, domain.LeaveStatusApproved)
			return err
		},
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, call(), pgx.ErrNoRows)
		})
	}
}
