package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

func codeOf(err error) string {
	if err == nil {
		return ""
	}
	return apperrors.ToDomainError(err).Code
}

func TestCreateEmployee(t *testing.T) {
	f := newFixture(t)
	svc := f.employeeService()
	ctx := context.Background()

	input := EmployeeCreateInput{
		EmployeeCode: "E-2",
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "Grace@Corp.test",
		Gender:       domain.GenderFemale,
		DateOfBirth:  time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC),
		Salary:       5000,
		DepartmentID: f.dept.ID,
		Designation:  "Admiral",
		Password:     "grace-pass",
	}
	emp, err := svc.CreateEmployee(ctx, f.adminIdentity(), input)
	require.NoError(t, err)
	assert.Equal(t, "grace@corp.test", emp.Email)
	assert.Equal(t, "Engineering", emp.DepartmentName)
	assert.NotEqual(t, "grace-pass", emp.PasswordHash)
	assert.Equal(t, []events.EventType{events.EventEmployeeCreated}, f.dispatcher.types())

	t.Run("duplicate code", func(t *testing.T) {
		dup := input
		dup.Email = "other@corp.test"
		_, err := svc.CreateEmployee(ctx, f.adminIdentity(), dup)
		assert.Equal(t, apperrors.CodeConflict, codeOf(err))
	})
	t.Run("email held by administrator", func(t *testing.T) {
		dup := input
		dup.EmployeeCode = "E-3"
		dup.Email = "admin@corp.test"
		_, err := svc.CreateEmployee(ctx, f.adminIdentity(), dup)
		assert.Equal(t, apperrors.CodeConflict, codeOf(err))
	})
	t.Run("unknown department", func(t *testing.T) {
		dup := input
		dup.EmployeeCode = "E-4"
		dup.Email = "e4@corp.test"
		dup.DepartmentID = "missing"
		_, err := svc.CreateEmployee(ctx, f.adminIdentity(), dup)
		assert.Equal(t, apperrors.CodeNotFound, codeOf(err))
	})
	t.Run("negative salary", func(t *testing.T) {
		dup := input
		dup.Salary = -1
		_, err := svc.CreateEmployee(ctx, f.adminIdentity(), dup)
		assert.Equal(t, apperrors.CodeValidation, codeOf(err))
	})
}

func TestUpdateEmployee_KeepsUnsetFields(t *testing.T) {
	f := newFixture(t)
	svc := f.employeeService()

	title := "Staff Engineer"
	emp, err := svc.UpdateEmployee(context.Background(), f.employee.ID, EmployeeUpdateInput{Designation: &title})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", emp.Designation)
	assert.Equal(t, "ada@corp.test", emp.Email)
	assert.Equal(t, f.employee.PasswordHash, emp.PasswordHash)

	_, err = svc.UpdateEmployee(context.Background(), "missing", EmployeeUpdateInput{Designation: &title})
	assert.Equal(t, apperrors.CodeNotFound, codeOf(err))
}

func TestDeleteDepartment_RefusesWhileStaffed(t *testing.T) {
	f := newFixture(t)
	svc := NewDepartmentService(f.store.Departments(), f.store.Employees())
	ctx := context.Background()

	assert.Equal(t, apperrors.CodeConflict, codeOf(svc.DeleteDepartment(ctx, f.dept.ID)))

	require.NoError(t, f.employeeService().DeleteEmployee(ctx, f.employee.ID))
	require.NoError(t, svc.DeleteDepartment(ctx, f.dept.ID))
	assert.Equal(t, apperrors.CodeNotFound, codeOf(svc.DeleteDepartment(ctx, f.dept.ID)))
}

func TestSalary_RecordAndConflict(t *testing.T) {
	f := newFixture(t)
	svc := NewSalaryService(f.store.Salaries(), f.store.Employees(), f.dispatcher)
	ctx := context.Background()

	input := SalaryInput{
		EmployeeID:  f.employee.ID,
		BasicSalary: 1000,
		Allowances:  domain.Allowances{HRA: 100, DA: 50, Medical: 25, TA: 25},
		Deductions:  domain.Deductions{PF: 60, Tax: 90, Insurance: 10},
		PaymentDate: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
	salary, err := svc.RecordSalary(ctx, f.adminIdentity(), input)
	require.NoError(t, err)
	assert.Equal(t, 1040.0, salary.NetSalary)
	assert.Equal(t, domain.SalaryStatusPaid, salary.Status)
	assert.Equal(t, 3, salary.Month)
	assert.Equal(t, f.dept.ID, salary.DepartmentID)
	assert.Equal(t, []events.EventType{events.EventSalaryRecorded}, f.dispatcher.types())

	again := input
	again.PaymentDate = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.RecordSalary(ctx, f.adminIdentity(), again)
	assert.Equal(t, apperrors.CodeConflict, codeOf(err))

	zero := input
	zero.BasicSalary = 0
	zero.PaymentDate = time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC)
	_, err = svc.RecordSalary(ctx, f.adminIdentity(), zero)
	assert.Equal(t, apperrors.CodeValidation, codeOf(err))

	basic := 2000.0
	updated, err := svc.UpdateSalary(ctx, salary.ID, SalaryUpdateInput{BasicSalary: &basic})
	require.NoError(t, err)
	assert.Equal(t, 2040.0, updated.NetSalary)
}

func TestSalary_EmployeeHistoryOwnership(t *testing.T) {
	f := newFixture(t)
	svc := NewSalaryService(f.store.Salaries(), f.store.Employees(), nil)
	ctx := context.Background()

	_, err := svc.EmployeeHistory(ctx, f.employeeIdentity(), "someone-else")
	assert.Equal(t, apperrors.CodeForbidden, codeOf(err))

	list, err := svc.EmployeeHistory(ctx, f.employeeIdentity(), f.employee.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.EmployeeHistory(ctx, f.adminIdentity(), f.employee.ID)
	require.NoError(t, err)
}

func TestAttendance_MarkAndEmployeeMonth(t *testing.T) {
	f := newFixture(t)
	svc := NewAttendanceService(f.store.Attendance(), f.store.Employees())
	ctx := context.Background()

	_, err := svc.MarkAttendance(ctx, "2024-05-01", []domain.AttendanceRecord{{EmployeeID: f.employee.ID, Status: domain.AttendancePresent}})
	require.NoError(t, err)
	_, err = svc.MarkAttendance(ctx, "2024-05-02", []domain.AttendanceRecord{{EmployeeID: f.employee.ID, Status: domain.AttendanceAbsent}})
	require.NoError(t, err)
	sheet, err := svc.MarkAttendance(ctx, "2024-05-03", []domain.AttendanceRecord{{EmployeeID: f.employee.ID, Status: domain.AttendancePresent}})
	require.NoError(t, err)
	require.Len(t, sheet.Records, 1)
	assert.Equal(t, "Ada", sheet.Records[0].FirstName)

	month, err := svc.EmployeeMonth(ctx, f.employee.ID, "2024-05")
	require.NoError(t, err)
	assert.Len(t, month.Days, 3)
	assert.Equal(t, domain.AttendanceStats{TotalDays: 3, PresentDays: 2, AbsentDays: 1, AttendancePercentage: 67}, month.Stats)

	empty, err := svc.EmployeeMonth(ctx, f.employee.ID, "2024-06")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Stats.AttendancePercentage)

	_, err = svc.MarkAttendance(ctx, "05/01/2024", []domain.AttendanceRecord{{EmployeeID: f.employee.ID, Status: domain.AttendancePresent}})
	assert.Equal(t, apperrors.CodeValidation, codeOf(err))
	_, err = svc.MarkAttendance(ctx, "2024-05-04", []domain.AttendanceRecord{{EmployeeID: "ghost", Status: domain.AttendancePresent}})
	assert.Equal(t, apperrors.CodeNotFound, codeOf(err))

	blank, err := svc.GetSheet(ctx, "2030-01-01")
	require.NoError(t, err)
	assert.Empty(t, blank.Records)
}

func TestLeave_RequestAndReview(t *testing.T) {
	f := newFixture(t)
	svc := NewLeaveService(f.store.Leaves(), f.dispatcher)
	ctx := context.Background()
	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.RequestLeave(ctx, f.employeeIdentity(), LeaveInput{FromDate: from, ToDate: from.AddDate(0, 0, -1), Reason: "trip", LeaveType: domain.LeaveTypeAnnual})
	assert.Equal(t, apperrors.CodeValidation, codeOf(err))

	_, err = svc.RequestLeave(ctx, f.adminIdentity(), LeaveInput{FromDate: from, ToDate: from, Reason: "trip", LeaveType: domain.LeaveTypeAnnual})
	assert.Equal(t, apperrors.CodeForbidden, codeOf(err))

	leave, err := svc.RequestLeave(ctx, f.employeeIdentity(), LeaveInput{FromDate: from, ToDate: from.AddDate(0, 0, 2), Reason: "trip", LeaveType: domain.LeaveTypeAnnual})
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusPending, leave.Status)
	assert.Equal(t, f.employee.ID, leave.EmployeeID)

	_, err = svc.ReviewLeave(ctx, f.adminIdentity(), leave.ID, domain.LeaveStatusPending)
	assert.Equal(t, apperrors.CodeValidation, codeOf(err))

	reviewed, err := svc.ReviewLeave(ctx, f.adminIdentity(), leave.ID, domain.LeaveStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusApproved, reviewed.Status)
	assert.Equal(t, []events.EventType{events.EventLeaveRequested, events.EventLeaveStatusChanged}, f.dispatcher.types())

	mine, err := svc.EmployeeLeaves(ctx, f.employee.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestDashboardSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	salaries := NewSalaryService(f.store.Salaries(), f.store.Employees(), nil)
	leaves := NewLeaveService(f.store.Leaves(), nil)

	_, err := salaries.RecordSalary(ctx, f.adminIdentity(), SalaryInput{
		EmployeeID:  f.employee.ID,
		BasicSalary: 500,
		PaymentDate: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = salaries.RecordSalary(ctx, f.adminIdentity(), SalaryInput{
		EmployeeID:  f.employee.ID,
		BasicSalary: 700,
		PaymentDate: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
		Status:      domain.SalaryStatusPending,
	})
	require.NoError(t, err)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = leaves.RequestLeave(ctx, f.employeeIdentity(), LeaveInput{FromDate: day, ToDate: day, Reason: "flu", LeaveType: domain.LeaveTypeSick})
	require.NoError(t, err)

	summary, err := NewDashboardService(f.store.Employees(), f.store.Departments(), f.store.Salaries(), f.store.Leaves()).Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardSummary{
		EmployeeCount:   1,
		DepartmentCount: 1,
		TotalPayroll:    500,
		LeaveStats:      domain.LeaveStats{Total: 1, Pending: 1},
	}, *summary)
}
