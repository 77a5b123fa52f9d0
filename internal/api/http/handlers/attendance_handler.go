package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/service"
)

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Mark POST /api/attendance.
func (h *AttendanceHandler) Mark(c *fiber.Ctx) error {
	var req dto.AttendanceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	records := make([]domain.AttendanceRecord, 0, len(req.Records))
	for _, entry := range req.Records {
		records = append(records, domain.AttendanceRecord{EmployeeID: entry.Employee, Status: entry.Status})
	}

	sheet, err := h.attendance.MarkAttendance(c.UserContext(), req.Date, records)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, sheet)
}

// Sheet GET /api/attendance?date=YYYY-MM-DD.
func (h *AttendanceHandler) Sheet(c *fiber.Ctx) error {
	sheet, err := h.attendance.GetSheet(c.UserContext(), c.Query("date"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, sheet)
}

// Report GET /api/attendance/report.
func (h *AttendanceHandler) Report(c *fiber.Ctx) error {
	days, err := h.attendance.Report(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, days)
}

// EmployeeMonth GET /api/attendance/employee?month=YYYY-MM.
func (h *AttendanceHandler) EmployeeMonth(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	month, err := h.attendance.EmployeeMonth(c.UserContext(), identity.ID(), c.Query("month"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, month)
}
