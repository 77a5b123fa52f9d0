package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
)

// SalaryHandler exposes payroll endpoints.
type SalaryHandler struct {
	salaries *service.SalaryService
}

// NewSalaryHandler constructs handler.
func NewSalaryHandler(salaries *service.SalaryService) *SalaryHandler {
	return &SalaryHandler{salaries: salaries}
}

// Create POST /api/salary.
func (h *SalaryHandler) Create(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.SalaryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	paid, err := dto.ParseDate("paymentDate", req.PaymentDate)
	if err != nil {
		return err
	}

	salary, err := h.salaries.RecordSalary(c.UserContext(), identity, service.SalaryInput{
		EmployeeID:  req.Employee,
		BasicSalary: req.BasicSalary,
		Allowances:  req.Allowances.Domain(),
		Deductions:  req.Deductions.Domain(),
		PaymentDate: paid,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, salary)
}

// List GET /api/salary.
func (h *SalaryHandler) List(c *fiber.Ctx) error {
	salaries, err := h.salaries.ListSalaries(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, salaries)
}

// EmployeeHistory GET /api/salary/employee/:employeeId.
func (h *SalaryHandler) EmployeeHistory(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	salaries, err := h.salaries.EmployeeHistory(c.UserContext(), identity, c.Params("employeeId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, salaries)
}

// Get GET /api/salary/:id.
func (h *SalaryHandler) Get(c *fiber.Ctx) error {
	salary, err := h.salaries.GetSalary(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, salary)
}

// Update PUT /api/salary/:id.
func (h *SalaryHandler) Update(c *fiber.Ctx) error {
	var req dto.SalaryUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	paid, err := dto.ParseOptionalDate("paymentDate", req.PaymentDate)
	if err != nil {
		return err
	}

	input := service.SalaryUpdateInput{
		BasicSalary: req.BasicSalary,
		PaymentDate: paid,
		Status:      req.Status,
	}
	if req.Allowances != nil {
		allowances := req.Allowances.Domain()
		input.Allowances = &allowances
	}
	if req.Deductions != nil {
		deductions := req.Deductions.Domain()
		input.Deductions = &deductions
	}

	salary, err := h.salaries.UpdateSalary(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, salary)
}

// Delete DELETE /api/salary/:id.
func (h *SalaryHandler) Delete(c *fiber.Ctx) error {
	if err := h.salaries.DeleteSalary(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return message(c, "salary deleted")
}
