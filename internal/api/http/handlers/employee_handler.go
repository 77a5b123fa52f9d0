package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
)

// EmployeeHandler exposes admin employee endpoints.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

// NewEmployeeHandler constructs handler.
func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// Create POST /api/employee.
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.EmployeeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	dob, err := dto.ParseDate("dateOfBirth", req.DateOfBirth)
	if err != nil {
		return err
	}

	emp, err := h.employees.CreateEmployee(c.UserContext(), identity, service.EmployeeCreateInput{
		EmployeeCode: req.EmployeeID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Gender:       req.Gender,
		DateOfBirth:  dob,
		Salary:       req.Salary,
		DepartmentID: req.Department,
		Designation:  req.Designation,
		Password:     req.Password,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, emp)
}

// List GET /api/employee.
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	emps, err := h.employees.ListEmployees(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, emps)
}

// ListByDepartment GET /api/employee/department/:departmentId.
func (h *EmployeeHandler) ListByDepartment(c *fiber.Ctx) error {
	emps, err := h.employees.ListByDepartment(c.UserContext(), c.Params("departmentId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, emps)
}

// Get GET /api/employee/:id.
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	emp, err := h.employees.GetEmployee(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, emp)
}

// Update PUT /api/employee/:id.
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var req dto.EmployeeUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	dob, err := dto.ParseOptionalDate("dateOfBirth", req.DateOfBirth)
	if err != nil {
		return err
	}

	emp, err := h.employees.UpdateEmployee(c.UserContext(), c.Params("id"), service.EmployeeUpdateInput{
		EmployeeCode: req.EmployeeID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Gender:       req.Gender,
		DateOfBirth:  dob,
		Salary:       req.Salary,
		DepartmentID: req.Department,
		Designation:  req.Designation,
		Password:     req.Password,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, emp)
}

// Delete DELETE /api/employee/:id.
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.employees.DeleteEmployee(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return message(c, "employee deleted")
}
