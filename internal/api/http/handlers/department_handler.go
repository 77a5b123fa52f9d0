package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
)

// DepartmentHandler exposes admin department endpoints.
type DepartmentHandler struct {
	departments *service.DepartmentService
}

// NewDepartmentHandler constructs handler.
func NewDepartmentHandler(departments *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departments: departments}
}

// Create POST /api/department/add.
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	dept, err := h.departments.CreateDepartment(c.UserContext(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, dept)
}

// List GET /api/department.
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	depts, err := h.departments.ListDepartments(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, depts)
}

// Get GET /api/department/:id.
func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	dept, err := h.departments.GetDepartment(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dept)
}

// Update PUT /api/department/:id.
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	var req dto.DepartmentUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	dept, err := h.departments.UpdateDepartment(c.UserContext(), c.Params("id"), req.Name, req.Description)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dept)
}

// Delete DELETE /api/department/:id.
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.departments.DeleteDepartment(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return message(c, "department deleted")
}
