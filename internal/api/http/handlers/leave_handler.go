package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
)

// LeaveHandler exposes leave request endpoints.
type LeaveHandler struct {
	leaves *service.LeaveService
}

// NewLeaveHandler constructs handler.
func NewLeaveHandler(leaves *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

// Request POST /api/leave/add. The employee is always the caller.
func (h *LeaveHandler) Request(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.LeaveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	from, err := dto.ParseDate("fromDate", req.FromDate)
	if err != nil {
		return err
	}
	to, err := dto.ParseDate("toDate", req.ToDate)
	if err != nil {
		return err
	}

	leave, err := h.leaves.RequestLeave(c.UserContext(), identity, service.LeaveInput{
		FromDate:  from,
		ToDate:    to,
		Reason:    req.Reason,
		LeaveType: req.LeaveType,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, leave)
}

// Mine GET /api/leave/employee-leaves.
func (h *LeaveHandler) Mine(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	leaves, err := h.leaves.EmployeeLeaves(c.UserContext(), identity.ID())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, leaves)
}

// All GET /api/leave/all.
func (h *LeaveHandler) All(c *fiber.Ctx) error {
	leaves, err := h.leaves.AllLeaves(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, leaves)
}

// Review PATCH /api/leave/:leaveId.
func (h *LeaveHandler) Review(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.LeaveReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	leave, err := h.leaves.ReviewLeave(c.UserContext(), identity, c.Params("leaveId"), req.Status)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, leave)
}
