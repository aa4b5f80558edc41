package api

import (
	"context"
	"errors"
	"strconv"

	"invite.link/configs/configslog"
	"invite.link/models"
	"invite.link/pkg/metrics"
	"invite.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	detailInvalidBody = "Invalid request body"
	detailInternal    = "Internal server error"
)

// GroupHandler serves the RSVP API under /api/groups.
type GroupHandler struct {
	groupService services.IGroupService
}

// NewGroupHandler creates a handler backed by the shared database.
func NewGroupHandler() *GroupHandler {
	return &GroupHandler{groupService: services.NewGroupService()}
}

// Health (GET /api/health).
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Verify (GET /api/groups/verify/:token) returns the group of a token.
func (h *GroupHandler) Verify(c *fiber.Ctx) error {
	return h.lookup(c, "verify", h.groupService.Verify)
}

// Status (GET /api/groups/status/:token) returns the current RSVP state.
func (h *GroupHandler) Status(c *fiber.Ctx) error {
	return h.lookup(c, "status", h.groupService.Status)
}

func (h *GroupHandler) lookup(c *fiber.Ctx, endpoint string, find func(ctx context.Context, token string) (models.Group, error)) error {
	token := c.Params("token")
	group, err := find(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			metrics.APILookupFailures.WithLabelValues(endpoint).Inc()
		}
		return h.fail(c, endpoint, token, err)
	}
	return c.JSON(group)
}

// SubmitRSVP (POST /api/groups/rsvp/:token) stores the answer for one event.
func (h *GroupHandler) SubmitRSVP(c *fiber.Ctx) error {
	token := c.Params("token")

	var req models.RSVPRequest
	if err := c.BodyParser(&req); err != nil {
		configslog.Log.Warn("SubmitRSVP: body could not be parsed", zap.String("token", token), zap.Error(err))
		return detail(c, fiber.StatusUnprocessableEntity, detailInvalidBody)
	}
	if req.Guests == nil {
		req.Guests = []string{}
	}

	resp, err := h.groupService.SubmitRSVP(c.UserContext(), token, req)
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			metrics.APILookupFailures.WithLabelValues("rsvp").Inc()
		}
		return h.fail(c, "rsvp", token, err)
	}

	metrics.APIRSVPs.WithLabelValues(string(req.Event), strconv.FormatBool(req.Accept)).Inc()
	return c.JSON(resp)
}

// fail maps a service error to its status and {"detail": ...} body.
func (h *GroupHandler) fail(c *fiber.Ctx, endpoint, token string, err error) error {
	switch {
	case errors.Is(err, services.ErrGroupNotFound):
		configslog.Log.Info("unknown invitation token", zap.String("endpoint", endpoint), zap.String("token", token))
		return detail(c, fiber.StatusNotFound, services.ErrGroupNotFound.Error())
	case services.IsRejection(err):
		configslog.Log.Info("RSVP rejected", zap.String("token", token), zap.String("reason", err.Error()))
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	configslog.Log.Error("group API request failed",
		zap.String("endpoint", endpoint),
		zap.String("token", token),
		zap.Error(err))
	return detail(c, fiber.StatusInternalServerError, detailInternal)
}

func detail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"detail": message})
}
