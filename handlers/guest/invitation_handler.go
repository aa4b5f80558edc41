package guest

import (
	"time"

	"invite.link/configs"
	"invite.link/configs/configslog"
	"invite.link/models"
	"invite.link/pkg/invitation"
	"invite.link/pkg/inviteapi"
	"invite.link/pkg/metrics"
	"invite.link/pkg/renderer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	localsGroup        = "invitation_group"
	openedCookiePrefix = "opened_"
	openedCookieMaxAge = 365 * 24 * time.Hour
)

// InvitationHandler serves the guest pages under /:token.
type InvitationHandler struct {
	api      inviteapi.IClient
	cfg      *configs.AppConfig
	inflight *invitation.InFlight
}

// NewInvitationHandler wires the handler to the RSVP API client.
func NewInvitationHandler(api inviteapi.IClient, cfg *configs.AppConfig) *InvitationHandler {
	return &InvitationHandler{
		api:      api,
		cfg:      cfg,
		inflight: invitation.NewInFlight(),
	}
}

// RequireInvitation verifies the :token of the request. An unknown token, or
// any failure while verifying it, ends the request with the invalid link page.
func (h *InvitationHandler) RequireInvitation(c *fiber.Ctx) error {
	token := c.Params("token")

	// Scoped to the request: a result can only ever complete its own token.
	var v invitation.Verification
	ticket := v.Begin(token)
	group, err := h.api.VerifyToken(c.UserContext(), token)
	v.Complete(ticket, group, err)

	_, state, group := v.State()
	if state != invitation.Valid {
		metrics.TokenVerifications.WithLabelValues(metrics.ResultInvalid).Inc()
		configslog.Log.Warn("invitation token rejected",
			zap.String("token", token),
			zap.String("path", c.Path()),
			zap.Error(v.Err()))
		return renderer.Render(c, "invitation/invalid", renderer.LayoutError, fiber.Map{
			"Title":   "Invalid Invitation Link",
			"Message": "This invitation link is not valid. Please check your link and try again.",
		}, fiber.StatusNotFound)
	}

	metrics.TokenVerifications.WithLabelValues(metrics.ResultValid).Inc()
	c.Locals(localsGroup, group)
	return c.Next()
}

// Root answers "/" where no token is present.
func (h *InvitationHandler) Root(c *fiber.Ctx) error {
	return renderer.Render(c, "invitation/invalid", renderer.LayoutError, fiber.Map{
		"Title":   "Invalid Invitation",
		"Message": "Please use the unique link from your invitation.",
	}, fiber.StatusOK)
}

// Index sends a verified guest to the RSVP page.
func (h *InvitationHandler) Index(c *fiber.Ctx) error {
	return c.Redirect(pagePath(c.Params("token"), invitation.PageRSVP), fiber.StatusFound)
}

// Open remembers that the envelope was opened for this token and continues to
// the requested page.
func (h *InvitationHandler) Open(c *fiber.Ctx) error {
	token := c.Params("token")
	next := invitation.Page(c.Query("next"))
	switch next {
	case invitation.PageNikkah, invitation.PageHenna, invitation.PageRSVP:
	default:
		next = invitation.PageRSVP
	}

	c.Cookie(&fiber.Cookie{
		Name:     openedCookiePrefix + token,
		Value:    "1",
		Path:     "/" + token,
		MaxAge:   int(openedCookieMaxAge.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(pagePath(token, next), fiber.StatusSeeOther)
}

// showIntro renders the envelope when it has not been opened yet. It reports
// whether the response was written.
func (h *InvitationHandler) showIntro(c *fiber.Ctx, group models.Group, page invitation.Page) (bool, error) {
	token := c.Params("token")
	if !h.cfg.ShowIntro || c.Cookies(openedCookiePrefix+token) != "" {
		return false, nil
	}
	return true, renderer.Render(c, "pages/intro", renderer.LayoutIntro, fiber.Map{
		"Title":   h.cfg.CoupleNames,
		"Group":   group,
		"OpenURL": "/" + token + "/open?next=" + string(page),
	}, fiber.StatusOK)
}

func (h *InvitationHandler) verifiedGroup(c *fiber.Ctx) (models.Group, bool) {
	group, ok := c.Locals(localsGroup).(models.Group)
	return group, ok
}

func (h *InvitationHandler) pageData(c *fiber.Ctx, group models.Group, active invitation.Page, title string) fiber.Map {
	return fiber.Map{
		"Title":       title,
		"CoupleNames": h.cfg.CoupleNames,
		"Token":       c.Params("token"),
		"Tabs":        invitation.Tabs(group),
		"Active":      active,
		"Group":       group,
	}
}

func pagePath(token string, page invitation.Page) string {
	return "/" + token + "/" + string(page)
}
