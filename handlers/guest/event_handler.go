package guest

import (
	"invite.link/configs"
	"invite.link/configs/configslog"
	"invite.link/pkg/invitation"
	"invite.link/pkg/renderer"

	"github.com/gofiber/fiber/v2"
)

const dressCode = "TBD"

// ShowNikkah renders the Nikkah/Reception page. Groups invited to neither are
// sent to the RSVP page.
func (h *InvitationHandler) ShowNikkah(c *fiber.Ctx) error {
	group, ok := h.verifiedGroup(c)
	if !ok {
		configslog.Log.Error("ShowNikkah: verified group missing from locals")
		return renderer.RenderError(c, "Failed to load event details")
	}
	if !invitation.ShowsNikkahPage(group) {
		return c.Redirect(pagePath(c.Params("token"), invitation.PageRSVP), fiber.StatusFound)
	}
	if done, err := h.showIntro(c, group, invitation.PageNikkah); done {
		return err
	}

	details := invitation.NikkahPage(group)
	data := h.pageData(c, group, invitation.PageNikkah, details.Title)
	data["Details"] = details
	data["DressCode"] = dressCode
	return renderer.Render(c, "pages/nikkah", renderer.LayoutMain, data, fiber.StatusOK)
}

// ShowHenna renders the Henna page for groups invited to it.
func (h *InvitationHandler) ShowHenna(c *fiber.Ctx) error {
	group, ok := h.verifiedGroup(c)
	if !ok {
		configslog.Log.Error("ShowHenna: verified group missing from locals")
		return renderer.RenderError(c, "Failed to load event details")
	}
	if !group.InvitedToHenna {
		return c.Redirect(pagePath(c.Params("token"), invitation.PageRSVP), fiber.StatusFound)
	}
	if done, err := h.showIntro(c, group, invitation.PageHenna); done {
		return err
	}

	henna := configs.Events[configs.EventKeyHenna]
	data := h.pageData(c, group, invitation.PageHenna, henna.Name)
	data["Event"] = henna
	data["DressCode"] = dressCode
	return renderer.Render(c, "pages/henna", renderer.LayoutMain, data, fiber.StatusOK)
}
