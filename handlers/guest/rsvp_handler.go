package guest

import (
	"errors"
	"strconv"
	"strings"

	"invite.link/configs/configslog"
	"invite.link/models"
	"invite.link/pkg/invitation"
	"invite.link/pkg/metrics"
	"invite.link/pkg/renderer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Form actions posted by the RSVP page. The posted action is
// "<event>:<verb>", e.g. "henna:add" or "wedding:remove:1".
const (
	actionAccept       = "accept"
	actionDecline      = "decline"
	actionAdd          = "add"
	actionRemovePrefix = "remove:"
	actionEdit         = "edit"
	actionSubmit       = "submit"
	actionCancel       = "cancel"
)

// editingField lists the events whose forms were on the page. Their state is
// posted as "<event>_accepting" and "<event>_guests".
const editingField = "editing"

const loadStatusFailed = "Failed to load RSVP status"

// ShowRSVP (GET /:token/rsvp) renders both event sections from the current
// RSVP status. ?edit=<event> opens an answered event for editing.
func (h *InvitationHandler) ShowRSVP(c *fiber.Ctx) error {
	group, ok := h.verifiedGroup(c)
	if !ok {
		configslog.Log.Error("ShowRSVP: verified group missing from locals")
		return renderer.RenderError(c, loadStatusFailed)
	}
	if done, err := h.showIntro(c, group, invitation.PageRSVP); done {
		return err
	}

	token := c.Params("token")
	status, err := h.api.FetchStatus(c.UserContext(), token)
	if err != nil {
		configslog.Log.Error("ShowRSVP: FetchStatus failed", zap.String("token", token), zap.Error(err))
		return h.renderRSVP(c, group, nil)
	}

	view := h.newView(token, status)
	if e, ok := models.ParseEvent(c.Query("edit")); ok && status.InvitedTo(e) {
		view.Edit(e)
	}
	return h.renderRSVP(c, status, view)
}

// UpdateRSVP (POST /:token/rsvp) applies one form action to one event and
// renders the page again. The page is a single form, so every open section is
// posted back and restored as it was. Only the submit action talks to the API.
func (h *InvitationHandler) UpdateRSVP(c *fiber.Ctx) error {
	group, ok := h.verifiedGroup(c)
	if !ok {
		configslog.Log.Error("UpdateRSVP: verified group missing from locals")
		return renderer.RenderError(c, loadStatusFailed)
	}

	token := c.Params("token")
	target, verb, _ := strings.Cut(c.FormValue("action"), ":")
	event, ok := models.ParseEvent(target)
	if !ok || !group.InvitedTo(event) {
		configslog.Log.Warn("UpdateRSVP: event not available",
			zap.String("token", token), zap.String("action", c.FormValue("action")))
		return c.Redirect(pagePath(token, invitation.PageRSVP), fiber.StatusSeeOther)
	}

	status, err := h.api.FetchStatus(c.UserContext(), token)
	if err != nil {
		configslog.Log.Error("UpdateRSVP: FetchStatus failed", zap.String("token", token), zap.Error(err))
		return h.renderRSVP(c, group, nil)
	}

	view := h.newView(token, status)
	for _, e := range postedEditing(c) {
		if status.InvitedTo(e) {
			view.Edit(e)
			view.SetForm(e, postedForm(c, e))
		}
	}
	view.Edit(event)
	form := view.Form(event)

	switch {
	case verb == actionAccept:
		form.SetAccepting(true)
	case verb == actionDecline:
		form.SetAccepting(false)
	case verb == actionAdd:
		form.AddGuest(status.MaxGuests(event))
	case strings.HasPrefix(verb, actionRemovePrefix):
		if i, convErr := strconv.Atoi(strings.TrimPrefix(verb, actionRemovePrefix)); convErr == nil {
			form.RemoveGuest(i)
		}
	case verb == actionEdit:
		// opened above
	case verb == actionCancel:
		view.Cancel(event)
	case verb == actionSubmit:
		h.submit(c, view, token, event)
	default:
		configslog.Log.Warn("UpdateRSVP: unknown action", zap.String("action", verb))
	}

	return h.renderRSVP(c, view.Group, view)
}

func (h *InvitationHandler) submit(c *fiber.Ctx, view *invitation.RSVPView, token string, event models.Event) {
	err := view.Submit(c.UserContext(), h.api, token, event)
	if err == nil {
		metrics.RSVPSubmissions.WithLabelValues(string(event), metrics.ResultSuccess).Inc()
		configslog.Log.Info("RSVP submitted",
			zap.String("token", token),
			zap.String("event", string(event)),
			zap.Bool("accept", view.Group.HasAccepted(event)))
		return
	}

	metrics.RSVPSubmissions.WithLabelValues(string(event), metrics.ResultFailure).Inc()
	if errors.Is(err, invitation.ErrSubmissionInFlight) {
		configslog.Log.Info("RSVP submission already in flight", zap.String("token", token), zap.String("event", string(event)))
		return
	}
	configslog.Log.Warn("RSVP submission failed",
		zap.String("token", token),
		zap.String("event", string(event)),
		zap.Error(err))
}

func (h *InvitationHandler) newView(token string, group models.Group) *invitation.RSVPView {
	view := invitation.NewRSVPView(token, group)
	view.Guard = h.inflight
	return view
}

func (h *InvitationHandler) renderRSVP(c *fiber.Ctx, group models.Group, view *invitation.RSVPView) error {
	data := h.pageData(c, group, invitation.PageRSVP, "RSVP")
	if view == nil {
		data["LoadError"] = loadStatusFailed
	} else {
		data["View"] = view
	}
	return renderer.Render(c, "pages/rsvp", renderer.LayoutMain, data, fiber.StatusOK)
}

// postedEditing returns the events whose forms were open on the page.
func postedEditing(c *fiber.Ctx) []models.Event {
	var events []models.Event
	for _, raw := range c.Request().PostArgs().PeekMulti(editingField) {
		if e, ok := models.ParseEvent(string(raw)); ok {
			events = append(events, e)
		}
	}
	return events
}

// postedForm reads one event section as the browser sent it. Guest order is
// the order of the inputs on the page.
func postedForm(c *fiber.Ctx, e models.Event) invitation.EventForm {
	form := invitation.EventForm{
		Accepting: c.FormValue(string(e)+"_accepting") != "false",
		Guests:    []string{},
	}
	if !form.Accepting {
		return form
	}
	for _, raw := range c.Request().PostArgs().PeekMulti(string(e) + "_guests") {
		form.Guests = append(form.Guests, string(raw))
	}
	return form
}
