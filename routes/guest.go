package routes

import (
	"invite.link/configs"
	guest_handlers "invite.link/handlers/guest"
	"invite.link/pkg/inviteapi"

	"github.com/gofiber/fiber/v2"
)

// registerGuestRoutes defines "/" and the pages under /:token. Every /:token
// route runs behind token verification.
func registerGuestRoutes(app *fiber.App, cfg *configs.AppConfig, api inviteapi.IClient) {
	invitationHandler := guest_handlers.NewInvitationHandler(api, cfg)

	app.Get("/", invitationHandler.Root)

	tokenGroup := app.Group("/:token", invitationHandler.RequireInvitation)
	tokenGroup.Get("/", invitationHandler.Index)            // GET /{token} -> /{token}/rsvp
	tokenGroup.Get("/open", invitationHandler.Open)         // GET /{token}/open?next=<page>
	tokenGroup.Get("/nikkah", invitationHandler.ShowNikkah) // GET /{token}/nikkah
	tokenGroup.Get("/henna", invitationHandler.ShowHenna)   // GET /{token}/henna
	tokenGroup.Get("/rsvp", invitationHandler.ShowRSVP)     // GET /{token}/rsvp
	tokenGroup.Post("/rsvp", invitationHandler.UpdateRSVP)  // POST /{token}/rsvp
}
