package renderer

import (
	"invite.link/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Layouts used by the guest site.
const (
	LayoutMain  = "layouts/main"
	LayoutError = "layouts/error_layout"
	LayoutIntro = "layouts/intro"
)

// Render writes view inside layout with the given status. A template failure
// is logged and turned into a plain 500.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status int) error {
	if data == nil {
		data = fiber.Map{}
	}
	if err := c.Status(status).Render(view, data, layout); err != nil {
		configslog.Log.Error("template render failed",
			zap.String("view", view),
			zap.String("layout", layout),
			zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "page could not be rendered")
	}
	return nil
}

// RenderNotFound renders the standard 404 page.
func RenderNotFound(c *fiber.Ctx, title, message string) error {
	return Render(c, "errors/404", LayoutError, fiber.Map{
		"Title":   title,
		"Message": message,
	}, fiber.StatusNotFound)
}

// RenderError renders the standard 500 page.
func RenderError(c *fiber.Ctx, message string) error {
	return Render(c, "errors/500", LayoutError, fiber.Map{
		"Title":   "Something went wrong",
		"Message": message,
	}, fiber.StatusInternalServerError)
}
