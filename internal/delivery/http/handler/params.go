package handler

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"github.com/activity-portal/internal/pkg/utils"
	"github.com/activity-portal/internal/wizard"
)

// wizardParams assembles step addressing from the route and query. The "new"
// path segment maps to an empty entity ID, mirroring the address scheme.
func wizardParams(c *fiber.Ctx, step int) wizard.Params {
	id := c.Params("id")
	if id == "new" {
		id = ""
	}
	return wizard.Params{
		EntityID:  id,
		Lang:      c.Query("lang", "en"),
		Currency:  c.Query("currency", "USD"),
		StepIndex: step,
		OptionID:  c.Query("option"),
	}
}

// respondError distinguishes silent redirects from real errors: a failed step
// precondition sends the client to the owning entry step without an error
// banner, everything else goes through the error envelope.
func respondError(c *fiber.Ctx, err error) error {
	var redirect *wizard.RedirectError
	if stderrors.As(err, &redirect) {
		return utils.SendRedirect(c, wizard.BuildAddress(redirect.To))
	}
	return utils.SendError(c, err)
}
