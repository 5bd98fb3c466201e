package utils

import (
	"github.com/activity-portal/internal/pkg/errors"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

// RedirectResponse is the payload for precondition failures: the client is told
// where to go, no error banner is shown.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

type Meta struct {
	Total    int     `json:"total,omitempty"`
	Page     int     `json:"page,omitempty"`
	Limit    int     `json:"limit,omitempty"`
	TimeMSec float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendRedirect(c *fiber.Ctx, address string) error {
	return c.JSON(RedirectResponse{
		Redirect: address,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Struct-tag validation failures surface as 400 with the offending field
	if vErrs, ok := err.(playground.ValidationErrors); ok && len(vErrs) > 0 {
		return c.Status(400).JSON(ErrorResponse{
			Error: errors.ErrValidationFailed.WithDetails(map[string]interface{}{
				"field": vErrs[0].Field(),
				"rule":  vErrs[0].Tag(),
			}),
		})
	}

	// Unknown error - return 500
	return c.Status(500).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
