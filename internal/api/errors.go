package api

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/qolzam/envcheck/internal/envcheck"
)

const CodeInternalError = "INTERNAL_ERROR"

type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func HandleCheckError(c *fiber.Ctx, res envcheck.Result, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, envcheck.ErrAssertionMismatch):
		return c.Status(http.StatusPreconditionFailed).JSON(ErrorResponse{
			Code:    envcheck.CodeAssertionMismatch,
			Message: err.Error(),
			Details: res,
		})
	case errors.Is(err, envcheck.ErrEmptyKey):
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    envcheck.CodeInvalidCheck,
			Message: "Check is misconfigured",
			Details: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    CodeInternalError,
			Message: "An unexpected error occurred",
			Details: err.Error(),
		})
	}
}
