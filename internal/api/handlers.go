package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qolzam/envcheck/internal/envcheck"
	"github.com/qolzam/envcheck/internal/pkg/log"
)

type Handler struct {
	check    envcheck.Check
	snapshot envcheck.Snapshot
}

// NewHandler serves check results against a snapshot captured once at startup.
func NewHandler(check envcheck.Check, snapshot envcheck.Snapshot) *Handler {
	return &Handler{check: check, snapshot: snapshot}
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok"})
}

func (h *Handler) RunCheck(c *fiber.Ctx) error {
	res, err := h.check.Run(h.snapshot)
	if err != nil {
		log.WarnWithContext(c.UserContext(), "check %s failed: %v", h.check.Key, err)
		return HandleCheckError(c, res, err)
	}

	log.InfoWithContext(c.UserContext(), "check %s passed", h.check.Key)
	return c.JSON(res)
}
