package controllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/genesishub/checkout/app/repository"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// InstanceController tracks WhatsApp sender-instance liveness.
type InstanceController struct {
	repo repository.InstanceRepository
}

func NewInstanceController(repo repository.InstanceRepository) *InstanceController {
	return &InstanceController{repo: repo}
}

// HeartbeatRequest is posted by the WhatsApp gateway while a session is alive.
type HeartbeatRequest struct {
	InstanceKey string `json:"instance_key" validate:"required,min=3,max=100"`
	TenantSlug  string `json:"tenant_slug" validate:"required,min=1,max=100"`
}

// HandleHeartbeat records a heartbeat for a WhatsApp instance and flips it
// back to connected. The background reconciler handles the other direction.
func (ic *InstanceController) HandleHeartbeat(c *fiber.Ctx) error {
	var req HeartbeatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	instance, err := ic.repo.UpsertHeartbeat(req.InstanceKey, req.TenantSlug, time.Now())
	if err != nil {
		log.Printf("heartbeat: upsert failed for %s: %v", req.InstanceKey, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"received": true,
		"status":   instance.Status,
	})
}

// HandleStatus reports the current connection state of one instance. The
// gateway polls this after reconnects to learn whether the reconciler has
// flagged it disconnected.
func (ic *InstanceController) HandleStatus(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("key"))
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing instance key"})
	}

	instance, err := ic.repo.GetByInstanceKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instance not found"})
		}
		log.Printf("heartbeat: status lookup failed for %s: %v", key, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	resp := fiber.Map{
		"instance_key": instance.InstanceKey,
		"tenant_slug":  instance.TenantSlug,
		"status":       instance.Status,
	}
	if instance.LastHeartbeatAt != nil {
		resp["last_heartbeat_at"] = instance.LastHeartbeatAt.UTC().Format(time.RFC3339)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
