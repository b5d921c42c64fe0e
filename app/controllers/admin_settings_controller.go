package controllers

import (
	"log"

	"github.com/genesishub/checkout/app/models"
	"github.com/genesishub/checkout/app/repository"
	"github.com/gofiber/fiber/v2"
)

// AdminSettingsController exposes the runtime settings (site title, checkout
// toggle, webhook secrets) over the admin API.
type AdminSettingsController struct {
	repo repository.SettingRepository
}

func NewAdminSettingsController(repo repository.SettingRepository) *AdminSettingsController {
	return &AdminSettingsController{repo: repo}
}

// UpdateSettingsRequest is the payload for replacing the runtime settings.
type UpdateSettingsRequest struct {
	SiteTitle            string `json:"site_title" validate:"required,min=1,max=255"`
	CheckoutEnabled      bool   `json:"checkout_enabled"`
	AsaasWebhookToken    string `json:"asaas_webhook_token" validate:"max=255"`
	AbacateWebhookSecret string `json:"abacatepay_webhook_secret" validate:"max=255"`
}

// HandleGetSettings returns the currently active settings.
func (sc *AdminSettingsController) HandleGetSettings(c *fiber.Ctx) error {
	settings, err := sc.repo.Get()
	if err != nil {
		log.Printf("admin: settings read failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	if settings == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Settings not loaded"})
	}

	raw, err := settings.ToJSON()
	if err != nil {
		log.Printf("admin: settings encode failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(raw)
}

// HandleUpdateSettings replaces the runtime settings. The save path also
// refreshes the in-memory cache, so new webhook secrets apply immediately.
func (sc *AdminSettingsController) HandleUpdateSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	settings := &models.AppSettings{
		SiteTitle:            req.SiteTitle,
		CheckoutEnabled:      req.CheckoutEnabled,
		AsaasWebhookToken:    req.AsaasWebhookToken,
		AbacateWebhookSecret: req.AbacateWebhookSecret,
	}
	if err := sc.repo.Save(settings); err != nil {
		log.Printf("admin: settings save failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"saved":            true,
		"site_title":       settings.SiteTitle,
		"checkout_enabled": settings.CheckoutEnabled,
	})
}
