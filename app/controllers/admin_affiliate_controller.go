package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/genesishub/checkout/app/repository"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminAffiliateController exposes affiliate payout data over the admin API.
type AdminAffiliateController struct {
	repo repository.AffiliateRepository
}

func NewAdminAffiliateController(repo repository.AffiliateRepository) *AdminAffiliateController {
	return &AdminAffiliateController{repo: repo}
}

// HandleListCommissions returns an affiliate and its commission history,
// newest first.
func (ac *AdminAffiliateController) HandleListCommissions(c *fiber.Ctx) error {
	refCode := strings.TrimSpace(c.Params("ref_code"))
	if refCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing ref code"})
	}

	aff, err := ac.repo.GetByRefCode(refCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Affiliate not found"})
		}
		log.Printf("admin: affiliate lookup failed for %s: %v", refCode, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	commissions, err := ac.repo.ListCommissionsByAffiliate(aff.ID)
	if err != nil {
		log.Printf("admin: commission list failed for affiliate %d: %v", aff.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	var totalCents int64
	for _, commission := range commissions {
		totalCents += commission.AmountCents
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"affiliate":   aff,
		"commissions": commissions,
		"total_cents": totalCents,
	})
}
