package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/genesishub/checkout/app/models"
	"github.com/genesishub/checkout/app/repository"
	"github.com/genesishub/checkout/internal/pkg/metrics/counter"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const adminPageSizeMax = 100

// HandleAdminListPayments lists payments newest-first with optional status
// filtering and offset/limit paging.
func HandleAdminListPayments(c *fiber.Ctx) error {
	status := strings.TrimSpace(c.Query("status"))
	if status != "" && !models.IsValidPaymentStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown status filter"})
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	limit := c.QueryInt("limit", 25)
	if limit <= 0 || limit > adminPageSizeMax {
		limit = 25
	}

	repo := repository.GetGlobalFactory().GetPaymentRepository()
	payments, err := repo.List(offset, limit, status)
	if err != nil {
		log.Printf("admin: payment list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	total, err := repo.Count(status)
	if err != nil {
		log.Printf("admin: payment count failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"payments": payments,
		"total":    total,
		"offset":   offset,
		"limit":    limit,
	})
}

// HandleAdminPaymentEvents returns the audit trail of one payment.
func HandleAdminPaymentEvents(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment id"})
	}

	repo := repository.GetGlobalFactory().GetPaymentRepository()
	payment, err := repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
		}
		log.Printf("admin: payment lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	events, err := repo.GetEvents(payment.ID)
	if err != nil {
		log.Printf("admin: event lookup failed for payment %d: %v", payment.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"payment": payment,
		"events":  events,
	})
}

// HandleAdminStats combines redis counters with DB status totals.
func HandleAdminStats(c *fiber.Ctx) error {
	byStatus, err := repository.GetGlobalFactory().GetPaymentRepository().CountByStatus()
	if err != nil {
		log.Printf("admin: status counts failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	resp := fiber.Map{"payments_by_status": byStatus}
	if totals, err := counter.GetTotals(); err != nil {
		// Counters are advisory; stats still render without redis.
		log.Printf("admin: counter read failed: %v", err)
	} else {
		resp["counters"] = totals
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
