package controllers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/genesishub/checkout/app/models"
	"github.com/genesishub/checkout/app/repository"
	"github.com/genesishub/checkout/internal/pkg/cache"
	"github.com/genesishub/checkout/internal/pkg/metrics/counter"
	"github.com/genesishub/checkout/internal/pkg/pix"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

const checkoutStatusCacheTTL = 5 * time.Second

// CreateCheckoutRequest is the payload for starting a PIX checkout.
type CreateCheckoutRequest struct {
	ProductCode   string `json:"product_code" validate:"required,min=1,max=100"`
	ProductName   string `json:"product_name" validate:"required,min=1,max=200"`
	AmountCents   int64  `json:"amount_cents" validate:"required,gt=0"`
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=200"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerTaxID string `json:"customer_tax_id" validate:"omitempty,min=11,max=18"`
	AffiliateCode string `json:"affiliate_code" validate:"omitempty,max=64"`
}

// HandleCreateCheckout creates a PIX charge at the gateway and persists the
// pending payment record the webhook reconciler will later update.
func HandleCreateCheckout(c *fiber.Ctx) error {
	settings := models.GetAppSettings()
	if settings != nil && !settings.IsCheckoutEnabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Checkout is currently disabled"})
	}

	var req CreateCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	paymentCode := uuid.New().String()

	client := pix.NewAbacatePayClientFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	billing, err := client.CreateBilling(ctx, pix.CreateBillingRequest{
		Products: []pix.BillingProduct{{
			ExternalID: req.ProductCode,
			Name:       req.ProductName,
			Quantity:   1,
			PriceCents: req.AmountCents,
		}},
		Customer: pix.BillingCustomer{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
			TaxID: req.CustomerTaxID,
		},
	})
	if err != nil {
		log.Printf("checkout: billing create failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Payment gateway unavailable"})
	}

	payment := &models.Payment{
		PaymentCode:      paymentCode,
		ProductCode:      req.ProductCode,
		AmountCents:      req.AmountCents,
		Currency:         "BRL",
		CustomerName:     req.CustomerName,
		CustomerEmail:    strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerTaxID:    req.CustomerTaxID,
		AffiliateCode:    strings.TrimSpace(req.AffiliateCode),
		AbacateBillingID: &billing.ID,
		Status:           models.PaymentStatusPending,
		PixQRCode:        billing.PixQRCode,
		PixCopyPaste:     billing.PixCopyPaste,
	}
	if err := repository.GetGlobalFactory().GetPaymentRepository().Create(payment); err != nil {
		log.Printf("checkout: payment persist failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	if err := counter.AddCheckoutCreated(); err != nil {
		log.Printf("checkout: counter increment failed: %v", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment_code":   payment.PaymentCode,
		"status":         payment.Status,
		"amount_cents":   payment.AmountCents,
		"pix_qr_code":    payment.PixQRCode,
		"pix_copy_paste": payment.PixCopyPaste,
		"billing_url":    billing.URL,
	})
}

// HandleCheckoutStatus reports the current status of a checkout. The result
// is cached briefly because the checkout UI polls this route every few
// seconds until the payment settles.
func HandleCheckoutStatus(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing payment code"})
	}

	cacheKey := "checkout:status:" + code
	if cached, err := cache.Get(cacheKey); err == nil && cached != "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"payment_code": code, "status": cached})
	}

	payment, err := repository.GetGlobalFactory().GetPaymentRepository().GetByPaymentCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
		}
		log.Printf("checkout: status lookup failed for %s: %v", code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	if err := cache.Set(cacheKey, payment.Status, checkoutStatusCacheTTL); err != nil {
		log.Printf("checkout: status cache write failed: %v", err)
	}

	resp := fiber.Map{"payment_code": payment.PaymentCode, "status": payment.Status}
	if payment.PaidAt != nil {
		resp["paid_at"] = payment.PaidAt.UTC().Format(time.RFC3339)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
