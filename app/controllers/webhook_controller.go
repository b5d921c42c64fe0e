package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/genesishub/checkout/app/models"
	"github.com/genesishub/checkout/internal/pkg/affiliate"
	"github.com/genesishub/checkout/internal/pkg/env"
	"github.com/genesishub/checkout/internal/pkg/metrics/counter"
	"github.com/genesishub/checkout/internal/pkg/payments"
	"github.com/gofiber/fiber/v2"
)

// settingsSecretProvider resolves webhook secrets from the cached settings
// table, falling back to environment variables so fresh deployments work
// before any settings row exists.
type settingsSecretProvider struct{}

// NewSettingsSecretProvider returns the default secret provider used by the
// webhook route.
func NewSettingsSecretProvider() payments.SecretProvider {
	return settingsSecretProvider{}
}

func (settingsSecretProvider) AsaasWebhookToken() string {
	if s := models.GetAppSettings(); s != nil {
		if token := s.GetAsaasWebhookToken(); token != "" {
			return token
		}
	}
	return env.GetEnv("ASAAS_WEBHOOK_TOKEN", "")
}

func (settingsSecretProvider) AbacateWebhookSecret() string {
	if s := models.GetAppSettings(); s != nil {
		if secret := s.GetAbacateWebhookSecret(); secret != "" {
			return secret
		}
	}
	return env.GetEnv("ABACATEPAY_WEBHOOK_SECRET", "")
}

// WebhookController handles inbound payment gateway webhooks. All three
// gateways post to the same route; the payload shape decides which one sent
// the delivery.
type WebhookController struct {
	secrets     payments.SecretProvider
	reconciler  *payments.Service
	commissions *affiliate.Service
}

// NewWebhookController creates a webhook controller with injected
// dependencies.
func NewWebhookController(secrets payments.SecretProvider, reconciler *payments.Service, commissions *affiliate.Service) *WebhookController {
	return &WebhookController{
		secrets:     secrets,
		reconciler:  reconciler,
		commissions: commissions,
	}
}

// HandlePaymentWebhook processes one webhook delivery end to end: classify,
// authorize, reconcile, credit.
func (wc *WebhookController) HandlePaymentWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)

	inbound, err := payments.Classify(rawBody)
	if err != nil {
		if errors.Is(err, payments.ErrInvalidPayload) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
		}
		log.Printf("webhook: classify failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	// Auth runs before any state is touched.
	switch inbound.Gateway {
	case payments.GatewayAsaas:
		if !payments.VerifyAsaasToken(c.Get("asaas-access-token"), wc.secrets.AsaasWebhookToken()) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
	case payments.GatewayAbacatePay:
		if !payments.VerifyAbacateSecret(c.Get("x-webhook-secret"), c.Query("secret"), wc.secrets.AbacateWebhookSecret()) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
	}

	if err := counter.AddWebhookReceived(string(inbound.Gateway)); err != nil {
		log.Printf("webhook: counter increment failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := wc.reconciler.Reconcile(ctx, inbound)
	if err != nil {
		log.Printf("webhook: reconcile failed for %s/%s: %v", inbound.Gateway, inbound.ExternalID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	switch result.Outcome {
	case payments.OutcomeUnmatched:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
	case payments.OutcomeNotFound:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true, "message": "Payment not found"})
	}

	if result.Outcome == payments.OutcomeUpdated && result.Status == models.PaymentStatusPaid {
		if err := counter.AddPaymentConfirmed(); err != nil {
			log.Printf("webhook: counter increment failed: %v", err)
		}
		// Commission crediting is best-effort from the webhook path; the
		// sender already got its status update acknowledged.
		if err := wc.commissions.CreditForPayment(ctx, result.Payment); err != nil {
			log.Printf("webhook: commission credit failed for payment %d: %v", result.Payment.ID, err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true, "status": result.Status})
}
