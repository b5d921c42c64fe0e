package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/genesishub/checkout/app/models"
	"github.com/genesishub/checkout/internal/pkg/affiliate"
	"github.com/genesishub/checkout/internal/pkg/payments"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubSecrets struct {
	asaasToken    string
	abacateSecret string
}

func (s stubSecrets) AsaasWebhookToken() string    { return s.asaasToken }
func (s stubSecrets) AbacateWebhookSecret() string { return s.abacateSecret }

type stubPaymentRepo struct {
	payment       *models.Payment
	statusUpdates int
	events        []models.PaymentEvent
}

func (r *stubPaymentRepo) FindByGatewayID(gateway payments.Gateway, externalID string) (*models.Payment, error) {
	if r.payment == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.payment, nil
}

func (r *stubPaymentRepo) UpdateStatus(paymentID uint, status string, paidAt *time.Time) error {
	r.statusUpdates++
	r.payment.Status = status
	r.payment.PaidAt = paidAt
	return nil
}

func (r *stubPaymentRepo) CreateEvent(event *models.PaymentEvent) error {
	r.events = append(r.events, *event)
	return nil
}

type stubAffiliateRepo struct {
	affiliate   *models.Affiliate
	commissions []models.Commission
}

func (r *stubAffiliateRepo) GetByRefCode(refCode string) (*models.Affiliate, error) {
	if r.affiliate == nil || r.affiliate.RefCode != refCode {
		return nil, gorm.ErrRecordNotFound
	}
	return r.affiliate, nil
}

func (r *stubAffiliateRepo) CreateCommissionIfNotExists(commission *models.Commission) (bool, error) {
	r.commissions = append(r.commissions, *commission)
	return true, nil
}

func (r *stubAffiliateRepo) ListCommissionsByAffiliate(affiliateID uint) ([]models.Commission, error) {
	var out []models.Commission
	for _, commission := range r.commissions {
		if commission.AffiliateID == affiliateID {
			out = append(out, commission)
		}
	}
	return out, nil
}

func newWebhookTestApp(secrets payments.SecretProvider, paymentRepo *stubPaymentRepo, affiliateRepo *stubAffiliateRepo) *fiber.App {
	app := fiber.New()
	wc := NewWebhookController(secrets, payments.NewService(paymentRepo), affiliate.NewService(affiliateRepo))
	app.Post("/api/v1/webhooks/payments", wc.HandlePaymentWebhook)
	return app
}

func postWebhook(t *testing.T, app *fiber.App, body string, headers map[string]string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/v1/webhooks/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestHandlePaymentWebhookAsaasPaid(t *testing.T) {
	asaasID := "pay_123"
	paymentRepo := &stubPaymentRepo{payment: &models.Payment{
		ID:             7,
		AmountCents:    10000,
		AffiliateCode:  "ref42",
		AsaasPaymentID: &asaasID,
		Status:         models.PaymentStatusPending,
	}}
	affiliateRepo := &stubAffiliateRepo{affiliate: &models.Affiliate{
		ID:                3,
		RefCode:           "ref42",
		CommissionPercent: 10,
		IsActive:          true,
	}}
	app := newWebhookTestApp(stubSecrets{asaasToken: "tok"}, paymentRepo, affiliateRepo)

	status, body := postWebhook(t, app,
		`{"event":"PAYMENT_RECEIVED","payment":{"id":"pay_123"}}`,
		map[string]string{"asaas-access-token": "tok"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["received"])
	assert.Equal(t, models.PaymentStatusPaid, body["status"])
	assert.Equal(t, 1, paymentRepo.statusUpdates)
	assert.Len(t, paymentRepo.events, 1)
	require.Len(t, affiliateRepo.commissions, 1)
	assert.Equal(t, int64(1000), affiliateRepo.commissions[0].AmountCents)
	assert.Equal(t, uint(7), affiliateRepo.commissions[0].PaymentID)
}

func TestHandlePaymentWebhookAsaasBadToken(t *testing.T) {
	asaasID := "pay_123"
	paymentRepo := &stubPaymentRepo{payment: &models.Payment{
		ID:             7,
		AsaasPaymentID: &asaasID,
		Status:         models.PaymentStatusPending,
	}}
	app := newWebhookTestApp(stubSecrets{asaasToken: "tok"}, paymentRepo, &stubAffiliateRepo{})

	status, body := postWebhook(t, app,
		`{"event":"PAYMENT_RECEIVED","payment":{"id":"pay_123"}}`,
		map[string]string{"asaas-access-token": "wrong"})

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Equal(t, 0, paymentRepo.statusUpdates)
	assert.Empty(t, paymentRepo.events)
}

func TestHandlePaymentWebhookAbacateSecretFromQuery(t *testing.T) {
	billingID := "bill_9"
	paymentRepo := &stubPaymentRepo{payment: &models.Payment{
		ID:               12,
		AbacateBillingID: &billingID,
		Status:           models.PaymentStatusPending,
	}}
	app := newWebhookTestApp(stubSecrets{abacateSecret: "s3cret"}, paymentRepo, &stubAffiliateRepo{})

	req := httptest.NewRequest("POST", "/api/v1/webhooks/payments?secret=s3cret",
		strings.NewReader(`{"event":"billing.paid","data":{"billing":{"id":"bill_9"}}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, paymentRepo.statusUpdates)
	assert.Equal(t, models.PaymentStatusPaid, paymentRepo.payment.Status)
}

func TestHandlePaymentWebhookInvalidPayload(t *testing.T) {
	app := newWebhookTestApp(stubSecrets{}, &stubPaymentRepo{}, &stubAffiliateRepo{})

	status, body := postWebhook(t, app, `{"hello":"world"}`, nil)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid payload", body["error"])
}

func TestHandlePaymentWebhookUnknownPayment(t *testing.T) {
	app := newWebhookTestApp(stubSecrets{asaasToken: "tok"}, &stubPaymentRepo{}, &stubAffiliateRepo{})

	status, body := postWebhook(t, app,
		`{"event":"PAYMENT_RECEIVED","payment":{"id":"missing"}}`,
		map[string]string{"asaas-access-token": "tok"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["received"])
	assert.Equal(t, "Payment not found", body["message"])
}

func TestHandlePaymentWebhookMisticNoAuthRequired(t *testing.T) {
	txID := "tx_55"
	paymentRepo := &stubPaymentRepo{payment: &models.Payment{
		ID:                  21,
		MisticTransactionID: &txID,
		Status:              models.PaymentStatusPending,
	}}
	app := newWebhookTestApp(stubSecrets{asaasToken: "tok", abacateSecret: "s3cret"}, paymentRepo, &stubAffiliateRepo{})

	status, body := postWebhook(t, app,
		`{"transactionId":"tx_55","transactionType":"RECEIVEPIX","transactionMethod":"PIX","status":"COMPLETO"}`,
		nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.PaymentStatusPaid, body["status"])
	assert.Equal(t, 1, paymentRepo.statusUpdates)
}
