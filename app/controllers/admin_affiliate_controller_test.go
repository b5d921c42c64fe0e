package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/genesishub/checkout/app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAffiliateTestApp(repo *stubAffiliateRepo) *fiber.App {
	app := fiber.New()
	ac := NewAdminAffiliateController(repo)
	app.Get("/api/v1/admin/affiliates/:ref_code/commissions", ac.HandleListCommissions)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestHandleListCommissions(t *testing.T) {
	repo := &stubAffiliateRepo{
		affiliate: &models.Affiliate{ID: 3, RefCode: "ref42", CommissionPercent: 10, IsActive: true},
		commissions: []models.Commission{
			{ID: 1, AffiliateID: 3, PaymentID: 7, AmountCents: 1000, Status: models.CommissionStatusPending},
			{ID: 2, AffiliateID: 3, PaymentID: 9, AmountCents: 500, Status: models.CommissionStatusApproved},
			{ID: 3, AffiliateID: 8, PaymentID: 11, AmountCents: 9999, Status: models.CommissionStatusPending},
		},
	}
	app := newAffiliateTestApp(repo)

	status, body := getJSON(t, app, "/api/v1/admin/affiliates/ref42/commissions")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1500), body["total_cents"])
	commissions, ok := body["commissions"].([]interface{})
	require.True(t, ok)
	assert.Len(t, commissions, 2)
}

func TestHandleListCommissionsUnknownRefCode(t *testing.T) {
	app := newAffiliateTestApp(&stubAffiliateRepo{})

	status, body := getJSON(t, app, "/api/v1/admin/affiliates/nobody/commissions")

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Affiliate not found", body["error"])
}
