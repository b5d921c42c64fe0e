package pix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/genesishub/checkout/internal/pkg/env"
)

const defaultAbacatePayAPIBaseURL = "https://api.abacatepay.com/v1"

// AbacatePayClient creates PIX charges through the AbacatePay REST API.
type AbacatePayClient struct {
	APIKey     string
	APIBaseURL string

	HTTPClient *http.Client
}

// CreateBillingRequest is the charge-creation payload sent to AbacatePay.
type CreateBillingRequest struct {
	Frequency     string           `json:"frequency"`
	Methods       []string         `json:"methods"`
	Products      []BillingProduct `json:"products"`
	Customer      BillingCustomer  `json:"customer"`
	ReturnURL     string           `json:"returnUrl,omitempty"`
	CompletionURL string           `json:"completionUrl,omitempty"`
}

type BillingProduct struct {
	ExternalID string `json:"externalId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price"`
}

type BillingCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	TaxID string `json:"taxId,omitempty"`
}

// Billing is the subset of the AbacatePay billing object this service uses.
type Billing struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Status       string `json:"status"`
	PixQRCode    string `json:"pixQrCode"`
	PixCopyPaste string `json:"pixCopyPaste"`
}

type billingEnvelope struct {
	Data  *Billing `json:"data"`
	Error string   `json:"error"`
}

// NewAbacatePayClientFromEnv builds a client from ABACATEPAY_* environment
// variables.
func NewAbacatePayClientFromEnv() *AbacatePayClient {
	return &AbacatePayClient{
		APIKey:     strings.TrimSpace(env.GetEnv("ABACATEPAY_API_KEY", "")),
		APIBaseURL: strings.TrimRight(env.GetEnv("ABACATEPAY_API_BASE_URL", defaultAbacatePayAPIBaseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateBilling creates a one-time PIX charge and returns the billing id and
// QR code data needed by the checkout UI.
func (c *AbacatePayClient) CreateBilling(ctx context.Context, in CreateBillingRequest) (*Billing, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("ABACATEPAY_API_KEY is not configured")
	}
	if in.Frequency == "" {
		in.Frequency = "ONE_TIME"
	}
	if len(in.Methods) == 0 {
		in.Methods = []string{"PIX"}
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBaseURL+"/billing/create", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("abacatepay billing create failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out billingEnvelope
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("abacatepay billing create: invalid response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("abacatepay billing create: %s", out.Error)
	}
	if out.Data == nil || strings.TrimSpace(out.Data.ID) == "" {
		return nil, errors.New("abacatepay billing create: response missing billing id")
	}
	return out.Data, nil
}
