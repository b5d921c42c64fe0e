package payments

import (
	"errors"
	"testing"
)

func TestClassifyMisticPay(t *testing.T) {
	raw := []byte(`{"transactionId":"TX1","transactionType":"DEPOSIT","transactionMethod":"PIX","status":"COMPLETO"}`)
	in, err := Classify(raw)
	if err != nil {
		t.Fatalf("unexpected classify error: %v", err)
	}
	if in.Gateway != GatewayMisticPay {
		t.Fatalf("expected misticpay, got %q", in.Gateway)
	}
	if in.ExternalID != "TX1" || in.Signal != "COMPLETO" {
		t.Fatalf("unexpected extraction: id=%q signal=%q", in.ExternalID, in.Signal)
	}
}

func TestClassifyMisticPayRequiresPixMethod(t *testing.T) {
	// Without transactionMethod=PIX the body falls through and, lacking
	// event/data, is rejected as invalid.
	raw := []byte(`{"transactionId":"TX1","transactionType":"DEPOSIT","transactionMethod":"CARD"}`)
	if _, err := Classify(raw); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestClassifyAsaas(t *testing.T) {
	raw := []byte(`{"event":"PAYMENT_OVERDUE","payment":{"id":"pay_123","value":49.9}}`)
	in, err := Classify(raw)
	if err != nil {
		t.Fatalf("unexpected classify error: %v", err)
	}
	if in.Gateway != GatewayAsaas {
		t.Fatalf("expected asaas, got %q", in.Gateway)
	}
	if in.ExternalID != "pay_123" || in.Signal != "PAYMENT_OVERDUE" {
		t.Fatalf("unexpected extraction: id=%q signal=%q", in.ExternalID, in.Signal)
	}
}

func TestClassifyAbacatePay(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantID string
	}{
		{name: "top-level id", raw: `{"event":"billing.paid","data":{"id":"bill_9"}}`, wantID: "bill_9"},
		{name: "nested billing id", raw: `{"event":"billing.paid","data":{"billing":{"id":"bill_10"}}}`, wantID: "bill_10"},
		{name: "nested pixQrCode id", raw: `{"event":"billing.paid","data":{"pixQrCode":{"id":"pix_11"}}}`, wantID: "pix_11"},
	}

	for _, tt := range tests {
		in, err := Classify([]byte(tt.raw))
		if err != nil {
			t.Fatalf("%s: unexpected classify error: %v", tt.name, err)
		}
		if in.Gateway != GatewayAbacatePay {
			t.Fatalf("%s: expected abacatepay, got %q", tt.name, in.Gateway)
		}
		if in.ExternalID != tt.wantID {
			t.Fatalf("%s: expected id %q, got %q", tt.name, tt.wantID, in.ExternalID)
		}
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// A body satisfying the MisticPay shape wins even when it also carries
	// event/payment fields. Detection is structural with a fixed priority.
	raw := []byte(`{"transactionId":"TX2","transactionType":"DEPOSIT","transactionMethod":"PIX","status":"FALHA","event":"PAYMENT_RECEIVED","payment":{"id":"pay_x"}}`)
	in, err := Classify(raw)
	if err != nil {
		t.Fatalf("unexpected classify error: %v", err)
	}
	if in.Gateway != GatewayMisticPay {
		t.Fatalf("expected misticpay to win priority, got %q", in.Gateway)
	}
}

func TestClassifyRejectsMalformedBodies(t *testing.T) {
	for _, raw := range []string{
		`not json`,
		`{}`,
		`{"event":"billing.paid"}`,
		`{"data":{"id":"bill_9"}}`,
		`[1,2,3]`,
	} {
		if _, err := Classify([]byte(raw)); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("expected ErrInvalidPayload for %q, got %v", raw, err)
		}
	}
}

func TestClassifyEmptyExternalID(t *testing.T) {
	// An Asaas-shaped body without a payment id still classifies; the
	// service later reports it as unmatched instead of erroring.
	raw := []byte(`{"event":"PAYMENT_RECEIVED","payment":{"value":10}}`)
	in, err := Classify(raw)
	if err != nil {
		t.Fatalf("unexpected classify error: %v", err)
	}
	if in.ExternalID != "" {
		t.Fatalf("expected empty external id, got %q", in.ExternalID)
	}
}
