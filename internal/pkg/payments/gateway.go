package payments

import (
	"encoding/json"
	"errors"
)

// ErrInvalidPayload is returned when a body matches no known gateway shape.
var ErrInvalidPayload = errors.New("invalid payload")

// Classify inspects a raw webhook body and decides which gateway sent it.
// None of the gateways send a type discriminator, so detection is purely
// structural and ordered (first match wins):
//
//  1. MisticPay: transactionId + transactionType present, transactionMethod == "PIX"
//  2. Asaas: event + payment object
//  3. AbacatePay: event + data required, otherwise ErrInvalidPayload
//
// A body that happens to carry fields overlapping an earlier shape is
// misrouted. The real senders do not produce such bodies; the priority
// order here must not be reordered without also changing the senders.
func Classify(raw []byte) (*InboundWebhook, error) {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, ErrInvalidPayload
	}

	if _, hasTxID := body["transactionId"]; hasTxID {
		if _, hasTxType := body["transactionType"]; hasTxType && stringField(body, "transactionMethod") == "PIX" {
			return &InboundWebhook{
				Gateway:    GatewayMisticPay,
				ExternalID: stringField(body, "transactionId"),
				Signal:     stringField(body, "status"),
				RawJSON:    string(raw),
			}, nil
		}
	}

	if _, hasEvent := body["event"]; hasEvent {
		if payment, ok := body["payment"].(map[string]interface{}); ok {
			return &InboundWebhook{
				Gateway:    GatewayAsaas,
				ExternalID: stringField(payment, "id"),
				Signal:     stringField(body, "event"),
				RawJSON:    string(raw),
			}, nil
		}
	}

	event := stringField(body, "event")
	data, hasData := body["data"].(map[string]interface{})
	if event == "" || !hasData {
		return nil, ErrInvalidPayload
	}
	return &InboundWebhook{
		Gateway:    GatewayAbacatePay,
		ExternalID: abacateExternalID(data),
		Signal:     event,
		RawJSON:    string(raw),
	}, nil
}

// abacateExternalID digs the billing id out of an AbacatePay data object.
// Newer payloads nest it under data.billing or data.pixQrCode.
func abacateExternalID(data map[string]interface{}) string {
	if id := stringField(data, "id"); id != "" {
		return id
	}
	if billing, ok := data["billing"].(map[string]interface{}); ok {
		if id := stringField(billing, "id"); id != "" {
			return id
		}
	}
	if qr, ok := data["pixQrCode"].(map[string]interface{}); ok {
		if id := stringField(qr, "id"); id != "" {
			return id
		}
	}
	return ""
}

func stringField(m map[string]interface{}, key string) string {
	v, ok := m[key].(string)
	if !ok {
		return ""
	}
	return v
}
