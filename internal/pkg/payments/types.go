package payments

import "github.com/genesishub/checkout/app/models"

// Gateway identifies which payment provider sent a webhook.
type Gateway string

const (
	GatewayMisticPay  Gateway = models.PaymentGatewayMisticPay
	GatewayAsaas      Gateway = models.PaymentGatewayAsaas
	GatewayAbacatePay Gateway = models.PaymentGatewayAbacatePay
)

// InboundWebhook is the normalized result of classifying a raw webhook body:
// which gateway sent it, the external id it refers to, and the raw event or
// status string the gateway reported.
type InboundWebhook struct {
	Gateway    Gateway
	ExternalID string
	Signal     string
	RawJSON    string
}

// Outcome describes what a reconciliation did to the local payment record.
type Outcome string

const (
	// OutcomeUpdated means the stored status changed.
	OutcomeUpdated Outcome = "updated"
	// OutcomeNoChange means the record was found but the delivery was a no-op.
	OutcomeNoChange Outcome = "no_change"
	// OutcomeNotFound means no local record matched the external id.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeUnmatched means the payload carried no usable external id.
	OutcomeUnmatched Outcome = "unmatched"
)

// ReconcileResult is returned by Service.Reconcile. Status is the stored
// status after reconciliation; it is empty for not-found and unmatched
// outcomes.
type ReconcileResult struct {
	Outcome   Outcome
	Payment   *models.Payment
	Status    string
	EventType string
}
