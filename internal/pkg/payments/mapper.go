package payments

import (
	"strings"

	"github.com/genesishub/checkout/app/models"
)

// MapSignal translates a gateway-specific event or status string into the
// internal payment status and an event-type label for the audit trail.
//
// Each gateway uses its own vocabulary and casing (MisticPay sends
// Portuguese status words, Asaas SCREAMING_SNAKE event names, AbacatePay
// dot-case events), so the mapping is kept per gateway and normalization
// happens only on the output side.
//
// hasTransition is false when the signal does not move the status (the
// stored value stays as-is); status is empty in that case.
func MapSignal(gateway Gateway, signal string) (status, eventType string, hasTransition bool) {
	switch gateway {
	case GatewayMisticPay:
		switch signal {
		case "COMPLETO":
			return models.PaymentStatusPaid, "payment_confirmed", true
		case "FALHA":
			return models.PaymentStatusFailed, "payment_failed", true
		default:
			// PENDENTE and anything unknown leave the record untouched.
			return "", "payment_pending", false
		}

	case GatewayAsaas:
		switch signal {
		case "PAYMENT_RECEIVED", "PAYMENT_CONFIRMED":
			return models.PaymentStatusPaid, "payment_confirmed", true
		case "PAYMENT_OVERDUE":
			return models.PaymentStatusExpired, "payment_expired", true
		case "PAYMENT_DELETED", "PAYMENT_REFUNDED":
			return models.PaymentStatusRefunded, "payment_refunded", true
		default:
			// PAYMENT_ANTICIPATED, PAYMENT_CREATED, PAYMENT_UPDATED and any
			// future event names are recorded but do not change the status.
			return "", strings.ToLower(signal), false
		}

	case GatewayAbacatePay:
		switch signal {
		case "billing.paid", "payment.confirmed", "BILLING_PAID":
			return models.PaymentStatusPaid, "payment_confirmed", true
		case "billing.expired", "payment.expired", "BILLING_EXPIRED":
			return models.PaymentStatusExpired, "payment_expired", true
		case "billing.failed", "payment.failed", "BILLING_FAILED":
			return models.PaymentStatusFailed, "payment_failed", true
		case "billing.refunded", "payment.refunded", "BILLING_REFUNDED":
			return models.PaymentStatusRefunded, "payment_refunded", true
		default:
			return "", signal, false
		}
	}

	return "", signal, false
}
