package payments

import (
	"crypto/hmac"
	"strings"
)

// SecretProvider resolves webhook credentials at request time. Implementations
// back it with the settings table and fall back to environment variables, so
// rotating a secret does not require a restart.
type SecretProvider interface {
	AsaasWebhookToken() string
	AbacateWebhookSecret() string
}

// VerifyAsaasToken checks the asaas-access-token header against the configured
// token. An empty configured token disables the check.
func VerifyAsaasToken(got, configured string) bool {
	want := strings.TrimSpace(configured)
	if want == "" {
		return true
	}
	return secretsEqual(strings.TrimSpace(got), want)
}

// VerifyAbacateSecret checks the x-webhook-secret header, or failing that the
// ?secret= query parameter, against the configured secret. An empty configured
// secret disables the check.
func VerifyAbacateSecret(headerValue, queryValue, configured string) bool {
	want := strings.TrimSpace(configured)
	if want == "" {
		return true
	}
	got := strings.TrimSpace(headerValue)
	if got == "" {
		got = strings.TrimSpace(queryValue)
	}
	return secretsEqual(got, want)
}

func secretsEqual(got, want string) bool {
	if got == "" {
		return false
	}
	return hmac.Equal([]byte(got), []byte(want))
}
