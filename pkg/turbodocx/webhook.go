package turbodocx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeWebhookSignature returns the hex HMAC-SHA256 of payload under
// secret, the scheme TurboDocx uses to sign webhook deliveries.
func ComputeWebhookSignature(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature reports whether signature matches the payload
// under secret. Comparison is constant-time.
func VerifyWebhookSignature(secret string, payload []byte, signature string) bool {
	expected := ComputeWebhookSignature(secret, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
