package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature checks a hex-encoded HMAC-SHA256 signature over the exact
// raw request body bytes. The body must be the literal bytes received on the
// wire; hashing a re-serialized JSON object breaks verification when key
// order or whitespace differs. The comparison is constant-time.
func VerifySignature(rawBody []byte, providedSignature, secret string) bool {
	sig := strings.TrimSpace(providedSignature)
	if sig == "" || secret == "" {
		return false
	}
	decoded, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	return hmac.Equal(mac.Sum(nil), decoded)
}

// Sign returns the hex HMAC-SHA256 of body under secret. Used by tests and
// by tooling that simulates the payment processor's callback.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
