package payment

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const txnPrefix = "TXN"

// NewTransactionID returns a client-facing payment identifier: a millisecond
// timestamp prefix for rough ordering plus 9 random bytes from a secure
// source. The randomness is for collision avoidance, not authentication;
// the webhook signature is what authenticates callers.
func NewTransactionID() string {
	var suffix [9]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		// crypto/rand failing means the platform RNG is broken; nothing
		// sensible to fall back to.
		panic(fmt.Sprintf("payment: rand.Read: %v", err))
	}
	return fmt.Sprintf("%s%d%s", txnPrefix, time.Now().UnixMilli(), hex.EncodeToString(suffix[:]))
}
