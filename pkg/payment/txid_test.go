package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionIDFormat(t *testing.T) {
	id := NewTransactionID()
	require.True(t, strings.HasPrefix(id, "TXN"))
	// 3 prefix + 13 millis digits + 18 hex chars
	assert.GreaterOrEqual(t, len(id), 30)
}

func TestNewTransactionIDUnique(t *testing.T) {
	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewTransactionID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate transaction id %q after %d draws", id, i)
		seen[id] = struct{}{}
	}
}
