package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famcard/internal/audit"
)

func TestNewRequiresBrokers(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

// Justification: an unreachable broker must surface as an error once the
// caller's deadline passes instead of holding the lookup that emitted it.
func TestPublishToUnreachableBrokerRespectsDeadline(t *testing.T) {
	p, err := New([]string{"127.0.0.1:1"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = p.Publish(ctx, audit.Event{Action: audit.ActionFamilyLookup, Outcome: "ok"})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
