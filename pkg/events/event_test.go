package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStampsPayload(t *testing.T) {
	evt := New("CHAT_ANSWERED", map[string]interface{}{"category": "realtime"})

	assert.Equal(t, "CHAT_ANSWERED", evt.EventType())
	assert.Equal(t, "realtime", evt.Payload()["category"])

	raw, ok := evt.Payload()["occurred_at"].(string)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(evt.Timestamp()))
}

func TestNewWithNilData(t *testing.T) {
	evt := New("CONVERSATION_DELETED", nil)
	assert.Contains(t, evt.Payload(), "occurred_at")
}
