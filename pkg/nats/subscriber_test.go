package nats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		data     string
		wantType string
		wantErr  bool
		wantTime time.Time
	}{
		{
			name:     "with timestamp",
			subject:  "events.CHAT_ANSWERED",
			data:     `{"category":"realtime","occurred_at":"2024-05-01T10:00:00Z"}`,
			wantType: "CHAT_ANSWERED",
			wantTime: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "without timestamp",
			subject:  "events.CONVERSATION_DELETED",
			data:     `{"conversation_id":"x"}`,
			wantType: "CONVERSATION_DELETED",
		},
		{
			name:    "invalid json",
			subject: "events.CHAT_ANSWERED",
			data:    `{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt, err := decode(tt.subject, []byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, evt.EventType())
			if !tt.wantTime.IsZero() {
				assert.True(t, tt.wantTime.Equal(evt.Timestamp()))
			} else {
				assert.False(t, evt.Timestamp().IsZero())
			}
		})
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.CHAT_ANSWERED", Subject("CHAT_ANSWERED"))
}
