package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ai-search-be/internal/pkg/logger"
	"ai-search-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerAuditHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	log := logger.NewIsolatedLogger(path)

	handler := NewAnswerAuditHandler(log)
	err := handler(context.Background(), events.New("CHAT_ANSWERED", map[string]interface{}{"category": "realtime"}))
	require.NoError(t, err)
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(raw))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "AUDIT", entry["module"])
	details, ok := entry["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "realtime", details["category"])
	assert.Equal(t, "CHAT_ANSWERED", details["event"])
}
