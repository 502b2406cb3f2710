package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func (h *Hub) monitorCount(classCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[classCode])
}

func TestBroadcastDeliversToMonitors(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	client := &Client{Hub: hub, ClassCode: "ABC234", Send: make(chan []byte, 4)}
	hub.register <- client

	require.Eventually(t, func() bool {
		return hub.monitorCount("ABC234") == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastToClass("abc234", map[string]interface{}{"type": "PROGRESS_UPDATED"})

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), "PROGRESS_UPDATED")
	case <-time.After(time.Second):
		t.Fatal("broadcast never reached the monitor")
	}
}

func TestStalledMonitorIsDroppedWithoutPanic(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	stalled := &Client{Hub: hub, ClassCode: "ABC234", Send: make(chan []byte, 1)}
	healthy := &Client{Hub: hub, ClassCode: "ABC234", Send: make(chan []byte, 4)}
	hub.register <- stalled
	hub.register <- healthy

	require.Eventually(t, func() bool {
		return hub.monitorCount("ABC234") == 2
	}, time.Second, 10*time.Millisecond)

	// Fill the slow monitor's buffer so the next broadcast overflows it.
	stalled.Send <- []byte("backlog")

	// Two broadcasts in a row: the first drops the stalled client, the second
	// must not touch its (now closed) channel or close it again.
	hub.BroadcastToClass("ABC234", map[string]interface{}{"seq": 1})
	hub.BroadcastToClass("ABC234", map[string]interface{}{"seq": 2})

	require.Eventually(t, func() bool {
		return hub.monitorCount("ABC234") == 1
	}, time.Second, 10*time.Millisecond)

	// The channel was closed exactly once by the hub; draining it terminates.
	_, open := <-stalled.Send
	assert.True(t, open, "backlog message should still be readable")
	_, open = <-stalled.Send
	assert.False(t, open, "channel should be closed after the drop")

	// The healthy monitor keeps receiving.
	assert.Len(t, healthy.Send, 2)
}
