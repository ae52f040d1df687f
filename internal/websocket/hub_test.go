package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	first := hub.NewClient(nil, 1)
	second := hub.NewClient(nil, 1)
	hub.Register(first)
	hub.Register(second)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.Broadcast(EventSaleUpdated, map[string]string{"id": "s1", "status": "done"})

	for _, client := range []*Client{first, second} {
		select {
		case raw := <-client.Send:
			var event Event
			require.NoError(t, json.Unmarshal(raw, &event))
			assert.Equal(t, EventSaleUpdated, event.Type)
			assert.False(t, event.SentAt.IsZero())
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := hub.NewClient(nil, 7)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Unregister(client)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	_, open := <-client.Send
	assert.False(t, open)
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	assert.NotPanics(t, func() {
		hub.Broadcast(EventStockLow, []string{"p1"})
	})
}

func TestHub_UnregisterAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := hub.NewClient(nil, 3)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	hub.Stop()
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Unregister(client)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Unregister blocked after Stop")
	}
}

func TestHub_RegisterAfterStopClosesSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	client := hub.NewClient(nil, 4)
	hub.Register(client)

	select {
	case _, open := <-client.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("session left open after Stop")
	}
	assert.Equal(t, 0, hub.ClientCount())
}
