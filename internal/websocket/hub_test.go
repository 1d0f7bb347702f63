package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastAlert(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{
		Hub:    hub,
		UserID: 1,
		Send:   make(chan []byte, 8),
	}
	hub.Register(client)

	require.Eventually(t, func() bool {
		return hub.SessionCount(1) == 1
	}, time.Second, 10*time.Millisecond)

	alert := &model.StockAlert{
		Type:      model.AlertTypeLowStock,
		VariantID: 42,
		SKU:       "TEE-BLK-M",
		Stock:     3,
	}
	hub.BroadcastAlert(alert)

	select {
	case data := <-client.Send:
		var event AlertEvent
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, "stock_alert", event.Type)
		require.NotNil(t, event.Alert)
		assert.Equal(t, uint(42), event.Alert.VariantID)
		assert.Equal(t, "TEE-BLK-M", event.Alert.SKU)
		assert.Equal(t, 3, event.Alert.Stock)
	case <-time.After(time.Second):
		t.Fatal("expected alert event on client send channel")
	}
}

func TestHub_MultipleSessionsPerUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := &Client{Hub: hub, UserID: 7, Send: make(chan []byte, 8)}
	second := &Client{Hub: hub, UserID: 7, Send: make(chan []byte, 8)}
	hub.Register(first)
	hub.Register(second)

	require.Eventually(t, func() bool {
		return hub.SessionCount(7) == 2
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastAlert(&model.StockAlert{
		Type:      model.AlertTypeOutOfStock,
		VariantID: 9,
		SKU:       "MUG-BLU",
		Stock:     0,
	})

	for _, client := range []*Client{first, second} {
		select {
		case <-client.Send:
		case <-time.After(time.Second):
			t.Fatal("expected every session to receive the alert")
		}
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, UserID: 3, Send: make(chan []byte, 8)}
	hub.Register(client)

	require.Eventually(t, func() bool {
		return hub.SessionCount(3) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Unregister(client)

	require.Eventually(t, func() bool {
		return hub.SessionCount(3) == 0
	}, time.Second, 10*time.Millisecond)

	assert.Empty(t, hub.ConnectedUsers())
}
