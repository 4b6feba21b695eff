package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

func newTestHub() *Hub {
	return NewHub(logger.New(logger.Options{ServiceName: "test"}), nil)
}

func newTestClient(hub *Hub, userID string) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, sendBufferSize),
		userID: userID,
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := newTestHub()

	first := newTestClient(hub, "usr_1")
	second := newTestClient(hub, "usr_2")
	anonymous := newTestClient(hub, "")
	hub.register(first)
	hub.register(second)
	hub.register(anonymous)

	hub.Broadcast(map[string]string{"type": "order_placed"})

	for _, client := range []*Client{first, second, anonymous} {
		select {
		case raw := <-client.send:
			assert.Contains(t, string(raw), "order_placed")
		default:
			t.Fatal("client did not receive broadcast")
		}
	}
}

func TestSendToUserTargetsAllUserConnections(t *testing.T) {
	hub := newTestHub()

	phone := newTestClient(hub, "usr_1")
	laptop := newTestClient(hub, "usr_1")
	other := newTestClient(hub, "usr_2")
	hub.register(phone)
	hub.register(laptop)
	hub.register(other)

	hub.SendToUser("usr_1", map[string]string{"type": "notification"})

	for _, client := range []*Client{phone, laptop} {
		select {
		case raw := <-client.send:
			assert.Contains(t, string(raw), "notification")
		default:
			t.Fatal("user connection did not receive push")
		}
	}
	select {
	case <-other.send:
		t.Fatal("push leaked to another user")
	default:
	}
}

func TestUnregisterRemovesClient(t *testing.T) {
	hub := newTestHub()

	client := newTestClient(hub, "usr_1")
	hub.register(client)
	require.Equal(t, 1, hub.ConnectionCount())

	hub.unregister(client)
	require.Zero(t, hub.ConnectionCount())

	// Double unregister is harmless.
	hub.unregister(client)

	hub.SendToUser("usr_1", map[string]string{"type": "notification"})
}

func TestStalledClientIsDropped(t *testing.T) {
	hub := newTestHub()

	stalled := &Client{hub: hub, send: make(chan []byte, 1), userID: "usr_1"}
	hub.register(stalled)

	hub.Broadcast(map[string]string{"seq": "1"})
	hub.Broadcast(map[string]string{"seq": "2"})

	require.Zero(t, hub.ConnectionCount())
}

func TestConcurrentBroadcastAndChurn(t *testing.T) {
	hub := newTestHub()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				client := newTestClient(hub, "usr_churn")
				hub.register(client)
				hub.Broadcast(map[string]int{"seq": j})
				hub.SendToUser("usr_churn", map[string]int{"seq": j})
				hub.unregister(client)
			}
		}()
	}
	wg.Wait()

	require.Zero(t, hub.ConnectionCount())
}
