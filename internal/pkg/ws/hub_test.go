package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// newTestServer 每个连接注册为 userFor 返回的用户，并保持 hold 时长
func newTestServer(t *testing.T, hub *Hub, userFor func() string, hold time.Duration) string {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := &Client{UserID: userFor(), Conn: conn}
		hub.Register(client)
		time.Sleep(hold)
		hub.Unregister(client)
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestHub_Empty(t *testing.T) {
	hub := NewHub(nil)

	assert.Equal(t, 0, hub.ConnectionCount())
	assert.False(t, hub.IsOnline("user-1"))

	// 离线用户不报错
	err := hub.SendToUser("user-1", &Message{Type: "test"})
	assert.NoError(t, err)
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub(nil)
	wsURL := newTestServer(t, hub, func() string { return "user-100" }, 100*time.Millisecond)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)
	assert.True(t, hub.IsOnline("user-100"))
	assert.Equal(t, 1, hub.ConnectionCount())

	time.Sleep(150 * time.Millisecond)
	assert.False(t, hub.IsOnline("user-100"))
}

func TestHub_SendToUser_WithConnection(t *testing.T) {
	hub := NewHub(nil)
	wsURL := newTestServer(t, hub, func() string { return "user-200" }, 500*time.Millisecond)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)

	err = hub.SendToUser("user-200", &Message{
		Type: "quest_completed",
		Data: map[string]string{"questType": "daily_checkin"},
	})
	assert.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, received, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(received), "quest_completed")
	assert.Contains(t, string(received), "daily_checkin")
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	hub := NewHub(nil)
	wsURL := newTestServer(t, hub, func() string { return "user-300" }, 200*time.Millisecond)

	conn1, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn1.Close()

	conn2, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn2.Close()

	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 2, hub.ConnectionCount())
	assert.True(t, hub.IsOnline("user-300"))
}

func TestHub_MultipleUsers(t *testing.T) {
	hub := NewHub(nil)

	var seq int32
	userFor := func() string {
		n := atomic.AddInt32(&seq, 1)
		return "user-" + string(rune('0'+n))
	}
	wsURL := newTestServer(t, hub, userFor, 200*time.Millisecond)

	var conns []*websocket.Conn
	for i := 0; i < 3; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		conns = append(conns, conn)
	}
	defer func() {
		for _, conn := range conns {
			conn.Close()
		}
	}()

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 3, hub.ConnectionCount())
	assert.True(t, hub.IsOnline("user-1"))
	assert.True(t, hub.IsOnline("user-2"))
	assert.True(t, hub.IsOnline("user-3"))
	assert.False(t, hub.IsOnline("user-4"))
}
