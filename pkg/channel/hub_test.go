package channel

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub()
	server := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Shutdown()
		server.Close()
	})
	return hub, strings.TrimPrefix(server.URL, "http://")
}

func dialClient(t *testing.T, ctx context.Context, addr string) *Client {
	t.Helper()
	client, err := Dial(ctx, addr, "table")
	require.NoError(t, err)
	go func() { _ = client.Run(ctx) }()
	return client
}

func waitFor(t *testing.T, ch <-chan []byte, want string) {
	t.Helper()
	select {
	case payload := <-ch:
		assert.Equal(t, want, string(payload))
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func TestHubBroadcastReachesAllPeers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub, addr := startHub(t)

	gotA := make(chan []byte, 4)
	gotB := make(chan []byte, 4)
	clientA := dialClient(t, ctx, addr)
	clientB := dialClient(t, ctx, addr)
	clientA.Subscribe(func(p []byte) { gotA <- p })
	clientB.Subscribe(func(p []byte) { gotB <- p })

	// Connections register asynchronously after the upgrade.
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.conns) == 2
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Publish(ctx, []byte("host frame")))

	waitFor(t, gotA, "host frame")
	waitFor(t, gotB, "host frame")
}

func TestHubRelaysPeerFramesExcludingOrigin(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub, addr := startHub(t)

	hubGot := make(chan []byte, 4)
	hub.Subscribe(func(p []byte) { hubGot <- p })

	gotA := make(chan []byte, 4)
	gotB := make(chan []byte, 4)
	clientA := dialClient(t, ctx, addr)
	clientB := dialClient(t, ctx, addr)
	clientA.Subscribe(func(p []byte) { gotA <- p })
	clientB.Subscribe(func(p []byte) { gotB <- p })

	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.conns) == 2
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, clientA.Publish(ctx, []byte("peer frame")))

	waitFor(t, hubGot, "peer frame")
	waitFor(t, gotB, "peer frame")

	// The websocket relay excludes the originating connection; A hears
	// nothing back.
	select {
	case payload := <-gotA:
		t.Fatalf("origin received its own relayed frame: %q", payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubShutdownDisconnectsPeers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub, addr := startHub(t)

	client, err := Dial(ctx, addr, "table")
	require.NoError(t, err)
	runDone := make(chan error, 1)
	go func() { runDone <- client.Run(ctx) }()

	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.conns) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Shutdown()

	select {
	case err := <-runDone:
		assert.Error(t, err, "the pump reports the lost connection")
	case <-time.After(2 * time.Second):
		t.Fatal("client pump did not notice the shutdown")
	}
}

func TestDialUnreachableHub(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := Dial(ctx, "127.0.0.1:1", "table")
	assert.Error(t, err)
}
