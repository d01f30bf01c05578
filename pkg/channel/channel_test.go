package channel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopbackDeliversToEverySubscriber(t *testing.T) {
	bus := NewLoopback()

	var got [][]byte
	first := bus.Endpoint()
	second := bus.Endpoint()
	first.Subscribe(func(payload []byte) { got = append(got, payload) })
	second.Subscribe(func(payload []byte) { got = append(got, payload) })

	require.NoError(t, first.Publish(context.Background(), []byte("frame")))

	require.Len(t, got, 2, "delivery reaches every subscriber, the publisher's own included")
	assert.Equal(t, "frame", string(got[0]))
	assert.Equal(t, "frame", string(got[1]))
}

func TestLoopbackWithoutSubscribers(t *testing.T) {
	bus := NewLoopback()
	assert.NoError(t, bus.Endpoint().Publish(context.Background(), []byte("frame")))
}
