package channel

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is the peer side of the broadcast channel: one websocket connection
// to the session hub.
type Client struct {
	conn *websocket.Conn

	writeMu sync.Mutex // gorilla allows one concurrent writer

	mu   sync.Mutex
	subs []Handler
}

// Dial connects to the session hub at addr ("host:port"). The session name
// picks the channel path, so mismatched sessions never exchange frames.
func Dial(ctx context.Context, addr, session string) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/session/" + session}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial session hub at %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// Run pumps inbound frames to subscribers until the context ends or the hub
// goes away.
func (c *Client) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		c.conn.Close()
	}()
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("session hub connection lost: %w", err)
		}
		c.mu.Lock()
		subs := make([]Handler, len(c.subs))
		copy(subs, c.subs)
		c.mu.Unlock()
		for _, h := range subs {
			h(payload)
		}
	}
}

func (c *Client) Publish(_ context.Context, payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("failed to publish to session hub: %w", err)
	}
	return nil
}

func (c *Client) Subscribe(h Handler) {
	c.mu.Lock()
	c.subs = append(c.subs, h)
	c.mu.Unlock()
}
