package protocol

import (
	"context"
	"log/slog"
)

// Publisher is the outbound half of the broadcast channel.
type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// Privilege reports whether this participant is the authoritative sender.
// Only the GM's messages go out; everyone else stays silent.
type Privilege func() bool

// Broadcaster originates sync messages. All sends are fire and forget: a
// failed or lost send is logged and the affected peers stay stale until the
// next broadcast. There is no acknowledgment and no retry.
type Broadcaster struct {
	pub        Publisher
	senderID   string
	privileged Privilege
}

func NewBroadcaster(pub Publisher, senderID string, privileged Privilege) *Broadcaster {
	return &Broadcaster{pub: pub, senderID: senderID, privileged: privileged}
}

// Show announces a full (re)initialization: complete image list, backdrop
// and index.
func (b *Broadcaster) Show(ctx context.Context, images []string, background string, index int) {
	b.send(ctx, Show{Images: images, Background: background, Index: index, SenderID: b.senderID})
}

// Update announces a sparse change. The caller sets only the fields that
// changed; an explicitly cleared backdrop travels as an empty-string pointer.
func (b *Broadcaster) Update(ctx context.Context, u Update) {
	u.SenderID = b.senderID
	b.send(ctx, u)
}

// Close announces the end of the show. No payload beyond identity.
func (b *Broadcaster) Close(ctx context.Context) {
	b.send(ctx, Close{SenderID: b.senderID})
}

func (b *Broadcaster) send(ctx context.Context, m Message) {
	if !b.privileged() {
		slog.Debug("suppressing broadcast from unprivileged participant")
		return
	}
	payload, err := Encode(m)
	if err != nil {
		slog.Error("failed to encode sync message", "error", err)
		return
	}
	if err := b.pub.Publish(ctx, payload); err != nil {
		slog.Error("failed to publish sync message", "error", err)
	}
}
