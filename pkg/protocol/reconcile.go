package protocol

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rescp17/slideCaster/pkg/viewer"
)

// SessionController is what the reconciler drives on the hosting side: open
// or replace the viewer with a full state, patch the open one, or close it
// locally. Implementations must never re-broadcast from these paths.
type SessionController interface {
	HasActive() bool
	OpenShow(ctx context.Context, images []string, background string, index int) error
	ApplyUpdate(ctx context.Context, u viewer.Update) error
	CloseLocal() error
}

// Reconciler applies inbound broadcasts to the local viewer:
//
//   - payloads without a recognized type are dropped silently
//   - the participant's own echoes are dropped silently
//   - Show, and any Update carrying images, reinitializes the viewer
//   - a sparse Update patches the open viewer, if there is one
//   - Close tears down locally, without echoing a close back
//
// Nothing that happens in here may crash the channel dispatcher: every
// failure is logged and swallowed.
type Reconciler struct {
	localID string
	ctrl    SessionController
}

func NewReconciler(localID string, ctrl SessionController) *Reconciler {
	return &Reconciler{localID: localID, ctrl: ctrl}
}

// Handle consumes one raw payload from the channel. It never returns an
// error and never panics out.
func (r *Reconciler) Handle(ctx context.Context, raw []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("sync handler panicked", "panic", rec)
		}
	}()

	msg, err := Decode(raw)
	if err != nil {
		if !errors.Is(err, ErrUnknownType) {
			slog.Warn("discarding malformed sync payload", "error", err)
		}
		return
	}
	if msg.Sender() == r.localID {
		return // own echo, expected and silent
	}

	switch m := msg.(type) {
	case Show:
		r.reinitialize(ctx, m.Images, m.Background, m.Index)
	case Update:
		if len(m.Images) > 0 {
			// The escape hatch: a peer with nothing open yet gets the full
			// list and comes up as if this were a Show.
			background := ""
			if m.Background != nil {
				background = *m.Background
			}
			index := 0
			if m.Index != nil {
				index = *m.Index
			}
			r.reinitialize(ctx, m.Images, background, index)
			return
		}
		if !r.ctrl.HasActive() {
			return // nothing to update
		}
		if err := r.ctrl.ApplyUpdate(ctx, viewer.Update{Background: m.Background, Index: m.Index}); err != nil {
			slog.Error("failed to apply sync update", "error", err)
		}
	case Close:
		if !r.ctrl.HasActive() {
			return
		}
		if err := r.ctrl.CloseLocal(); err != nil {
			slog.Error("failed to close viewer on sync", "error", err)
		}
	}
}

func (r *Reconciler) reinitialize(ctx context.Context, images []string, background string, index int) {
	if len(images) == 0 {
		return // an empty show is a malformed show; local state stays put
	}
	if err := r.ctrl.OpenShow(ctx, images, background, index); err != nil {
		slog.Error("failed to open show from sync", "error", err)
	}
}
