package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNoImages reports an attempt to open a show with nothing showable in it.
var ErrNoImages = errors.New("show requires at least one image")

// Controller binds the registry, the renderer and the surface teardown into
// the operations both the GM's local actions and the sync reconciler drive.
// It never broadcasts; outbound sync is the caller's business.
type Controller struct {
	registry *Registry
	renderer Renderer
	teardown func() error
}

func NewController(registry *Registry, renderer Renderer, teardown func() error) *Controller {
	return &Controller{registry: registry, renderer: renderer, teardown: teardown}
}

// Registry exposes the underlying registry for attach-once subscription.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// HasActive reports whether a show is currently open.
func (c *Controller) HasActive() bool {
	return c.registry.Active() != nil
}

// OpenShow starts a new session from a full state description, displacing
// and locally closing any session already open, then renders the first
// frame. The displaced session's close is never re-broadcast.
func (c *Controller) OpenShow(ctx context.Context, images []string, background string, index int) error {
	state := NewState(images, background, index)
	if len(state.Images) == 0 {
		return ErrNoImages
	}
	sess := NewSession(state, c.renderer, c.teardown)
	if old := c.registry.Replace(sess); old != nil {
		if err := old.Close(); err != nil {
			slog.Warn("failed to close displaced session", "error", err)
		}
	}
	if err := sess.Render(ctx); err != nil {
		return fmt.Errorf("initial render failed: %w", err)
	}
	return nil
}

// ApplyUpdate patches the active session with a sparse update and re-renders
// if anything changed. No active session means nothing to update.
func (c *Controller) ApplyUpdate(ctx context.Context, u Update) error {
	sess := c.registry.Active()
	if sess == nil {
		return nil
	}
	if !sess.Apply(u) {
		return nil
	}
	return sess.Render(ctx)
}

// Advance moves the show by step and re-renders on change.
func (c *Controller) Advance(ctx context.Context, step int) (bool, error) {
	sess := c.registry.Active()
	if sess == nil || !sess.Advance(step) {
		return false, nil
	}
	return true, sess.Render(ctx)
}

// JumpTo moves the show to target and re-renders on change.
func (c *Controller) JumpTo(ctx context.Context, target int) (bool, error) {
	sess := c.registry.Active()
	if sess == nil || !sess.JumpTo(target) {
		return false, nil
	}
	return true, sess.Render(ctx)
}

// SetBackground swaps or clears the backdrop and re-renders on change.
func (c *Controller) SetBackground(ctx context.Context, value string) (bool, error) {
	sess := c.registry.Active()
	if sess == nil || !sess.SetBackground(value) {
		return false, nil
	}
	return true, sess.Render(ctx)
}

// CloseLocal tears down the active session without broadcasting and clears
// the registry. Closing with nothing open is a no-op.
func (c *Controller) CloseLocal() error {
	sess := c.registry.Active()
	if sess == nil {
		return nil
	}
	err := sess.Close()
	c.registry.Clear(sess)
	return err
}
