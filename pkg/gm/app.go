// Package gm is the application logic controller for the hosting side: the
// one participant allowed to originate sync broadcasts.
package gm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	appevents "github.com/rescp17/slideCaster/internal/app_events"
	gmEvent "github.com/rescp17/slideCaster/internal/app_events/gm"
	"github.com/rescp17/slideCaster/internal/config"
	"github.com/rescp17/slideCaster/pkg/channel"
	"github.com/rescp17/slideCaster/pkg/concurrency"
	"github.com/rescp17/slideCaster/pkg/discovery"
	"github.com/rescp17/slideCaster/pkg/media"
	"github.com/rescp17/slideCaster/pkg/protocol"
	"github.com/rescp17/slideCaster/pkg/viewer"
)

// App wires the hub, the viewer controller and the sync protocol together.
// Its event loop is the single mutation path for viewer state; the TUI only
// sends events in and renders messages out.
type App struct {
	identity    string
	cfg         config.Config
	hub         *channel.Hub
	registry    *viewer.Registry
	controller  *viewer.Controller
	broadcaster *protocol.Broadcaster
	reconciler  *protocol.Reconciler
	guard       *concurrency.ConcurrencyGuard
	lister      *media.Lister
	announcer   discovery.Adapter

	uiMessages chan tea.Msg
	appEvents  chan appevents.AppEvent
}

// NewApp creates a GM application instance.
func NewApp(cfg config.Config, announcer discovery.Adapter) *App {
	a := &App{
		identity:   uuid.New().String(),
		cfg:        cfg,
		hub:        channel.NewHub(),
		registry:   viewer.NewRegistry(),
		guard:      concurrency.NewConcurrencyGuard(),
		lister:     &media.Lister{},
		announcer:  announcer,
		uiMessages: make(chan tea.Msg, 10),
		appEvents:  make(chan appevents.AppEvent),
	}
	a.controller = viewer.NewController(a.registry, viewer.RendererFunc(a.renderFrame), a.removeSurface)
	// Hosting the session is what makes this participant the GM.
	a.broadcaster = protocol.NewBroadcaster(a.hub, a.identity, func() bool { return true })
	a.reconciler = protocol.NewReconciler(a.identity, a.controller)
	return a
}

// UIMessages returns the channel the TUI listens on.
func (a *App) UIMessages() <-chan tea.Msg {
	return a.uiMessages
}

// AppEvents returns the write-only channel the TUI sends events into.
func (a *App) AppEvents() chan<- appevents.AppEvent {
	return a.appEvents
}

// Run starts the hub server, the mDNS announcement and the event loop.
func (a *App) Run(ctx context.Context) error {
	// The hub feeds our own reconciler too. Our broadcasts come straight
	// back at us and are dropped by the sender-identity filter, the same
	// path every peer exercises.
	a.registry.AttachOnce(func() {
		a.hub.Subscribe(func(payload []byte) {
			a.reconciler.Handle(ctx, payload)
		})
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.runAnnounce(ctx) })
	g.Go(func() error { return a.runServer(ctx) })
	g.Go(func() error { return a.runEvents(ctx) })
	return g.Wait()
}

func (a *App) runEvents(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-a.appEvents:
			switch e := event.(type) {
			case gmEvent.BrowseFolderMsg:
				a.handleBrowse(e.Folder)
			case gmEvent.ShowImagesMsg:
				a.handleShow(ctx, e)
			case gmEvent.AdvanceMsg:
				a.handleAdvance(ctx, e.Step)
			case gmEvent.JumpMsg:
				a.handleJump(ctx, e.Index)
			case gmEvent.SetBackgroundMsg:
				a.handleSetBackground(ctx, e.Path)
			case gmEvent.CloseShowMsg:
				a.handleClose(ctx)
			default:
				slog.Warn("received unhandled app event", "event", event)
			}
		}
	}
}

// handleBrowse lists a folder off the event loop; the guard keeps a slow
// listing from piling up behind itself.
func (a *App) handleBrowse(folder string) {
	go func() {
		err := a.guard.Execute(func() error {
			entries, err := a.lister.List(folder)
			if err != nil {
				return err
			}
			a.uiMessages <- gmEvent.FolderListingMsg{Folder: folder, Entries: entries}
			return nil
		})
		switch {
		case errors.Is(err, concurrency.ErrBusy):
			a.uiMessages <- appevents.StatusMsg{Message: "Still reading the previous folder..."}
		case err != nil:
			a.sendAndLogError("Failed to list folder", err)
		}
	}()
}

func (a *App) handleShow(ctx context.Context, e gmEvent.ShowImagesMsg) {
	if err := a.controller.OpenShow(ctx, e.Images, e.Background, e.Index); err != nil {
		a.sendAndLogError("Failed to open show", err)
		return
	}
	// Broadcast the normalized state, not the raw input.
	snap := a.registry.Active().Snapshot()
	a.broadcaster.Show(ctx, snap.Thumbnails, snap.Background, snap.Index)
}

func (a *App) handleAdvance(ctx context.Context, step int) {
	changed, err := a.controller.Advance(ctx, step)
	if err != nil {
		a.sendAndLogError("Failed to render", err)
	}
	if changed {
		a.broadcastIndex(ctx)
	}
}

func (a *App) handleJump(ctx context.Context, target int) {
	changed, err := a.controller.JumpTo(ctx, target)
	if err != nil {
		a.sendAndLogError("Failed to render", err)
	}
	if changed {
		a.broadcastIndex(ctx)
	}
}

func (a *App) broadcastIndex(ctx context.Context) {
	sess := a.registry.Active()
	if sess == nil {
		return
	}
	index := sess.Snapshot().Index
	a.broadcaster.Update(ctx, protocol.Update{Index: &index})
}

func (a *App) handleSetBackground(ctx context.Context, path string) {
	changed, err := a.controller.SetBackground(ctx, path)
	if err != nil {
		a.sendAndLogError("Failed to render", err)
	}
	if !changed {
		return
	}
	sess := a.registry.Active()
	if sess == nil {
		return
	}
	// An empty background travels as an explicit clear, not as absence.
	background := sess.Snapshot().Background
	a.broadcaster.Update(ctx, protocol.Update{Background: &background})
}

func (a *App) handleClose(ctx context.Context) {
	if err := a.controller.CloseLocal(); err != nil {
		a.sendAndLogError("Failed to close show", err)
	}
	a.broadcaster.Close(ctx)
}

func (a *App) renderFrame(frame viewer.RenderState) error {
	a.uiMessages <- appevents.ViewerFrameMsg{Frame: frame}
	return nil
}

func (a *App) removeSurface() error {
	a.uiMessages <- appevents.ViewerClosedMsg{}
	return nil
}

// sendAndLogError both logs an error and sends it to the UI.
func (a *App) sendAndLogError(baseMessage string, err error) {
	slog.Error(baseMessage, "error", err)
	a.uiMessages <- appevents.ErrorMsg{Err: fmt.Errorf("%s: %w", baseMessage, err)}
}

func (a *App) runAnnounce(ctx context.Context) error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "slidecaster"
	}
	serviceInfo := discovery.ServiceInfo{
		Name:    fmt.Sprintf("%s-%s", hostname, a.identity[:8]),
		Type:    discovery.DefaultServiceType,
		Domain:  discovery.DefaultDomain,
		Session: a.cfg.Session,
		Port:    a.cfg.Port,
	}
	// Discovery is a convenience; a host without mDNS still serves peers
	// that know the address.
	if err := a.announcer.Announce(ctx, serviceInfo); err != nil {
		a.sendAndLogError("Failed to announce session", err)
	}
	return nil
}

func (a *App) runServer(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("GET /session/"+a.cfg.Session, a.hub)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Port),
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.sendAndLogError("Session hub failed", err)
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.hub.Shutdown()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("hub server shutdown error", "error", err)
		}
		return ctx.Err()
	}
}
