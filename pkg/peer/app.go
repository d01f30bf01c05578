// Package peer is the application logic controller for the joining side:
// receive, reconcile, render, never originate.
package peer

import (
	"context"
	"fmt"
	"net"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	appevents "github.com/rescp17/slideCaster/internal/app_events"
	peerEvent "github.com/rescp17/slideCaster/internal/app_events/peer"
	"github.com/rescp17/slideCaster/internal/config"
	"github.com/rescp17/slideCaster/pkg/channel"
	"github.com/rescp17/slideCaster/pkg/discovery"
	"github.com/rescp17/slideCaster/pkg/protocol"
	"github.com/rescp17/slideCaster/pkg/viewer"
	"log/slog"
)

// App connects to a session hub and mirrors whatever the GM shows. The
// privilege check is hardwired false: a peer's broadcaster would refuse to
// send even if something asked it to.
type App struct {
	identity   string
	cfg        config.Config
	registry   *viewer.Registry
	controller *viewer.Controller
	reconciler *protocol.Reconciler
	discoverer discovery.Adapter

	uiMessages chan tea.Msg
	appEvents  chan appevents.AppEvent

	// dial is swappable so tests can hand the app an in-process channel.
	dial func(ctx context.Context, addr, session string) (channel.Channel, error)
}

// NewApp creates a peer application instance.
func NewApp(cfg config.Config, discoverer discovery.Adapter) *App {
	a := &App{
		identity:   uuid.New().String(),
		cfg:        cfg,
		registry:   viewer.NewRegistry(),
		discoverer: discoverer,
		uiMessages: make(chan tea.Msg, 10),
		appEvents:  make(chan appevents.AppEvent),
		dial: func(ctx context.Context, addr, session string) (channel.Channel, error) {
			return channel.Dial(ctx, addr, session)
		},
	}
	a.controller = viewer.NewController(a.registry, viewer.RendererFunc(a.renderFrame), a.removeSurface)
	a.reconciler = protocol.NewReconciler(a.identity, a.controller)
	return a
}

// UIMessages returns the channel the TUI listens on.
func (a *App) UIMessages() <-chan tea.Msg {
	return a.uiMessages
}

// AppEvents returns the write-only channel the TUI sends events into. Peers
// have no authoritative actions; the channel exists so the TUI contract is
// the same in both modes.
func (a *App) AppEvents() chan<- appevents.AppEvent {
	return a.appEvents
}

// Run finds a host, attaches the reconciler to the channel exactly once, and
// pumps until the context ends or the hub goes away.
func (a *App) Run(ctx context.Context) error {
	addr := a.cfg.HostAddr
	if addr == "" {
		found, err := a.discoverHost(ctx)
		if err != nil {
			a.sendAndLogError("No session found", err)
			return err
		}
		addr = found
	}

	bus, err := a.dial(ctx, addr, a.cfg.Session)
	if err != nil {
		a.sendAndLogError("Failed to join session", err)
		return err
	}
	// Subscribe before reporting the connection so nothing broadcast right
	// after the join slips past the reconciler.
	a.registry.AttachOnce(func() {
		bus.Subscribe(func(payload []byte) {
			a.reconciler.Handle(ctx, payload)
		})
	})
	a.uiMessages <- peerEvent.ConnectedMsg{Host: addr}

	g, ctx := errgroup.WithContext(ctx)
	if runner, ok := bus.(channel.Runner); ok {
		g.Go(func() error {
			err := runner.Run(ctx)
			if err != nil && ctx.Err() == nil {
				a.uiMessages <- peerEvent.DisconnectedMsg{Err: err}
			}
			return err
		})
	}
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-a.appEvents:
				// drained; peers originate nothing
			}
		}
	})
	return g.Wait()
}

// discoverHost waits for the first announced session matching our session
// name and returns its address.
func (a *App) discoverHost(ctx context.Context) (string, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	service := fmt.Sprintf("%s.%s.", discovery.DefaultServiceType, discovery.DefaultDomain)
	for result := range a.discoverer.Discover(lookupCtx, service) {
		if result.Error != nil {
			return "", result.Error
		}
		a.uiMessages <- peerEvent.FoundSessionsMsg{Services: result.Services}
		for _, svc := range result.Services {
			if svc.Session != a.cfg.Session || svc.Addr == nil {
				continue
			}
			return net.JoinHostPort(svc.Addr.String(), fmt.Sprintf("%d", svc.Port)), nil
		}
	}
	return "", fmt.Errorf("no %q session announced within the lookup window", a.cfg.Session)
}

func (a *App) renderFrame(frame viewer.RenderState) error {
	a.uiMessages <- appevents.ViewerFrameMsg{Frame: frame}
	return nil
}

func (a *App) removeSurface() error {
	a.uiMessages <- appevents.ViewerClosedMsg{}
	return nil
}

func (a *App) sendAndLogError(baseMessage string, err error) {
	slog.Error(baseMessage, "error", err)
	a.uiMessages <- appevents.ErrorMsg{Err: fmt.Errorf("%s: %w", baseMessage, err)}
}
