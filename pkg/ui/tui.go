// Package ui is the terminal front end for both modes. It renders whatever
// the controllers send and forwards user intent back as app events; all
// viewer state lives behind the controllers.
package ui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	appevents "github.com/rescp17/slideCaster/internal/app_events"
)

type Mode int

const (
	None Mode = iota
	GM
	Peer
)

// AppController is what the TUI needs from either mode's controller.
type AppController interface {
	Run(ctx context.Context) error
	UIMessages() <-chan tea.Msg
	AppEvents() chan<- appevents.AppEvent
}

type model struct {
	mode          Mode
	appController AppController
	gm            gmModel
	peer          peerModel
	err           error
}

// InitialModel builds the root model. folders is only used in GM mode.
func InitialModel(mode Mode, controller AppController, folders []string) model {
	m := model{mode: mode, appController: controller}
	switch mode {
	case GM:
		m.gm = initGMModel(folders)
	case Peer:
		m.peer = initPeerModel()
	}
	return m
}

func (m model) Init() tea.Cmd {
	go func() {
		if err := m.appController.Run(context.Background()); err != nil && err != context.Canceled {
			slog.Error("app controller stopped", "error", err)
		}
	}()

	switch m.mode {
	case GM:
		return m.initGM()
	case Peer:
		return m.initPeer()
	}
	return nil
}

// listenForAppMessages waits for the next message from the app controller.
func (m *model) listenForAppMessages() tea.Cmd {
	return func() tea.Msg {
		return <-m.appController.UIMessages()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case GM:
		return m.updateGM(msg)
	case Peer:
		return m.updatePeer(msg)
	}
	return m, nil
}

func (m model) View() string {
	var s string
	switch m.mode {
	case GM:
		s = m.gmView()
	case Peer:
		s = m.peerView()
	}
	return s + "\nPress ctrl + c to quit"
}
