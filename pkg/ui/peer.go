package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	appevents "github.com/rescp17/slideCaster/internal/app_events"
	peerEvent "github.com/rescp17/slideCaster/internal/app_events/peer"
	"github.com/rescp17/slideCaster/internal/style"
	"github.com/rescp17/slideCaster/pkg/discovery"
	"github.com/rescp17/slideCaster/pkg/viewer"
)

type peerState int

const (
	searching peerState = iota
	connectedIdle
	viewing
	disconnected
)

type peerModel struct {
	state    peerState
	spinner  spinner.Model
	table    table.Model
	services []discovery.ServiceInfo
	host     string
	frame    viewer.RenderState
	width    int
}

var sessionColumns = []table.Column{
	{Title: "Index", Width: 10},
	{Title: "Name", Width: 24},
	{Title: "Session", Width: 16},
	{Title: "Address", Width: 16},
	{Title: "Port", Width: 10},
}

func initPeerModel() peerModel {
	return peerModel{
		state:   searching,
		spinner: style.NewSpinner(),
	}
}

func (m model) initPeer() tea.Cmd {
	return tea.Batch(m.peer.spinner.Tick, m.listenForAppMessages())
}

func (m model) updatePeer(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case appevents.ErrorMsg:
		m.err = msg.Err
		return m, m.listenForAppMessages()

	case peerEvent.FoundSessionsMsg:
		m.peer.services = msg.Services

		rows := []table.Row{}
		for index, svc := range m.peer.services {
			addr := ""
			if svc.Addr != nil {
				addr = svc.Addr.String()
			}
			rows = append(rows, table.Row{
				strconv.Itoa(index), svc.Name, svc.Session, addr, strconv.Itoa(svc.Port),
			})
		}
		t := table.New(
			table.WithColumns(sessionColumns),
			table.WithRows(rows),
			table.WithHeight(len(m.peer.services)+1),
		)
		t.SetStyles(style.NewTableStyles())
		m.peer.table = t
		return m, m.listenForAppMessages()

	case peerEvent.ConnectedMsg:
		m.peer.state = connectedIdle
		m.peer.host = msg.Host
		return m, m.listenForAppMessages()

	case peerEvent.DisconnectedMsg:
		m.peer.state = disconnected
		m.err = msg.Err
		return m, m.listenForAppMessages()

	case appevents.ViewerFrameMsg:
		m.peer.state = viewing
		m.peer.frame = msg.Frame
		return m, m.listenForAppMessages()

	case appevents.ViewerClosedMsg:
		m.peer.state = connectedIdle
		m.peer.frame = viewer.RenderState{}
		return m, m.listenForAppMessages()

	case tea.WindowSizeMsg:
		m.peer.width = msg.Width
	}

	m.peer.spinner, cmd = m.peer.spinner.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m model) peerView() string {
	switch m.peer.state {
	case searching:
		s := fmt.Sprintf("\n%s Looking for a session", m.peer.spinner.View())
		if len(m.peer.services) > 0 {
			s += fmt.Sprintf(", found %d so far\n", len(m.peer.services))
			s += style.BaseStyle.Render(m.peer.table.View()) + "\n"
		}
		return s

	case connectedIdle:
		return fmt.Sprintf("\nJoined %s. Waiting for the GM to show something...\n",
			style.HighlightFontStyle.Render(m.peer.host))

	case viewing:
		return Frame(m.peer.frame, m.peer.width)

	case disconnected:
		s := style.ErrorStyle.Render("Lost the session.")
		if m.err != nil {
			s += "\n" + style.ErrorStyle.Render(m.err.Error())
		}
		return s
	}
	return ""
}
