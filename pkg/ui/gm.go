package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	appevents "github.com/rescp17/slideCaster/internal/app_events"
	gmEvent "github.com/rescp17/slideCaster/internal/app_events/gm"
	"github.com/rescp17/slideCaster/internal/style"
	"github.com/rescp17/slideCaster/pkg/imagePicker"
	"github.com/rescp17/slideCaster/pkg/viewer"
)

type gmState int

const (
	choosingFolder gmState = iota
	loadingFolder
	pickingImages
	presenting
)

type gmModel struct {
	state   gmState
	folders []string
	table   table.Model
	spinner spinner.Model
	picker  imagePicker.Model
	frame   viewer.RenderState
	width   int
	status  string
}

var folderColumns = []table.Column{
	{Title: "Index", Width: 10},
	{Title: "Folder", Width: 48},
}

func initGMModel(folders []string) gmModel {
	rows := []table.Row{}
	for index, folder := range folders {
		rows = append(rows, table.Row{strconv.Itoa(index), folder})
	}
	t := table.New(
		table.WithColumns(folderColumns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(folders)+1),
	)
	t.SetStyles(style.NewTableStyles())

	return gmModel{
		state:   choosingFolder,
		folders: folders,
		table:   t,
		spinner: style.NewSpinner(),
	}
}

func (m model) initGM() tea.Cmd {
	return tea.Batch(m.gm.spinner.Tick, m.listenForAppMessages())
}

// sendAppEvent hands an event to the controller without blocking Update.
func (m *model) sendAppEvent(event appevents.AppEvent) tea.Cmd {
	return func() tea.Msg {
		m.appController.AppEvents() <- event
		return nil
	}
}

func (m model) updateGM(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case appevents.ErrorMsg:
		m.err = msg.Err
		return m, m.listenForAppMessages()

	case appevents.StatusMsg:
		m.gm.status = msg.Message
		return m, m.listenForAppMessages()

	case gmEvent.FolderListingMsg:
		m.gm.state = pickingImages
		m.gm.picker = imagePicker.InitialModel(msg.Folder, msg.Entries)
		return m, m.listenForAppMessages()

	case appevents.ViewerFrameMsg:
		m.gm.state = presenting
		m.gm.frame = msg.Frame
		return m, m.listenForAppMessages()

	case appevents.ViewerClosedMsg:
		m.gm.state = choosingFolder
		m.gm.frame = viewer.RenderState{}
		return m, m.listenForAppMessages()

	case imagePicker.PickedImagesMsg:
		m.gm.state = loadingFolder
		return m, m.sendAppEvent(gmEvent.ShowImagesMsg{
			Images:     msg.Images,
			Background: msg.Background,
		})

	case imagePicker.CancelledMsg:
		m.gm.state = choosingFolder
		return m, nil

	case tea.WindowSizeMsg:
		m.gm.width = msg.Width

	case tea.KeyMsg:
		return m.updateGMKeys(msg)
	}

	switch m.gm.state {
	case pickingImages:
		m.gm.picker, cmd = m.gm.picker.Update(msg)
		cmds = append(cmds, cmd)
	default:
		m.gm.spinner, cmd = m.gm.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m model) updateGMKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.gm.state {
	case choosingFolder:
		switch msg.String() {
		case "enter":
			if len(m.gm.folders) == 0 {
				return m, nil
			}
			m.gm.state = loadingFolder
			m.gm.status = ""
			folder := m.gm.folders[m.gm.table.Cursor()]
			return m, tea.Batch(m.gm.spinner.Tick, m.sendAppEvent(gmEvent.BrowseFolderMsg{Folder: folder}))
		}
		var cmd tea.Cmd
		m.gm.table, cmd = m.gm.table.Update(msg)
		return m, cmd

	case pickingImages:
		var cmd tea.Cmd
		m.gm.picker, cmd = m.gm.picker.Update(msg)
		return m, cmd

	case presenting:
		return m.updatePresentingKeys(msg)
	}
	return m, nil
}

func (m model) updatePresentingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "left", "h":
		return m, m.sendAppEvent(gmEvent.AdvanceMsg{Step: -1})
	case "right", "l", " ":
		return m, m.sendAppEvent(gmEvent.AdvanceMsg{Step: 1})
	case "home":
		return m, m.sendAppEvent(gmEvent.JumpMsg{Index: 0})
	case "end":
		if m.gm.frame.Total > 0 {
			return m, m.sendAppEvent(gmEvent.JumpMsg{Index: m.gm.frame.Total - 1})
		}
	case "B":
		return m, m.sendAppEvent(gmEvent.SetBackgroundMsg{Path: ""})
	case "esc", "q":
		return m, m.sendAppEvent(gmEvent.CloseShowMsg{})
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			return m, m.sendAppEvent(gmEvent.JumpMsg{Index: int(key[0] - '1')})
		}
	}
	return m, nil
}

func (m model) gmView() string {
	if m.err != nil {
		return style.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	switch m.gm.state {
	case choosingFolder:
		s := style.TitleStyle.Render("Pick a folder to browse") + "\n\n"
		if len(m.gm.folders) == 0 {
			s += "No folders configured. Pass --folder or set SLIDECASTER_FOLDERS.\n"
			return s
		}
		s += style.BaseStyle.Render(m.gm.table.View()) + "\n"
		if m.gm.status != "" {
			s += style.HelpStyle.Render(m.gm.status) + "\n"
		}
		s += style.HelpStyle.Render("'enter' to browse")
		return s

	case loadingFolder:
		return fmt.Sprintf("\n%s Reading folder...\n", m.gm.spinner.View())

	case pickingImages:
		return m.gm.picker.View()

	case presenting:
		s := Frame(m.gm.frame, m.gm.width)
		s += "\n" + style.HelpStyle.Render(
			"'←/→' step, '1-9' jump, 'home/end' first/last, 'B' clear backdrop, 'esc' end show")
		return s
	}
	return ""
}
