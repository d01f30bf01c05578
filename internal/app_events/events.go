// Package appevents defines the message types flowing between the TUI and
// the application controllers, in both directions.
package appevents

import (
	"github.com/rescp17/slideCaster/pkg/viewer"
)

// AppEvent is a marker interface for events sent from the TUI to the app's
// logic controller. The unexported method keeps foreign types out.
type AppEvent interface {
	isAppEvent()
}

// Event can be embedded to satisfy AppEvent.
type Event struct{}

func (Event) isAppEvent() {}

// --- UI Messages (from app to TUI, sent as tea.Msg) ---

// ErrorMsg reports a failure the user should see.
type ErrorMsg struct {
	Err error
}

// StatusMsg updates a transient status line.
type StatusMsg struct {
	Message string
}

// ViewerFrameMsg delivers one rendered frame of the show to the surface.
type ViewerFrameMsg struct {
	Frame viewer.RenderState
}

// ViewerClosedMsg tells the UI the show's surface is gone.
type ViewerClosedMsg struct{}
