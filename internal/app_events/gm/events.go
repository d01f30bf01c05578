package gm

import (
	appevents "github.com/rescp17/slideCaster/internal/app_events"
	"github.com/rescp17/slideCaster/pkg/media"
)

// --- App Events (from TUI to app) ---

// BrowseFolderMsg asks for the media listing of one configured folder.
type BrowseFolderMsg struct {
	appevents.Event
	Folder string
}

// ShowImagesMsg opens a show with the chosen images and broadcasts it.
type ShowImagesMsg struct {
	appevents.Event
	Images     []string
	Background string
	Index      int
}

// AdvanceMsg steps through the show; negative steps go backward.
type AdvanceMsg struct {
	appevents.Event
	Step int
}

// JumpMsg jumps straight to an index.
type JumpMsg struct {
	appevents.Event
	Index int
}

// SetBackgroundMsg swaps the backdrop; an empty path clears it.
type SetBackgroundMsg struct {
	appevents.Event
	Path string
}

// CloseShowMsg ends the show for everyone.
type CloseShowMsg struct {
	appevents.Event
}

var (
	_ appevents.AppEvent = (*BrowseFolderMsg)(nil)
	_ appevents.AppEvent = (*ShowImagesMsg)(nil)
	_ appevents.AppEvent = (*AdvanceMsg)(nil)
	_ appevents.AppEvent = (*JumpMsg)(nil)
	_ appevents.AppEvent = (*SetBackgroundMsg)(nil)
	_ appevents.AppEvent = (*CloseShowMsg)(nil)
)

// --- UI Messages (from app to TUI) ---

// FolderListingMsg carries the showable media found in a folder.
type FolderListingMsg struct {
	Folder  string
	Entries []media.Entry
}
