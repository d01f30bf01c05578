package peer

import (
	"github.com/rescp17/slideCaster/pkg/discovery"
)

// --- UI Messages (from app to TUI) ---

// ConnectedMsg reports a successful hub connection.
type ConnectedMsg struct {
	Host string
}

// DisconnectedMsg reports that the hub went away.
type DisconnectedMsg struct {
	Err error
}

// FoundSessionsMsg carries a discovery snapshot while the peer is still
// looking for a host.
type FoundSessionsMsg struct {
	Services []discovery.ServiceInfo
}
