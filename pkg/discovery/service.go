// Package discovery announces a hosted session on the local network and
// finds sessions to join, over mDNS.
package discovery

import (
	"context"
	"net"
)

const (
	DefaultServiceType = "_slidecaster._tcp"
	DefaultDomain      = "local"
)

// ServiceInfo describes one visible session host.
type ServiceInfo struct {
	Name    string // instance name, usually host-XXXXXXXX
	Type    string // service type, e.g. "_slidecaster._tcp"
	Domain  string // e.g. "local"
	Session string // channel name carried in the TXT record
	Addr    net.IP
	Port    int
}

// Result is one discovery delivery: a fresh snapshot of visible sessions, or
// a lookup failure.
type Result struct {
	Services []ServiceInfo
	Error    error
}

// Adapter abstracts the mDNS layer so controllers can be tested without
// touching the network.
type Adapter interface {
	Announce(ctx context.Context, service ServiceInfo) error
	Discover(ctx context.Context, service string) <-chan Result
}
