package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Instance is a preview server found on the local network
type Instance struct {
	// Name is the mDNS instance name (e.g., "autodm-preview-laptop")
	Name string

	// Hostname is the mDNS hostname (e.g., "laptop.local.")
	Hostname string

	// IP is the address to connect to, IPv4 when available
	IP string

	Port int

	// Metadata holds the TXT record pairs ("app=autodm", "version=...")
	Metadata map[string]string

	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the instance
func (i *Instance) String() string {
	return fmt.Sprintf("%s (%s) at %s", i.Name, i.Hostname, i.Address())
}

// Address returns host:port, bracketing IPv6 addresses
func (i *Instance) Address() string {
	return net.JoinHostPort(i.IP, strconv.Itoa(i.Port))
}

// BaseURL returns the HTTP base URL of the preview server
func (i *Instance) BaseURL() string {
	return "http://" + i.Address()
}

// WebSocketURL returns the URL of the live preview feed
func (i *Instance) WebSocketURL() string {
	return "ws://" + i.Address() + "/ws"
}

// Version returns the advertised server version, if any
func (i *Instance) Version() string {
	return i.GetMetadata(txtVersion)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (i *Instance) GetMetadata(key string) string {
	if i.Metadata == nil {
		return ""
	}
	return i.Metadata[key]
}
