package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Cabinet is a marquee instance found on the network.
type Cabinet struct {
	// Name is the mDNS instance name, from remote.name.
	Name string

	// Hostname is the mDNS hostname (e.g., "arcade.local.")
	Hostname string

	// IP is the IPv4 address, or IPv6 when the cabinet has no IPv4.
	IP string

	// Port is the remote server port
	Port int

	// Metadata contains the TXT record data: version, path and tls.
	Metadata map[string]string

	// DiscoveredAt is when the cabinet was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the cabinet
func (c *Cabinet) String() string {
	return fmt.Sprintf("Cabinet %s (%s) at %s", c.Name, c.Hostname, net.JoinHostPort(c.IP, strconv.Itoa(c.Port)))
}

// TLS reports whether the cabinet serves wss://.
func (c *Cabinet) TLS() bool {
	return c.GetMetadata("tls") == "1"
}

// WebSocketURL returns the remote-control URL of the cabinet.
func (c *Cabinet) WebSocketURL() string {
	scheme := "ws"
	if c.TLS() {
		scheme = "wss"
	}
	path := c.GetMetadata("path")
	if path == "" {
		path = DefaultPath
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(c.IP, strconv.Itoa(c.Port)), path)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (c *Cabinet) GetMetadata(key string) string {
	if c.Metadata == nil {
		return ""
	}
	return c.Metadata[key]
}
