package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type cabinets advertise
	ServiceType = "_marquee._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for cabinet discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPath is the websocket path when the TXT record has none
	DefaultPath = "/ws"
)

// Scanner handles mDNS cabinet discovery
type Scanner struct {
	// Timeout is the maximum time to wait for cabinets
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan discovers every cabinet that answers within the timeout. The result
// is sorted by name.
func (s *Scanner) Scan(ctx context.Context) ([]*Cabinet, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	var mu sync.Mutex
	found := make(map[string]*Cabinet)
	go func() {
		for entry := range entries {
			if c := parseServiceEntry(entry); c != nil {
				mu.Lock()
				found[c.Name] = c
				mu.Unlock()
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}
	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	cabinets := make([]*Cabinet, 0, len(found))
	for _, c := range found {
		cabinets = append(cabinets, c)
	}
	sort.Slice(cabinets, func(i, j int) bool { return cabinets[i].Name < cabinets[j].Name })
	return cabinets, nil
}

// WaitFor returns the named cabinet as soon as it answers.
func (s *Scanner) WaitFor(ctx context.Context, name string) (*Cabinet, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	result := make(chan *Cabinet, 1)
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			if c := parseServiceEntry(entry); c != nil && c.Name == name {
				select {
				case result <- c:
				default:
				}
				cancel()
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case c := <-result:
		return c, nil
	case <-ctx.Done():
		select {
		case c := <-result:
			return c, nil
		default:
		}
		return nil, fmt.Errorf("cabinet %q not found within %s", name, s.Timeout)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Cabinet.
// Returns nil when the entry has no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Cabinet {
	if entry == nil || entry.Instance == "" || entry.Port == 0 {
		return nil
	}

	// Prefer IPv4
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	return &Cabinet{
		Name:         unescapeInstance(entry.Instance),
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Metadata:     parseText(entry.Text),
		DiscoveredAt: time.Now(),
	}
}

// parseText splits "key=value" TXT records. A key without "=" maps to "".
func parseText(text []string) map[string]string {
	metadata := make(map[string]string, len(text))
	for _, txt := range text {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}
	return metadata
}

// unescapeInstance removes the DNS escaping zeroconf leaves in instance
// names with spaces or dots.
func unescapeInstance(name string) string {
	return strings.NewReplacer(`\ `, " ", `\.`, ".").Replace(name)
}
