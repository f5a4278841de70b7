package discovery

import (
	"fmt"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"
)

// Advertisement is a running mDNS registration.
type Advertisement struct {
	server *zeroconf.Server
	logger *zap.Logger
}

// Info is what a cabinet publishes about itself.
type Info struct {
	Name    string
	Port    int
	Version string
	TLS     bool
}

// Text returns the TXT records for info.
func (i Info) Text() []string {
	tls := "0"
	if i.TLS {
		tls = "1"
	}
	txt := []string{"path=" + DefaultPath, "tls=" + tls}
	if i.Version != "" {
		txt = append(txt, "version="+i.Version)
	}
	return txt
}

// Advertise registers the cabinet on every multicast interface until
// Shutdown is called.
func Advertise(info Info, logger *zap.Logger) (*Advertisement, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if info.Name == "" {
		return nil, fmt.Errorf("cabinet name is required")
	}
	if info.Port <= 0 {
		return nil, fmt.Errorf("invalid port %d", info.Port)
	}

	server, err := zeroconf.Register(info.Name, ServiceType, ServiceDomain, info.Port, info.Text(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	logger.Info("Advertising cabinet",
		zap.String("name", info.Name),
		zap.String("service", ServiceType),
		zap.Int("port", info.Port),
	)
	return &Advertisement{server: server, logger: logger}, nil
}

// Shutdown withdraws the registration.
func (a *Advertisement) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
	a.logger.Debug("Stopped advertising cabinet")
}
