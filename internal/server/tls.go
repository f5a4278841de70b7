package server

import (
	"crypto/tls"
	"errors"
	"fmt"
)

// NewTLSConfig loads a certificate pair for the remote server.
func NewTLSConfig(certPath, keyPath string) (*tls.Config, error) {
	if certPath == "" || keyPath == "" {
		return nil, errors.New("both a certificate and a key are required")
	}
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// GetTLSInfo returns human-readable TLS connection information.
func GetTLSInfo(cs *tls.ConnectionState) string {
	if cs == nil {
		return "no TLS"
	}
	return fmt.Sprintf("%s %s", tls.VersionName(cs.Version), tls.CipherSuiteName(cs.CipherSuite))
}
