package discovery

import (
	"slices"
	"testing"
)

func TestCabinet_String(t *testing.T) {
	c := &Cabinet{Name: "arcade", Hostname: "arcade.local.", IP: "192.168.4.16", Port: 8765}
	want := "Cabinet arcade (arcade.local.) at 192.168.4.16:8765"
	if c.String() != want {
		t.Errorf("String() = %q, want %q", c.String(), want)
	}
}

func TestCabinet_WebSocketURL(t *testing.T) {
	tests := []struct {
		name    string
		cabinet *Cabinet
		want    string
	}{
		{
			name:    "default path",
			cabinet: &Cabinet{IP: "10.0.0.5", Port: 8765},
			want:    "ws://10.0.0.5:8765/ws",
		},
		{
			name:    "tls and custom path",
			cabinet: &Cabinet{IP: "10.0.0.5", Port: 443, Metadata: map[string]string{"tls": "1", "path": "/remote"}},
			want:    "wss://10.0.0.5:443/remote",
		},
		{
			name:    "IPv6",
			cabinet: &Cabinet{IP: "fe80::1", Port: 8765, Metadata: map[string]string{"tls": "0"}},
			want:    "ws://[fe80::1]:8765/ws",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cabinet.WebSocketURL(); got != tt.want {
				t.Errorf("WebSocketURL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCabinet_GetMetadata_NilMap(t *testing.T) {
	c := &Cabinet{}
	if got := c.GetMetadata("anything"); got != "" {
		t.Errorf("GetMetadata() with nil map = %v, want empty string", got)
	}
	if c.TLS() {
		t.Error("TLS() = true with no metadata")
	}
}

func TestInfo_Text(t *testing.T) {
	got := Info{Name: "arcade", Port: 8765, Version: "v1.2.0", TLS: true}.Text()
	want := []string{"path=/ws", "tls=1", "version=v1.2.0"}
	if !slices.Equal(got, want) {
		t.Errorf("Text() = %v, want %v", got, want)
	}

	got = Info{Name: "arcade", Port: 8765}.Text()
	if !slices.Equal(got, []string{"path=/ws", "tls=0"}) {
		t.Errorf("Text() without version = %v", got)
	}

	// Round trip through the parser used by the scanner.
	c := &Cabinet{IP: "10.0.0.1", Port: 8765, Metadata: parseText(Info{TLS: true}.Text())}
	if c.WebSocketURL() != "wss://10.0.0.1:8765/ws" {
		t.Errorf("WebSocketURL() = %v", c.WebSocketURL())
	}
}

func TestAdvertise_Validation(t *testing.T) {
	if _, err := Advertise(Info{Port: 8765}, nil); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := Advertise(Info{Name: "arcade"}, nil); err == nil {
		t.Error("expected error for zero port")
	}
	var a *Advertisement
	a.Shutdown()
}
