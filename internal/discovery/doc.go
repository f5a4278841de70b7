// Package discovery advertises cabinets on the local network with mDNS and
// finds them again.
//
// A cabinet with remote.advertise set registers itself as a "_marquee._tcp"
// service named after remote.name. The TXT record carries the websocket
// path, whether TLS is on and the build version:
//
//	path=/ws tls=0 version=v1.2.0
//
// Scanner browses for those services so a remote client or the
// "marquee cabinets" command can list them:
//
//	cabinets, err := discovery.NewScanner().Scan(ctx)
//	for _, c := range cabinets {
//	    fmt.Println(c.Name, c.WebSocketURL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Cabinets must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
