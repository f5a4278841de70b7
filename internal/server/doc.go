// Package server implements the cabinet's remote control and secondary
// display over WebSocket.
//
// A phone or a second screen connects to /ws. Every time the navigation
// state or the visible page changes the server pushes a Frame:
//
//	{"type":"frame","cabinet":"marquee","state":"idle","view":{...}}
//
// Clients drive the cabinet by sending commands on the same socket:
//
//	{"type":"key","key":"down"}
//	{"type":"action","action":"select"}
//
// Keys are raw terminal key names and go through the same key map as the
// local keyboard. Actions name a logical key and are sent as its first
// bound key, or as both keys of a chord. Each command is acknowledged with
// a Reply.
//
// # HTTP endpoints
//
//   - GET /state returns the last frame.
//   - POST /keys accepts one command and returns its Reply.
//
// # Launches
//
// The server implements nav.SecondaryDisplay, so it keeps receiving
// frames while an external program runs and the main loop is blocked.
// Draw never blocks: a client whose queue is full misses frames.
//
// # TLS
//
// Setting remote.cert_file and remote.key_file serves wss:// and https://
// with TLS 1.2 or later.
package server
