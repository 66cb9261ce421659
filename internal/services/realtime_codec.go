// internal/services/realtime_codec.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Engine.IO v4 packet types
const (
	eioOpen    = '0'
	eioClose   = '1'
	eioPing    = '2'
	eioPong    = '3'
	eioMessage = '4'
	eioNoop    = '6'
)

// Socket.IO v5 packet types, carried inside an Engine.IO message
const (
	sioConnect      = '0'
	sioDisconnect   = '1'
	sioEvent        = '2'
	sioConnectError = '4'
)

const (
	frameConnect    = "40"
	frameDisconnect = "41"
)

var errMalformedEvent = errors.New("malformed socket.io event")

type eioHandshake struct {
	SID          string `json:"sid"`
	PingInterval int    `json:"pingInterval"`
	PingTimeout  int    `json:"pingTimeout"`
}

// decodeEvent parses the body of a Socket.IO EVENT packet, e.g.
// `/admin,12["export:completed",{"jobId":1}]`, into its name and first argument.
func decodeEvent(packet string) (string, json.RawMessage, error) {
	if strings.HasPrefix(packet, "/") {
		i := strings.IndexByte(packet, ',')
		if i < 0 {
			return "", nil, errMalformedEvent
		}
		packet = packet[i+1:]
	}
	// optional ack id
	packet = strings.TrimLeft(packet, "0123456789")

	var parts []json.RawMessage
	if err := json.Unmarshal([]byte(packet), &parts); err != nil {
		return "", nil, fmt.Errorf("%w: %v", errMalformedEvent, err)
	}
	if len(parts) == 0 {
		return "", nil, errMalformedEvent
	}

	var name string
	if err := json.Unmarshal(parts[0], &name); err != nil {
		return "", nil, fmt.Errorf("%w: event name: %v", errMalformedEvent, err)
	}
	if len(parts) < 2 {
		return name, nil, nil
	}
	return name, parts[1], nil
}

// connectErrorMessage reads the message of a CONNECT_ERROR packet.
func connectErrorMessage(packet string) string {
	if i := strings.IndexByte(packet, '{'); i >= 0 {
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal([]byte(packet[i:]), &body) == nil && body.Message != "" {
			return body.Message
		}
	}
	return "connection refused"
}
