// internal/services/realtime_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/netflix100plus/admin-console/internal/config"
	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/utils"
)

type RealtimeState string

const (
	RealtimeDisconnected RealtimeState = "disconnected"
	RealtimeConnecting   RealtimeState = "connecting"
	RealtimeConnected    RealtimeState = "connected"
)

const (
	EventExportCompleted = "export:completed"
	EventExportFailed    = "export:failed"
)

// RealtimeEvent is one of ExportCompleted or ExportFailed.
type RealtimeEvent interface {
	EventName() string
}

type ExportCompleted struct {
	JobID       models.FlexibleID `json:"jobId"`
	DownloadURL string            `json:"downloadUrl"`
}

func (ExportCompleted) EventName() string { return EventExportCompleted }

type ExportFailed struct {
	JobID models.FlexibleID `json:"jobId"`
	Error string            `json:"error"`
}

func (ExportFailed) EventName() string { return EventExportFailed }

type EventHandler func(RealtimeEvent)

// Transport is a message-framed duplex connection.
type Transport interface {
	ReadMessage() (string, error)
	WriteMessage(msg string) error
	SetReadDeadline(t time.Time) error
	Close() error
}

type DialFunc func(ctx context.Context, target string) (Transport, error)

var ErrRealtimeClosed = errors.New("realtime connection closed")

// RealtimeChannel is the push connection that delivers export results.
// It never reconnects on its own.
type RealtimeChannel struct {
	endpoint         *url.URL
	dial             DialFunc
	handler          EventHandler
	handshakeTimeout time.Duration
	log              *logrus.Entry

	mu      sync.Mutex
	state   RealtimeState
	conn    Transport
	writeMu sync.Mutex
}

func NewRealtimeChannel(cfg config.RealtimeConfig, jar http.CookieJar, handler EventHandler, log *logrus.Entry) (*RealtimeChannel, error) {
	endpoint, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid realtime URL: %w", err)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: cfg.HandshakeTimeout,
		Jar:              jar,
	}

	return &RealtimeChannel{
		endpoint:         endpoint,
		dial:             websocketDial(dialer),
		handler:          handler,
		handshakeTimeout: cfg.HandshakeTimeout,
		log:              log.WithField("component", "realtime"),
		state:            RealtimeDisconnected,
	}, nil
}

func (c *RealtimeChannel) State() RealtimeState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect opens the channel for adminID and returns once the server accepted
// the namespace. It does nothing unless the channel is disconnected.
func (c *RealtimeChannel) Connect(ctx context.Context, adminID int64) error {
	c.mu.Lock()
	if c.state != RealtimeDisconnected {
		c.mu.Unlock()
		return nil
	}
	c.state = RealtimeConnecting
	c.mu.Unlock()

	if c.handshakeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.handshakeTimeout)
		defer cancel()
	}

	target := c.targetURL(adminID)
	conn, err := c.dial(ctx, target)
	if err != nil {
		c.setState(RealtimeDisconnected)
		return &utils.TransportError{Op: "realtime dial", Err: err}
	}

	c.mu.Lock()
	if c.state != RealtimeConnecting {
		// Disconnect ran while dialing
		c.mu.Unlock()
		conn.Close()
		return nil
	}
	c.conn = conn
	c.mu.Unlock()

	ready := make(chan error, 1)
	go c.readLoop(conn, ready)

	select {
	case err := <-ready:
		if err != nil {
			c.drop(conn)
			return err
		}
		c.log.WithField("admin_id", adminID).Info("Realtime channel connected")
		return nil
	case <-ctx.Done():
		c.drop(conn)
		return ctx.Err()
	}
}

// Disconnect closes the channel. Safe to call in any state.
func (c *RealtimeChannel) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	wasOpen := c.state != RealtimeDisconnected
	c.conn = nil
	c.state = RealtimeDisconnected
	c.mu.Unlock()

	if conn == nil {
		return
	}
	if err := c.write(conn, frameDisconnect); err != nil {
		c.log.WithError(err).Debug("Failed to send disconnect packet")
	}
	conn.Close()
	if wasOpen {
		c.log.Info("Realtime channel disconnected")
	}
}

func (c *RealtimeChannel) targetURL(adminID int64) string {
	u := *c.endpoint
	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/socket.io/"
	q := url.Values{}
	q.Set("EIO", "4")
	q.Set("transport", "websocket")
	q.Set("adminId", strconv.FormatInt(adminID, 10))
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *RealtimeChannel) readLoop(conn Transport, ready chan<- error) {
	var readyErr error = ErrRealtimeClosed
	defer func() {
		c.drop(conn)
		// no-op when the handshake already reported
		select {
		case ready <- readyErr:
		default:
		}
	}()

	// zero until the server's handshake announces its ping schedule
	var window time.Duration
	for {
		if window > 0 {
			conn.SetReadDeadline(time.Now().Add(window))
		}
		frame, err := conn.ReadMessage()
		if err != nil {
			c.log.WithError(err).Debug("Realtime read ended")
			readyErr = &utils.TransportError{Op: "realtime read", Err: err}
			return
		}
		if frame != "" && frame[0] == eioOpen {
			window = c.heartbeatWindow(frame[1:])
		}
		if stop, err := c.handleFrame(conn, frame, ready); stop {
			if err != nil {
				readyErr = err
			}
			return
		}
	}
}

// heartbeatWindow is how long the server may stay silent before the
// connection counts as lost: one ping interval plus the ping timeout.
func (c *RealtimeChannel) heartbeatWindow(body string) time.Duration {
	var hs eioHandshake
	if err := json.Unmarshal([]byte(body), &hs); err != nil {
		c.log.WithError(err).Warn("Malformed engine.io handshake")
		return 0
	}
	if hs.PingInterval <= 0 || hs.PingTimeout <= 0 {
		return 0
	}
	return time.Duration(hs.PingInterval+hs.PingTimeout) * time.Millisecond
}

// handleFrame processes one Engine.IO frame and reports whether the loop should stop.
func (c *RealtimeChannel) handleFrame(conn Transport, frame string, ready chan<- error) (bool, error) {
	if frame == "" {
		return false, nil
	}

	switch frame[0] {
	case eioOpen:
		if err := c.write(conn, frameConnect); err != nil {
			return true, &utils.TransportError{Op: "realtime connect", Err: err}
		}
	case eioPing:
		if err := c.write(conn, string(eioPong)+frame[1:]); err != nil {
			return true, &utils.TransportError{Op: "realtime pong", Err: err}
		}
	case eioClose:
		return true, nil
	case eioMessage:
		return c.handlePacket(conn, frame[1:], ready)
	case eioPong, eioNoop:
	default:
		c.log.WithField("frame", frame).Debug("Ignoring unknown engine.io frame")
	}
	return false, nil
}

func (c *RealtimeChannel) handlePacket(conn Transport, packet string, ready chan<- error) (bool, error) {
	if packet == "" {
		return false, nil
	}

	switch packet[0] {
	case sioConnect:
		c.mu.Lock()
		if c.conn == conn {
			c.state = RealtimeConnected
		}
		c.mu.Unlock()
		select {
		case ready <- nil:
		default:
		}
	case sioDisconnect:
		return true, nil
	case sioConnectError:
		msg := connectErrorMessage(packet[1:])
		c.log.WithField("reason", msg).Warn("Realtime connection rejected")
		return true, &utils.TransportError{Op: "realtime connect", Err: errors.New(msg)}
	case sioEvent:
		c.dispatch(packet[1:])
	}
	return false, nil
}

func (c *RealtimeChannel) dispatch(packet string) {
	name, payload, err := decodeEvent(packet)
	if err != nil {
		c.log.WithError(err).Warn("Dropping malformed realtime event")
		return
	}

	var event RealtimeEvent
	switch name {
	case EventExportCompleted:
		var e ExportCompleted
		err = json.Unmarshal(payload, &e)
		event = e
	case EventExportFailed:
		var e ExportFailed
		err = json.Unmarshal(payload, &e)
		event = e
	default:
		c.log.WithField("event", name).Debug("Ignoring unknown realtime event")
		return
	}
	if err != nil {
		c.log.WithError(err).WithField("event", name).Warn("Dropping realtime event with bad payload")
		return
	}

	if c.handler != nil {
		c.handler(event)
	}
}

func (c *RealtimeChannel) write(conn Transport, msg string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteMessage(msg)
}

// drop forgets conn if it is still the current connection.
func (c *RealtimeChannel) drop(conn Transport) {
	c.mu.Lock()
	current := c.conn == conn
	if current {
		c.conn = nil
		c.state = RealtimeDisconnected
	}
	c.mu.Unlock()

	if current {
		conn.Close()
		c.log.Info("Realtime channel closed")
	}
}

func (c *RealtimeChannel) setState(state RealtimeState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}

type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) ReadMessage() (string, error) {
	_, data, err := t.conn.ReadMessage()
	return string(data), err
}

func (t *wsTransport) WriteMessage(msg string) error {
	return t.conn.WriteMessage(websocket.TextMessage, []byte(msg))
}

func (t *wsTransport) SetReadDeadline(deadline time.Time) error {
	return t.conn.SetReadDeadline(deadline)
}

func (t *wsTransport) Close() error {
	return t.conn.Close()
}

func websocketDial(dialer *websocket.Dialer) DialFunc {
	return func(ctx context.Context, target string) (Transport, error) {
		conn, resp, err := dialer.DialContext(ctx, target, nil)
		if err != nil {
			if resp != nil {
				return nil, fmt.Errorf("websocket handshake failed with status %d: %w", resp.StatusCode, err)
			}
			return nil, err
		}
		return &wsTransport{conn: conn}, nil
	}
}
