// internal/services/realtime_service_test.go
package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netflix100plus/admin-console/internal/config"
	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/utils"
)

// fakeTransport is the server end of an in-memory realtime connection.
type fakeTransport struct {
	in     chan string
	out    chan string
	closed chan struct{}
	once   sync.Once

	mu       sync.Mutex
	deadline time.Time
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		in:     make(chan string, 16),
		out:    make(chan string, 16),
		closed: make(chan struct{}),
	}
}

func (f *fakeTransport) ReadMessage() (string, error) {
	f.mu.Lock()
	deadline := f.deadline
	f.mu.Unlock()

	var expired <-chan time.Time
	if !deadline.IsZero() {
		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case msg := <-f.in:
		return msg, nil
	case <-f.closed:
		return "", io.EOF
	case <-expired:
		return "", os.ErrDeadlineExceeded
	}
}

func (f *fakeTransport) SetReadDeadline(deadline time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deadline = deadline
	return nil
}

func (f *fakeTransport) WriteMessage(msg string) error {
	select {
	case <-f.closed:
		return errors.New("use of closed connection")
	default:
	}
	select {
	case f.out <- msg:
		return nil
	case <-f.closed:
		return errors.New("use of closed connection")
	}
}

func (f *fakeTransport) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeTransport) isClosed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}

// expect waits for the next frame the client writes.
func (f *fakeTransport) expect(t *testing.T) string {
	t.Helper()
	select {
	case msg := <-f.out:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for client frame")
		return ""
	}
}

// accept plays the server side of the handshake.
func (f *fakeTransport) accept(t *testing.T) {
	t.Helper()
	f.in <- `0{"sid":"s1","upgrades":[],"pingInterval":25000,"pingTimeout":20000}`
	require.Equal(t, frameConnect, f.expect(t))
	f.in <- `40{"sid":"n1"}`
}

type eventRecorder struct {
	events chan RealtimeEvent
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{events: make(chan RealtimeEvent, 8)}
}

func (r *eventRecorder) handle(e RealtimeEvent) {
	r.events <- e
}

func (r *eventRecorder) next(t *testing.T) RealtimeEvent {
	t.Helper()
	select {
	case e := <-r.events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for realtime event")
		return nil
	}
}

func newTestChannel(t *testing.T, handler EventHandler) *RealtimeChannel {
	t.Helper()
	ch, err := NewRealtimeChannel(config.RealtimeConfig{
		URL:              "https://api.netflix100plus.id",
		HandshakeTimeout: 2 * time.Second,
	}, nil, handler, quietLog())
	require.NoError(t, err)
	return ch
}

// connectFake connects ch over a fresh fake transport and completes the handshake.
func connectFake(t *testing.T, ch *RealtimeChannel, adminID int64) (*fakeTransport, string) {
	t.Helper()
	ft := newFakeTransport()
	var target string
	ch.dial = func(ctx context.Context, u string) (Transport, error) {
		target = u
		return ft, nil
	}

	errCh := make(chan error, 1)
	go func() { errCh <- ch.Connect(context.Background(), adminID) }()

	ft.accept(t)
	require.NoError(t, <-errCh)
	return ft, target
}

func TestConnectCompletesHandshake(t *testing.T) {
	ch := newTestChannel(t, nil)
	assert.Equal(t, RealtimeDisconnected, ch.State())

	_, target := connectFake(t, ch, 42)

	assert.Equal(t, RealtimeConnected, ch.State())
	u, err := url.Parse(target)
	require.NoError(t, err)
	assert.Equal(t, "wss", u.Scheme)
	assert.Equal(t, "/socket.io/", u.Path)
	assert.Equal(t, "4", u.Query().Get("EIO"))
	assert.Equal(t, "websocket", u.Query().Get("transport"))
	assert.Equal(t, "42", u.Query().Get("adminId"))
}

func TestConnectWhileConnectedIsNoop(t *testing.T) {
	ch := newTestChannel(t, nil)
	connectFake(t, ch, 1)

	dialed := false
	ch.dial = func(ctx context.Context, u string) (Transport, error) {
		dialed = true
		return nil, errors.New("unexpected dial")
	}

	require.NoError(t, ch.Connect(context.Background(), 1))
	assert.False(t, dialed)
	assert.Equal(t, RealtimeConnected, ch.State())
}

func TestPingIsAnswered(t *testing.T) {
	ch := newTestChannel(t, nil)
	ft, _ := connectFake(t, ch, 1)

	ft.in <- "2"
	assert.Equal(t, "3", ft.expect(t))

	ft.in <- "2probe"
	assert.Equal(t, "3probe", ft.expect(t))
}

// connectWithHeartbeat completes a handshake that announces a short ping schedule.
func connectWithHeartbeat(t *testing.T, ch *RealtimeChannel, handshake string) *fakeTransport {
	t.Helper()
	ft := newFakeTransport()
	ch.dial = func(ctx context.Context, u string) (Transport, error) { return ft, nil }

	errCh := make(chan error, 1)
	go func() { errCh <- ch.Connect(context.Background(), 3) }()

	ft.in <- handshake
	require.Equal(t, frameConnect, ft.expect(t))
	ft.in <- "40"
	require.NoError(t, <-errCh)
	return ft
}

func TestSilentServerDropsConnection(t *testing.T) {
	ch := newTestChannel(t, nil)
	ft := connectWithHeartbeat(t, ch, `0{"sid":"s2","pingInterval":40,"pingTimeout":40}`)
	require.Equal(t, RealtimeConnected, ch.State())

	assert.True(t, waitFor(func() bool { return ch.State() == RealtimeDisconnected }))
	assert.True(t, waitFor(ft.isClosed))
}

func TestPingsKeepConnectionAlive(t *testing.T) {
	ch := newTestChannel(t, nil)
	ft := connectWithHeartbeat(t, ch, `0{"sid":"s3","pingInterval":100,"pingTimeout":100}`)

	for i := 0; i < 6; i++ {
		time.Sleep(60 * time.Millisecond)
		ft.in <- "2"
		require.Equal(t, "3", ft.expect(t))
	}
	assert.Equal(t, RealtimeConnected, ch.State())

	ch.Disconnect()
}

func TestHeartbeatWindow(t *testing.T) {
	ch := newTestChannel(t, nil)

	assert.Equal(t, 45*time.Second, ch.heartbeatWindow(`{"sid":"a","pingInterval":25000,"pingTimeout":20000}`))
	assert.Zero(t, ch.heartbeatWindow(`{"sid":"a"}`))
	assert.Zero(t, ch.heartbeatWindow(`not json`))
}

func TestExportEventsAreDelivered(t *testing.T) {
	rec := newEventRecorder()
	ch := newTestChannel(t, rec.handle)
	ft, _ := connectFake(t, ch, 1)

	ft.in <- `42["export:completed",{"jobId":17,"downloadUrl":"https://files/17.csv"}]`
	ft.in <- `42["export:failed",{"jobId":"job-9","error":"query timeout"}]`
	ft.in <- `42["user:created",{"id":3}]`
	ft.in <- `42/admin,5["export:completed",{"jobId":"18","downloadUrl":"https://files/18.csv"}]`

	completed, ok := rec.next(t).(ExportCompleted)
	require.True(t, ok)
	assert.Equal(t, models.FlexibleID("17"), completed.JobID)
	assert.Equal(t, "https://files/17.csv", completed.DownloadURL)

	failed, ok := rec.next(t).(ExportFailed)
	require.True(t, ok)
	assert.Equal(t, models.FlexibleID("job-9"), failed.JobID)
	assert.Equal(t, "query timeout", failed.Error)

	// the unknown event is skipped
	namespaced, ok := rec.next(t).(ExportCompleted)
	require.True(t, ok)
	assert.Equal(t, models.FlexibleID("18"), namespaced.JobID)
}

func TestConnectErrorIsReported(t *testing.T) {
	ch := newTestChannel(t, nil)
	ft := newFakeTransport()
	ch.dial = func(ctx context.Context, u string) (Transport, error) { return ft, nil }

	errCh := make(chan error, 1)
	go func() { errCh <- ch.Connect(context.Background(), 1) }()

	ft.in <- `0{"sid":"s1"}`
	require.Equal(t, frameConnect, ft.expect(t))
	ft.in <- `44{"message":"admin not found"}`

	err := <-errCh
	var transportErr *utils.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, err.Error(), "admin not found")
	assert.Equal(t, RealtimeDisconnected, ch.State())
	assert.True(t, ft.isClosed())
}

func TestDialFailure(t *testing.T) {
	ch := newTestChannel(t, nil)
	ch.dial = func(ctx context.Context, u string) (Transport, error) {
		return nil, errors.New("connection refused")
	}

	err := ch.Connect(context.Background(), 1)

	var transportErr *utils.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, RealtimeDisconnected, ch.State())
}

func TestConnectTimesOutWithoutAck(t *testing.T) {
	ch, err := NewRealtimeChannel(config.RealtimeConfig{
		URL:              "http://localhost:3000",
		HandshakeTimeout: 50 * time.Millisecond,
	}, nil, nil, quietLog())
	require.NoError(t, err)
	ft := newFakeTransport()
	ch.dial = func(ctx context.Context, u string) (Transport, error) { return ft, nil }

	err = ch.Connect(context.Background(), 1)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, RealtimeDisconnected, ch.State())
	assert.True(t, ft.isClosed())
}

func TestDisconnectSendsCloseFrame(t *testing.T) {
	ch := newTestChannel(t, nil)
	ft, _ := connectFake(t, ch, 1)

	ch.Disconnect()

	assert.Equal(t, frameDisconnect, ft.expect(t))
	assert.True(t, ft.isClosed())
	assert.Equal(t, RealtimeDisconnected, ch.State())

	// safe to repeat
	ch.Disconnect()
}

func TestServerDisconnectResetsState(t *testing.T) {
	ch := newTestChannel(t, nil)
	ft, _ := connectFake(t, ch, 1)

	ft.in <- "41"

	assert.True(t, waitFor(func() bool { return ch.State() == RealtimeDisconnected }))
	assert.True(t, ft.isClosed())

	// no automatic reconnect; a fresh Connect dials again
	connectFake(t, ch, 1)
	assert.Equal(t, RealtimeConnected, ch.State())
}

func TestWebsocketTransportCarriesSessionCookie(t *testing.T) {
	upgrader := websocket.Upgrader{}
	type handshake struct{ cookie, adminID string }
	seen := make(chan handshake, 1)

	r := gin.New()
	r.GET("/socket.io/", func(c *gin.Context) {
		cookie, _ := c.Cookie(accessTokenCookie)
		seen <- handshake{cookie: cookie, adminID: c.Query("adminId")}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		conn.WriteMessage(websocket.TextMessage, []byte(`0{"sid":"ws1","pingInterval":25000,"pingTimeout":20000}`))
		if _, msg, err := conn.ReadMessage(); err != nil || string(msg) != frameConnect {
			return
		}
		conn.WriteMessage(websocket.TextMessage, []byte(`40{"sid":"n1"}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`42["export:completed",{"jobId":5,"downloadUrl":"https://files/5.csv"}]`))
		// wait for the client to leave
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	srvURL, err := url.Parse(srv.URL)
	require.NoError(t, err)
	jar.SetCookies(srvURL, []*http.Cookie{{Name: accessTokenCookie, Value: "session-token", Path: "/"}})

	rec := newEventRecorder()
	ch, err := NewRealtimeChannel(config.RealtimeConfig{
		URL:              srv.URL,
		HandshakeTimeout: 2 * time.Second,
	}, jar, rec.handle, quietLog())
	require.NoError(t, err)

	require.NoError(t, ch.Connect(context.Background(), 9))
	defer ch.Disconnect()

	event, ok := rec.next(t).(ExportCompleted)
	require.True(t, ok)
	assert.Equal(t, models.FlexibleID("5"), event.JobID)
	hs := <-seen
	assert.Equal(t, "session-token", hs.cookie)
	assert.Equal(t, "9", hs.adminID)
}
