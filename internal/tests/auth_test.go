// internal/tests/auth_test.go
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/netflix100plus/admin-console/internal/cache"
	"github.com/netflix100plus/admin-console/internal/config"
	"github.com/netflix100plus/admin-console/internal/i18n"
	"github.com/netflix100plus/admin-console/internal/router"
	"github.com/netflix100plus/admin-console/internal/services"
)

// fakeBackend stands in for the Netflix 100 Plus API and its socket server.
type fakeBackend struct {
	server *httptest.Server

	refreshFails   atomic.Bool
	holdRefresh    int32
	refreshCalls   int32
	logoutCalls    int32
	rejectedCalls  int32
	socketConnects int32
	push           chan string
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{push: make(chan string, 4)}

	r := gin.New()
	v1 := r.Group("/v1")
	v1.POST("/admin/login", func(c *gin.Context) {
		c.SetCookie("accessToken", "stale", 900, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"admin": gin.H{
			"id": 21, "name": "Dewi", "email": "dewi@netflix100plus.id", "role": "SUPER_ADMIN",
		}})
	})
	v1.POST("/admin/logout", func(c *gin.Context) {
		atomic.AddInt32(&b.logoutCalls, 1)
		c.SetCookie("accessToken", "", -1, "/", "", false, true)
		c.Status(http.StatusOK)
	})
	v1.POST("/admin/refresh-tokens", b.refresh)

	api := v1.Group("/admin", b.requireFreshToken)
	api.GET("/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []gin.H{
			{"id": 1, "name": "Budi", "email": "budi@mail.id", "purchaseStatus": "APPROVED"},
		}})
	})
	api.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"totalUsers": 1200, "pendingVerifications": 14}})
	})
	api.GET("/purchase-verifications", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []gin.H{}})
	})
	api.POST("/export", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"jobId": "77", "message": "Export queued"})
		b.push <- `42["export:failed",{"jobId":"77","error":"query timeout"}]`
	})

	r.GET("/socket.io/", b.socket)

	b.server = httptest.NewServer(r)
	return b
}

func (b *fakeBackend) requireFreshToken(c *gin.Context) {
	if token, _ := c.Cookie("accessToken"); token != "fresh" {
		atomic.AddInt32(&b.rejectedCalls, 1)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.Next()
}

func (b *fakeBackend) refresh(c *gin.Context) {
	atomic.AddInt32(&b.refreshCalls, 1)
	if b.refreshFails.Load() {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Refresh token expired"})
		return
	}

	// let the rejected page requests queue behind this refresh
	if hold := atomic.LoadInt32(&b.holdRefresh); hold > 0 {
		deadline := time.Now().Add(2 * time.Second)
		for atomic.LoadInt32(&b.rejectedCalls) < hold && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		time.Sleep(100 * time.Millisecond)
	}

	c.SetCookie("accessToken", "fresh", 900, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Tokens refreshed"})
}

func (b *fakeBackend) socket(c *gin.Context) {
	upgrader := websocket.Upgrader{}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.WriteMessage(websocket.TextMessage, []byte(`0{"sid":"e2e","pingInterval":25000,"pingTimeout":20000}`))
	if _, msg, err := conn.ReadMessage(); err != nil || string(msg) != "40" {
		return
	}
	conn.WriteMessage(websocket.TextMessage, []byte(`40{"sid":"n-e2e"}`))
	atomic.AddInt32(&b.socketConnects, 1)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case frame := <-b.push:
			if conn.WriteMessage(websocket.TextMessage, []byte(frame)) != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

type ConsoleTestSuite struct {
	suite.Suite
	backend *fakeBackend
	router  *gin.Engine
	auth    *services.AuthService
	watcher *services.RealtimeWatcher
	cancel  context.CancelFunc
}

func (suite *ConsoleTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(i18n.Initialize("en"))
}

func (suite *ConsoleTestSuite) SetupTest() {
	suite.backend = newFakeBackend()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	log := logrus.NewEntry(logger)

	cfg := &config.Config{
		Environment: "test",
		API: config.APIConfig{
			BaseURL: suite.backend.server.URL + "/v1",
			Timeout: 5 * time.Second,
		},
		Realtime: config.RealtimeConfig{
			Enabled:          true,
			URL:              suite.backend.server.URL,
			HandshakeTimeout: 2 * time.Second,
		},
		Cache:   config.CacheConfig{Driver: "memory", StatsTTL: time.Minute, SchedulesTTL: time.Hour},
		Console: config.ConsoleConfig{RateBurst: 100, LoginRateBurst: 5},
	}

	ctx, cancel := context.WithCancel(context.Background())
	suite.cancel = cancel

	client, err := services.NewAPIClient(cfg.API, log)
	suite.Require().NoError(err)
	suite.auth = services.NewAuthService(client, log)
	notifications := services.NewNotificationService()
	dispatcher := services.NewNotificationDispatcher(notifications, "en", log)
	channel, err := services.NewRealtimeChannel(cfg.Realtime, client.Jar(), dispatcher.Handle, log)
	suite.Require().NoError(err)
	responseCache := cache.NewMemoryCache()

	svc := &router.Services{
		APIClient:     client,
		Auth:          suite.auth,
		Notifications: notifications,
		Realtime:      channel,
		Users:         services.NewUserService(client),
		Verifications: services.NewVerificationService(client),
		Submissions:   services.NewSubmissionService(client),
		Leaderboard:   services.NewLeaderboardService(client),
		Stats:         services.NewStatsService(client, responseCache, cfg.Cache.StatsTTL, log),
		Settings:      services.NewSettingsService(client),
		Reports:       services.NewReportService(client, responseCache, cfg.Cache.SchedulesTTL, log),
		Exports:       services.NewExportService(client, log),
	}

	suite.watcher = services.NewRealtimeWatcher(suite.auth, channel, log)
	suite.watcher.Start(ctx)
	suite.router = router.Initialize(ctx, cfg, svc, log)
}

func (suite *ConsoleTestSuite) TearDownTest() {
	suite.watcher.Stop()
	suite.cancel()
	suite.backend.server.Close()
}

func (suite *ConsoleTestSuite) do(method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

func (suite *ConsoleTestSuite) login() {
	w, response := suite.do("POST", "/session/login", map[string]interface{}{
		"email":    "dewi@netflix100plus.id",
		"password": "TestPass123!",
	})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().True(response["success"].(bool))
}

func (suite *ConsoleTestSuite) TestProtectedRoutesNeedSession() {
	w, response := suite.do("GET", "/users", nil)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.False(suite.T(), response["success"].(bool))
}

func (suite *ConsoleTestSuite) TestLoginRejectsInvalidInput() {
	w, response := suite.do("POST", "/session/login", map[string]interface{}{
		"email": "not-an-email",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	errBody := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "VALIDATION_ERROR", errBody["code"])
}

func (suite *ConsoleTestSuite) TestConcurrentPagesShareOneRefresh() {
	suite.login()
	atomic.StoreInt32(&suite.backend.holdRefresh, 3)

	var wg sync.WaitGroup
	codes := make([]int, 3)
	for i, path := range []string{"/users", "/stats", "/verifications"} {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			w, _ := suite.do("GET", path, nil)
			codes[i] = w.Code
		}(i, path)
	}
	wg.Wait()

	assert.Equal(suite.T(), []int{http.StatusOK, http.StatusOK, http.StatusOK}, codes)
	assert.Equal(suite.T(), int32(1), atomic.LoadInt32(&suite.backend.refreshCalls))
	assert.Equal(suite.T(), int32(0), atomic.LoadInt32(&suite.backend.logoutCalls))
	assert.True(suite.T(), suite.auth.State().IsAuthenticated())
}

func (suite *ConsoleTestSuite) TestFailedRefreshLogsOut() {
	suite.login()
	suite.backend.refreshFails.Store(true)

	w, _ := suite.do("GET", "/users", nil)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(suite.T(), int32(1), atomic.LoadInt32(&suite.backend.refreshCalls))
	assert.Equal(suite.T(), int32(1), atomic.LoadInt32(&suite.backend.logoutCalls))

	w, response := suite.do("GET", "/session", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), "unauthenticated", data["status"])
	assert.Nil(suite.T(), data["admin"])
}

func (suite *ConsoleTestSuite) TestFailedExportBecomesNotification() {
	suite.login()
	suite.Require().Eventually(func() bool {
		return atomic.LoadInt32(&suite.backend.socketConnects) == 1
	}, 3*time.Second, 10*time.Millisecond)

	// the first export call also walks through a token refresh
	w, response := suite.do("POST", "/exports", map[string]interface{}{"type": "VERIFICATIONS"})
	suite.Require().Equal(http.StatusAccepted, w.Code)
	job := response["data"].(map[string]interface{})["job"].(map[string]interface{})
	assert.Equal(suite.T(), "77", job["jobId"])

	var notifications []interface{}
	suite.Require().Eventually(func() bool {
		_, response := suite.do("GET", "/notifications", nil)
		notifications, _ = response["data"].([]interface{})
		return len(notifications) == 1
	}, 3*time.Second, 10*time.Millisecond)

	n := notifications[0].(map[string]interface{})
	assert.Equal(suite.T(), "Export job 77 failed: query timeout", n["message"])
	assert.Equal(suite.T(), "error", n["kind"])
	assert.Equal(suite.T(), false, n["isRead"])

	w, _ = suite.do("POST", "/notifications/"+n["id"].(string)+"/read", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	_, response = suite.do("GET", "/notifications/unread-count", nil)
	assert.Equal(suite.T(), float64(0), response["data"].(map[string]interface{})["count"])

	w, _ = suite.do("POST", "/notifications/unknown/read", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ConsoleTestSuite) TestLogoutClosesRealtimeChannel() {
	suite.login()
	suite.Require().Eventually(func() bool {
		_, response := suite.do("GET", "/session", nil)
		data, _ := response["data"].(map[string]interface{})
		return data["realtime"] == "connected"
	}, 3*time.Second, 10*time.Millisecond)

	w, _ := suite.do("POST", "/session/logout", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	suite.Require().Eventually(func() bool {
		_, response := suite.do("GET", "/session", nil)
		data, _ := response["data"].(map[string]interface{})
		return data["realtime"] == "disconnected"
	}, 3*time.Second, 10*time.Millisecond)
}

func TestConsoleTestSuite(t *testing.T) {
	suite.Run(t, new(ConsoleTestSuite))
}
