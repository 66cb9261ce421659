// internal/services/helpers_test.go
package services

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/netflix100plus/admin-console/internal/config"
	"github.com/netflix100plus/admin-console/internal/i18n"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := i18n.Initialize("en"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func quietLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// newBackend starts a fake backend; routes are registered under /v1.
func newBackend(t *testing.T, routes func(v1 *gin.RouterGroup)) (*APIClient, *httptest.Server) {
	t.Helper()

	r := gin.New()
	routes(r.Group("/v1"))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client, err := NewAPIClient(config.APIConfig{
		BaseURL: srv.URL + "/v1",
		Timeout: 5 * time.Second,
	}, quietLog())
	require.NoError(t, err)
	return client, srv
}

func adminJSON(id int64) gin.H {
	return gin.H{
		"admin": gin.H{
			"id":    id,
			"name":  "Dewi",
			"email": "dewi@netflix100plus.id",
			"role":  "ADMIN",
		},
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized", "statusCode": 401})
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
