// internal/services/auth_service_test.go
package services

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/utils"
)

func TestCheckAuthProbesOnce(t *testing.T) {
	var meCalls int32
	client, _ := newBackend(t, func(v1 *gin.RouterGroup) {
		v1.GET("/admin/me", func(c *gin.Context) {
			atomic.AddInt32(&meCalls, 1)
			c.JSON(http.StatusOK, adminJSON(3))
		})
	})
	auth := NewAuthService(client, quietLog())
	assert.True(t, auth.State().IsLoading())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			auth.CheckAuth(context.Background())
		}()
	}
	wg.Wait()
	require.True(t, waitFor(func() bool { return !auth.State().IsLoading() }))

	auth.CheckAuth(context.Background())

	state := auth.State()
	assert.Equal(t, models.SessionAuthenticated, state.Status)
	require.NotNil(t, state.Admin)
	assert.Equal(t, int64(3), state.Admin.ID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&meCalls))
}

func TestCheckAuthWithoutSession(t *testing.T) {
	var logoutCalls int32
	client, _ := newBackend(t, func(v1 *gin.RouterGroup) {
		v1.GET("/admin/me", unauthorized)
		v1.POST("/admin/refresh-tokens", unauthorized)
		v1.POST("/admin/logout", func(c *gin.Context) {
			atomic.AddInt32(&logoutCalls, 1)
			c.Status(http.StatusNoContent)
		})
	})
	auth := NewAuthService(client, quietLog())

	auth.CheckAuth(context.Background())

	assert.Equal(t, models.SessionUnauthenticated, auth.State().Status)
	assert.Nil(t, auth.State().Admin)
	assert.Equal(t, int32(1), atomic.LoadInt32(&logoutCalls))
}

func TestCheckAuthRejectsMalformedProfile(t *testing.T) {
	client, _ := newBackend(t, func(v1 *gin.RouterGroup) {
		v1.GET("/admin/me", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"admin": gin.H{"id": 1, "email": "not-an-email"}})
		})
	})
	auth := NewAuthService(client, quietLog())

	auth.CheckAuth(context.Background())

	assert.Equal(t, models.SessionUnauthenticated, auth.State().Status)
}

func TestLoginValidatesBeforeCallingBackend(t *testing.T) {
	var loginCalls int32
	client, _ := newBackend(t, func(v1 *gin.RouterGroup) {
		v1.POST("/admin/login", func(c *gin.Context) {
			atomic.AddInt32(&loginCalls, 1)
		})
	})
	auth := NewAuthService(client, quietLog())

	_, err := auth.Login(context.Background(), &models.LoginRequest{Email: "dewi", Password: ""})

	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields, 2)
	assert.Equal(t, int32(0), atomic.LoadInt32(&loginCalls))
	assert.True(t, auth.State().IsLoading())
}

func TestLoginAndSubscribe(t *testing.T) {
	client, _ := newBackend(t, func(v1 *gin.RouterGroup) {
		v1.POST("/admin/login", func(c *gin.Context) {
			var req models.LoginRequest
			if err := c.ShouldBindJSON(&req); err != nil || req.Password != "s3cret" {
				unauthorized(c)
				return
			}
			c.JSON(http.StatusOK, adminJSON(8))
		})
		v1.POST("/admin/logout", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	})
	auth := NewAuthService(client, quietLog())

	var seen []models.SessionStatus
	unsubscribe := auth.Subscribe(func(s models.SessionState) {
		seen = append(seen, s.Status)
	})

	_, err := auth.Login(context.Background(), &models.LoginRequest{Email: "dewi@netflix100plus.id", Password: "wrong"})
	assert.True(t, utils.IsAuthError(err))

	admin, err := auth.Login(context.Background(), &models.LoginRequest{Email: "dewi@netflix100plus.id", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), admin.ID)
	assert.Equal(t, models.AdminRoleAdmin, admin.Role)

	auth.Logout(context.Background())
	unsubscribe()
	auth.Logout(context.Background())

	assert.Equal(t, []models.SessionStatus{models.SessionAuthenticated, models.SessionUnauthenticated}, seen)
}

func TestLogoutClearsSessionWhenBackendFails(t *testing.T) {
	client, _ := newBackend(t, func(v1 *gin.RouterGroup) {
		v1.POST("/admin/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, adminJSON(2))
		})
		v1.POST("/admin/logout", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "boom"})
		})
	})
	auth := NewAuthService(client, quietLog())

	_, err := auth.Login(context.Background(), &models.LoginRequest{Email: "dewi@netflix100plus.id", Password: "x"})
	require.NoError(t, err)

	auth.Logout(context.Background())

	assert.Equal(t, models.SessionUnauthenticated, auth.State().Status)
	assert.Nil(t, auth.State().Admin)
}

func TestStateSnapshotIsACopy(t *testing.T) {
	client, _ := newBackend(t, func(v1 *gin.RouterGroup) {
		v1.POST("/admin/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, adminJSON(5))
		})
	})
	auth := NewAuthService(client, quietLog())
	_, err := auth.Login(context.Background(), &models.LoginRequest{Email: "dewi@netflix100plus.id", Password: "x"})
	require.NoError(t, err)

	snapshot := auth.State()
	snapshot.Admin.Name = "changed"

	assert.Equal(t, "Dewi", auth.State().Admin.Name)
}
