// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/utils"
)

var errNoAdmin = errors.New("response carries no admin profile")

// AuthService holds the admin session: loading until the first probe settles,
// then authenticated or unauthenticated.
type AuthService struct {
	client *APIClient
	log    *logrus.Entry

	mu        sync.Mutex
	state     models.SessionState
	probing   bool
	listeners []func(models.SessionState)
}

type adminEnvelope struct {
	Admin *models.AdminProfile `json:"admin"`
}

func NewAuthService(client *APIClient, log *logrus.Entry) *AuthService {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &AuthService{
		client: client,
		log:    log.WithField("component", "auth_service"),
		state:  models.SessionState{Status: models.SessionLoading},
	}
	client.OnSessionExpired(func(ctx context.Context) {
		s.Logout(ctx)
	})
	return s
}

func (s *AuthService) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers fn for every state change. The returned func unregisters it.
func (s *AuthService) Subscribe(fn func(models.SessionState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.listeners) {
			s.listeners[idx] = nil
		}
	}
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AdminProfile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.NewValidationError("invalid login request", err)
	}

	var resp adminEnvelope
	if err := s.client.Post(ctx, LoginPath, req, &resp); err != nil {
		return nil, err
	}

	admin, err := validateAdmin(resp.Admin)
	if err != nil {
		return nil, err
	}

	s.setState(models.SessionState{Status: models.SessionAuthenticated, Admin: admin})
	s.log.WithField("admin_id", admin.ID).Info("Admin logged in")
	return admin, nil
}

// Logout always ends the local session, even when the backend call fails.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.client.Post(ctx, LogoutPath, nil, nil); err != nil {
		s.log.WithError(err).Warn("Logout request failed, clearing session locally")
	}
	s.setState(models.SessionState{Status: models.SessionUnauthenticated})
}

// CheckAuth resolves the initial loading state from GET /admin/me.
// It does nothing once the state is resolved or while a probe is running.
func (s *AuthService) CheckAuth(ctx context.Context) {
	s.mu.Lock()
	if s.state.Status != models.SessionLoading || s.probing {
		s.mu.Unlock()
		return
	}
	s.probing = true
	s.mu.Unlock()

	next := models.SessionState{Status: models.SessionUnauthenticated}

	var resp adminEnvelope
	err := s.client.Get(ctx, MePath, nil, &resp)
	if err == nil {
		var admin *models.AdminProfile
		if admin, err = validateAdmin(resp.Admin); err == nil {
			next = models.SessionState{Status: models.SessionAuthenticated, Admin: admin}
		}
	}
	if err != nil {
		s.log.WithError(err).Debug("No active session")
	}

	s.mu.Lock()
	s.probing = false
	if s.state.Status != models.SessionLoading {
		// a login or logout already decided the session
		s.mu.Unlock()
		return
	}
	snapshot, listeners := s.transitionLocked(next)
	s.mu.Unlock()

	notify(listeners, snapshot)
}

func (s *AuthService) setState(next models.SessionState) {
	s.mu.Lock()
	snapshot, listeners := s.transitionLocked(next)
	s.mu.Unlock()

	notify(listeners, snapshot)
}

func (s *AuthService) transitionLocked(next models.SessionState) (models.SessionState, []func(models.SessionState)) {
	s.state = next
	listeners := make([]func(models.SessionState), 0, len(s.listeners))
	for _, fn := range s.listeners {
		if fn != nil {
			listeners = append(listeners, fn)
		}
	}
	return s.snapshot(), listeners
}

func notify(listeners []func(models.SessionState), state models.SessionState) {
	for _, fn := range listeners {
		fn(state)
	}
}

func (s *AuthService) snapshot() models.SessionState {
	state := s.state
	if state.Admin != nil {
		admin := *state.Admin
		state.Admin = &admin
	}
	return state
}

func validateAdmin(admin *models.AdminProfile) (*models.AdminProfile, error) {
	if admin == nil {
		return nil, &utils.ValidationError{Message: "invalid admin profile", Err: errNoAdmin}
	}
	if err := utils.ValidateStruct(admin); err != nil {
		return nil, utils.NewValidationError("invalid admin profile", err)
	}
	return admin, nil
}
