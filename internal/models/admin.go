// internal/models/admin.go
package models

// AdminProfile is the identity returned by /admin/login and /admin/me.
type AdminProfile struct {
	ID    int64     `json:"id" validate:"required"`
	Name  string    `json:"name" validate:"required"`
	Email string    `json:"email" validate:"required,email"`
	Role  AdminRole `json:"role" validate:"required,oneof=ADMIN SUPER_ADMIN"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionStatus string

const (
	SessionLoading         SessionStatus = "loading"
	SessionAuthenticated   SessionStatus = "authenticated"
	SessionUnauthenticated SessionStatus = "unauthenticated"
)

// SessionState is a snapshot of the auth session store.
type SessionState struct {
	Status SessionStatus `json:"status"`
	Admin  *AdminProfile `json:"admin"`
}

func (s SessionState) IsAuthenticated() bool {
	return s.Status == SessionAuthenticated
}

func (s SessionState) IsLoading() bool {
	return s.Status == SessionLoading
}

// Registration settings
type RegistrationSettings struct {
	IsRegistrationOpen bool `json:"isRegistrationOpen"`
	RegistrationLimit  *int `json:"registrationLimit" validate:"required,min=0"`
}

type WinnerRecipientsRequest struct {
	Emails []string `json:"emails" validate:"dive,required,email"`
}
