// Package supabase provides a client for the hosted Supabase project backing
// the ordering site: PostgREST tables, GoTrue auth, and storage buckets.
package supabase

import (
	"net/http"
	"time"
)

// Config holds Supabase client configuration.
type Config struct {
	// ProjectURL is the Supabase project URL (e.g. https://xxx.supabase.co).
	ProjectURL string

	// AnonKey is the public anon key used for end-user requests.
	AnonKey string

	// ServiceKey is the service role key. Only the seed tool and
	// admin-side operations use it; it bypasses RLS.
	ServiceKey string

	// Timeout for HTTP requests. Defaults to 30s.
	Timeout time.Duration
}

// User represents a GoTrue user.
type User struct {
	ID               string                 `json:"id"`
	Aud              string                 `json:"aud"`
	Role             string                 `json:"role"`
	Email            string                 `json:"email"`
	EmailConfirmedAt *time.Time             `json:"email_confirmed_at,omitempty"`
	LastSignInAt     *time.Time             `json:"last_sign_in_at,omitempty"`
	UserMetadata     map[string]interface{} `json:"user_metadata,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// DisplayName returns the user's chosen display name, or "" when unset.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if v, ok := u.UserMetadata["full_name"].(string); ok {
		return v
	}
	return ""
}

// Session represents an auth session returned by GoTrue.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}

// SignUpRequest for user registration.
type SignUpRequest struct {
	Email    string                 `json:"email"`
	Password string                 `json:"password"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// OrderDirection for sorting.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// Error represents a Supabase API error. PostgREST reports
// {code,message,details,hint}; GoTrue reports {error_code,msg} or
// {error,error_description}. Both decode into this type.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	Hint       string `json:"hint,omitempty"`
	StatusCode int    `json:"status_code"`
}

func (e *Error) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// GoTrue error codes the auth flow branches on. These are stable API
// identifiers, unlike the human-readable messages.
const (
	codeInvalidCredentials = "invalid_credentials"
	codeUserAlreadyExists  = "user_already_exists"
	codeEmailExists        = "email_exists"
)

// IsNotFound reports whether err is a not-found response.
func IsNotFound(err error) bool {
	se, ok := err.(*Error)
	return ok && (se.StatusCode == http.StatusNotFound || se.StatusCode == http.StatusNotAcceptable)
}

// IsInvalidCredentials reports whether err is a bad email/password response.
func IsInvalidCredentials(err error) bool {
	se, ok := err.(*Error)
	if !ok {
		return false
	}
	if se.Code == codeInvalidCredentials {
		return true
	}
	// Older GoTrue versions return a bare 400 invalid_grant for bad logins.
	return se.StatusCode == http.StatusBadRequest && se.Code == "invalid_grant"
}

// IsUserAlreadyExists reports whether err is a duplicate-registration response.
func IsUserAlreadyExists(err error) bool {
	se, ok := err.(*Error)
	if !ok {
		return false
	}
	switch se.Code {
	case codeUserAlreadyExists, codeEmailExists:
		return true
	}
	return se.StatusCode == http.StatusUnprocessableEntity
}
