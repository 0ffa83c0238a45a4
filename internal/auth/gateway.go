// Package auth wraps the hosted auth service (GoTrue) for the ordering site.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zafran-house/ordering/internal/supabase"
)

var (
	// ErrInvalidCredentials means the email/password pair was rejected.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	// ErrAlreadyRegistered means sign-up hit an existing account. The UI
	// should point the user at the password reset flow.
	ErrAlreadyRegistered = errors.New("auth: account already registered")
	// ErrInvalidToken means the access token failed verification.
	ErrInvalidToken = errors.New("auth: invalid access token")
)

// Identity is the signed-in user as the views see it.
type Identity struct {
	ID    string
	Email string
	Name  string
}

// Gateway exposes sign-in/sign-up/sign-out/reset against the hosted auth
// service. When a JWT secret is configured, access tokens are verified
// locally; otherwise each check is a round trip to the auth endpoint.
type Gateway struct {
	client    *supabase.Client
	jwtSecret string
}

// New creates an auth gateway.
func New(client *supabase.Client, jwtSecret string) *Gateway {
	return &Gateway{client: client, jwtSecret: jwtSecret}
}

// SignIn authenticates with email and password.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (*supabase.Session, error) {
	session, err := g.client.Auth().SignInWithPassword(ctx, email, password)
	if err != nil {
		if supabase.IsInvalidCredentials(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return session, nil
}

// SignUp registers a new account. An empty display name defaults to the
// local part of the email.
func (g *Gateway) SignUp(ctx context.Context, email, password, displayName string) (*supabase.Session, error) {
	if displayName == "" {
		displayName = localPart(email)
	}

	session, err := g.client.Auth().SignUp(ctx, supabase.SignUpRequest{
		Email:    email,
		Password: password,
		Data:     map[string]interface{}{"full_name": displayName},
	})
	if err != nil {
		if supabase.IsUserAlreadyExists(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return session, nil
}

// SignInOrSignUp backs the combined login/signup form: sign-in first, and
// only when the credentials themselves are rejected, attempt registration.
// Network and server failures propagate without the fallback so that a flaky
// connection can never register a surprise account.
func (g *Gateway) SignInOrSignUp(ctx context.Context, email, password, displayName string) (session *supabase.Session, created bool, err error) {
	session, err = g.SignIn(ctx, email, password)
	if err == nil {
		return session, false, nil
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		return nil, false, err
	}

	session, err = g.SignUp(ctx, email, password, displayName)
	if err != nil {
		return nil, false, err
	}
	return session, true, nil
}

// SignOut revokes the session behind the access token.
func (g *Gateway) SignOut(ctx context.Context, accessToken string) error {
	if err := g.client.Auth().SignOut(ctx, accessToken); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// ResetPassword sends a password reset email.
func (g *Gateway) ResetPassword(ctx context.Context, email string) error {
	if err := g.client.Auth().ResetPasswordForEmail(ctx, email); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// CurrentUser resolves an access token to the signed-in identity.
func (g *Gateway) CurrentUser(ctx context.Context, accessToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, ErrInvalidToken
	}

	if g.jwtSecret != "" {
		return g.verifyLocal(accessToken)
	}

	user, err := g.client.Auth().GetUser(ctx, accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: user.ID, Email: user.Email, Name: user.DisplayName()}, nil
}

type tokenClaims struct {
	Email    string                 `json:"email"`
	UserMeta map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// verifyLocal checks the Supabase JWT signature and expiry without a round
// trip to the auth endpoint.
func (g *Gateway) verifyLocal(accessToken string) (*Identity, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(accessToken, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(g.jwtSecret), nil
	}, jwt.WithAudience("authenticated"))
	if err != nil {
		return nil, ErrInvalidToken
	}

	name := ""
	if v, ok := claims.UserMeta["full_name"].(string); ok {
		name = v
	}
	return &Identity{ID: claims.Subject, Email: claims.Email, Name: name}, nil
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
