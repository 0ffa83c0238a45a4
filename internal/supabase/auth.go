package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AuthClient handles GoTrue auth operations.
type AuthClient struct {
	client *Client
}

// SignUp creates a new user. The optional metadata map becomes
// user_metadata (the site stores full_name there).
func (a *AuthClient) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, statusCode, err := a.client.request(ctx, http.MethodPost, a.client.authURL+"/signup", body, nil)
	if err != nil {
		return nil, err
	}

	if statusCode >= 400 {
		return nil, parseError(respBody, statusCode)
	}

	var session Session
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &session, nil
}

// SignInWithPassword authenticates a user with email/password.
func (a *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	req := map[string]string{
		"email":    email,
		"password": password,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, statusCode, err := a.client.request(ctx, http.MethodPost, a.client.authURL+"/token?grant_type=password", body, nil)
	if err != nil {
		return nil, err
	}

	if statusCode >= 400 {
		return nil, parseError(respBody, statusCode)
	}

	var session Session
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &session, nil
}

// GetUser retrieves the user behind an access token.
func (a *AuthClient) GetUser(ctx context.Context, accessToken string) (*User, error) {
	respBody, statusCode, err := a.client.requestWithToken(ctx, http.MethodGet, a.client.authURL+"/user", nil, nil, accessToken)
	if err != nil {
		return nil, err
	}

	if statusCode >= 400 {
		return nil, parseError(respBody, statusCode)
	}

	var user User
	if err := json.Unmarshal(respBody, &user); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &user, nil
}

// SignOut revokes the session behind an access token.
func (a *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	respBody, statusCode, err := a.client.requestWithToken(ctx, http.MethodPost, a.client.authURL+"/logout", nil, nil, accessToken)
	if err != nil {
		return err
	}

	if statusCode >= 400 {
		return parseError(respBody, statusCode)
	}

	return nil
}

// ResetPasswordForEmail sends a password reset email.
func (a *AuthClient) ResetPasswordForEmail(ctx context.Context, email string) error {
	req := map[string]string{"email": email}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	respBody, statusCode, err := a.client.request(ctx, http.MethodPost, a.client.authURL+"/recover", body, nil)
	if err != nil {
		return err
	}

	if statusCode >= 400 {
		return parseError(respBody, statusCode)
	}

	return nil
}
