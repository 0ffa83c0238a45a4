package web

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/zafran-house/ordering/internal/auth"
	"github.com/zafran-house/ordering/internal/cart"
)

const (
	// cartSessionCookieName identifies the browser session owning a cart.
	// Deliberately separate from the auth cookie: signing out must not
	// clear the cart.
	cartSessionCookieName = "cart_session"
	authTokenCookieName   = "auth_token"
)

// cartSession ensures every request carries a cart session cookie.
func (s *Server) cartSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(cartSessionCookieName); err != nil {
			id := uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     cartSessionCookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			// Make the cart reachable within the same request.
			r.AddCookie(&http.Cookie{Name: cartSessionCookieName, Value: id})
		}
		next.ServeHTTP(w, r)
	})
}

// cartFor returns the cart owned by the request's session.
func (s *Server) cartFor(r *http.Request) *cart.Cart {
	c, err := r.Cookie(cartSessionCookieName)
	if err != nil {
		// The session middleware runs on every route; a missing cookie
		// here means a direct handler test, so fall back to one shared key.
		return s.carts.Get("")
	}
	return s.carts.Get(c.Value)
}

// currentIdentity resolves the auth cookie to a signed-in user, or nil for
// guests. An invalid or expired token reads as guest, never as an error page.
func (s *Server) currentIdentity(r *http.Request) *auth.Identity {
	c, err := r.Cookie(authTokenCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	identity, err := s.auth.CurrentUser(r.Context(), c.Value)
	if err != nil {
		return nil
	}
	return identity
}

func setAuthCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     authTokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
