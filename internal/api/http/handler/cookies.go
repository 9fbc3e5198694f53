package handler

import (
	"net/http"

	"github.com/dtroode/vidtube-server/internal/model"
)

// Cookies writes the session token cookies.
type Cookies struct {
	secure bool
	maxAge int
}

// NewCookies creates a cookie writer. maxAge of zero yields session cookies.
func NewCookies(secure bool, maxAge int) *Cookies {
	return &Cookies{secure: secure, maxAge: maxAge}
}

// Set writes both token cookies.
func (c *Cookies) Set(w http.ResponseWriter, tokens model.TokenPair) {
	http.SetCookie(w, c.cookie(model.AccessTokenCookie, tokens.AccessToken, c.maxAge))
	http.SetCookie(w, c.cookie(model.RefreshTokenCookie, tokens.RefreshToken, c.maxAge))
}

// Clear expires both token cookies.
func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(model.AccessTokenCookie, "", -1))
	http.SetCookie(w, c.cookie(model.RefreshTokenCookie, "", -1))
}

func (c *Cookies) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
