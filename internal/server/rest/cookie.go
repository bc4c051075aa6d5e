package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// CookieSettings holds the session cookie attributes derived from config.
type CookieSettings struct {
	TTL    time.Duration
	Secure bool
}

func (s CookieSettings) session(token string) *http.Cookie {
	return &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (s CookieSettings) cleared() *http.Cookie {
	return &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}
