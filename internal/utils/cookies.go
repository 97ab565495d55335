package utils

import (
	"net/http"

	"github.com/confessly-dev/confessly/internal/middleware"
	"github.com/confessly-dev/confessly/internal/types"
	"github.com/gin-gonic/gin"
)

// SetSessionCookie writes or clears the session cookie. SameSite=None needs
// Secure, so insecure (local) deployments fall back to Lax.
func SetSessionCookie(ctx *gin.Context, cfg types.CookieConfig, token string, maxAge int) {
	sameSite := http.SameSiteNoneMode

	if !cfg.Secure {
		sameSite = http.SameSiteLaxMode
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   maxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

func ClearSessionCookie(ctx *gin.Context, cfg types.CookieConfig) {
	SetSessionCookie(ctx, cfg, "", -1)
}
