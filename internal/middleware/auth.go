package middleware

import (
	"net/http"
	"strings"

	"github.com/confessly-dev/confessly/internal/auth"
	"github.com/confessly-dev/confessly/internal/types"
	"github.com/gin-gonic/gin"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

const TokenCookieName = "token"

func tokenFromRequest(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(TokenCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := ctx.GetHeader("Authorization")

	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

func setContextUser(ctx *gin.Context, authService *auth.Service, token string) bool {
	user, err := authService.Resolve(token)

	if err != nil {
		return false
	}

	ctx.Set(types.ContextUserKey, AuthenticatedUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	ctx.Set(types.ContextTokenKey, token)

	return true
}

// RequireAuth rejects requests without a resolvable session.
func RequireAuth(authService *auth.Service) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := tokenFromRequest(ctx)

		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if !setContextUser(ctx, authService, token) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		ctx.Next()
	}
}

// CurrentUser resolves the session when one is present but never rejects the
// request; anonymous requests simply carry no user in the context.
func CurrentUser(authService *auth.Service) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token := tokenFromRequest(ctx); token != "" {
			setContextUser(ctx, authService, token)
		}

		ctx.Next()
	}
}
