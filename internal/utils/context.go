package utils

import (
	"fmt"

	"github.com/confessly-dev/confessly/internal/middleware"
	"github.com/confessly-dev/confessly/internal/types"
	"github.com/gin-gonic/gin"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

func GetSessionToken(ctx *gin.Context) (string, error) {
	token, exists := ctx.Get(types.ContextTokenKey)

	if !exists {
		return "", fmt.Errorf("No session token in context")
	}

	tokenString, ok := token.(string)

	if !ok || tokenString == "" {
		return "", fmt.Errorf("Invalid session token in context")
	}

	return tokenString, nil
}
