package handlers

import (
	"log"
	"net/http"

	"github.com/confessly-dev/confessly/internal/auth"
	"github.com/confessly-dev/confessly/internal/store"
	"github.com/confessly-dev/confessly/internal/types"
	"github.com/confessly-dev/confessly/internal/utils"
	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	auth    *auth.Service
	cookies types.CookieConfig
}

func NewAuthHandler(authService *auth.Service, cookies types.CookieConfig) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.auth.Register(req.Username, req.Email, req.Password)

	if err != nil {
		status, message := ErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Printf("Failed to register user: %v", err)
		}
		ctx.JSON(status, gin.H{"error": message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful!",
		"user": types.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, token, err := h.auth.Login(req.Email, req.Password)

	if err != nil {
		status, message := ErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Printf("Failed to log in user: %v", err)
		}
		ctx.JSON(status, gin.H{"error": message})
		return
	}

	utils.SetSessionCookie(ctx, h.cookies, token, int(store.SessionTTL.Seconds()))

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": types.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	token, err := utils.GetSessionToken(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.auth.Logout(token); err != nil {
		log.Printf("Failed to delete session: %v", err)
	}

	utils.ClearSessionCookie(ctx, h.cookies)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// CheckAuth reports the current user, or null for anonymous requests. It
// never rejects.
func (h *AuthHandler) CheckAuth(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:       currentUser.ID,
			Username: currentUser.Username,
			Email:    currentUser.Email,
		},
	})
}
