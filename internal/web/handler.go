package web

import (
	"log"
	"net/http"
	"strconv"

	"github.com/confessly-dev/confessly/internal/auth"
	"github.com/confessly-dev/confessly/internal/authz"
	"github.com/confessly-dev/confessly/internal/handlers"
	"github.com/confessly-dev/confessly/internal/middleware"
	"github.com/confessly-dev/confessly/internal/store"
	"github.com/confessly-dev/confessly/internal/types"
	"github.com/confessly-dev/confessly/internal/utils"
	"github.com/gin-gonic/gin"
)

// Handler is the server-rendered page surface. It drives the same core as
// the JSON surface and only differs in presentation: forms in, redirects and
// flash messages out.
type Handler struct {
	auth        *auth.Service
	confessions *store.ConfessionStore
	cookies     types.CookieConfig
}

func NewHandler(authService *auth.Service, confessions *store.ConfessionStore, cookies types.CookieConfig) *Handler {
	return &Handler{auth: authService, confessions: confessions, cookies: cookies}
}

func currentUser(ctx *gin.Context) *middleware.AuthenticatedUser {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		return nil
	}

	return &user
}

func (h *Handler) Index(ctx *gin.Context) {
	confessions, err := h.confessions.ListAll()

	if err != nil {
		log.Printf("Failed to list confessions: %v", err)
		ctx.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"User":        currentUser(ctx),
		"Confessions": confessions,
		"Flash":       takeFlash(ctx),
	})
}

func (h *Handler) ShowRegister(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "register.html", gin.H{"Flash": takeFlash(ctx)})
}

func (h *Handler) Register(ctx *gin.Context) {
	username := ctx.PostForm("username")
	email := ctx.PostForm("email")
	password := ctx.PostForm("password")

	if _, err := h.auth.Register(username, email, password); err != nil {
		status, message := handlers.ErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Printf("Failed to register user: %v", err)
		}
		ctx.HTML(status, "register.html", gin.H{
			"Error":    message,
			"Username": username,
			"Email":    email,
		})
		return
	}

	setFlash(ctx, "Registration successful! Please log in.")
	ctx.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) ShowLogin(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", gin.H{"Flash": takeFlash(ctx)})
}

func (h *Handler) Login(ctx *gin.Context) {
	email := ctx.PostForm("email")
	password := ctx.PostForm("password")

	_, token, err := h.auth.Login(email, password)

	if err != nil {
		status, message := handlers.ErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Printf("Failed to log in user: %v", err)
		}
		ctx.HTML(status, "login.html", gin.H{
			"Error": message,
			"Email": email,
		})
		return
	}

	utils.SetSessionCookie(ctx, h.cookies, token, int(store.SessionTTL.Seconds()))
	setFlash(ctx, "Welcome back!")
	ctx.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) Logout(ctx *gin.Context) {
	if token, err := utils.GetSessionToken(ctx); err == nil {
		if err := h.auth.Logout(token); err != nil {
			log.Printf("Failed to delete session: %v", err)
		}
	}

	utils.ClearSessionCookie(ctx, h.cookies)
	setFlash(ctx, "Logged out successfully")
	ctx.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) CreateConfession(ctx *gin.Context) {
	user := currentUser(ctx)

	if user == nil {
		setFlash(ctx, "Please log in to confess")
		ctx.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if _, err := h.confessions.Create(user.ID, ctx.PostForm("confession")); err != nil {
		h.redirectWithError(ctx, err, "Failed to create confession")
		return
	}

	setFlash(ctx, "Confession submitted successfully!")
	ctx.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) EditConfession(ctx *gin.Context) {
	user, id, ok := h.mutationTarget(ctx)

	if !ok {
		return
	}

	confession, err := h.confessions.Get(id)

	if err == nil {
		err = authz.AuthorizeMutation(user.ID, confession)
	}

	if err == nil {
		_, err = h.confessions.Update(id, ctx.PostForm("confession"))
	}

	if err != nil {
		h.redirectWithError(ctx, err, "Failed to update confession")
		return
	}

	setFlash(ctx, "Confession updated successfully!")
	ctx.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) DeleteConfession(ctx *gin.Context) {
	user, id, ok := h.mutationTarget(ctx)

	if !ok {
		return
	}

	confession, err := h.confessions.Get(id)

	if err == nil {
		err = authz.AuthorizeMutation(user.ID, confession)
	}

	if err == nil {
		err = h.confessions.Delete(id)
	}

	if err != nil {
		h.redirectWithError(ctx, err, "Failed to delete confession")
		return
	}

	setFlash(ctx, "Confession deleted successfully!")
	ctx.Redirect(http.StatusSeeOther, "/")
}

// mutationTarget resolves the acting user and the confession id from a
// mutating form post, redirecting when either is unusable.
func (h *Handler) mutationTarget(ctx *gin.Context) (*middleware.AuthenticatedUser, uint, bool) {
	user := currentUser(ctx)

	if user == nil {
		setFlash(ctx, "Please log in first")
		ctx.Redirect(http.StatusSeeOther, "/login")
		return nil, 0, false
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		setFlash(ctx, "Invalid confession ID")
		ctx.Redirect(http.StatusSeeOther, "/")
		return nil, 0, false
	}

	return user, uint(id), true
}

func (h *Handler) redirectWithError(ctx *gin.Context, err error, logContext string) {
	status, message := handlers.ErrorResponse(err)

	if status == http.StatusInternalServerError {
		log.Printf("%s: %v", logContext, err)
	}

	setFlash(ctx, message)
	ctx.Redirect(http.StatusSeeOther, "/")
}
