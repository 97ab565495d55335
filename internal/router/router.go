package router

import (
	"time"

	"github.com/confessly-dev/confessly/internal/auth"
	"github.com/confessly-dev/confessly/internal/handlers"
	"github.com/confessly-dev/confessly/internal/middleware"
	"github.com/confessly-dev/confessly/internal/store"
	"github.com/confessly-dev/confessly/internal/types"
	"github.com/confessly-dev/confessly/internal/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries the explicitly constructed core handles the router threads
// into every handler; there is no ambient application state.
type Deps struct {
	Auth        *auth.Service
	Confessions *store.ConfessionStore
	Cookies     types.CookieConfig
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Cookies)
	confessionHandler := handlers.NewConfessionHandler(deps.Confessions)
	webHandler := web.NewHandler(deps.Auth, deps.Confessions, deps.Cookies)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", middleware.RequireAuth(deps.Auth), authHandler.Logout)
		api.GET("/check_auth", middleware.CurrentUser(deps.Auth), authHandler.CheckAuth)

		api.POST("/create_confession", middleware.RequireAuth(deps.Auth), confessionHandler.Create)
		api.GET("/all_confessions", confessionHandler.ListAll)
		api.PUT("/edit_confession/:id", middleware.RequireAuth(deps.Auth), confessionHandler.Update)
		api.DELETE("/delete_confession/:id", middleware.RequireAuth(deps.Auth), confessionHandler.Delete)
	}

	r.SetHTMLTemplate(web.Templates())

	pages := r.Group("", middleware.CurrentUser(deps.Auth))
	{
		pages.GET("/", webHandler.Index)
		pages.GET("/register", webHandler.ShowRegister)
		pages.POST("/register", webHandler.Register)
		pages.GET("/login", webHandler.ShowLogin)
		pages.POST("/login", webHandler.Login)
		pages.POST("/logout", webHandler.Logout)

		pages.POST("/confessions", webHandler.CreateConfession)
		pages.POST("/confessions/:id/edit", webHandler.EditConfession)
		pages.POST("/confessions/:id/delete", webHandler.DeleteConfession)
	}

	return r
}
