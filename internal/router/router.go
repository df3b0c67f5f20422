package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskdeck/backend/api/handler"
	"github.com/taskdeck/backend/internal/middleware"
)

type Handlers struct {
	Auth      *apiHandler.AuthHandler
	Dashboard *apiHandler.DashboardHandler
	Users     *apiHandler.UsersHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, guard *middleware.Guard, staticDir string) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Redirect hub: session presence decides where "/" goes.
	r.GET("/", func(ctx *fasthttp.RequestCtx) {
		if guard.Resolve(ctx) != nil {
			ctx.Redirect("/dashboard", fasthttp.StatusSeeOther)
			return
		}
		ctx.Redirect("/login", fasthttp.StatusSeeOther)
	})

	// Sign-in and registration, closed to already-authenticated users.
	r.GET("/login", guard.RedirectAuthenticated(handlers.Auth.LoginPage))
	r.POST("/login", guard.RedirectAuthenticated(handlers.Auth.Login))
	r.GET("/register", guard.RedirectAuthenticated(handlers.Auth.RegisterPage))
	r.POST("/register", guard.RedirectAuthenticated(handlers.Auth.Register))
	r.GET("/login/github", guard.RedirectAuthenticated(handlers.Auth.GitHubStart))
	r.GET("/auth/github/callback", handlers.Auth.GitHubCallback)
	r.POST("/logout", guard.RequireSession(handlers.Auth.Logout))

	// Dashboard pages and task mutations.
	r.GET("/dashboard", guard.RequireSession(handlers.Dashboard.Dashboard))
	r.POST("/tasks", guard.RequireSession(handlers.Dashboard.CreateTask))
	r.POST("/tasks/{id}/title", guard.RequireSession(handlers.Dashboard.RenameTask))
	r.POST("/tasks/{id}/delete", guard.RequireSession(handlers.Dashboard.DeleteTask))
	r.POST("/tasks/{id}/activities", guard.RequireSession(handlers.Dashboard.AddActivity))
	r.POST("/tasks/{id}/activities/{activityID}/complete", guard.RequireSession(handlers.Dashboard.CompleteActivity))
	r.POST("/tasks/{id}/activities/{activityID}/title", guard.RequireSession(handlers.Dashboard.RenameActivity))
	r.POST("/tasks/{id}/activities/{activityID}/delete", guard.RequireSession(handlers.Dashboard.DeleteActivity))

	// User directory.
	r.GET("/usuarios", guard.RequireSession(handlers.Users.Page))
	r.GET("/api/users", guard.RequireSession(handlers.Users.List))

	if staticDir != "" {
		r.ServeFiles("/static/{filepath:*}", staticDir)
	}

	return r
}
