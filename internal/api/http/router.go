package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/http/handlers"
	"github.com/spec-kit/blog-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Posts          *handlers.PostsHandler
	Categories     *handlers.CategoriesHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Auth.Logout)

	api.Get("/categories", cfg.Categories.ListCategories)
	api.Get("/categories/:id", cfg.Categories.GetCategory)

	users := api.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireUser())
	users.Get("/me", cfg.Users.Me)
	users.Put("/me", cfg.Users.UpdateMe)

	posts := api.Group("/posts", cfg.AuthMiddleware.Handle, auth.RequireUser())
	posts.Get("/", cfg.Posts.ListPosts)
	posts.Post("/", cfg.Posts.CreatePost)
	posts.Get("/:id", cfg.Posts.GetPost)
	posts.Put("/:id", cfg.Posts.UpdatePost)
	posts.Delete("/:id", cfg.Posts.DeletePost)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Patch("/users/:id/status", cfg.Admin.SetUserStatus)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)
	admin.Get("/posts", cfg.Admin.ListPosts)
	admin.Patch("/posts/:id/status", cfg.Admin.SetPostStatus)
	admin.Get("/categories", cfg.Categories.ListCategories)
	admin.Post("/categories", cfg.Categories.CreateCategory)
	admin.Put("/categories/:id", cfg.Categories.RenameCategory)
	admin.Delete("/categories/:id", cfg.Categories.DeleteCategory)
}
