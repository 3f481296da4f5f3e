// Package router wires every route to its guard pipeline. Each
// protected route runs, in order: JWTAuth, the policy check for its
// action, the self-action guard where one applies, then the handler.
// Every stage short-circuits on denial, so a handler only ever sees
// fully authorized requests.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/secure-admin/internal/config"
	"github.com/iliyamo/secure-admin/internal/handler"
	"github.com/iliyamo/secure-admin/internal/middleware"
	"github.com/iliyamo/secure-admin/internal/policy"
	"github.com/iliyamo/secure-admin/internal/token"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Auth   *handler.AuthHandler
	Users  *handler.UserHandler
	Roles  *handler.RoleHandler
	Issuer *token.Issuer
	Policy *policy.Policy
	Cache  config.CacheConfig
	Redis  *redis.Client // may be nil; caching degrades to pass-through
}

// RegisterRoutes registers the full HTTP surface on the Echo instance.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	// Routes reachable without a session token: login, registration and
	// both phases of the password-reset flow.
	pub := e.Group("/v1/auth")
	pub.POST("/register", d.Auth.Register)
	pub.POST("/login", d.Auth.Login)
	pub.POST("/forgot-password", d.Auth.ForgotPassword)
	pub.POST("/reset-password", d.Auth.ResetPassword)

	// Everything below requires a valid session token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(d.Issuer))

	auth.GET("/me", d.Auth.Me)

	cache := middleware.NewRedisCache(d.Cache, d.Redis)

	users := auth.Group("/users")
	users.POST("", d.Users.Create, middleware.Authorize(d.Policy, policy.ActionUserCreate))
	users.GET("", d.Users.List, middleware.Authorize(d.Policy, policy.ActionUserList), cache)
	users.GET("/:id", d.Users.Get, middleware.Authorize(d.Policy, policy.ActionUserView))
	users.PUT("/:id", d.Users.Update, middleware.Authorize(d.Policy, policy.ActionUserUpdate))
	users.DELETE("/:id", d.Users.Delete, middleware.Authorize(d.Policy, policy.ActionUserDelete))
	// Role changes take the policy check plus the self-action guard;
	// both must pass.
	users.PUT("/:id/role", d.Users.ChangeRole,
		middleware.Authorize(d.Policy, policy.ActionUserChangeRole),
		middleware.SelfGuard())

	roles := auth.Group("/roles")
	roles.POST("", d.Roles.Create, middleware.Authorize(d.Policy, policy.ActionRoleCreate))
	roles.GET("", d.Roles.List, middleware.Authorize(d.Policy, policy.ActionRoleList), cache)
	roles.GET("/:id", d.Roles.Get, middleware.Authorize(d.Policy, policy.ActionRoleView))
	roles.PUT("/:id", d.Roles.Update, middleware.Authorize(d.Policy, policy.ActionRoleUpdate))
	roles.DELETE("/:id", d.Roles.Delete, middleware.Authorize(d.Policy, policy.ActionRoleDelete))
}
