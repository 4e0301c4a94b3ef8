// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"quantedgeb/internal/cache"
	"quantedgeb/internal/database"
	"quantedgeb/internal/handler"
	"quantedgeb/internal/handler/auth"
	whophandler "quantedgeb/internal/handler/whop"
	"quantedgeb/internal/mail"
	"quantedgeb/internal/middleware"
	"quantedgeb/internal/whop"
	"quantedgeb/internal/worker"
)

// Setup registers every route with its dependencies injected.
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, verifier whop.Verifier, mailer mail.Mailer, wp worker.Pool) {
	api := e.Group("/api")

	// health check
	api.GET("/ping", handler.PingHandler(db, rdb))

	// account lifecycle
	api.POST("/auth/register", auth.RegisterHandler(db, mailer, wp))
	api.POST("/auth/login", auth.LoginHandler(db))
	api.POST("/auth/logout", auth.LogoutHandler(db))
	api.GET("/auth/profile", auth.ProfileHandler(db), middleware.RequireAuth)
	api.POST("/auth/verify-email", auth.VerifyEmailHandler(db))

	// Whop subscription verification
	api.GET("/auth/whop/init", whophandler.InitHandler(rdb, verifier))
	api.GET("/auth/whop/callback", whophandler.CallbackHandler(db, rdb, verifier))
	api.POST("/auth/whop/verify", whophandler.VerifyHandler(db, verifier), middleware.RequireAuth)
	api.POST("/auth/whop/complete", whophandler.CompleteHandler(db, verifier), middleware.RequireAuth)

	// resource delivery
	api.POST("/send-resource", handler.SendResourceHandler(mailer))
}
