package routes

import (
	"time"

	"hubtrack/api/handler"
	"hubtrack/api/middleware"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Records        *handler.RecordHandler
	Admin          *handler.AdminHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	recordHandler *handler.RecordHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Records:        recordHandler,
		Admin:          adminHandler,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/auth/register", r.Auth.Register, r.AuthRate.Middleware())
	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.GET("/me", r.Auth.Me, r.AuthMiddleware.RequireAuth)

	e.POST("/records", r.Records.Create, r.AuthMiddleware.RequireAuth)
	e.GET("/records", r.Records.List, r.AuthMiddleware.RequireAuth)
	e.GET("/records/search", r.Records.Search, r.AuthMiddleware.RequireAuth)
	e.GET("/records/stats/:userId", r.Records.Stats, r.AuthMiddleware.RequireAuth)
	e.GET("/records/:id", r.Records.Get, r.AuthMiddleware.RequireAuth)
	e.PUT("/records/:id", r.Records.Update, r.AuthMiddleware.RequireAuth)
	e.DELETE("/records/:id", r.Records.Delete, r.AuthMiddleware.RequireAuth)

	admin := middleware.RequireAdmin()
	e.GET("/admin/users", r.Admin.ListUsers, r.AuthMiddleware.RequireAuth, admin)
	e.GET("/admin/records", r.Admin.ListRecords, r.AuthMiddleware.RequireAuth, admin)
	e.GET("/admin/stats", r.Admin.GlobalStats, r.AuthMiddleware.RequireAuth, admin)
	e.PATCH("/admin/users/:id/active", r.Admin.SetUserActive, r.AuthMiddleware.RequireAuth, admin)
	e.PATCH("/admin/users/:id/role", r.Admin.SetUserRole, r.AuthMiddleware.RequireAuth, admin)
}
