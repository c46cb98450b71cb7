package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/groceryhub/grocery-api/internal/container"
	handlers "github.com/groceryhub/grocery-api/internal/interface/http"
	"github.com/groceryhub/grocery-api/internal/interface/middleware"
)

// AuthModule wires the account lifecycle routes
// Public: POST /api/register, POST /api/login
// Protected: POST /api/logout, POST /api/logout/all, DELETE /api/user

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()

	// Public with tight per-IP limits: register and login are the brute-force
	// surface.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	if !cfg.RateLimitEnabled {
		registerLimiter = func(c *gin.Context) { c.Next() }
		loginLimiter = func(c *gin.Context) { c.Next() }
	}

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetDB()))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.POST("/logout/all", m.Handler.LogoutAll)
		auth.DELETE("/user", m.Handler.DeleteAccount)
	}
}
