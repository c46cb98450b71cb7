package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/groceryhub/grocery-api/internal/container"
	handlers "github.com/groceryhub/grocery-api/internal/interface/http"
	"github.com/groceryhub/grocery-api/internal/interface/middleware"
)

// ListModule wires the store/aisle/product routes. Everything here requires
// a valid session token.

type ListModule struct {
	Stores   *handlers.StoreHandler
	Aisles   *handlers.AisleHandler
	Products *handlers.ProductHandler
}

func NewListModule(stores *handlers.StoreHandler, aisles *handlers.AisleHandler, products *handlers.ProductHandler) *ListModule {
	return &ListModule{Stores: stores, Aisles: aisles, Products: products}
}

func (m *ListModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetDB()))
	if cfg.RateLimitEnabled {
		auth.Use(middleware.RateLimit(container.GetRedis(), cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	}
	{
		auth.POST("/stores", m.Stores.Create)
		auth.GET("/stores", m.Stores.List)
		auth.GET("/stores/:id", m.Stores.Get)
		auth.PUT("/stores/:id", m.Stores.Rename)
		auth.DELETE("/stores/:id", m.Stores.Delete)

		auth.POST("/stores/:id/aisles", m.Aisles.Create)
		auth.PUT("/aisles/:id", m.Aisles.Rename)
		auth.DELETE("/aisles/:id", m.Aisles.Delete)

		auth.POST("/aisles/:id/products", m.Products.Create)
		auth.PUT("/products/:id", m.Products.Edit)
		auth.DELETE("/products/:id", m.Products.Delete)

		auth.PUT("/sort_weight", m.Products.Sort)
	}
}
