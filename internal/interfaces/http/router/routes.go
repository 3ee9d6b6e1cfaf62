package router

import (
	"github.com/ak/backend/internal/infrastructure/auth"
	"github.com/ak/backend/internal/infrastructure/config"
	"github.com/ak/backend/internal/infrastructure/telemetry"
	"github.com/ak/backend/internal/interfaces/http/handler"
	"github.com/ak/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers mounted by Mount
type Handlers struct {
	Account   *handler.AccountHandler
	Customer  *handler.CustomerHandler
	ItemGroup *handler.ItemGroupHandler
	Item      *handler.ItemHandler
	Unit      *handler.UnitHandler
	User      *handler.UserHandler
	System    *handler.SystemHandler
}

// Options configures the security chain and the operational endpoints
type Options struct {
	JWTService *auth.JWTService
	Tenants    middleware.TenantResolver
	// AuthLimiter throttles /api/authenticate per client IP; nil disables it
	AuthLimiter *middleware.RateLimiter
	// Metrics serves /metrics when enabled
	Metrics *telemetry.MeterProvider
	Swagger config.SwaggerConfig
	Logger  *zap.Logger
}

// Mount registers every route of the application on engine:
//
//	/health, /management/info     public
//	/metrics                      Prometheus scrape endpoint
//	/swagger/*any                 API documentation
//	/api/authenticate             public, rate limited
//	/api/**                       bearer token, resolved tenant
//	/api/users/**                 ROLE_ADMIN
func Mount(engine *gin.Engine, h Handlers, opts Options) {
	authChain := []gin.HandlerFunc{
		middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService: opts.JWTService,
			SkipPaths:  []string{"/api/authenticate"},
			Logger:     opts.Logger,
		}),
		middleware.CurrentUser(opts.Tenants, opts.Logger),
	}

	engine.GET("/health", h.System.Health)
	engine.GET("/management/info", h.System.Info)
	if opts.Metrics != nil && opts.Metrics.IsEnabled() {
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	swagger := []gin.HandlerFunc{middleware.SwaggerProtection(opts.Swagger)}
	if opts.Swagger.RequireAuth {
		swagger = append(swagger, authChain...)
	}
	swagger = append(swagger, ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/swagger/*any", swagger...)

	r := NewRouter(engine).Use(authChain...)
	r.Register(accountRoutes(h.Account, opts.AuthLimiter)).
		Register(customerRoutes(h.Customer)).
		Register(itemGroupRoutes(h.ItemGroup)).
		Register(itemRoutes(h.Item)).
		Register(unitRoutes(h.Unit)).
		Register(userRoutes(h.User))
	r.Setup()
}

func accountRoutes(h *handler.AccountHandler, limiter *middleware.RateLimiter) *DomainGroup {
	g := NewDomainGroup("account", "")
	login := []gin.HandlerFunc{h.Authenticate}
	if limiter != nil {
		login = append([]gin.HandlerFunc{middleware.RateLimitByKey(limiter, func(c *gin.Context) string {
			return "authenticate:" + c.ClientIP()
		})}, login...)
	}
	g.POST("/authenticate", login...)
	g.POST("/logout", handler.WithTenant(h.Logout))
	g.GET("/account", handler.WithTenant(h.GetAccount))
	g.POST("/account", handler.WithTenant(h.SaveAccount))
	g.POST("/account/change-password", handler.WithTenant(h.ChangePassword))
	return g
}

func customerRoutes(h *handler.CustomerHandler) *DomainGroup {
	g := NewDomainGroup("customer", "")
	g.POST("/customers", handler.WithTenant(h.Create))
	g.PUT("/customers", handler.WithTenant(h.Update))
	g.GET("/customers", handler.WithTenant(h.List))
	g.GET("/customers/count", handler.WithTenant(h.Count))
	g.GET("/customers/:id", handler.WithTenant(h.Get))
	g.DELETE("/customers/:id", handler.WithTenant(h.Delete))
	g.GET("/_search/customers", handler.WithTenant(h.Search))
	return g
}

func itemGroupRoutes(h *handler.ItemGroupHandler) *DomainGroup {
	g := NewDomainGroup("itemGroup", "")
	g.POST("/item-groups", handler.WithTenant(h.Create))
	g.PUT("/item-groups", handler.WithTenant(h.Update))
	g.GET("/item-groups", handler.WithTenant(h.List))
	g.GET("/item-groups/count", handler.WithTenant(h.Count))
	g.GET("/item-groups/:id", handler.WithTenant(h.Get))
	g.DELETE("/item-groups/:id", handler.WithTenant(h.Delete))
	g.GET("/item-groups/:id/items", handler.WithTenant(h.Items))
	g.POST("/item-groups/:id/items/:itemId", handler.WithTenant(h.AddItem))
	g.DELETE("/item-groups/:id/items/:itemId", handler.WithTenant(h.RemoveItem))
	g.GET("/_search/item-groups", handler.WithTenant(h.Search))
	return g
}

func itemRoutes(h *handler.ItemHandler) *DomainGroup {
	g := NewDomainGroup("item", "")
	g.POST("/items", handler.WithTenant(h.Create))
	g.PUT("/items", handler.WithTenant(h.Update))
	g.GET("/items", handler.WithTenant(h.List))
	g.GET("/items/count", handler.WithTenant(h.Count))
	g.GET("/items/:id", handler.WithTenant(h.Get))
	g.DELETE("/items/:id", handler.WithTenant(h.Delete))
	g.GET("/_search/items", handler.WithTenant(h.Search))
	return g
}

func unitRoutes(h *handler.UnitHandler) *DomainGroup {
	g := NewDomainGroup("unit", "")
	g.POST("/units", handler.WithTenant(h.Create))
	g.PUT("/units", handler.WithTenant(h.Update))
	g.GET("/units", handler.WithTenant(h.List))
	g.GET("/units/count", handler.WithTenant(h.Count))
	g.GET("/units/:id", handler.WithTenant(h.Get))
	g.DELETE("/units/:id", handler.WithTenant(h.Delete))
	g.GET("/_search/units", handler.WithTenant(h.Search))
	return g
}

func userRoutes(h *handler.UserHandler) *DomainGroup {
	g := NewDomainGroup("userManagement", "/users").Use(middleware.RequireAdmin())
	g.POST("", handler.WithTenant(h.Create))
	g.PUT("", handler.WithTenant(h.Update))
	g.GET("", handler.WithTenant(h.List))
	g.GET("/authorities", handler.WithTenant(h.Authorities))
	g.GET("/:login", handler.WithTenant(h.Get))
	g.DELETE("/:login", handler.WithTenant(h.Delete))
	return g
}
