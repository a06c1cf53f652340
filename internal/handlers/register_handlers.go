package handlers

import (
	"sync"
	"time"

	"github.com/SscSPs/teamops_backend/cmd/docs"
	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/middleware"
	"github.com/SscSPs/teamops_backend/internal/platform/config"
	"github.com/SscSPs/teamops_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps carries the optional collaborators of the HTTP layer. Nil fields disable the
// corresponding feature.
type RouteDeps struct {
	LoginLimiter *limiter.Limiter
	Posthog      *utils.PosthogClientWrapper
	Registry     *prometheus.Registry
}

var bindingOnce sync.Once

// useJSONFieldNames makes gin's binding errors name fields the way clients send them.
func useJSONFieldNames() {
	bindingOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			utils.UseJSONFieldNames(v)
		}
	})
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	useJSONFieldNames()

	if deps.Registry != nil {
		r.GET("/metrics", middleware.MetricsHandler(deps.Registry))
	}

	api := r.Group("/api")

	health := &healthHandler{healthService: services.Health, startedAt: time.Now().UTC()}
	api.GET("/health", health.health)

	// Public authentication routes
	registerAuthRoutes(api, cfg, services.Auth, deps)

	setupProtectedRoutes(api, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupProtectedRoutes applies the auth middleware and delegates to the entity route registrations.
func setupProtectedRoutes(api *gin.RouterGroup, services *portssvc.ServiceContainer, deps RouteDeps) {
	protected := api.Group("", middleware.AuthMiddleware(services.Auth), middleware.PosthogMiddleware(deps.Posthog))

	registerUserRoutes(protected, services.User)
	registerProjectRoutes(protected, services.Project)
	registerKpiRoutes(protected, services.Kpi)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
