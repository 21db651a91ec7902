package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"stayos/internal/domain"
	"stayos/internal/handler"
	"stayos/internal/metrics"
	"stayos/internal/middleware"
	"stayos/internal/port"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Lead        *handler.LeadHandler
	Resident    *handler.ResidentHandler
	Document    *handler.DocumentHandler
	Studio      *handler.StudioHandler
	Invoice     *handler.InvoiceHandler
	PaymentPlan *handler.PaymentPlanHandler
	Health      *handler.HealthHandler
}

// Deps holds the non-handler collaborators of the router.
type Deps struct {
	Tokens         middleware.TokenValidator
	Tenants        port.TenantRepository
	Metrics        *metrics.Recorder
	Logger         *zap.Logger
	AllowedOrigins []string
	EnableSwagger  bool
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(d Deps, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.CORS(d.AllowedOrigins))
	r.Use(d.Metrics.Middleware())

	// Health checks and metrics
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	if d.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT and an active tenant
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(d.Tokens))
	protected.Use(middleware.TenantGuard(d.Tenants, d.Logger))

	managers := middleware.RequireRole(domain.RoleAdmin, domain.RoleManager)
	admins := middleware.RequireRole(domain.RoleAdmin)

	leads := protected.Group("/leads")
	leads.POST("", h.Lead.Create)
	leads.GET("", h.Lead.List)
	leads.GET("/import/template", h.Lead.Template)
	leads.POST("/import", managers, h.Lead.Import)
	leads.GET("/:id", h.Lead.GetByID)
	leads.PUT("/:id", h.Lead.Update)
	leads.DELETE("/:id", managers, h.Lead.Delete)
	leads.POST("/:id/convert", h.Lead.Convert)

	residents := protected.Group("/residents")
	residents.GET("/audit", managers, h.Resident.Audit)
	residents.POST("/bulk-delete", admins, h.Resident.BulkDelete)
	residents.POST("/:variant", h.Resident.Create)
	residents.GET("/:variant", h.Resident.List)
	residents.PUT("/:variant/bulk", managers, h.Resident.BulkUpdate)
	residents.GET("/:variant/:id", h.Resident.GetByID)
	residents.PUT("/:variant/:id", h.Resident.Update)
	residents.DELETE("/:variant/:id", managers, h.Resident.Delete)
	residents.POST("/:variant/:id/documents", h.Document.Upload)
	residents.GET("/:variant/:id/documents", h.Document.List)

	documents := protected.Group("/documents")
	documents.GET("/:id/download", h.Document.Download)
	documents.DELETE("/:id", managers, h.Document.Delete)

	studios := protected.Group("/studios")
	studios.POST("", managers, h.Studio.Create)
	studios.GET("", h.Studio.List)
	studios.GET("/:id", h.Studio.GetByID)
	studios.PUT("/:id", managers, h.Studio.Update)
	studios.DELETE("/:id", managers, h.Studio.Delete)
	studios.POST("/:id/release", managers, h.Studio.Release)

	invoices := protected.Group("/invoices")
	invoices.GET("", h.Invoice.List)
	invoices.GET("/export", managers, h.Invoice.Export)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.POST("/:id/pay", h.Invoice.MarkPaid)
	invoices.POST("/:id/cancel", managers, h.Invoice.Cancel)
	invoices.POST("/:id/remind", h.Invoice.Remind)

	plans := protected.Group("/payment-plans")
	plans.GET("", h.PaymentPlan.List)
	plans.GET("/:id", h.PaymentPlan.GetByID)
	plans.POST("", managers, h.PaymentPlan.Create)
	plans.PUT("/:id", managers, h.PaymentPlan.Update)
	plans.DELETE("/:id", managers, h.PaymentPlan.Delete)

	return r
}
