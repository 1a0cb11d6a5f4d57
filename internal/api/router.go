package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *AuthHandler,
	projectHandler *ProjectHandler,
	metricHandler *MetricHandler,
	measurementHandler *MeasurementHandler,
	stakeholderHandler *StakeholderHandler,
	deliverableHandler *DeliverableHandler,
	jwtSecret string,
) *Router {
	r := gin.Default()
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	// Public
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	// Protected
	auth := v1.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.GET("/auth/me", authHandler.Me)

		auth.POST("/projects", projectHandler.Create)
		auth.GET("/projects", projectHandler.List)
		auth.GET("/projects/:id", projectHandler.Get)
		auth.PUT("/projects/:id", projectHandler.Update)
		auth.DELETE("/projects/:id", projectHandler.Delete)
		auth.GET("/projects/:id/dashboard", projectHandler.Dashboard)
		auth.GET("/portfolio/overview", projectHandler.PortfolioOverview)

		auth.POST("/projects/:id/metrics", metricHandler.Create)
		auth.GET("/projects/:id/metrics", metricHandler.ListByProject)
		auth.GET("/metrics/:id", metricHandler.Get)
		auth.PUT("/metrics/:id", metricHandler.Update)
		auth.DELETE("/metrics/:id", metricHandler.Delete)

		auth.POST("/measurements", measurementHandler.Create)
		auth.GET("/measurements/:id", measurementHandler.Get)
		auth.GET("/metrics/:id/measurements", measurementHandler.ListByMetric)
		auth.GET("/projects/:id/measurements", measurementHandler.ListByProject)
		auth.DELETE("/measurements/:id", measurementHandler.Delete)

		auth.POST("/stakeholders", stakeholderHandler.Create)
		auth.GET("/stakeholders", stakeholderHandler.List)
		auth.GET("/stakeholders/:id", stakeholderHandler.Get)
		auth.PUT("/stakeholders/:id", stakeholderHandler.Update)
		auth.DELETE("/stakeholders/:id", stakeholderHandler.Delete)
		auth.POST("/stakeholders/:id/projects/:project_id", stakeholderHandler.AssignToProject)
		auth.DELETE("/stakeholders/:id/projects/:project_id", stakeholderHandler.RemoveFromProject)

		auth.POST("/projects/:id/deliverables", deliverableHandler.Create)
		auth.GET("/projects/:id/deliverables", deliverableHandler.ListByProject)
		auth.GET("/deliverables/:id", deliverableHandler.Get)
		auth.PUT("/deliverables/:id", deliverableHandler.Update)
		auth.DELETE("/deliverables/:id", deliverableHandler.Delete)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
