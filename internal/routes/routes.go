package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"importony_back_end/internal/handlers/admin"
	"importony_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, h *admin.Handler) {
	r.Use(middleware.RequestID())

	// Exposition Prometheus
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Mutations du catalogue (tenant obligatoire)
	api := r.Group("/admin", middleware.Tenant())
	api.POST("/products", h.CreateProduct)
	api.PUT("/products/:id", h.UpdateProduct)
}
