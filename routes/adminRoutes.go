package routes

import (
	"civicpulse-be/controllers"
	"civicpulse-be/middlewares"
	"civicpulse-be/models"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the admin routes
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin",
		middlewares.AuthMiddleware(),
		middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/issues", controllers.GetAllIssues)
		admin.PUT("/issues/:id/assign", controllers.AssignIssue)
		admin.GET("/analytics", controllers.GetIssueAnalytics)
	}
}
