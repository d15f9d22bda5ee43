package routes

import (
	"civicpulse-be/controllers"
	"civicpulse-be/middlewares"
	"civicpulse-be/models"

	"github.com/gin-gonic/gin"
)

// DepartmentRoutes sets up the department routes
func DepartmentRoutes(r *gin.Engine) {
	dept := r.Group("/api/department",
		middlewares.AuthMiddleware(),
		middlewares.RequireRole(models.RoleDepartment, models.RoleAdmin))
	{
		dept.GET("/issues", controllers.GetDepartmentIssues)
		dept.PUT("/issues/:id/update", controllers.UpdateIssueStatus)
	}
}
