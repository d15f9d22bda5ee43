package routes

import (
	"civicpulse-be/controllers"
	"civicpulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the citizen-facing issue routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issues")
	{
		issue.POST("/report",
			middlewares.AuthMiddleware(),
			middlewares.ReportRateLimiter(10),
			controllers.ReportIssue)
		issue.GET("/track/:id", controllers.TrackIssue)
		issue.GET("/mine", middlewares.AuthMiddleware(), controllers.GetMyIssues)
	}
}
