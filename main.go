package main

import (
	"log"
	"net/http"
	"os"

	"civicpulse-be/config"
	"civicpulse-be/controllers"
	"civicpulse-be/routes"
	"civicpulse-be/services"
	"civicpulse-be/stores"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}
	config.ConnectRedis()

	log.Println("MongoDB connection established successfully!")

	issueService := services.NewIssueService(
		stores.NewMongoIssueStore(db),
		stores.NewMongoLinkStore(db),
		stores.NewMongoTimelineStore(db),
		stores.NewMongoDepartmentStore(db),
	)
	controllers.SetIssueService(issueService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.AdminRoutes(r)
	routes.DepartmentRoutes(r)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
