package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"civicpulse-be/config"
	"civicpulse-be/models"
	"civicpulse-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var issueService *services.IssueService

// SetIssueService wires the controller to the engine. Called once from main.
func SetIssueService(svc *services.IssueService) {
	issueService = svc
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func actorFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return primitive.NilObjectID, false
	}

	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return objID, true
}

// ReportIssue handles a citizen submission with duplicate detection. Accepts
// multipart form data so an image can ride along with the report.
func ReportIssue(c *gin.Context) {
	citizenID, ok := actorFromContext(c)
	if !ok {
		return
	}

	category := c.PostForm("category")
	address := c.PostForm("address")
	description := c.PostForm("description")

	latitude, latErr := strconv.ParseFloat(c.PostForm("latitude"), 64)
	longitude, lngErr := strconv.ParseFloat(c.PostForm("longitude"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}

	var imageURL *string
	if file, err := c.FormFile("image"); err == nil && file.Size > 0 {
		uploadDir := os.Getenv("UPLOAD_DIR")
		if uploadDir == "" {
			uploadDir = "./uploads"
		}
		fileName := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, fileName)); err != nil {
			log.Println("Error saving uploaded image:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
			return
		}
		url := "/uploads/" + fileName
		imageURL = &url
	}

	issue := &models.Issue{
		Category:    models.IssueCategory(category),
		Latitude:    latitude,
		Longitude:   longitude,
		Address:     address,
		Description: description,
		ImageURL:    imageURL,
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := issueService.ReportIssue(ctx, issue, citizenID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCategory),
			errors.Is(err, services.ErrInvalidCoordinates):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Println("Error reporting issue:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to report issue"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// TrackIssue returns an issue with its full timeline. Public, so citizens
// can follow an issue by id without logging in.
func TrackIssue(c *gin.Context) {
	issueID := c.Param("id")
	if issueID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Issue ID is required"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	details, err := issueService.GetIssueDetails(ctx, issueID)
	if err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			log.Println("Error fetching issue:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch issue"})
		}
		return
	}

	c.JSON(http.StatusOK, details)
}

// GetMyIssues returns the authenticated citizen's reported issues,
// most recent report first.
func GetMyIssues(c *gin.Context) {
	citizenID, ok := actorFromContext(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	issues, err := issueService.GetCitizenIssues(ctx, citizenID)
	if err != nil {
		log.Println("Error fetching citizen issues:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}

// GetAllIssues returns every issue, newest first. Admin only.
func GetAllIssues(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	issues, err := issueService.GetAllIssues(ctx)
	if err != nil {
		log.Println("Error fetching issues:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}

// AssignIssue assigns an issue to a department. Admin only.
func AssignIssue(c *gin.Context) {
	adminID, ok := actorFromContext(c)
	if !ok {
		return
	}

	var input struct {
		DeptID string `json:"deptId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deptID, err := primitive.ObjectIDFromHex(input.DeptID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := issueService.AssignToDepartment(ctx, c.Param("id"), deptID, adminID); err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			log.Println("Error assigning issue:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign issue"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue assigned successfully"})
}

// UpdateIssueStatus transitions an issue's status with remarks and an
// optional proof image reference. Department or admin.
func UpdateIssueStatus(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	var input struct {
		Status        string  `json:"status" binding:"required"`
		Remarks       string  `json:"remarks"`
		ProofImageURL *string `json:"proofImageUrl,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	err := issueService.UpdateIssueStatus(ctx, c.Param("id"),
		models.IssueStatus(input.Status), actorID, input.Remarks, input.ProofImageURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIssueNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		case errors.Is(err, services.ErrInvalidStatus),
			errors.Is(err, services.ErrTransitionNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Println("Error updating issue status:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue updated successfully"})
}

// GetDepartmentIssues lists the issues assigned to the authenticated
// department user's department.
func GetDepartmentIssues(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var user models.User
	err := config.GetCollection("users").FindOne(ctx, bson.M{"_id": actorID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.DeptID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User has no department"})
		return
	}

	issues, err := issueService.GetDepartmentIssues(ctx, *user.DeptID)
	if err != nil {
		log.Println("Error fetching department issues:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}

// GetIssueAnalytics returns counts over the whole issue population. Admin
// only; recomputed on every call.
func GetIssueAnalytics(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	analytics, err := issueService.GetAnalytics(ctx)
	if err != nil {
		log.Println("Error computing analytics:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, analytics)
}
