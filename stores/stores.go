// Package stores holds the persistence contracts the issue engine depends
// on, plus their MongoDB implementations. The engine only ever talks to
// these interfaces; it never caches documents across calls.
package stores

import (
	"context"
	"errors"

	"civicpulse-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a looked-up document does not exist.
var ErrNotFound = errors.New("not found")

// IssueStore is the durable home of issue records.
type IssueStore interface {
	Create(ctx context.Context, issue *models.Issue) error
	FindByID(ctx context.Context, issueID string) (*models.Issue, error)
	// FindNearby returns issues of the given category whose status is in
	// statuses and whose coordinates fall inside the bounding box. At most
	// limit issues are returned.
	FindNearby(ctx context.Context, category models.IssueCategory,
		minLat, maxLat, minLng, maxLng float64,
		statuses []models.IssueStatus, limit int64) ([]models.Issue, error)
	Update(ctx context.Context, issue *models.Issue) error
	// IncrementReportCount adds 1 to the issue's report count as a single
	// store-side operation, never a read-modify-write.
	IncrementReportCount(ctx context.Context, issueID string) error
	FindAll(ctx context.Context) ([]models.Issue, error)
	FindByDepartment(ctx context.Context, deptID primitive.ObjectID) ([]models.Issue, error)
}

// CitizenIssueLinkStore records which citizens reported which issues.
// Links are created once and never updated or deleted.
type CitizenIssueLinkStore interface {
	Create(ctx context.Context, citizenID primitive.ObjectID, issueID string) error
	// FindIssueIDsByCitizen returns the citizen's issue ids, most recent
	// report first.
	FindIssueIDsByCitizen(ctx context.Context, citizenID primitive.ObjectID) ([]string, error)
}

// TimelineStore is the append-only audit trail. There is deliberately no
// update or delete operation on it.
type TimelineStore interface {
	Append(ctx context.Context, entry *models.TimelineEntry) error
	// FindByIssue returns entries oldest first, each enriched with the
	// actor's display name and role where the user directory knows them.
	FindByIssue(ctx context.Context, issueID string) ([]models.TimelineEntry, error)
}

// DepartmentDirectory resolves department reference data.
type DepartmentDirectory interface {
	FindByID(ctx context.Context, deptID primitive.ObjectID) (*models.Department, error)
}
