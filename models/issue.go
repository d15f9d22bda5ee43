package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	Road        IssueCategory = "ROAD"
	Water       IssueCategory = "WATER"
	Sanitation  IssueCategory = "SANITATION"
	Electricity IssueCategory = "ELECTRICITY"
)

// Valid reports whether the category is one of the known civic categories.
func (c IssueCategory) Valid() bool {
	switch c {
	case Road, Water, Sanitation, Electricity:
		return true
	}
	return false
}

// IssueStatus enum
type IssueStatus string

const (
	Reported   IssueStatus = "REPORTED"
	Assigned   IssueStatus = "ASSIGNED"
	InProgress IssueStatus = "IN_PROGRESS"
	Resolved   IssueStatus = "RESOLVED"
)

// Valid reports whether the status is one of the lifecycle states.
func (s IssueStatus) Valid() bool {
	switch s {
	case Reported, Assigned, InProgress, Resolved:
		return true
	}
	return false
}

// Issue represents a tracked civic issue. The issue ID is the generated
// CIVIC-... identifier and doubles as the document key; it never changes
// once assigned.
type Issue struct {
	IssueID     string              `bson:"_id" json:"issueId"`
	Category    IssueCategory       `bson:"category" json:"category"`
	Latitude    float64             `bson:"latitude" json:"latitude"`
	Longitude   float64             `bson:"longitude" json:"longitude"`
	Address     string              `bson:"address" json:"address"`
	Description string              `bson:"description" json:"description"`
	Status      IssueStatus         `bson:"status" json:"status"`
	ReportCount int                 `bson:"reportCount" json:"reportCount"`
	DeptID      *primitive.ObjectID `bson:"deptId,omitempty" json:"deptId,omitempty"`
	ImageURL    *string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
	ResolvedAt  *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}
