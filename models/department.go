package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Department is read-mostly reference data used to resolve assignment
// remarks; the issue engine never mutates it.
type Department struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Category     IssueCategory      `bson:"category" json:"category"`
	ContactEmail string             `bson:"contactEmail" json:"contactEmail"`
	ContactPhone string             `bson:"contactPhone" json:"contactPhone"`
	Active       bool               `bson:"isActive" json:"isActive"`
}
