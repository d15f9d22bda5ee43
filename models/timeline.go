package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimelineEntry is one immutable audit record of a status change. Entries
// are only ever appended; there is no update or delete path for them.
type TimelineEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IssueID       string             `bson:"issueId" json:"issueId"`
	Status        IssueStatus        `bson:"status" json:"status"`
	UpdatedBy     primitive.ObjectID `bson:"updatedBy" json:"updatedBy"`
	Remarks       string             `bson:"remarks" json:"remarks"`
	ProofImageURL *string            `bson:"proofImageUrl,omitempty" json:"proofImageUrl,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`

	// Filled in on read from the user directory, never persisted.
	UpdatedByName string `bson:"-" json:"updatedByName,omitempty"`
	UpdatedByRole string `bson:"-" json:"updatedByRole,omitempty"`
}
