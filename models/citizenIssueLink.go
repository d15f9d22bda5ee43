package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CitizenIssueLink records that a citizen reported a given issue, whether
// that report created the issue or merged into it. No unique index is put
// on (citizen, issue): a citizen reporting the same issue twice produces
// two links, which preserves report provenance.
type CitizenIssueLink struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Citizen    primitive.ObjectID `bson:"citizen" json:"citizen"`
	IssueID    string             `bson:"issueId" json:"issueId"`
	ReportedAt time.Time          `bson:"reportedAt" json:"reportedAt"`
}
