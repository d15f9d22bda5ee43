package stores

import (
	"context"
	"time"

	"civicpulse-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLinkStore implements CitizenIssueLinkStore on the
// "citizen_issue_links" collection.
type MongoLinkStore struct {
	collection *mongo.Collection
}

func NewMongoLinkStore(db *mongo.Database) *MongoLinkStore {
	return &MongoLinkStore{collection: db.Collection("citizen_issue_links")}
}

func (s *MongoLinkStore) Create(ctx context.Context, citizenID primitive.ObjectID, issueID string) error {
	link := models.CitizenIssueLink{
		ID:         primitive.NewObjectID(),
		Citizen:    citizenID,
		IssueID:    issueID,
		ReportedAt: time.Now(),
	}

	_, err := s.collection.InsertOne(ctx, link)
	return err
}

func (s *MongoLinkStore) FindIssueIDsByCitizen(ctx context.Context, citizenID primitive.ObjectID) ([]string, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "reportedAt", Value: -1}})

	cursor, err := s.collection.Find(ctx, bson.M{"citizen": citizenID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var links []models.CitizenIssueLink
	if err := cursor.All(ctx, &links); err != nil {
		return nil, err
	}

	issueIDs := make([]string, 0, len(links))
	for _, link := range links {
		issueIDs = append(issueIDs, link.IssueID)
	}
	return issueIDs, nil
}
