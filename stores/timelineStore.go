package stores

import (
	"context"

	"civicpulse-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTimelineStore implements TimelineStore on the "issue_timeline"
// collection, reading actor names from "users".
type MongoTimelineStore struct {
	collection *mongo.Collection
	users      *mongo.Collection
}

func NewMongoTimelineStore(db *mongo.Database) *MongoTimelineStore {
	return &MongoTimelineStore{
		collection: db.Collection("issue_timeline"),
		users:      db.Collection("users"),
	}
}

func (s *MongoTimelineStore) Append(ctx context.Context, entry *models.TimelineEntry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	_, err := s.collection.InsertOne(ctx, entry)
	return err
}

func (s *MongoTimelineStore) FindByIssue(ctx context.Context, issueID string) ([]models.TimelineEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{"issueId": issueID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.TimelineEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	// Enrich with actor display name and role. A missing user just leaves
	// the fields empty, same as a failed join.
	for i := range entries {
		var actor models.User
		err := s.users.FindOne(ctx, bson.M{"_id": entries[i].UpdatedBy}).Decode(&actor)
		if err == nil {
			entries[i].UpdatedByName = actor.Name
			entries[i].UpdatedByRole = string(actor.Role)
		}
	}

	return entries, nil
}
