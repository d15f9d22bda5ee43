package stores

import (
	"context"

	"civicpulse-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoIssueStore implements IssueStore on the "issues" collection.
type MongoIssueStore struct {
	collection *mongo.Collection
}

func NewMongoIssueStore(db *mongo.Database) *MongoIssueStore {
	return &MongoIssueStore{collection: db.Collection("issues")}
}

func (s *MongoIssueStore) Create(ctx context.Context, issue *models.Issue) error {
	_, err := s.collection.InsertOne(ctx, issue)
	return err
}

func (s *MongoIssueStore) FindByID(ctx context.Context, issueID string) (*models.Issue, error) {
	var issue models.Issue
	err := s.collection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &issue, nil
}

func (s *MongoIssueStore) FindNearby(ctx context.Context, category models.IssueCategory,
	minLat, maxLat, minLng, maxLng float64,
	statuses []models.IssueStatus, limit int64) ([]models.Issue, error) {

	filter := bson.M{
		"category":  category,
		"status":    bson.M{"$in": statuses},
		"latitude":  bson.M{"$gte": minLat, "$lte": maxLat},
		"longitude": bson.M{"$gte": minLng, "$lte": maxLng},
	}

	cursor, err := s.collection.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (s *MongoIssueStore) Update(ctx context.Context, issue *models.Issue) error {
	update := bson.M{"$set": bson.M{
		"status":      issue.Status,
		"reportCount": issue.ReportCount,
		"deptId":      issue.DeptID,
		"imageUrl":    issue.ImageURL,
		"resolvedAt":  issue.ResolvedAt,
		"updatedAt":   issue.UpdatedAt,
	}}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": issue.IssueID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementReportCount is a single $inc so concurrent merges onto the same
// issue never lose updates.
func (s *MongoIssueStore) IncrementReportCount(ctx context.Context, issueID string) error {
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": issueID},
		bson.M{"$inc": bson.M{"reportCount": 1}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoIssueStore) FindAll(ctx context.Context) ([]models.Issue, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (s *MongoIssueStore) FindByDepartment(ctx context.Context, deptID primitive.ObjectID) ([]models.Issue, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.collection.Find(ctx, bson.M{"deptId": deptID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}
