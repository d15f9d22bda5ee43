package stores

import (
	"context"

	"civicpulse-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDepartmentStore implements DepartmentDirectory on the "departments"
// collection. Only active departments resolve.
type MongoDepartmentStore struct {
	collection *mongo.Collection
}

func NewMongoDepartmentStore(db *mongo.Database) *MongoDepartmentStore {
	return &MongoDepartmentStore{collection: db.Collection("departments")}
}

func (s *MongoDepartmentStore) FindByID(ctx context.Context, deptID primitive.ObjectID) (*models.Department, error) {
	var dept models.Department
	err := s.collection.FindOne(ctx, bson.M{"_id": deptID, "isActive": true}).Decode(&dept)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dept, nil
}
