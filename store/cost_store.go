package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"costmanager/models"
)

// CostStore is the access boundary for the cost catalog.
type CostStore interface {
	List(ctx context.Context) ([]models.Cost, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Cost, error)
	GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Cost, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, cost models.Cost) error
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Cost, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoCostStore implements CostStore over the "costs" collection.
type MongoCostStore struct {
	col *mongo.Collection
}

func NewMongoCostStore(client *mongo.Client, database string) *MongoCostStore {
	return &MongoCostStore{col: client.Database(database).Collection("costs")}
}

func (s *MongoCostStore) List(ctx context.Context) ([]models.Cost, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	costs := []models.Cost{}
	if err := cursor.All(ctx, &costs); err != nil {
		return nil, err
	}
	return costs, nil
}

func (s *MongoCostStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Cost, error) {
	var cost models.Cost
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&cost)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cost, nil
}

// GetMany fetches the given ids in one query. Ids that match nothing are
// simply absent from the result map.
func (s *MongoCostStore) GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Cost, error) {
	byID := make(map[primitive.ObjectID]models.Cost, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var costs []models.Cost
	if err := cursor.All(ctx, &costs); err != nil {
		return nil, err
	}
	for _, c := range costs {
		byID[c.ID] = c
	}
	return byID, nil
}

func (s *MongoCostStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	err := s.col.FindOne(ctx, bson.M{"name": name}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MongoCostStore) Create(ctx context.Context, cost models.Cost) error {
	_, err := s.col.InsertOne(ctx, cost)
	return err
}

func (s *MongoCostStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Cost, error) {
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *MongoCostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
