package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"costmanager/models"
)

// ProductStore is the access boundary for products and their embedded
// cost lines. Line mutations go through Replace, a whole-document write,
// so last write wins on concurrent edits to the same list.
type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, product models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Product, error)
	Replace(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByCost(ctx context.Context, costID primitive.ObjectID) ([]models.Product, error)
}

// MongoProductStore implements ProductStore over the "products" collection.
type MongoProductStore struct {
	col *mongo.Collection
}

func NewMongoProductStore(client *mongo.Client, database string) *MongoProductStore {
	return &MongoProductStore{col: client.Database(database).Collection("products")}
}

func (s *MongoProductStore) List(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MongoProductStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *MongoProductStore) Create(ctx context.Context, product models.Product) error {
	_, err := s.col.InsertOne(ctx, product)
	return err
}

func (s *MongoProductStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Product, error) {
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Replace persists the whole product document, cost lines included.
func (s *MongoProductStore) Replace(ctx context.Context, product models.Product) error {
	result, err := s.col.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByCost returns every product whose cost list references the given
// catalog cost. No match is an empty slice, not an error.
func (s *MongoProductStore) FindByCost(ctx context.Context, costID primitive.ObjectID) ([]models.Product, error) {
	cursor, err := s.col.Find(ctx, bson.M{"costs.cost": costID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
