package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"costmanager/models"
)

// UserStore is the access boundary for accounts.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user models.User) error
}

type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(client *mongo.Client, database string) *MongoUserStore {
	return &MongoUserStore{col: client.Database(database).Collection("users")}
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) Create(ctx context.Context, user models.User) error {
	_, err := s.col.InsertOne(ctx, user)
	return err
}
