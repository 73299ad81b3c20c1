package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freshplate/freshplate-backend/internal/models"
)

// EnsureIndexes creates the indexes the stores rely on. Email uniqueness is
// enforced here in addition to the application-level check so concurrent
// signups cannot race past it.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type MongoRecipeStore struct {
	c *mongo.Collection
}

func NewMongoRecipeStore(db *mongo.Database) *MongoRecipeStore {
	return &MongoRecipeStore{c: db.Collection("recipes")}
}

func (s *MongoRecipeStore) Insert(ctx context.Context, recipe *models.Recipe) error {
	if recipe.ID.IsZero() {
		recipe.ID = primitive.NewObjectID()
	}
	_, err := s.c.InsertOne(ctx, recipe)
	return err
}

func (s *MongoRecipeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *MongoRecipeStore) FindAll(ctx context.Context) ([]models.Recipe, error) {
	cursor, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	recipes := make([]models.Recipe, 0)
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Replace overwrites the whole document. Concurrent updates to the same recipe
// are last-write-wins; no version token is kept.
func (s *MongoRecipeStore) Replace(ctx context.Context, recipe *models.Recipe) error {
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": recipe.ID}, recipe)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoRecipeStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoRecipeStore) UpdateCreator(ctx context.Context, oldName, newName string) (int64, int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"creator": oldName},
		bson.M{"$set": bson.M{"creator": newName}},
	)
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (s *MongoRecipeStore) DeleteByCreator(ctx context.Context, name string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"creator": name})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

type MongoUserStore struct {
	c *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{c: db.Collection("users")}
}

func (s *MongoUserStore) Insert(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := s.c.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) Replace(ctx context.Context, user *models.User) error {
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MongoContactStore struct {
	c *mongo.Collection
}

func NewMongoContactStore(db *mongo.Database) *MongoContactStore {
	return &MongoContactStore{c: db.Collection("contacts")}
}

func (s *MongoContactStore) Insert(ctx context.Context, contact *models.Contact) error {
	if contact.ID.IsZero() {
		contact.ID = primitive.NewObjectID()
	}
	_, err := s.c.InsertOne(ctx, contact)
	return err
}

func (s *MongoContactStore) FindAll(ctx context.Context) ([]models.Contact, error) {
	opts := options.Find().SetSort(bson.M{"created": -1})
	cursor, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	contacts := make([]models.Contact, 0)
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}
