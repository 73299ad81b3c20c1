package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshplate/freshplate-backend/internal/models"
)

var (
	// ErrNotFound is returned when a lookup does not resolve to a stored record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when inserting a user whose email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// RecipeStore is the persistence contract for recipes. The bulk creator
// operations are part of the public contract because the account lifecycle
// flow depends on them to keep the denormalized creator field consistent.
type RecipeStore interface {
	Insert(ctx context.Context, recipe *models.Recipe) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error)
	FindAll(ctx context.Context) ([]models.Recipe, error)
	Replace(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// UpdateCreator reassigns every recipe owned by oldName to newName and
	// reports how many documents matched and how many were modified.
	UpdateCreator(ctx context.Context, oldName, newName string) (matched, modified int64, err error)

	// DeleteByCreator removes every recipe owned by name and reports the count.
	DeleteByCreator(ctx context.Context, name string) (int64, error)
}

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Replace(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ContactStore interface {
	Insert(ctx context.Context, contact *models.Contact) error
	FindAll(ctx context.Context) ([]models.Contact, error)
}
