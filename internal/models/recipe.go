package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipeImage holds an uploaded photo inline in the recipe document.
// Data marshals to base64 in JSON, which is the transport encoding the client expects.
type RecipeImage struct {
	Data        []byte `bson:"data,omitempty" json:"data,omitempty"`
	ContentType string `bson:"contentType,omitempty" json:"contentType,omitempty"`
}

type Recipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title        string             `bson:"title" json:"title"`
	Ingredients  string             `bson:"ingredients" json:"ingredients"`
	Instructions string             `bson:"instructions" json:"instructions"`

	// Creator is the owning user's name, copied at creation time. Renaming a user
	// must go through the updateCreator cascade to keep this consistent.
	Creator string `bson:"creator" json:"creator"`

	Preptime *int `bson:"preptime,omitempty" json:"preptime,omitempty"`
	Cooktime *int `bson:"cooktime,omitempty" json:"cooktime,omitempty"`
	Servings *int `bson:"servings,omitempty" json:"servings,omitempty"`

	Image RecipeImage `bson:"image,omitempty" json:"image,omitempty"`

	Created time.Time `bson:"created" json:"created"`
	Updated time.Time `bson:"updated" json:"updated"`
}

func (r *Recipe) HasImage() bool {
	return len(r.Image.Data) > 0
}
