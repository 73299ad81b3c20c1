package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshplate/freshplate-backend/internal/models"
)

func seedRecipes(t *testing.T, s *MemoryRecipeStore, creators ...string) []*models.Recipe {
	t.Helper()
	out := make([]*models.Recipe, 0, len(creators))
	for i, creator := range creators {
		r := &models.Recipe{
			Title:        "Recipe " + string(rune('A'+i)),
			Ingredients:  "water",
			Instructions: "boil",
			Creator:      creator,
		}
		require.NoError(t, s.Insert(context.Background(), r))
		out = append(out, r)
	}
	return out
}

func TestMemoryRecipeStore_CRUD(t *testing.T) {
	s := NewMemoryRecipeStore()
	ctx := context.Background()

	r := &models.Recipe{Title: "Soup", Creator: "alice"}
	require.NoError(t, s.Insert(ctx, r))
	require.False(t, r.ID.IsZero())

	got, err := s.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", got.Title)

	// returned copy does not alias stored state
	got.Title = "mutated"
	again, err := s.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", again.Title)

	r.Title = "Soup v2"
	require.NoError(t, s.Replace(ctx, r))
	got, err = s.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup v2", got.Title)

	require.NoError(t, s.Delete(ctx, r.ID))
	_, err = s.FindByID(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, r.ID), ErrNotFound)
	assert.ErrorIs(t, s.Replace(ctx, r), ErrNotFound)
	_, err = s.FindByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRecipeStore_FindAllKeepsInsertionOrder(t *testing.T) {
	s := NewMemoryRecipeStore()
	seeded := seedRecipes(t, s, "alice", "bob", "alice")

	all, err := s.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, r := range all {
		assert.Equal(t, seeded[i].ID, r.ID)
	}
}

func TestMemoryRecipeStore_UpdateCreator(t *testing.T) {
	s := NewMemoryRecipeStore()
	seedRecipes(t, s, "alice", "bob", "alice", "alice")
	ctx := context.Background()

	matched, modified, err := s.UpdateCreator(ctx, "alice", "alicia")
	require.NoError(t, err)
	assert.EqualValues(t, 3, matched)
	assert.EqualValues(t, 3, modified)

	// no recipe keeps the old name
	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	for _, r := range all {
		assert.NotEqual(t, "alice", r.Creator)
	}

	// unknown creator matches nothing
	matched, modified, err = s.UpdateCreator(ctx, "alice", "whoever")
	require.NoError(t, err)
	assert.Zero(t, matched)
	assert.Zero(t, modified)

	// same old and new name matches without modifying
	matched, modified, err = s.UpdateCreator(ctx, "bob", "bob")
	require.NoError(t, err)
	assert.EqualValues(t, 1, matched)
	assert.Zero(t, modified)
}

func TestMemoryRecipeStore_DeleteByCreator(t *testing.T) {
	s := NewMemoryRecipeStore()
	seedRecipes(t, s, "alice", "bob", "alice")
	ctx := context.Background()

	deleted, err := s.DeleteByCreator(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "bob", all[0].Creator)

	deleted, err = s.DeleteByCreator(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestMemoryUserStore_EmailUniqueness(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	alice := &models.User{Name: "alice", Email: "alice@example.com"}
	require.NoError(t, s.Insert(ctx, alice))

	dup := &models.User{Name: "other", Email: "alice@example.com"}
	assert.ErrorIs(t, s.Insert(ctx, dup), ErrDuplicateEmail)

	bob := &models.User{Name: "bob", Email: "bob@example.com"}
	require.NoError(t, s.Insert(ctx, bob))

	// replacing bob with alice's email collides too
	bob.Email = "alice@example.com"
	assert.ErrorIs(t, s.Replace(ctx, bob), ErrDuplicateEmail)

	// replacing with the user's own email is fine
	alice.Name = "alicia"
	require.NoError(t, s.Replace(ctx, alice))

	got, err := s.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alicia", got.Name)

	_, err = s.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserStore_Delete(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	alice := &models.User{Name: "alice", Email: "alice@example.com"}
	require.NoError(t, s.Insert(ctx, alice))
	require.NoError(t, s.Delete(ctx, alice.ID))

	_, err := s.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, alice.ID), ErrNotFound)
}

func TestMemoryContactStore_NewestFirst(t *testing.T) {
	s := NewMemoryContactStore()
	ctx := context.Background()

	base := time.Now()
	for i, name := range []string{"first", "second", "third"} {
		c := &models.Contact{
			Name:    name,
			Email:   name + "@example.com",
			Message: "hello",
			Created: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.Insert(ctx, c))
	}

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Name)
	assert.Equal(t, "second", all[1].Name)
	assert.Equal(t, "first", all[2].Name)
}
