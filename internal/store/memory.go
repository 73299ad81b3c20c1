package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshplate/freshplate-backend/internal/models"
)

// In-memory stores backing local development (no MONGODB_URI) and tests.
// They keep insertion order for listing, matching the store-default ordering
// the Mongo implementations exhibit.

type MemoryRecipeStore struct {
	mu      sync.RWMutex
	recipes map[primitive.ObjectID]models.Recipe
	order   []primitive.ObjectID
}

func NewMemoryRecipeStore() *MemoryRecipeStore {
	return &MemoryRecipeStore{recipes: make(map[primitive.ObjectID]models.Recipe)}
}

func (s *MemoryRecipeStore) Insert(_ context.Context, recipe *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if recipe.ID.IsZero() {
		recipe.ID = primitive.NewObjectID()
	}
	s.recipes[recipe.ID] = *recipe
	s.order = append(s.order, recipe.ID)
	return nil
}

func (s *MemoryRecipeStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recipe, ok := s.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &recipe, nil
}

func (s *MemoryRecipeStore) FindAll(_ context.Context) ([]models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Recipe, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.recipes[id])
	}
	return out, nil
}

func (s *MemoryRecipeStore) Replace(_ context.Context, recipe *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[recipe.ID]; !ok {
		return ErrNotFound
	}
	s.recipes[recipe.ID] = *recipe
	return nil
}

func (s *MemoryRecipeStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[id]; !ok {
		return ErrNotFound
	}
	delete(s.recipes, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryRecipeStore) UpdateCreator(_ context.Context, oldName, newName string) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched, modified int64
	for id, recipe := range s.recipes {
		if recipe.Creator != oldName {
			continue
		}
		matched++
		if oldName != newName {
			recipe.Creator = newName
			s.recipes[id] = recipe
			modified++
		}
	}
	return matched, modified, nil
}

func (s *MemoryRecipeStore) DeleteByCreator(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	kept := s.order[:0]
	for _, id := range s.order {
		if s.recipes[id].Creator == name {
			delete(s.recipes, id)
			deleted++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return deleted, nil
}

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *MemoryUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) Replace(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range s.users {
		if id != user.ID && existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type MemoryContactStore struct {
	mu       sync.RWMutex
	contacts []models.Contact
}

func NewMemoryContactStore() *MemoryContactStore {
	return &MemoryContactStore{}
}

func (s *MemoryContactStore) Insert(_ context.Context, contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contact.ID.IsZero() {
		contact.ID = primitive.NewObjectID()
	}
	s.contacts = append(s.contacts, *contact)
	return nil
}

func (s *MemoryContactStore) FindAll(_ context.Context) ([]models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Contact, len(s.contacts))
	copy(out, s.contacts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Created.After(out[j].Created)
	})
	return out, nil
}
