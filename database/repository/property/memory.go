package propertyRepo

import (
	"context"
	"sort"
	"sync"

	"spacebook/models"
)

// MemoryPropertyRepo is an in-memory PropertyRepository for tests and
// local runs without MongoDB.
type MemoryPropertyRepo struct {
	mu         sync.RWMutex
	properties map[string]models.Property
}

// NewMemoryPropertyRepo returns an empty in-memory repository.
func NewMemoryPropertyRepo() *MemoryPropertyRepo {
	return &MemoryPropertyRepo{properties: make(map[string]models.Property)}
}

func (repo *MemoryPropertyRepo) Insert(ctx context.Context, property *models.Property) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.properties[property.ID] = *property
	return nil
}

func (repo *MemoryPropertyRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	property, ok := repo.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &property, nil
}

func (repo *MemoryPropertyRepo) List(ctx context.Context) ([]models.Property, error) {
	return repo.filter(func(models.Property) bool { return true }), nil
}

func (repo *MemoryPropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	return repo.filter(func(p models.Property) bool { return p.OwnerID == ownerID }), nil
}

func (repo *MemoryPropertyRepo) Delete(ctx context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.properties[id]; !ok {
		return ErrNotFound
	}
	delete(repo.properties, id)
	return nil
}

func (repo *MemoryPropertyRepo) filter(keep func(models.Property) bool) []models.Property {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var out []models.Property
	for _, p := range repo.properties {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
