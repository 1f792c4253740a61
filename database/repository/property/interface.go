package propertyRepo

import (
	"context"
	"errors"

	"spacebook/models"
)

// ErrNotFound indicates no property exists with the given id.
var ErrNotFound = errors.New("property not found")

// PropertyRepository is the property record store. The booking engine
// only reads from it; the catalog handlers also write.
type PropertyRepository interface {
	Insert(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id string) (*models.Property, error)
	List(ctx context.Context) ([]models.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error)
	Delete(ctx context.Context, id string) error
}
