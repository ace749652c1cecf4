// internal/domain/catalog/lookup.go
package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product id has no catalog record.
// Callers must treat it differently from a failed query: absence is proof,
// a failed query is not.
var ErrProductNotFound = errors.New("product not found")

// Lookup is the read-only catalog access consumed by the cart engine
type Lookup struct {
	db *gorm.DB
}

// NewLookup creates a catalog lookup over the given database
func NewLookup(db *gorm.DB) *Lookup {
	return &Lookup{db: db}
}

// GetProduct resolves a single active product by id. Returns
// ErrProductNotFound when no active record exists.
func (l *Lookup) GetProduct(ctx context.Context, id string) (*Product, error) {
	var prod Product
	err := l.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&prod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("catalog query for product %s: %w", id, err)
	}
	return &prod, nil
}

// GetProductsByIDs resolves each id independently against active products
// and returns the ones that exist plus a map of ids whose lookup errored.
// Ids absent from both maps are confirmed unavailable, deactivated listings
// included, matching GetProduct. When every lookup errors the whole call
// fails, since nothing could be verified.
func (l *Lookup) GetProductsByIDs(ctx context.Context, ids []string) (map[string]*Product, map[string]error, error) {
	found := make(map[string]*Product, len(ids))
	failed := make(map[string]error)

	for _, id := range ids {
		var prod Product
		err := l.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&prod).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			failed[id] = err
			continue
		}
		p := prod
		found[id] = &p
	}

	if len(ids) > 0 && len(failed) == len(ids) {
		return nil, nil, fmt.Errorf("catalog batch lookup failed for all %d ids: %w", len(ids), firstError(failed))
	}

	return found, failed, nil
}

func firstError(m map[string]error) error {
	for _, err := range m {
		return err
	}
	return nil
}
