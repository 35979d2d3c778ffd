package products

import (
	"context"
)

// Catalog is the product store contract the editor depends on.
type Catalog interface {
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Update(ctx context.Context, id string, in ProductUpdate) error
}
