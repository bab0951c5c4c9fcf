// Package memory keeps products in process memory. It backs tests that need
// real create/list/update/delete behavior without a database.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepository is an in-memory implementation of repository.Repository.
// Products are listed in insertion order.
type ProductRepository struct {
	mu       sync.RWMutex
	order    []primitive.ObjectID
	products map[primitive.ObjectID]model.Product
}

// NewProductRepository creates an empty repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[primitive.ObjectID]model.Product),
	}
}

func (r *ProductRepository) Create(_ context.Context, resource repository.Resource) (repository.Resource, error) {
	product, ok := resource.(*model.Product)
	if !ok {
		return nil, fmt.Errorf("resource must be a *model.Product: %w", repository.ErrInvalidType)
	}
	if product.ID.IsZero() {
		product.InitMeta()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; exists {
		return nil, fmt.Errorf("product %s already exists", product.ID.Hex())
	}
	r.products[product.ID] = *product
	r.order = append(r.order, product.ID)

	stored := *product
	return &stored, nil
}

func (r *ProductRepository) List(_ context.Context) ([]repository.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]repository.Resource, 0, len(r.order))
	for _, id := range r.order {
		product := r.products[id]
		products = append(products, &product)
	}
	return products, nil
}

func (r *ProductRepository) UpdateByID(_ context.Context, id primitive.ObjectID, changes repository.Changes) (repository.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}

	for field, val := range changes {
		switch field {
		case repository.NameField:
			product.Name = val.(string)
		case repository.PriceField:
			product.Price = val.(float64)
		case repository.ImageField:
			product.Image = val.(string)
		}
	}
	product.UpdatedAt = model.Now()
	r.products[id] = product

	return &product, nil
}

func (r *ProductRepository) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return nil
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Ping always succeeds.
func (r *ProductRepository) Ping(_ context.Context) error {
	return nil
}
