package productclient

import (
	"context"
	"errors"
	"sync"
)

// MsgProductCreated is the result message of a successful CreateProduct.
const MsgProductCreated = "Product created successfully"

// Result reports the outcome of a Store operation.
type Result struct {
	Success bool
	Message string
}

// Store keeps a Catalog in step with the server. Each successful call
// replaces the catalog with the reducer's output.
type Store struct {
	client *Client

	mu      sync.RWMutex
	catalog Catalog
}

// NewStore creates a store with an empty catalog.
func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// Catalog returns the current catalog.
func (s *Store) Catalog() Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

func (s *Store) apply(reduce func(Catalog) Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = reduce(s.catalog)
}

// FetchProducts loads the full list from the server.
func (s *Store) FetchProducts(ctx context.Context) error {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return err
	}
	s.apply(func(c Catalog) Catalog { return c.WithProducts(products) })
	return nil
}

// CreateProduct creates p and appends it to the catalog.
func (s *Store) CreateProduct(ctx context.Context, p NewProduct) Result {
	created, err := s.client.CreateProduct(ctx, p)
	if err != nil {
		return failure(err)
	}
	s.apply(func(c Catalog) Catalog { return c.Add(*created) })
	return Result{Success: true, Message: MsgProductCreated}
}

// UpdateProduct updates the product and replaces it in the catalog.
// A product the server no longer has is left as it is.
func (s *Store) UpdateProduct(ctx context.Context, id string, update ProductUpdate) Result {
	updated, err := s.client.UpdateProduct(ctx, id, update)
	if err != nil {
		return failure(err)
	}
	if updated != nil {
		s.apply(func(c Catalog) Catalog { return c.Replace(id, *updated) })
	}
	return Result{Success: true}
}

// DeleteProduct deletes the product and removes it from the catalog.
func (s *Store) DeleteProduct(ctx context.Context, id string) Result {
	message, err := s.client.DeleteProduct(ctx, id)
	if err != nil {
		return failure(err)
	}
	s.apply(func(c Catalog) Catalog { return c.Remove(id) })
	return Result{Success: true, Message: message}
}

func failure(err error) Result {
	if errors.Is(err, ErrMissingFields) {
		return Result{Message: MsgFillAllFields}
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return Result{Message: apiErr.Message}
	}
	return Result{Message: err.Error()}
}
