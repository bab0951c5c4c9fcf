package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iyhunko/product-catalog/internal/metrics"
	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/repository"
	"github.com/iyhunko/product-catalog/internal/sqs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Publisher sends product events somewhere outside the service.
type Publisher interface {
	PublishProductMessage(ctx context.Context, msg sqs.ProductMessage) error
}

type ProductService struct {
	repo      repository.Repository
	publisher Publisher
}

// NewProductService wires a service to its repository. publisher may be nil.
func NewProductService(repo repository.Repository, publisher Publisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// ProductUpdate holds the fields a caller asked to change. Nil fields are left untouched.
type ProductUpdate struct {
	Name  *string
	Price *float64
	Image *string
}

// Changes converts the update into a repository change set.
func (u ProductUpdate) Changes() repository.Changes {
	changes := repository.NewChanges()
	if u.Name != nil {
		changes.With(repository.NameField, *u.Name)
	}
	if u.Price != nil {
		changes.With(repository.PriceField, *u.Price)
	}
	if u.Image != nil {
		changes.With(repository.ImageField, *u.Image)
	}
	return changes
}

func (ps *ProductService) CreateProduct(ctx context.Context, name string, price float64, image string) (*model.Product, error) {
	product := &model.Product{
		Name:  name,
		Price: price,
		Image: image,
	}

	created, err := ps.repo.Create(ctx, product)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("create").Inc()
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	createdProduct, ok := created.(*model.Product)
	if !ok {
		return nil, repository.ErrInvalidType
	}

	metrics.ProductsCreated.Inc()
	ps.publish(ctx, productMessage(sqs.ActionCreated, createdProduct))

	return createdProduct, nil
}

func (ps *ProductService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	resources, err := ps.repo.List(ctx)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("list").Inc()
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*model.Product, 0, len(resources))
	for _, resource := range resources {
		product, ok := resource.(*model.Product)
		if !ok {
			return nil, repository.ErrInvalidType
		}
		products = append(products, product)
	}

	return products, nil
}

// UpdateProduct applies update to the product with the given id.
// It returns a nil product and a nil error when no product has that id.
func (ps *ProductService) UpdateProduct(ctx context.Context, id primitive.ObjectID, update ProductUpdate) (*model.Product, error) {
	resource, err := ps.repo.UpdateByID(ctx, id, update.Changes())
	if err != nil {
		metrics.StoreErrors.WithLabelValues("update").Inc()
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if resource == nil {
		return nil, nil
	}

	product, ok := resource.(*model.Product)
	if !ok {
		return nil, repository.ErrInvalidType
	}

	metrics.ProductsUpdated.Inc()
	ps.publish(ctx, productMessage(sqs.ActionUpdated, product))

	return product, nil
}

// DeleteProduct removes the product with the given id. Deleting an absent product succeeds.
func (ps *ProductService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := ps.repo.DeleteByID(ctx, id); err != nil {
		metrics.StoreErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("failed to delete product: %w", err)
	}

	metrics.ProductsDeleted.Inc()
	ps.publish(ctx, sqs.ProductMessage{
		Action:    sqs.ActionDeleted,
		ProductID: id.Hex(),
	})

	return nil
}

func (ps *ProductService) publish(ctx context.Context, msg sqs.ProductMessage) {
	if ps.publisher == nil {
		return
	}
	if err := ps.publisher.PublishProductMessage(ctx, msg); err != nil {
		// Log error but don't fail the request
		slog.Error("Failed to send SQS message", slog.Any("err", err), slog.String("action", msg.Action), slog.String("product_id", msg.ProductID))
	}
}

func productMessage(action string, product *model.Product) sqs.ProductMessage {
	return sqs.ProductMessage{
		Action:    action,
		ProductID: product.ID.Hex(),
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
	}
}
