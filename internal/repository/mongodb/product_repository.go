package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ProductsCollection is the collection product documents live in.
const ProductsCollection = "products"

// ProductRepository implements the Repository interface for Product entities.
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(ProductsCollection)}
}

// Create inserts a new product into the collection.
func (r *ProductRepository) Create(ctx context.Context, resource repository.Resource) (repository.Resource, error) {
	product, ok := resource.(*model.Product)
	if !ok {
		return nil, fmt.Errorf("resource must be a *model.Product: %w", repository.ErrInvalidType)
	}

	// Only initialize metadata if not already set
	if product.ID.IsZero() {
		product.InitMeta()
	}

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return product, nil
}

// List returns every product in the collection's natural order.
func (r *ProductRepository) List(ctx context.Context) ([]repository.Resource, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]repository.Resource, 0)
	for cursor.Next(ctx) {
		var product model.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, &product)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cursor: %w", err)
	}

	return products, nil
}

// UpdateByID sets the given fields on a product and returns it as stored after the write.
func (r *ProductRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, changes repository.Changes) (repository.Resource, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product model.Product
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: string(repository.IDField), Value: id}}, setDocument(changes), opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			slog.Debug("no product matched update", slog.String("product_id", id.Hex()))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

// setDocument builds the $set stage. Identity and creation time are never written,
// and updatedAt is always refreshed.
func setDocument(changes repository.Changes) bson.D {
	fields := make([]repository.Field, 0, len(changes))
	for field := range changes {
		switch field {
		case repository.IDField, repository.CreatedAtField, repository.UpdatedAtField:
			continue
		}
		fields = append(fields, field)
	}
	slices.Sort(fields)

	set := make(bson.D, 0, len(fields)+1)
	for _, field := range fields {
		set = append(set, bson.E{Key: string(field), Value: changes[field]})
	}
	set = append(set, bson.E{Key: string(repository.UpdatedAtField), Value: model.Now()})

	return bson.D{{Key: "$set", Value: set}}
}

// DeleteByID deletes a product by ID. A missing product is not an error.
func (r *ProductRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.D{{Key: string(repository.IDField), Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		slog.Debug("no product matched delete", slog.String("product_id", id.Hex()))
	}

	return nil
}

// Ping checks that the primary is reachable.
func (r *ProductRepository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
