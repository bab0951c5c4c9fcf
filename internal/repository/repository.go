package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInvalidType is returned when a resource is not of the type a repository stores.
	ErrInvalidType = errors.New("invalid resource type")
)

// Repository defines the interface for a generic repository that can manage resources.
type Repository interface {
	Create(ctx context.Context, resource Resource) (result Resource, err error)
	List(ctx context.Context) (result []Resource, err error)
	// UpdateByID applies changes and returns the stored resource after the write.
	// A nil result with a nil error means no resource has that id.
	UpdateByID(ctx context.Context, id primitive.ObjectID, changes Changes) (result Resource, err error)
	// DeleteByID removes the resource if present. Deleting an absent id is not an error.
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Resource represents a generic resource that can be managed by the repository.
type Resource interface {
	InitMeta()
}

// Field names a stored document field.
type Field string

const (
	IDField        Field = "_id"
	NameField      Field = "name"
	PriceField     Field = "price"
	ImageField     Field = "image"
	CreatedAtField Field = "createdAt"
	UpdatedAtField Field = "updatedAt"
)

// Changes is a partial update: only the listed fields are written.
type Changes map[Field]any

// NewChanges returns an empty change set.
func NewChanges() Changes {
	return Changes{}
}

// With sets field to val and returns the change set for chaining.
func (c Changes) With(field Field, val any) Changes {
	c[field] = val
	return c
}
