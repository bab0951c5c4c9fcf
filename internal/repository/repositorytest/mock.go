// Package repositorytest provides a testify mock of repository.Repository.
package repositorytest

import (
	"context"

	"github.com/iyhunko/product-catalog/internal/repository"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockRepository is a mock implementation of repository.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, resource repository.Resource) (repository.Resource, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Resource), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]repository.Resource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Resource), args.Error(1)
}

func (m *MockRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, changes repository.Changes) (repository.Resource, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Resource), args.Error(1)
}

func (m *MockRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// AssertNoStoreCalls fails the test if any repository method was invoked.
func (m *MockRepository) AssertNoStoreCalls(t mock.TestingT) bool {
	ok := true
	for _, method := range []string{"Create", "List", "UpdateByID", "DeleteByID"} {
		ok = m.AssertNotCalled(t, method) && ok
	}
	return ok
}
