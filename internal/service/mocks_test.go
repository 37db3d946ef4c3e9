package service_test

import (
	"context"

	"equipment-rental-manager/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockDocumentStore
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Load(ctx context.Context) (domain.Database, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Database), args.Error(1)
}
func (m *MockDocumentStore) Save(ctx context.Context, db domain.Database) error {
	args := m.Called(ctx, db)
	return args.Error(0)
}
func (m *MockDocumentStore) ReadRaw(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockDocumentStore) WriteRaw(ctx context.Context, data []byte) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

// savedDatabase returns the argument of the n-th Save call.
func (m *MockDocumentStore) savedDatabase(n int) domain.Database {
	count := 0
	for _, call := range m.Calls {
		if call.Method != "Save" {
			continue
		}
		if count == n {
			return call.Arguments.Get(1).(domain.Database)
		}
		count++
	}
	panic("no such Save call")
}
