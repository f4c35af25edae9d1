// Package mocks provides testify mocks for the conversion collaborators.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/knudmoeller/solar-system-rdf/api/schemas"
	"github.com/knudmoeller/solar-system-rdf/internal/rdf"
)

// -- Image Metadata Resolver Mock --

// MockResolver mocks the schemas.ImageMetadataResolver interface.
type MockResolver struct {
	mock.Mock
}

var _ schemas.ImageMetadataResolver = (*MockResolver)(nil)

// Resolve provides a mock function for metadata lookups.
func (m *MockResolver) Resolve(ctx context.Context, imageName string) (*schemas.ImageMetadata, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	args := m.Called(ctx, imageName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schemas.ImageMetadata), args.Error(1)
}

// -- Graph Store Mock --

// MockGraphStore mocks the graph persistence backend.
type MockGraphStore struct {
	mock.Mock
}

var _ schemas.GraphStore = (*MockGraphStore)(nil)

// SaveGraph provides a mock function for graph persistence.
func (m *MockGraphStore) SaveGraph(ctx context.Context, runID string, g *rdf.Graph) error {
	return m.Called(ctx, runID, g).Error(0)
}

// Stats provides a mock function for reading aggregate counts.
func (m *MockGraphStore) Stats(ctx context.Context) (schemas.GraphStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(schemas.GraphStats), args.Error(1)
}
