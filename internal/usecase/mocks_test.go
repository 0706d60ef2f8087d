package usecase_test

import (
	"context"
	"time"

	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain"
	"github.com/TheSurfingCoder/CourtPulse-sub000/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

// MockGeocoderRepository is a mock of GeocoderRepository
type MockGeocoderRepository struct {
	mock.Mock
}

func (m *MockGeocoderRepository) Search(ctx context.Context, q repository.SearchQuery) ([]*domain.FacilityCandidate, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FacilityCandidate), args.Error(1)
}

func (m *MockGeocoderRepository) SearchBBox(ctx context.Context, term string, bbox domain.BoundingBox, limit int) ([]*domain.FacilityCandidate, error) {
	args := m.Called(ctx, term, bbox, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FacilityCandidate), args.Error(1)
}

func (m *MockGeocoderRepository) Reverse(ctx context.Context, lat, lon float64) (*domain.ReversePlace, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReversePlace), args.Error(1)
}

// MockCourtRepository is a mock of CourtRepository
type MockCourtRepository struct {
	mock.Mock
}

func (m *MockCourtRepository) UpsertBatch(ctx context.Context, courts []*domain.Court) (*repository.CourtBatchResult, error) {
	args := m.Called(ctx, courts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CourtBatchResult), args.Error(1)
}

func (m *MockCourtRepository) GetNameSportGroups(ctx context.Context) ([]repository.NameSportGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.NameSportGroup), args.Error(1)
}

func (m *MockCourtRepository) UpdateIndividualNames(ctx context.Context, updates []repository.IndividualNameUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}
