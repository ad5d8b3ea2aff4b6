package pricing_test

import (
	"context"
	"testing"

	"github.com/chris/subsidy-redemptions/pkg/pricing"
	"github.com/chris/subsidy-redemptions/pkg/pricing/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPriceForContent(t *testing.T) {
	customerUUID := uuid.New()
	contentKey := "course-v1:edX+DemoX+Demo"

	pricedMetadata := &pricing.ContentMetadata{
		Key: contentKey,
		CourseRuns: []pricing.CourseRun{
			{Key: contentKey, FirstEnrollablePaidSeatPrice: "149.00", IsEnrollable: true},
		},
	}

	t.Run("Caches Successful Lookups", func(t *testing.T) {
		mockFetcher := new(mocks.MetadataFetcher)
		resolver := pricing.NewResolver(mockFetcher, 0)

		mockFetcher.On("GetContentMetadata", mock.Anything, customerUUID, contentKey).
			Once().Return(pricedMetadata, nil)

		for i := 0; i < 3; i++ {
			price, err := resolver.PriceForContent(context.Background(), customerUUID, contentKey)
			assert.NoError(t, err)
			assert.Equal(t, int64(14900), price)
		}
		mockFetcher.AssertExpectations(t)
	})

	t.Run("Distinct Customers Are Distinct Entries", func(t *testing.T) {
		mockFetcher := new(mocks.MetadataFetcher)
		resolver := pricing.NewResolver(mockFetcher, 0)

		otherCustomer := uuid.New()
		mockFetcher.On("GetContentMetadata", mock.Anything, customerUUID, contentKey).
			Once().Return(pricedMetadata, nil)
		mockFetcher.On("GetContentMetadata", mock.Anything, otherCustomer, contentKey).
			Once().Return(pricedMetadata, nil)

		_, err := resolver.PriceForContent(context.Background(), customerUUID, contentKey)
		assert.NoError(t, err)
		_, err = resolver.PriceForContent(context.Background(), otherCustomer, contentKey)
		assert.NoError(t, err)
		mockFetcher.AssertExpectations(t)
	})

	t.Run("Errors Are Never Cached", func(t *testing.T) {
		mockFetcher := new(mocks.MetadataFetcher)
		resolver := pricing.NewResolver(mockFetcher, 0)

		mockFetcher.On("GetContentMetadata", mock.Anything, customerUUID, contentKey).
			Once().Return(nil, &pricing.TransportError{StatusCode: 502, Body: "bad gateway"})
		mockFetcher.On("GetContentMetadata", mock.Anything, customerUUID, contentKey).
			Once().Return(pricedMetadata, nil)

		_, err := resolver.PriceForContent(context.Background(), customerUUID, contentKey)
		assert.Error(t, err)

		price, err := resolver.PriceForContent(context.Background(), customerUUID, contentKey)
		assert.NoError(t, err)
		assert.Equal(t, int64(14900), price)
		mockFetcher.AssertExpectations(t)
	})

	t.Run("Unpriced Content Maps To NotFound", func(t *testing.T) {
		mockFetcher := new(mocks.MetadataFetcher)
		resolver := pricing.NewResolver(mockFetcher, 0)

		mockFetcher.On("GetContentMetadata", mock.Anything, customerUUID, contentKey).
			Return(&pricing.ContentMetadata{Key: contentKey}, nil)

		_, err := resolver.PriceForContent(context.Background(), customerUUID, contentKey)
		assert.ErrorIs(t, err, pricing.ErrNotFound)
	})

	t.Run("Clear Forces Refetch", func(t *testing.T) {
		mockFetcher := new(mocks.MetadataFetcher)
		resolver := pricing.NewResolver(mockFetcher, 0)

		mockFetcher.On("GetContentMetadata", mock.Anything, customerUUID, contentKey).
			Twice().Return(pricedMetadata, nil)

		_, err := resolver.PriceForContent(context.Background(), customerUUID, contentKey)
		assert.NoError(t, err)

		resolver.Clear()

		_, err = resolver.PriceForContent(context.Background(), customerUUID, contentKey)
		assert.NoError(t, err)
		mockFetcher.AssertExpectations(t)
	})

	t.Run("Full Cache Resets", func(t *testing.T) {
		mockFetcher := new(mocks.MetadataFetcher)
		resolver := pricing.NewResolver(mockFetcher, 1)

		otherKey := "course-v1:edX+OtherX+Demo"
		mockFetcher.On("GetContentMetadata", mock.Anything, customerUUID, contentKey).
			Twice().Return(pricedMetadata, nil)
		mockFetcher.On("GetContentMetadata", mock.Anything, customerUUID, otherKey).
			Once().Return(pricedMetadata, nil)

		_, _ = resolver.PriceForContent(context.Background(), customerUUID, contentKey)
		// Inserting a second entry evicts the first.
		_, _ = resolver.PriceForContent(context.Background(), customerUUID, otherKey)
		_, err := resolver.PriceForContent(context.Background(), customerUUID, contentKey)
		assert.NoError(t, err)
		mockFetcher.AssertExpectations(t)
	})
}
