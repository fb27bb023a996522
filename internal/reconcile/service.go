// Package reconcile converges locally persisted product state with freshly
// fetched canonical records. It is the sole writer of products and price
// history: one sync means one transactional upsert plus, for a positive
// price, exactly one appended price observation.
package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"amazon-analytics/internal/apperrors"
	"amazon-analytics/internal/models"
	"amazon-analytics/internal/store"
)

// Fetcher is the slice of the marketplace client the engine needs.
type Fetcher interface {
	FetchDetails(ctx context.Context, asin string) (*models.CanonicalProduct, error)
}

type Service struct {
	store  store.ProductStore
	amazon Fetcher
	now    func() time.Time
}

func NewService(productStore store.ProductStore, fetcher Fetcher) *Service {
	return &Service{
		store:  productStore,
		amazon: fetcher,
		now:    time.Now,
	}
}

// SyncProduct is the authoritative refresh: it always hits the upstream,
// merges the canonical record into the stored product and appends a price
// observation when the observed price is positive. An ASIN unknown upstream
// (including an unconfigured upstream) is not found.
func (s *Service) SyncProduct(ctx context.Context, asin string) (*models.Product, error) {
	rec, err := s.amazon.FetchDetails(ctx, asin)
	if err != nil {
		if errors.Is(err, apperrors.ErrUpstreamUnavailable) {
			logrus.WithField("asin", asin).Warn("Marketplace client not configured, cannot sync")
			return nil, apperrors.NotFound("product", asin)
		}
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NotFound("product", asin)
	}

	return s.reconcile(ctx, asin, rec)
}

// GetWithFallback is the read with lazy-populate: a local hit returns
// immediately with no network call; a local miss syncs from upstream.
func (s *Service) GetWithFallback(ctx context.Context, asin string) (*models.Product, error) {
	product, err := s.store.GetByASIN(ctx, asin)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	logrus.WithField("asin", asin).Info("Product not found locally, fetching from upstream")
	return s.SyncProduct(ctx, asin)
}

// reconcile applies one canonical record: partial update when the product
// exists, full construction when it does not, then a single transaction
// covering the upsert and the optional price observation.
func (s *Service) reconcile(ctx context.Context, asin string, rec *models.CanonicalProduct) (*models.Product, error) {
	now := s.now()

	product, err := s.store.GetByASIN(ctx, asin)
	switch {
	case err == nil:
		applyCanonical(product, rec)
		product.UpdatedAt = now
	case errors.Is(err, apperrors.ErrNotFound):
		product = newProduct(rec, now)
	default:
		return nil, err
	}

	var observation *models.PriceHistory
	if rec.Price != nil && *rec.Price > 0 {
		observation = &models.PriceHistory{
			ASIN:      asin,
			Price:     *rec.Price,
			Currency:  rec.Currency,
			Timestamp: now,
		}
	}

	if err := s.store.SaveWithHistory(ctx, product, observation); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"asin":          asin,
		"price_tracked": observation != nil,
	}).Info("Product synced")
	return product, nil
}

// applyCanonical overwrites each stored attribute the canonical record
// carries; nil fields leave the stored value untouched.
func applyCanonical(product *models.Product, rec *models.CanonicalProduct) {
	if rec.Title != "" {
		product.Title = rec.Title
	}
	if rec.Price != nil {
		product.Price = rec.Price
	}
	if rec.Currency != "" {
		product.Currency = rec.Currency
	}
	if rec.Rating != nil {
		product.Rating = rec.Rating
	}
	if rec.ReviewCount != nil {
		product.ReviewCount = *rec.ReviewCount
	}
	if rec.Category != nil {
		product.Category = rec.Category
	}
	if rec.Brand != nil {
		product.Brand = rec.Brand
	}
	if rec.Availability != nil {
		product.Availability = *rec.Availability
	}
	if rec.ImageURL != nil {
		product.ImageURL = rec.ImageURL
	}
	if rec.ProductURL != nil {
		product.ProductURL = rec.ProductURL
	}
	if rec.Description != nil {
		product.Description = rec.Description
	}
	if rec.Features != nil {
		product.Features = mustJSON(rec.Features)
	}
	if rec.Dimensions != nil {
		product.Dimensions = mustJSON(rec.Dimensions)
	}
	if rec.Weight != nil {
		product.Weight = rec.Weight
	}
}

// newProduct constructs a product from a canonical record in full.
func newProduct(rec *models.CanonicalProduct, now time.Time) *models.Product {
	product := &models.Product{
		ASIN:         rec.ASIN,
		Title:        rec.Title,
		Currency:     "USD",
		Availability: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyCanonical(product, rec)
	return product
}

func mustJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal canonical field")
		return nil
	}
	return datatypes.JSON(data)
}
