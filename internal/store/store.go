// Package store is the persistence layer over the relational database. The
// reconciliation engine is the sole writer of products and price history;
// everything else reads.
package store

import (
	"context"
	"time"

	"amazon-analytics/internal/models"
)

// ProductFilter bounds a product listing.
type ProductFilter struct {
	Skip     int
	Limit    int
	Category string
}

// ProductStore is the product/price-history persistence contract.
type ProductStore interface {
	GetByASIN(ctx context.Context, asin string) (*models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error

	// SaveWithHistory persists the product (insert or update) and, when
	// observation is non-nil, appends one price-history row — both inside a
	// single transaction.
	SaveWithHistory(ctx context.Context, product *models.Product, observation *models.PriceHistory) error

	PriceHistory(ctx context.Context, asin string, limit int) ([]models.PriceHistory, error)
}

// TopProduct is one row of a top-N ranking.
type TopProduct struct {
	ASIN        string   `json:"asin"`
	Title       string   `json:"title"`
	Price       *float64 `json:"price"`
	Rating      *float64 `json:"rating"`
	MetricValue float64  `json:"metric_value"`
}

// TrendPoint is one calendar day of summed analytics metrics. Days with no
// events produce no point.
type TrendPoint struct {
	Date        time.Time `json:"date"`
	Revenue     float64   `json:"revenue"`
	Views       int64     `json:"views"`
	Conversions int64     `json:"conversions"`
}

// AnalyticsStore is the read-side aggregate contract, plus the single insert
// used by the event ingestion path.
type AnalyticsStore interface {
	CountProducts(ctx context.Context) (int64, error)
	AveragePrice(ctx context.Context) (float64, error)
	AverageRating(ctx context.Context) (float64, error)
	RevenueSince(ctx context.Context, since time.Time) (float64, error)
	TopProducts(ctx context.Context, metric string, since time.Time, limit int) ([]TopProduct, error)
	DailyTrends(ctx context.Context, since time.Time) ([]TrendPoint, error)
	InsertEvent(ctx context.Context, event *models.ProductAnalytics) error
}
