// Package analytics computes read-only rollups over persisted products and
// analytics events. Nothing here mutates state.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"amazon-analytics/internal/apperrors"
	"amazon-analytics/internal/store"
)

// overviewWindow is the revenue lookback for the overview rollup.
const overviewWindow = 30 * 24 * time.Hour

// Metrics products can be ranked by. Closed set; anything else is rejected.
var validMetrics = map[string]bool{
	"revenue":     true,
	"views":       true,
	"conversions": true,
}

// Overview is the key-metric rollup.
type Overview struct {
	TotalProducts   int64   `json:"total_products"`
	AveragePrice    float64 `json:"average_price"`
	TotalRevenue30d float64 `json:"total_revenue_30d"`
	AverageRating   float64 `json:"average_rating"`
}

type Service struct {
	store store.AnalyticsStore
	now   func() time.Time
}

func NewService(analyticsStore store.AnalyticsStore) *Service {
	return &Service{
		store: analyticsStore,
		now:   time.Now,
	}
}

// Overview returns total product count, mean price, mean rating and the
// summed revenue of the last 30 days. Averages are null-safe: rows without
// a value are excluded, not counted as zero.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	total, err := s.store.CountProducts(ctx)
	if err != nil {
		return Overview{}, err
	}
	avgPrice, err := s.store.AveragePrice(ctx)
	if err != nil {
		return Overview{}, err
	}
	revenue, err := s.store.RevenueSince(ctx, s.now().Add(-overviewWindow))
	if err != nil {
		return Overview{}, err
	}
	avgRating, err := s.store.AverageRating(ctx)
	if err != nil {
		return Overview{}, err
	}

	return Overview{
		TotalProducts:   total,
		AveragePrice:    round2(avgPrice),
		TotalRevenue30d: round2(revenue),
		AverageRating:   round2(avgRating),
	}, nil
}

// TopProducts ranks products by the chosen metric summed over the last
// days days, descending.
func (s *Service) TopProducts(ctx context.Context, metric string, limit, days int) ([]store.TopProduct, error) {
	if !validMetrics[metric] {
		return nil, apperrors.Validation(fmt.Sprintf("metric must be one of revenue, views, conversions; got %q", metric))
	}

	since := s.now().AddDate(0, 0, -days)
	rows, err := s.store.TopProducts(ctx, metric, since, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []store.TopProduct{}
	}
	return rows, nil
}

// Trends buckets revenue, views and conversions by calendar day over the
// last days days, ascending. Days with no events are omitted, not
// zero-filled.
func (s *Service) Trends(ctx context.Context, days int) ([]store.TrendPoint, error) {
	since := s.now().AddDate(0, 0, -days)
	points, err := s.store.DailyTrends(ctx, since)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []store.TrendPoint{}
	}
	return points, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
