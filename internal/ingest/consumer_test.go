package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amazon-analytics/internal/models"
	"amazon-analytics/internal/store"
)

type recordingStore struct {
	events []models.ProductAnalytics
}

func (r *recordingStore) CountProducts(context.Context) (int64, error)             { return 0, nil }
func (r *recordingStore) AveragePrice(context.Context) (float64, error)            { return 0, nil }
func (r *recordingStore) AverageRating(context.Context) (float64, error)           { return 0, nil }
func (r *recordingStore) RevenueSince(context.Context, time.Time) (float64, error) { return 0, nil }
func (r *recordingStore) TopProducts(context.Context, string, time.Time, int) ([]store.TopProduct, error) {
	return nil, nil
}
func (r *recordingStore) DailyTrends(context.Context, time.Time) ([]store.TrendPoint, error) {
	return nil, nil
}

func (r *recordingStore) InsertEvent(_ context.Context, event *models.ProductAnalytics) error {
	r.events = append(r.events, *event)
	return nil
}

func TestHandleEvent(t *testing.T) {
	rec := &recordingStore{}

	handleEvent(rec, []byte(`{"asin": "B0TEST123", "views": 10, "conversions": 2, "revenue": 59.98, "date": "2025-06-01T00:00:00Z"}`))

	require.Len(t, rec.events, 1)
	assert.Equal(t, "B0TEST123", rec.events[0].ASIN)
	assert.Equal(t, 10, rec.events[0].Views)
	assert.Equal(t, 59.98, rec.events[0].Revenue)
}

func TestHandleEventMalformedDropped(t *testing.T) {
	rec := &recordingStore{}

	handleEvent(rec, []byte(`{not json`))
	handleEvent(rec, []byte(`{"views": 3}`)) // missing ASIN

	assert.Empty(t, rec.events)
}

func TestHandleEventDefaultsDate(t *testing.T) {
	rec := &recordingStore{}

	handleEvent(rec, []byte(`{"asin": "B0TEST123"}`))

	require.Len(t, rec.events, 1)
	assert.False(t, rec.events[0].Date.IsZero())
}
