package amazon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amazon-analytics/internal/apperrors"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		apiKey:  "test-key",
		domain:  "amazon.com",
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func TestSearchNormalizesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "search", r.URL.Query().Get("type"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Write([]byte(`{"search_results": [
			{"asin": "B0AAA", "title": "First", "price": {"raw": "$10.00"}, "rating": 4.1},
			{"asin": "B0BBB", "title": "Second", "price": {"value": 20}},
			{"title": "no asin, dropped"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	products, err := client.Search(context.Background(), "mouse", 1)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "B0AAA", products[0].ASIN)
	require.NotNil(t, products[0].Price)
	assert.Equal(t, 10.0, *products[0].Price)
	require.NotNil(t, products[1].Price)
	assert.Equal(t, 20.0, *products[1].Price)
}

func TestSearchCapsResultsPerPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"search_results": [
			{"asin":"1"},{"asin":"2"},{"asin":"3"},{"asin":"4"},{"asin":"5"},{"asin":"6"},
			{"asin":"7"},{"asin":"8"},{"asin":"9"},{"asin":"10"},{"asin":"11"},{"asin":"12"}
		]}`))
	}))
	defer server.Close()

	products, err := newTestClient(server.URL).Search(context.Background(), "bulk", 1)
	require.NoError(t, err)
	assert.Len(t, products, searchResultLimit)
}

func TestSearchUnconfiguredReportsUnavailable(t *testing.T) {
	client := newTestClient("http://unused")
	client.apiKey = ""

	_, err := client.Search(context.Background(), "mouse", 1)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestSearchTransportFaultDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	products, err := newTestClient(server.URL).Search(context.Background(), "mouse", 2)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFetchDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "product", r.URL.Query().Get("type"))
		assert.Equal(t, "B0TEST123", r.URL.Query().Get("asin"))
		w.Write([]byte(`{"product": {
			"asin": "B0TEST123",
			"title": "Wireless Mouse",
			"buybox_winner": {"price": {"value": 24.99, "raw": "$24.99"}},
			"rating": 4.6,
			"ratings_total": 1200,
			"category": {"name": "Electronics"},
			"weight": "1.5 pounds"
		}}`))
	}))
	defer server.Close()

	rec, err := newTestClient(server.URL).FetchDetails(context.Background(), "B0TEST123")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Wireless Mouse", rec.Title)
	require.NotNil(t, rec.Weight)
	assert.Equal(t, 1.5, *rec.Weight)
}

func TestFetchDetailsAbsentUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"product": null}`))
	}))
	defer server.Close()

	rec, err := newTestClient(server.URL).FetchDetails(context.Background(), "B0NONE")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestFetchDetailsTransportFaultDegradesToAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	rec, err := newTestClient(server.URL).FetchDetails(context.Background(), "B0TEST123")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestFetchReviews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"reviews": [
			{"title": "r1", "rating": 5},
			{"title": "r2", "rating": 4},
			{"title": "r3", "rating": 4},
			{"title": "r4", "rating": 3},
			{"title": "r5", "rating": 5},
			{"title": "r6", "rating": 2},
			{"title": "r7", "rating": 5}
		]}`))
	}))
	defer server.Close()

	summary, err := newTestClient(server.URL).FetchReviews(context.Background(), "B0TEST123")
	require.NoError(t, err)
	assert.Equal(t, 7, summary.TotalReviews)
	assert.Equal(t, 4.0, summary.AverageRating)
	assert.Len(t, summary.Reviews, reviewsRetained)
}

func TestFetchReviewsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"reviews": []}`))
	}))
	defer server.Close()

	summary, err := newTestClient(server.URL).FetchReviews(context.Background(), "B0TEST123")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalReviews)
	assert.Equal(t, 0.0, summary.AverageRating)
	assert.Empty(t, summary.Reviews)
}
