// Package amazon implements the external marketplace data client. It speaks
// to a Rainforest-style product data API and normalizes the two upstream
// payload shapes (search result, full product detail) into one canonical
// record. Transport and parsing faults degrade to empty results; only a
// missing credential is surfaced, as ErrUpstreamUnavailable, so call sites
// must decide how to handle it.
package amazon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"amazon-analytics/internal/apperrors"
	"amazon-analytics/internal/models"
	"amazon-analytics/pkg/config"
)

const defaultBaseURL = "https://api.rainforestapi.com/request"

// requestTimeout bounds every upstream call. A single attempt per
// operation, no retries.
const requestTimeout = 30 * time.Second

// searchResultLimit caps how many items of one search page are normalized.
const searchResultLimit = 10

// reviewsRetained caps how many raw reviews a summary carries.
const reviewsRetained = 5

type Client struct {
	apiKey  string
	domain  string
	baseURL string
	http    *http.Client
}

// NewClient builds a marketplace client from configuration. An empty API key
// produces a client whose operations report ErrUpstreamUnavailable.
func NewClient(cfg config.Config) *Client {
	domain := "amazon.co.uk"
	if cfg.AmazonMarketplace == "US" {
		domain = "amazon.com"
	}
	return &Client{
		apiKey:  cfg.RainforestAPIKey,
		domain:  domain,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Configured reports whether an API credential is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Search queries the marketplace for products matching query, fetching up to
// pages result pages. Transport or parsing faults for a page are logged and
// dropped; the remaining pages still contribute results.
func (c *Client) Search(ctx context.Context, query string, pages int) ([]models.CanonicalProduct, error) {
	if !c.Configured() {
		return nil, apperrors.ErrUpstreamUnavailable
	}

	var products []models.CanonicalProduct
	for page := 1; page <= pages; page++ {
		params := url.Values{}
		params.Set("type", "search")
		params.Set("search_term", query)
		params.Set("page", strconv.Itoa(page))

		var resp models.SearchResponse
		if err := c.get(ctx, params, &resp); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"query": query,
				"page":  page,
			}).Error("Failed to fetch search results")
			continue
		}

		items := resp.SearchResults
		if len(items) > searchResultLimit {
			items = items[:searchResultLimit]
		}
		for _, item := range items {
			if rec := canonicalFromSearchItem(item); rec != nil {
				products = append(products, *rec)
			}
		}
	}

	return products, nil
}

// FetchDetails returns the canonical record for one ASIN, or nil when the
// upstream has no such product. Transport faults degrade to absent.
func (c *Client) FetchDetails(ctx context.Context, asin string) (*models.CanonicalProduct, error) {
	if !c.Configured() {
		return nil, apperrors.ErrUpstreamUnavailable
	}

	params := url.Values{}
	params.Set("type", "product")
	params.Set("asin", asin)

	var resp models.ProductResponse
	if err := c.get(ctx, params, &resp); err != nil {
		logrus.WithError(err).WithField("asin", asin).Error("Failed to fetch product details")
		return nil, nil
	}
	if resp.Product == nil || resp.Product.ASIN == "" {
		return nil, nil
	}

	return canonicalFromDetail(*resp.Product), nil
}

// FetchReviews returns a review summary for one ASIN: the full fetched
// count, the mean rating (0.0 with no reviews) and the first few raw
// reviews. Transport faults degrade to an empty summary.
func (c *Client) FetchReviews(ctx context.Context, asin string) (models.ReviewSummary, error) {
	if !c.Configured() {
		return models.ReviewSummary{Reviews: []models.Review{}}, apperrors.ErrUpstreamUnavailable
	}

	params := url.Values{}
	params.Set("type", "reviews")
	params.Set("asin", asin)
	params.Set("page", "1")

	var resp models.ReviewsResponse
	if err := c.get(ctx, params, &resp); err != nil {
		logrus.WithError(err).WithField("asin", asin).Error("Failed to fetch reviews")
		return models.ReviewSummary{Reviews: []models.Review{}}, nil
	}

	return summarizeReviews(resp.Reviews), nil
}

// summarizeReviews computes the review rollup. The divisor is guarded so an
// empty review list averages to 0.0 instead of dividing by zero.
func summarizeReviews(reviews []models.Review) models.ReviewSummary {
	total := len(reviews)

	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	divisor := total
	if divisor < 1 {
		divisor = 1
	}
	avg := math.Round(sum/float64(divisor)*10) / 10

	retained := reviews
	if len(retained) > reviewsRetained {
		retained = retained[:reviewsRetained]
	}
	if retained == nil {
		retained = []models.Review{}
	}

	return models.ReviewSummary{
		TotalReviews:  total,
		AverageRating: avg,
		Reviews:       retained,
	}
}

// get performs one authenticated upstream request and decodes the JSON body
// into out.
func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	params.Set("api_key", c.apiKey)
	params.Set("amazon_domain", c.domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
