package amazon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amazon-analytics/internal/models"
)

func TestCanonicalFromSearchItem(t *testing.T) {
	item := models.SearchResultItem{
		ASIN:         "B0TEST123",
		Title:        "Wireless Mouse",
		Price:        models.RainforestPrice{Raw: "$1,234.56"},
		Rating:       4.4,
		RatingsTotal: 321,
		Department:   "Electronics",
		Brand:        "Acme",
		IsPrime:      true,
		Image:        "https://img.example/m.jpg",
		Link:         "https://amazon.com/dp/B0TEST123",
	}

	rec := canonicalFromSearchItem(item)
	require.NotNil(t, rec)
	assert.Equal(t, "B0TEST123", rec.ASIN)
	require.NotNil(t, rec.Price)
	assert.Equal(t, 1234.56, *rec.Price)
	assert.Equal(t, "USD", rec.Currency)
	require.NotNil(t, rec.Category)
	assert.Equal(t, "Electronics", *rec.Category)
	require.NotNil(t, rec.Availability)
	assert.True(t, *rec.Availability)
	require.NotNil(t, rec.Description)
	assert.Equal(t, "Wireless Mouse", *rec.Description)
	// Search results never carry these.
	assert.Nil(t, rec.Features)
	assert.Nil(t, rec.Dimensions)
	assert.Nil(t, rec.Weight)
}

func TestCanonicalFromSearchItemAbsentFieldsStayNil(t *testing.T) {
	rec := canonicalFromSearchItem(models.SearchResultItem{ASIN: "B0BARE", Title: "Bare"})
	require.NotNil(t, rec)
	assert.Nil(t, rec.Price)
	assert.Nil(t, rec.Rating)
	assert.Nil(t, rec.ReviewCount)
	assert.Nil(t, rec.Category)
	assert.Nil(t, rec.Brand)
}

func TestCanonicalFromSearchItemWithoutASIN(t *testing.T) {
	assert.Nil(t, canonicalFromSearchItem(models.SearchResultItem{Title: "no asin"}))
}

func TestCanonicalFromSearchItemCapsDescription(t *testing.T) {
	rec := canonicalFromSearchItem(models.SearchResultItem{
		ASIN:  "B0LONG",
		Title: strings.Repeat("t", 800),
	})
	require.NotNil(t, rec)
	require.NotNil(t, rec.Description)
	assert.Len(t, *rec.Description, searchDescriptionLimit)
}

func TestCanonicalFromDetail(t *testing.T) {
	detail := models.ProductDetail{
		ASIN:           "B0TEST123",
		Title:          "Wireless Mouse",
		Rating:         4.6,
		RatingsTotal:   1200,
		Brand:          "Acme",
		Description:    strings.Repeat("d", 1500),
		FeatureBullets: []string{"ergonomic", "silent clicks"},
		Dimensions:     map[string]string{"width": "6 cm"},
		Weight:         "1.5 pounds",
	}
	detail.BuyboxWinner.Price = models.RainforestPrice{Value: 24.99, Raw: "$24.99"}
	detail.Category.Name = "Electronics"
	detail.Availability.Raw = "In Stock"

	rec := canonicalFromDetail(detail)
	require.NotNil(t, rec.Price)
	assert.Equal(t, 24.99, *rec.Price)
	require.NotNil(t, rec.Weight)
	assert.Equal(t, 1.5, *rec.Weight)
	require.NotNil(t, rec.Description)
	assert.Len(t, *rec.Description, detailDescriptionLimit)
	assert.Equal(t, []string{"ergonomic", "silent clicks"}, rec.Features)
	require.NotNil(t, rec.Availability)
	assert.True(t, *rec.Availability)
}

func TestCanonicalFromDetailUnavailableProduct(t *testing.T) {
	detail := models.ProductDetail{ASIN: "B0GONE", Title: "Gone"}
	detail.Availability.Raw = "Currently unavailable"

	rec := canonicalFromDetail(detail)
	require.NotNil(t, rec.Availability)
	assert.False(t, *rec.Availability)
}
