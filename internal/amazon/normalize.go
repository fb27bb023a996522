package amazon

import (
	"amazon-analytics/internal/models"
)

// Description caps differ by payload variant: search results only carry the
// title, full detail payloads carry a real description.
const (
	searchDescriptionLimit = 500
	detailDescriptionLimit = 1000
)

// canonicalFromSearchItem maps one search-result payload item to the
// canonical record shape. Search results carry no features, dimensions or
// weight; those stay nil so reconciliation leaves stored values untouched.
func canonicalFromSearchItem(item models.SearchResultItem) *models.CanonicalProduct {
	if item.ASIN == "" {
		return nil
	}

	rec := &models.CanonicalProduct{
		ASIN:     item.ASIN,
		Title:    item.Title,
		Currency: "USD",
	}

	if item.Price.Raw != "" || item.Price.Value != 0 {
		price := item.Price.Value
		if price == 0 {
			price = ExtractDecimal(item.Price.Raw)
		}
		rec.Price = &price
	}
	if item.Rating > 0 {
		rating := item.Rating
		rec.Rating = &rating
	}
	if item.RatingsTotal > 0 {
		count := item.RatingsTotal
		rec.ReviewCount = &count
	}
	if item.Department != "" {
		category := item.Department
		rec.Category = &category
	}
	if item.Brand != "" {
		brand := item.Brand
		rec.Brand = &brand
	}
	availability := item.IsPrime
	rec.Availability = &availability
	if item.Image != "" {
		image := item.Image
		rec.ImageURL = &image
	}
	if item.Link != "" {
		link := item.Link
		rec.ProductURL = &link
	}
	if item.Title != "" {
		// Search results have no description, use the title as a short one.
		description := truncate(item.Title, searchDescriptionLimit)
		rec.Description = &description
	}

	return rec
}

// canonicalFromDetail maps a full product-detail payload to the canonical
// record shape.
func canonicalFromDetail(detail models.ProductDetail) *models.CanonicalProduct {
	rec := &models.CanonicalProduct{
		ASIN:     detail.ASIN,
		Title:    detail.Title,
		Currency: "USD",
	}

	if detail.BuyboxWinner.Price.Raw != "" || detail.BuyboxWinner.Price.Value != 0 {
		price := detail.BuyboxWinner.Price.Value
		if price == 0 {
			price = ExtractDecimal(detail.BuyboxWinner.Price.Raw)
		}
		rec.Price = &price
	}
	if detail.Rating > 0 {
		rating := detail.Rating
		rec.Rating = &rating
	}
	if detail.RatingsTotal > 0 {
		count := detail.RatingsTotal
		rec.ReviewCount = &count
	}
	if detail.Category.Name != "" {
		category := detail.Category.Name
		rec.Category = &category
	}
	if detail.Brand != "" {
		brand := detail.Brand
		rec.Brand = &brand
	}
	availability := detail.Availability.Raw != "Currently unavailable"
	rec.Availability = &availability
	if detail.MainImage.Link != "" {
		image := detail.MainImage.Link
		rec.ImageURL = &image
	}
	if detail.Link != "" {
		link := detail.Link
		rec.ProductURL = &link
	}
	if detail.Description != "" {
		description := truncate(detail.Description, detailDescriptionLimit)
		rec.Description = &description
	}
	if len(detail.FeatureBullets) > 0 {
		rec.Features = detail.FeatureBullets
	}
	if len(detail.Dimensions) > 0 {
		rec.Dimensions = detail.Dimensions
	}
	if detail.Weight != "" {
		weight := ExtractDecimal(detail.Weight)
		rec.Weight = &weight
	}

	return rec
}
