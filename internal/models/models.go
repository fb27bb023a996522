package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product is a locally persisted marketplace product. The ASIN is the sole
// natural key; the numeric ID exists only for the store.
type Product struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ASIN         string         `gorm:"size:20;uniqueIndex;not null" json:"asin"`
	Title        string         `gorm:"type:text;not null" json:"title"`
	Price        *float64       `json:"price"`
	Currency     string         `gorm:"size:3;default:USD" json:"currency"`
	Rating       *float64       `json:"rating"`
	ReviewCount  int            `gorm:"default:0" json:"review_count"`
	Category     *string        `gorm:"size:255" json:"category"`
	Brand        *string        `gorm:"size:255" json:"brand"`
	Availability bool           `gorm:"default:true" json:"availability"`
	ImageURL     *string        `gorm:"type:text" json:"image_url"`
	ProductURL   *string        `gorm:"type:text" json:"product_url"`
	Description  *string        `gorm:"type:text" json:"description"`
	Features     datatypes.JSON `gorm:"type:jsonb" json:"features"`
	Dimensions   datatypes.JSON `gorm:"type:jsonb" json:"dimensions"`
	Weight       *float64       `json:"weight"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// PriceHistory is an append-only price observation for an ASIN. Rows are
// linked to products by ASIN value, never mutated or removed.
type PriceHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ASIN      string    `gorm:"size:20;index;not null" json:"asin"`
	Price     float64   `gorm:"not null" json:"price"`
	Currency  string    `gorm:"size:3;default:USD" json:"currency"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

// TableName keeps the table name the dashboard queries expect.
func (PriceHistory) TableName() string {
	return "price_history"
}

// ProductAnalytics is one day-bucketed analytics event row for an ASIN,
// produced by the ingestion path and consumed read-only by the aggregator.
type ProductAnalytics struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ASIN               string    `gorm:"size:20;index;not null" json:"asin"`
	Views              int       `gorm:"default:0" json:"views"`
	Conversions        int       `gorm:"default:0" json:"conversions"`
	Revenue            float64   `gorm:"default:0" json:"revenue"`
	BounceRate         float64   `gorm:"default:0" json:"bounce_rate"`
	AvgSessionDuration float64   `gorm:"default:0" json:"avg_session_duration"`
	Date               time.Time `gorm:"index" json:"date"`
}

// TableName pins the name the aggregate queries join against.
func (ProductAnalytics) TableName() string {
	return "product_analytics"
}

// CanonicalProduct is the normalized product shape produced by the
// marketplace client, independent of which upstream payload variant
// produced it. Nil fields mean "absent upstream": reconciliation leaves
// the stored value untouched for them.
type CanonicalProduct struct {
	ASIN         string            `json:"asin"`
	Title        string            `json:"title"`
	Price        *float64          `json:"price"`
	Currency     string            `json:"currency"`
	Rating       *float64          `json:"rating"`
	ReviewCount  *int              `json:"review_count"`
	Category     *string           `json:"category"`
	Brand        *string           `json:"brand"`
	Availability *bool             `json:"availability"`
	ImageURL     *string           `json:"image_url"`
	ProductURL   *string           `json:"product_url"`
	Description  *string           `json:"description"`
	Features     []string          `json:"features"`
	Dimensions   map[string]string `json:"dimensions"`
	Weight       *float64          `json:"weight"`
}

// Review is a single raw customer review as fetched upstream.
type Review struct {
	Title  string  `json:"title"`
	Body   string  `json:"body"`
	Rating float64 `json:"rating"`
}

// ReviewSummary aggregates fetched reviews: the full count, the mean rating
// and the first few raw reviews.
type ReviewSummary struct {
	TotalReviews  int      `json:"total_reviews"`
	AverageRating float64  `json:"average_rating"`
	Reviews       []Review `json:"reviews"`
}
