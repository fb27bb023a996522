package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"amazon-analytics/internal/apperrors"
	"amazon-analytics/internal/models"
)

// GormStore implements ProductStore and AnalyticsStore on a GORM connection.
type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetByASIN(ctx context.Context, asin string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Where("asin = ?", asin).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product", asin)
		}
		return nil, apperrors.Storage("get product", err)
	}
	return &product, nil
}

func (s *GormStore) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var products []models.Product
	if err := query.Offset(filter.Skip).Limit(filter.Limit).Find(&products).Error; err != nil {
		return nil, apperrors.Storage("list products", err)
	}
	return products, nil
}

func (s *GormStore) Create(ctx context.Context, product *models.Product) error {
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return apperrors.Storage("create product", err)
	}
	return nil
}

// SaveWithHistory runs the canonical persistence boundary of one sync: the
// product upsert and the optional price observation commit together or not
// at all, so concurrent syncs of the same ASIN serialize at the store.
func (s *GormStore) SaveWithHistory(ctx context.Context, product *models.Product, observation *models.PriceHistory) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(product).Error; err != nil {
			return err
		}
		if observation != nil {
			if err := tx.Create(observation).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Storage("save product with history", err)
	}
	return nil
}

func (s *GormStore) PriceHistory(ctx context.Context, asin string, limit int) ([]models.PriceHistory, error) {
	var history []models.PriceHistory
	err := s.db.WithContext(ctx).
		Where("asin = ?", asin).
		Order("timestamp DESC").
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return nil, apperrors.Storage("list price history", err)
	}
	return history, nil
}

func (s *GormStore) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, apperrors.Storage("count products", err)
	}
	return count, nil
}

// AveragePrice averages with SQL semantics: rows with NULL price are
// excluded, an empty table averages to 0.
func (s *GormStore) AveragePrice(ctx context.Context) (float64, error) {
	var avg float64
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Select("COALESCE(AVG(price), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, apperrors.Storage("average price", err)
	}
	return avg, nil
}

func (s *GormStore) AverageRating(ctx context.Context) (float64, error) {
	var avg float64
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, apperrors.Storage("average rating", err)
	}
	return avg, nil
}

func (s *GormStore) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).Model(&models.ProductAnalytics{}).
		Select("COALESCE(SUM(revenue), 0)").
		Where("date >= ?", since).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Storage("sum revenue", err)
	}
	return total, nil
}

// metricColumns is the closed set of rankable metrics. Keys are validated at
// the service layer too; the map keeps unchecked strings out of the SQL.
var metricColumns = map[string]string{
	"revenue":     "revenue",
	"views":       "views",
	"conversions": "conversions",
}

func (s *GormStore) TopProducts(ctx context.Context, metric string, since time.Time, limit int) ([]TopProduct, error) {
	column, ok := metricColumns[metric]
	if !ok {
		return nil, apperrors.Validation(fmt.Sprintf("unknown metric %q", metric))
	}

	var rows []TopProduct
	err := s.db.WithContext(ctx).Table("products").
		Select(fmt.Sprintf("products.asin, products.title, products.price, products.rating, COALESCE(SUM(product_analytics.%s), 0) AS metric_value", column)).
		Joins("JOIN product_analytics ON product_analytics.asin = products.asin").
		Where("product_analytics.date >= ?", since).
		Group("products.asin, products.title, products.price, products.rating").
		Order("metric_value DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Storage("top products", err)
	}
	return rows, nil
}

func (s *GormStore) DailyTrends(ctx context.Context, since time.Time) ([]TrendPoint, error) {
	var rows []TrendPoint
	err := s.db.WithContext(ctx).Model(&models.ProductAnalytics{}).
		Select("DATE(date) AS date, COALESCE(SUM(revenue), 0) AS revenue, COALESCE(SUM(views), 0) AS views, COALESCE(SUM(conversions), 0) AS conversions").
		Where("date >= ?", since).
		Group("DATE(date)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Storage("daily trends", err)
	}
	return rows, nil
}

func (s *GormStore) InsertEvent(ctx context.Context, event *models.ProductAnalytics) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return apperrors.Storage("insert analytics event", err)
	}
	return nil
}
