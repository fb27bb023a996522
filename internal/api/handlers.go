package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"amazon-analytics/internal/apperrors"
	"amazon-analytics/internal/models"
	"amazon-analytics/internal/store"
)

const priceHistoryLimit = 100

func registerHandlers(e *echo.Echo, products store.ProductStore, reconciler Reconciler, marketplace Marketplace, aggregator Aggregator, insights InsightGenerator) {
	validate := validator.New()
	v1 := e.Group("/api/v1")

	v1.GET("/products", func(c echo.Context) error {
		skip, err := queryInt(c, "skip", 0, 0, 1<<30)
		if err != nil {
			return httpError(c, err)
		}
		limit, err := queryInt(c, "limit", 100, 1, 1000)
		if err != nil {
			return httpError(c, err)
		}

		list, err := products.List(c.Request().Context(), store.ProductFilter{
			Skip:     skip,
			Limit:    limit,
			Category: c.QueryParam("category"),
		})
		if err != nil {
			logrus.WithError(err).Error("Failed to list products")
			return httpError(c, err)
		}
		if list == nil {
			list = []models.Product{}
		}
		return c.JSON(http.StatusOK, list)
	})

	// Static route must be registered alongside /products/:asin; echo gives
	// it priority.
	v1.GET("/products/search", func(c echo.Context) error {
		query := c.QueryParam("query")
		if query == "" {
			return httpError(c, apperrors.Validation("query must not be empty"))
		}
		pages, err := queryInt(c, "pages", 1, 1, 3)
		if err != nil {
			return httpError(c, err)
		}

		results, err := marketplace.Search(c.Request().Context(), query, pages)
		if err != nil {
			if errors.Is(err, apperrors.ErrUpstreamUnavailable) {
				// Degrade to empty rather than failing the request.
				logrus.Warn("Marketplace client not configured, returning empty search results")
				return c.JSON(http.StatusOK, []models.CanonicalProduct{})
			}
			logrus.WithError(err).Error("Search failed")
			return httpError(c, err)
		}
		if results == nil {
			results = []models.CanonicalProduct{}
		}
		return c.JSON(http.StatusOK, results)
	})

	v1.GET("/products/:asin", func(c echo.Context) error {
		product, err := products.GetByASIN(c.Request().Context(), c.Param("asin"))
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	})

	v1.POST("/products", func(c echo.Context) error {
		var req struct {
			ASIN         string            `json:"asin" validate:"required,max=20"`
			Title        string            `json:"title" validate:"required"`
			Price        *float64          `json:"price" validate:"omitempty,gte=0"`
			Currency     string            `json:"currency" validate:"omitempty,len=3"`
			Rating       *float64          `json:"rating" validate:"omitempty,gte=0,lte=5"`
			ReviewCount  int               `json:"review_count" validate:"gte=0"`
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
		if err := c.Bind(&req); err != nil {
			logrus.WithError(err).Error("Invalid product creation request")
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		}
		if err := validate.Struct(&req); err != nil {
			logrus.WithError(err).Error("Validation failed for product creation")
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		if _, err := products.GetByASIN(c.Request().Context(), req.ASIN); err == nil {
			return c.JSON(http.StatusConflict, map[string]string{"error": "Product with this ASIN already exists"})
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return httpError(c, err)
		}

		now := time.Now()
		product := models.Product{
			ASIN:         req.ASIN,
			Title:        req.Title,
			Price:        req.Price,
			Currency:     "USD",
			Rating:       req.Rating,
			ReviewCount:  req.ReviewCount,
			Category:     req.Category,
			Brand:        req.Brand,
			Availability: true,
			ImageURL:     req.ImageURL,
			ProductURL:   req.ProductURL,
			Description:  req.Description,
			Weight:       req.Weight,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if req.Currency != "" {
			product.Currency = req.Currency
		}
		if req.Availability != nil {
			product.Availability = *req.Availability
		}
		if req.Features != nil {
			product.Features = toJSON(req.Features)
		}
		if req.Dimensions != nil {
			product.Dimensions = toJSON(req.Dimensions)
		}

		if err := products.Create(c.Request().Context(), &product); err != nil {
			logrus.WithError(err).Error("Failed to create product")
			return httpError(c, err)
		}

		logrus.WithField("asin", product.ASIN).Info("Product created")
		return c.JSON(http.StatusCreated, product)
	})

	v1.GET("/products/:asin/price-history", func(c echo.Context) error {
		history, err := products.PriceHistory(c.Request().Context(), c.Param("asin"), priceHistoryLimit)
		if err != nil {
			logrus.WithError(err).Error("Failed to list price history")
			return httpError(c, err)
		}
		if history == nil {
			history = []models.PriceHistory{}
		}
		return c.JSON(http.StatusOK, history)
	})

	v1.POST("/products/:asin/sync", func(c echo.Context) error {
		product, err := reconciler.SyncProduct(c.Request().Context(), c.Param("asin"))
		if err != nil {
			logrus.WithError(err).WithField("asin", c.Param("asin")).Error("Sync failed")
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	})

	v1.GET("/products/:asin/fallback", func(c echo.Context) error {
		product, err := reconciler.GetWithFallback(c.Request().Context(), c.Param("asin"))
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	})

	v1.GET("/products/:asin/reviews", func(c echo.Context) error {
		summary, err := marketplace.FetchReviews(c.Request().Context(), c.Param("asin"))
		if err != nil && !errors.Is(err, apperrors.ErrUpstreamUnavailable) {
			logrus.WithError(err).Error("Failed to fetch reviews")
			return httpError(c, err)
		}
		// An unconfigured upstream degrades to the empty summary.
		return c.JSON(http.StatusOK, summary)
	})

	v1.GET("/analytics/overview", func(c echo.Context) error {
		overview, err := aggregator.Overview(c.Request().Context())
		if err != nil {
			logrus.WithError(err).Error("Failed to compute analytics overview")
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, overview)
	})

	v1.GET("/analytics/top-products", func(c echo.Context) error {
		metric := c.QueryParam("metric")
		if metric == "" {
			metric = "revenue"
		}
		limit, err := queryInt(c, "limit", 10, 1, 50)
		if err != nil {
			return httpError(c, err)
		}
		days, err := queryInt(c, "days", 30, 1, 365)
		if err != nil {
			return httpError(c, err)
		}

		rows, err := aggregator.TopProducts(c.Request().Context(), metric, limit, days)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, rows)
	})

	v1.GET("/analytics/trends", func(c echo.Context) error {
		days, err := queryInt(c, "days", 30, 7, 365)
		if err != nil {
			return httpError(c, err)
		}

		points, err := aggregator.Trends(c.Request().Context(), days)
		if err != nil {
			logrus.WithError(err).Error("Failed to compute trends")
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, points)
	})

	v1.POST("/ai/analyze-product", func(c echo.Context) error {
		var req struct {
			ASIN         string `json:"asin" validate:"required"`
			AnalysisType string `json:"analysis_type"`
		}
		if err := c.Bind(&req); err != nil {
			logrus.WithError(err).Error("Invalid analysis request")
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		if req.AnalysisType == "" {
			req.AnalysisType = "comprehensive"
		}

		analysis, err := insights.AnalyzeProduct(c.Request().Context(), req.ASIN, req.AnalysisType)
		if err != nil {
			logrus.WithError(err).Error("Product analysis failed")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("Analysis failed: %v", err)})
		}
		return c.JSON(http.StatusOK, map[string]string{"analysis": analysis})
	})

	v1.POST("/ai/generate-insights", func(c echo.Context) error {
		var req struct {
			Data        map[string]interface{} `json:"data" validate:"required"`
			InsightType string                 `json:"insight_type"`
		}
		if err := c.Bind(&req); err != nil {
			logrus.WithError(err).Error("Invalid insights request")
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		if req.InsightType == "" {
			req.InsightType = "trends"
		}

		text, err := insights.GenerateInsights(c.Request().Context(), req.Data, req.InsightType)
		if err != nil {
			logrus.WithError(err).Error("Insight generation failed")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("Insight generation failed: %v", err)})
		}
		return c.JSON(http.StatusOK, map[string]string{"insights": text})
	})

	v1.GET("/ai/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, insights.Health())
	})
}

// queryInt parses an integer query parameter with a default and inclusive
// bounds.
func queryInt(c echo.Context, name string, def, min, max int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Validation(fmt.Sprintf("%s must be an integer", name))
	}
	if value < min || value > max {
		return 0, apperrors.Validation(fmt.Sprintf("%s must be between %d and %d", name, min, max))
	}
	return value, nil
}

func toJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
