// Package api exposes the service over HTTP. Handlers are pure dispatch:
// parse and validate the request, call the owning service, map errors to
// status codes.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"amazon-analytics/internal/ai"
	"amazon-analytics/internal/analytics"
	"amazon-analytics/internal/apperrors"
	"amazon-analytics/internal/models"
	"amazon-analytics/internal/store"
)

// Reconciler is the sync/fallback surface of the reconciliation engine.
type Reconciler interface {
	SyncProduct(ctx context.Context, asin string) (*models.Product, error)
	GetWithFallback(ctx context.Context, asin string) (*models.Product, error)
}

// Marketplace is the slice of the upstream client the handlers call directly.
type Marketplace interface {
	Search(ctx context.Context, query string, pages int) ([]models.CanonicalProduct, error)
	FetchReviews(ctx context.Context, asin string) (models.ReviewSummary, error)
}

// Aggregator is the read-side analytics surface.
type Aggregator interface {
	Overview(ctx context.Context) (analytics.Overview, error)
	TopProducts(ctx context.Context, metric string, limit, days int) ([]store.TopProduct, error)
	Trends(ctx context.Context, days int) ([]store.TrendPoint, error)
}

// InsightGenerator is the AI surface.
type InsightGenerator interface {
	AnalyzeProduct(ctx context.Context, asin, analysisType string) (string, error)
	GenerateInsights(ctx context.Context, data map[string]interface{}, insightType string) (string, error)
	Health() ai.Health
}

type Server struct {
	echo *echo.Echo
	port string
}

// New wires the HTTP surface over the given services.
func New(port string, products store.ProductStore, reconciler Reconciler, marketplace Marketplace, aggregator Aggregator, insights InsightGenerator) *Server {
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	registerHandlers(e, products, reconciler, marketplace, aggregator, insights)

	return &Server{echo: e, port: port}
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	logrus.WithField("port", s.port).Info("Starting API server")
	return s.echo.Start(":" + s.port)
}

// httpError maps service errors to user-visible statuses.
func httpError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
