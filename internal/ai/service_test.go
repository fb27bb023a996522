package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amazon-analytics/pkg/config"
)

func TestHealthFlags(t *testing.T) {
	tests := []struct {
		name      string
		openai    string
		anthropic string
		ready     bool
	}{
		{name: "neither", ready: false},
		{name: "openai only", openai: "sk-test", ready: true},
		{name: "anthropic only", anthropic: "ak-test", ready: true},
		{name: "both", openai: "sk-test", anthropic: "ak-test", ready: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(config.Config{OpenAIAPIKey: tt.openai, AnthropicAPIKey: tt.anthropic})
			health := svc.Health()
			assert.Equal(t, tt.openai != "", health.OpenAIAvailable)
			assert.Equal(t, tt.anthropic != "", health.AnthropicAvailable)
			assert.Equal(t, tt.ready, health.ServiceReady)
		})
	}
}

func TestAnalyzeProductMockFallback(t *testing.T) {
	svc := NewService(config.Config{})

	for _, kind := range []string{"comprehensive", "price", "reviews", "competition"} {
		text, err := svc.AnalyzeProduct(context.Background(), "B0TEST123", kind)
		require.NoError(t, err)
		assert.Contains(t, text, "B0TEST123")
		assert.Contains(t, text, "Mock")
	}
}

func TestAnalyzeProductUnknownTypeFallsBackToDefault(t *testing.T) {
	svc := NewService(config.Config{})

	unknown, err := svc.AnalyzeProduct(context.Background(), "B0TEST123", "sentiment")
	require.NoError(t, err)
	comprehensive, err := svc.AnalyzeProduct(context.Background(), "B0TEST123", "comprehensive")
	require.NoError(t, err)
	assert.Equal(t, comprehensive, unknown)
}

func TestGenerateInsightsMockFallback(t *testing.T) {
	svc := NewService(config.Config{})
	data := map[string]interface{}{"total_products": 12}

	for _, kind := range []string{"trends", "recommendations", "predictions"} {
		text, err := svc.GenerateInsights(context.Background(), data, kind)
		require.NoError(t, err)
		assert.NotEmpty(t, text)
	}

	unknown, err := svc.GenerateInsights(context.Background(), data, "forecast")
	require.NoError(t, err)
	trends, err := svc.GenerateInsights(context.Background(), data, "trends")
	require.NoError(t, err)
	assert.Equal(t, trends, unknown)
}

func TestAnalysisPrompt(t *testing.T) {
	prompt := analysisPrompt("B0TEST123", "price")
	assert.Contains(t, prompt, "B0TEST123")
	assert.Contains(t, strings.ToLower(prompt), "pricing")

	// Unrecognized kinds fall back to the comprehensive prompt.
	assert.Equal(t, analysisPrompt("B0TEST123", "comprehensive"), analysisPrompt("B0TEST123", "nonsense"))
}

func TestInsightsPromptEmbedsData(t *testing.T) {
	prompt := insightsPrompt(map[string]interface{}{"revenue": 42.5}, "recommendations")
	assert.Contains(t, prompt, "revenue")
	assert.Contains(t, prompt, "42.5")
}
