package ai

import (
	"encoding/json"
	"fmt"
)

// Analysis and insight kinds are closed sets. An unrecognized kind falls
// back to the default rather than failing.
const (
	defaultAnalysisType = "comprehensive"
	defaultInsightType  = "trends"
)

// analysisPrompt builds the deterministic prompt for a product analysis.
func analysisPrompt(asin, analysisType string) string {
	prompts := map[string]string{
		"comprehensive": fmt.Sprintf("Provide a comprehensive analysis of Amazon product %s, including market position, pricing strategy, customer sentiment, and competitive landscape.", asin),
		"price":         fmt.Sprintf("Analyze the pricing strategy and price competitiveness of Amazon product %s.", asin),
		"reviews":       fmt.Sprintf("Analyze customer reviews and sentiment for Amazon product %s.", asin),
		"competition":   fmt.Sprintf("Analyze the competitive landscape for Amazon product %s.", asin),
	}
	if prompt, ok := prompts[analysisType]; ok {
		return prompt
	}
	return prompts[defaultAnalysisType]
}

// insightsPrompt builds the deterministic prompt for analytics insights.
func insightsPrompt(data map[string]interface{}, insightType string) string {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		encoded = []byte("{}")
	}
	prompts := map[string]string{
		"trends":          fmt.Sprintf("Analyze the following analytics data and provide insights on trends:\n%s", encoded),
		"recommendations": fmt.Sprintf("Based on the following data, provide actionable recommendations:\n%s", encoded),
		"predictions":     fmt.Sprintf("Based on the following data, provide predictions for future performance:\n%s", encoded),
	}
	if prompt, ok := prompts[insightType]; ok {
		return prompt
	}
	return prompts[defaultInsightType]
}

// mockAnalysis is the deterministic fallback when no provider is configured.
func mockAnalysis(asin, analysisType string) string {
	templates := map[string]string{
		"comprehensive": "Mock analysis for product %s: the product holds a stable market position with consistent pricing and broadly positive customer sentiment. Configure an AI provider for a full analysis.",
		"price":         "Mock price analysis for product %s: recent observations show pricing in line with category competitors. Configure an AI provider for a full analysis.",
		"reviews":       "Mock review analysis for product %s: customer feedback trends positive with recurring mentions of quality and value. Configure an AI provider for a full analysis.",
		"competition":   "Mock competition analysis for product %s: the product competes in a crowded segment with a handful of dominant alternatives. Configure an AI provider for a full analysis.",
	}
	template, ok := templates[analysisType]
	if !ok {
		template = templates[defaultAnalysisType]
	}
	return fmt.Sprintf(template, asin)
}

// mockInsights is the deterministic fallback when no provider is configured.
func mockInsights(insightType string) string {
	templates := map[string]string{
		"trends":          "Mock insight: metrics over the selected window are steady with no significant trend breaks. Configure an AI provider for richer insights.",
		"recommendations": "Mock insight: focus on the top products by revenue and keep price observations fresh. Configure an AI provider for richer insights.",
		"predictions":     "Mock insight: based on current data, expect metrics to continue at their present level. Configure an AI provider for richer insights.",
	}
	text, ok := templates[insightType]
	if !ok {
		text = templates[defaultInsightType]
	}
	return text
}
