// Package ai formats canonical prompts from structured inputs and forwards
// them to a text-generation provider when one is configured. Without a
// provider every operation returns a deterministic mock response, never an
// error; availability is advisory and exposed through Health.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"amazon-analytics/pkg/config"
)

const (
	openAIURL    = "https://api.openai.com/v1/chat/completions"
	anthropicURL = "https://api.anthropic.com/v1/messages"

	requestTimeout = 30 * time.Second
)

// Health reports provider availability as two independent flags.
type Health struct {
	OpenAIAvailable    bool `json:"openai_available"`
	AnthropicAvailable bool `json:"anthropic_available"`
	ServiceReady       bool `json:"service_ready"`
}

type Service struct {
	openAIKey    string
	anthropicKey string
	http         *http.Client
}

// NewService builds the insight generator. Provider preference is fixed:
// OpenAI first, then Anthropic, then the mock fallback.
func NewService(cfg config.Config) *Service {
	return &Service{
		openAIKey:    cfg.OpenAIAPIKey,
		anthropicKey: cfg.AnthropicAPIKey,
		http:         &http.Client{Timeout: requestTimeout},
	}
}

// Health reports which providers are configured.
func (s *Service) Health() Health {
	return Health{
		OpenAIAvailable:    s.openAIKey != "",
		AnthropicAvailable: s.anthropicKey != "",
		ServiceReady:       s.openAIKey != "" || s.anthropicKey != "",
	}
}

// AnalyzeProduct produces a human-readable analysis of one product.
func (s *Service) AnalyzeProduct(ctx context.Context, asin, analysisType string) (string, error) {
	prompt := analysisPrompt(asin, analysisType)

	switch {
	case s.openAIKey != "":
		return s.callOpenAI(ctx, prompt)
	case s.anthropicKey != "":
		return s.callAnthropic(ctx, prompt)
	default:
		return mockAnalysis(asin, analysisType), nil
	}
}

// GenerateInsights produces a human-readable reading of analytics data.
func (s *Service) GenerateInsights(ctx context.Context, data map[string]interface{}, insightType string) (string, error) {
	prompt := insightsPrompt(data, insightType)

	switch {
	case s.openAIKey != "":
		return s.callOpenAI(ctx, prompt)
	case s.anthropicKey != "":
		return s.callAnthropic(ctx, prompt)
	default:
		return mockInsights(insightType), nil
	}
}

func (s *Service) callOpenAI(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model": "gpt-4o-mini",
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	headers := map[string]string{"Authorization": "Bearer " + s.openAIKey}
	if err := s.post(ctx, openAIURL, headers, payload, &result); err != nil {
		logrus.WithError(err).Error("OpenAI request failed")
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: empty completion")
	}
	return result.Choices[0].Message.Content, nil
}

func (s *Service) callAnthropic(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model":      "claude-3-haiku-20240307",
		"max_tokens": 1024,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	headers := map[string]string{
		"x-api-key":         s.anthropicKey,
		"anthropic-version": "2023-06-01",
	}
	if err := s.post(ctx, anthropicURL, headers, payload, &result); err != nil {
		logrus.WithError(err).Error("Anthropic request failed")
		return "", err
	}
	if len(result.Content) == 0 {
		return "", fmt.Errorf("anthropic: empty completion")
	}
	return result.Content[0].Text, nil
}

func (s *Service) post(ctx context.Context, url string, headers map[string]string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("content-type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	return json.Unmarshal(data, out)
}
