package coachai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aitrainer/internal/telemetry/metrics"
	"github.com/2beens/aitrainer/internal/telemetry/tracing"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"

	planTemperature = 0.7
	tipsTemperature = 0.6

	// error details from the provider are cut to this size before they end up in logs or stored plans
	maxErrBodyLen = 512
)

var (
	ErrMissingAPIKey = errors.New("openai api key not set")
	ErrEmptyResponse = errors.New("empty completion response")
)

// Client talks to an OpenAI compatible chat completions endpoint.
type Client struct {
	apiKey         string
	model          string
	api            *openai.Client
	metricsManager *metrics.Manager
}

func NewClient(
	baseURL, apiKey, model string,
	httpClient *http.Client,
	metricsManager *metrics.Manager,
) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	apiConfig := openai.DefaultConfig(apiKey)
	apiConfig.BaseURL = strings.TrimSuffix(baseURL, "/")
	if httpClient != nil {
		apiConfig.HTTPClient = httpClient
	}

	return &Client{
		apiKey:         apiKey,
		model:          model,
		api:            openai.NewClientWithConfig(apiConfig),
		metricsManager: metricsManager,
	}
}

// Complete sends a single user message and returns the trimmed content of the first choice.
func (c *Client) Complete(ctx context.Context, purpose, prompt string, temperature float64) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coachai.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("ai.purpose", purpose),
		attribute.String("ai.model", c.model),
	)

	begin := time.Now()
	content, err := c.complete(ctx, prompt, temperature)
	c.observe(purpose, begin, err)
	if err != nil {
		return "", err
	}
	return content, nil
}

func (c *Client) complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(temperature),
	})
	if err != nil {
		return "", completionError(err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// completionError flattens the provider errors into one short message with the status code,
// the message ends up in stored plans.
func completionError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion failed with status %d: %s", apiErr.HTTPStatusCode, truncate(apiErr.Message))
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("completion failed with status %d: %s", reqErr.HTTPStatusCode, truncate(fmt.Sprint(reqErr.Err)))
	}
	return fmt.Errorf("completion request: %w", err)
}

func truncate(s string) string {
	if len(s) > maxErrBodyLen {
		return s[:maxErrBodyLen]
	}
	return s
}

func (c *Client) observe(purpose string, begin time.Time, err error) {
	if c.metricsManager == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
		log.Errorf("ai completion [%s]: %s", purpose, err)
	}
	c.metricsManager.CounterAICompletions.With(prometheus.Labels{
		"purpose": purpose,
		"outcome": outcome,
	}).Inc()
	c.metricsManager.HistogramAICompletionDuration.Observe(time.Since(begin).Seconds())
}
