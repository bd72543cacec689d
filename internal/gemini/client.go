package gemini

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/scenescope/scenescope/pkg/shared/config"
	"github.com/scenescope/scenescope/pkg/shared/httpclient"
)

// ErrMissingAPIKey is returned when neither the configuration nor the
// GEMINI_API_KEY environment variable provides a key.
var ErrMissingAPIKey = fmt.Errorf("gemini API key is not configured")

// APIError is a non-2xx answer from the generateContent endpoint. Callers
// may degrade it into a low severity finding instead of failing the run.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API request failed with status %d (%s): %s", e.StatusCode, e.Status, e.Message)
}

// Client talks to the Gemini generateContent REST endpoint.
type Client struct {
	resty            *resty.Client
	logger           hclog.Logger
	apiKey           string
	model            string
	endpoint         string
	maxContentLength int
}

// NewClient builds a Gemini client from the configuration. The API key is
// taken from config first, the GEMINI_API_KEY environment variable second.
func NewClient(cfg *config.Config, logger hclog.Logger) (*Client, error) {
	apiKey := cfg.Gemini.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	restyClient := httpclient.InitializeRestyClient(logger, cfg)
	restyClient.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= http.StatusInternalServerError
	})

	model := cfg.Gemini.Model
	if model == "" {
		model = config.DefaultGeminiModel
	}
	endpoint := strings.TrimSuffix(cfg.Gemini.Endpoint, "/")
	if endpoint == "" {
		endpoint = config.DefaultGeminiEndpoint
	}
	maxContentLength := cfg.Generation.MaxContentLength
	if maxContentLength <= 0 {
		maxContentLength = config.DefaultMaxContentLength
	}

	return &Client{
		resty:            restyClient,
		logger:           logger,
		apiKey:           apiKey,
		model:            model,
		endpoint:         endpoint,
		maxContentLength: maxContentLength,
	}, nil
}

// MaxContentLength returns the configured prompt truncation limit.
func (c *Client) MaxContentLength() int {
	return c.maxContentLength
}

type generateContentRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiStatus  `json:"error,omitempty"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

type apiStatus struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// GenerateContent sends one prompt pair and returns the concatenated text
// of the first candidate. JSON output is requested via the response MIME
// type; rate limited and transient failures are retried by the underlying
// HTTP client.
func (c *Client) GenerateContent(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: userPrompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:      0.2,
			ResponseMimeType: "application/json",
		},
	}
	if strings.TrimSpace(systemPrompt) != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: systemPrompt}}}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)

	var out generateContentResponse
	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", c.apiKey).
		SetBody(reqBody).
		SetResult(&out).
		SetError(&out).
		Post(url)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Status: resp.Status()}
		if out.Error != nil {
			apiErr.Status = out.Error.Status
			apiErr.Message = out.Error.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(resp.Body()))
		}
		return "", apiErr
	}
	if out.Error != nil {
		return "", &APIError{StatusCode: out.Error.Code, Status: out.Error.Status, Message: out.Error.Message}
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no completion")
	}

	var result strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		result.WriteString(p.Text)
	}

	c.logger.Debug("gemini completion received",
		"model", c.model,
		"finishReason", out.Candidates[0].FinishReason,
		"responseLength", result.Len(),
	)

	return strings.TrimSpace(result.String()), nil
}
