package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenescope/scenescope/pkg/shared/config"
)

func testConfig(endpoint string) *config.Config {
	cfg := &config.Config{}
	cfg.Gemini.APIKey = "test-key"
	cfg.Gemini.Endpoint = endpoint
	return cfg
}

func TestNewClientMissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := NewClient(&config.Config{}, hclog.NewNullLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestNewClientEnvAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	client, err := NewClient(&config.Config{}, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMaxContentLength, client.MaxContentLength())
}

func TestGenerateContent(t *testing.T) {
	var gotPath, gotKey string
	var gotRequest generateContentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		response := generateContentResponse{
			Candidates: []candidate{
				{Content: content{Parts: []part{{Text: `[{"scene_number": 1,`}, {Text: ` "severity": "low"}]`}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), hclog.NewNullLogger())
	require.NoError(t, err)

	got, err := client.GenerateContent(context.Background(), "system instructions", "user prompt")
	require.NoError(t, err)

	// parts of the first candidate are concatenated
	assert.Equal(t, `[{"scene_number": 1, "severity": "low"}]`, got)
	assert.Equal(t, "/models/"+config.DefaultGeminiModel+":generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.NotNil(t, gotRequest.SystemInstruction)
	assert.Equal(t, "system instructions", gotRequest.SystemInstruction.Parts[0].Text)
	require.Len(t, gotRequest.Contents, 1)
	assert.Equal(t, "user prompt", gotRequest.Contents[0].Parts[0].Text)
	assert.Equal(t, "application/json", gotRequest.GenerationConfig.ResponseMimeType)
}

func TestGenerateContentAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		response := generateContentResponse{
			Error: &apiStatus{Code: 400, Message: "API key not valid", Status: "INVALID_ARGUMENT"},
		}
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), hclog.NewNullLogger())
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), "", "user prompt")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "INVALID_ARGUMENT", apiErr.Status)
	assert.Contains(t, apiErr.Message, "API key not valid")
}

func TestGenerateContentNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(generateContentResponse{}))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), hclog.NewNullLogger())
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), "", "user prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion")
}
