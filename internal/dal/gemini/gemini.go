package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"
)

// PlaceholderAPIKey is the documented placeholder that ships in .env.example.
// A key equal to it is treated the same as no key at all.
const PlaceholderAPIKey = "your_gemini_api_key_here"

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel    = "gemini-1.5-flash"
)

// Client calls the Google Gemini generateContent API.
type Client struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client
}

// option is a function that configures the Client.
type option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithEndpoint overrides the API base URL, mainly for tests.
func WithEndpoint(endpoint string) option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// NewClient creates a Gemini client from GEMINI_API_KEY and viper config.
func NewClient(opts ...option) *Client {
	endpoint := viper.GetString("ai.endpoint")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	model := viper.GetString("ai.model")
	if model == "" {
		model = defaultModel
	}

	c := &Client{
		apiKey:     os.Getenv("GEMINI_API_KEY"),
		endpoint:   endpoint,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HasAPIKey reports whether a usable API key is configured.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != "" && c.apiKey != PlaceholderAPIKey
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends the prompt to Gemini and returns the model text verbatim.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 256,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %s", resp.Status)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}
