package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasAPIKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{name: "unset", key: "", want: false},
		{name: "placeholder", key: PlaceholderAPIKey, want: false},
		{name: "real key", key: "AIzaSyTest123", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", tt.key)
			assert.Equal(t, tt.want, NewClient().HasAPIKey())
		})
	}
}

func TestGenerateContent(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)
		assert.Equal(t, 0.7, req.GenerationConfig.Temperature)
		assert.Equal(t, 256, req.GenerationConfig.MaxOutputTokens)

		_ = json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []part{{Text: "world"}}}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))

	text, err := c.GenerateContent(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "world", text)
}

func TestGenerateContentNon200(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))

	_, err := c.GenerateContent(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateContentNoCandidates(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))

	_, err := c.GenerateContent(context.Background(), "hello")
	require.Error(t, err)
}

func TestGenerateContentTransportError(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // closed on purpose

	c := NewClient(WithEndpoint(srv.URL))

	_, err := c.GenerateContent(context.Background(), "hello")
	require.Error(t, err)
}
