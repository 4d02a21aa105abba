package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardcomply/internal/config"
	"cardcomply/internal/domain"
	"cardcomply/internal/generator"
	"cardcomply/internal/generator/gemini"
	"cardcomply/internal/port"
)

const testKey = "AIzaTestKey0123456789abcdef"

func newTestGenerator(serverURL string) *gemini.Generator {
	return gemini.NewGeneratorWithEndpoint(&config.GeneratorProviderConfig{
		Provider:     "gemini",
		APIKey:       testKey,
		DefaultModel: "gemini-2.0-flash",
	}, serverURL)
}

func TestGeminiGenerator_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testKey, r.Header.Get("x-goog-api-key"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		sys := reqBody["systemInstruction"].(map[string]interface{})["parts"].([]interface{})
		assert.Equal(t, "be strict", sys[0].(map[string]interface{})["text"])

		contents := reqBody["contents"].([]interface{})
		parts := contents[0].(map[string]interface{})["parts"].([]interface{})
		require.Len(t, parts, 2)
		inline := parts[0].(map[string]interface{})["inline_data"].(map[string]interface{})
		assert.Equal(t, "image/jpeg", inline["mime_type"])
		assert.Equal(t, "review", parts[1].(map[string]interface{})["text"])

		cfg := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, float64(2048), cfg["maxOutputTokens"])

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"TRADEMARK: PASS"},{"text":"DISCLOSURES: FAIL"}]}}]}`))
	}))
	defer server.Close()

	out, err := newTestGenerator(server.URL).Generate(context.Background(), port.GenerateInput{
		Prompt: "review",
		System: "be strict",
		Images: []port.GenerateImage{{Data: []byte{0xFF, 0xD8}, ContentType: "image/jpeg"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "TRADEMARK: PASS\nDISCLOSURES: FAIL", out.Text)
}

func TestGeminiGenerator_Generate_Failures(t *testing.T) {
	t.Run("rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := newTestGenerator(server.URL).Generate(context.Background(), port.GenerateInput{Prompt: "x"})
		var rlErr *generator.RateLimitError
		require.True(t, errors.As(err, &rlErr))
		assert.Equal(t, "gemini", rlErr.Provider)
	})

	t.Run("no candidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}))
		defer server.Close()

		_, err := newTestGenerator(server.URL).Generate(context.Background(), port.GenerateInput{Prompt: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no candidates")
	})

	t.Run("gif rejected", func(t *testing.T) {
		_, err := newTestGenerator("http://unused").Generate(context.Background(), port.GenerateInput{
			Prompt: "x",
			Images: []port.GenerateImage{{ContentType: "image/gif"}},
		})
		require.Error(t, err)
	})
}

func TestGeminiGenerator_Ready(t *testing.T) {
	assert.NoError(t, newTestGenerator("http://unused").Ready())

	g := gemini.NewGenerator(&config.GeneratorProviderConfig{APIKey: "sk-wrong-prefix-0123456789"})
	assert.ErrorIs(t, g.Ready(), domain.ErrAnalysisNotConfigured)
}
