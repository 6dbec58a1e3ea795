package textgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aifitness/planner/internal/config"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), config.LLMConfig{Provider: ProviderGroq})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.LLMConfig{Provider: "llamafarm", APIKey: "k"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestOpenAIGenerator_SendsPromptAndBudget(t *testing.T) {
	var got struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "llama-3.3-70b-versatile",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "DIET PLAN\nfoo\nWORKOUT PLAN\nbar"}
			}]
		}`))
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator("test-key", srv.URL, groqModel)
	text, err := gen.Generate(context.Background(), "make me a plan", 4000)

	require.NoError(t, err)
	assert.Equal(t, "DIET PLAN\nfoo\nWORKOUT PLAN\nbar", text)
	assert.Equal(t, groqModel, got.Model)
	assert.Equal(t, 4000, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "make me a plan", got.Messages[0].Content)
}

func TestOpenAIGenerator_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator("k", srv.URL, "m")
	_, err := gen.Generate(context.Background(), "p", 10)

	assert.ErrorIs(t, err, ErrEmptyResponse)
}
