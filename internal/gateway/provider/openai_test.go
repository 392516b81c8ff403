package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIChatCall(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"choices": [{"message": {"content": "HOLD\nSteady."}}]}`))
	}))
	defer srv.Close()

	c := &OpenAIChatClient{
		BaseURL:    srv.URL + "/v1",
		APIKey:     "sk-test",
		Model:      "gpt-4o-mini",
		HTTPClient: srv.Client(),
	}
	out, err := c.CallWithMessages(context.Background(), ChatPayload{
		System:    "You are an analyst.",
		User:      "Analyze AAPL.",
		MaxTokens: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, "HOLD\nSteady.", out)

	assert.Equal(t, "gpt-4o-mini", captured["model"])
	assert.EqualValues(t, 500, captured["max_tokens"])
	msgs := captured["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
}

func TestOpenAIChatEndpointNormalization(t *testing.T) {
	c := &OpenAIChatClient{}
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", c.endpoint())

	c.BaseURL = "https://api.groq.com/openai/v1/"
	assert.Equal(t, "https://api.groq.com/openai/v1/chat/completions", c.endpoint())

	c.BaseURL = "https://api.groq.com/openai/v1/chat/completions"
	assert.Equal(t, "https://api.groq.com/openai/v1/chat/completions", c.endpoint())
}

func TestOpenAIChatErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "Incorrect API key provided"}}`))
	}))
	defer srv.Close()

	c := &OpenAIChatClient{BaseURL: srv.URL, APIKey: "bad", Model: "m", HTTPClient: srv.Client()}
	_, err := c.CallWithMessages(context.Background(), ChatPayload{User: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
	assert.Contains(t, err.Error(), "Incorrect API key")
}

func TestOpenAIChatEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := &OpenAIChatClient{BaseURL: srv.URL, Model: "m", HTTPClient: srv.Client()}
	_, err := c.CallWithMessages(context.Background(), ChatPayload{User: "hi"})
	assert.ErrorContains(t, err, "empty choices")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "****5678", maskKey("sk-12345678"))
	assert.Equal(t, "****", maskKey("ab"))
	assert.Equal(t, "****", maskKey(""))
}
