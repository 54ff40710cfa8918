package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(" ", "", "", 0)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "ai.api_key", cfgErr.Setting)
}

func TestOpenAIClientComplete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"reasoning\":\"ok\"}"}}]}`))
	}))
	defer srv.Close()

	c, err := NewOpenAIClient("test-key", srv.URL+"/", "", time.Second)
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIModel, c.Model())

	text, err := c.Complete(context.Background(), CompletionRequest{
		System: "sys", Prompt: "hello", Temperature: 0.7, MaxTokens: 4000, JSON: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"reasoning":"ok"}`, text)

	assert.Equal(t, DefaultOpenAIModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "hello", got.Messages[1].Content)
	assert.Equal(t, 4000, got.MaxTokens)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestOpenAIClientServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
	}))
	defer srv.Close()

	c, err := NewOpenAIClient("k", srv.URL, "m", time.Second)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusTooManyRequests, svcErr.StatusCode)
	assert.Equal(t, "slow down", svcErr.Message)
	assert.True(t, IsRetriable(err))
}

func TestOpenAIClientEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c, err := NewOpenAIClient("k", srv.URL, "m", time.Second)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	var fmtErr *ResponseFormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.False(t, IsRetriable(err))
}

func TestIsRetriable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limited", &ServiceError{StatusCode: 429}, true},
		{"server error", &ServiceError{StatusCode: 503}, true},
		{"bad request", &ServiceError{StatusCode: 400}, false},
		{"unauthorized", &ServiceError{StatusCode: 401}, false},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped deadline", errors.Join(errors.New("attempt"), context.DeadlineExceeded), true},
		{"canceled", context.Canceled, false},
		{"format", &ResponseFormatError{Reason: "x"}, false},
		{"config", &ConfigurationError{Setting: "k"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetriable(tt.err))
		})
	}
}
