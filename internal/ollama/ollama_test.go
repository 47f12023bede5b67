// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

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

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfig_FillsDefaults(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{})

	cfg := c.GetConfig()
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.DefaultModel != "llama2" {
		t.Errorf("DefaultModel = %q, want 'llama2'", cfg.DefaultModel)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
}

func TestNewClientWithConfig_TrimsTrailingSlash(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{BaseURL: "http://127.0.0.1:9999/"})
	if got := c.GetConfig().BaseURL; got != "http://127.0.0.1:9999" {
		t.Errorf("BaseURL = %q", got)
	}
}

func TestSetModel(t *testing.T) {
	c := NewClient()
	c.SetModel("mistral")
	if c.GetDefaultModel() != "mistral" {
		t.Errorf("GetDefaultModel() = %q, want 'mistral'", c.GetDefaultModel())
	}
}

// =============================================================================
// GENERATE TESTS
// =============================================================================

func TestGenerate_SendsNonStreamingRequest(t *testing.T) {
	var got GenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(GenerateResponse{Model: got.Model, Response: "Budget wisely.", Done: true})
	}))
	defer srv.Close()

	c := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, DefaultModel: "llama2"})
	resp, err := c.Generate(context.Background(), "", "hello")
	require.NoError(t, err)

	assert.Equal(t, "Budget wisely.", resp.Response)
	assert.Equal(t, "llama2", got.Model)
	assert.Equal(t, "hello", got.Prompt)
	assert.False(t, got.Stream)
}

func TestGenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"model":"llama2","response":"ok","done":true}`))
	}))
	defer srv.Close()

	text, err := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL}).GenerateText(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func TestGenerate_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType ErrorType
		wantMsg  string
	}{
		{"not found", http.StatusNotFound, "", ErrTypeModelNotFound, "model not found"},
		{"server error with body", http.StatusInternalServerError, `{"error":"out of memory"}`, ErrTypeInvalidResponse, "out of memory"},
		{"server error plain", http.StatusBadGateway, "", ErrTypeInvalidResponse, "generate request failed: 502 Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL}).Generate(context.Background(), "", "x")
			require.Error(t, err)

			var ce *ClientError
			require.True(t, errors.As(err, &ce))
			if ce.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", ce.Type, tt.wantType)
			}
			if ce.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", ce.Error(), tt.wantMsg)
			}
		})
	}
}

func TestGenerate_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL}).Generate(context.Background(), "", "x")
	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrTypeInvalidResponse, ce.Type)
}

func TestGenerate_NotRunning(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClientWithConfig(&ClientConfig{BaseURL: url}).Generate(context.Background(), "", "x")
	require.Error(t, err)
	assert.True(t, IsNotRunning(err), "err = %v", err)
}

func TestGenerate_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Generate(context.Background(), "", "x")
	require.Error(t, err)
	assert.True(t, IsTimeout(err), "err = %v", err)
}

// =============================================================================
// MODEL LIST / HEALTH TESTS
// =============================================================================

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[{"name":"llama2:latest","size":3825819519},{"name":"mistral:7b","size":4109865159}]}`))
	}))
	defer srv.Close()

	c := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	models, err := c.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "llama2:latest", models[0].Name)
	assert.True(t, c.IsAvailable(context.Background()))
}

func TestIsAvailable_FalseOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	assert.False(t, NewClientWithConfig(&ClientConfig{BaseURL: srv.URL}).IsAvailable(context.Background()))
}

func TestCheckRunning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Ollama is running"))
	}))
	defer srv.Close()

	assert.NoError(t, NewClientWithConfig(&ClientConfig{BaseURL: srv.URL}).CheckRunning(context.Background()))
}

// =============================================================================
// TYPE HELPER TESTS
// =============================================================================

func TestModelInfo_FormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3825819519, "3.6 GB"},
	}

	for _, tt := range tests {
		m := ModelInfo{Size: tt.size}
		if got := m.FormatSize(); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestGenerateResponse_TokensPerSecond(t *testing.T) {
	r := GenerateResponse{EvalCount: 100, EvalDuration: int64(2 * time.Second)}
	if got := r.TokensPerSecond(); got != 50 {
		t.Errorf("TokensPerSecond() = %v, want 50", got)
	}

	var zero GenerateResponse
	if got := zero.TokensPerSecond(); got != 0 {
		t.Errorf("TokensPerSecond() = %v, want 0", got)
	}
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, IsNotRunning(ErrNotRunning))
	assert.True(t, IsTimeout(ErrTimeout))
	assert.True(t, IsModelNotFound(ErrModelNotFound))
	assert.False(t, IsTimeout(errors.New("boom")))

	wrapped := &ClientError{Type: ErrTypeConnection, Message: "dial", Cause: errors.New("refused")}
	assert.Equal(t, "dial: refused", wrapped.Error())
	assert.Equal(t, "connection", wrapped.Type.String())
}
