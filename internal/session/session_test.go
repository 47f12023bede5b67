// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/reelbudget/internal/assistant"
	"github.com/jeranaias/reelbudget/internal/config"
	"github.com/jeranaias/reelbudget/internal/ledger"
	"github.com/jeranaias/reelbudget/internal/offline"
)

func TestNew_Seeds(t *testing.T) {
	s := New(Options{})

	assert.Equal(t, 1, s.Conversation().Len())
	assert.Equal(t, 0, s.Ledger().Len())
	assert.Equal(t, 3, s.Schedule().Len())
	assert.Equal(t, "Feature Film Project", s.Project().Name)
	assert.Nil(t, s.Client())

	_, ok := s.PendingTemplate()
	assert.False(t, ok)
}

func TestSend_TemplateRoundTrip(t *testing.T) {
	day := time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)
	s := New(Options{Now: func() time.Time { return day }})
	ctx := context.Background()

	_, err := s.Send(ctx, "create a short film template")
	require.NoError(t, err)
	tmpl, ok := s.PendingTemplate()
	require.True(t, ok)
	assert.Equal(t, "Short Film Budget Template", tmpl.Name)

	_, err = s.Send(ctx, "apply it")
	require.NoError(t, err)

	st := s.Ledger().State()
	require.Len(t, st.Items, 5)
	assert.Equal(t, "2024-02-03", st.Items[0].Date)
	assert.True(t, st.TotalBudget.Equal(decimal.NewFromInt(11500)))
	assert.Equal(t, 5, s.Conversation().Len())
}

func TestFromConfig_DelegatesToOllama(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"model":"mistral","response":"Keep 10% for contingency.","done":true}`))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Local.OllamaURL = srv.URL
	cfg.Local.OllamaModel = "mistral"

	s, err := FromConfig(cfg)
	require.NoError(t, err)

	reply, err := s.Send(context.Background(), "how much contingency?")
	require.NoError(t, err)
	assert.Equal(t, assistant.IntentDelegate, reply.Intent)
	assert.Equal(t, "Keep 10% for contingency.", reply.Message.Content)
	assert.Equal(t, "mistral", s.GetStatus().Model)
}

func TestFromConfig_OfflineRejectsRemoteURL(t *testing.T) {
	defer offline.SetOfflineMode(false)

	cfg := config.Default()
	cfg.Local.OfflineMode = true
	cfg.Local.OllamaURL = "http://gpu-box:11434"

	_, err := FromConfig(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, offline.ErrNonLocalhost))
}

func TestFromConfig_OfflineUsesFallback(t *testing.T) {
	defer offline.SetOfflineMode(false)

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Local.OfflineMode = true
	cfg.Local.OllamaURL = srv.URL

	s, err := FromConfig(cfg)
	require.NoError(t, err)

	reply, err := s.Send(context.Background(), "any advice on catering?")
	require.NoError(t, err)
	assert.Equal(t, assistant.FallbackResponse("any advice on catering?"), reply.Message.Content)
	assert.False(t, called)
	assert.True(t, s.GetStatus().Offline)
}

func TestAddEntry(t *testing.T) {
	s := New(Options{})

	item, err := s.AddEntry(ledger.Entry{
		Category:    "Production",
		Subcategory: "Props",
		Description: "Prop weapons",
		Amount:      decimal.NewFromInt(4000),
		Actual:      decimal.NewFromInt(4500),
		Date:        "2024-03-01",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.True(t, item.Variance.Equal(decimal.NewFromInt(500)))

	_, err = s.AddEntry(ledger.Entry{Category: "Production"})
	var verrs ledger.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, 1, s.Ledger().Len())
}

func TestUpdateEntry(t *testing.T) {
	s := New(Options{})
	item, err := s.AddEntry(ledger.Entry{
		Category: "Other", Subcategory: "Legal", Description: "Clearances",
		Amount: decimal.NewFromInt(1000), Date: "2024-05-05",
	})
	require.NoError(t, err)

	updated, ok, err := s.UpdateEntry(item.ID, ledger.Entry{
		Category: "Other", Subcategory: "Legal", Description: "Clearances",
		Amount: decimal.NewFromInt(1000), Actual: decimal.NewFromInt(800),
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-05-05", updated.Date)
	assert.True(t, s.Ledger().State().TotalVariance.Equal(decimal.NewFromInt(-200)))

	_, ok, err = s.UpdateEntry("missing", ledger.Entry{})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSetProject(t *testing.T) {
	s := New(Options{})

	p := s.Project()
	p.Name = "Night Shoot"
	require.NoError(t, s.SetProject(p))
	assert.Equal(t, "Night Shoot", s.Project().Name)

	p.EndDate = "2023-01-01"
	assert.Error(t, s.SetProject(p))
	assert.Equal(t, "Night Shoot", s.Project().Name)

	assert.Equal(t, "Feature Film Project", s.ResetProject().Name)
	assert.Equal(t, config.DefaultProject(), s.Project())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{5 * time.Minute, "5m"},
		{5*time.Minute + 30*time.Second, "5m 30s"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
