// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/reelbudget/internal/assistant"
	"github.com/jeranaias/reelbudget/internal/config"
	"github.com/jeranaias/reelbudget/internal/ledger"
	"github.com/jeranaias/reelbudget/internal/model"
	"github.com/jeranaias/reelbudget/internal/offline"
	"github.com/jeranaias/reelbudget/internal/ollama"
	"github.com/jeranaias/reelbudget/internal/schedule"
	"github.com/jeranaias/reelbudget/internal/scratch"
)

// =============================================================================
// SESSION
// =============================================================================

// Session is the application context for one running process. It owns the
// budget ledger, the chat log, the pending template slot, the dispatcher
// that ties them together, the production schedule and the project
// settings. Every surface (TUI, REPL, HTTP API) works on one Session.
type Session struct {
	id        string
	startTime time.Time

	ledger     *ledger.Store
	conv       *model.Conversation
	pending    *scratch.Slot[assistant.Template]
	dispatcher *assistant.Dispatcher
	schedule   *schedule.List
	client     *ollama.Client

	mu           sync.Mutex
	project      config.ProjectConfig
	lastActivity time.Time
}

// Options holds the collaborators of a new Session.
type Options struct {
	// Project settings (default: config.DefaultProject())
	Project *config.ProjectConfig

	// Client is the Ollama client. Nil means every free-form question gets
	// a canned reply.
	Client *ollama.Client

	// Generator overrides Client for delegation. Used by tests.
	Generator assistant.Generator

	// Timeout bounds one language model call (default: assistant.DefaultTimeout)
	Timeout time.Duration

	// Offline forces canned replies.
	Offline bool

	// Schedule seeds the schedule (default: schedule.DefaultItems())
	Schedule []schedule.Item

	// Now is the clock used for template item dates (default: time.Now)
	Now func() time.Time
}

// New creates a Session from explicit options.
func New(opts Options) *Session {
	now := time.Now()

	project := config.DefaultProject()
	if opts.Project != nil {
		project = *opts.Project
	}

	seed := opts.Schedule
	if seed == nil {
		seed = schedule.DefaultItems()
	}

	s := &Session{
		id:           generateSessionID(),
		startTime:    now,
		ledger:       ledger.NewStore(),
		conv:         model.NewConversation(),
		pending:      scratch.NewSlot[assistant.Template](assistant.PendingKey),
		schedule:     schedule.NewList(seed...),
		client:       opts.Client,
		project:      project,
		lastActivity: now,
	}

	var gen assistant.Generator
	switch {
	case opts.Generator != nil:
		gen = opts.Generator
	case opts.Client != nil:
		gen = opts.Client
	}

	dopts := []assistant.Option{assistant.WithOffline(opts.Offline)}
	if opts.Timeout > 0 {
		dopts = append(dopts, assistant.WithTimeout(opts.Timeout))
	}
	if opts.Now != nil {
		dopts = append(dopts, assistant.WithClock(opts.Now))
	}
	s.dispatcher = assistant.New(s.ledger, s.conv, s.pending, gen, dopts...)

	log.Printf("SESSION_START | id=%s offline=%v", s.id, opts.Offline)
	return s
}

// FromConfig builds a Session from loaded configuration. It applies the
// offline switch and rejects an Ollama URL that offline mode forbids.
func FromConfig(cfg *config.Config) (*Session, error) {
	offline.SetOfflineMode(cfg.Local.OfflineMode)
	if err := offline.ValidateOllamaURL(cfg.Local.OllamaURL); err != nil {
		return nil, fmt.Errorf("ollama url %q: %w", cfg.Local.OllamaURL, err)
	}

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.Local.OllamaURL,
		Timeout:      cfg.Timeout(),
		DefaultModel: cfg.Local.OllamaModel,
	})

	project := cfg.Project
	return New(Options{
		Project: &project,
		Client:  client,
		Timeout: cfg.Timeout(),
		Offline: cfg.Local.OfflineMode,
	}), nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Ledger returns the budget store.
func (s *Session) Ledger() *ledger.Store { return s.ledger }

// Conversation returns the chat log.
func (s *Session) Conversation() *model.Conversation { return s.conv }

// Dispatcher returns the chat dispatcher.
func (s *Session) Dispatcher() *assistant.Dispatcher { return s.dispatcher }

// Schedule returns the production schedule.
func (s *Session) Schedule() *schedule.List { return s.schedule }

// Client returns the Ollama client, or nil when none is configured.
func (s *Session) Client() *ollama.Client { return s.client }

// PendingTemplate returns the template awaiting "apply", if any.
func (s *Session) PendingTemplate() (assistant.Template, bool) {
	return s.pending.Get()
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Send forwards one chat message to the dispatcher.
func (s *Session) Send(ctx context.Context, input string) (assistant.Reply, error) {
	s.RecordActivity()
	return s.dispatcher.Send(ctx, input)
}

// AddEntry validates a form entry and appends it to the ledger.
func (s *Session) AddEntry(e ledger.Entry) (ledger.Item, error) {
	s.RecordActivity()
	if err := e.Validate(s.ledger.State()); err != nil {
		return ledger.Item{}, err
	}
	item := e.Item(ledger.NewID(), time.Now())
	s.ledger.AddItem(item)
	log.Printf("LEDGER_ADD | id=%s category=%s amount=%s", item.ID, item.Category, item.Amount)
	return item, nil
}

// UpdateEntry validates a form entry and replaces the item with id.
// ok is false when no such item exists.
func (s *Session) UpdateEntry(id string, e ledger.Entry) (item ledger.Item, ok bool, err error) {
	s.RecordActivity()
	st := s.ledger.State()
	existing, found := st.FindItem(id)
	if !found {
		return ledger.Item{}, false, nil
	}
	if err := e.Validate(st); err != nil {
		return ledger.Item{}, true, err
	}
	if e.Date == "" {
		e.Date = existing.Date
	}
	item = e.Item(id, time.Now())
	s.ledger.UpdateItem(item)
	log.Printf("LEDGER_UPDATE | id=%s", id)
	return item, true, nil
}

// Project returns the current project settings.
func (s *Session) Project() config.ProjectConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project
}

// SetProject validates and installs new project settings.
func (s *Session) SetProject(p config.ProjectConfig) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.project = p
	s.lastActivity = time.Now()
	s.mu.Unlock()
	return nil
}

// ResetProject restores the default project settings.
func (s *Session) ResetProject() config.ProjectConfig {
	p := config.DefaultProject()
	s.mu.Lock()
	s.project = p
	s.mu.Unlock()
	return p
}

// RecordActivity updates the last activity timestamp.
func (s *Session) RecordActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status is a point-in-time summary of the session.
type Status struct {
	SessionID   string        `json:"session_id"`
	StartTime   time.Time     `json:"start_time"`
	Duration    time.Duration `json:"duration"`
	IdleTime    time.Duration `json:"idle_time"`
	Items       int           `json:"items"`
	Messages    int           `json:"messages"`
	Events      int           `json:"events"`
	Busy        bool          `json:"busy"`
	HasTemplate bool          `json:"has_template"`
	Offline     bool          `json:"offline"`
	Model       string        `json:"model,omitempty"`
}

// GetStatus returns the current session status.
func (s *Session) GetStatus() Status {
	s.mu.Lock()
	last := s.lastActivity
	s.mu.Unlock()

	now := time.Now()
	_, hasTemplate := s.pending.Get()
	st := Status{
		SessionID:   s.id,
		StartTime:   s.startTime,
		Duration:    now.Sub(s.startTime),
		IdleTime:    now.Sub(last),
		Items:       s.ledger.Len(),
		Messages:    s.conv.Len(),
		Events:      s.schedule.Len(),
		Busy:        s.dispatcher.Busy(),
		HasTemplate: hasTemplate,
		Offline:     offline.IsOfflineMode(),
	}
	if s.client != nil {
		st.Model = s.client.GetDefaultModel()
	}
	return st
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateSessionID creates a unique session ID.
func generateSessionID() string {
	return "sess_" + uuid.New().String()[:8]
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
