// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jeranaias/reelbudget/internal/ledger"
	"github.com/jeranaias/reelbudget/internal/model"
	"github.com/jeranaias/reelbudget/internal/scratch"
	"github.com/jeranaias/reelbudget/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyInput is returned for blank messages; nothing is logged.
	ErrEmptyInput = errors.New("message is empty")

	// ErrBusy is returned while another message is still being answered.
	ErrBusy = errors.New("assistant is busy with another message")

	// ErrOffline marks a delegation skipped because network use is disabled.
	ErrOffline = errors.New("language model disabled in offline mode")
)

// Fixed replies for the apply branch.
const (
	NoTemplateMessage = "❌ No template available to apply. Please create a template first."
	appliedMessage    = "✅ **Template Applied Successfully!**\n\nI've added %d budget items to your project. " +
		"You can now review and adjust them in the Budget section."
)

// PendingKey is the scratch key for the template awaiting application.
const PendingKey = "currentTemplate"

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Generator produces free-text completions. *ollama.Client satisfies it.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Ledger is the part of the budget store the assistant reads and writes.
type Ledger interface {
	State() ledger.State
	AddItem(item ledger.Item)
}

// =============================================================================
// DISPATCHER
// =============================================================================

// Reply is the assistant's answer to one message.
type Reply struct {
	Message model.Message `json:"message"`
	Intent  Intent        `json:"intent"`
}

// Dispatcher routes chat messages to template generation, analysis,
// template application or the language model. One message is handled at a
// time.
type Dispatcher struct {
	ledger  Ledger
	conv    *model.Conversation
	pending *scratch.Slot[Template]
	gen     Generator

	timeout time.Duration
	offline bool
	now     func() time.Time
	newID   func() string

	busy atomic.Bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimeout bounds each language model call.
func WithTimeout(d time.Duration) Option {
	return func(x *Dispatcher) { x.timeout = d }
}

// WithOffline disables language model calls; every delegation falls back.
func WithOffline(offline bool) Option {
	return func(x *Dispatcher) { x.offline = offline }
}

// WithClock sets the clock used to date applied template items.
func WithClock(now func() time.Time) Option {
	return func(x *Dispatcher) { x.now = now }
}

// WithIDFunc sets the generator for applied item IDs.
func WithIDFunc(fn func() string) Option {
	return func(x *Dispatcher) { x.newID = fn }
}

// DefaultTimeout bounds a language model call when no option is given.
const DefaultTimeout = 60 * time.Second

// New creates a Dispatcher. gen may be nil, in which case every delegation
// uses the canned fallback.
func New(l Ledger, conv *model.Conversation, pending *scratch.Slot[Template], gen Generator, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		ledger:  l,
		conv:    conv,
		pending: pending,
		gen:     gen,
		timeout: DefaultTimeout,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Busy reports whether a message is currently being answered.
func (d *Dispatcher) Busy() bool {
	return d.busy.Load()
}

// Pending returns the template waiting to be applied, if any.
func (d *Dispatcher) Pending() (Template, bool) {
	return d.pending.Get()
}

// Conversation returns the chat log the dispatcher appends to.
func (d *Dispatcher) Conversation() *model.Conversation {
	return d.conv
}

// Send handles one user message. It appends the user message and then the
// assistant reply to the conversation. Processing failures never escape:
// they become a fallback or apology reply. The only errors are
// ErrEmptyInput and ErrBusy, and in both cases the log is untouched.
func (d *Dispatcher) Send(ctx context.Context, input string) (Reply, error) {
	if strings.TrimSpace(input) == "" {
		return Reply{}, ErrEmptyInput
	}
	if !d.busy.CompareAndSwap(false, true) {
		return Reply{}, ErrBusy
	}
	defer d.busy.Store(false)

	d.conv.AddUserMessage(input)

	intent := Classify(input)
	log.Printf("CHAT_INTENT | intent=%s input=%q", intent, util.TruncateRunes(input, 40))
	start := time.Now()
	content := d.respondSafely(ctx, intent, input)
	log.Printf("CHAT_REPLY | intent=%s chars=%d duration=%s", intent, len(content), time.Since(start).Round(time.Millisecond))

	msg := d.conv.AddAssistantMessage(content)
	return Reply{Message: msg, Intent: intent}, nil
}

func (d *Dispatcher) respondSafely(ctx context.Context, intent Intent, input string) (content string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("CHAT_PANIC | intent=%s error=%v", intent, r)
			content = Apology
		}
	}()
	return d.respond(ctx, intent, input)
}

func (d *Dispatcher) respond(ctx context.Context, intent Intent, input string) string {
	switch intent {
	case IntentGenerateTemplate:
		return d.generateTemplate(input)
	case IntentAnalyze:
		return Analyze(d.ledger.State())
	case IntentApplyTemplate:
		return d.applyTemplate()
	default:
		return Resolve(input, d.complete(ctx, input))
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

func (d *Dispatcher) generateTemplate(input string) string {
	t := TemplateFor(DetectProjectType(input))
	d.pending.Set(t)
	log.Printf("TEMPLATE_PENDING | type=%s items=%d", t.Type, len(t.Items))
	return RenderTemplate(t)
}

func (d *Dispatcher) applyTemplate() string {
	t, ok := d.pending.Take()
	if !ok {
		return NoTemplateMessage
	}

	date := d.now().Format(ledger.DateLayout)
	for _, it := range t.Items {
		d.ledger.AddItem(ledger.Item{
			ID:          d.newID(),
			Category:    it.Category,
			Subcategory: it.Subcategory,
			Description: it.Description,
			Amount:      it.Amount,
			Actual:      decimal.Zero,
			Notes:       "Template item from " + t.Name,
			Date:        date,
		}.Normalized())
	}
	log.Printf("TEMPLATE_APPLIED | type=%s items=%d", t.Type, len(t.Items))
	return fmt.Sprintf(appliedMessage, len(t.Items))
}

// complete asks the language model for a reply. It never panics on a nil
// generator and always returns a Completion value.
func (d *Dispatcher) complete(ctx context.Context, input string) Completion {
	if d.offline || d.gen == nil {
		return Completion{Err: ErrOffline}
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	text, err := d.gen.GenerateText(ctx, FormatPrompt(input))
	if err != nil {
		log.Printf("LLM_FALLBACK | error=%v", err)
		return Completion{Err: err}
	}
	return Completion{Text: text}
}
