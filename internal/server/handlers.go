// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jeranaias/reelbudget/internal/assistant"
	"github.com/jeranaias/reelbudget/internal/config"
	"github.com/jeranaias/reelbudget/internal/export"
	"github.com/jeranaias/reelbudget/internal/ledger"
	"github.com/jeranaias/reelbudget/internal/offline"
	"github.com/jeranaias/reelbudget/internal/report"
	"github.com/jeranaias/reelbudget/internal/schedule"
	"github.com/jeranaias/reelbudget/internal/session"
)

// ============================================================================
// HEALTH HANDLER
// ============================================================================

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status        string         `json:"status"`
	Version       string         `json:"version"`
	OllamaStatus  string         `json:"ollama_status"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Session       session.Status `json:"session"`
}

// handleHealth handles GET /health. Ollama being down only degrades the
// status since chat falls back to canned replies.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:        "ok",
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Session:       s.sess.GetStatus(),
	}

	client := s.sess.Client()
	switch {
	case offline.IsOfflineMode():
		health.OllamaStatus = "offline"
	case client == nil:
		health.OllamaStatus = "not_configured"
	default:
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := client.CheckRunning(ctx); err == nil {
			health.OllamaStatus = "ok"
		} else {
			health.OllamaStatus = "unavailable"
			health.Status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, health)
}

// ============================================================================
// LEDGER HANDLERS
// ============================================================================

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Ledger().State())
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var entry ledger.Entry
	if !decodeJSON(w, r, &entry) {
		return
	}
	item, err := s.sess.AddEntry(entry)
	if err != nil {
		writeValidation(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var entry ledger.Entry
	if !decodeJSON(w, r, &entry) {
		return
	}
	item, ok, err := s.sess.UpdateEntry(r.PathValue("id"), entry)
	if !ok {
		writeError(w, http.StatusNotFound, "Budget item not found")
		return
	}
	if err != nil {
		writeValidation(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.sess.Ledger().DeleteItem(id)
	log.Printf("LEDGER_DELETE | id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleReplaceItems handles PUT /api/budget/items with a JSON array body.
// Items without an ID get one and variance is always recomputed.
func (s *Server) handleReplaceItems(w http.ResponseWriter, r *http.Request) {
	items, err := export.ReadJSON(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Expected a JSON array of budget items")
		return
	}
	s.sess.Ledger().ReplaceAll(items)
	log.Printf("LEDGER_REPLACE | items=%d", len(items))
	writeJSON(w, http.StatusOK, s.sess.Ledger().State())
}

// NameRequest is the body for category and subcategory creation.
type NameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeFieldErrors(w, "Category name is required", []FieldError{{Field: "name", Message: "must not be empty"}})
		return
	}
	s.sess.Ledger().AddCategory(name)
	writeJSON(w, http.StatusCreated, s.sess.Ledger().State())
}

func (s *Server) handleAddSubcategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("name")
	var req NameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.sess.Ledger().State().HasCategory(category) {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeFieldErrors(w, "Subcategory name is required", []FieldError{{Field: "name", Message: "must not be empty"}})
		return
	}
	s.sess.Ledger().AddSubcategory(category, name)
	writeJSON(w, http.StatusCreated, s.sess.Ledger().State())
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, report.Build(s.sess.Ledger().State()))
}

// ============================================================================
// CHAT HANDLERS
// ============================================================================

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Message) > MaxMessageLength {
		writeError(w, http.StatusBadRequest, "Message is too long")
		return
	}

	reply, err := s.sess.Send(r.Context(), req.Message)
	switch {
	case errors.Is(err, assistant.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, "Message must not be empty")
	case errors.Is(err, assistant.ErrBusy):
		writeError(w, http.StatusConflict, "The assistant is still answering the previous message")
	case err != nil:
		log.Printf("CHAT_ERROR | error=%v", err)
		writeError(w, http.StatusInternalServerError, "Request processing failed. Please try again.")
	default:
		writeJSON(w, http.StatusOK, reply)
	}
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Conversation().Messages())
}

func (s *Server) handlePending(w http.ResponseWriter, r *http.Request) {
	t, ok := s.sess.PendingTemplate()
	if !ok {
		writeError(w, http.StatusNotFound, "No template is waiting to be applied")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, assistant.Templates())
}

// ============================================================================
// SCHEDULE AND SETTINGS HANDLERS
// ============================================================================

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Schedule().Items())
}

func (s *Server) handleAddSchedule(w http.ResponseWriter, r *http.Request) {
	var item schedule.Item
	if !decodeJSON(w, r, &item) {
		return
	}
	added, err := s.sess.Schedule().Add(item)
	if err != nil {
		writeValidation(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Project())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	p := s.sess.Project()
	if !decodeJSON(w, r, &p) {
		return
	}
	if err := s.sess.SetProject(p); err != nil {
		writeValidation(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sess.Project())
}

// ============================================================================
// MODELS HANDLER
// ============================================================================

// ModelsResponse lists the models installed in Ollama.
type ModelsResponse struct {
	Current string      `json:"current"`
	Models  []ModelInfo `json:"models"`
}

// ModelInfo is one installed model.
type ModelInfo struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// handleModels handles GET /api/models.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	client := s.sess.Client()
	if client == nil || offline.IsOfflineMode() {
		writeError(w, http.StatusServiceUnavailable, "Ollama is not available")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	models, err := client.ListModels(ctx)
	if err != nil {
		log.Printf("MODELS_ERROR | error=%v", err)
		writeError(w, http.StatusServiceUnavailable, "Ollama is not available")
		return
	}

	resp := ModelsResponse{Current: client.GetDefaultModel(), Models: []ModelInfo{}}
	for _, m := range models {
		resp.Models = append(resp.Models, ModelInfo{Name: m.Name, Size: m.FormatSize()})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ============================================================================
// VALIDATION
// ============================================================================

// writeValidation maps the validation error types of the ledger, schedule
// and config packages to a 400 with field details.
func writeValidation(w http.ResponseWriter, err error) {
	var fields []FieldError

	var ledgerErrs ledger.ValidationErrors
	var configErrs config.ValidateErrors
	var schedErr *schedule.ValidationError
	switch {
	case errors.As(err, &ledgerErrs):
		for _, e := range ledgerErrs {
			fields = append(fields, FieldError{Field: e.Field, Message: e.Message})
		}
	case errors.As(err, &configErrs):
		for _, e := range configErrs {
			fields = append(fields, FieldError{Field: e.Field, Message: e.Message})
		}
	case errors.As(err, &schedErr):
		fields = append(fields, FieldError{Field: schedErr.Field, Message: schedErr.Message})
	default:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	message := "Invalid input"
	if len(fields) > 0 {
		message = fields[0].Message
	}
	writeFieldErrors(w, message, fields)
}
