// Package server exposes the webhook HTTP surface: form submissions in,
// voice-provider events in, status polling out.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/nodari-ai/sales-engine/internal/model"
)

// Inquiries is the orchestration surface the handlers call. Implemented by
// processor.Processor.
type Inquiries interface {
	AcceptFormSubmission(ctx context.Context, raw map[string]any) (*model.InquiryRecord, error)
	HandleCallEvent(ctx context.Context, event model.CallEvent) error
	GetInquiry(ctx context.Context, id string) (*model.InquiryRecord, error)
}

// Server holds the webhook handlers.
type Server struct {
	proc Inquiries
}

// New creates a Server.
func New(proc Inquiries) *Server {
	return &Server{proc: proc}
}

// Routes builds the router with standard middleware.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/webhook", func(r chi.Router) {
		r.Post("/form", s.handleForm)
		r.Post("/call", s.handleCall)
		r.Get("/status/{id}", s.handleStatus)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "sales-engine",
	})
}

// handleForm accepts a raw form payload, creates the inquiry, and returns 202
// immediately; the pipeline runs in the background.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	// Apps Script forwards submissions wrapped in a "body" envelope.
	if inner, ok := raw["body"].(map[string]any); ok {
		raw = inner
	}

	rec, err := s.proc.AcceptFormSubmission(r.Context(), raw)
	if err != nil {
		zap.L().Warn("form submission rejected", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":     "accepted",
		"inquiry_id": rec.ID,
	})
}

// handleCall accepts voice-provider events. Every well-formed event is
// acknowledged with 202; events the processor chooses to ignore are still
// acknowledged so the provider stops retrying.
func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	var envelope struct {
		Body json.RawMessage `json:"body"`
		model.CallEvent
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	event := envelope.CallEvent
	if len(envelope.Body) > 0 {
		if err := json.Unmarshal(envelope.Body, &event); err != nil {
			writeError(w, http.StatusBadRequest, "invalid event envelope")
			return
		}
	}

	if err := s.proc.HandleCallEvent(r.Context(), event); err != nil {
		zap.L().Error("call event handling failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "event processing failed")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// handleStatus returns the polling view of one inquiry.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.proc.GetInquiry(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "inquiry not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"inquiry_id":     rec.ID,
		"company":        rec.CompanyName,
		"email":          rec.Email,
		"status":         rec.Status,
		"lead_score":     rec.LeadScore,
		"lead_category":  rec.LeadCategory,
		"call_id":        rec.CallID,
		"meeting_booked": rec.MeetingBooked,
		"created_at":     rec.CreatedAt,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
