// Package api exposes the quote engine over HTTP.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"quote-engine/internal/common/errors"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/common/validation"
	"quote-engine/internal/models"
	"quote-engine/internal/store"
)

// Calculator produces a quote result from an input snapshot.
type Calculator interface {
	Calculate(ctx context.Context, input *models.QuoteInput) (*models.CalculationResult, error)
}

// QuoteStore persists and retrieves quotes.
type QuoteStore interface {
	Save(ctx context.Context, input *models.QuoteInput, result *models.CalculationResult) (*store.Quote, error)
	Get(ctx context.Context, reference string) (*store.Quote, error)
}

// Notifier announces a saved quote to the customer.
type Notifier interface {
	QuoteReady(ctx context.Context, email, phone, reference string, finalInvestmentCents int64) error
}

// RoofAnalyzer fetches roof capacity for an address.
type RoofAnalyzer interface {
	Analyze(ctx context.Context, address string) (*models.RoofCapacity, error)
}

// Server routes quote requests to the engine.
type Server struct {
	calculator Calculator
	quotes     QuoteStore
	notifier   Notifier
	roof       RoofAnalyzer
	logger     logger.Logger
	timeout    time.Duration
}

func NewServer(calculator Calculator, quotes QuoteStore, notifier Notifier, roof RoofAnalyzer, timeout time.Duration, log logger.Logger) *Server {
	return &Server{
		calculator: calculator,
		quotes:     quotes,
		notifier:   notifier,
		roof:       roof,
		logger:     log,
		timeout:    timeout,
	}
}

// Handler builds the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/quotes/calculate", s.handleCalculate)
	mux.HandleFunc("POST /api/v1/quotes", s.handleCreate)
	mux.HandleFunc("GET /api/v1/quotes/{reference}", s.handleGet)
	mux.HandleFunc("GET /api/v1/roof", s.handleRoof)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Contact carries the notification destinations for a saved quote.
type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CreateQuoteRequest is a calculation input plus contact details.
type CreateQuoteRequest struct {
	models.QuoteInput
	Contact Contact `json:"contact"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	var input models.QuoteInput
	if !s.decodeAndValidate(w, r, quoteInputSchema, &input) {
		return
	}

	result, err := s.calculator.Calculate(ctx, &input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	var req CreateQuoteRequest
	if !s.decodeAndValidate(w, r, quoteInputSchema, &req) {
		return
	}
	if req.Contact.Email != "" && !validation.ValidateEmail(req.Contact.Email) {
		s.writeValidationError(w, "contact.email", "invalid email address")
		return
	}
	if req.Contact.Phone != "" && !validation.ValidatePhone(req.Contact.Phone) {
		s.writeValidationError(w, "contact.phone", "invalid phone number")
		return
	}

	result, err := s.calculator.Calculate(ctx, &req.QuoteInput)
	if err != nil {
		s.writeError(w, err)
		return
	}

	quote, err := s.quotes.Save(ctx, &req.QuoteInput, result)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// notification failure never fails the saved quote
	if err := s.notifier.QuoteReady(ctx, req.Contact.Email, req.Contact.Phone,
		quote.Reference, result.FinalInvestmentCents); err != nil {
		s.logger.WithError(err).Warn("Quote notification failed", map[string]interface{}{
			"reference": quote.Reference,
		})
	}

	s.writeJSON(w, http.StatusCreated, quote)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	quote, err := s.quotes.Get(ctx, r.PathValue("reference"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleRoof(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	address := r.URL.Query().Get("address")
	if address == "" {
		s.writeValidationError(w, "address", "address query parameter is required")
		return
	}

	capacity, err := s.roof.Analyze(ctx, address)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, capacity)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, schema *validation.Schema, dst interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.writeValidationError(w, "(body)", "unable to read request body")
		return false
	}

	if result := schema.ValidateBytes(body); !result.Valid {
		s.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"code":    string(errors.ErrCodeInvalidInput),
			"message": "Request failed validation",
			"errors":  result.Errors,
		})
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		s.writeValidationError(w, "(body)", "malformed JSON payload")
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	stdErr, ok := errors.AsStandard(err)
	if !ok {
		s.logger.WithError(err).Error("Unclassified request failure", nil)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    "INTERNAL",
			Message: "internal error",
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case stdErr.Code == errors.ErrCodeQuoteNotFound:
		status = http.StatusNotFound
	case errors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.IsUpstream(err):
		status = http.StatusBadGateway
	case errors.IsInvariant(err):
		s.logger.WithError(err).Error("Calculation invariant violated", nil)
	}

	s.writeJSON(w, status, errorResponse{
		Code:    string(stdErr.Code),
		Message: stdErr.Message,
		Details: stdErr.Details,
	})
}

func (s *Server) writeValidationError(w http.ResponseWriter, field, message string) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    string(errors.ErrCodeInvalidInput),
		Message: "Request failed validation",
		Details: field + ": " + message,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Response encoding failed", nil)
	}
}
