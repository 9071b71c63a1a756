// Package store persists generated quotes to Postgres.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"quote-engine/internal/common/errors"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/models"
)

// Quote is a persisted calculation with its customer-facing reference.
type Quote struct {
	Reference string                   `json:"reference"`
	CreatedAt time.Time                `json:"createdAt"`
	Input     models.QuoteInput        `json:"input"`
	Result    models.CalculationResult `json:"result"`
}

// Store writes and reads quotes.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func New(db *sql.DB, log logger.Logger) *Store {
	return &Store{db: db, logger: log}
}

// newReference generates a short customer-facing quote reference.
func newReference() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "SQ-" + id[:8]
}

// Save persists the input snapshot and its result under a fresh reference.
func (s *Store) Save(ctx context.Context, input *models.QuoteInput, result *models.CalculationResult) (*Quote, error) {
	quote := &Quote{
		Reference: newReference(),
		CreatedAt: time.Now().UTC(),
		Input:     *input,
		Result:    *result,
	}

	inputJSON, err := json.Marshal(input)
	if err != nil {
		return nil, errors.NewQuoteStoreFailedError(err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, errors.NewQuoteStoreFailedError(err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes (reference, input, result, final_investment_cents, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		quote.Reference, inputJSON, resultJSON, result.FinalInvestmentCents, quote.CreatedAt,
	)
	if err != nil {
		s.logger.WithError(err).Error("Quote insert failed", map[string]interface{}{
			"reference": quote.Reference,
		})
		return nil, errors.NewQuoteStoreFailedError(err)
	}

	s.logger.Info("Quote saved", map[string]interface{}{
		"reference":        quote.Reference,
		"final_investment": result.FinalInvestmentCents,
	})
	return quote, nil
}

// Get loads a quote by its reference.
func (s *Store) Get(ctx context.Context, reference string) (*Quote, error) {
	var (
		quote      Quote
		inputJSON  []byte
		resultJSON []byte
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT reference, input, result, created_at
		FROM quotes
		WHERE reference = $1`, reference).Scan(
		&quote.Reference, &inputJSON, &resultJSON, &quote.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewQuoteNotFoundError(reference)
	}
	if err != nil {
		return nil, errors.NewQuoteStoreFailedError(err)
	}

	if err := json.Unmarshal(inputJSON, &quote.Input); err != nil {
		return nil, errors.NewQuoteStoreFailedError(err)
	}
	if err := json.Unmarshal(resultJSON, &quote.Result); err != nil {
		return nil, errors.NewQuoteStoreFailedError(err)
	}
	return &quote, nil
}
