// =============================================================================
// Cart Parser - Parser Orchestrator
// =============================================================================
//
// This module contains the top-level parse pipeline for a single cart source.
//
// PIPELINE:
//   1. Read the raw text through the source Reader
//   2. Validate the text against the cart schema
//   3. If any error was found, fail with a ValidationError carrying all of them
//   4. Otherwise parse every data line into an Item
//   5. Sum the items into the cart total
//
// CONCURRENCY:
//   A Parser holds no mutable state. One instance can serve any number of
//   goroutines, which is how the HTTP transport uses it.
//
// =============================================================================

package cartparser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vvorobets/cart-parser/internal/csvparser"
	"github.com/vvorobets/cart-parser/internal/source"
	"github.com/vvorobets/cart-parser/internal/types"
	"github.com/vvorobets/cart-parser/internal/validation"
)

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError is returned by Parse when the source fails validation.
// Errors holds every descriptor, in the order Validate produced them.
type ValidationError struct {
	Errors []validation.ErrorDescriptor
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation failed: %s", e.Errors[0].String())
	}
	return fmt.Sprintf("validation failed with %d errors", len(e.Errors))
}

// =============================================================================
// PARSER STRUCTURE
// =============================================================================

// Parser reads, validates and parses cart files.
type Parser struct {
	// reader resolves a source name to raw text.
	reader source.Reader

	logger *slog.Logger
}

// New creates a Parser that reads sources through reader.
// A nil logger falls back to slog.Default().
func New(reader source.Reader, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		reader: reader,
		logger: logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTIONS
// =============================================================================

// Parse reads the named source and returns its cart.
//
// Reader failures are returned wrapped. Validation failures are returned as
// *ValidationError; use errors.As to get at the descriptors.
func (p *Parser) Parse(ctx context.Context, name string) (*types.Cart, error) {
	startTime := time.Now()

	text, err := p.reader.ReadFile(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	p.logger.Debug("read cart source",
		slog.String("source", name),
		slog.Int("bytes", len(text)),
	)

	cart, err := p.ParseText(text)
	if err != nil {
		p.logger.Warn("cart source is invalid",
			slog.String("source", name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	p.logger.Info("parsed cart",
		slog.String("source", name),
		slog.Int("items", len(cart.Items)),
		slog.Float64("total", cart.Total),
		slog.Duration("duration", time.Since(startTime)),
	)

	return cart, nil
}

// ParseText validates and parses in-memory cart text.
func (p *Parser) ParseText(text string) (*types.Cart, error) {
	return ParseText(text)
}

// ParseText is the reader-free core of Parse.
func ParseText(text string) (*types.Cart, error) {
	if errs := validation.Validate(text); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	_, lines := csvparser.SplitHeader(text)

	items := make([]types.Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, csvparser.ParseLine(line))
	}

	return &types.Cart{
		Items: items,
		Total: csvparser.CalcTotal(items),
	}, nil
}
