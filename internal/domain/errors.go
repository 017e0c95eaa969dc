package domain

import (
	"errors"
	"fmt"
	"strings"

	"example.com/supplementstack/internal/validation"
)

var (
	// ErrNoCandidate indicates a tier produced nothing to recommend. It is
	// recovered by moving to the next tier of the fallback chain.
	ErrNoCandidate = errors.New("no candidate")
	// ErrCatalogUnavailable indicates the catalog store could not produce a snapshot.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// ValidationError reports malformed profile input. It is the only error
// resolution surfaces to callers.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid profile"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid profile: " + strings.Join(msgs, "; ")
}

// GenerationError wraps a failure inside selection or annotation.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// EnrichmentError wraps a failed or timed out narrative call.
type EnrichmentError struct {
	Err error
}

func (e *EnrichmentError) Error() string {
	return "narrative enrichment failed: " + e.Err.Error()
}

func (e *EnrichmentError) Unwrap() error { return e.Err }

// Validate checks the profile's required fields and ranges.
func (p UserProfile) Validate() error {
	fields, err := validation.Struct(p)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
