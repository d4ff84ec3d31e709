package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEntity is returned when a submission names an entity type the schema does not define.
var ErrUnknownEntity = errors.New("unknown entity type")

// FieldViolation describes one field that failed validation.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every violated field of a rejected submission.
type ValidationError struct {
	Entity     EntityType
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Reason))
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity.CollectionName(), strings.Join(parts, "; "))
}

// StoreError wraps a failure of the document store while inserting a record.
type StoreError struct {
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("insert into %s: %v", e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
