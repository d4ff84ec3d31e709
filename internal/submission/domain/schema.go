package domain

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	reasonRequired  = "field required"
	reasonNotString = "must be a string"
	reasonEmail     = "value is not a valid email address"
)

// Schema turns raw request data into typed, constraint-checked records.
// Shape checks (presence, string type, defaults) run first, then the struct tags
// on Lead and DemoRequest are enforced. Every violated field is reported.
type Schema struct {
	validate *validator.Validate
}

// NewSchema builds a Schema whose violations are reported by JSON field name.
func NewSchema() *Schema {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Schema{validate: v}
}

// Validate dispatches raw data to the schema of the given entity type.
func (s *Schema) Validate(entity EntityType, raw map[string]any) (Record, error) {
	switch entity {
	case EntityLead:
		lead, err := s.Lead(raw)
		if err != nil {
			return nil, err
		}
		return lead, nil
	case EntityDemoRequest:
		demo, err := s.DemoRequest(raw)
		if err != nil {
			return nil, err
		}
		return demo, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
}

// Lead validates a lead submission. An omitted preference defaults to "trial".
func (s *Schema) Lead(raw map[string]any) (Lead, error) {
	r := newFieldReader(raw)
	lead := Lead{
		Name:          r.requiredString("name"),
		Email:         r.requiredString("email"),
		Company:       r.optionalString("company"),
		PortfolioSize: r.optionalString("portfolio_size"),
		Preference:    Preference(r.defaultedString("preference", string(PreferenceTrial))),
		Message:       r.optionalString("message"),
		Source:        r.optionalString("source"),
	}
	if err := s.check(EntityLead, lead, r); err != nil {
		return Lead{}, err
	}
	return lead, nil
}

// DemoRequest validates a demo request submission.
func (s *Schema) DemoRequest(raw map[string]any) (DemoRequest, error) {
	r := newFieldReader(raw)
	demo := DemoRequest{
		Name:          r.requiredString("name"),
		Email:         r.requiredString("email"),
		Company:       r.optionalString("company"),
		PortfolioSize: r.optionalString("portfolio_size"),
		Message:       r.optionalString("message"),
		Source:        r.optionalString("source"),
	}
	if err := s.check(EntityDemoRequest, demo, r); err != nil {
		return DemoRequest{}, err
	}
	return demo, nil
}

func (s *Schema) check(entity EntityType, record any, r *fieldReader) error {
	violations := append([]FieldViolation{}, r.violations...)

	if err := s.validate.Struct(record); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			if r.flagged(fe.Field()) {
				continue
			}
			violations = append(violations, FieldViolation{Field: fe.Field(), Reason: constraintReason(fe)})
		}
	}

	if len(violations) == 0 {
		return nil
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return r.position(violations[i].Field) < r.position(violations[j].Field)
	})
	return &ValidationError{Entity: entity, Violations: violations}
}

func constraintReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return reasonRequired
	case "email":
		return reasonEmail
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	}
	return fmt.Sprintf("failed %q constraint", fe.Tag())
}

// fieldReader pulls typed values out of a raw payload and remembers shape violations.
type fieldReader struct {
	raw        map[string]any
	order      []string
	violations []FieldViolation
}

func newFieldReader(raw map[string]any) *fieldReader {
	return &fieldReader{raw: raw}
}

func (r *fieldReader) lookup(field string) (any, bool) {
	r.order = append(r.order, field)
	value, ok := r.raw[field]
	return value, ok
}

func (r *fieldReader) fail(field, reason string) {
	r.violations = append(r.violations, FieldViolation{Field: field, Reason: reason})
}

func (r *fieldReader) flagged(field string) bool {
	for _, v := range r.violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

func (r *fieldReader) position(field string) int {
	for i, name := range r.order {
		if name == field {
			return i
		}
	}
	return len(r.order)
}

func (r *fieldReader) requiredString(field string) string {
	value, ok := r.lookup(field)
	if !ok {
		r.fail(field, reasonRequired)
		return ""
	}
	s, ok := value.(string)
	if !ok {
		r.fail(field, reasonNotString)
		return ""
	}
	return s
}

// optionalString treats a missing key and an explicit null the same way: not provided.
func (r *fieldReader) optionalString(field string) *string {
	value, ok := r.lookup(field)
	if !ok || value == nil {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		r.fail(field, reasonNotString)
		return nil
	}
	return &s
}

func (r *fieldReader) defaultedString(field, fallback string) string {
	value, ok := r.lookup(field)
	if !ok {
		return fallback
	}
	s, ok := value.(string)
	if !ok {
		r.fail(field, reasonNotString)
		return fallback
	}
	return s
}
