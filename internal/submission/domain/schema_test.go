package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func violationsOf(t *testing.T, err error) []FieldViolation {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Violations
}

func TestSchemaLead_DefaultsPreferenceAndLeavesOptionalsAbsent(t *testing.T) {
	schema := NewSchema()

	lead, err := schema.Lead(decode(t, `{"name":"Jane Doe","email":"jane@acme.com"}`))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", lead.Name)
	assert.Equal(t, "jane@acme.com", lead.Email)
	assert.Equal(t, PreferenceTrial, lead.Preference)
	assert.Nil(t, lead.Company)
	assert.Nil(t, lead.PortfolioSize)
	assert.Nil(t, lead.Message)
	assert.Nil(t, lead.Source)
}

func TestSchemaLead_KeepsAllFields(t *testing.T) {
	schema := NewSchema()

	lead, err := schema.Lead(decode(t, `{
		"name":"Jane Doe",
		"email":"jane@acme.com",
		"company":"Acme Lettings",
		"portfolio_size":"50-100",
		"preference":"demo",
		"message":"Call me",
		"source":"hero",
		"utm_campaign":"ignored"
	}`))
	require.NoError(t, err)

	assert.Equal(t, PreferenceDemo, lead.Preference)
	require.NotNil(t, lead.Company)
	assert.Equal(t, "Acme Lettings", *lead.Company)
	require.NotNil(t, lead.PortfolioSize)
	assert.Equal(t, "50-100", *lead.PortfolioSize)
	require.NotNil(t, lead.Message)
	assert.Equal(t, "Call me", *lead.Message)
	require.NotNil(t, lead.Source)
	assert.Equal(t, "hero", *lead.Source)
}

func TestSchemaLead_ProvidedEmptyDiffersFromAbsent(t *testing.T) {
	schema := NewSchema()

	lead, err := schema.Lead(decode(t, `{"name":"Jane","email":"jane@acme.com","company":"","source":null}`))
	require.NoError(t, err)

	require.NotNil(t, lead.Company)
	assert.Equal(t, "", *lead.Company)
	assert.Nil(t, lead.Source)
}

func TestSchemaLead_ReportsEveryViolation(t *testing.T) {
	schema := NewSchema()

	_, err := schema.Lead(decode(t, `{"company":42,"preference":"maybe"}`))
	violations := violationsOf(t, err)

	assert.Equal(t, []FieldViolation{
		{Field: "name", Reason: "field required"},
		{Field: "email", Reason: "field required"},
		{Field: "company", Reason: "must be a string"},
		{Field: "preference", Reason: "must be one of: trial, demo"},
	}, violations)
}

func TestSchemaLead_RejectsInvalidEmail(t *testing.T) {
	schema := NewSchema()

	_, err := schema.Lead(decode(t, `{"name":"Jane","email":"not-an-email"}`))
	violations := violationsOf(t, err)

	require.Len(t, violations, 1)
	assert.Equal(t, "email", violations[0].Field)
	assert.Equal(t, "value is not a valid email address", violations[0].Reason)
}

func TestSchemaLead_RejectsEmptyName(t *testing.T) {
	schema := NewSchema()

	_, err := schema.Lead(decode(t, `{"name":"","email":"jane@acme.com"}`))
	violations := violationsOf(t, err)

	assert.Equal(t, []FieldViolation{{Field: "name", Reason: "field required"}}, violations)
}

func TestSchemaLead_PreferenceTypeChecks(t *testing.T) {
	schema := NewSchema()

	cases := []struct {
		name   string
		body   string
		reason string
	}{
		{"null", `{"name":"Jane","email":"jane@acme.com","preference":null}`, "must be a string"},
		{"number", `{"name":"Jane","email":"jane@acme.com","preference":1}`, "must be a string"},
		{"unknown", `{"name":"Jane","email":"jane@acme.com","preference":"TRIAL"}`, "must be one of: trial, demo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schema.Lead(decode(t, tc.body))
			violations := violationsOf(t, err)
			assert.Equal(t, []FieldViolation{{Field: "preference", Reason: tc.reason}}, violations)
		})
	}
}

func TestSchemaDemoRequest(t *testing.T) {
	schema := NewSchema()

	demo, err := schema.DemoRequest(decode(t, `{"name":"Sam","email":"sam@example.org","portfolio_size":"12"}`))
	require.NoError(t, err)
	assert.Equal(t, "Sam", demo.Name)
	require.NotNil(t, demo.PortfolioSize)
	assert.Equal(t, "12", *demo.PortfolioSize)
	assert.Nil(t, demo.Company)

	_, err = schema.DemoRequest(decode(t, `{"email":"bad"}`))
	assert.Equal(t, []FieldViolation{
		{Field: "name", Reason: "field required"},
		{Field: "email", Reason: "value is not a valid email address"},
	}, violationsOf(t, err))
}

func TestSchemaDemoRequest_AcceptsEmptyName(t *testing.T) {
	schema := NewSchema()

	demo, err := schema.DemoRequest(decode(t, `{"name":"","email":"sam@example.org"}`))
	require.NoError(t, err)
	assert.Equal(t, "", demo.Name)
}

func TestSchemaValidate_Dispatch(t *testing.T) {
	schema := NewSchema()
	raw := decode(t, `{"name":"Jane","email":"jane@acme.com"}`)

	record, err := schema.Validate(EntityLead, raw)
	require.NoError(t, err)
	assert.Equal(t, EntityLead, record.Entity())

	record, err = schema.Validate(EntityDemoRequest, raw)
	require.NoError(t, err)
	assert.Equal(t, EntityDemoRequest, record.Entity())

	_, err = schema.Validate(EntityType("Newsletter"), raw)
	assert.ErrorIs(t, err, ErrUnknownEntity)

	record, err = schema.Validate(EntityLead, nil)
	assert.Nil(t, record)
	assert.Len(t, violationsOf(t, err), 2)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{
		Entity: EntityDemoRequest,
		Violations: []FieldViolation{
			{Field: "name", Reason: "field required"},
			{Field: "email", Reason: "value is not a valid email address"},
		},
	}
	assert.Equal(t, "invalid demorequest: name: field required; email: value is not a valid email address", err.Error())
}
