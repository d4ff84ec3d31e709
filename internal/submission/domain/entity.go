package domain

import "strings"

// EntityType names a submission shape accepted by the API.
type EntityType string

const (
	EntityLead        EntityType = "Lead"
	EntityDemoRequest EntityType = "DemoRequest"
)

// Valid reports whether the entity type is one the schema knows about.
func (e EntityType) Valid() bool {
	switch e {
	case EntityLead, EntityDemoRequest:
		return true
	}
	return false
}

// CollectionName returns the storage collection for the entity type.
func (e EntityType) CollectionName() string {
	return CollectionName(string(e))
}

// CollectionName derives a collection name from an entity type name by lowercasing it.
// "Lead" -> "lead", "DemoRequest" -> "demorequest". Stored data depends on this mapping staying stable.
func CollectionName(typeName string) string {
	return strings.ToLower(strings.TrimSpace(typeName))
}

// Record is a validated submission ready to be stored.
type Record interface {
	Entity() EntityType
}

type Preference string

const (
	PreferenceTrial Preference = "trial"
	PreferenceDemo  Preference = "demo"
)

// Lead is a marketing contact captured from a signup or CTA form.
// Optional fields are nil when the client did not send them.
type Lead struct {
	Name          string     `json:"name" validate:"required"`
	Email         string     `json:"email" validate:"required,email"`
	Company       *string    `json:"company"`
	PortfolioSize *string    `json:"portfolio_size"`
	Preference    Preference `json:"preference" validate:"oneof=trial demo"`
	Message       *string    `json:"message"`
	Source        *string    `json:"source"`
}

func (Lead) Entity() EntityType { return EntityLead }

// DemoRequest is a product demo request. Name must be present but may be empty.
type DemoRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email" validate:"required,email"`
	Company       *string `json:"company"`
	PortfolioSize *string `json:"portfolio_size"`
	Message       *string `json:"message"`
	Source        *string `json:"source"`
}

func (DemoRequest) Entity() EntityType { return EntityDemoRequest }
