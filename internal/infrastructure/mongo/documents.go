package mongo

import (
	"fmt"
	"time"

	"github.com/landlordlink/landlordlink-services/api/internal/submission/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadDocument は lead コレクションのスキーマ。未入力の任意項目は null で保存する。
type LeadDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	Company       *string            `bson:"company"`
	PortfolioSize *string            `bson:"portfolio_size"`
	Preference    string             `bson:"preference"`
	Message       *string            `bson:"message"`
	Source        *string            `bson:"source"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

// DemoRequestDocument は demorequest コレクションのスキーマ。
type DemoRequestDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	Company       *string            `bson:"company"`
	PortfolioSize *string            `bson:"portfolio_size"`
	Message       *string            `bson:"message"`
	Source        *string            `bson:"source"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

// buildDocument maps a validated record onto its BSON document with a fresh ObjectID.
func buildDocument(record domain.Record, now time.Time) (any, primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	switch r := record.(type) {
	case domain.Lead:
		return LeadDocument{
			ID:            id,
			Name:          r.Name,
			Email:         r.Email,
			Company:       r.Company,
			PortfolioSize: r.PortfolioSize,
			Preference:    string(r.Preference),
			Message:       r.Message,
			Source:        r.Source,
			CreatedAt:     now,
			UpdatedAt:     now,
		}, id, nil
	case domain.DemoRequest:
		return DemoRequestDocument{
			ID:            id,
			Name:          r.Name,
			Email:         r.Email,
			Company:       r.Company,
			PortfolioSize: r.PortfolioSize,
			Message:       r.Message,
			Source:        r.Source,
			CreatedAt:     now,
			UpdatedAt:     now,
		}, id, nil
	}
	return nil, primitive.NilObjectID, fmt.Errorf("unsupported record type %T", record)
}
