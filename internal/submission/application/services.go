package application

import (
	"context"
	"errors"
	"time"

	"github.com/landlordlink/landlordlink-services/api/internal/observability/metrics"
	"github.com/landlordlink/landlordlink-services/api/internal/submission/domain"
)

// Store persists validated records and returns the generated identifier.
type Store interface {
	Insert(ctx context.Context, collection string, record domain.Record) (string, error)
}

// Receipt acknowledges a stored submission.
type Receipt struct {
	ID         string
	Entity     domain.EntityType
	Collection string
}

// SubmissionService handles form submission use-cases.
type SubmissionService interface {
	Submit(ctx context.Context, entity domain.EntityType, raw map[string]any) (*Receipt, error)
}

// Config defines dependencies required by the submission service.
type Config struct {
	Store        Store
	Schema       *domain.Schema
	Metrics      *metrics.SubmissionMetrics
	StoreTimeout time.Duration
}

func NewSubmissionService(cfg Config) SubmissionService {
	schema := cfg.Schema
	if schema == nil {
		schema = domain.NewSchema()
	}
	return &submissionService{
		store:        cfg.Store,
		schema:       schema,
		metrics:      cfg.Metrics,
		storeTimeout: cfg.StoreTimeout,
	}
}

type submissionService struct {
	store        Store
	schema       *domain.Schema
	metrics      *metrics.SubmissionMetrics
	storeTimeout time.Duration
}

// Submit validates raw and inserts it exactly once. Resubmitting the same payload creates another record.
func (s *submissionService) Submit(ctx context.Context, entity domain.EntityType, raw map[string]any) (*Receipt, error) {
	collection := entity.CollectionName()

	record, err := s.schema.Validate(entity, raw)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			s.metrics.ObserveSubmission(collection, metrics.OutcomeInvalid)
		}
		return nil, err
	}

	if s.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()
	}

	started := time.Now()
	id, err := s.store.Insert(ctx, collection, record)
	s.metrics.ObserveInsertLatency(collection, time.Since(started).Seconds())
	if err != nil {
		s.metrics.ObserveSubmission(collection, metrics.OutcomeStoreError)
		return nil, &domain.StoreError{Collection: collection, Err: err}
	}

	s.metrics.ObserveSubmission(collection, metrics.OutcomeStored)
	return &Receipt{ID: id, Entity: entity, Collection: collection}, nil
}
