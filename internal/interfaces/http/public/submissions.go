package public

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/landlordlink/landlordlink-services/api/internal/interfaces/http/common"
	"github.com/landlordlink/landlordlink-services/api/internal/submission/domain"
)

type submissionData struct {
	ID string `json:"id"`
}

type validationData struct {
	Errors []domain.FieldViolation `json:"errors"`
}

func (h *Handler) submissionHandler(entity domain.EntityType, successMessage string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		raw, err := decodeObject(http.MaxBytesReader(w, r.Body, h.maxRequestBody))
		if err != nil {
			h.writeSubmitError(w, entity, &domain.ValidationError{
				Entity:     entity,
				Violations: []domain.FieldViolation{{Field: "body", Reason: err.Error()}},
			})
			return
		}

		receipt, err := h.submissions.Submit(r.Context(), entity, raw)
		if err != nil {
			h.writeSubmitError(w, entity, err)
			return
		}

		h.logger.Printf("%s stored: id=%s", receipt.Collection, receipt.ID)
		common.WriteSuccess(h.logger, w, successMessage, submissionData{ID: receipt.ID})
	}
}

func (h *Handler) writeSubmitError(w http.ResponseWriter, entity domain.EntityType, err error) {
	var verr *domain.ValidationError
	var serr *domain.StoreError
	switch {
	case errors.As(err, &verr):
		h.logger.Printf("rejected %s submission: %v", entity.CollectionName(), verr)
		common.WriteFailure(h.logger, w, h.validationStatus, verr.Error(), validationData{Errors: verr.Violations})
	case errors.As(err, &serr):
		h.logger.Printf("failed to store %s: %v", entity.CollectionName(), common.RedactCredentials(serr.Error()))
		message := fmt.Sprintf("failed to store %s: %s", entity.CollectionName(), common.RedactCredentials(serr.Err.Error()))
		common.WriteFailure(h.logger, w, http.StatusInternalServerError, message, nil)
	default:
		h.logger.Printf("unexpected error handling %s submission: %v", entity.CollectionName(), err)
		common.WriteFailure(h.logger, w, http.StatusInternalServerError, "internal server error", nil)
	}
}

// decodeObject reads a single JSON object. Numbers are kept as json.Number so they are never mistaken for text.
func decodeObject(body io.Reader) (map[string]any, error) {
	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("request body is empty")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %v", err)
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("request body must contain a single JSON object")
	}

	object, ok := value.(map[string]any)
	if !ok {
		return nil, errors.New("request body must be a JSON object")
	}
	return object, nil
}
