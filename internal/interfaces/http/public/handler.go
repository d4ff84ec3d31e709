package public

import (
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/landlordlink/landlordlink-services/api/internal/interfaces/http/common"
	"github.com/landlordlink/landlordlink-services/api/internal/submission/application"
	"github.com/landlordlink/landlordlink-services/api/internal/submission/domain"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger           *log.Logger
	submissions      application.SubmissionService
	validationStatus int
	maxRequestBody   int64
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger      *log.Logger
	Submissions application.SubmissionService
	// ValidationStatus is the HTTP status used for rejected payloads. Zero means 500.
	ValidationStatus int
	MaxRequestBody   int64
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	status := cfg.ValidationStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	maxBody := cfg.MaxRequestBody
	if maxBody <= 0 {
		maxBody = common.DefaultMaxRequestBody
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Handler{
		logger:           logger,
		submissions:      cfg.Submissions,
		validationStatus: status,
		maxRequestBody:   maxBody,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/leads", h.submissionHandler(domain.EntityLead, "Lead captured"))
	r.Post("/api/demo-requests", h.submissionHandler(domain.EntityDemoRequest, "Demo request received"))
}
