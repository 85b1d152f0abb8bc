package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/medflow/translation-backend/internal/translation/domain"
	"github.com/medflow/translation-backend/internal/translation/repository"
	"github.com/medflow/translation-backend/internal/translation/service"
	apperrors "github.com/medflow/translation-backend/pkg/errors"
	"github.com/medflow/translation-backend/pkg/httputil"
	"github.com/medflow/translation-backend/pkg/logger"
	"github.com/medflow/translation-backend/pkg/metrics"
)

// Handler exposes the translation pipeline over HTTP. Request bodies carry
// clinical text and are therefore never logged.
type Handler struct {
	service *service.Service
	audit   *repository.AuditRepository
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewHandler creates the translation handler. audit and metrics may be nil.
func NewHandler(svc *service.Service, audit *repository.AuditRepository, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{
		service: svc,
		audit:   audit,
		metrics: m,
		logger:  log,
	}
}

// RegisterRoutes mounts the translation endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/translations", func(r chi.Router) {
		r.Post("/", h.Translate)
		r.Post("/verify", h.Verify)
		r.Get("/languages", h.Languages)
		r.Get("/stats", h.Stats)
		r.Get("/audit", h.ListAudit)
	})
}

// TranslateRequest is the payload for POST /api/v1/translations.
type TranslateRequest struct {
	Summary        *domain.ClinicalSummary `json:"summary" validate:"required"`
	SourceLanguage string                  `json:"source_language"`
	TargetLanguage string                  `json:"target_language" validate:"required"`
}

// TranslateResponse carries the translated document and its audit outcome.
type TranslateResponse struct {
	Summary *domain.ClinicalSummary    `json:"summary"`
	Outcome *domain.TranslationOutcome `json:"outcome"`
}

// Translate handles POST /api/v1/translations
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	summary, outcome, err := h.service.TranslateSummary(r.Context(), req.Summary, req.SourceLanguage, req.TargetLanguage)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, TranslateResponse{
		Summary: summary,
		Outcome: outcome,
	})
}

// VerifyRequest is the payload for POST /api/v1/translations/verify.
type VerifyRequest struct {
	Original   *domain.ClinicalSummary `json:"original" validate:"required"`
	Translated *domain.ClinicalSummary `json:"translated" validate:"required"`
}

// Verify handles POST /api/v1/translations/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	report := service.VerifySummaries(req.Original, req.Translated)
	httputil.JSON(w, http.StatusOK, report)
}

// Languages handles GET /api/v1/translations/languages
func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"languages": h.service.Languages(),
	})
}

// Stats handles GET /api/v1/translations/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.metrics == nil {
		httputil.Error(w, apperrors.New("STATS_DISABLED", "statistics are not configured", http.StatusServiceUnavailable))
		return
	}
	httputil.JSON(w, http.StatusOK, h.metrics.Snapshot())
}

// ListAudit handles GET /api/v1/translations/audit
func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		httputil.Error(w, apperrors.New("AUDIT_DISABLED", "audit storage is not configured", http.StatusServiceUnavailable))
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 20)
	if perPage > 100 {
		perPage = 100
	}

	filter := &repository.ListFilter{
		TargetLanguage: r.URL.Query().Get("target_language"),
		Status:         r.URL.Query().Get("status"),
	}

	records, total, err := h.audit.List(r.Context(), filter, page, perPage)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list audit records")
		httputil.Error(w, apperrors.Internal("failed to list audit records"))
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"records":  records,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
