package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"cadastro/internal/validation/models"
	dErrors "cadastro/pkg/domain-errors"
	"cadastro/pkg/platform/httputil"
	"cadastro/pkg/requestcontext"
)

// Service defines the interface for CNPJ operations.
type Service interface {
	Validate(ctx context.Context, raw string) models.Result
	ValidateBatch(ctx context.Context, raws []string) ([]models.Result, error)
	Format(ctx context.Context, raw string) models.FormatResult
	Reserved() []string
}

// Handler wires CNPJ endpoints to the validation service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a validation handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts CNPJ endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/cnpj", func(r chi.Router) {
		r.Get("/reserved", h.HandleReserved)
		r.Post("/validate", h.HandleValidate)
		r.Post("/validate/batch", h.HandleValidateBatch)
		r.Post("/format", h.HandleFormat)
		r.Get("/{cnpj}", h.HandleLookup)
	})
}

// HandleValidate handles POST /cnpj/validate.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result := h.service.Validate(ctx, req.CNPJ)
	h.logVerdict(ctx, requestID, result)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleLookup handles GET /cnpj/{cnpj}. The path value is validated exactly
// like a POST body, so the masked form must be URL-escaped and still fails the
// raw length gate.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	raw, err := lookupValue(r)
	if err != nil || utf8.RuneCountInString(raw) > maxInputLength {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid cnpj path value"))
		return
	}

	result := h.service.Validate(ctx, raw)
	h.logVerdict(ctx, requestID, result)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// lookupValue returns the decoded {cnpj} path value. chi routes on RawPath
// when the request carries one (an escaped "/"), and on the already decoded
// Path otherwise, so only the former needs unescaping.
func lookupValue(r *http.Request) (string, error) {
	param := chi.URLParam(r, "cnpj")
	if r.URL.RawPath == "" {
		return param, nil
	}
	return url.PathUnescape(param)
}

// HandleValidateBatch handles POST /cnpj/validate/batch.
func (h *Handler) HandleValidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	results, err := h.service.ValidateBatch(ctx, req.CNPJs)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch validation failed",
			"request_id", requestID,
			"size", len(req.CNPJs),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := newBatchResponse(results)
	h.logger.InfoContext(ctx, "cnpj batch validated",
		"request_id", requestID,
		"size", len(results),
		"valid", resp.Valid,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleFormat handles POST /cnpj/format.
func (h *Handler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	httputil.WriteJSON(w, http.StatusOK, h.service.Format(ctx, req.CNPJ))
}

// HandleReserved handles GET /cnpj/reserved.
func (h *Handler) HandleReserved(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, ReservedResponse{Reserved: h.service.Reserved()})
}

// logVerdict logs masked output only; raw inputs stay out of the logs.
func (h *Handler) logVerdict(ctx context.Context, requestID string, result models.Result) {
	h.logger.InfoContext(ctx, "cnpj validated",
		"request_id", requestID,
		"masked", result.Masked,
		"valid", result.Valid,
		"reason", result.Reason,
	)
}
