package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"prazo/internal/deadline"
	dErrors "prazo/pkg/domain-errors"
	"prazo/pkg/platform/httputil"
	"prazo/pkg/requestcontext"
)

// Service defines the interface for deadline operations.
type Service interface {
	Compute(ctx context.Context, req deadline.ComputationRequest) (*deadline.ComputationResult, error)
	ComputeBatch(ctx context.Context, reqs []deadline.ComputationRequest) []deadline.BatchItem
}

// Handler wires deadline endpoints to the deadline service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a deadline handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts deadline endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/deadlines/compute", h.HandleCompute)
	r.Post("/v1/deadlines/compute-batch", h.HandleComputeBatch)
}

// HandleCompute handles POST /v1/deadlines/compute requests.
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[ComputeRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Compute(ctx, domainReq)
	if err != nil {
		h.logger.ErrorContext(ctx, "deadline computation failed",
			"request_id", requestID,
			"deadline_type", req.DeadlineType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "deadline computed",
		"request_id", requestID,
		"deadline_type", req.DeadlineType,
		"due_date", result.DueDate.Format(time.DateOnly),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleComputeBatch handles POST /v1/deadlines/compute-batch requests. Items
// succeed or fail independently; the response carries a result or an error per
// item, in request order.
func (h *Handler) HandleComputeBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[BatchRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}
	if len(req.Requests) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidRequest, "requests list is empty"))
		return
	}
	if len(req.Requests) > maxBatchSize {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeInvalidRequest, "batch size exceeds the limit of %d", maxBatchSize))
		return
	}

	domainReqs := make([]deadline.ComputationRequest, len(req.Requests))
	for i, item := range req.Requests {
		domainReq, err := item.ToDomain()
		if err != nil {
			httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInvalidRequest, "invalid batch item", err))
			return
		}
		domainReqs[i] = domainReq
	}

	items := h.service.ComputeBatch(ctx, domainReqs)

	h.logger.InfoContext(ctx, "deadline batch computed",
		"request_id", requestID,
		"items", len(items),
	)
	httputil.WriteJSON(w, http.StatusOK, FromBatch(items))
}

const maxBatchSize = 500
