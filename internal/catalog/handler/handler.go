package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"prazo/internal/catalog"
	dErrors "prazo/pkg/domain-errors"
	"prazo/pkg/platform/httputil"
	"prazo/pkg/platform/sentinel"
	"prazo/pkg/requestcontext"
)

// Store defines the catalog reads the handler needs.
type Store interface {
	List(ctx context.Context) ([]catalog.Entry, error)
}

// Handler serves the deadline-type catalog read-only.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// New constructs a catalog handler.
func New(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts catalog endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/catalog", h.HandleList)
}

// HandleList handles GET /v1/catalog requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.store.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "catalog list failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		if errors.Is(err, sentinel.ErrUnavailable) {
			err = dErrors.Wrap(dErrors.CodeDataUnavailable, "catalog store unreachable", err)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromEntries(entries))
}

// EntryResponse is one catalog entry on the wire.
type EntryResponse struct {
	ID                 string `json:"id"`
	Description        string `json:"description"`
	LegalBasis         string `json:"legal_basis"`
	BaseDuration       int    `json:"base_duration"`
	CountingMode       string `json:"counting_mode"`
	StartMethod        string `json:"start_method"`
	DoublingEligible   bool   `json:"doubling_eligible"`
	ColitigantEligible bool   `json:"colitigant_eligible"`
	RecessSensitive    bool   `json:"recess_sensitive"`
	Interruptible      bool   `json:"interruptible"`
}

// ListResponse is the HTTP response for GET /v1/catalog.
type ListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// FromEntries converts catalog entries to the HTTP response shape.
func FromEntries(entries []catalog.Entry) *ListResponse {
	out := &ListResponse{Entries: make([]EntryResponse, len(entries))}
	for i, e := range entries {
		out.Entries[i] = EntryResponse{
			ID:                 e.ID,
			Description:        e.Description,
			LegalBasis:         e.LegalBasis,
			BaseDuration:       e.BaseDuration,
			CountingMode:       string(e.CountingMode),
			StartMethod:        string(e.StartMethod),
			DoublingEligible:   e.DoublingEligible,
			ColitigantEligible: e.ColitigantEligible,
			RecessSensitive:    e.RecessSensitive,
			Interruptible:      e.Interruptible,
		}
	}
	return out
}
