package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cehpoint/site_backend/internal/domain/quote"
	"cehpoint/site_backend/internal/infra/db/postgres"
)

type quotationRecord struct {
	ID        string         `json:"id"`
	CreatedAt string         `json:"createdAt"`
	Source    string         `json:"source"`
	Request   quote.Request  `json:"request"`
	Analysis  quote.Analysis `json:"analysis"`
}

// GetQuotation returns a recorded quotation. Mounted behind InternalAuth.
func (h *Handlers) GetQuotation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if h.Store == nil {
		writeError(w, http.StatusNotFound, "quotation not found", "recording disabled")
		return
	}

	p, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, postgres.ErrNotFound) {
		writeError(w, http.StatusNotFound, "quotation not found", "")
		return
	}
	if err != nil {
		log.Printf("quotations get id=%s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "lookup failed", "")
		return
	}

	writeJSON(w, http.StatusOK, quotationRecord{
		ID:        p.Number,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		Source:    p.Source,
		Request:   p.Request,
		Analysis:  p.Analysis,
	})
}
