package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// QuotationPDF runs the same pipeline as CreateQuotation and renders the result.
func (h *Handlers) QuotationPDF(w http.ResponseWriter, r *http.Request) {
	p, ok := h.buildProposal(w, r)
	if !ok {
		return
	}

	pdfBytes, err := h.PDF.Generate(p)
	if err != nil {
		log.Printf("quote req=%s pdf id=%s failed: %v", chimw.GetReqID(r.Context()), p.Number, err)
		writeError(w, http.StatusInternalServerError, "pdf generation failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="quotation-%s.pdf"`, p.Number[:8]))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Header().Set("X-Quotation-Id", p.Number)
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
