package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"cehpoint/site_backend/internal/domain/quote"
)

const (
	msgQuotationFailed = "Unable to generate quotation at the moment. Please try again."
	recordTimeout      = 3 * time.Second
	// breakdownTolerance allows 5 units of rounding per breakdown part.
	breakdownTolerance = 5 * 5
)

// CreateQuotation answers POST /api/quotation with the analysis object.
func (h *Handlers) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	p, ok := h.buildProposal(w, r)
	if !ok {
		return
	}
	w.Header().Set("X-Quotation-Id", p.Number)
	w.Header().Set("X-Quotation-Source", p.Source)
	writeJSON(w, http.StatusOK, p.Analysis)
}

// buildProposal decodes, validates and estimates one request. On failure the
// error response has already been written.
func (h *Handlers) buildProposal(w http.ResponseWriter, r *http.Request) (quote.Proposal, bool) {
	reqID := chimw.GetReqID(r.Context())

	var in quote.Request
	if err := decodeJSON(w, r, &in); err != nil {
		log.Printf("quote req=%s bad body: %v", reqID, err)
		writeError(w, http.StatusBadRequest, "invalid JSON body", err.Error())
		return quote.Proposal{}, false
	}

	req, err := quote.Validate(in)
	if err != nil {
		var verr *quote.ValidationError
		if errors.As(err, &verr) {
			log.Printf("quote req=%s rejected field=%s", reqID, verr.Field)
			writeError(w, http.StatusUnprocessableEntity, verr.Error(), verr.Kind)
			return quote.Proposal{}, false
		}
		log.Printf("quote req=%s validate: %v", reqID, err)
		writeError(w, http.StatusInternalServerError, msgQuotationFailed, err.Error())
		return quote.Proposal{}, false
	}

	start := time.Now()
	res := h.Estimator.Estimate(r.Context(), req)
	if res.PrimaryErr != nil {
		log.Printf("quote req=%s model failed, using fallback: %v", reqID, res.PrimaryErr)
	}
	if err := checkAnalysis(res.Analysis); err != nil {
		log.Printf("quote req=%s bad analysis source=%s: %v", reqID, res.Source, err)
		writeError(w, http.StatusInternalServerError, msgQuotationFailed, err.Error())
		return quote.Proposal{}, false
	}
	log.Printf("quote req=%s ok source=%s industry=%q budget=%q cost=%d team=%d took=%s",
		reqID, res.Source, req.Industry, req.BudgetRange, res.Analysis.EstimatedCost, res.Analysis.TeamSize, time.Since(start))

	p := quote.Proposal{
		Number:    uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    string(res.Source),
		Request:   req,
		Analysis:  res.Analysis,
	}
	h.record(r.Context(), reqID, p)
	return p, true
}

// record stores the proposal if a store is configured. Failures are logged only.
func (h *Handlers) record(ctx context.Context, reqID string, p quote.Proposal) {
	if h.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := h.Store.Save(ctx, p); err != nil {
		log.Printf("quote req=%s record id=%s failed: %v", reqID, p.Number, err)
	}
}

func checkAnalysis(a quote.Analysis) error {
	switch {
	case a.EstimatedCost < quote.MinEstimatedCost:
		return errors.New("estimated cost below floor")
	case a.TeamSize < quote.MinTeamSize:
		return errors.New("team size below floor")
	case a.Timeline == "":
		return errors.New("timeline missing")
	case len(a.MVPPlan) == 0:
		return errors.New("mvp plan missing")
	}
	cb := a.CostBreakdown
	for _, v := range []int64{cb.Development, cb.Design, cb.Testing, cb.Deployment, cb.ProjectManagement} {
		if v < 0 {
			return errors.New("negative cost breakdown part")
		}
	}
	if d := cb.Total() - a.EstimatedCost; d > breakdownTolerance || d < -breakdownTolerance {
		return fmt.Errorf("cost breakdown total %d does not match cost %d", cb.Total(), a.EstimatedCost)
	}
	return nil
}
