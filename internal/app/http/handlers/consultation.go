package handlers

import (
	"errors"
	"log"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"cehpoint/site_backend/internal/domain/ai/consult"
	"cehpoint/site_backend/internal/domain/validation"
)

func (h *Handlers) Consultation(w http.ResponseWriter, r *http.Request) {
	reqID := chimw.GetReqID(r.Context())

	var in consult.Request
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err.Error())
		return
	}
	req, err := consult.Validate(in)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeError(w, http.StatusUnprocessableEntity, verr.Error(), verr.Kind)
			return
		}
		writeError(w, http.StatusInternalServerError, "Unable to generate a recommendation right now.", err.Error())
		return
	}

	resp, err := h.Advisor.Advise(r.Context(), req)
	if err != nil {
		log.Printf("consult req=%s model failed, using fallback: %v", reqID, err)
	}
	log.Printf("consult req=%s ok goals=%d workloads=%d", reqID, len(req.Answers.PrimaryGoal), len(req.Answers.WorkloadType))
	writeJSON(w, http.StatusOK, resp)
}
