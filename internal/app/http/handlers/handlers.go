package handlers

import (
	"context"

	"cehpoint/site_backend/internal/app/config"
	"cehpoint/site_backend/internal/domain/ai/consult"
	"cehpoint/site_backend/internal/domain/ai/estimator"
	"cehpoint/site_backend/internal/domain/quote"
	"cehpoint/site_backend/internal/domain/quote/pdf"
	pdfgen "cehpoint/site_backend/internal/domain/quote/pdf/gofpdf"
)

// QuotationStore records finished quotations. Implemented by postgres.Quotations.
type QuotationStore interface {
	Save(ctx context.Context, p quote.Proposal) error
	Get(ctx context.Context, id string) (quote.Proposal, error)
}

type Deps struct {
	Estimator *estimator.Service
	Advisor   *consult.Advisor
	// Store is optional; nil disables recording and lookups.
	Store QuotationStore
	PDF   pdf.Generator
}

type Handlers struct {
	Cfg       config.Config
	Estimator *estimator.Service
	Advisor   *consult.Advisor
	Store     QuotationStore
	PDF       pdf.Generator
}

func New(cfg config.Config, d Deps) *Handlers {
	h := &Handlers{
		Cfg:       cfg,
		Estimator: d.Estimator,
		Advisor:   d.Advisor,
		Store:     d.Store,
		PDF:       d.PDF,
	}
	if h.Estimator == nil {
		h.Estimator = estimator.New(nil, nil, estimator.Options{})
	}
	if h.Advisor == nil {
		h.Advisor = consult.NewAdvisor(nil)
	}
	if h.PDF == nil {
		h.PDF = pdfgen.New()
	}
	return h
}
