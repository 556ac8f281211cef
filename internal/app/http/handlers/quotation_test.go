package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cehpoint/site_backend/internal/domain/quote"
)

func TestCheckAnalysis(t *testing.T) {
	req := quote.Request{Industry: "fintech", Timeline: "3-6 months", BudgetRange: "20L-40L", Features: []string{"Auth"}}
	valid := quote.Fallback(req)
	assert.NoError(t, checkAnalysis(valid))

	tests := map[string]func(a *quote.Analysis){
		"below floor":        func(a *quote.Analysis) { a.EstimatedCost = 10 },
		"small team":         func(a *quote.Analysis) { a.TeamSize = 1 },
		"no timeline":        func(a *quote.Analysis) { a.Timeline = "" },
		"no plan":            func(a *quote.Analysis) { a.MVPPlan = nil },
		"negative part":      func(a *quote.Analysis) { a.CostBreakdown.Design = -1 },
		"breakdown mismatch": func(a *quote.Analysis) { a.CostBreakdown = quote.CostBreakdown{Development: 100} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			a := quote.Fallback(req)
			mutate(&a)
			assert.Error(t, checkAnalysis(a))
		})
	}
}
