package quote

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	shareDevelopment       = decimal.RequireFromString("0.60")
	shareDesign            = decimal.RequireFromString("0.15")
	shareTesting           = decimal.RequireFromString("0.12")
	shareDeployment        = decimal.RequireFromString("0.08")
	shareProjectManagement = decimal.RequireFromString("0.05")
)

// Estimator produces quotations from static tables only. It makes no network
// calls and holds no mutable state, so one value can serve concurrent requests.
type Estimator struct {
	tables *Tables
}

func NewEstimator(t *Tables) *Estimator {
	if t == nil {
		t = DefaultTables()
	}
	return &Estimator{tables: t}
}

var defaultEstimator = NewEstimator(nil)

// Fallback estimates req with the default tables.
func Fallback(req Request) Analysis {
	return defaultEstimator.Estimate(req)
}

// Estimate never fails for a request that passed Validate.
func (e *Estimator) Estimate(req Request) Analysis {
	cost, _ := e.tables.Cost(req.BudgetRange)
	timeline, _ := e.tables.Timeline(req.Timeline)
	stack, _ := e.tables.Stack(req.Industry)

	a := Analysis{
		EstimatedCost:   cost,
		Timeline:        timeline,
		TeamSize:        TeamSize(len(req.Features)),
		SuggestedStack:  stack,
		Dependencies:    e.tables.Dependencies(),
		Risks:           e.tables.Risks(),
		MVPPlan:         e.tables.Milestones(),
		AIAnalysis:      narrative(req),
		CostBreakdown:   Breakdown(cost),
		Recommendations: e.tables.Recommendations(),
	}
	return ApplyFloors(a)
}

// TeamSize is a step function of the feature count.
func TeamSize(features int) int {
	switch {
	case features > 6:
		return 5
	case features > 3:
		return 3
	default:
		return 2
	}
}

// Breakdown splits cost 60/15/12/8/5. Each share is rounded on its own, half away
// from zero, so the parts can differ from cost by a few units.
func Breakdown(cost int64) CostBreakdown {
	c := decimal.NewFromInt(cost)
	part := func(share decimal.Decimal) int64 {
		return c.Mul(share).Round(0).IntPart()
	}
	return CostBreakdown{
		Development:       part(shareDevelopment),
		Design:            part(shareDesign),
		Testing:           part(shareTesting),
		Deployment:        part(shareDeployment),
		ProjectManagement: part(shareProjectManagement),
	}
}

// ApplyFloors raises cost and team size to their minimums. It is applied to every
// analysis regardless of which estimator produced it.
func ApplyFloors(a Analysis) Analysis {
	if a.EstimatedCost < MinEstimatedCost {
		a.EstimatedCost = MinEstimatedCost
	}
	if a.TeamSize < MinTeamSize {
		a.TeamSize = MinTeamSize
	}
	return a
}

func narrative(req Request) string {
	return fmt.Sprintf("Based on your %s project requirements, this estimation considers the complexity of implementing %d key features for %s expected users. "+
		"The project scope includes modern web development practices, security considerations, and scalability planning. "+
		"The timeline accounts for iterative development with regular client feedback and comprehensive testing phases.",
		req.Industry, len(req.Features), req.ExpectedUsers)
}
