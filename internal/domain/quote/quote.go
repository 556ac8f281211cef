package quote

import "time"

// Request is the project quotation form as posted by the site.
type Request struct {
	Industry          string   `json:"industry" validate:"required"`
	ProjectSummary    string   `json:"projectSummary" validate:"required"`
	ExpectedUsers     string   `json:"expectedUsers" validate:"required"`
	Timeline          string   `json:"timeline" validate:"required"`
	BudgetRange       string   `json:"budgetRange" validate:"required"`
	Features          []string `json:"features" validate:"required,min=1"`
	TechPreferences   string   `json:"techPreferences,omitempty"`
	ComplianceNeeds   string   `json:"complianceNeeds,omitempty"`
	AdditionalContext string   `json:"additionalContext,omitempty"`

	// Pass-through contact details, never used for estimation.
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
}

type Analysis struct {
	EstimatedCost   int64         `json:"estimatedCost"`
	Timeline        string        `json:"timeline"`
	TeamSize        int           `json:"teamSize"`
	SuggestedStack  []string      `json:"suggestedStack"`
	Dependencies    []string      `json:"dependencies"`
	Risks           []string      `json:"risks"`
	MVPPlan         []Milestone   `json:"mvpPlan"`
	AIAnalysis      string        `json:"aiAnalysis"`
	CostBreakdown   CostBreakdown `json:"costBreakdown"`
	Recommendations []string      `json:"recommendations"`
}

type Milestone struct {
	Milestone    string   `json:"milestone"`
	Duration     string   `json:"duration"`
	Deliverables []string `json:"deliverables"`
}

type CostBreakdown struct {
	Development       int64 `json:"development"`
	Design            int64 `json:"design"`
	Testing           int64 `json:"testing"`
	Deployment        int64 `json:"deployment"`
	ProjectManagement int64 `json:"projectManagement"`
}

func (c CostBreakdown) Total() int64 {
	return c.Development + c.Design + c.Testing + c.Deployment + c.ProjectManagement
}

func (c CostBreakdown) IsZero() bool {
	return c == CostBreakdown{}
}

// Proposal is a finished quotation: what was asked, what was answered and by
// which estimator. It is what gets rendered to PDF and recorded.
type Proposal struct {
	Number    string
	CreatedAt time.Time
	Source    string
	Request   Request
	Analysis  Analysis
}
