package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"cehpoint/site_backend/internal/domain/quote"
)

var ErrNotFound = errors.New("quotation not found")

const quotationsSchema = `
CREATE TABLE IF NOT EXISTS quotation_requests (
  id TEXT PRIMARY KEY,
  project_summary TEXT NOT NULL,
  industry TEXT NOT NULL,
  expected_users TEXT NOT NULL,
  timeline TEXT NOT NULL,
  budget_range TEXT NOT NULL,
  features JSONB NOT NULL,
  tech_preferences TEXT,
  compliance_needs TEXT,
  additional_context TEXT,
  contact_email TEXT NOT NULL DEFAULT '',
  contact_name TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS quotation_responses (
  id TEXT PRIMARY KEY,
  request_id TEXT NOT NULL REFERENCES quotation_requests(id),
  source TEXT NOT NULL,
  estimated_cost BIGINT NOT NULL,
  timeline TEXT NOT NULL,
  team_size INTEGER NOT NULL,
  suggested_stack JSONB NOT NULL,
  dependencies JSONB NOT NULL,
  risks JSONB NOT NULL,
  mvp_plan JSONB NOT NULL,
  ai_analysis TEXT NOT NULL,
  cost_breakdown JSONB NOT NULL,
  recommendations JSONB NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_quotation_responses_request_id ON quotation_responses (request_id);
`

// Quotations records quotation request/response pairs. The response row shares
// the request id.
type Quotations struct {
	db *DB
}

func NewQuotations(db *DB) *Quotations {
	return &Quotations{db: db}
}

func (q *Quotations) EnsureSchema(ctx context.Context) error {
	if _, err := q.db.Pool.Exec(ctx, quotationsSchema); err != nil {
		return fmt.Errorf("ensure quotation schema: %w", err)
	}
	return nil
}

func (q *Quotations) Save(ctx context.Context, p quote.Proposal) error {
	id := strings.TrimSpace(p.Number)
	if id == "" {
		return errors.New("quotation id is required")
	}
	r, a := p.Request, p.Analysis

	features, err := json.Marshal(r.Features)
	if err != nil {
		return err
	}
	blobs, err := marshalAll(a.SuggestedStack, a.Dependencies, a.Risks, a.MVPPlan, a.CostBreakdown, a.Recommendations)
	if err != nil {
		return err
	}

	tx, err := q.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
INSERT INTO quotation_requests (
  id, project_summary, industry, expected_users, timeline, budget_range, features,
  tech_preferences, compliance_needs, additional_context, contact_email, contact_name, created_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		id, r.ProjectSummary, r.Industry, r.ExpectedUsers, r.Timeline, r.BudgetRange, features,
		nullable(r.TechPreferences), nullable(r.ComplianceNeeds), nullable(r.AdditionalContext),
		r.ContactEmail, r.ContactName, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert quotation request: %w", err)
	}

	_, err = tx.Exec(ctx, `
INSERT INTO quotation_responses (
  id, request_id, source, estimated_cost, timeline, team_size, suggested_stack, dependencies,
  risks, mvp_plan, ai_analysis, cost_breakdown, recommendations, created_at
)
VALUES ($1,$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		id, p.Source, a.EstimatedCost, a.Timeline, a.TeamSize, blobs[0], blobs[1],
		blobs[2], blobs[3], a.AIAnalysis, blobs[4], blobs[5], p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert quotation response: %w", err)
	}
	return tx.Commit(ctx)
}

func (q *Quotations) Get(ctx context.Context, id string) (quote.Proposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return quote.Proposal{}, ErrNotFound
	}
	row := q.db.Pool.QueryRow(ctx, `
SELECT r.id, r.created_at, s.source,
  r.project_summary, r.industry, r.expected_users, r.timeline, r.budget_range, r.features,
  COALESCE(r.tech_preferences, ''), COALESCE(r.compliance_needs, ''), COALESCE(r.additional_context, ''),
  r.contact_email, r.contact_name,
  s.estimated_cost, s.timeline, s.team_size, s.suggested_stack, s.dependencies, s.risks,
  s.mvp_plan, s.ai_analysis, s.cost_breakdown, s.recommendations
FROM quotation_requests r
JOIN quotation_responses s ON s.request_id = r.id
WHERE r.id = $1`, id)

	var (
		p                                  quote.Proposal
		features, stack, deps, risks, plan []byte
		breakdown, recs                    []byte
	)
	r, a := &p.Request, &p.Analysis
	err := row.Scan(
		&p.Number, &p.CreatedAt, &p.Source,
		&r.ProjectSummary, &r.Industry, &r.ExpectedUsers, &r.Timeline, &r.BudgetRange, &features,
		&r.TechPreferences, &r.ComplianceNeeds, &r.AdditionalContext,
		&r.ContactEmail, &r.ContactName,
		&a.EstimatedCost, &a.Timeline, &a.TeamSize, &stack, &deps, &risks,
		&plan, &a.AIAnalysis, &breakdown, &recs,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return quote.Proposal{}, ErrNotFound
	}
	if err != nil {
		return quote.Proposal{}, err
	}

	if err := unmarshalAll(
		pair{features, &r.Features},
		pair{stack, &a.SuggestedStack},
		pair{deps, &a.Dependencies},
		pair{risks, &a.Risks},
		pair{plan, &a.MVPPlan},
		pair{breakdown, &a.CostBreakdown},
		pair{recs, &a.Recommendations},
	); err != nil {
		return quote.Proposal{}, err
	}
	return p, nil
}

func marshalAll(values ...any) ([][]byte, error) {
	out := make([][]byte, 0, len(values))
	for _, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

type pair struct {
	raw []byte
	dst any
}

func unmarshalAll(pairs ...pair) error {
	for _, p := range pairs {
		if len(p.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(p.raw, p.dst); err != nil {
			return fmt.Errorf("decode stored quotation: %w", err)
		}
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
