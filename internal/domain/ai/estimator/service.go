package estimator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"google.golang.org/genai"

	"cehpoint/site_backend/internal/domain/quote"
)

// Generator is the text-generation collaborator: a system instruction, a user
// prompt and a response schema in, JSON text out.
type Generator interface {
	GenerateJSON(ctx context.Context, system, prompt string, schema *genai.Schema) (string, error)
}

type Source string

const (
	SourceModel    Source = "model"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

const (
	// maxAmount bounds any model amount in INR.
	maxAmount    = 1e12
	maxTeamSize  = 500
	breakdownTol = 5 * 5
)

var (
	ErrEmptyResponse = errors.New("estimator: empty model response")
	ErrMalformed     = errors.New("estimator: malformed model response")
)

type Options struct {
	CacheSize int
	CacheTTL  time.Duration
}

type Result struct {
	Analysis quote.Analysis
	Source   Source
	// PrimaryErr is the reason the model path was abandoned, if it was.
	PrimaryErr error
}

// Service runs the model estimator and falls back to the table estimator on any
// failure. A nil generator means fallback only.
type Service struct {
	gen      Generator
	fallback *quote.Estimator
	cache    *expirable.LRU[string, quote.Analysis]
}

func New(gen Generator, fallback *quote.Estimator, opts Options) *Service {
	if fallback == nil {
		fallback = quote.NewEstimator(nil)
	}
	s := &Service{gen: gen, fallback: fallback}
	if opts.CacheSize > 0 {
		s.cache = expirable.NewLRU[string, quote.Analysis](opts.CacheSize, nil, opts.CacheTTL)
	}
	return s
}

// Estimate expects a request that already passed quote.Validate.
func (s *Service) Estimate(ctx context.Context, req quote.Request) Result {
	if s.gen == nil {
		return Result{Analysis: s.fallback.Estimate(req), Source: SourceFallback}
	}

	key := cacheKey(req)
	if s.cache != nil && key != "" {
		if a, ok := s.cache.Get(key); ok {
			return Result{Analysis: cloneAnalysis(a), Source: SourceCache}
		}
	}

	a, err := s.primary(ctx, req)
	if err != nil {
		return Result{Analysis: s.fallback.Estimate(req), Source: SourceFallback, PrimaryErr: err}
	}
	if s.cache != nil && key != "" {
		s.cache.Add(key, cloneAnalysis(a))
	}
	return Result{Analysis: a, Source: SourceModel}
}

func (s *Service) primary(ctx context.Context, req quote.Request) (quote.Analysis, error) {
	text, err := s.gen.GenerateJSON(ctx, systemPrompt, userPrompt(req), responseSchema)
	if err != nil {
		return quote.Analysis{}, fmt.Errorf("generate: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return quote.Analysis{}, ErrEmptyResponse
	}
	a, err := parseAnalysis(text)
	if err != nil {
		return quote.Analysis{}, err
	}
	return finalize(a), nil
}

// modelAnalysis mirrors quote.Analysis with float numbers; models often emit
// 2.8e6 or 3.0 where integers are expected.
type modelAnalysis struct {
	EstimatedCost   float64           `json:"estimatedCost"`
	Timeline        string            `json:"timeline"`
	TeamSize        float64           `json:"teamSize"`
	SuggestedStack  []string          `json:"suggestedStack"`
	Dependencies    []string          `json:"dependencies"`
	Risks           []string          `json:"risks"`
	MVPPlan         []quote.Milestone `json:"mvpPlan"`
	AIAnalysis      string            `json:"aiAnalysis"`
	CostBreakdown   *struct {
		Development       float64 `json:"development"`
		Design            float64 `json:"design"`
		Testing           float64 `json:"testing"`
		Deployment        float64 `json:"deployment"`
		ProjectManagement float64 `json:"projectManagement"`
	} `json:"costBreakdown"`
	Recommendations []string `json:"recommendations"`
}

func parseAnalysis(text string) (quote.Analysis, error) {
	var m modelAnalysis
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return quote.Analysis{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := checkShape(m); err != nil {
		return quote.Analysis{}, err
	}

	a := quote.Analysis{
		EstimatedCost:   toAmount(m.EstimatedCost),
		Timeline:        strings.TrimSpace(m.Timeline),
		TeamSize:        int(math.Max(0, math.Round(m.TeamSize))),
		SuggestedStack:  uniqueStrings(m.SuggestedStack),
		Dependencies:    nonEmpty(m.Dependencies),
		Risks:           nonEmpty(m.Risks),
		MVPPlan:         milestones(m.MVPPlan),
		AIAnalysis:      strings.TrimSpace(m.AIAnalysis),
		Recommendations: nonEmpty(m.Recommendations),
	}
	if cb := m.CostBreakdown; cb != nil {
		a.CostBreakdown = quote.CostBreakdown{
			Development:       toAmount(cb.Development),
			Design:            toAmount(cb.Design),
			Testing:           toAmount(cb.Testing),
			Deployment:        toAmount(cb.Deployment),
			ProjectManagement: toAmount(cb.ProjectManagement),
		}
	}
	return a, nil
}

func checkShape(m modelAnalysis) error {
	switch {
	case math.IsNaN(m.EstimatedCost) || m.EstimatedCost <= 0 || m.EstimatedCost > maxAmount:
		return fmt.Errorf("%w: estimatedCost %v", ErrMalformed, m.EstimatedCost)
	case math.IsNaN(m.TeamSize) || m.TeamSize > maxTeamSize:
		return fmt.Errorf("%w: teamSize %v", ErrMalformed, m.TeamSize)
	case strings.TrimSpace(m.Timeline) == "":
		return fmt.Errorf("%w: timeline missing", ErrMalformed)
	case len(nonEmpty(m.SuggestedStack)) == 0:
		return fmt.Errorf("%w: suggestedStack empty", ErrMalformed)
	case len(m.MVPPlan) == 0:
		return fmt.Errorf("%w: mvpPlan empty", ErrMalformed)
	case strings.TrimSpace(m.AIAnalysis) == "":
		return fmt.Errorf("%w: aiAnalysis missing", ErrMalformed)
	}
	for i, ms := range m.MVPPlan {
		if strings.TrimSpace(ms.Milestone) == "" || strings.TrimSpace(ms.Duration) == "" || len(nonEmpty(ms.Deliverables)) == 0 {
			return fmt.Errorf("%w: milestone %d incomplete", ErrMalformed, i)
		}
	}
	return nil
}

// finalize applies the floors. The model's breakdown survives only if it adds up
// to the final cost.
func finalize(a quote.Analysis) quote.Analysis {
	raised := a.EstimatedCost < quote.MinEstimatedCost
	a = quote.ApplyFloors(a)
	diff := a.CostBreakdown.Total() - a.EstimatedCost
	if raised || a.CostBreakdown.IsZero() || diff > breakdownTol || diff < -breakdownTol {
		a.CostBreakdown = quote.Breakdown(a.EstimatedCost)
	}
	return a
}

// toAmount rounds f to whole rupees. Negative or out-of-range values become 0.
func toAmount(f float64) int64 {
	if math.IsNaN(f) || f < 0 || f > maxAmount {
		return 0
	}
	return int64(math.Round(f))
}

func milestones(in []quote.Milestone) []quote.Milestone {
	out := make([]quote.Milestone, 0, len(in))
	for _, m := range in {
		out = append(out, quote.Milestone{
			Milestone:    strings.TrimSpace(m.Milestone),
			Duration:     strings.TrimSpace(m.Duration),
			Deliverables: nonEmpty(m.Deliverables),
		})
	}
	return out
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range nonEmpty(in) {
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func cacheKey(req quote.Request) string {
	req.ContactEmail = ""
	req.ContactName = ""
	body, err := json.Marshal(req)
	if err != nil {
		log.Printf("estimator: cache key: %v", err)
		return ""
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func cloneAnalysis(a quote.Analysis) quote.Analysis {
	out := a
	out.SuggestedStack = append([]string(nil), a.SuggestedStack...)
	out.Dependencies = append([]string(nil), a.Dependencies...)
	out.Risks = append([]string(nil), a.Risks...)
	out.Recommendations = append([]string(nil), a.Recommendations...)
	out.MVPPlan = make([]quote.Milestone, len(a.MVPPlan))
	for i, m := range a.MVPPlan {
		m.Deliverables = append([]string(nil), m.Deliverables...)
		out.MVPPlan[i] = m
	}
	return out
}
