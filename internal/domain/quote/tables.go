package quote

import "strings"

const (
	// MinEstimatedCost is the lowest cost (INR) any analysis may carry.
	MinEstimatedCost int64 = 50000
	MinTeamSize            = 2

	defaultCost     int64 = 500000
	defaultTimeline       = "16 weeks"
	defaultStackKey       = "default"
)

// Tables holds the lookup data of the fallback estimator. It is built once and
// only ever read.
type Tables struct {
	budgets    map[string]int64
	timelines  map[string]string
	stacks     map[string][]string
	deps       []string
	risks      []string
	milestones []Milestone
	recs       []string
}

var defaultTables = newDefaultTables()

// DefaultTables returns the shared read-only tables.
func DefaultTables() *Tables { return defaultTables }

func newDefaultTables() *Tables {
	return &Tables{
		budgets: map[string]int64{
			"8L-20L":  1200000,
			"20L-40L": 2800000,
			"40L-80L": 6000000,
			"80L+":    9600000,
		},
		timelines: map[string]string{
			"1-2 months":  "8 weeks",
			"3-6 months":  "16 weeks",
			"6-12 months": "32 weeks",
			"12+ months":  "48 weeks",
		},
		stacks: map[string][]string{
			"ecommerce":     {"React", "Node.js", "PostgreSQL", "Stripe", "AWS", "Redis"},
			"edutech":       {"React", "Node.js", "MongoDB", "WebRTC", "AWS", "Socket.io"},
			"fintech":       {"React", "Node.js", "PostgreSQL", "Blockchain", "AWS", "Redis"},
			"healthcare":    {"React", "Node.js", "PostgreSQL", "HIPAA Compliance", "AWS", "Encryption"},
			defaultStackKey: {"React", "Node.js", "PostgreSQL", "AWS", "Docker"},
		},
		deps: []string{
			"Client requirements finalization",
			"Design system approval",
			"Third-party API access credentials",
			"Production environment setup",
			"Domain and SSL certificate setup",
		},
		risks: []string{
			"Scope creep during development",
			"Third-party integration delays",
			"Performance optimization challenges",
			"Compliance requirement changes",
			"Resource availability constraints",
		},
		milestones: []Milestone{
			{
				Milestone:    "Project Foundation",
				Duration:     "2 weeks",
				Deliverables: []string{"Project setup", "Database design", "Authentication system", "Basic UI framework", "Development environment"},
			},
			{
				Milestone:    "Core Development",
				Duration:     "6-8 weeks",
				Deliverables: []string{"Main functionality implementation", "API development", "Frontend components", "Database integration", "Basic testing"},
			},
			{
				Milestone:    "Integration & Testing",
				Duration:     "3-4 weeks",
				Deliverables: []string{"Third-party integrations", "Comprehensive testing", "Performance optimization", "Security audit", "Bug fixes"},
			},
			{
				Milestone:    "Deployment & Launch",
				Duration:     "2 weeks",
				Deliverables: []string{"Production deployment", "Documentation", "User training", "Go-live support", "Post-launch monitoring"},
			},
		},
		recs: []string{
			"Start with MVP to validate core concepts",
			"Implement robust testing from the beginning",
			"Plan for scalability from day one",
			"Regular client feedback sessions recommended",
			"Consider phased rollout approach",
		},
	}
}

// Cost returns the representative amount for a budget band and whether the band was known.
func (t *Tables) Cost(budgetRange string) (int64, bool) {
	v, ok := t.budgets[budgetKey(budgetRange)]
	if !ok {
		return defaultCost, false
	}
	return v, true
}

func (t *Tables) Timeline(timeline string) (string, bool) {
	v, ok := t.timelines[timelineKey(timeline)]
	if !ok {
		return defaultTimeline, false
	}
	return v, true
}

func (t *Tables) Stack(industry string) ([]string, bool) {
	v, ok := t.stacks[strings.ToLower(strings.TrimSpace(industry))]
	if !ok {
		return cloneStrings(t.stacks[defaultStackKey]), false
	}
	return cloneStrings(v), true
}

func (t *Tables) DefaultStack() []string { return cloneStrings(t.stacks[defaultStackKey]) }

func (t *Tables) Dependencies() []string { return cloneStrings(t.deps) }

func (t *Tables) Risks() []string { return cloneStrings(t.risks) }

func (t *Tables) Recommendations() []string { return cloneStrings(t.recs) }

func (t *Tables) Milestones() []Milestone {
	out := make([]Milestone, 0, len(t.milestones))
	for _, m := range t.milestones {
		m.Deliverables = cloneStrings(m.Deliverables)
		out = append(out, m)
	}
	return out
}

// budgetKey folds "₹20L - ₹40L", "20l-40l" and "20L-40L" onto one key.
func budgetKey(s string) string {
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.Join(strings.Fields(s), "")
	return strings.ToUpper(s)
}

func timelineKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
