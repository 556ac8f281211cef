package estimator

import (
	"strings"

	"google.golang.org/genai"

	"cehpoint/site_backend/internal/domain/quote"
)

const systemPrompt = `You are a senior software delivery consultant at an IT services company. You estimate web, mobile and cloud projects for e-commerce, edutech, fintech and other industries.

When estimating, weigh feature complexity, industry requirements, expected user volume and scalability, timeline pressure, integration and compliance needs (GDPR, HIPAA, PCI-DSS), hosting costs and ongoing maintenance.

Plan delivery as sequential milestones with concrete deliverables, core functionality first, with testing in every phase and buffer for feedback cycles.

Recommend proven, maintainable technologies suited to the industry, and cheaper alternatives where sensible.

All amounts are Indian rupees (INR) as whole numbers. Answer only with JSON matching the response schema.`

func userPrompt(req quote.Request) string {
	var b strings.Builder
	b.WriteString("PROJECT ANALYSIS REQUEST:\n")
	line(&b, "Industry", req.Industry, "")
	line(&b, "Project Summary", req.ProjectSummary, "")
	line(&b, "Expected Users", req.ExpectedUsers, "")
	line(&b, "Timeline", req.Timeline, "")
	line(&b, "Budget Range", req.BudgetRange, "")
	line(&b, "Key Features", strings.Join(req.Features, ", "), "")
	line(&b, "Technology Preferences", req.TechPreferences, "Open to recommendations")
	line(&b, "Compliance Needs", req.ComplianceNeeds, "Standard web application requirements")
	line(&b, "Additional Context", req.AdditionalContext, "None provided")
	b.WriteString("\nProvide a complete quotation analysis with realistic cost, timeline, team, milestones, risks and recommendations.")
	return b.String()
}

func line(b *strings.Builder, label, value, def string) {
	if strings.TrimSpace(value) == "" {
		value = def
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func stringList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"estimatedCost":  {Type: genai.TypeNumber},
		"timeline":       {Type: genai.TypeString},
		"teamSize":       {Type: genai.TypeNumber},
		"suggestedStack": stringList(),
		"dependencies":   stringList(),
		"risks":          stringList(),
		"mvpPlan": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"milestone":    {Type: genai.TypeString},
					"duration":     {Type: genai.TypeString},
					"deliverables": stringList(),
				},
				Required: []string{"milestone", "duration", "deliverables"},
			},
		},
		"aiAnalysis": {Type: genai.TypeString},
		"costBreakdown": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"development":       {Type: genai.TypeNumber},
				"design":            {Type: genai.TypeNumber},
				"testing":           {Type: genai.TypeNumber},
				"deployment":        {Type: genai.TypeNumber},
				"projectManagement": {Type: genai.TypeNumber},
			},
			Required: []string{"development", "design", "testing", "deployment", "projectManagement"},
		},
		"recommendations": stringList(),
	},
	Required: []string{
		"estimatedCost", "timeline", "teamSize", "suggestedStack", "dependencies",
		"risks", "mvpPlan", "aiAnalysis", "costBreakdown", "recommendations",
	},
}
