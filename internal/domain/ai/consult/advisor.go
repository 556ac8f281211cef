package consult

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type Generator interface {
	GenerateJSON(ctx context.Context, system, prompt string, schema *genai.Schema) (string, error)
}

var ErrMalformed = errors.New("consult: malformed model response")

const systemPrompt = `You are a cloud solutions architect at an IT services company. Given a prospect's goals, workloads and selection criteria, recommend a concrete architecture on AWS and an equivalent one on Google Cloud, naming managed services. Keep each solution to one short paragraph and list 3 to 5 actionable next steps. Answer only with JSON matching the response schema.`

var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recommendation": {Type: genai.TypeString},
		"awsSolution":    {Type: genai.TypeString},
		"gcpSolution":    {Type: genai.TypeString},
		"nextSteps":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"recommendation", "awsSolution", "gcpSolution", "nextSteps"},
}

// Advisor asks the model first and answers from the fallback tables when it
// cannot. A nil generator means fallback only.
type Advisor struct {
	gen Generator
}

func NewAdvisor(gen Generator) *Advisor {
	return &Advisor{gen: gen}
}

// Advise returns the answer and, when the model path was abandoned, why.
func (a *Advisor) Advise(ctx context.Context, req Request) (Response, error) {
	if a.gen == nil {
		return Fallback(req), nil
	}
	text, err := a.gen.GenerateJSON(ctx, systemPrompt, prompt(req), responseSchema)
	if err != nil {
		return Fallback(req), fmt.Errorf("generate: %w", err)
	}
	resp, err := parseResponse(text)
	if err != nil {
		return Fallback(req), err
	}
	return resp, nil
}

func prompt(req Request) string {
	a := req.Answers
	var b strings.Builder
	b.WriteString("Primary goals: " + strings.Join(a.PrimaryGoal, ", ") + "\n")
	b.WriteString("Workloads: " + strings.Join(a.WorkloadType, ", ") + "\n")
	b.WriteString("Important factors: " + strings.Join(a.ImportantFactor, ", ") + "\n")
	if a.CustomQuestion != "" {
		b.WriteString("Additional question: " + a.CustomQuestion + "\n")
	}
	return b.String()
}

func parseResponse(text string) (Response, error) {
	var r Response
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &r); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	r.Recommendation = strings.TrimSpace(r.Recommendation)
	r.AWSSolution = strings.TrimSpace(r.AWSSolution)
	r.GCPSolution = strings.TrimSpace(r.GCPSolution)
	steps := r.NextSteps[:0]
	for _, s := range r.NextSteps {
		if s = strings.TrimSpace(s); s != "" {
			steps = append(steps, s)
		}
	}
	r.NextSteps = steps
	if r.Recommendation == "" || r.AWSSolution == "" || r.GCPSolution == "" || len(r.NextSteps) == 0 {
		return Response{}, fmt.Errorf("%w: missing fields", ErrMalformed)
	}
	return r, nil
}
