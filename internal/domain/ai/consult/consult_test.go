package consult

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"cehpoint/site_backend/internal/domain/validation"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) GenerateJSON(ctx context.Context, system, prompt string, schema *genai.Schema) (string, error) {
	return s.text, s.err
}

func sampleRequest() Request {
	return Request{Answers: Answers{
		PrimaryGoal:     []string{"cost-savings", "security"},
		WorkloadType:    []string{"web-apps", "ai-ml"},
		ImportantFactor: []string{"lower-cost"},
	}}
}

func TestValidate(t *testing.T) {
	_, err := Validate(sampleRequest())
	require.NoError(t, err)

	req := sampleRequest()
	req.Answers.WorkloadType = []string{" "}
	_, err = Validate(req)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "workloadType", verr.Field)

	_, err = Validate(Request{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "primaryGoal", verr.Field)
}

func TestFallback(t *testing.T) {
	resp := Fallback(sampleRequest())

	assert.Equal(t, "On AWS: Elastic Beanstalk, CloudFront, Amazon RDS, Amazon SageMaker, Amazon Bedrock.", resp.AWSSolution)
	assert.Equal(t, "On Google Cloud: Cloud Run, Cloud CDN, Cloud SQL, Vertex AI, Gemini API.", resp.GCPSolution)
	assert.Contains(t, resp.Recommendation, "cost savings and security and compliance")
	assert.Contains(t, resp.Recommendation, "lower cost")
	assert.Len(t, resp.NextSteps, 5)
	assert.Equal(t, resp, Fallback(sampleRequest()))
}

func TestFallback_UnknownWorkloadAndQuestion(t *testing.T) {
	req := sampleRequest()
	req.Answers.WorkloadType = []string{"quantum", "other"}
	req.Answers.CustomQuestion = "Can we keep data in India?"

	resp := Fallback(req)
	assert.Equal(t, "On AWS: Amazon EC2, Amazon S3.", resp.AWSSolution)
	assert.Contains(t, resp.Recommendation, "Can we keep data in India?")
}

func TestAdvisor_UsesModelAnswer(t *testing.T) {
	gen := stubGenerator{text: `{"recommendation":"Go serverless.","awsSolution":"Lambda","gcpSolution":"Cloud Run","nextSteps":["Call us", " "]}`}
	resp, err := NewAdvisor(gen).Advise(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, Response{Recommendation: "Go serverless.", AWSSolution: "Lambda", GCPSolution: "Cloud Run", NextSteps: []string{"Call us"}}, resp)
}

func TestAdvisor_FallsBack(t *testing.T) {
	for name, gen := range map[string]Generator{
		"error":          stubGenerator{err: errors.New("quota")},
		"invalid json":   stubGenerator{text: "nope"},
		"missing fields": stubGenerator{text: `{"recommendation":"x"}`},
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := NewAdvisor(gen).Advise(context.Background(), sampleRequest())
			assert.Error(t, err)
			assert.Equal(t, Fallback(sampleRequest()), resp)
		})
	}

	resp, err := NewAdvisor(nil).Advise(context.Background(), sampleRequest())
	assert.NoError(t, err)
	assert.Equal(t, Fallback(sampleRequest()), resp)
}
