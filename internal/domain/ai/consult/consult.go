// Package consult answers the cloud solutions questionnaire with an AWS and a
// GCP proposal.
package consult

import (
	"strings"

	"cehpoint/site_backend/internal/domain/validation"
)

type Request struct {
	Answers Answers `json:"answers"`
}

type Answers struct {
	PrimaryGoal     []string `json:"primaryGoal" validate:"required,min=1"`
	WorkloadType    []string `json:"workloadType" validate:"required,min=1"`
	ImportantFactor []string `json:"importantFactor" validate:"required,min=1"`
	CustomQuestion  string   `json:"customQuestion,omitempty"`
}

type Response struct {
	Recommendation string   `json:"recommendation"`
	AWSSolution    string   `json:"awsSolution"`
	GCPSolution    string   `json:"gcpSolution"`
	NextSteps      []string `json:"nextSteps"`
}

// Validate requires at least one selection for each of the three questions.
func Validate(req Request) (Request, error) {
	a := &req.Answers
	a.PrimaryGoal = validation.TrimAll(a.PrimaryGoal)
	a.WorkloadType = validation.TrimAll(a.WorkloadType)
	a.ImportantFactor = validation.TrimAll(a.ImportantFactor)
	a.CustomQuestion = strings.TrimSpace(a.CustomQuestion)
	if err := validation.Struct(req); err != nil {
		return Request{}, err
	}
	return req, nil
}
