package quote

import (
	"strings"

	"cehpoint/site_backend/internal/domain/validation"
)

const KindMissingField = validation.KindMissingField

// ValidationError names the first required field that was missing or empty.
type ValidationError = validation.Error

// Validate trims the request and checks the required-field contract in the order
// industry, projectSummary, expectedUsers, timeline, budgetRange, features.
func Validate(req Request) (Request, error) {
	req = normalizeRequest(req)
	if err := validation.Struct(req); err != nil {
		return Request{}, err
	}
	return req, nil
}

func normalizeRequest(req Request) Request {
	req.Industry = strings.TrimSpace(req.Industry)
	req.ProjectSummary = strings.TrimSpace(req.ProjectSummary)
	req.ExpectedUsers = strings.TrimSpace(req.ExpectedUsers)
	req.Timeline = strings.TrimSpace(req.Timeline)
	req.BudgetRange = strings.TrimSpace(req.BudgetRange)
	req.Features = validation.TrimAll(req.Features)
	req.TechPreferences = strings.TrimSpace(req.TechPreferences)
	req.ComplianceNeeds = strings.TrimSpace(req.ComplianceNeeds)
	req.AdditionalContext = strings.TrimSpace(req.AdditionalContext)
	req.ContactEmail = strings.TrimSpace(req.ContactEmail)
	req.ContactName = strings.TrimSpace(req.ContactName)
	return req
}
