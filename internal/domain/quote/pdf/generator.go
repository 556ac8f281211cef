package pdf

import "cehpoint/site_backend/internal/domain/quote"

type Generator interface {
	Generate(p quote.Proposal) ([]byte, error)
}
