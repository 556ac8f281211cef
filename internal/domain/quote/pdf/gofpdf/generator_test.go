package gofpdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cehpoint/site_backend/internal/domain/quote"
	"cehpoint/site_backend/internal/domain/quote/pdf"
)

var _ pdf.Generator = (*Generator)(nil)

func TestGenerate_RendersProposal(t *testing.T) {
	req := quote.Request{
		Industry:       "edutech",
		ProjectSummary: "Live classes platform",
		ExpectedUsers:  "1000-10000",
		Timeline:       "6-12 months",
		BudgetRange:    "₹40L-₹80L",
		Features:       []string{"Video Streaming", "Real-time Chat & Messaging"},
		ContactName:    "Asha",
		ContactEmail:   "asha@example.com",
	}
	out, err := New().Generate(quote.Proposal{
		Number:    "Q-1",
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Request:   req,
		Analysis:  quote.Fallback(req),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, len(out), 1000)
}

func TestGenerate_TranslatesModelText(t *testing.T) {
	req := quote.Request{Industry: "fintech", ExpectedUsers: "0-1000", Timeline: "3-6 months", BudgetRange: "20L-40L", Features: []string{"Auth"}}
	a := quote.Fallback(req)
	a.Timeline = "12\u201316 weeks"

	g := &Generator{uncompressed: true}
	out, err := g.Generate(quote.Proposal{Number: "Q-2", CreatedAt: time.Now(), Request: req, Analysis: a})
	require.NoError(t, err)

	assert.Contains(t, string(out), "Timeline: 12\x9616 weeks")
	assert.NotContains(t, string(out), "\u2013")
}

func TestTrim(t *testing.T) {
	assert.Equal(t, "short", trim("short", 10))
	assert.Equal(t, "abcd…", trim("abcdefgh", 5))
}
