package gofpdf

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"cehpoint/site_backend/internal/domain/quote"
)

const company = "Cehpoint"

type Generator struct {
	// uncompressed leaves page streams readable; used by tests.
	uncompressed bool
}

func New() *Generator { return &Generator{} }

func (g *Generator) Generate(p quote.Proposal) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Project Quotation", false)
	pdf.SetAuthor(company, false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetCompression(!g.uncompressed)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	a := p.Analysis

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Project Quotation")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("No. %s dated %s", p.Number, p.CreatedAt.Format("02.01.2006"))))
	pdf.Ln(6)
	if p.Request.ContactName != "" || p.Request.ContactEmail != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Prepared for: %s %s", p.Request.ContactName, p.Request.ContactEmail)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, tr(fmt.Sprintf("Industry: %s   Expected users: %s", p.Request.Industry, p.Request.ExpectedUsers)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Estimated cost: %s", quote.FormatINR(a.EstimatedCost))))
	pdf.Ln(7)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Timeline: %s   Team size: %d", a.Timeline, a.TeamSize)))
	pdf.Ln(10)

	section(pdf, "Summary")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr(a.AIAnalysis), "", "L", false)
	pdf.Ln(3)

	section(pdf, "Cost breakdown")
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range []struct {
		name  string
		value int64
	}{
		{"Development", a.CostBreakdown.Development},
		{"Design", a.CostBreakdown.Design},
		{"Testing", a.CostBreakdown.Testing},
		{"Deployment", a.CostBreakdown.Deployment},
		{"Project management", a.CostBreakdown.ProjectManagement},
	} {
		pdf.Cell(70, 6, row.name)
		pdf.CellFormat(50, 6, quote.FormatINR(row.value), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}
	pdf.Ln(3)

	section(pdf, "Suggested stack")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr(strings.Join(a.SuggestedStack, ", ")), "", "L", false)
	pdf.Ln(3)

	section(pdf, "Delivery plan")
	for i, m := range a.MVPPlan {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, tr(fmt.Sprintf("%d. %s (%s)", i+1, m.Milestone, m.Duration)))
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(trim(strings.Join(m.Deliverables, "; "), 400)), "", "L", false)
	}
	pdf.Ln(3)

	bullets(pdf, tr, "Dependencies", a.Dependencies)
	bullets(pdf, tr, "Risks", a.Risks)
	bullets(pdf, tr, "Recommendations", a.Recommendations)

	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, company+" - The Point Where IT Innovation Meets Cybersecurity Excellence")

	if err := pdf.Error(); err != nil {
		log.Printf("quote pdf: render failed: %v", err)
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("quote pdf: output failed: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, title)
	pdf.Ln(7)
}

func bullets(pdf *gofpdf.Fpdf, tr func(string) string, title string, items []string) {
	if len(items) == 0 {
		return
	}
	section(pdf, title)
	pdf.SetFont("Helvetica", "", 10)
	for _, it := range items {
		pdf.MultiCell(0, 5, tr("- "+trim(it, 200)), "", "L", false)
	}
	pdf.Ln(3)
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
