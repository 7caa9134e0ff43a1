// Package report produces the downloadable sales report PDF: a header band,
// metric cards, distribution and activity tables, then row-capped lead and
// deal tables with a page-numbered footer. Generation is fully synchronous;
// callers get the finished document or an error.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/estatedesk/estatedesk/internal/dashboard"
	"github.com/estatedesk/estatedesk/internal/db"
	"github.com/estatedesk/estatedesk/internal/domain"
)

// Row caps keep the report a skim, not a data dump.
const (
	maxLeadRows = 50
	maxDealRows = 30
)

// Input is everything the report is built from. AgentID, when set, filters
// all four collections to that agent before anything is computed.
type Input struct {
	Leads   []db.Lead
	Deals   []db.Deal
	Calls   []db.CallLog
	Visits  []db.SiteVisit
	AgentID string

	// Title shown in the header band; defaults to "Sales Report".
	Title string

	// GeneratedAt is stamped in the header; zero means time.Now().
	GeneratedAt time.Time
}

func (in *Input) filtered() *Input {
	if in.AgentID == "" {
		return in
	}
	out := &Input{AgentID: in.AgentID, Title: in.Title, GeneratedAt: in.GeneratedAt}
	for _, l := range in.Leads {
		if l.AssignedTo != nil && *l.AssignedTo == in.AgentID {
			out.Leads = append(out.Leads, l)
		}
	}
	for _, d := range in.Deals {
		if d.AgentID == in.AgentID {
			out.Deals = append(out.Deals, d)
		}
	}
	for _, c := range in.Calls {
		if c.AgentID == in.AgentID {
			out.Calls = append(out.Calls, c)
		}
	}
	for _, v := range in.Visits {
		if v.AgentID == in.AgentID {
			out.Visits = append(out.Visits, v)
		}
	}
	return out
}

// Generate writes the PDF to w.
func Generate(in *Input, w io.Writer) error {
	in = in.filtered()

	title := in.Title
	if title == "" {
		title = "Sales Report"
	}
	generatedAt := in.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	drawHeader(pdf, title, generatedAt, in.AgentID)
	drawMetricCards(pdf, in)
	drawStageDistribution(pdf, in.Leads)
	drawActivitySummary(pdf, in)

	pdf.AddPage()
	drawLeadsTable(pdf, in.Leads)

	pdf.AddPage()
	drawDealsTable(pdf, in.Deals, in.Leads)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func drawHeader(pdf *fpdf.Fpdf, title string, generatedAt time.Time, agentID string) {
	pdf.SetFillColor(31, 41, 55)
	pdf.Rect(0, 0, 210, 28, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(10, 6)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	sub := "Generated " + generatedAt.Format("2 Jan 2006 15:04")
	if agentID != "" {
		sub += "  |  Agent " + agentID
	}
	pdf.SetX(10)
	pdf.CellFormat(0, 6, sub, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(34)
}

func drawMetricCards(pdf *fpdf.Fpdf, in *Input) {
	closed := 0
	var revenue float64
	for _, d := range in.Deals {
		if d.Status == "closed" {
			closed++
			revenue += d.Amount
		}
	}
	conversion := 0
	if len(in.Leads) > 0 {
		conversion = int(math.Round(100 * float64(closed) / float64(len(in.Leads))))
	}

	cards := []struct {
		label string
		value string
	}{
		{"Total Leads", fmt.Sprintf("%d", len(in.Leads))},
		{"Closed Deals", fmt.Sprintf("%d", closed)},
		{"Revenue", rupees(revenue)},
		{"Conversion", fmt.Sprintf("%d%%", conversion)},
	}

	const cardW, cardH, gap = 45.0, 22.0, 3.33
	x, y := 10.0, pdf.GetY()
	for _, card := range cards {
		pdf.SetFillColor(243, 244, 246)
		pdf.Rect(x, y, cardW, cardH, "F")

		pdf.SetXY(x+4, y+4)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(107, 114, 128)
		pdf.CellFormat(cardW-8, 4, strings.ToUpper(card.label), "", 1, "L", false, 0, "")

		pdf.SetX(x + 4)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(17, 24, 39)
		pdf.CellFormat(cardW-8, 9, card.value, "", 0, "L", false, 0, "")

		x += cardW + gap
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(y + cardH + 10)
}

func drawStageDistribution(pdf *fpdf.Fpdf, leads []db.Lead) {
	counts := map[domain.Stage]int{}
	for _, l := range leads {
		counts[l.Stage]++
	}

	sectionTitle(pdf, "Lead Distribution by Stage")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(229, 231, 235)
	pdf.CellFormat(95, 7, "Stage", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 7, "Leads", "1", 0, "R", true, 0, "")
	pdf.CellFormat(50, 7, "Share", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, stage := range domain.Stages {
		share := 0
		if len(leads) > 0 {
			share = int(math.Round(100 * float64(counts[stage]) / float64(len(leads))))
		}
		pdf.CellFormat(95, 6, stage.Label(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%d", counts[stage]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%d%%", share), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}

func drawActivitySummary(pdf *fpdf.Fpdf, in *Input) {
	connected := 0
	for _, c := range in.Calls {
		if c.Outcome.Connected() {
			connected++
		}
	}
	visitsByStatus := map[domain.VisitStatus]int{}
	for _, v := range in.Visits {
		visitsByStatus[v.Status]++
	}

	sectionTitle(pdf, "Activity Summary")

	rows := []struct {
		label string
		value string
	}{
		{"Calls logged", fmt.Sprintf("%d", len(in.Calls))},
		{"Calls connected", fmt.Sprintf("%d", connected)},
		{"Connect rate", fmt.Sprintf("%d%%", dashboard.ConnectRate(connected, len(in.Calls)))},
		{"Site visits scheduled", fmt.Sprintf("%d", visitsByStatus[domain.VisitScheduled])},
		{"Site visits completed", fmt.Sprintf("%d", visitsByStatus[domain.VisitCompleted])},
		{"Site visits cancelled", fmt.Sprintf("%d", visitsByStatus[domain.VisitCancelled])},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		pdf.CellFormat(95, 6, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(95, 6, row.value, "1", 1, "R", false, 0, "")
	}
}

func drawLeadsTable(pdf *fpdf.Fpdf, leads []db.Lead) {
	sectionTitle(pdf, fmt.Sprintf("Leads (showing up to %d)", maxLeadRows))

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(229, 231, 235)
	pdf.CellFormat(50, 6, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(32, 6, "Phone", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 6, "Stage", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 6, "Temp", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 6, "Budget", "1", 0, "R", true, 0, "")
	pdf.CellFormat(28, 6, "Next Follow-up", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for i, l := range leads {
		if i >= maxLeadRows {
			break
		}
		followup := "-"
		if l.NextFollowupAt != nil {
			followup = l.NextFollowupAt.Format("2 Jan 15:04")
		}
		budget := "-"
		if l.Budget > 0 {
			budget = rupees(l.Budget)
		}
		pdf.CellFormat(50, 5.5, truncate(l.Name, 32), "1", 0, "L", false, 0, "")
		pdf.CellFormat(32, 5.5, l.Phone, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5.5, l.Stage.Label(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 5.5, string(l.Temperature), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5.5, budget, "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 5.5, followup, "1", 1, "L", false, 0, "")
	}
	if len(leads) == 0 {
		pdf.CellFormat(190, 6, "No leads", "1", 1, "C", false, 0, "")
	}
}

func drawDealsTable(pdf *fpdf.Fpdf, deals []db.Deal, leads []db.Lead) {
	leadNames := make(map[string]string, len(leads))
	for _, l := range leads {
		leadNames[l.ID] = l.Name
	}

	sectionTitle(pdf, fmt.Sprintf("Deals (showing up to %d)", maxDealRows))

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(229, 231, 235)
	pdf.CellFormat(60, 6, "Lead", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 6, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 6, "Token", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 6, "Status", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 6, "Closed", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for i, d := range deals {
		if i >= maxDealRows {
			break
		}
		name := leadNames[d.LeadID]
		if name == "" {
			name = d.LeadID
		}
		token := "-"
		if d.TokenAmount > 0 {
			token = rupees(d.TokenAmount)
		}
		closed := "-"
		if d.ClosedAt != nil {
			closed = d.ClosedAt.Format("2 Jan 2006")
		}
		pdf.CellFormat(60, 5.5, truncate(name, 40), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 5.5, rupees(d.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 5.5, token, "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 5.5, d.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 5.5, closed, "1", 1, "L", false, 0, "")
	}
	if len(deals) == 0 {
		pdf.CellFormat(190, 6, "No deals", "1", 1, "C", false, 0, "")
	}
}

func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(1)
}

// rupees renders an amount for the PDF. The core PDF fonts have no rupee
// glyph, so the listing-style formatting is kept but the symbol becomes "Rs".
func rupees(v float64) string {
	return strings.Replace(dashboard.FormatAmountListing(v), "₹", "Rs ", 1)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
