package report

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/estatedesk/estatedesk/internal/db"
	"github.com/estatedesk/estatedesk/internal/domain"
)

func sp(s string) *string { return &s }

func sampleInput() *Input {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	agentA, agentB := "agent-a", "agent-b"

	var leads []db.Lead
	for i := 0; i < 60; i++ {
		agent := agentA
		if i%2 == 1 {
			agent = agentB
		}
		leads = append(leads, db.Lead{
			ID:          fmt.Sprintf("lead-%d", i),
			Name:        fmt.Sprintf("Lead %d", i),
			Phone:       "9000000000",
			Temperature: domain.TempWarm,
			Stage:       domain.StageContacted,
			AssignedTo:  sp(agent),
		})
	}

	closedAt := now.AddDate(0, 0, -2)
	return &Input{
		Leads: leads,
		Deals: []db.Deal{
			{ID: "d1", LeadID: "lead-0", AgentID: agentA, Amount: 25000000, Status: "closed", ClosedAt: &closedAt},
			{ID: "d2", LeadID: "lead-2", AgentID: agentA, Amount: 8000000, Status: "open"},
			{ID: "d3", LeadID: "lead-1", AgentID: agentB, Amount: 12000000, Status: "closed", ClosedAt: &closedAt},
		},
		Calls: []db.CallLog{
			{ID: "c1", LeadID: "lead-0", AgentID: agentA, Outcome: domain.CallConnected},
			{ID: "c2", LeadID: "lead-1", AgentID: agentB, Outcome: domain.CallNoAnswer},
		},
		Visits: []db.SiteVisit{
			{ID: "v1", LeadID: "lead-0", AgentID: agentA, ScheduledAt: now, Status: domain.VisitScheduled},
			{ID: "v2", LeadID: "lead-1", AgentID: agentB, ScheduledAt: now, Status: domain.VisitCompleted},
		},
		GeneratedAt: now,
	}
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(sampleInput(), &buf); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", buf.Bytes()[:8])
	}
	if buf.Len() < 1000 {
		t.Errorf("suspiciously small PDF: %d bytes", buf.Len())
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&Input{}, &buf); err != nil {
		t.Fatalf("Generate on empty input failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("empty-input report is not a PDF")
	}
}

func TestAgentFilter(t *testing.T) {
	in := sampleInput()
	in.AgentID = "agent-a"
	filtered := in.filtered()

	if len(filtered.Leads) != 30 {
		t.Errorf("filtered leads = %d, want 30", len(filtered.Leads))
	}
	if len(filtered.Deals) != 2 {
		t.Errorf("filtered deals = %d, want 2", len(filtered.Deals))
	}
	if len(filtered.Calls) != 1 || len(filtered.Visits) != 1 {
		t.Errorf("filtered calls/visits = %d/%d, want 1/1", len(filtered.Calls), len(filtered.Visits))
	}
	for _, d := range filtered.Deals {
		if d.AgentID != "agent-a" {
			t.Errorf("deal %s belongs to %s", d.ID, d.AgentID)
		}
	}

	// No filter returns the input untouched.
	in.AgentID = ""
	if got := in.filtered(); len(got.Leads) != 60 {
		t.Errorf("unfiltered leads = %d, want 60", len(got.Leads))
	}
}

func TestRupees(t *testing.T) {
	if got := rupees(25000000); got != "Rs 2.5 Cr" {
		t.Errorf("rupees(25000000) = %q, want %q", got, "Rs 2.5 Cr")
	}
}
