package domain

import "testing"

func TestParseStage(t *testing.T) {
	tests := []struct {
		in      string
		want    Stage
		wantErr bool
	}{
		{"new", StageNew, false},
		{"SITE_VISIT", StageSiteVisit, false},
		{"  negotiation ", StageNegotiation, false},
		{"token", StageToken, false},
		{"won", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStage(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStage(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStageTerminal(t *testing.T) {
	for _, s := range Stages {
		terminal := s == StageClosed || s == StageLost
		if s.Terminal() != terminal {
			t.Errorf("%s.Terminal() = %v, want %v", s, s.Terminal(), terminal)
		}
	}
}

func TestStageLabelCoversAllStages(t *testing.T) {
	for _, s := range Stages {
		if s.Label() == string(s) && s != StageNew {
			// Label falls back to the raw value only for unknown stages.
			t.Errorf("stage %s has no label", s)
		}
	}
	if got := StageSiteVisit.Label(); got != "Site Visit" {
		t.Errorf("StageSiteVisit.Label() = %q, want %q", got, "Site Visit")
	}
}

func TestCallOutcomeConnected(t *testing.T) {
	tests := []struct {
		outcome CallOutcome
		want    bool
	}{
		{CallConnected, true},
		{CallConnectedCallback, true},
		{CallConnectedNotInterested, true},
		{CallNoAnswer, false},
		{CallBusy, false},
		{CallSwitchedOff, false},
		{CallWrongNumber, false},
	}
	for _, tt := range tests {
		if got := tt.outcome.Connected(); got != tt.want {
			t.Errorf("%s.Connected() = %v, want %v", tt.outcome, got, tt.want)
		}
	}
}

func TestParseCallOutcome(t *testing.T) {
	if _, err := ParseCallOutcome("connected_callback"); err != nil {
		t.Errorf("ParseCallOutcome(connected_callback) unexpected error: %v", err)
	}
	if _, err := ParseCallOutcome("hung_up"); err == nil {
		t.Error("ParseCallOutcome(hung_up) expected error, got nil")
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("Manager"); err != nil || r != RoleManager {
		t.Errorf("ParseRole(Manager) = %q, %v", r, err)
	}
	if _, err := ParseRole("owner"); err == nil {
		t.Error("ParseRole(owner) expected error, got nil")
	}
}

func TestTaskPriorityRank(t *testing.T) {
	if PriorityHigh.Rank() >= PriorityMedium.Rank() {
		t.Error("high should rank before medium")
	}
	if PriorityMedium.Rank() >= PriorityLow.Rank() {
		t.Error("medium should rank before low")
	}
	if TaskPriority("urgent").Rank() <= PriorityLow.Rank() {
		t.Error("unknown priority should rank last")
	}
}

func TestParseTemperature(t *testing.T) {
	if temp, err := ParseTemperature("HOT"); err != nil || temp != TempHot {
		t.Errorf("ParseTemperature(HOT) = %q, %v", temp, err)
	}
	if _, err := ParseTemperature("lukewarm"); err == nil {
		t.Error("ParseTemperature(lukewarm) expected error, got nil")
	}
}

func TestParseVisitStatus(t *testing.T) {
	if v, err := ParseVisitStatus("rescheduled"); err != nil || v != VisitRescheduled {
		t.Errorf("ParseVisitStatus(rescheduled) = %q, %v", v, err)
	}
	if _, err := ParseVisitStatus("pending"); err == nil {
		t.Error("ParseVisitStatus(pending) expected error, got nil")
	}
}
