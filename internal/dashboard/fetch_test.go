package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/estatedesk/estatedesk/internal/domain"
)

type fakeFetcher struct {
	visits    []SiteVisit
	leads     []Lead
	stats     *AgentStats
	calls     []CallLog
	visitsErr error
	leadsErr  error
	statsErr  error
	callsErr  error
}

func (f *fakeFetcher) SiteVisits(ctx context.Context) ([]SiteVisit, error) {
	return f.visits, f.visitsErr
}

func (f *fakeFetcher) LeadsNeedingFollowup(ctx context.Context) ([]Lead, error) {
	return f.leads, f.leadsErr
}

func (f *fakeFetcher) AgentStats(ctx context.Context, userID string) (*AgentStats, error) {
	return f.stats, f.statsErr
}

func (f *fakeFetcher) RecentCallLogs(ctx context.Context, limit int) ([]CallLog, error) {
	return f.calls, f.callsErr
}

func TestLoadAllSucceed(t *testing.T) {
	f := &fakeFetcher{
		visits: []SiteVisit{{ID: "v1", ScheduledAt: time.Now()}},
		leads:  []Lead{{ID: "l1", Name: "Asha"}},
		stats:  &AgentStats{UserID: "u1", TotalLeads: 4},
		calls:  []CallLog{{ID: "c1", Outcome: domain.CallConnected}},
	}

	data := Load(context.Background(), f, "u1")

	if len(data.Visits) != 1 || len(data.Leads) != 1 || len(data.Calls) != 1 {
		t.Errorf("unexpected collection sizes: %+v", data)
	}
	if data.Stats.TotalLeads != 4 {
		t.Errorf("stats not carried through: %+v", data.Stats)
	}
}

func TestLoadDegradesToEmptyOnFailure(t *testing.T) {
	f := &fakeFetcher{
		visits:   []SiteVisit{{ID: "v1", ScheduledAt: time.Now()}},
		leadsErr: errors.New("upstream 500"),
		statsErr: errors.New("timeout"),
		calls:    []CallLog{{ID: "c1", Outcome: domain.CallBusy}},
	}

	data := Load(context.Background(), f, "u1")

	// The failed resources come back empty; the others still load.
	if len(data.Leads) != 0 {
		t.Errorf("failed leads fetch should yield empty, got %+v", data.Leads)
	}
	if data.Stats != (AgentStats{}) {
		t.Errorf("failed stats fetch should yield zero value, got %+v", data.Stats)
	}
	if len(data.Visits) != 1 || len(data.Calls) != 1 {
		t.Errorf("healthy fetches lost: %+v", data)
	}

	// An all-empty snapshot still builds a usable view model.
	vm := Build(time.Now(), data)
	if vm.PendingTasks() != 1 {
		t.Errorf("expected just the visit task, got %d pending", vm.PendingTasks())
	}
}

func TestLoadNilStats(t *testing.T) {
	data := Load(context.Background(), &fakeFetcher{}, "u1")
	if data.Stats != (AgentStats{}) {
		t.Errorf("nil stats should stay zero value, got %+v", data.Stats)
	}
}
