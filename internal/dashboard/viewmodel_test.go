package dashboard

import (
	"testing"
	"time"

	"github.com/estatedesk/estatedesk/internal/domain"
)

// now is fixed mid-day so "yesterday" and "tomorrow" offsets stay within
// neighbouring calendar days.
var now = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func tp(t time.Time) *time.Time { return &t }

func lead(id, name string, due *time.Time) Lead {
	return Lead{
		ID:             id,
		Name:           name,
		Phone:          "9000000000",
		Temperature:    domain.TempWarm,
		Stage:          domain.StageContacted,
		NextFollowupAt: due,
	}
}

func visit(id string, at time.Time, status domain.VisitStatus) SiteVisit {
	return SiteVisit{ID: id, LeadID: "lead-" + id, ScheduledAt: at, Status: status}
}

func TestFollowupPartitions(t *testing.T) {
	overdue := lead("l1", "Asha", tp(now.AddDate(0, 0, -3)))
	today := lead("l2", "Vikram", tp(now.Add(2 * time.Hour)))
	future := lead("l3", "Meera", tp(now.AddDate(0, 0, 2)))
	noDate := lead("l4", "Sanjay", nil)

	vm := Build(now, &Data{Leads: []Lead{overdue, today, future, noDate}})

	if len(vm.OverdueFollowUps) != 1 || vm.OverdueFollowUps[0].ID != "l1" {
		t.Errorf("OverdueFollowUps = %+v, want just l1", vm.OverdueFollowUps)
	}
	if len(vm.TodayFollowUps) != 1 || vm.TodayFollowUps[0].ID != "l2" {
		t.Errorf("TodayFollowUps = %+v, want just l2", vm.TodayFollowUps)
	}

	// An overdue lead must never show in today's bucket and vice versa.
	for _, l := range vm.TodayFollowUps {
		if l.ID == "l1" {
			t.Error("overdue lead leaked into TodayFollowUps")
		}
	}
	for _, l := range vm.OverdueFollowUps {
		if l.ID == "l2" {
			t.Error("today's lead leaked into OverdueFollowUps")
		}
	}
}

func TestVisitPartitions(t *testing.T) {
	todayV := visit("v1", now.Add(3*time.Hour), domain.VisitScheduled)
	tomorrowV := visit("v2", now.AddDate(0, 0, 1), domain.VisitScheduled)
	yesterdayV := visit("v3", now.AddDate(0, 0, -1), domain.VisitScheduled)

	vm := Build(now, &Data{Visits: []SiteVisit{todayV, tomorrowV, yesterdayV}})

	if len(vm.TodayVisits) != 1 || vm.TodayVisits[0].ID != "v1" {
		t.Errorf("TodayVisits = %+v, want just v1", vm.TodayVisits)
	}
	if len(vm.UpcomingVisits) != 1 || vm.UpcomingVisits[0].ID != "v2" {
		t.Errorf("UpcomingVisits = %+v, want just v2", vm.UpcomingVisits)
	}
}

func TestNilFollowupProducesNoTask(t *testing.T) {
	vm := Build(now, &Data{Leads: []Lead{lead("l1", "Asha", nil)}})
	if len(vm.Tasks) != 0 {
		t.Errorf("lead without follow-up date produced tasks: %+v", vm.Tasks)
	}
}

func TestTaskSynthesisScenario(t *testing.T) {
	data := &Data{
		Visits: []SiteVisit{
			visit("v1", now.Add(3*time.Hour), domain.VisitScheduled),
			visit("v2", now.AddDate(0, 0, 1), domain.VisitScheduled),
			visit("v3", now.AddDate(0, 0, -1), domain.VisitScheduled),
		},
		Leads: []Lead{
			lead("l1", "Asha", tp(now.AddDate(0, 0, -3))),
			lead("l2", "Vikram", tp(now.Add(time.Hour))),
		},
	}

	vm := Build(now, data)

	// One task for today's visit, one per due follow-up. The stale scheduled
	// visit from yesterday and tomorrow's visit produce nothing.
	if len(vm.Tasks) != 3 {
		t.Fatalf("got %d tasks, want 3: %+v", len(vm.Tasks), vm.Tasks)
	}

	byID := map[string]Task{}
	for _, task := range vm.Tasks {
		byID[task.ID] = task
	}

	visitTask, ok := byID["visit:v1"]
	if !ok {
		t.Fatal("missing task for today's visit")
	}
	if visitTask.Priority != domain.PriorityHigh || visitTask.Type != domain.TaskVisit {
		t.Errorf("visit task = %+v, want high-priority visit", visitTask)
	}

	overdueTask, ok := byID["followup:l1"]
	if !ok {
		t.Fatal("missing task for overdue follow-up")
	}
	if overdueTask.Priority != domain.PriorityHigh {
		t.Errorf("overdue follow-up priority = %s, want high", overdueTask.Priority)
	}

	todayTask, ok := byID["followup:l2"]
	if !ok {
		t.Fatal("missing task for today's follow-up")
	}
	if todayTask.Priority != domain.PriorityMedium {
		t.Errorf("today's follow-up priority = %s, want medium", todayTask.Priority)
	}

	if vm.PendingTasks() != 3 || vm.DoneTasks() != 0 {
		t.Errorf("pending/done = %d/%d, want 3/0", vm.PendingTasks(), vm.DoneTasks())
	}
}

func TestTaskSortIsStable(t *testing.T) {
	// Three overdue follow-ups (all high) interleaved with two due today
	// (both medium): highs must come first, and within each priority the
	// input order must survive the sort.
	data := &Data{
		Leads: []Lead{
			lead("a", "A", tp(now.AddDate(0, 0, -1))),
			lead("b", "B", tp(now.Add(time.Hour))),
			lead("c", "C", tp(now.AddDate(0, 0, -2))),
			lead("d", "D", tp(now.Add(2 * time.Hour))),
			lead("e", "E", tp(now.AddDate(0, 0, -5))),
		},
	}

	vm := Build(now, data)

	var got []string
	for _, task := range vm.Tasks {
		got = append(got, task.LeadID)
	}
	want := []string{"a", "c", "e", "b", "d"}
	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("task order = %v, want %v", got, want)
		}
	}
}

func TestToggleTask(t *testing.T) {
	data := &Data{
		Leads: []Lead{
			lead("l1", "Asha", tp(now.AddDate(0, 0, -1))),
			lead("l2", "Vikram", tp(now.AddDate(0, 0, -2))),
		},
	}
	vm := Build(now, data)
	if len(vm.Tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(vm.Tasks))
	}

	if !vm.ToggleTask("followup:l1") {
		t.Fatal("ToggleTask did not find followup:l1")
	}
	for _, task := range vm.Tasks {
		wantDone := task.ID == "followup:l1"
		if task.Done != wantDone {
			t.Errorf("task %s Done = %v, want %v", task.ID, task.Done, wantDone)
		}
	}
	if vm.PendingTasks() != 1 || vm.DoneTasks() != 1 {
		t.Errorf("pending/done = %d/%d, want 1/1", vm.PendingTasks(), vm.DoneTasks())
	}

	// Toggling again flips it back.
	vm.ToggleTask("followup:l1")
	if vm.DoneTasks() != 0 {
		t.Errorf("DoneTasks after double toggle = %d, want 0", vm.DoneTasks())
	}

	if vm.ToggleTask("followup:missing") {
		t.Error("ToggleTask found a task that does not exist")
	}
}

func TestCallRollup(t *testing.T) {
	data := &Data{
		Calls: []CallLog{
			{ID: "c1", Outcome: domain.CallConnected},
			{ID: "c2", Outcome: domain.CallConnectedCallback},
			{ID: "c3", Outcome: domain.CallNoAnswer},
			{ID: "c4", Outcome: domain.CallBusy},
		},
	}
	vm := Build(now, data)

	if vm.CallsConnected != 2 || vm.CallsNotConnected != 2 {
		t.Errorf("rollup = %d/%d, want 2/2", vm.CallsConnected, vm.CallsNotConnected)
	}
	if vm.ConnectRate() != 50 {
		t.Errorf("ConnectRate = %d, want 50", vm.ConnectRate())
	}
}

func TestConnectRateZeroTotal(t *testing.T) {
	if got := ConnectRate(0, 0); got != 0 {
		t.Errorf("ConnectRate(0, 0) = %d, want 0", got)
	}
	vm := Build(now, &Data{})
	if vm.ConnectRate() != 0 {
		t.Errorf("ConnectRate with no calls = %d, want 0", vm.ConnectRate())
	}
}

func TestTargetPercent(t *testing.T) {
	cases := []struct {
		name  string
		stats AgentStats
		want  int
	}{
		{"explicit target partial", AgentStats{MonthlyTarget: 10000000, MonthlyAchieved: 2500000}, 25},
		{"explicit target capped", AgentStats{MonthlyTarget: 10000000, MonthlyAchieved: 30000000}, 100},
		{"explicit target rounds", AgentStats{MonthlyTarget: 3, MonthlyAchieved: 1}, 33},
		{"fallback heuristic", AgentStats{ClosedDealsMonth: 2, FallbackClosedDeals: 5}, 40},
		{"fallback default denominator", AgentStats{ClosedDealsMonth: 1}, 20},
		{"fallback capped", AgentStats{ClosedDealsMonth: 9, FallbackClosedDeals: 5}, 100},
		{"nothing achieved", AgentStats{}, 0},
	}
	for _, c := range cases {
		vm := Build(now, &Data{Stats: c.stats})
		if vm.TargetPercent != c.want {
			t.Errorf("%s: TargetPercent = %d, want %d", c.name, vm.TargetPercent, c.want)
		}
	}
}

func TestFunnelAndTemperatureSeries(t *testing.T) {
	l1 := lead("l1", "A", nil)
	l1.Stage, l1.Temperature = domain.StageNew, domain.TempHot
	l2 := lead("l2", "B", nil)
	l2.Stage, l2.Temperature = domain.StageNew, domain.TempCold
	l3 := lead("l3", "C", nil)
	l3.Stage, l3.Temperature = domain.StageNegotiation, domain.TempHot

	vm := Build(now, &Data{Leads: []Lead{l1, l2, l3}})

	if len(vm.Funnel) != len(domain.Stages) {
		t.Fatalf("funnel has %d slices, want %d", len(vm.Funnel), len(domain.Stages))
	}
	funnel := map[domain.Stage]int{}
	for _, s := range vm.Funnel {
		funnel[s.Stage] = s.Count
	}
	if funnel[domain.StageNew] != 2 || funnel[domain.StageNegotiation] != 1 || funnel[domain.StageClosed] != 0 {
		t.Errorf("funnel counts wrong: %v", funnel)
	}

	temps := map[domain.Temperature]int{}
	for _, s := range vm.TemperatureMix {
		temps[s.Temperature] = s.Count
	}
	if temps[domain.TempHot] != 2 || temps[domain.TempCold] != 1 || temps[domain.TempWarm] != 0 {
		t.Errorf("temperature counts wrong: %v", temps)
	}
}
