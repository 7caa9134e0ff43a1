package dashboard

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/estatedesk/estatedesk/internal/domain"
)

// ViewModel is the derived state behind the agent dashboard. It is rebuilt
// from a fresh Data snapshot on every load; Task.Done is the only mutable
// piece and survives only as long as this instance does.
type ViewModel struct {
	Stats AgentStats

	TodayVisits    []SiteVisit
	UpcomingVisits []SiteVisit

	OverdueFollowUps []Lead
	TodayFollowUps   []Lead

	Tasks []Task

	CallsConnected    int
	CallsNotConnected int

	Funnel         []FunnelSlice
	TemperatureMix []TemperatureSlice

	TargetPercent int
}

// FunnelSlice is one stage's lead count, in funnel order.
type FunnelSlice struct {
	Stage domain.Stage `json:"stage"`
	Count int          `json:"count"`
}

// TemperatureSlice is one temperature's lead count.
type TemperatureSlice struct {
	Temperature domain.Temperature `json:"temperature"`
	Count       int                `json:"count"`
}

// Build derives the full view model from a data snapshot at the given
// wall-clock instant. Records with missing dates are excluded from the
// date-dependent partitions instead of failing the build.
func Build(now time.Time, data *Data) *ViewModel {
	vm := &ViewModel{Stats: data.Stats}

	endOfToday := startOfDay(now).AddDate(0, 0, 1)

	for _, v := range data.Visits {
		switch {
		case sameDay(v.ScheduledAt, now):
			vm.TodayVisits = append(vm.TodayVisits, v)
		case !v.ScheduledAt.Before(endOfToday):
			vm.UpcomingVisits = append(vm.UpcomingVisits, v)
		}
	}

	for _, lead := range data.Leads {
		due := lead.NextFollowupAt
		if due == nil {
			continue
		}
		switch {
		case sameDay(*due, now):
			vm.TodayFollowUps = append(vm.TodayFollowUps, lead)
		case due.Before(startOfDay(now)):
			vm.OverdueFollowUps = append(vm.OverdueFollowUps, lead)
		}
	}

	vm.Tasks = synthesizeTasks(now, vm.TodayVisits, data.Leads)

	for _, c := range data.Calls {
		if c.Outcome.Connected() {
			vm.CallsConnected++
		} else {
			vm.CallsNotConnected++
		}
	}

	vm.Funnel = funnelSeries(data.Leads)
	vm.TemperatureMix = temperatureSeries(data.Leads)
	vm.TargetPercent = targetPercent(data.Stats)

	return vm
}

// synthesizeTasks builds the unified to-do list: one task per visit happening
// today, one per lead whose follow-up is due today or overdue. Leads without
// a follow-up date produce no task. The result is sorted by priority rank
// with a stable sort so same-priority tasks keep their input order across
// rebuilds.
func synthesizeTasks(now time.Time, todayVisits []SiteVisit, leads []Lead) []Task {
	var tasks []Task

	for _, v := range todayVisits {
		tasks = append(tasks, Task{
			ID:       "visit:" + v.ID,
			Title:    fmt.Sprintf("Site visit at %s", v.ScheduledAt.Format("3:04 PM")),
			Type:     domain.TaskVisit,
			LeadID:   v.LeadID,
			DueAt:    v.ScheduledAt,
			Priority: domain.PriorityHigh,
		})
	}

	startToday := startOfDay(now)
	for _, lead := range leads {
		due := lead.NextFollowupAt
		if due == nil {
			continue
		}
		var priority domain.TaskPriority
		switch {
		case sameDay(*due, now):
			priority = domain.PriorityMedium
		case due.Before(startToday):
			priority = domain.PriorityHigh
		default:
			// Due in the future; not a task yet.
			continue
		}
		tasks = append(tasks, Task{
			ID:       "followup:" + lead.ID,
			Title:    fmt.Sprintf("Follow up with %s", lead.Name),
			Type:     domain.TaskFollowup,
			LeadID:   lead.ID,
			DueAt:    *due,
			Priority: priority,
		})
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
	})
	return tasks
}

// ToggleTask flips the Done flag on exactly one task and reports whether the
// task was found. The flag is session-scoped: it is not written back to the
// server and resets on the next rebuild.
func (vm *ViewModel) ToggleTask(id string) bool {
	for i := range vm.Tasks {
		if vm.Tasks[i].ID == id {
			vm.Tasks[i].Done = !vm.Tasks[i].Done
			return true
		}
	}
	return false
}

// PendingTasks counts tasks not yet marked done.
func (vm *ViewModel) PendingTasks() int {
	n := 0
	for _, t := range vm.Tasks {
		if !t.Done {
			n++
		}
	}
	return n
}

// DoneTasks counts tasks marked done this session.
func (vm *ViewModel) DoneTasks() int {
	return len(vm.Tasks) - vm.PendingTasks()
}

// ConnectRate returns the percentage of recent calls that connected, rounded
// to the nearest integer. Zero calls yields 0, not a division error.
func (vm *ViewModel) ConnectRate() int {
	return ConnectRate(vm.CallsConnected, vm.CallsConnected+vm.CallsNotConnected)
}

// ConnectRate computes round(100 * connected / total), with 0 for an empty
// total.
func ConnectRate(connected, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(connected) / float64(total)))
}

// targetPercent computes progress against the monthly target. With an
// explicit target it is achieved/target capped at 100. Without one it falls
// back to counting closed deals against the configured denominator.
func targetPercent(stats AgentStats) int {
	if stats.MonthlyTarget > 0 {
		pct := 100 * stats.MonthlyAchieved / stats.MonthlyTarget
		return int(math.Round(math.Min(100, pct)))
	}

	denom := stats.FallbackClosedDeals
	if denom <= 0 {
		denom = 5
	}
	pct := 100 * float64(stats.ClosedDealsMonth) / float64(denom)
	return int(math.Round(math.Min(100, pct)))
}

func funnelSeries(leads []Lead) []FunnelSlice {
	counts := map[domain.Stage]int{}
	for _, lead := range leads {
		counts[lead.Stage]++
	}
	series := make([]FunnelSlice, 0, len(domain.Stages))
	for _, s := range domain.Stages {
		series = append(series, FunnelSlice{Stage: s, Count: counts[s]})
	}
	return series
}

func temperatureSeries(leads []Lead) []TemperatureSlice {
	counts := map[domain.Temperature]int{}
	for _, lead := range leads {
		counts[lead.Temperature]++
	}
	series := make([]TemperatureSlice, 0, len(domain.Temperatures))
	for _, t := range domain.Temperatures {
		series = append(series, TemperatureSlice{Temperature: t, Count: counts[t]})
	}
	return series
}

// startOfDay returns midnight of t's calendar day in t's location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sameDay reports whether t falls on the same calendar day as ref, evaluated
// in ref's location.
func sameDay(t, ref time.Time) bool {
	t = t.In(ref.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
