package dashboard

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// Fetcher is the read-side contract the dashboard needs from the API. The
// CLI's APIClient implements it.
type Fetcher interface {
	SiteVisits(ctx context.Context) ([]SiteVisit, error)
	LeadsNeedingFollowup(ctx context.Context) ([]Lead, error)
	AgentStats(ctx context.Context, userID string) (*AgentStats, error)
	RecentCallLogs(ctx context.Context, limit int) ([]CallLog, error)
}

// DefaultCallLogLimit caps the recent-calls fetch for the outcome rollup.
const DefaultCallLogLimit = 50

// Data is a snapshot of everything the view model is built from.
type Data struct {
	Visits []SiteVisit
	Leads  []Lead
	Stats  AgentStats
	Calls  []CallLog
}

// Load issues the four reads concurrently and joins them all before
// returning. A failed or malformed read degrades to an empty collection
// rather than failing the whole dashboard: a partial backend outage shows
// less data, never an error page. Cancel the context to abandon in-flight
// fetches (e.g. when the caller goes away mid-refresh).
func Load(ctx context.Context, f Fetcher, userID string) *Data {
	data := &Data{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		visits, err := f.SiteVisits(ctx)
		if err != nil {
			log.Printf("dashboard: site visits fetch failed, showing none: %v", err)
			return nil
		}
		data.Visits = visits
		return nil
	})

	g.Go(func() error {
		leads, err := f.LeadsNeedingFollowup(ctx)
		if err != nil {
			log.Printf("dashboard: follow-up leads fetch failed, showing none: %v", err)
			return nil
		}
		data.Leads = leads
		return nil
	})

	g.Go(func() error {
		stats, err := f.AgentStats(ctx, userID)
		if err != nil {
			log.Printf("dashboard: stats fetch failed, showing zeros: %v", err)
			return nil
		}
		if stats != nil {
			data.Stats = *stats
		}
		return nil
	})

	g.Go(func() error {
		calls, err := f.RecentCallLogs(ctx, DefaultCallLogLimit)
		if err != nil {
			log.Printf("dashboard: call logs fetch failed, showing none: %v", err)
			return nil
		}
		data.Calls = calls
		return nil
	})

	// Every goroutine returns nil; Wait is only the join point.
	g.Wait()
	return data
}
