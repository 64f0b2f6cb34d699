package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"crm/internal/config"
	applog "crm/internal/log"
)

// Fixed cadences (standard five-field cron, UTC).
const (
	HeartbeatSpec = "*/5 * * * *"
	RestockSpec   = "0 */12 * * *"
	ReportSpec    = "0 6 * * 1"
)

// Transport retry counts per job.
const (
	heartbeatRetries = 1
	reminderRetries  = 3
	reportRetries    = 1
	restockRetries   = 0
)

// Entry is one scheduled job. An empty Spec means on-demand only.
type Entry struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Build wires the four CRM jobs. newAPI returns an executor with the given
// transport retry count.
func Build(cfg config.Config, newAPI func(retries int) Executor, now func() time.Time) []Entry {
	heartbeat := &Heartbeat{API: newAPI(heartbeatRetries), Log: FileSink{Path: cfg.HeartbeatLog}, Now: now}
	restock := &LowStock{API: newAPI(restockRetries), Log: FileSink{Path: cfg.LowStockLog}, Now: now}
	reminders := &Reminders{API: newAPI(reminderRetries), Log: FileSink{Path: cfg.RemindersLog}, Now: now}
	report := &WeeklyReport{API: newAPI(reportRetries), Log: FileSink{Path: cfg.ReportLog}, Now: now}

	return []Entry{
		{Name: "heartbeat", Spec: HeartbeatSpec, Run: heartbeat.Run},
		{Name: "low_stock", Spec: RestockSpec, Run: func(ctx context.Context) error {
			_, err := restock.Run(ctx)
			return err
		}},
		{Name: "order_reminders", Spec: cfg.RemindersCron, Run: func(ctx context.Context) error {
			_, err := reminders.Run(ctx)
			return err
		}},
		{Name: "weekly_report", Spec: ReportSpec, Run: func(ctx context.Context) error {
			rep, err := report.Run(ctx)
			if err == nil {
				applog.Info(nil, "report.generated", map[string]any{
					"customers": rep.Customers, "orders": rep.Orders, "revenue": rep.Revenue.StringFixed(2),
				})
			}
			return err
		}},
	}
}

// Runner drives entries from a cron clock. A run still in progress makes
// the next tick of the same job a no-op.
type Runner struct {
	cron    *cron.Cron
	entries map[string]Entry
	timeout time.Duration
}

func NewRunner(entries []Entry, timeout time.Duration) (*Runner, error) {
	r := &Runner{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		entries: make(map[string]Entry, len(entries)),
		timeout: timeout,
	}
	for _, e := range entries {
		r.entries[e.Name] = e
		if e.Spec == "" {
			continue
		}
		job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
			_ = r.RunOnce(context.Background(), e.Name)
		}))
		if _, err := r.cron.AddJob(e.Spec, job); err != nil {
			return nil, fmt.Errorf("schedule %s %q: %w", e.Name, e.Spec, err)
		}
	}
	return r, nil
}

// RunOnce runs a job by name immediately and logs its outcome.
func (r *Runner) RunOnce(ctx context.Context, name string) error {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	start := time.Now()
	err := e.Run(ctx)
	applog.Job(e.Name, "job.run", time.Since(start), err, nil)
	return err
}

func (r *Runner) Start() { r.cron.Start() }

// Stop halts scheduling and waits for running jobs.
func (r *Runner) Stop() { <-r.cron.Stop().Done() }

// Scheduled lists job names with their cron spec.
func (r *Runner) Scheduled() map[string]string {
	out := make(map[string]string, len(r.entries))
	for name, e := range r.entries {
		if e.Spec != "" {
			out[name] = e.Spec
		}
	}
	return out
}
