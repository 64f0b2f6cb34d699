package jobs

import (
	"context"
	"time"
)

type Heartbeat struct {
	API Executor // optional liveness cross-check
	Log Sink
	Now func() time.Time
}

// Run writes the alive line first; the hello check afterwards can only add
// a line, never fail the run.
func (h *Heartbeat) Run(ctx context.Context) error {
	ts := clock(h.Now).Format(heartbeatLayout)
	if err := h.Log.Append(ts + " CRM is alive"); err != nil {
		return err
	}
	if h.API == nil {
		return nil
	}

	var out struct {
		Hello *string `json:"hello"`
	}
	if err := h.API.Execute(ctx, `{ hello }`, nil, &out); err != nil {
		_ = h.Log.Append(linef("%s GraphQL hello check failed: %v", ts, err))
		return nil
	}
	hello := "<null>"
	if out.Hello != nil {
		hello = *out.Hello
	}
	_ = h.Log.Append(linef("%s GraphQL hello response: %s", ts, hello))
	return nil
}
