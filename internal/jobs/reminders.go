package jobs

import (
	"context"
	"time"
)

// RemindersDone is printed once a reminders run has logged every order.
const RemindersDone = "Order reminders processed!"

const reminderWindow = 7 * 24 * time.Hour

const remindersQuery = `
query OrdersSince($since: String!) {
  orders(orderDateGte: $since) {
    id
    customer {
      email
    }
  }
}`

type reminderOrder struct {
	ID       string `json:"id"`
	Customer *struct {
		Email string `json:"email"`
	} `json:"customer"`
}

type Reminders struct {
	API Executor
	Log Sink
	Now func() time.Time
}

// Run logs one reminder line per order placed in the last seven days and
// returns how many orders were found.
func (j *Reminders) Run(ctx context.Context) (int, error) {
	now := clock(j.Now)
	since := now.Add(-reminderWindow).Format(time.RFC3339)

	var out struct {
		Orders []reminderOrder `json:"orders"`
	}
	if err := j.API.Execute(ctx, remindersQuery, map[string]any{"since": since}, &out); err != nil {
		_ = j.Log.Append(linef("%s Error querying GraphQL: %v", bracket(clock(j.Now)), err))
		return 0, err
	}

	if len(out.Orders) == 0 {
		return 0, j.Log.Append(bracket(now) + " No orders in the last 7 days.")
	}
	lines := make([]string, 0, len(out.Orders))
	for _, o := range out.Orders {
		email := "None"
		if o.Customer != nil && o.Customer.Email != "" {
			email = o.Customer.Email
		}
		lines = append(lines, linef("%s Order ID: %s Customer: %s", bracket(now), o.ID, email))
	}
	return len(out.Orders), j.Log.Append(lines...)
}
