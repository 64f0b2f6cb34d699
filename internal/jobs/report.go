package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const reportQuery = `
query {
  customers {
    id
  }
  orders {
    id
    totalAmount
  }
}`

type Report struct {
	Customers int
	Orders    int
	Revenue   decimal.Decimal
}

type WeeklyReport struct {
	API Executor
	Log Sink
	Now func() time.Time
}

// amount reads a totalAmount value; anything non-numeric counts as zero.
func amount(raw json.RawMessage) decimal.Decimal {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return decimal.Zero
	}
	switch x := v.(type) {
	case string:
		if d, err := decimal.NewFromString(x); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(x)
	}
	return decimal.Zero
}

// Run counts customers and orders, sums revenue and logs a one-line summary.
// Failures are logged and returned so the scheduler sees the run fail.
func (j *WeeklyReport) Run(ctx context.Context) (Report, error) {
	ts := clock(j.Now).Format(stampLayout)

	var out struct {
		Customers []json.RawMessage            `json:"customers"`
		Orders    []map[string]json.RawMessage `json:"orders"`
	}
	if err := j.API.Execute(ctx, reportQuery, nil, &out); err != nil {
		_ = j.Log.Append(linef("%s - Report generation failed: %v", ts, err))
		return Report{}, err
	}

	rep := Report{Customers: len(out.Customers), Orders: len(out.Orders), Revenue: decimal.Zero}
	for _, o := range out.Orders {
		rep.Revenue = rep.Revenue.Add(amount(o["totalAmount"]))
	}

	line := linef("%s - Report: %d customers, %d orders, %s revenue", ts, rep.Customers, rep.Orders, rep.Revenue.StringFixed(2))
	if err := j.Log.Append(line); err != nil {
		return Report{}, err
	}
	return rep, nil
}
