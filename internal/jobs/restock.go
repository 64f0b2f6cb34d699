package jobs

import (
	"context"
	"errors"
	"time"

	"crm/internal/domain"
	"crm/internal/gqlclient"
)

const restockMutation = `
mutation {
  updateLowStockProducts {
    success
    message
    updatedProducts {
      name
      stock
    }
  }
}`

var ErrNoPayload = errors.New("no payload returned from mutation")

type restockPayload struct {
	Success         bool                 `json:"success"`
	Message         string               `json:"message"`
	UpdatedProducts []domain.StockUpdate `json:"updatedProducts"`
}

type LowStock struct {
	API Executor
	Log Sink
	Now func() time.Time
}

// Run calls updateLowStockProducts and logs one line per restocked product.
func (j *LowStock) Run(ctx context.Context) ([]domain.StockUpdate, error) {
	ts := bracket(clock(j.Now))

	var out struct {
		Payload *restockPayload `json:"updateLowStockProducts"`
	}
	err := j.API.Execute(ctx, restockMutation, nil, &out)
	var gqlErr *gqlclient.ResponseError
	switch {
	case errors.As(err, &gqlErr):
		_ = j.Log.Append(linef("%s Mutation errors: %v", ts, gqlErr.Messages))
		return nil, err
	case err != nil:
		_ = j.Log.Append(linef("%s Mutation request failed: %v", ts, err))
		return nil, err
	case out.Payload == nil:
		_ = j.Log.Append(linef("%s No payload returned from mutation", ts))
		return nil, ErrNoPayload
	case !out.Payload.Success:
		_ = j.Log.Append(linef("%s Restock failed: %s", ts, out.Payload.Message))
		return nil, errors.New(out.Payload.Message)
	}

	updated := out.Payload.UpdatedProducts
	if len(updated) == 0 {
		return updated, j.Log.Append(ts + " No products were updated")
	}
	lines := make([]string, 0, len(updated))
	for _, p := range updated {
		lines = append(lines, linef("%s Updated product: %s new_stock: %d", ts, p.Name, p.Stock))
	}
	return updated, j.Log.Append(lines...)
}
