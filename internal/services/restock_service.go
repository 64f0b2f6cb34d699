package services

import (
	"crm/internal/domain"
)

const restockedMessage = "Restocked low stock products"

// RestockResult never carries an error: failures are folded into Message.
type RestockResult struct {
	Updated []domain.StockUpdate
	Success bool
	Message string
}

// UpdateLowStock adds RestockAmount to every product below LowStockThreshold.
// Rows are written one by one so each new level is visible on its own.
func (s *ProductService) UpdateLowStock() RestockResult {
	low, err := s.Products.ListLowStock(domain.LowStockThreshold)
	if err != nil {
		return RestockResult{Updated: []domain.StockUpdate{}, Message: err.Error()}
	}

	updated := make([]domain.StockUpdate, 0, len(low))
	for _, p := range low {
		next := p.Stock + domain.RestockAmount
		if err := s.Products.SetStock(p.ID, next); err != nil {
			return RestockResult{Updated: []domain.StockUpdate{}, Message: err.Error()}
		}
		updated = append(updated, domain.StockUpdate{Name: p.Name, Stock: next})
	}
	return RestockResult{Updated: updated, Success: true, Message: restockedMessage}
}
