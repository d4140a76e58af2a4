package services

import (
	"loadlab/internal/models"

	"github.com/shopspring/decimal"
)

// lineTotal is price × quantity without float drift.
func lineTotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

func linesTotal(lines []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(lineTotal(line.Product.Price, line.Quantity))
	}
	return total
}
