// Package dashboard shapes the summary report into the cards shown above the listing.
package dashboard

import (
	"github.com/maxviazov/installment-console/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CollectionRate is the paid share of all debt in percent, rounded to one
// decimal ("25.0"). With no debt at all the rate is "0".
func CollectionRate(totalPaid, totalDebt decimal.Decimal) string {
	if !totalDebt.GreaterThan(decimal.Zero) {
		return "0"
	}
	return totalPaid.Div(totalDebt).Mul(hundred).StringFixed(1)
}

// Cards holds the display strings of the summary section.
type Cards struct {
	TotalCustomers string `json:"total_customers"`
	TotalDebt      string `json:"total_debt"`
	TotalPaid      string `json:"total_paid"`
	TotalRemaining string `json:"total_remaining"`
	PaidOff        string `json:"paid_off_customers"`
	Active         string `json:"active_customers"`
	CollectionRate string `json:"collection_rate"`
}

// Build formats a summary for display.
func Build(s model.Summary, f *Formatter) Cards {
	return Cards{
		TotalCustomers: f.Int(s.TotalCustomers),
		TotalDebt:      f.Number(s.TotalDebt),
		TotalPaid:      f.Number(s.TotalPaid),
		TotalRemaining: f.Number(s.TotalRemaining),
		PaidOff:        f.Int(s.PaidOffCustomers),
		Active:         f.Int(s.ActiveCustomers),
		CollectionRate: CollectionRate(s.TotalPaid, s.TotalDebt) + "%",
	}
}
