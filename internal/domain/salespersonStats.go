package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SalespersonStatsDrift compara os contadores desnormalizados do vendedor com
// os agregados calculados a partir das vendas confirmadas
type SalespersonStatsDrift struct {
	SalespersonID   int64           `json:"salesperson_id"`
	StoredSales     int64           `json:"stored_sales"`
	StoredRevenue   decimal.Decimal `json:"stored_revenue"`
	ComputedSales   int64           `json:"computed_sales"`
	ComputedRevenue decimal.Decimal `json:"computed_revenue"`
}

func (d *SalespersonStatsDrift) HasDrift() bool {
	return d.StoredSales != d.ComputedSales || !d.StoredRevenue.Equal(d.ComputedRevenue)
}

func NewStatsReconciledAuditEntry(drift *SalespersonStatsDrift, at time.Time) *AuditEntry {
	return &AuditEntry{
		ActionType: AuditActionStatsReconciled,
		ActionDate: at,
		Details: fmt.Sprintf(
			"SalespersonID=%d, TotalSales=%d->%d, TotalRevenue=%s->%s",
			drift.SalespersonID,
			drift.StoredSales,
			drift.ComputedSales,
			drift.StoredRevenue.StringFixed(moneyPlaces),
			drift.ComputedRevenue.StringFixed(moneyPlaces),
		),
	}
}

type ReconciliationResult struct {
	Drifts   []*SalespersonStatsDrift `json:"drifts"`
	Repaired bool                     `json:"repaired"`
	RanAt    time.Time                `json:"ran_at"`
}
