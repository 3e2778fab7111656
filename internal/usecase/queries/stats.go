package queries

import (
	"math"

	"github.com/shopspring/decimal"
)

// ComputeStats aggregates the full unfiltered collection. A booking is
// pending when it needs approval and has not been approved; unapproved
// bookings that never needed approval do not count against the rate.
func ComputeStats(views []*BookingView) DashboardStats {
	stats := DashboardStats{
		TotalAmount:     decimal.Zero,
		PartnerAmount:   decimal.Zero,
		MultiparkAmount: decimal.Zero,
	}

	for _, v := range views {
		stats.TotalBookings++
		if v.NeedsApproval && !v.StatusApproved {
			stats.PendingApproval++
		}
		stats.TotalAmount = stats.TotalAmount.Add(v.Split.TotalAmount)
		stats.PartnerAmount = stats.PartnerAmount.Add(v.Split.PartnerAmount)
		stats.MultiparkAmount = stats.MultiparkAmount.Add(v.Split.MultiparkAmount)
	}

	stats.ApprovalRate = approvalRate(stats.TotalBookings, stats.PendingApproval)
	return stats
}

// approvalRate is the percentage of bookings not pending manual approval,
// rounded to the nearest integer with ties away from zero. Zero bookings
// yields 0.
func approvalRate(total, pending int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(total-pending) / float64(total) * 100))
}

// DistinctBrands projects park_brand over the collection in first-seen
// order, excluding blanks. First-seen order is stable because the
// collection is ordered by ingestion time.
func DistinctBrands(views []*BookingView) []string {
	seen := make(map[string]struct{})
	brands := make([]string, 0)
	for _, v := range views {
		if v.ParkBrand == "" {
			continue
		}
		if _, ok := seen[v.ParkBrand]; ok {
			continue
		}
		seen[v.ParkBrand] = struct{}{}
		brands = append(brands, v.ParkBrand)
	}
	return brands
}

const unknownGroupKey = "unknown"

// SummarizeFinancials breaks the collection's financial totals down per
// group key, in first-seen key order. Records without a value for the key
// fall under "unknown".
func SummarizeFinancials(views []*BookingView, group SummaryGroup) []FinancialSummaryRow {
	index := make(map[string]int)
	rows := make([]FinancialSummaryRow, 0)
	grandTotal := decimal.Zero

	for _, v := range views {
		key := v.ParkBrand
		if group == GroupByPaymentMethod {
			key = v.PaymentMethod
		}
		if key == "" {
			key = unknownGroupKey
		}

		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, FinancialSummaryRow{
				Key:             key,
				TotalAmount:     decimal.Zero,
				PartnerAmount:   decimal.Zero,
				MultiparkAmount: decimal.Zero,
			})
		}

		rows[i].Count++
		rows[i].TotalAmount = rows[i].TotalAmount.Add(v.Split.TotalAmount)
		rows[i].PartnerAmount = rows[i].PartnerAmount.Add(v.Split.PartnerAmount)
		rows[i].MultiparkAmount = rows[i].MultiparkAmount.Add(v.Split.MultiparkAmount)
		grandTotal = grandTotal.Add(v.Split.TotalAmount)
	}

	hundred := decimal.NewFromInt(100)
	for i := range rows {
		if grandTotal.IsZero() {
			rows[i].PercentOfTotal = decimal.Zero
			continue
		}
		rows[i].PercentOfTotal = rows[i].TotalAmount.Mul(hundred).DivRound(grandTotal, 2)
	}
	return rows
}
