package request

import (
	"strings"

	"multipark-dashboard/internal/usecase/queries"

	"github.com/google/uuid"
)

type ListBookingsQuery struct {
	Brand  string `form:"brand"`
	Status string `form:"status" binding:"omitempty,oneof=pending approved"`
}

func (q ListBookingsQuery) ToFilters() queries.Filters {
	var filters queries.Filters
	// Brands are stored lowercased, so the filter normalizes the same way.
	if brand := strings.ToLower(strings.TrimSpace(q.Brand)); brand != "" {
		filters.Brand = &brand
	}
	switch q.Status {
	case "pending":
		approved := false
		filters.Approved = &approved
	case "approved":
		approved := true
		filters.Approved = &approved
	}
	return filters
}

type ApproveAllRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

type FinancialSummaryQuery struct {
	GroupBy string `form:"group_by" binding:"omitempty,oneof=brand payment_method"`
}

func (q FinancialSummaryQuery) ToGroup() queries.SummaryGroup {
	if q.GroupBy == "" {
		return queries.GroupByBrand
	}
	return queries.SummaryGroup(q.GroupBy)
}
