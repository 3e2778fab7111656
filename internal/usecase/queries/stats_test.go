//go:build unit

package queries_test

import (
	"testing"

	"multipark-dashboard/internal/usecase/queries"
	"multipark-dashboard/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func views(bs ...*queries.BookingView) []*queries.BookingView {
	return bs
}

func TestComputeStats(t *testing.T) {
	t.Run("empty collection yields zero rate", func(t *testing.T) {
		stats := queries.ComputeStats(nil)

		assert.Equal(t, 0, stats.TotalBookings)
		assert.Equal(t, 0, stats.PendingApproval)
		assert.Equal(t, 0, stats.ApprovalRate)
		assert.True(t, stats.TotalAmount.IsZero())
	})

	t.Run("pending counts only unapproved flagged bookings", func(t *testing.T) {
		vs := views(
			builder.NewBookingBuilder().BuildView(),                  // clean, not flagged
			builder.NewBookingBuilder().AsLateCheckout(3).BuildView(), // flagged, pending
			builder.NewBookingBuilder().AsLateCheckout(2).With(func(b *builder.BookingBuilder) {
				b.AsApproved(b.ExpectedCheckout.AddDate(0, 0, 5))
			}).BuildView(), // flagged but already approved
		)

		stats := queries.ComputeStats(vs)

		assert.Equal(t, 3, stats.TotalBookings)
		assert.Equal(t, 1, stats.PendingApproval)
	})

	t.Run("approval rate rounds to nearest integer", func(t *testing.T) {
		// 10 bookings, 3 pending: rate is 70.
		vs := make([]*queries.BookingView, 0, 10)
		for i := 0; i < 7; i++ {
			vs = append(vs, builder.NewBookingBuilder().BuildView())
		}
		for i := 0; i < 3; i++ {
			vs = append(vs, builder.NewBookingBuilder().AsLateCheckout(4).BuildView())
		}

		stats := queries.ComputeStats(vs)
		assert.Equal(t, 70, stats.ApprovalRate)

		// 4 bookings, 1 pending: exact 75.
		stats = queries.ComputeStats(vs[4:8])
		assert.Equal(t, 4, stats.TotalBookings)
		assert.Equal(t, 1, stats.PendingApproval)
		assert.Equal(t, 75, stats.ApprovalRate)
	})

	t.Run("all approved reaches one hundred", func(t *testing.T) {
		vs := views(
			builder.NewBookingBuilder().AsLateCheckout(3).With(func(b *builder.BookingBuilder) {
				b.AsApproved(b.ExpectedCheckout.AddDate(0, 0, 5))
			}).BuildView(),
			builder.NewBookingBuilder().BuildView(),
		)

		stats := queries.ComputeStats(vs)
		assert.Equal(t, 0, stats.PendingApproval)
		assert.Equal(t, 100, stats.ApprovalRate)
	})

	t.Run("financial totals accumulate per side", func(t *testing.T) {
		vs := views(
			builder.NewBookingBuilder().WithPriceDelivery(decimal.NewFromFloat(100)).BuildView(),
			builder.NewBookingBuilder().WithPriceDelivery(decimal.NewFromFloat(50)).BuildView(),
		)

		stats := queries.ComputeStats(vs)

		assert.Equal(t, "150.00", stats.TotalAmount.StringFixed(2))
		assert.Equal(t, "90.00", stats.PartnerAmount.StringFixed(2))
		assert.Equal(t, "60.00", stats.MultiparkAmount.StringFixed(2))
	})
}

func TestDistinctBrands(t *testing.T) {
	t.Run("first-seen order with duplicates and blanks removed", func(t *testing.T) {
		vs := views(
			builder.NewBookingBuilder().WithParkBrand("skypark").BuildView(),
			builder.NewBookingBuilder().WithParkBrand("airpark").BuildView(),
			builder.NewBookingBuilder().WithParkBrand("").BuildView(),
			builder.NewBookingBuilder().WithParkBrand("skypark").BuildView(),
			builder.NewBookingBuilder().WithParkBrand("redpark").BuildView(),
		)

		brands := queries.DistinctBrands(vs)
		assert.Equal(t, []string{"skypark", "airpark", "redpark"}, brands)
	})

	t.Run("empty collection yields empty slice", func(t *testing.T) {
		assert.Empty(t, queries.DistinctBrands(nil))
	})
}

func TestSummarizeFinancials(t *testing.T) {
	t.Run("groups by brand in first-seen order", func(t *testing.T) {
		vs := views(
			builder.NewBookingBuilder().WithParkBrand("skypark").WithPriceDelivery(decimal.NewFromFloat(60)).BuildView(),
			builder.NewBookingBuilder().WithParkBrand("airpark").WithPriceDelivery(decimal.NewFromFloat(40)).BuildView(),
			builder.NewBookingBuilder().WithParkBrand("skypark").WithPriceDelivery(decimal.NewFromFloat(40)).BuildView(),
		)

		rows := queries.SummarizeFinancials(vs, queries.GroupByBrand)

		expected := []queries.FinancialSummaryRow{
			{
				Key:             "skypark",
				Count:           2,
				TotalAmount:     decimal.RequireFromString("100"),
				PartnerAmount:   decimal.RequireFromString("60"),
				MultiparkAmount: decimal.RequireFromString("40"),
				PercentOfTotal:  decimal.RequireFromString("71.43"),
			},
			{
				Key:             "airpark",
				Count:           1,
				TotalAmount:     decimal.RequireFromString("40"),
				PartnerAmount:   decimal.RequireFromString("24"),
				MultiparkAmount: decimal.RequireFromString("16"),
				PercentOfTotal:  decimal.RequireFromString("28.57"),
			},
		}

		if diff := cmp.Diff(expected, rows, decimalComparer()); diff != "" {
			t.Errorf("summary rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("groups by payment method with unknown bucket", func(t *testing.T) {
		vs := views(
			builder.NewBookingBuilder().WithPaymentMethod("card").BuildView(),
			builder.NewBookingBuilder().WithPaymentMethod("").BuildView(),
			builder.NewBookingBuilder().WithPaymentMethod("cash").BuildView(),
		)

		rows := queries.SummarizeFinancials(vs, queries.GroupByPaymentMethod)

		keys := make([]string, len(rows))
		for i, r := range rows {
			keys[i] = r.Key
		}
		assert.Equal(t, []string{"card", "unknown", "cash"}, keys)
	})

	t.Run("percentages are zero when the grand total is zero", func(t *testing.T) {
		vs := views(
			builder.NewBookingBuilder().WithPriceDelivery(decimal.Zero).BuildView(),
		)

		rows := queries.SummarizeFinancials(vs, queries.GroupByBrand)
		assert.Len(t, rows, 1)
		assert.True(t, rows[0].PercentOfTotal.IsZero())
	})
}

func decimalComparer() cmp.Option {
	return cmp.Comparer(func(a, b decimal.Decimal) bool {
		return a.Equal(b)
	})
}
