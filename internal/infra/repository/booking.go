package repository

import (
	"context"
	"time"

	"multipark-dashboard/internal/domain/booking"
	"multipark-dashboard/internal/infra"
	"multipark-dashboard/internal/infra/db"
	"multipark-dashboard/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const insertBookingSQL = `
INSERT INTO bookings (
	id, license_plate, name, lastname,
	checkout_timestamp, checkout_formatted, expected_checkout,
	date_difference_days, needs_approval,
	park_brand, payment_method,
	status_approved, approved_at, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

const insertSplitSQL = `
INSERT INTO financial_splits (
	booking_id, total_amount, partner_amount, multipark_amount, created_at
) VALUES ($1, $2, $3, $4, $5)`

const approveByIDsSQL = `
UPDATE bookings
SET status_approved = TRUE, approved_at = $2
WHERE id = ANY($1) AND status_approved = FALSE
RETURNING id`

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

// CreateBatch persists bookings together with their financial splits.
// Callers provide the transaction boundary; a failed insert aborts the
// whole batch.
func (r *BookingRepository) CreateBatch(ctx context.Context, tx db.DBTX, bookings []*booking.Booking) error {
	for _, b := range bookings {
		if _, err := tx.Exec(ctx, insertBookingSQL,
			b.ID(),
			b.LicensePlate(),
			b.Name(),
			b.Lastname(),
			b.CheckoutTimestamp(),
			b.CheckoutFormatted(),
			b.ExpectedCheckout(),
			b.DateDifferenceDays(),
			b.NeedsApproval(),
			pgconv.TextFromString(b.ParkBrand()),
			pgconv.TextFromString(b.PaymentMethod()),
			b.StatusApproved(),
			b.ApprovedAt(),
			b.CreatedAt(),
		); err != nil {
			return infra.WrapRepoErr("failed to insert booking", err)
		}

		split := b.Split()
		if _, err := tx.Exec(ctx, insertSplitSQL,
			b.ID(),
			pgconv.DecimalToNumeric(split.TotalAmount().Amount()),
			pgconv.DecimalToNumeric(split.PartnerAmount().Amount()),
			pgconv.DecimalToNumeric(split.MultiparkAmount().Amount()),
			b.CreatedAt(),
		); err != nil {
			return infra.WrapRepoErr("failed to insert financial split", err)
		}
	}
	return nil
}

// ApproveByIDs marks the given bookings approved and returns the ids that
// actually transitioned. Already-approved rows are untouched, which keeps
// their original approved_at.
func (r *BookingRepository) ApproveByIDs(ctx context.Context, tx db.DBTX, ids []uuid.UUID, approvedAt time.Time) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, approveByIDsSQL, ids, approvedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to approve bookings", err)
	}
	defer rows.Close()

	var approved []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan approved booking id", err)
		}
		approved = append(approved, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read approved booking ids", err)
	}
	return approved, nil
}
