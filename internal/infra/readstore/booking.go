package readstore

import (
	"context"
	"fmt"
	"time"

	"multipark-dashboard/internal/infra"
	"multipark-dashboard/internal/infra/db"
	"multipark-dashboard/internal/pkg/pgconv"
	"multipark-dashboard/internal/usecase/queries"
	"multipark-dashboard/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingViewColumns = `
	b.id, b.license_plate, b.name, b.lastname,
	b.checkout_timestamp, b.checkout_formatted, b.expected_checkout,
	b.date_difference_days, b.needs_approval,
	b.park_brand, b.payment_method,
	b.status_approved, b.approved_at, b.created_at,
	fs.total_amount, fs.partner_amount, fs.multipark_amount`

const bookingViewFrom = `
FROM bookings b
JOIN financial_splits fs ON fs.booking_id = b.id`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

// FindAll returns the whole collection in ingestion order, which gives
// brand projections and summaries a stable first-seen ordering.
func (r *BookingReadStore) FindAll(ctx context.Context) ([]*queries.BookingView, error) {
	sql := "SELECT" + bookingViewColumns + bookingViewFrom + "\nORDER BY b.created_at, b.id"
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()
	return scanBookingViews(rows)
}

func (r *BookingReadStore) FindFiltered(ctx context.Context, filters queries.Filters) ([]*queries.BookingView, error) {
	sql := "SELECT" + bookingViewColumns + bookingViewFrom
	var (
		conds []string
		args  []any
	)
	if filters.Brand != nil {
		args = append(args, *filters.Brand)
		conds = append(conds, fmt.Sprintf("b.park_brand = $%d", len(args)))
	}
	if filters.Approved != nil {
		args = append(args, *filters.Approved)
		conds = append(conds, fmt.Sprintf("b.status_approved = $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			sql += "\nWHERE " + cond
		} else {
			sql += " AND " + cond
		}
	}
	sql += "\nORDER BY b.created_at, b.id"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list filtered bookings", err)
	}
	defer rows.Close()
	return scanBookingViews(rows)
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	sql := "SELECT" + bookingViewColumns + bookingViewFrom + "\nWHERE b.id = $1"
	row := r.db.QueryRow(ctx, sql, id)

	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

// ExistingIDs returns the subset of ids that exist, preserving no
// particular order.
func (r *BookingReadStore) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, "SELECT id FROM bookings WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to check booking ids", err)
	}
	defer rows.Close()

	var existing []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking id", err)
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking ids", err)
	}
	return existing, nil
}

func (r *BookingReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row := r.db.QueryRow(ctx,
		"SELECT id, needs_approval, status_approved, approved_at FROM bookings WHERE id = $1", id)

	var snap shared.BookingSnapshot
	if err := row.Scan(&snap.ID, &snap.NeedsApproval, &snap.StatusApproved, &snap.ApprovedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking snapshot", err)
	}
	return &snap, nil
}

func scanBookingViews(rows pgx.Rows) ([]*queries.BookingView, error) {
	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return views, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		view          queries.BookingView
		parkBrand     pgtype.Text
		paymentMethod pgtype.Text
		approvedAt    *time.Time
		total         pgtype.Numeric
		partner       pgtype.Numeric
		multipark     pgtype.Numeric
	)
	if err := row.Scan(
		&view.ID, &view.LicensePlate, &view.Name, &view.Lastname,
		&view.CheckoutTimestamp, &view.CheckoutFormatted, &view.ExpectedCheckout,
		&view.DateDifferenceDays, &view.NeedsApproval,
		&parkBrand, &paymentMethod,
		&view.StatusApproved, &approvedAt, &view.CreatedAt,
		&total, &partner, &multipark,
	); err != nil {
		return nil, err
	}

	view.ParkBrand = pgconv.StringFromText(parkBrand)
	view.PaymentMethod = pgconv.StringFromText(paymentMethod)
	view.ApprovedAt = approvedAt

	var err error
	if view.Split.TotalAmount, err = pgconv.DecimalFromNumeric(total); err != nil {
		return nil, err
	}
	if view.Split.PartnerAmount, err = pgconv.DecimalFromNumeric(partner); err != nil {
		return nil, err
	}
	if view.Split.MultiparkAmount, err = pgconv.DecimalFromNumeric(multipark); err != nil {
		return nil, err
	}
	return &view, nil
}
