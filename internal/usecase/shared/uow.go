package shared

import (
	"context"
	"time"

	"multipark-dashboard/internal/domain/booking"
	"multipark-dashboard/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	ExistingBookingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

// Minimal snapshot for command read operations
type BookingSnapshot struct {
	ID             uuid.UUID
	NeedsApproval  bool
	StatusApproved bool
	ApprovedAt     *time.Time
}

type BookingRepository interface {
	CreateBatch(ctx context.Context, tx db.DBTX, bookings []*booking.Booking) error
	ApproveByIDs(ctx context.Context, tx db.DBTX, ids []uuid.UUID, approvedAt time.Time) ([]uuid.UUID, error)
}
