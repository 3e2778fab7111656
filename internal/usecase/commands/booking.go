package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"multipark-dashboard/internal/domain/booking"
	"multipark-dashboard/internal/infra"
	"multipark-dashboard/internal/pkg/clock"
	"multipark-dashboard/internal/pkg/errs"
	"multipark-dashboard/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound         = errs.New("booking not found")
	ErrNoBookingIDs            = errs.New("no booking ids provided")
	ErrEmptyBatch              = errs.New("batch contains no entries")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// NotFoundIDsError reports the exact set of ids an approval batch could
// not be applied to. The batch is transactional, so none of the ids were
// applied when this error is returned.
type NotFoundIDsError struct {
	IDs []uuid.UUID
}

func (e *NotFoundIDsError) Error() string {
	strs := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		strs[i] = id.String()
	}
	return fmt.Sprintf("bookings not found: %s", strings.Join(strs, ", "))
}

func (e *NotFoundIDsError) Unwrap() error {
	return ErrBookingNotFound
}

// EntryError identifies one rejected entry within an ingestion batch by
// its zero-based index, so the caller can retry narrowly.
type EntryError struct {
	Index int
	Err   error
}

type IngestResult struct {
	Created []*booking.Booking
	Errors  []EntryError
}

func (r *IngestResult) NeedsApprovalCount() int {
	n := 0
	for _, b := range r.Created {
		if b.NeedsApproval() {
			n++
		}
	}
	return n
}

type ApproveResult struct {
	ID              uuid.UUID
	AlreadyApproved bool
	ApprovedAt      time.Time
}

type ApproveAllResult struct {
	ApprovedIDs        []uuid.UUID
	AlreadyApprovedIDs []uuid.UUID
	ApprovedAt         time.Time
}

type BookingCommands interface {
	Ingest(ctx context.Context, entries []booking.Input) (*IngestResult, error)
	Approve(ctx context.Context, id uuid.UUID) (*ApproveResult, error)
	ApproveAll(ctx context.Context, ids []uuid.UUID) (*ApproveAllResult, error)
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	ratio booking.SplitRatio
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock, ratio booking.SplitRatio) BookingCommands {
	return &bookingCommandsImpl{uow: uow, clock: clk, ratio: ratio}
}

// Ingest reconciles a batch of raw entries. Invalid entries are rejected
// individually and reported alongside the created records; the valid
// remainder persists in a single transaction.
func (uc *bookingCommandsImpl) Ingest(ctx context.Context, entries []booking.Input) (*IngestResult, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}

	now := uc.clock.Now()
	result := &IngestResult{}
	for i, entry := range entries {
		b, err := booking.NewBooking(entry, uc.ratio, now)
		if err != nil {
			result.Errors = append(result.Errors, EntryError{Index: i, Err: err})
			continue
		}
		result.Created = append(result.Created, b)
	}

	if len(result.Created) == 0 {
		return result, nil
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().CreateBatch(ctx, tx.DB(), result.Created)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return result, nil
}

// Approve transitions one booking to approved. Approving an already
// approved booking is an idempotent no-op that reports the original
// approval time.
func (uc *bookingCommandsImpl) Approve(ctx context.Context, id uuid.UUID) (*ApproveResult, error) {
	now := uc.clock.Now()
	result := &ApproveResult{ID: id, ApprovedAt: now}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if snap.StatusApproved {
			result.AlreadyApproved = true
			if snap.ApprovedAt != nil {
				result.ApprovedAt = *snap.ApprovedAt
			}
			return nil
		}

		approved, err := tx.Bookings().ApproveByIDs(ctx, tx.DB(), []uuid.UUID{id}, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if len(approved) == 0 {
			// Raced with another approval between read and write; report
			// the winner's timestamp, not ours.
			result.AlreadyApproved = true
			current, err := tx.Reads().BookingByID(ctx, id)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if current.ApprovedAt != nil {
				result.ApprovedAt = *current.ApprovedAt
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApproveAll applies approval to a set of ids in one transaction: either
// every id is reflected in the next read, or the whole batch rolls back
// and the missing ids are reported. Already-approved ids inside the batch
// no-op, and ids that never needed approval may still be approved.
func (uc *bookingCommandsImpl) ApproveAll(ctx context.Context, ids []uuid.UUID) (*ApproveAllResult, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, ErrNoBookingIDs
	}

	now := uc.clock.Now()
	result := &ApproveAllResult{ApprovedAt: now}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Reads().ExistingBookingIDs(ctx, ids)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if missing := missingIDs(ids, existing); len(missing) > 0 {
			return &NotFoundIDsError{IDs: missing}
		}

		approved, err := tx.Bookings().ApproveByIDs(ctx, tx.DB(), ids, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result.ApprovedIDs = approved
		result.AlreadyApprovedIDs = missingIDs(ids, approved)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingIDs(wanted, got []uuid.UUID) []uuid.UUID {
	have := make(map[uuid.UUID]struct{}, len(got))
	for _, id := range got {
		have[id] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range wanted {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
