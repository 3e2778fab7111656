//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"multipark-dashboard/internal/domain/booking"
	"multipark-dashboard/internal/infra"
	"multipark-dashboard/internal/pkg/clock"
	"multipark-dashboard/internal/usecase/commands"
	"multipark-dashboard/internal/usecase/shared"
	"multipark-dashboard/tests/common/builder"
	sharedmock "multipark-dashboard/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	uow      *sharedmock.MockUnitOfWork
	tx       *sharedmock.MockTx
	reads    *sharedmock.MockCommandReads
	repo     *sharedmock.MockBookingRepository
	clock    *clock.MockClock
	now      time.Time
	commands commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.reads = sharedmock.NewMockCommandReads(s.ctrl)
	s.repo = sharedmock.NewMockBookingRepository(s.ctrl)
	s.now = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	s.clock = clock.NewMockClock(s.now)
	s.commands = commands.NewBookingCommands(s.uow, s.clock, booking.DefaultSplitRatio())
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

// expectWithin wires the mock unit of work to run the transactional
// closure against the mock Tx.
func (s *BookingCommandsTestSuite) expectWithin() {
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).Times(1)
}

// ================================================================================
// TestIngest
// ================================================================================

func (s *BookingCommandsTestSuite) TestIngest() {
	s.Run("success: valid entries persist in one batch", func() {
		entries := []booking.Input{
			builder.NewBookingBuilder().BuildInput(),
			builder.NewBookingBuilder().AsLateCheckout(3).BuildInput(),
		}

		s.expectWithin()
		s.tx.EXPECT().Bookings().Return(s.repo).Times(1)
		s.tx.EXPECT().DB().Return(nil).Times(1)
		s.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, created []*booking.Booking) error {
				s.Len(created, 2)
				s.Equal(s.now, created[0].CreatedAt())
				return nil
			}).Times(1)

		result, err := s.commands.Ingest(context.Background(), entries)
		s.NoError(err)
		s.Len(result.Created, 2)
		s.Empty(result.Errors)
		s.Equal(1, result.NeedsApprovalCount())
	})

	s.Run("partial: invalid entries are reported by index", func() {
		entries := []booking.Input{
			builder.NewBookingBuilder().BuildInput(),
			builder.NewBookingBuilder().WithLicensePlate("").BuildInput(),
			builder.NewBookingBuilder().BuildInput(),
		}

		s.expectWithin()
		s.tx.EXPECT().Bookings().Return(s.repo).Times(1)
		s.tx.EXPECT().DB().Return(nil).Times(1)
		s.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

		result, err := s.commands.Ingest(context.Background(), entries)
		s.NoError(err)
		s.Len(result.Created, 2)
		s.Require().Len(result.Errors, 1)
		s.Equal(1, result.Errors[0].Index)
		s.ErrorIs(result.Errors[0].Err, booking.ErrEmptyLicensePlate)
	})

	s.Run("all invalid: nothing persists and no transaction opens", func() {
		entries := []booking.Input{
			builder.NewBookingBuilder().WithLicensePlate("").BuildInput(),
		}

		result, err := s.commands.Ingest(context.Background(), entries)
		s.NoError(err)
		s.Empty(result.Created)
		s.Len(result.Errors, 1)
	})

	s.Run("error: empty batch", func() {
		_, err := s.commands.Ingest(context.Background(), nil)
		s.ErrorIs(err, commands.ErrEmptyBatch)
	})

	s.Run("error: persistence failure marks database error", func() {
		entries := []booking.Input{builder.NewBookingBuilder().BuildInput()}

		s.expectWithin()
		s.tx.EXPECT().Bookings().Return(s.repo).Times(1)
		s.tx.EXPECT().DB().Return(nil).Times(1)
		s.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("connection reset")).Times(1)

		_, err := s.commands.Ingest(context.Background(), entries)
		s.ErrorIs(err, commands.ErrDatabaseOperationFailed)
	})
}

// ================================================================================
// TestApprove
// ================================================================================

func (s *BookingCommandsTestSuite) TestApprove() {
	id := uuid.New()

	s.Run("success: pending booking is approved at the current time", func() {
		snap := &shared.BookingSnapshot{ID: id, NeedsApproval: true}

		s.expectWithin()
		s.tx.EXPECT().Reads().Return(s.reads).Times(1)
		s.reads.EXPECT().BookingByID(gomock.Any(), id).Return(snap, nil).Times(1)
		s.tx.EXPECT().Bookings().Return(s.repo).Times(1)
		s.tx.EXPECT().DB().Return(nil).Times(1)
		s.repo.EXPECT().ApproveByIDs(gomock.Any(), gomock.Any(), []uuid.UUID{id}, s.now).
			Return([]uuid.UUID{id}, nil).Times(1)

		result, err := s.commands.Approve(context.Background(), id)
		s.NoError(err)
		s.Equal(id, result.ID)
		s.False(result.AlreadyApproved)
		s.Equal(s.now, result.ApprovedAt)
	})

	s.Run("idempotent: already approved keeps the original timestamp", func() {
		original := s.now.Add(-72 * time.Hour)
		snap := &shared.BookingSnapshot{ID: id, StatusApproved: true, ApprovedAt: &original}

		s.expectWithin()
		s.tx.EXPECT().Reads().Return(s.reads).Times(1)
		s.reads.EXPECT().BookingByID(gomock.Any(), id).Return(snap, nil).Times(1)

		result, err := s.commands.Approve(context.Background(), id)
		s.NoError(err)
		s.True(result.AlreadyApproved)
		s.Equal(original, result.ApprovedAt)
	})

	s.Run("race: concurrent approval reports the winner's timestamp", func() {
		pending := &shared.BookingSnapshot{ID: id, NeedsApproval: true}
		firstApproval := s.now.Add(-5 * time.Minute)
		approvedSnap := &shared.BookingSnapshot{ID: id, StatusApproved: true, ApprovedAt: &firstApproval}

		s.expectWithin()
		s.tx.EXPECT().Reads().Return(s.reads).Times(2)
		gomock.InOrder(
			s.reads.EXPECT().BookingByID(gomock.Any(), id).Return(pending, nil),
			s.reads.EXPECT().BookingByID(gomock.Any(), id).Return(approvedSnap, nil),
		)
		s.tx.EXPECT().Bookings().Return(s.repo).Times(1)
		s.tx.EXPECT().DB().Return(nil).Times(1)
		s.repo.EXPECT().ApproveByIDs(gomock.Any(), gomock.Any(), []uuid.UUID{id}, s.now).
			Return([]uuid.UUID{}, nil).Times(1)

		result, err := s.commands.Approve(context.Background(), id)
		s.NoError(err)
		s.True(result.AlreadyApproved)
		s.Equal(firstApproval, result.ApprovedAt)
	})

	s.Run("error: unknown booking", func() {
		s.expectWithin()
		s.tx.EXPECT().Reads().Return(s.reads).Times(1)
		s.reads.EXPECT().BookingByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("not found", errors.New("no rows"), infra.KindNotFound)).Times(1)

		_, err := s.commands.Approve(context.Background(), id)
		s.ErrorIs(err, commands.ErrBookingNotFound)
	})
}

// ================================================================================
// TestApproveAll
// ================================================================================

func (s *BookingCommandsTestSuite) TestApproveAll() {
	id1 := uuid.New()
	id2 := uuid.New()
	id3 := uuid.New()

	s.Run("success: every id transitions", func() {
		ids := []uuid.UUID{id1, id2}

		s.expectWithin()
		s.tx.EXPECT().Reads().Return(s.reads).Times(1)
		s.reads.EXPECT().ExistingBookingIDs(gomock.Any(), ids).Return(ids, nil).Times(1)
		s.tx.EXPECT().Bookings().Return(s.repo).Times(1)
		s.tx.EXPECT().DB().Return(nil).Times(1)
		s.repo.EXPECT().ApproveByIDs(gomock.Any(), gomock.Any(), ids, s.now).
			Return(ids, nil).Times(1)

		result, err := s.commands.ApproveAll(context.Background(), ids)
		s.NoError(err)
		s.Equal(ids, result.ApprovedIDs)
		s.Empty(result.AlreadyApprovedIDs)
		s.Equal(s.now, result.ApprovedAt)
	})

	s.Run("mixed: already approved ids no-op inside the batch", func() {
		ids := []uuid.UUID{id1, id2}

		s.expectWithin()
		s.tx.EXPECT().Reads().Return(s.reads).Times(1)
		s.reads.EXPECT().ExistingBookingIDs(gomock.Any(), ids).Return(ids, nil).Times(1)
		s.tx.EXPECT().Bookings().Return(s.repo).Times(1)
		s.tx.EXPECT().DB().Return(nil).Times(1)
		s.repo.EXPECT().ApproveByIDs(gomock.Any(), gomock.Any(), ids, s.now).
			Return([]uuid.UUID{id1}, nil).Times(1)

		result, err := s.commands.ApproveAll(context.Background(), ids)
		s.NoError(err)
		s.Equal([]uuid.UUID{id1}, result.ApprovedIDs)
		s.Equal([]uuid.UUID{id2}, result.AlreadyApprovedIDs)
	})

	s.Run("error: missing ids abort the whole batch", func() {
		ids := []uuid.UUID{id1, id2, id3}

		s.expectWithin()
		s.tx.EXPECT().Reads().Return(s.reads).Times(1)
		s.reads.EXPECT().ExistingBookingIDs(gomock.Any(), ids).
			Return([]uuid.UUID{id1}, nil).Times(1)

		_, err := s.commands.ApproveAll(context.Background(), ids)
		s.Require().Error(err)
		s.ErrorIs(err, commands.ErrBookingNotFound)

		var notFound *commands.NotFoundIDsError
		s.Require().ErrorAs(err, &notFound)
		s.ElementsMatch([]uuid.UUID{id2, id3}, notFound.IDs)
	})

	s.Run("duplicates and nil ids are dropped before the transaction", func() {
		ids := []uuid.UUID{id1, id1, uuid.Nil, id2}
		deduped := []uuid.UUID{id1, id2}

		s.expectWithin()
		s.tx.EXPECT().Reads().Return(s.reads).Times(1)
		s.reads.EXPECT().ExistingBookingIDs(gomock.Any(), deduped).Return(deduped, nil).Times(1)
		s.tx.EXPECT().Bookings().Return(s.repo).Times(1)
		s.tx.EXPECT().DB().Return(nil).Times(1)
		s.repo.EXPECT().ApproveByIDs(gomock.Any(), gomock.Any(), deduped, s.now).
			Return(deduped, nil).Times(1)

		_, err := s.commands.ApproveAll(context.Background(), ids)
		s.NoError(err)
	})

	s.Run("error: no usable ids", func() {
		_, err := s.commands.ApproveAll(context.Background(), []uuid.UUID{uuid.Nil})
		s.ErrorIs(err, commands.ErrNoBookingIDs)
	})
}
