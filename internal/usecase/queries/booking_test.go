//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"multipark-dashboard/internal/infra"
	"multipark-dashboard/internal/usecase/queries"
	"multipark-dashboard/tests/common/builder"
	queriesmock "multipark-dashboard/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingQueriesTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *queriesmock.MockBookingReadStore
	queries queries.BookingQueries
}

func (s *BookingQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = queriesmock.NewMockBookingReadStore(s.ctrl)
	s.queries = queries.NewBookingQueries(s.store)
}

func (s *BookingQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBookingQueriesSuite(t *testing.T) {
	suite.Run(t, new(BookingQueriesTestSuite))
}

func (s *BookingQueriesTestSuite) TestList() {
	s.Run("delegates filters to the read store", func() {
		brand := "skypark"
		filters := queries.Filters{Brand: &brand}
		expected := []*queries.BookingView{builder.NewBookingBuilder().BuildView()}

		s.store.EXPECT().FindFiltered(gomock.Any(), filters).Return(expected, nil).Times(1)

		views, err := s.queries.List(context.Background(), filters)
		s.NoError(err)
		s.Equal(expected, views)
	})
}

func (s *BookingQueriesTestSuite) TestGetByID() {
	id := uuid.New()

	s.Run("success", func() {
		expected := builder.NewBookingBuilder().BuildView()
		s.store.EXPECT().FindByID(gomock.Any(), id).Return(expected, nil).Times(1)

		view, err := s.queries.GetByID(context.Background(), id)
		s.NoError(err)
		s.Equal(expected, view)
	})

	s.Run("not found maps to the usecase sentinel", func() {
		s.store.EXPECT().FindByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("not found", errors.New("no rows"), infra.KindNotFound)).Times(1)

		_, err := s.queries.GetByID(context.Background(), id)
		s.ErrorIs(err, queries.ErrBookingNotFound)
	})

	s.Run("other failures pass through", func() {
		s.store.EXPECT().FindByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("boom", errors.New("connection reset"))).Times(1)

		_, err := s.queries.GetByID(context.Background(), id)
		s.Error(err)
		s.NotErrorIs(err, queries.ErrBookingNotFound)
	})
}

func (s *BookingQueriesTestSuite) TestDashboardStats() {
	s.Run("stats reflect the current collection on every call", func() {
		pending := builder.NewBookingBuilder().AsLateCheckout(3).BuildView()
		clean := builder.NewBookingBuilder().BuildView()

		s.store.EXPECT().FindAll(gomock.Any()).
			Return([]*queries.BookingView{pending, clean}, nil).Times(1)

		stats, err := s.queries.DashboardStats(context.Background())
		s.NoError(err)
		s.Equal(2, stats.TotalBookings)
		s.Equal(1, stats.PendingApproval)
		s.Equal(50, stats.ApprovalRate)

		// After the pending booking is approved the next read recomputes.
		approvedAt := pending.CheckoutTimestamp.AddDate(0, 0, 1)
		pending.StatusApproved = true
		pending.ApprovedAt = &approvedAt

		s.store.EXPECT().FindAll(gomock.Any()).
			Return([]*queries.BookingView{pending, clean}, nil).Times(1)

		stats, err = s.queries.DashboardStats(context.Background())
		s.NoError(err)
		s.Equal(0, stats.PendingApproval)
		s.Equal(100, stats.ApprovalRate)
	})
}

func (s *BookingQueriesTestSuite) TestFinancialSummary() {
	s.Run("rejects unknown group keys without touching the store", func() {
		_, err := s.queries.FinancialSummary(context.Background(), queries.SummaryGroup("color"))
		s.ErrorIs(err, queries.ErrInvalidFilter)
	})

	s.Run("groups over the full collection", func() {
		vs := []*queries.BookingView{
			builder.NewBookingBuilder().WithParkBrand("skypark").BuildView(),
			builder.NewBookingBuilder().WithParkBrand("airpark").BuildView(),
		}
		s.store.EXPECT().FindAll(gomock.Any()).Return(vs, nil).Times(1)

		rows, err := s.queries.FinancialSummary(context.Background(), queries.GroupByBrand)
		s.NoError(err)
		s.Len(rows, 2)
	})
}
