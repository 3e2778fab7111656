package queries

import (
	"context"

	"multipark-dashboard/internal/infra"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindAll(ctx context.Context) ([]*BookingView, error)
	FindFiltered(ctx context.Context, filters Filters) ([]*BookingView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
}

type BookingQueries interface {
	List(ctx context.Context, filters Filters) ([]*BookingView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	Brands(ctx context.Context) ([]string, error)
	FinancialSummary(ctx context.Context, group SummaryGroup) ([]FinancialSummaryRow, error)
}

type bookingQueriesImpl struct {
	repo BookingReadStore
}

func NewBookingQueries(repo BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) List(ctx context.Context, filters Filters) ([]*BookingView, error) {
	return q.repo.FindFiltered(ctx, filters)
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

// Statistics are recomputed from the full collection on every call;
// nothing is cached, so an approval is reflected by the next read.
func (q *bookingQueriesImpl) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	views, err := q.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(views)
	return &stats, nil
}

func (q *bookingQueriesImpl) Brands(ctx context.Context) ([]string, error) {
	views, err := q.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return DistinctBrands(views), nil
}

func (q *bookingQueriesImpl) FinancialSummary(ctx context.Context, group SummaryGroup) ([]FinancialSummaryRow, error) {
	if !group.IsValid() {
		return nil, ErrInvalidFilter
	}
	views, err := q.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return SummarizeFinancials(views, group), nil
}
