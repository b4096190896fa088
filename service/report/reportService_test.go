package reportsvc_test

import (
	"context"
	"errors"
	"testing"

	"librarycatalog/model"
	reportsvc "librarycatalog/service/report"
)

type repoMock struct {
	dashboardFn func(ctx context.Context) (*model.DashboardStats, error)
	popularFn   func(ctx context.Context) ([]model.PopularBook, error)
	ratedFn     func(ctx context.Context) ([]model.RatedBook, error)
	lowStockFn  func(ctx context.Context) ([]model.LowStockBook, error)
	trendsFn    func(ctx context.Context) ([]model.BorrowTrend, error)
	authorsFn   func(ctx context.Context) ([]model.AuthorStat, error)
	borrowersFn func(ctx context.Context) ([]model.BorrowerStat, error)
}

func (m *repoMock) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	return m.dashboardFn(ctx)
}
func (m *repoMock) PopularBooks(ctx context.Context) ([]model.PopularBook, error) {
	return m.popularFn(ctx)
}
func (m *repoMock) RatedBooks(ctx context.Context) ([]model.RatedBook, error) {
	return m.ratedFn(ctx)
}
func (m *repoMock) LowStock(ctx context.Context) ([]model.LowStockBook, error) {
	return m.lowStockFn(ctx)
}
func (m *repoMock) BorrowingTrends(ctx context.Context) ([]model.BorrowTrend, error) {
	return m.trendsFn(ctx)
}
func (m *repoMock) AuthorStats(ctx context.Context) ([]model.AuthorStat, error) {
	return m.authorsFn(ctx)
}
func (m *repoMock) BorrowerStats(ctx context.Context) ([]model.BorrowerStat, error) {
	return m.borrowersFn(ctx)
}

func TestPassThroughs(t *testing.T) {
	m := &repoMock{
		dashboardFn: func(ctx context.Context) (*model.DashboardStats, error) {
			return &model.DashboardStats{TotalBooks: 7}, nil
		},
		popularFn:   func(ctx context.Context) ([]model.PopularBook, error) { return []model.PopularBook{}, nil },
		ratedFn:     func(ctx context.Context) ([]model.RatedBook, error) { return []model.RatedBook{}, nil },
		lowStockFn:  func(ctx context.Context) ([]model.LowStockBook, error) { return []model.LowStockBook{}, nil },
		trendsFn:    func(ctx context.Context) ([]model.BorrowTrend, error) { return []model.BorrowTrend{}, nil },
		authorsFn:   func(ctx context.Context) ([]model.AuthorStat, error) { return []model.AuthorStat{}, nil },
		borrowersFn: func(ctx context.Context) ([]model.BorrowerStat, error) { return []model.BorrowerStat{}, nil },
	}
	s := reportsvc.New(m)
	ctx := context.Background()

	stats, err := s.Dashboard(ctx)
	if err != nil || stats.TotalBooks != 7 {
		t.Fatalf("Dashboard got %v %v; want TotalBooks=7 nil", stats, err)
	}
	if rows, err := s.PopularBooks(ctx); err != nil || rows == nil {
		t.Fatalf("PopularBooks got %v %v", rows, err)
	}
	if rows, err := s.RatedBooks(ctx); err != nil || rows == nil {
		t.Fatalf("RatedBooks got %v %v", rows, err)
	}
	if rows, err := s.LowStock(ctx); err != nil || rows == nil {
		t.Fatalf("LowStock got %v %v", rows, err)
	}
	if rows, err := s.BorrowingTrends(ctx); err != nil || rows == nil {
		t.Fatalf("BorrowingTrends got %v %v", rows, err)
	}
	if rows, err := s.AuthorStats(ctx); err != nil || rows == nil {
		t.Fatalf("AuthorStats got %v %v", rows, err)
	}
	if rows, err := s.BorrowerStats(ctx); err != nil || rows == nil {
		t.Fatalf("BorrowerStats got %v %v", rows, err)
	}
}

func TestErrorPropagation(t *testing.T) {
	boom := errors.New("aggregation failed")
	m := &repoMock{
		dashboardFn: func(ctx context.Context) (*model.DashboardStats, error) { return nil, boom },
	}
	s := reportsvc.New(m)
	if _, err := s.Dashboard(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("got err=%v; want propagated repo error", err)
	}
}
