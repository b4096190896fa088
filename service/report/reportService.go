package reportsvc

import (
	"context"

	"librarycatalog/model"
)

type Repo interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
	PopularBooks(ctx context.Context) ([]model.PopularBook, error)
	RatedBooks(ctx context.Context) ([]model.RatedBook, error)
	LowStock(ctx context.Context) ([]model.LowStockBook, error)
	BorrowingTrends(ctx context.Context) ([]model.BorrowTrend, error)
	AuthorStats(ctx context.Context) ([]model.AuthorStat, error)
	BorrowerStats(ctx context.Context) ([]model.BorrowerStat, error)
}

type Service interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
	PopularBooks(ctx context.Context) ([]model.PopularBook, error)
	RatedBooks(ctx context.Context) ([]model.RatedBook, error)
	LowStock(ctx context.Context) ([]model.LowStockBook, error)
	BorrowingTrends(ctx context.Context) ([]model.BorrowTrend, error)
	AuthorStats(ctx context.Context) ([]model.AuthorStat, error)
	BorrowerStats(ctx context.Context) ([]model.BorrowerStat, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	return s.r.Dashboard(ctx)
}
func (s *service) PopularBooks(ctx context.Context) ([]model.PopularBook, error) {
	return s.r.PopularBooks(ctx)
}
func (s *service) RatedBooks(ctx context.Context) ([]model.RatedBook, error) {
	return s.r.RatedBooks(ctx)
}
func (s *service) LowStock(ctx context.Context) ([]model.LowStockBook, error) {
	return s.r.LowStock(ctx)
}
func (s *service) BorrowingTrends(ctx context.Context) ([]model.BorrowTrend, error) {
	return s.r.BorrowingTrends(ctx)
}
func (s *service) AuthorStats(ctx context.Context) ([]model.AuthorStat, error) {
	return s.r.AuthorStats(ctx)
}
func (s *service) BorrowerStats(ctx context.Context) ([]model.BorrowerStat, error) {
	return s.r.BorrowerStats(ctx)
}
