package report

import (
	"log/slog"
	"net/http"

	reportsvc "librarycatalog/service/report"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reportsvc.Service
	Log *slog.Logger
}

// GET /api/books/stats/dashboard
func (h *Controller) Dashboard(c echo.Context) error {
	stats, err := h.Svc.Dashboard(c.Request().Context())
	if err != nil {
		h.Log.Error("dashboard stats", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

// GET /api/books/stats/popular
func (h *Controller) Popular(c echo.Context) error {
	rows, err := h.Svc.PopularBooks(c.Request().Context())
	if err != nil {
		h.Log.Error("popular books", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/books/stats/ratings
func (h *Controller) Ratings(c echo.Context) error {
	rows, err := h.Svc.RatedBooks(c.Request().Context())
	if err != nil {
		h.Log.Error("ratings report", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/books/stats/low-stock
func (h *Controller) LowStock(c echo.Context) error {
	rows, err := h.Svc.LowStock(c.Request().Context())
	if err != nil {
		h.Log.Error("low stock report", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/books/stats/trends
func (h *Controller) Trends(c echo.Context) error {
	rows, err := h.Svc.BorrowingTrends(c.Request().Context())
	if err != nil {
		h.Log.Error("borrowing trends", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/books/stats/authors
func (h *Controller) Authors(c echo.Context) error {
	rows, err := h.Svc.AuthorStats(c.Request().Context())
	if err != nil {
		h.Log.Error("author stats", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/books/stats/borrowers
func (h *Controller) Borrowers(c echo.Context) error {
	rows, err := h.Svc.BorrowerStats(c.Request().Context())
	if err != nil {
		h.Log.Error("borrower stats", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}
