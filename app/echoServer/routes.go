package echoServer

import (
	"net/http"

	"librarycatalog/app/echoServer/controller/book"
	"librarycatalog/app/echoServer/controller/report"

	"github.com/labstack/echo/v4"
)

type C struct {
	Book   *book.Controller
	Report *report.Controller
}

func Register(e *echo.Echo, c C) {
	e.GET("/api/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, echo.Map{
			"status":  "OK",
			"message": "Server is running",
		})
	})

	b := e.Group("/api/books")

	// Catalog CRUD
	b.POST("", c.Book.Create)
	b.GET("", c.Book.List)
	b.GET("/:id", c.Book.Detail)
	b.PUT("/:id", c.Book.Update)
	b.DELETE("/:id", c.Book.Delete)

	// Lending lifecycle
	b.POST("/:id/borrow", c.Book.Borrow)
	b.POST("/:id/return", c.Book.Return)
	b.POST("/:id/rating", c.Book.AddRating)

	// Reports (static segment wins over :id in echo's router)
	s := b.Group("/stats")
	s.GET("/dashboard", c.Report.Dashboard)
	s.GET("/popular", c.Report.Popular)
	s.GET("/ratings", c.Report.Ratings)
	s.GET("/low-stock", c.Report.LowStock)
	s.GET("/trends", c.Report.Trends)
	s.GET("/authors", c.Report.Authors)
	s.GET("/borrowers", c.Report.Borrowers)
}
