package book

import (
	"log/slog"
	"net/http"

	"librarycatalog/model"
	booksvc "librarycatalog/service/book"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func parseID(c echo.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	return id, err == nil
}

// POST /api/books
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	b := &model.Book{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		ISBN:            req.ISBN,
		PublishedYear:   req.PublishedYear,
		Description:     req.Description,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.AvailableCopies,
	}
	id, err := h.Svc.Create(c.Request().Context(), b)
	if err != nil {
		if booksvc.Code(err) == booksvc.ErrInvalidPayload {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book payload"})
		}
		h.Log.Error("book create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Book added successfully",
		"bookId":  id.Hex(),
	})
}

// GET /api/books
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("book list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	row, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		if booksvc.Code(err) == booksvc.ErrBookNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Book not found"})
		}
		h.Log.Error("book detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, row)
}

// PUT /api/books/:id
func (h *Controller) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req UpdateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	f := booksvc.UpdateFields{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		ISBN:            req.ISBN,
		PublishedYear:   req.PublishedYear,
		Description:     req.Description,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.AvailableCopies,
	}
	if err := h.Svc.Update(c.Request().Context(), id, f); err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Book not found"})
		case booksvc.ErrEmptyUpdate:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no fields to update"})
		case booksvc.ErrInvalidPayload:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book payload"})
		default:
			h.Log.Error("book update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book updated successfully"})
}

// DELETE /api/books/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if booksvc.Code(err) == booksvc.ErrBookNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Book not found"})
		}
		h.Log.Error("book delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book deleted successfully"})
}

// POST /api/books/:id/borrow
func (h *Controller) Borrow(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req BorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "borrowerName is required"})
	}

	if err := h.Svc.Borrow(c.Request().Context(), id, req.BorrowerName); err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Book not found"})
		case booksvc.ErrNoCopies:
			return c.JSON(http.StatusConflict, echo.Map{"error": "no copies available"})
		case booksvc.ErrInvalidPayload:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "borrowerName is required"})
		default:
			h.Log.Error("book borrow", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book borrowed successfully"})
}

// POST /api/books/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req ReturnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "borrowerName is required"})
	}

	if err := h.Svc.Return(c.Request().Context(), id, req.BorrowerName); err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Book not found"})
		case booksvc.ErrNoActiveBorrow:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "No active borrow record found"})
		case booksvc.ErrInvalidPayload:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "borrowerName is required"})
		default:
			h.Log.Error("book return", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book returned successfully"})
}

// POST /api/books/:id/rating
func (h *Controller) AddRating(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req RatingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	if err := h.Svc.AddRating(c.Request().Context(), id, req.Rating, req.Review); err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Book not found"})
		case booksvc.ErrInvalidPayload:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
		default:
			h.Log.Error("book rating", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Rating added successfully"})
}
