// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"librarycatalog/model"
	booksvc "librarycatalog/service/book"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type repoMock struct {
	createFn    func(ctx context.Context, b *model.Book) (primitive.ObjectID, error)
	listFn      func(ctx context.Context) ([]model.Book, error)
	getByIDFn   func(ctx context.Context, id primitive.ObjectID) (*model.Book, error)
	updateFn    func(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	deleteFn    func(ctx context.Context, id primitive.ObjectID) (int64, error)
	borrowFn    func(ctx context.Context, id primitive.ObjectID, rec model.BorrowRecord) (int64, error)
	returnFn    func(ctx context.Context, id primitive.ObjectID, borrowerName string, returnedAt time.Time) (int64, error)
	addRatingFn func(ctx context.Context, id primitive.ObjectID, rec model.RatingRecord) (int64, error)
	existsFn    func(ctx context.Context, id primitive.ObjectID) (bool, error)
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) (primitive.ObjectID, error) {
	return m.createFn(ctx, b)
}
func (m *repoMock) List(ctx context.Context) ([]model.Book, error) { return m.listFn(ctx) }
func (m *repoMock) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Book, error) {
	return m.getByIDFn(ctx, id)
}
func (m *repoMock) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	return m.updateFn(ctx, id, fields)
}
func (m *repoMock) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return m.deleteFn(ctx, id)
}
func (m *repoMock) Borrow(ctx context.Context, id primitive.ObjectID, rec model.BorrowRecord) (int64, error) {
	return m.borrowFn(ctx, id, rec)
}
func (m *repoMock) Return(ctx context.Context, id primitive.ObjectID, borrowerName string, returnedAt time.Time) (int64, error) {
	return m.returnFn(ctx, id, borrowerName, returnedAt)
}
func (m *repoMock) AddRating(ctx context.Context, id primitive.ObjectID, rec model.RatingRecord) (int64, error) {
	return m.addRatingFn(ctx, id, rec)
}
func (m *repoMock) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return m.existsFn(ctx, id)
}

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	cases := []model.Book{
		{Author: "A", Genre: "G"},
		{Title: "T", Genre: "G"},
		{Title: "T", Author: "A"},
		{Title: "T", Author: "A", Genre: "G", TotalCopies: -1},
		{Title: "T", Author: "A", Genre: "G", TotalCopies: 2, AvailableCopies: -1},
		{Title: "T", Author: "A", Genre: "G", TotalCopies: 1, AvailableCopies: 2},
	}
	for i, b := range cases {
		if _, err := s.Create(context.Background(), &b); booksvc.Code(err) != booksvc.ErrInvalidPayload {
			t.Fatalf("case %d: got err=%v; want INVALID_PAYLOAD", i, err)
		}
	}
}

func TestCreate_Success(t *testing.T) {
	want := primitive.NewObjectID()
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) (primitive.ObjectID, error) {
			if b.Title != "Dune" || b.Author != "Frank Herbert" {
				return primitive.NilObjectID, errors.New("bad args")
			}
			return want, nil
		},
	}
	s := booksvc.New(m)
	id, err := s.Create(context.Background(), &model.Book{
		Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi",
		TotalCopies: 3, AvailableCopies: 3,
	})
	if err != nil || id != want {
		t.Fatalf("got id=%v err=%v; want %v nil", id, err, want)
	}
}

func TestGet_NotFound(t *testing.T) {
	m := &repoMock{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Book, error) {
			return nil, nil
		},
	}
	s := booksvc.New(m)
	if _, err := s.Get(context.Background(), primitive.NewObjectID()); booksvc.Code(err) != booksvc.ErrBookNotFound {
		t.Fatalf("got err=%v; want BOOK_NOT_FOUND", err)
	}
}

func TestUpdate_AllowList(t *testing.T) {
	var captured bson.M
	m := &repoMock{
		updateFn: func(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
			captured = fields
			return 1, nil
		},
	}
	s := booksvc.New(m)

	title := "New Title"
	total := 5
	err := s.Update(context.Background(), primitive.NewObjectID(), booksvc.UpdateFields{
		Title:       &title,
		TotalCopies: &total,
	})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if len(captured) != 2 || captured["title"] != "New Title" || captured["totalCopies"] != 5 {
		t.Fatalf("unexpected $set doc: %v", captured)
	}
	if _, ok := captured["_id"]; ok {
		t.Fatal("identity must never appear in the update document")
	}
}

func TestUpdate_Empty(t *testing.T) {
	s := booksvc.New(&repoMock{})
	err := s.Update(context.Background(), primitive.NewObjectID(), booksvc.UpdateFields{})
	if booksvc.Code(err) != booksvc.ErrEmptyUpdate {
		t.Fatalf("got err=%v; want EMPTY_UPDATE", err)
	}
}

func TestUpdate_CopiesPolicy(t *testing.T) {
	s := booksvc.New(&repoMock{})
	total, avail := 2, 3
	err := s.Update(context.Background(), primitive.NewObjectID(), booksvc.UpdateFields{
		TotalCopies:     &total,
		AvailableCopies: &avail,
	})
	if booksvc.Code(err) != booksvc.ErrInvalidPayload {
		t.Fatalf("got err=%v; want INVALID_PAYLOAD for available > total", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
			return 0, nil
		},
	}
	s := booksvc.New(m)
	title := "x"
	err := s.Update(context.Background(), primitive.NewObjectID(), booksvc.UpdateFields{Title: &title})
	if booksvc.Code(err) != booksvc.ErrBookNotFound {
		t.Fatalf("got err=%v; want BOOK_NOT_FOUND", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id primitive.ObjectID) (int64, error) { return 0, nil },
	}
	s := booksvc.New(m)
	if err := s.Delete(context.Background(), primitive.NewObjectID()); booksvc.Code(err) != booksvc.ErrBookNotFound {
		t.Fatalf("got err=%v; want BOOK_NOT_FOUND", err)
	}
}

func TestBorrow_RecordShape(t *testing.T) {
	var captured model.BorrowRecord
	m := &repoMock{
		borrowFn: func(ctx context.Context, id primitive.ObjectID, rec model.BorrowRecord) (int64, error) {
			captured = rec
			return 1, nil
		},
	}
	s := booksvc.New(m)
	if err := s.Borrow(context.Background(), primitive.NewObjectID(), "alice"); err != nil {
		t.Fatalf("borrow error: %v", err)
	}
	if captured.BorrowerName != "alice" || captured.Status != model.StatusBorrowed {
		t.Fatalf("unexpected record: %+v", captured)
	}
	if captured.ReturnDate != nil {
		t.Fatal("new borrow record must have nil returnDate")
	}
	if captured.BorrowDate.IsZero() {
		t.Fatal("borrowDate must be set")
	}
}

func TestBorrow_Disambiguation(t *testing.T) {
	// zero matches + book exists: the copies ran out
	m := &repoMock{
		borrowFn: func(ctx context.Context, id primitive.ObjectID, rec model.BorrowRecord) (int64, error) {
			return 0, nil
		},
		existsFn: func(ctx context.Context, id primitive.ObjectID) (bool, error) { return true, nil },
	}
	s := booksvc.New(m)
	if err := s.Borrow(context.Background(), primitive.NewObjectID(), "alice"); booksvc.Code(err) != booksvc.ErrNoCopies {
		t.Fatalf("got err=%v; want NO_COPIES", err)
	}

	// zero matches + book missing
	m.existsFn = func(ctx context.Context, id primitive.ObjectID) (bool, error) { return false, nil }
	if err := s.Borrow(context.Background(), primitive.NewObjectID(), "alice"); booksvc.Code(err) != booksvc.ErrBookNotFound {
		t.Fatalf("got err=%v; want BOOK_NOT_FOUND", err)
	}
}

func TestReturn_Disambiguation(t *testing.T) {
	m := &repoMock{
		returnFn: func(ctx context.Context, id primitive.ObjectID, borrowerName string, returnedAt time.Time) (int64, error) {
			return 0, nil
		},
		existsFn: func(ctx context.Context, id primitive.ObjectID) (bool, error) { return true, nil },
	}
	s := booksvc.New(m)
	if err := s.Return(context.Background(), primitive.NewObjectID(), "bob"); booksvc.Code(err) != booksvc.ErrNoActiveBorrow {
		t.Fatalf("got err=%v; want NO_ACTIVE_BORROW", err)
	}

	m.existsFn = func(ctx context.Context, id primitive.ObjectID) (bool, error) { return false, nil }
	if err := s.Return(context.Background(), primitive.NewObjectID(), "bob"); booksvc.Code(err) != booksvc.ErrBookNotFound {
		t.Fatalf("got err=%v; want BOOK_NOT_FOUND", err)
	}
}

func TestReturn_Success(t *testing.T) {
	var gotName string
	m := &repoMock{
		returnFn: func(ctx context.Context, id primitive.ObjectID, borrowerName string, returnedAt time.Time) (int64, error) {
			gotName = borrowerName
			if returnedAt.IsZero() {
				t.Fatal("returnedAt must be set")
			}
			return 1, nil
		},
	}
	s := booksvc.New(m)
	if err := s.Return(context.Background(), primitive.NewObjectID(), "bob"); err != nil {
		t.Fatalf("return error: %v", err)
	}
	if gotName != "bob" {
		t.Fatalf("got borrower %q; want bob", gotName)
	}
}

func TestAddRating_Bounds(t *testing.T) {
	s := booksvc.New(&repoMock{})
	for _, r := range []int{0, 6, -1} {
		if err := s.AddRating(context.Background(), primitive.NewObjectID(), r, ""); booksvc.Code(err) != booksvc.ErrInvalidPayload {
			t.Fatalf("rating %d: got err=%v; want INVALID_PAYLOAD", r, err)
		}
	}
}

func TestAddRating_Success(t *testing.T) {
	var captured model.RatingRecord
	m := &repoMock{
		addRatingFn: func(ctx context.Context, id primitive.ObjectID, rec model.RatingRecord) (int64, error) {
			captured = rec
			return 1, nil
		},
	}
	s := booksvc.New(m)
	if err := s.AddRating(context.Background(), primitive.NewObjectID(), 4, "solid"); err != nil {
		t.Fatalf("add rating error: %v", err)
	}
	if captured.Rating != 4 || captured.Review != "solid" || captured.ReviewDate.IsZero() {
		t.Fatalf("unexpected record: %+v", captured)
	}
}

func TestAddRating_NotFound(t *testing.T) {
	m := &repoMock{
		addRatingFn: func(ctx context.Context, id primitive.ObjectID, rec model.RatingRecord) (int64, error) {
			return 0, nil
		},
	}
	s := booksvc.New(m)
	if err := s.AddRating(context.Background(), primitive.NewObjectID(), 3, ""); booksvc.Code(err) != booksvc.ErrBookNotFound {
		t.Fatalf("got err=%v; want BOOK_NOT_FOUND", err)
	}
}
