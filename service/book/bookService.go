package booksvc

import (
	"context"
	"errors"
	"time"

	"librarycatalog/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound   ErrCode = "BOOK_NOT_FOUND"
	ErrNoActiveBorrow ErrCode = "NO_ACTIVE_BORROW"
	ErrNoCopies       ErrCode = "NO_COPIES"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrEmptyUpdate    ErrCode = "EMPTY_UPDATE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// UpdateFields is the allow-list for partial updates; nil means "leave as is".
// Identity and the embedded histories are deliberately not updatable.
type UpdateFields struct {
	Title           *string
	Author          *string
	Genre           *string
	ISBN            *string
	PublishedYear   *int
	Description     *string
	TotalCopies     *int
	AvailableCopies *int
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) (primitive.ObjectID, error)
	List(ctx context.Context) ([]model.Book, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Book, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Borrow(ctx context.Context, id primitive.ObjectID, rec model.BorrowRecord) (int64, error)
	Return(ctx context.Context, id primitive.ObjectID, borrowerName string, returnedAt time.Time) (int64, error)
	AddRating(ctx context.Context, id primitive.ObjectID, rec model.RatingRecord) (int64, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type Service interface {
	Create(ctx context.Context, b *model.Book) (primitive.ObjectID, error)
	List(ctx context.Context) ([]model.Book, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.Book, error)
	Update(ctx context.Context, id primitive.ObjectID, f UpdateFields) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Borrow(ctx context.Context, id primitive.ObjectID, borrowerName string) error
	Return(ctx context.Context, id primitive.ObjectID, borrowerName string) error
	AddRating(ctx context.Context, id primitive.ObjectID, rating int, review string) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, b *model.Book) (primitive.ObjectID, error) {
	if b.Title == "" || b.Author == "" || b.Genre == "" {
		return primitive.NilObjectID, makeErr(ErrInvalidPayload)
	}
	if b.TotalCopies < 0 || b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return primitive.NilObjectID, makeErr(ErrInvalidPayload)
	}
	return s.r.Create(ctx, b)
}

func (s *service) List(ctx context.Context) ([]model.Book, error) { return s.r.List(ctx) }

func (s *service) Get(ctx context.Context, id primitive.ObjectID) (*model.Book, error) {
	b, err := s.r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrBookNotFound)
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, id primitive.ObjectID, f UpdateFields) error {
	set := setDoc(f)
	if len(set) == 0 {
		return makeErr(ErrEmptyUpdate)
	}
	if f.TotalCopies != nil && *f.TotalCopies < 0 {
		return makeErr(ErrInvalidPayload)
	}
	if f.AvailableCopies != nil && *f.AvailableCopies < 0 {
		return makeErr(ErrInvalidPayload)
	}
	if f.TotalCopies != nil && f.AvailableCopies != nil && *f.AvailableCopies > *f.TotalCopies {
		return makeErr(ErrInvalidPayload)
	}
	matched, err := s.r.Update(ctx, id, set)
	if err != nil {
		return err
	}
	if matched == 0 {
		return makeErr(ErrBookNotFound)
	}
	return nil
}

func setDoc(f UpdateFields) bson.M {
	set := bson.M{}
	if f.Title != nil {
		set["title"] = *f.Title
	}
	if f.Author != nil {
		set["author"] = *f.Author
	}
	if f.Genre != nil {
		set["genre"] = *f.Genre
	}
	if f.ISBN != nil {
		set["isbn"] = *f.ISBN
	}
	if f.PublishedYear != nil {
		set["publishedYear"] = *f.PublishedYear
	}
	if f.Description != nil {
		set["description"] = *f.Description
	}
	if f.TotalCopies != nil {
		set["totalCopies"] = *f.TotalCopies
	}
	if f.AvailableCopies != nil {
		set["availableCopies"] = *f.AvailableCopies
	}
	return set
}

func (s *service) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return makeErr(ErrBookNotFound)
	}
	return nil
}

func (s *service) Borrow(ctx context.Context, id primitive.ObjectID, borrowerName string) error {
	if borrowerName == "" {
		return makeErr(ErrInvalidPayload)
	}
	rec := model.BorrowRecord{
		BorrowerName: borrowerName,
		BorrowDate:   time.Now().UTC(),
		ReturnDate:   nil,
		Status:       model.StatusBorrowed,
	}
	matched, err := s.r.Borrow(ctx, id, rec)
	if err != nil {
		return err
	}
	if matched == 0 {
		exists, err := s.r.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return makeErr(ErrBookNotFound)
		}
		return makeErr(ErrNoCopies)
	}
	return nil
}

func (s *service) Return(ctx context.Context, id primitive.ObjectID, borrowerName string) error {
	if borrowerName == "" {
		return makeErr(ErrInvalidPayload)
	}
	matched, err := s.r.Return(ctx, id, borrowerName, time.Now().UTC())
	if err != nil {
		return err
	}
	if matched == 0 {
		exists, err := s.r.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return makeErr(ErrBookNotFound)
		}
		return makeErr(ErrNoActiveBorrow)
	}
	return nil
}

func (s *service) AddRating(ctx context.Context, id primitive.ObjectID, rating int, review string) error {
	if rating < 1 || rating > 5 {
		return makeErr(ErrInvalidPayload)
	}
	rec := model.RatingRecord{
		Rating:     rating,
		Review:     review,
		ReviewDate: time.Now().UTC(),
	}
	matched, err := s.r.AddRating(ctx, id, rec)
	if err != nil {
		return err
	}
	if matched == 0 {
		return makeErr(ErrBookNotFound)
	}
	return nil
}
