// model/book.go
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BorrowStatus string

const (
	StatusBorrowed BorrowStatus = "borrowed"
	StatusReturned BorrowStatus = "returned"
)

type Book struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title           string             `bson:"title" json:"title"`
	Author          string             `bson:"author" json:"author"`
	Genre           string             `bson:"genre" json:"genre"`
	ISBN            string             `bson:"isbn,omitempty" json:"isbn,omitempty"`
	PublishedYear   int                `bson:"publishedYear,omitempty" json:"publishedYear,omitempty"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	TotalCopies     int                `bson:"totalCopies" json:"totalCopies"`
	AvailableCopies int                `bson:"availableCopies" json:"availableCopies"`
	BorrowHistory   []BorrowRecord     `bson:"borrowHistory" json:"borrowHistory"`
	Ratings         []RatingRecord     `bson:"ratings" json:"ratings"`
	AddedDate       time.Time          `bson:"addedDate" json:"addedDate"`
}

// BorrowRecord is one loan event. ReturnDate stays nil while the loan is open.
type BorrowRecord struct {
	BorrowerName string       `bson:"borrowerName" json:"borrowerName"`
	BorrowDate   time.Time    `bson:"borrowDate" json:"borrowDate"`
	ReturnDate   *time.Time   `bson:"returnDate" json:"returnDate"`
	Status       BorrowStatus `bson:"status" json:"status"`
}

type RatingRecord struct {
	Rating     int       `bson:"rating" json:"rating"`
	Review     string    `bson:"review,omitempty" json:"review,omitempty"`
	ReviewDate time.Time `bson:"reviewDate" json:"reviewDate"`
}
