package book

type CreateBookReq struct {
	Title           string `json:"title" validate:"required"`
	Author          string `json:"author" validate:"required"`
	Genre           string `json:"genre" validate:"required"`
	ISBN            string `json:"isbn"`
	PublishedYear   int    `json:"publishedYear" validate:"omitempty,gte=0"`
	Description     string `json:"description"`
	TotalCopies     int    `json:"totalCopies" validate:"gte=0"`
	AvailableCopies int    `json:"availableCopies" validate:"gte=0"`
}

// UpdateBookReq carries only the fields a client may change; anything else in
// the payload is dropped at bind time.
type UpdateBookReq struct {
	Title           *string `json:"title" validate:"omitempty,min=1"`
	Author          *string `json:"author" validate:"omitempty,min=1"`
	Genre           *string `json:"genre" validate:"omitempty,min=1"`
	ISBN            *string `json:"isbn"`
	PublishedYear   *int    `json:"publishedYear" validate:"omitempty,gte=0"`
	Description     *string `json:"description"`
	TotalCopies     *int    `json:"totalCopies" validate:"omitempty,gte=0"`
	AvailableCopies *int    `json:"availableCopies" validate:"omitempty,gte=0"`
}

type BorrowReq struct {
	BorrowerName string `json:"borrowerName" validate:"required"`
}

type ReturnReq struct {
	BorrowerName string `json:"borrowerName" validate:"required"`
}

type RatingReq struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review string `json:"review"`
}
