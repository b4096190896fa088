// model/report.go
//
// Payload shapes for the read-only reports. Fields mirror what the
// aggregation pipelines project, so every struct doubles as the bson
// decode target and the JSON response body.
package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type GenreStat struct {
	Genre           string  `bson:"_id" json:"_id"`
	Count           int     `bson:"count" json:"count"`
	TotalCopies     int     `bson:"totalCopies" json:"totalCopies"`
	AvailableCopies int     `bson:"availableCopies" json:"availableCopies"`
	BorrowRate      float64 `bson:"borrowRate" json:"borrowRate"`
}

type DashboardStats struct {
	TotalBooks       int         `json:"totalBooks"`
	TotalBorrowed    int         `json:"totalBorrowed"`
	ByGenre          []GenreStat `json:"byGenre"`
	AvgRating        float64     `json:"avgRating"`
	TotalRatings     int         `json:"totalRatings"`
	TotalCirculation int         `json:"totalCirculation"`
	RecentAdditions  int         `json:"recentAdditions"`
	ActiveBorrowers  int         `json:"activeBorrowers"`
}

type PopularBook struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	Title           string             `bson:"title" json:"title"`
	Author          string             `bson:"author" json:"author"`
	Genre           string             `bson:"genre" json:"genre"`
	BorrowCount     int                `bson:"borrowCount" json:"borrowCount"`
	ActiveBorrows   int                `bson:"activeBorrows" json:"activeBorrows"`
	AvgRating       float64            `bson:"avgRating" json:"avgRating"`
	PopularityScore float64            `bson:"popularityScore" json:"popularityScore"`
}

type RatingDistribution struct {
	FiveStars  int `bson:"fiveStars" json:"fiveStars"`
	FourStars  int `bson:"fourStars" json:"fourStars"`
	ThreeStars int `bson:"threeStars" json:"threeStars"`
	TwoStars   int `bson:"twoStars" json:"twoStars"`
	OneStar    int `bson:"oneStar" json:"oneStar"`
}

type RatedBook struct {
	ID                 primitive.ObjectID `bson:"_id" json:"_id"`
	Title              string             `bson:"title" json:"title"`
	Author             string             `bson:"author" json:"author"`
	Genre              string             `bson:"genre" json:"genre"`
	AvgRating          float64            `bson:"avgRating" json:"avgRating"`
	RatingCount        int                `bson:"ratingCount" json:"ratingCount"`
	RatingDistribution RatingDistribution `bson:"ratingDistribution" json:"ratingDistribution"`
	RatingQuality      string             `bson:"ratingQuality" json:"ratingQuality"`
}

type LowStockBook struct {
	ID                     primitive.ObjectID `bson:"_id" json:"_id"`
	Title                  string             `bson:"title" json:"title"`
	Author                 string             `bson:"author" json:"author"`
	Genre                  string             `bson:"genre" json:"genre"`
	AvailableCopies        int                `bson:"availableCopies" json:"availableCopies"`
	TotalCopies            int                `bson:"totalCopies" json:"totalCopies"`
	AvailabilityPercentage float64            `bson:"availabilityPercentage" json:"availabilityPercentage"`
	UrgencyLevel           string             `bson:"urgencyLevel" json:"urgencyLevel"`
	ActiveBorrows          int                `bson:"activeBorrows" json:"activeBorrows"`
}

type TrendPeriod struct {
	Year  int `bson:"year" json:"year"`
	Month int `bson:"month" json:"month"`
}

type BorrowTrend struct {
	ID                  TrendPeriod `bson:"_id" json:"_id"`
	TotalBorrows        int         `bson:"totalBorrows" json:"totalBorrows"`
	Returned            int         `bson:"returned" json:"returned"`
	StillBorrowed       int         `bson:"stillBorrowed" json:"stillBorrowed"`
	ReturnRate          float64     `bson:"returnRate" json:"returnRate"`
	UniqueBookCount     int         `bson:"uniqueBookCount" json:"uniqueBookCount"`
	UniqueBorrowerCount int         `bson:"uniqueBorrowerCount" json:"uniqueBorrowerCount"`
	Period              string      `bson:"period" json:"period"`
}

type AuthorStat struct {
	Author          string   `bson:"author" json:"author"`
	TotalBooks      int      `bson:"totalBooks" json:"totalBooks"`
	TotalCopies     int      `bson:"totalCopies" json:"totalCopies"`
	Genres          []string `bson:"genres" json:"genres"`
	GenreCount      int      `bson:"genreCount" json:"genreCount"`
	AvgRating       *float64 `bson:"avgRating" json:"avgRating"`
	TotalBorrows    int      `bson:"totalBorrows" json:"totalBorrows"`
	MostPopularBook string   `bson:"mostPopularBook" json:"mostPopularBook"`
	Productivity    string   `bson:"productivity" json:"productivity"`
}

type BorrowerStat struct {
	BorrowerName      string   `bson:"borrowerName" json:"borrowerName"`
	TotalBorrows      int      `bson:"totalBorrows" json:"totalBorrows"`
	Returned          int      `bson:"returned" json:"returned"`
	CurrentlyBorrowed int      `bson:"currentlyBorrowed" json:"currentlyBorrowed"`
	UniqueBooksRead   int      `bson:"uniqueBooksRead" json:"uniqueBooksRead"`
	ReturnRate        float64  `bson:"returnRate" json:"returnRate"`
	AvgBorrowDuration *float64 `bson:"avgBorrowDuration" json:"avgBorrowDuration"`
	MostReadGenre     string   `bson:"mostReadGenre" json:"mostReadGenre"`
	ReaderType        string   `bson:"readerType" json:"readerType"`
}
