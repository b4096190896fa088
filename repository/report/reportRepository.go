// Package reportrepo holds the read-only aggregations over the books
// collection. Every report is computed server-side from scratch on each call;
// nothing here mutates state.
package reportrepo

import (
	"context"
	"time"

	"librarycatalog/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
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

type repo struct{ col *mongo.Collection }

func New(col *mongo.Collection) Repo { return &repo{col} }

type countDoc struct {
	Count int `bson:"count"`
}

type ratingFacet struct {
	AvgRating    float64 `bson:"avgRating"`
	TotalRatings int     `bson:"totalRatings"`
}

type dashboardFacet struct {
	TotalBooks       []countDoc        `bson:"totalBooks"`
	TotalBorrowed    []countDoc        `bson:"totalBorrowed"`
	ByGenre          []model.GenreStat `bson:"byGenre"`
	AvgRating        []ratingFacet     `bson:"avgRating"`
	TotalCirculation []countDoc        `bson:"totalCirculation"`
	RecentAdditions  []countDoc        `bson:"recentAdditions"`
	ActiveBorrowers  []countDoc        `bson:"activeBorrowers"`
}

func (r *repo) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	now := time.Now().UTC()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	cur, err := r.col.Aggregate(ctx, dashboardPipeline(yearStart))
	if err != nil {
		return nil, err
	}
	var facets []dashboardFacet
	if err := cur.All(ctx, &facets); err != nil {
		return nil, err
	}
	if len(facets) == 0 {
		return flattenDashboard(dashboardFacet{}), nil
	}
	return flattenDashboard(facets[0]), nil
}

// flattenDashboard unpacks the single $facet document; empty facets default
// every numeric result to 0.
func flattenDashboard(f dashboardFacet) *model.DashboardStats {
	s := &model.DashboardStats{ByGenre: f.ByGenre}
	if s.ByGenre == nil {
		s.ByGenre = []model.GenreStat{}
	}
	if len(f.TotalBooks) > 0 {
		s.TotalBooks = f.TotalBooks[0].Count
	}
	if len(f.TotalBorrowed) > 0 {
		s.TotalBorrowed = f.TotalBorrowed[0].Count
	}
	if len(f.AvgRating) > 0 {
		s.AvgRating = f.AvgRating[0].AvgRating
		s.TotalRatings = f.AvgRating[0].TotalRatings
	}
	if len(f.TotalCirculation) > 0 {
		s.TotalCirculation = f.TotalCirculation[0].Count
	}
	if len(f.RecentAdditions) > 0 {
		s.RecentAdditions = f.RecentAdditions[0].Count
	}
	if len(f.ActiveBorrowers) > 0 {
		s.ActiveBorrowers = f.ActiveBorrowers[0].Count
	}
	return s
}

func dashboardPipeline(yearStart time.Time) bson.A {
	return bson.A{
		bson.M{"$facet": bson.M{
			"totalBooks": bson.A{bson.M{"$count": "count"}},

			// books with at least one copy out
			"totalBorrowed": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$lt": bson.A{"$availableCopies", "$totalCopies"}}}},
				bson.M{"$count": "count"},
			},

			"byGenre": bson.A{
				bson.M{"$group": bson.M{
					"_id":             "$genre",
					"count":           bson.M{"$sum": 1},
					"totalCopies":     bson.M{"$sum": "$totalCopies"},
					"availableCopies": bson.M{"$sum": "$availableCopies"},
				}},
				bson.M{"$sort": bson.M{"count": -1}},
				bson.M{"$project": bson.M{
					"_id":             1,
					"count":           1,
					"totalCopies":     1,
					"availableCopies": 1,
					"borrowRate": bson.M{"$multiply": bson.A{
						bson.M{"$divide": bson.A{
							bson.M{"$subtract": bson.A{"$totalCopies", "$availableCopies"}},
							"$totalCopies",
						}},
						100,
					}},
				}},
			},

			"avgRating": bson.A{
				bson.M{"$unwind": "$ratings"},
				bson.M{"$group": bson.M{
					"_id":          nil,
					"avgRating":    bson.M{"$avg": "$ratings.rating"},
					"totalRatings": bson.M{"$sum": 1},
				}},
			},

			"totalCirculation": bson.A{
				bson.M{"$unwind": "$borrowHistory"},
				bson.M{"$count": "count"},
			},

			"recentAdditions": bson.A{
				bson.M{"$match": bson.M{"addedDate": bson.M{"$gte": yearStart}}},
				bson.M{"$count": "count"},
			},

			"activeBorrowers": bson.A{
				bson.M{"$unwind": "$borrowHistory"},
				bson.M{"$match": bson.M{"borrowHistory.status": model.StatusBorrowed}},
				bson.M{"$group": bson.M{"_id": "$borrowHistory.borrowerName"}},
				bson.M{"$count": "count"},
			},
		}},
	}
}

func (r *repo) PopularBooks(ctx context.Context) ([]model.PopularBook, error) {
	out := []model.PopularBook{}
	if err := r.aggregate(ctx, popularPipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func popularPipeline() bson.A {
	return bson.A{
		bson.M{"$addFields": bson.M{
			"borrowCount":   bson.M{"$size": "$borrowHistory"},
			"activeBorrows": activeBorrowsExpr(),
			"avgRating": bson.M{"$cond": bson.M{
				"if":   bson.M{"$gt": bson.A{bson.M{"$size": "$ratings"}, 0}},
				"then": bson.M{"$avg": "$ratings.rating"},
				"else": 0,
			}},
		}},
		bson.M{"$match": bson.M{"borrowCount": bson.M{"$gt": 0}}},
		bson.M{"$sort": bson.M{"borrowCount": -1}},
		bson.M{"$limit": 10},
		bson.M{"$project": bson.M{
			"title":         1,
			"author":        1,
			"genre":         1,
			"borrowCount":   1,
			"activeBorrows": 1,
			"avgRating":     bson.M{"$round": bson.A{"$avgRating", 1}},
			// score uses the unrounded average
			"popularityScore": bson.M{"$add": bson.A{
				"$borrowCount",
				bson.M{"$multiply": bson.A{"$avgRating", 2}},
			}},
		}},
	}
}

func (r *repo) RatedBooks(ctx context.Context) ([]model.RatedBook, error) {
	out := []model.RatedBook{}
	if err := r.aggregate(ctx, ratedPipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func ratedPipeline() bson.A {
	return bson.A{
		bson.M{"$match": bson.M{"ratings": bson.M{"$exists": true, "$ne": bson.A{}}}},
		bson.M{"$addFields": bson.M{
			"avgRating":   bson.M{"$avg": "$ratings.rating"},
			"ratingCount": bson.M{"$size": "$ratings"},
			"ratingDistribution": bson.M{
				"fiveStars":  starCountExpr(5),
				"fourStars":  starCountExpr(4),
				"threeStars": starCountExpr(3),
				"twoStars":   starCountExpr(2),
				"oneStar":    starCountExpr(1),
			},
		}},
		bson.M{"$sort": bson.D{{Key: "avgRating", Value: -1}, {Key: "ratingCount", Value: -1}}},
		bson.M{"$project": bson.M{
			"title":              1,
			"author":             1,
			"genre":              1,
			"avgRating":          bson.M{"$round": bson.A{"$avgRating", 2}},
			"ratingCount":        1,
			"ratingDistribution": 1,
			"ratingQuality": bson.M{"$switch": bson.M{
				"branches": bson.A{
					bson.M{"case": bson.M{"$gte": bson.A{"$avgRating", 4.5}}, "then": "Excellent"},
					bson.M{"case": bson.M{"$gte": bson.A{"$avgRating", 4.0}}, "then": "Very Good"},
					bson.M{"case": bson.M{"$gte": bson.A{"$avgRating", 3.0}}, "then": "Good"},
					bson.M{"case": bson.M{"$gte": bson.A{"$avgRating", 2.0}}, "then": "Fair"},
				},
				"default": "Poor",
			}},
		}},
	}
}

func starCountExpr(star int) bson.M {
	return bson.M{"$size": bson.M{"$filter": bson.M{
		"input": "$ratings",
		"cond":  bson.M{"$eq": bson.A{"$$this.rating", star}},
	}}}
}

func (r *repo) LowStock(ctx context.Context) ([]model.LowStockBook, error) {
	out := []model.LowStockBook{}
	if err := r.aggregate(ctx, lowStockPipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func lowStockPipeline() bson.A {
	return bson.A{
		bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
			bson.M{"$gt": bson.A{"$totalCopies", 0}},
			bson.M{"$lte": bson.A{"$availableCopies", bson.M{"$multiply": bson.A{"$totalCopies", 0.3}}}},
		}}}},
		bson.M{"$addFields": bson.M{
			"availabilityPercentage": bson.M{"$multiply": bson.A{
				bson.M{"$divide": bson.A{"$availableCopies", "$totalCopies"}},
				100,
			}},
			"urgencyLevel": bson.M{"$switch": bson.M{
				"branches": bson.A{
					bson.M{"case": bson.M{"$eq": bson.A{"$availableCopies", 0}}, "then": "Critical"},
					bson.M{"case": bson.M{"$lte": bson.A{"$availableCopies", 1}}, "then": "High"},
					bson.M{"case": bson.M{"$lte": bson.A{
						bson.M{"$divide": bson.A{"$availableCopies", "$totalCopies"}},
						0.2,
					}}, "then": "Medium"},
				},
				"default": "Low",
			}},
			"activeBorrows": activeBorrowsExpr(),
		}},
		bson.M{"$sort": bson.D{{Key: "availableCopies", Value: 1}, {Key: "totalCopies", Value: -1}}},
		bson.M{"$project": bson.M{
			"title":                  1,
			"author":                 1,
			"genre":                  1,
			"availableCopies":        1,
			"totalCopies":            1,
			"availabilityPercentage": bson.M{"$round": bson.A{"$availabilityPercentage", 1}},
			"urgencyLevel":           1,
			"activeBorrows":          1,
		}},
	}
}

func activeBorrowsExpr() bson.M {
	return bson.M{"$size": bson.M{"$filter": bson.M{
		"input": "$borrowHistory",
		"as":    "borrow",
		"cond":  bson.M{"$eq": bson.A{"$$borrow.status", model.StatusBorrowed}},
	}}}
}

func (r *repo) BorrowingTrends(ctx context.Context) ([]model.BorrowTrend, error) {
	out := []model.BorrowTrend{}
	if err := r.aggregate(ctx, trendsPipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func trendsPipeline() bson.A {
	return bson.A{
		bson.M{"$unwind": "$borrowHistory"},
		bson.M{"$group": bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$borrowHistory.borrowDate"},
				"month": bson.M{"$month": "$borrowHistory.borrowDate"},
			},
			"totalBorrows": bson.M{"$sum": 1},
			"returned": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$borrowHistory.status", model.StatusReturned}}, 1, 0,
			}}},
			"stillBorrowed": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$borrowHistory.status", model.StatusBorrowed}}, 1, 0,
			}}},
			"uniqueBooks":     bson.M{"$addToSet": "$title"},
			"uniqueBorrowers": bson.M{"$addToSet": "$borrowHistory.borrowerName"},
		}},
		bson.M{"$addFields": bson.M{
			"returnRate": bson.M{"$multiply": bson.A{
				bson.M{"$divide": bson.A{"$returned", "$totalBorrows"}},
				100,
			}},
			"uniqueBookCount":     bson.M{"$size": "$uniqueBooks"},
			"uniqueBorrowerCount": bson.M{"$size": "$uniqueBorrowers"},
		}},
		bson.M{"$sort": bson.D{{Key: "_id.year", Value: -1}, {Key: "_id.month", Value: -1}}},
		bson.M{"$limit": 12},
		bson.M{"$project": bson.M{
			"_id":                 1,
			"totalBorrows":        1,
			"returned":            1,
			"stillBorrowed":       1,
			"returnRate":          bson.M{"$round": bson.A{"$returnRate", 1}},
			"uniqueBookCount":     1,
			"uniqueBorrowerCount": 1,
			// YYYY-MM, month zero-padded
			"period": bson.M{"$concat": bson.A{
				bson.M{"$toString": "$_id.year"},
				"-",
				bson.M{"$cond": bson.A{
					bson.M{"$lt": bson.A{"$_id.month", 10}},
					bson.M{"$concat": bson.A{"0", bson.M{"$toString": "$_id.month"}}},
					bson.M{"$toString": "$_id.month"},
				}},
			}},
		}},
	}
}

func (r *repo) AuthorStats(ctx context.Context) ([]model.AuthorStat, error) {
	out := []model.AuthorStat{}
	if err := r.aggregate(ctx, authorsPipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func authorsPipeline() bson.A {
	return bson.A{
		bson.M{"$group": bson.M{
			"_id":         "$author",
			"totalBooks":  bson.M{"$sum": 1},
			"totalCopies": bson.M{"$sum": "$totalCopies"},
			"genres":      bson.M{"$addToSet": "$genre"},
			"books": bson.M{"$push": bson.M{
				"title":       "$title",
				"avgRating":   bson.M{"$avg": "$ratings.rating"},
				"borrowCount": bson.M{"$size": "$borrowHistory"},
			}},
			"avgRating":    bson.M{"$avg": bson.M{"$avg": "$ratings.rating"}},
			"totalBorrows": bson.M{"$sum": bson.M{"$size": "$borrowHistory"}},
		}},
		bson.M{"$addFields": bson.M{
			"genreCount": bson.M{"$size": "$genres"},
			"mostPopularBook": bson.M{"$arrayElemAt": bson.A{
				bson.M{"$sortArray": bson.M{
					"input":  "$books",
					"sortBy": bson.M{"borrowCount": -1},
				}},
				0,
			}},
		}},
		bson.M{"$sort": bson.M{"totalBorrows": -1}},
		bson.M{"$project": bson.M{
			"author":          "$_id",
			"totalBooks":      1,
			"totalCopies":     1,
			"genres":          1,
			"genreCount":      1,
			"avgRating":       bson.M{"$round": bson.A{"$avgRating", 2}},
			"totalBorrows":    1,
			"mostPopularBook": "$mostPopularBook.title",
			"productivity": bson.M{"$switch": bson.M{
				"branches": bson.A{
					bson.M{"case": bson.M{"$gte": bson.A{"$totalBooks", 3}}, "then": "Prolific"},
					bson.M{"case": bson.M{"$eq": bson.A{"$totalBooks", 2}}, "then": "Moderate"},
				},
				"default": "Single Work",
			}},
		}},
	}
}

func (r *repo) BorrowerStats(ctx context.Context) ([]model.BorrowerStat, error) {
	out := []model.BorrowerStat{}
	if err := r.aggregate(ctx, borrowersPipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func borrowersPipeline() bson.A {
	return bson.A{
		bson.M{"$unwind": "$borrowHistory"},
		bson.M{"$group": bson.M{
			"_id":          "$borrowHistory.borrowerName",
			"totalBorrows": bson.M{"$sum": 1},
			"returned": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$borrowHistory.status", model.StatusReturned}}, 1, 0,
			}}},
			"currentlyBorrowed": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$borrowHistory.status", model.StatusBorrowed}}, 1, 0,
			}}},
			"favoriteGenres": bson.M{"$push": "$genre"},
			"booksRead":      bson.M{"$addToSet": "$title"},
			// open loans contribute null and are excluded from the mean
			"avgBorrowDuration": bson.M{"$avg": bson.M{"$cond": bson.A{
				bson.M{"$ne": bson.A{"$borrowHistory.returnDate", nil}},
				bson.M{"$divide": bson.A{
					bson.M{"$subtract": bson.A{"$borrowHistory.returnDate", "$borrowHistory.borrowDate"}},
					86400000, // ms per day
				}},
				nil,
			}}},
		}},
		bson.M{"$addFields": bson.M{
			"returnRate": bson.M{"$multiply": bson.A{
				bson.M{"$divide": bson.A{"$returned", "$totalBorrows"}},
				100,
			}},
			"uniqueBooksRead": bson.M{"$size": "$booksRead"},
			"mostReadGenre": bson.M{"$arrayElemAt": bson.A{
				bson.M{"$sortArray": bson.M{
					"input": bson.M{"$map": bson.M{
						"input": bson.M{"$setUnion": bson.A{"$favoriteGenres", bson.A{}}},
						"as":    "g",
						"in": bson.M{
							"genre": "$$g",
							"count": bson.M{"$size": bson.M{"$filter": bson.M{
								"input": "$favoriteGenres",
								"cond":  bson.M{"$eq": bson.A{"$$this", "$$g"}},
							}}},
						},
					}},
					"sortBy": bson.M{"count": -1},
				}},
				0,
			}},
		}},
		bson.M{"$sort": bson.M{"totalBorrows": -1}},
		bson.M{"$limit": 20},
		bson.M{"$project": bson.M{
			"borrowerName":      "$_id",
			"totalBorrows":      1,
			"returned":          1,
			"currentlyBorrowed": 1,
			"uniqueBooksRead":   1,
			"returnRate":        bson.M{"$round": bson.A{"$returnRate", 1}},
			"avgBorrowDuration": bson.M{"$round": bson.A{"$avgBorrowDuration", 1}},
			"mostReadGenre":     "$mostReadGenre.genre",
			"readerType": bson.M{"$switch": bson.M{
				"branches": bson.A{
					bson.M{"case": bson.M{"$gte": bson.A{"$totalBorrows", 5}}, "then": "Avid Reader"},
					bson.M{"case": bson.M{"$gte": bson.A{"$totalBorrows", 3}}, "then": "Regular Reader"},
					bson.M{"case": bson.M{"$eq": bson.A{"$totalBorrows", 2}}, "then": "Casual Reader"},
				},
				"default": "New Reader",
			}},
		}},
	}
}

func (r *repo) aggregate(ctx context.Context, pipeline bson.A, out any) error {
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}
