package bookrepo

import (
	"context"
	"errors"
	"time"

	"librarycatalog/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

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

type repo struct{ col *mongo.Collection }

func New(col *mongo.Collection) Repo { return &repo{col} }

func (r *repo) Create(ctx context.Context, b *model.Book) (primitive.ObjectID, error) {
	b.BorrowHistory = []model.BorrowRecord{}
	b.Ratings = []model.RatingRecord{}
	b.AddedDate = time.Now().UTC()

	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("unexpected inserted id type")
	}
	return id, nil
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	out := []model.Book{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Book, error) {
	var b model.Book
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *repo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Borrow appends the record and decrements availableCopies in one conditional
// update. Zero matches means the book is missing or has no free copies; the
// service disambiguates with Exists.
func (r *repo) Borrow(ctx context.Context, id primitive.ObjectID, rec model.BorrowRecord) (int64, error) {
	res, err := r.col.UpdateOne(ctx, borrowFilter(id), borrowUpdate(rec))
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Return transitions the first open record for the borrower with a single
// positional update, so the read-modify-write race of doing it in two store
// calls cannot occur.
func (r *repo) Return(ctx context.Context, id primitive.ObjectID, borrowerName string, returnedAt time.Time) (int64, error) {
	res, err := r.col.UpdateOne(ctx, returnFilter(id, borrowerName), returnUpdate(returnedAt))
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *repo) AddRating(ctx context.Context, id primitive.ObjectID, rec model.RatingRecord) (int64, error) {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$push": bson.M{"ratings": rec}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *repo) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func borrowFilter(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "availableCopies": bson.M{"$gt": 0}}
}

func borrowUpdate(rec model.BorrowRecord) bson.M {
	return bson.M{
		"$push": bson.M{"borrowHistory": rec},
		"$inc":  bson.M{"availableCopies": -1},
	}
}

func returnFilter(id primitive.ObjectID, borrowerName string) bson.M {
	return bson.M{
		"_id": id,
		"borrowHistory": bson.M{"$elemMatch": bson.M{
			"borrowerName": borrowerName,
			"status":       model.StatusBorrowed,
		}},
	}
}

func returnUpdate(returnedAt time.Time) bson.M {
	return bson.M{
		"$set": bson.M{
			"borrowHistory.$.status":     model.StatusReturned,
			"borrowHistory.$.returnDate": returnedAt,
		},
		"$inc": bson.M{"availableCopies": 1},
	}
}
