package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

const collectionBookings = "learner_test_bookings"

type BookingRepository struct {
	col *mongo.Collection
	seq *sequences
}

func NewBookingRepository(db *mongo.Database, seq *sequences) *BookingRepository {
	return &BookingRepository{col: db.Collection(collectionBookings), seq: seq}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, collectionBookings)
	if err != nil {
		return nil, err
	}

	doc := *b
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return &doc, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Booking
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return &b, nil
}

// List returns the bookings matching every set field of f, ordered by ID.
func (r *BookingRepository) List(ctx context.Context, f ports.BookingFilter) ([]domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bookingFilter(f), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.Booking{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return out, nil
}

// Update applies the patch with a single $set and returns the updated document.
func (r *BookingRepository) Update(ctx context.Context, id int64, patch domain.BookingPatch) (*domain.Booking, error) {
	if patch.Empty() {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b domain.Booking
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bookingSet(patch)}, opts).Decode(&b)
	if err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return &b, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// EnsureIndexes creates the query indexes for date and learner lookups.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "test_date", Value: 1}, {Key: "result", Value: 1}}},
		{Keys: bson.D{{Key: "learner_id", Value: 1}}},
	})
	return err
}

func bookingFilter(f ports.BookingFilter) bson.M {
	filter := bson.M{}
	if f.LearnerID != nil {
		filter["learner_id"] = *f.LearnerID
	}
	if f.TestDate != "" {
		filter["test_date"] = f.TestDate
	}
	switch {
	case f.Result != "" && f.NotResult != "":
		filter["result"] = bson.M{"$eq": f.Result, "$ne": f.NotResult}
	case f.Result != "":
		filter["result"] = f.Result
	case f.NotResult != "":
		filter["result"] = bson.M{"$ne": f.NotResult}
	}
	return filter
}

func bookingSet(p domain.BookingPatch) bson.M {
	set := bson.M{}
	if p.LearnerID != nil {
		set["learner_id"] = *p.LearnerID
	}
	if p.InstructorID != nil {
		set["instructor_id"] = *p.InstructorID
	}
	if p.StationID != nil {
		set["station_id"] = *p.StationID
	}
	if p.TestDate != nil {
		set["test_date"] = *p.TestDate
	}
	if p.Result != nil {
		set["result"] = *p.Result
	}
	if p.BookingDate != nil {
		set["booking_date"] = *p.BookingDate
	}
	if p.LicenseCode != nil {
		set["license_code"] = *p.LicenseCode
	}
	if p.RegisteredOn != nil {
		set["registered_on"] = *p.RegisteredOn
	}
	return set
}
