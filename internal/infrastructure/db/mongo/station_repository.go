package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartlicense/license-api/internal/core/domain"
)

const collectionStations = "stations"

type StationRepository struct {
	col *mongo.Collection
	seq *sequences
}

func NewStationRepository(db *mongo.Database, seq *sequences) *StationRepository {
	return &StationRepository{col: db.Collection(collectionStations), seq: seq}
}

func (r *StationRepository) Create(ctx context.Context, s *domain.Station) (*domain.Station, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, collectionStations)
	if err != nil {
		return nil, err
	}

	doc := *s
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert station: %w", err)
	}
	return &doc, nil
}

func (r *StationRepository) FindByID(ctx context.Context, id int64) (*domain.Station, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Station
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, notFound(err, domain.ErrStationNotFound)
	}
	return &s, nil
}

func (r *StationRepository) List(ctx context.Context) ([]domain.Station, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find stations: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.Station{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode stations: %w", err)
	}
	return out, nil
}

func (r *StationRepository) Update(ctx context.Context, id int64, patch domain.StationPatch) (*domain.Station, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.NumGrounds != nil {
		set["num_grounds"] = *patch.NumGrounds
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Station
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&s); err != nil {
		return nil, notFound(err, domain.ErrStationNotFound)
	}
	return &s, nil
}

func (r *StationRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete station: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStationNotFound
	}
	return nil
}

// EnsureStations inserts every station whose name is not present yet.
func (r *StationRepository) EnsureStations(ctx context.Context, stations []domain.Station) (int, error) {
	inserted := 0
	for _, s := range stations {
		n, err := r.count(ctx, bson.M{"name": s.Name})
		if err != nil {
			return inserted, err
		}
		if n > 0 {
			continue
		}
		if _, err := r.Create(ctx, &s); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (r *StationRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return 0, fmt.Errorf("count stations: %w", err)
	}
	return n, nil
}

func (r *StationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}})
	return err
}
