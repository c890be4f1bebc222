package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartlicense/license-api/internal/core/domain"
)

// Profiles use the owning user's ID as _id, so a second profile for the same
// user trips the primary key.
const (
	collectionUserProfiles       = "user_profiles"
	collectionInstructorProfiles = "instructor_profiles"
	collectionLearnerProfiles    = "learner_profiles"

	indexIDNumber = "uniq_id_number"
	indexInfNr    = "uniq_inf_nr"
	indexPrimary  = "_id_"
)

var sortByID = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

type UserProfileRepository struct {
	col *mongo.Collection
}

func NewUserProfileRepository(db *mongo.Database) *UserProfileRepository {
	return &UserProfileRepository{col: db.Collection(collectionUserProfiles)}
}

func (r *UserProfileRepository) Create(ctx context.Context, p *domain.UserProfile) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		switch {
		case isDuplicate(err, indexIDNumber):
			return nil, domain.ErrIDNumberTaken
		case isDuplicate(err, indexPrimary):
			return nil, domain.ErrUserProfileExists
		}
		return nil, fmt.Errorf("insert user profile: %w", err)
	}
	out := *p
	return &out, nil
}

func (r *UserProfileRepository) FindByUserID(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.UserProfile
	if err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&p); err != nil {
		return nil, notFound(err, domain.ErrUserProfileNotFound)
	}
	return &p, nil
}

func (r *UserProfileRepository) List(ctx context.Context) ([]domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, sortByID)
	if err != nil {
		return nil, fmt.Errorf("find user profiles: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.UserProfile{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode user profiles: %w", err)
	}
	return out, nil
}

func (r *UserProfileRepository) Update(ctx context.Context, p *domain.UserProfile) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.UserID}, p)
	if err != nil {
		if isDuplicate(err, indexIDNumber) {
			return nil, domain.ErrIDNumberTaken
		}
		return nil, fmt.Errorf("replace user profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserProfileNotFound
	}
	out := *p
	return &out, nil
}

func (r *UserProfileRepository) Delete(ctx context.Context, userID int64) error {
	return deleteByID(ctx, r.col, userID, domain.ErrUserProfileNotFound)
}

func (r *UserProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, uniqueIndex(indexIDNumber, bson.D{{Key: "id_number", Value: 1}}))
	return err
}

type InstructorProfileRepository struct {
	col *mongo.Collection
}

func NewInstructorProfileRepository(db *mongo.Database) *InstructorProfileRepository {
	return &InstructorProfileRepository{col: db.Collection(collectionInstructorProfiles)}
}

func (r *InstructorProfileRepository) Create(ctx context.Context, p *domain.InstructorProfile) (*domain.InstructorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		switch {
		case isDuplicate(err, indexInfNr):
			return nil, domain.ErrInstructorNumberTaken
		case isDuplicate(err, indexPrimary):
			return nil, domain.ErrInstructorProfileExists
		}
		return nil, fmt.Errorf("insert instructor profile: %w", err)
	}
	out := *p
	return &out, nil
}

func (r *InstructorProfileRepository) FindByUserID(ctx context.Context, userID int64) (*domain.InstructorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.InstructorProfile
	if err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&p); err != nil {
		return nil, notFound(err, domain.ErrInstructorProfileNotFound)
	}
	return &p, nil
}

func (r *InstructorProfileRepository) ExistsByInfNr(ctx context.Context, infNr string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"inf_nr": infNr}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count instructor profiles: %w", err)
	}
	return n > 0, nil
}

func (r *InstructorProfileRepository) List(ctx context.Context) ([]domain.InstructorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, sortByID)
	if err != nil {
		return nil, fmt.Errorf("find instructor profiles: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.InstructorProfile{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode instructor profiles: %w", err)
	}
	return out, nil
}

func (r *InstructorProfileRepository) UpdateInfNr(ctx context.Context, userID int64, infNr string) (*domain.InstructorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.InstructorProfile
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"inf_nr": infNr}}, opts).Decode(&p)
	if err != nil {
		if isDuplicate(err, indexInfNr) {
			return nil, domain.ErrInstructorNumberTaken
		}
		return nil, notFound(err, domain.ErrInstructorProfileNotFound)
	}
	return &p, nil
}

func (r *InstructorProfileRepository) Delete(ctx context.Context, userID int64) error {
	return deleteByID(ctx, r.col, userID, domain.ErrInstructorProfileNotFound)
}

func (r *InstructorProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		uniqueIndex(indexInfNr, bson.D{{Key: "inf_nr", Value: 1}}),
		{Keys: bson.D{{Key: "station_id", Value: 1}}},
	})
	return err
}

type LearnerProfileRepository struct {
	col *mongo.Collection
}

func NewLearnerProfileRepository(db *mongo.Database) *LearnerProfileRepository {
	return &LearnerProfileRepository{col: db.Collection(collectionLearnerProfiles)}
}

func (r *LearnerProfileRepository) Create(ctx context.Context, p *domain.LearnerProfile) (*domain.LearnerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		if isDuplicate(err, indexPrimary) {
			return nil, domain.ErrLearnerProfileExists
		}
		return nil, fmt.Errorf("insert learner profile: %w", err)
	}
	out := *p
	return &out, nil
}

func (r *LearnerProfileRepository) FindByUserID(ctx context.Context, userID int64) (*domain.LearnerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.LearnerProfile
	if err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&p); err != nil {
		return nil, notFound(err, domain.ErrLearnerProfileNotFound)
	}
	return &p, nil
}

func (r *LearnerProfileRepository) List(ctx context.Context) ([]domain.LearnerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, sortByID)
	if err != nil {
		return nil, fmt.Errorf("find learner profiles: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.LearnerProfile{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode learner profiles: %w", err)
	}
	return out, nil
}

func (r *LearnerProfileRepository) Update(ctx context.Context, p *domain.LearnerProfile) (*domain.LearnerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.UserID}, p)
	if err != nil {
		return nil, fmt.Errorf("replace learner profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrLearnerProfileNotFound
	}
	out := *p
	return &out, nil
}

func (r *LearnerProfileRepository) Delete(ctx context.Context, userID int64) error {
	return deleteByID(ctx, r.col, userID, domain.ErrLearnerProfileNotFound)
}

func deleteByID(ctx context.Context, col *mongo.Collection, id int64, missing error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return missing
	}
	return nil
}
