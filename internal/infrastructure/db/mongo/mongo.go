package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartlicense/license-api/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	indexTimeout   = 30 * time.Second

	collectionCounters = "counters"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Store implements ports.Store on a single MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database

	users       *UserRepository
	bookings    *BookingRepository
	questions   *SecurityQuestionRepository
	answers     *SecurityAnswerRepository
	stations    *StationRepository
	profiles    *UserProfileRepository
	instructors *InstructorProfileRepository
	learners    *LearnerProfileRepository
}

var _ ports.Store = (*Store)(nil)

func NewStore(client *mongo.Client, db *mongo.Database) *Store {
	seq := &sequences{col: db.Collection(collectionCounters)}
	return &Store{
		client:      client,
		db:          db,
		users:       NewUserRepository(db, seq),
		bookings:    NewBookingRepository(db, seq),
		questions:   NewSecurityQuestionRepository(db, seq),
		answers:     NewSecurityAnswerRepository(db, seq),
		stations:    NewStationRepository(db, seq),
		profiles:    NewUserProfileRepository(db),
		instructors: NewInstructorProfileRepository(db),
		learners:    NewLearnerProfileRepository(db),
	}
}

func (s *Store) Users() ports.UserRepository { return s.users }
func (s *Store) Bookings() ports.BookingRepository { return s.bookings }
func (s *Store) SecurityQuestions() ports.SecurityQuestionRepository { return s.questions }
func (s *Store) SecurityAnswers() ports.SecurityAnswerRepository { return s.answers }
func (s *Store) Stations() ports.StationRepository { return s.stations }
func (s *Store) UserProfiles() ports.UserProfileRepository { return s.profiles }
func (s *Store) InstructorProfiles() ports.InstructorProfileRepository { return s.instructors }
func (s *Store) LearnerProfiles() ports.LearnerProfileRepository { return s.learners }

// Migrate creates the indexes backing every uniqueness rule.
func (s *Store) Migrate(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"users", s.users.EnsureIndexes},
		{"bookings", s.bookings.EnsureIndexes},
		{"security_questions", s.questions.EnsureIndexes},
		{"user_security_answers", s.answers.EnsureIndexes},
		{"stations", s.stations.EnsureIndexes},
		{"user_profiles", s.profiles.EnsureIndexes},
		{"instructor_profiles", s.instructors.EnsureIndexes},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", step.name, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// sequences hands out increasing integer IDs, one counter document per
// collection.
type sequences struct {
	col *mongo.Collection
}

type counter struct {
	Name string `bson:"_id"`
	Seq  int64  `bson:"seq"`
}

func (s *sequences) next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return c.Seq, nil
}

// isDuplicate reports whether err is a duplicate-key error raised by the named
// index. Indexes are created with explicit names so the message is stable.
func isDuplicate(err error, index string) bool {
	return mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), index)
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return sentinel
	}
	return err
}

func uniqueIndex(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true).SetName(name)}
}
