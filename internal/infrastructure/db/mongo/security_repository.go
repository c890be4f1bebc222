package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartlicense/license-api/internal/core/domain"
)

const (
	collectionQuestions = "security_questions"
	collectionAnswers   = "user_security_answers"

	indexQuestionText = "uniq_question"
	indexUserQuestion = "uniq_user_question"
)

type SecurityQuestionRepository struct {
	col *mongo.Collection
	seq *sequences
}

func NewSecurityQuestionRepository(db *mongo.Database, seq *sequences) *SecurityQuestionRepository {
	return &SecurityQuestionRepository{col: db.Collection(collectionQuestions), seq: seq}
}

func (r *SecurityQuestionRepository) List(ctx context.Context) ([]domain.SecurityQuestion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.SecurityQuestion{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return out, nil
}

func (r *SecurityQuestionRepository) FindByID(ctx context.Context, id int64) (*domain.SecurityQuestion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var q domain.SecurityQuestion
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		return nil, notFound(err, domain.ErrQuestionNotFound)
	}
	return &q, nil
}

// EnsureQuestions inserts each missing text one at a time. A partial run is
// completed by the next one; a concurrent insert of the same text is skipped.
func (r *SecurityQuestionRepository) EnsureQuestions(ctx context.Context, texts []string) (int, error) {
	inserted := 0
	for _, text := range texts {
		ok, err := r.insertIfMissing(ctx, text)
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

func (r *SecurityQuestionRepository) insertIfMissing(ctx context.Context, text string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"question": text}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count questions: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	id, err := r.seq.next(ctx, collectionQuestions)
	if err != nil {
		return false, err
	}
	if _, err := r.col.InsertOne(ctx, domain.SecurityQuestion{ID: id, Question: text}); err != nil {
		if isDuplicate(err, indexQuestionText) {
			return false, nil
		}
		return false, fmt.Errorf("insert question: %w", err)
	}
	return true, nil
}

func (r *SecurityQuestionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, uniqueIndex(indexQuestionText, bson.D{{Key: "question", Value: 1}}))
	return err
}

type SecurityAnswerRepository struct {
	col *mongo.Collection
	seq *sequences
}

func NewSecurityAnswerRepository(db *mongo.Database, seq *sequences) *SecurityAnswerRepository {
	return &SecurityAnswerRepository{col: db.Collection(collectionAnswers), seq: seq}
}

func (r *SecurityAnswerRepository) Create(ctx context.Context, a *domain.SecurityAnswer) (*domain.SecurityAnswer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, collectionAnswers)
	if err != nil {
		return nil, err
	}

	doc := *a
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if isDuplicate(err, indexUserQuestion) {
			return nil, domain.ErrAnswerExists
		}
		return nil, fmt.Errorf("insert answer: %w", err)
	}
	return &doc, nil
}

func (r *SecurityAnswerRepository) ListByUser(ctx context.Context, userID int64) ([]domain.SecurityAnswer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "question_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find answers: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.SecurityAnswer{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return out, nil
}

func (r *SecurityAnswerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, uniqueIndex(indexUserQuestion, bson.D{
		{Key: "user_id", Value: 1},
		{Key: "question_id", Value: 1},
	}))
	return err
}
