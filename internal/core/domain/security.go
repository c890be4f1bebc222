package domain

import "time"

// DefaultSecurityQuestions is the recovery catalog every deployment starts with.
// Seeding matches on the exact text, so these strings must never be edited in place.
var DefaultSecurityQuestions = []string{
	"What is the name of your first pet?",
	"What was the model of your first car?",
	"In what city were you born?",
	"What is your mother's maiden name?",
	"What is the name of the street you grew up?",
	"What is the name of your primary school?",
}

type SecurityQuestion struct {
	ID       int64  `json:"id" bson:"_id"`
	Question string `json:"question" bson:"question"`
}

// SecurityAnswer is a user's hashed answer to one catalog question.
type SecurityAnswer struct {
	ID         int64     `json:"id" bson:"_id"`
	UserID     int64     `json:"user_id" bson:"user_id"`
	QuestionID int64     `json:"question_id" bson:"question_id"`
	AnswerHash string    `json:"-" bson:"answer_hash"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
