package ports

import "context"

// Store is the persistence gateway: one implementation per database driver,
// vending every repository over a shared connection.
type Store interface {
	Users() UserRepository
	Bookings() BookingRepository
	SecurityQuestions() SecurityQuestionRepository
	SecurityAnswers() SecurityAnswerRepository
	Stations() StationRepository
	UserProfiles() UserProfileRepository
	InstructorProfiles() InstructorProfileRepository
	LearnerProfiles() LearnerProfileRepository

	// Migrate brings the schema (tables, indexes, constraints) up to date.
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
