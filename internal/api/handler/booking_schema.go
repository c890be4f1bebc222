package handler

import "time"

// --- Request types ---

type createBookingRequest struct {
	LearnerID    int64      `json:"learner_id"    validate:"required,gt=0"`
	InstructorID int64      `json:"instructor_id" validate:"required,gt=0"`
	StationID    int64      `json:"station_id"    validate:"required,gt=0"`
	TestDate     string     `json:"test_date"     validate:"required,datetime=2006-01-02"`
	Result       string     `json:"result"        validate:"omitempty,oneof=pending passed failed absent"`
	BookingDate  *time.Time `json:"booking_date"`
	LicenseCode  *string    `json:"license_code"`
	RegisteredOn *time.Time `json:"registered_on"`
}

// updateBookingRequest is a partial update: only the fields present in the
// body are written.
type updateBookingRequest struct {
	LearnerID    *int64     `json:"learner_id"    validate:"omitempty,gt=0"`
	InstructorID *int64     `json:"instructor_id" validate:"omitempty,gt=0"`
	StationID    *int64     `json:"station_id"    validate:"omitempty,gt=0"`
	TestDate     *string    `json:"test_date"     validate:"omitempty,datetime=2006-01-02"`
	Result       *string    `json:"result"        validate:"omitempty,oneof=pending passed failed absent"`
	BookingDate  *time.Time `json:"booking_date"`
	LicenseCode  *string    `json:"license_code"`
	RegisteredOn *time.Time `json:"registered_on"`
}

type updateResultRequest struct {
	Result string `json:"result" validate:"required,oneof=pending passed failed absent"`
}

// --- Response types ---

type bookingResponse struct {
	BookingID    int64     `json:"booking_id"`
	LearnerID    int64     `json:"learner_id"`
	InstructorID int64     `json:"instructor_id"`
	StationID    int64     `json:"station_id"`
	TestDate     string    `json:"test_date"`
	Result       string    `json:"result"`
	BookingDate  time.Time `json:"booking_date"`
	LicenseCode  *string   `json:"license_code"`
	RegisteredOn time.Time `json:"registered_on"`
}

type updateResultResponse struct {
	Message   string `json:"message"`
	BookingID int64  `json:"booking_id"`
	Result    string `json:"result"`
}

// resultEntry is one booking inside the results-by-date breakdown.
type resultEntry struct {
	BookingID    int64     `json:"booking_id"`
	LearnerID    int64     `json:"learner_id"`
	InstructorID int64     `json:"instructor_id"`
	Result       string    `json:"result"`
	LicenseCode  *string   `json:"license_code"`
	TestDate     string    `json:"test_date"`
	BookingDate  time.Time `json:"booking_date"`
}

type resultsByDateResponse struct {
	Date          string                   `json:"date"`
	TotalBookings int                      `json:"total_bookings"`
	Results       map[string][]resultEntry `json:"results"`
	Summary       map[string]int           `json:"summary"`
}
