package domain

import (
	"strings"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Result is the outcome recorded on a test booking.
type Result string

const (
	ResultPending Result = "pending"
	ResultPassed  Result = "passed"
	ResultFailed  Result = "failed"
	ResultAbsent  Result = "absent"
)

// Results lists every result in display order.
var Results = []Result{ResultPending, ResultPassed, ResultFailed, ResultAbsent}

// Valid reports whether r is one of the four known results.
//
// There is no transition table: any result may replace any other, including
// itself, any number of times.
func (r Result) Valid() bool {
	for _, known := range Results {
		if r == known {
			return true
		}
	}
	return false
}

// ParseResult validates s as a Result.
func ParseResult(s string) (Result, error) {
	r := Result(s)
	if !r.Valid() {
		return "", Invalid("result must be one of: pending passed failed absent")
	}
	return r, nil
}

// ParseDate checks that s is a YYYY-MM-DD calendar date and returns it unchanged.
// Dates are compared literally, so no timezone normalisation happens here.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", Invalid("date %q must use the YYYY-MM-DD format", s)
	}
	return s, nil
}

// Booking is a learner's scheduled driving test and its outcome.
type Booking struct {
	ID           int64     `json:"booking_id" bson:"_id"`
	LearnerID    int64     `json:"learner_id" bson:"learner_id"`
	InstructorID int64     `json:"instructor_id" bson:"instructor_id"`
	StationID    int64     `json:"station_id" bson:"station_id"`
	TestDate     string    `json:"test_date" bson:"test_date"`
	Result       Result    `json:"result" bson:"result"`
	BookingDate  time.Time `json:"booking_date" bson:"booking_date"`
	LicenseCode  *string   `json:"license_code" bson:"license_code,omitempty"`
	RegisteredOn time.Time `json:"registered_on" bson:"registered_on"`
}

// BookingPatch carries the subset of booking fields a caller wants to change.
// Nil fields are left untouched. Each store translates the set fields into its
// own update statement.
type BookingPatch struct {
	LearnerID    *int64
	InstructorID *int64
	StationID    *int64
	TestDate     *string
	Result       *Result
	BookingDate  *time.Time
	LicenseCode  *string
	RegisteredOn *time.Time
}

// Empty reports whether the patch changes nothing.
func (p BookingPatch) Empty() bool {
	return p.LearnerID == nil && p.InstructorID == nil && p.StationID == nil &&
		p.TestDate == nil && p.Result == nil && p.BookingDate == nil &&
		p.LicenseCode == nil && p.RegisteredOn == nil
}

// ResultBreakdown groups every booking of one test date by result.
type ResultBreakdown struct {
	Date    string
	Total   int
	Buckets map[Result][]Booking
}

// NewResultBreakdown partitions bookings into the four result buckets. Every
// bucket is present, even when empty.
func NewResultBreakdown(date string, bookings []Booking) ResultBreakdown {
	rb := ResultBreakdown{
		Date:    date,
		Total:   len(bookings),
		Buckets: make(map[Result][]Booking, len(Results)),
	}
	for _, r := range Results {
		rb.Buckets[r] = []Booking{}
	}
	for _, b := range bookings {
		if _, ok := rb.Buckets[b.Result]; ok {
			rb.Buckets[b.Result] = append(rb.Buckets[b.Result], b)
		}
	}
	return rb
}

// Count returns the number of bookings holding result r.
func (rb ResultBreakdown) Count(r Result) int {
	return len(rb.Buckets[r])
}
