package domain

import "time"

// LearnerStatusPending is the status a learner profile starts with.
const LearnerStatusPending = "pending"

// UserProfile holds the personal details of a user. Instructor profiles hang off it.
type UserProfile struct {
	UserID          int64  `json:"user_id" bson:"_id"`
	Name            string `json:"name" bson:"name"`
	Surname         string `json:"surname" bson:"surname"`
	DateOfBirth     string `json:"date_of_birth" bson:"date_of_birth"`
	Gender          string `json:"gender" bson:"gender"`
	Nationality     string `json:"nationality" bson:"nationality"`
	IDNumber        string `json:"id_number" bson:"id_number"`
	ContactNumber   string `json:"contact_number" bson:"contact_number"`
	PhysicalAddress string `json:"physical_address" bson:"physical_address"`
	Race            string `json:"race" bson:"race"`
}

// InstructorProfile links a user to the station they examine at.
type InstructorProfile struct {
	UserID    int64  `json:"user_id" bson:"_id"`
	InfNr     string `json:"inf_nr" bson:"inf_nr"`
	StationID int64  `json:"station_id" bson:"station_id"`
}

type LearnerProfile struct {
	UserID          int64     `json:"user_id" bson:"_id"`
	LearnerStatus   string    `json:"learner_status" bson:"learner_status"`
	TestBookingDate *string   `json:"test_booking_date" bson:"test_booking_date,omitempty"`
	RegisteredOn    time.Time `json:"registered_on" bson:"registered_on"`
	LicenseCode     *string   `json:"license_code" bson:"license_code,omitempty"`
}
