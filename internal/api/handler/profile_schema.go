package handler

import "time"

// userProfileFields are the editable columns of a user profile.
type userProfileFields struct {
	Name            string `json:"name"             validate:"required"`
	Surname         string `json:"surname"          validate:"required"`
	DateOfBirth     string `json:"date_of_birth"    validate:"required,datetime=2006-01-02"`
	Gender          string `json:"gender"           validate:"required"`
	Nationality     string `json:"nationality"      validate:"required"`
	IDNumber        string `json:"id_number"        validate:"required"`
	ContactNumber   string `json:"contact_number"   validate:"required"`
	PhysicalAddress string `json:"physical_address" validate:"required"`
	Race            string `json:"race"             validate:"required"`
}

type createUserProfileRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	userProfileFields
}

// updateUserProfileRequest replaces every field; the path decides which profile.
type updateUserProfileRequest struct {
	userProfileFields
}

type createInstructorProfileRequest struct {
	UserID    int64  `json:"user_id"    validate:"required,gt=0"`
	InfNr     string `json:"inf_nr"     validate:"required"`
	StationID int64  `json:"station_id" validate:"required,gt=0"`
}

// updateInstructorProfileRequest only carries inf_nr: the station assignment is
// fixed at creation.
type updateInstructorProfileRequest struct {
	InfNr string `json:"inf_nr" validate:"required"`
}

type learnerProfileFields struct {
	LearnerStatus   string     `json:"learner_status"`
	TestBookingDate *string    `json:"test_booking_date" validate:"omitempty,datetime=2006-01-02"`
	RegisteredOn    *time.Time `json:"registered_on"`
	LicenseCode     *string    `json:"license_code"`
}

type createLearnerProfileRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	learnerProfileFields
}

type updateLearnerProfileRequest struct {
	learnerProfileFields
}
