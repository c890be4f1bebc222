package handler

import (
	"github.com/smartlicense/license-api/internal/core/domain"
)

func toUserProfile(userID int64, f userProfileFields) domain.UserProfile {
	return domain.UserProfile{
		UserID:          userID,
		Name:            f.Name,
		Surname:         f.Surname,
		DateOfBirth:     f.DateOfBirth,
		Gender:          f.Gender,
		Nationality:     f.Nationality,
		IDNumber:        f.IDNumber,
		ContactNumber:   f.ContactNumber,
		PhysicalAddress: f.PhysicalAddress,
		Race:            f.Race,
	}
}

// toLearnerProfile leaves RegisteredOn zero when absent; the service fills in
// now on create and keeps the stored value on update.
func toLearnerProfile(userID int64, f learnerProfileFields) domain.LearnerProfile {
	p := domain.LearnerProfile{
		UserID:          userID,
		LearnerStatus:   f.LearnerStatus,
		TestBookingDate: f.TestBookingDate,
		LicenseCode:     f.LicenseCode,
	}
	if f.RegisteredOn != nil {
		p.RegisteredOn = f.RegisteredOn.UTC()
	}
	return p
}
