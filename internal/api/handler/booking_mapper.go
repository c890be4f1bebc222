package handler

import (
	"github.com/smartlicense/license-api/internal/core/domain"
)

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		BookingID:    b.ID,
		LearnerID:    b.LearnerID,
		InstructorID: b.InstructorID,
		StationID:    b.StationID,
		TestDate:     b.TestDate,
		Result:       string(b.Result),
		BookingDate:  b.BookingDate,
		LicenseCode:  b.LicenseCode,
		RegisteredOn: b.RegisteredOn,
	}
}

func toBookingList(bookings []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}

// toResultsResponse renders every result bucket, empty ones included, plus a
// per-result count.
func toResultsResponse(rb *domain.ResultBreakdown) resultsByDateResponse {
	resp := resultsByDateResponse{
		Date:          rb.Date,
		TotalBookings: rb.Total,
		Results:       make(map[string][]resultEntry, len(domain.Results)),
		Summary:       make(map[string]int, len(domain.Results)),
	}
	for _, r := range domain.Results {
		entries := make([]resultEntry, 0, rb.Count(r))
		for _, b := range rb.Buckets[r] {
			entries = append(entries, resultEntry{
				BookingID:    b.ID,
				LearnerID:    b.LearnerID,
				InstructorID: b.InstructorID,
				Result:       string(b.Result),
				LicenseCode:  b.LicenseCode,
				TestDate:     b.TestDate,
				BookingDate:  b.BookingDate,
			})
		}
		resp.Results[string(r)] = entries
		resp.Summary[string(r)] = len(entries)
	}
	return resp
}

func toBookingPatch(req updateBookingRequest) domain.BookingPatch {
	patch := domain.BookingPatch{
		LearnerID:    req.LearnerID,
		InstructorID: req.InstructorID,
		StationID:    req.StationID,
		TestDate:     req.TestDate,
		BookingDate:  req.BookingDate,
		LicenseCode:  req.LicenseCode,
		RegisteredOn: req.RegisteredOn,
	}
	if req.Result != nil {
		r := domain.Result(*req.Result)
		patch.Result = &r
	}
	return patch
}
