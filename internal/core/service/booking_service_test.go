package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

type bookingFixture struct {
	svc      *BookingService
	bookings *stubBookingRepo
	learners *stubLearnerRepo
	idem     *stubIdempotency
}

func newBookingFixture() bookingFixture {
	f := bookingFixture{
		bookings: newStubBookingRepo(),
		learners: newStubLearnerRepo(),
		idem:     newStubIdempotency(),
	}
	f.svc = NewBookingService(f.bookings, f.learners, f.idem, zerolog.Nop())
	return f
}

func mustBook(t *testing.T, svc *BookingService, learnerID int64, date string) *domain.Booking {
	t.Helper()
	out, err := svc.CreateBooking(context.Background(), ports.CreateBookingInput{
		LearnerID: learnerID, InstructorID: 2, StationID: 1, TestDate: date,
	})
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	return out.Booking
}

func TestBookingService_Create_DefaultsToPending(t *testing.T) {
	f := newBookingFixture()

	b := mustBook(t, f.svc, 7, "2024-05-01")
	if b.Result != domain.ResultPending {
		t.Fatalf("expected pending, got %s", b.Result)
	}
	if b.ID == 0 {
		t.Fatalf("expected gateway-assigned ID")
	}
	if b.BookingDate.IsZero() || b.RegisteredOn.IsZero() {
		t.Fatalf("expected timestamps to default to now")
	}
}

func TestBookingService_Create_IDsIncrease(t *testing.T) {
	f := newBookingFixture()

	first := mustBook(t, f.svc, 7, "2024-05-01")
	second := mustBook(t, f.svc, 7, "2024-05-01")
	if second.ID <= first.ID {
		t.Fatalf("expected increasing IDs, got %d then %d", first.ID, second.ID)
	}
}

func TestBookingService_Create_Validation(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	if _, err := f.svc.CreateBooking(ctx, ports.CreateBookingInput{TestDate: "01/05/2024"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad date, got %v", err)
	}
	if _, err := f.svc.CreateBooking(ctx, ports.CreateBookingInput{TestDate: "2024-05-01", Result: "cancelled"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad result, got %v", err)
	}
	if f.bookings.creates != 0 {
		t.Fatalf("expected nothing to be stored")
	}
}

func TestBookingService_Create_KeepsSuppliedFields(t *testing.T) {
	f := newBookingFixture()
	code := "B"
	when := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	out, err := f.svc.CreateBooking(context.Background(), ports.CreateBookingInput{
		LearnerID: 1, InstructorID: 2, StationID: 3, TestDate: "2024-05-01",
		Result: "passed", LicenseCode: &code, BookingDate: &when,
	})
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	b := out.Booking
	if b.Result != domain.ResultPassed || b.LicenseCode == nil || *b.LicenseCode != "B" || !b.BookingDate.Equal(when) {
		t.Fatalf("unexpected booking: %+v", b)
	}
}

func TestBookingService_Create_IdempotentReplay(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	in := ports.CreateBookingInput{LearnerID: 1, InstructorID: 2, StationID: 3, TestDate: "2024-05-01", IdempotencyKey: "k-1"}

	first, err := f.svc.CreateBooking(ctx, in)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := f.svc.CreateBooking(ctx, in)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if !second.AlreadyExisted || second.Booking.ID != first.Booking.ID {
		t.Fatalf("expected replay of booking %d, got %+v", first.Booking.ID, second)
	}
	if f.bookings.creates != 1 {
		t.Fatalf("expected one stored booking, got %d", f.bookings.creates)
	}
}

func TestBookingService_Create_IdempotencyStoreDown(t *testing.T) {
	f := newBookingFixture()
	f.idem.claimErr = errors.New("connection refused")

	out, err := f.svc.CreateBooking(context.Background(), ports.CreateBookingInput{TestDate: "2024-05-01", IdempotencyKey: "k"})
	if err != nil {
		t.Fatalf("expected create to proceed, got %v", err)
	}
	if out.AlreadyExisted {
		t.Fatalf("expected a fresh booking")
	}
}

func TestBookingService_Create_ReplayOfDeletedBookingCreatesNew(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	in := ports.CreateBookingInput{TestDate: "2024-05-01", IdempotencyKey: "k"}

	first, err := f.svc.CreateBooking(ctx, in)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := f.svc.DeleteBooking(ctx, first.Booking.ID); err != nil {
		t.Fatalf("DeleteBooking: %v", err)
	}
	second, err := f.svc.CreateBooking(ctx, in)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if second.AlreadyExisted || second.Booking.ID == first.Booking.ID {
		t.Fatalf("expected a new booking, got %+v", second)
	}
	if got := f.idem.keys["k"]; got != second.Booking.ID {
		t.Fatalf("expected key to point at booking %d, got %d", second.Booking.ID, got)
	}
}

func TestBookingService_Create_KeyHeldByConcurrentRequest(t *testing.T) {
	f := newBookingFixture()
	f.idem.keys["k"] = 0 // claimed, booking not written yet

	_, err := f.svc.CreateBooking(context.Background(), ports.CreateBookingInput{TestDate: "2024-05-01", IdempotencyKey: "k"})
	if !errors.Is(err, domain.ErrIdempotencyKeyInUse) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrIdempotencyKeyInUse, got %v", err)
	}
	if f.bookings.creates != 0 {
		t.Fatalf("expected no booking to be stored, got %d", f.bookings.creates)
	}
}

func TestBookingService_Create_FailedWriteReleasesKey(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	in := ports.CreateBookingInput{TestDate: "2024-05-01", IdempotencyKey: "k"}

	f.bookings.createErr = errors.New("write timeout")
	if _, err := f.svc.CreateBooking(ctx, in); err == nil {
		t.Fatalf("expected the store error")
	}
	if _, held := f.idem.keys["k"]; held {
		t.Fatalf("expected the claim to be released")
	}

	f.bookings.createErr = nil
	out, err := f.svc.CreateBooking(ctx, in)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if out.AlreadyExisted || f.idem.keys["k"] != out.Booking.ID {
		t.Fatalf("expected the retry to create and record booking, got %+v", out)
	}
}

func TestBookingService_UpdateResult_LastWriteWins(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	b := mustBook(t, f.svc, 1, "2024-05-01")

	for _, r := range []string{"failed", "passed", "absent", "absent", "pending", "passed"} {
		updated, err := f.svc.UpdateResult(ctx, b.ID, r)
		if err != nil {
			t.Fatalf("UpdateResult(%s): %v", r, err)
		}
		if string(updated.Result) != r {
			t.Fatalf("expected %s, got %s", r, updated.Result)
		}
	}

	got, _ := f.svc.GetBooking(ctx, b.ID)
	if got.Result != domain.ResultPassed {
		t.Fatalf("expected final result passed, got %s", got.Result)
	}
}

func TestBookingService_UpdateResult_Errors(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	b := mustBook(t, f.svc, 1, "2024-05-01")

	if _, err := f.svc.UpdateResult(ctx, b.ID, "excellent"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := f.svc.UpdateResult(ctx, 999, "passed"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingService_UpdateBooking_MergesFields(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	b := mustBook(t, f.svc, 1, "2024-05-01")

	station := int64(9)
	date := "2024-06-02"
	updated, err := f.svc.UpdateBooking(ctx, b.ID, domain.BookingPatch{StationID: &station, TestDate: &date})
	if err != nil {
		t.Fatalf("UpdateBooking: %v", err)
	}
	if updated.StationID != 9 || updated.TestDate != "2024-06-02" {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.LearnerID != 1 || updated.InstructorID != 2 || updated.Result != domain.ResultPending {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	bad := "tomorrow"
	if _, err := f.svc.UpdateBooking(ctx, b.ID, domain.BookingPatch{TestDate: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := f.svc.UpdateBooking(ctx, 999, domain.BookingPatch{StationID: &station}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.svc.UpdateBooking(ctx, 999, domain.BookingPatch{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty patch on missing booking, got %v", err)
	}
}

func TestBookingService_PendingAndCompletedForDate(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	a := mustBook(t, f.svc, 1, "2024-05-01")
	b := mustBook(t, f.svc, 2, "2024-05-01")
	mustBook(t, f.svc, 3, "2024-05-02")

	pending, _ := f.svc.PendingForDate(ctx, "2024-05-01")
	completed, _ := f.svc.CompletedForDate(ctx, "2024-05-01")
	if len(pending) != 2 || len(completed) != 0 {
		t.Fatalf("before update: pending=%d completed=%d", len(pending), len(completed))
	}

	if _, err := f.svc.UpdateResult(ctx, a.ID, "passed"); err != nil {
		t.Fatalf("UpdateResult: %v", err)
	}

	pending, _ = f.svc.PendingForDate(ctx, "2024-05-01")
	completed, _ = f.svc.CompletedForDate(ctx, "2024-05-01")
	if len(pending) != 1 || pending[0].ID != b.ID {
		t.Fatalf("expected only booking %d pending, got %+v", b.ID, pending)
	}
	if len(completed) != 1 || completed[0].ID != a.ID {
		t.Fatalf("expected only booking %d completed, got %+v", a.ID, completed)
	}

	if _, err := f.svc.PendingForDate(ctx, "2024-13-01"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for malformed date, got %v", err)
	}
}

func TestBookingService_ResultsForDate(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	mustBook(t, f.svc, 1, "2024-05-01")
	mustBook(t, f.svc, 2, "2024-05-01")
	passed := mustBook(t, f.svc, 3, "2024-05-01")
	absent := mustBook(t, f.svc, 4, "2024-05-01")
	mustBook(t, f.svc, 5, "2024-05-03")
	if _, err := f.svc.UpdateResult(ctx, passed.ID, "passed"); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := f.svc.UpdateResult(ctx, absent.ID, "absent"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	rb, err := f.svc.ResultsForDate(ctx, "2024-05-01")
	if err != nil {
		t.Fatalf("ResultsForDate: %v", err)
	}
	if rb.Total != 4 {
		t.Fatalf("expected total 4, got %d", rb.Total)
	}
	want := map[domain.Result]int{
		domain.ResultPending: 2,
		domain.ResultPassed:  1,
		domain.ResultFailed:  0,
		domain.ResultAbsent:  1,
	}
	for r, n := range want {
		if rb.Count(r) != n {
			t.Fatalf("expected %d %s, got %d", n, r, rb.Count(r))
		}
		if rb.Buckets[r] == nil {
			t.Fatalf("expected bucket %s to be present", r)
		}
	}
}

func TestBookingService_ResultsForDate_Empty(t *testing.T) {
	f := newBookingFixture()

	rb, err := f.svc.ResultsForDate(context.Background(), "2030-01-01")
	if err != nil {
		t.Fatalf("ResultsForDate: %v", err)
	}
	if rb.Total != 0 || len(rb.Buckets) != 4 {
		t.Fatalf("expected four empty buckets, got %+v", rb)
	}
}

func TestBookingService_ListByLearner(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	if _, err := f.learners.Create(ctx, &domain.LearnerProfile{UserID: 1, LearnerStatus: domain.LearnerStatusPending}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := f.learners.Create(ctx, &domain.LearnerProfile{UserID: 2, LearnerStatus: domain.LearnerStatusPending}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	mustBook(t, f.svc, 1, "2024-05-01")
	mustBook(t, f.svc, 1, "2024-05-08")

	got, err := f.svc.ListByLearner(ctx, 1)
	if err != nil || len(got) != 2 {
		t.Fatalf("expected 2 bookings, got %d, %v", len(got), err)
	}

	got, err = f.svc.ListByLearner(ctx, 2)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list for learner without bookings, got %d, %v", len(got), err)
	}

	if _, err := f.svc.ListByLearner(ctx, 3); !errors.Is(err, domain.ErrLearnerProfileNotFound) {
		t.Fatalf("expected ErrLearnerProfileNotFound, got %v", err)
	}
}

func TestBookingService_ListByLearner_WithoutProfile(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	b := mustBook(t, f.svc, 42, "2024-05-01")

	got, err := f.svc.ListByLearner(ctx, 42)
	if err != nil {
		t.Fatalf("ListByLearner: %v", err)
	}
	if len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("expected booking %d for learner 42, got %+v", b.ID, got)
	}
}

func TestBookingService_Delete(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	b := mustBook(t, f.svc, 1, "2024-05-01")

	if err := f.svc.DeleteBooking(ctx, b.ID); err != nil {
		t.Fatalf("DeleteBooking: %v", err)
	}
	if _, err := f.svc.GetBooking(ctx, b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := f.svc.DeleteBooking(ctx, b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestBookingService_Create_WithoutIdempotencyStore(t *testing.T) {
	svc := NewBookingService(newStubBookingRepo(), newStubLearnerRepo(), nil, zerolog.Nop())
	in := ports.CreateBookingInput{LearnerID: 1, InstructorID: 2, StationID: 3, TestDate: "2024-05-01", IdempotencyKey: "k"}

	first, err := svc.CreateBooking(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	second, err := svc.CreateBooking(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if second.AlreadyExisted || first.Booking.ID == second.Booking.ID {
		t.Fatalf("keys must be ignored without a store")
	}
}
