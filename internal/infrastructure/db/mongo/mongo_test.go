package mongo

import (
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

func duplicateKeyError(index string) error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: license_db.users index: " + index + " dup key: { username: \"alice\" }",
	}}}
}

func TestIsDuplicate(t *testing.T) {
	err := duplicateKeyError(indexUsername)

	if !isDuplicate(err, indexUsername) {
		t.Fatalf("expected duplicate on %s", indexUsername)
	}
	if isDuplicate(err, indexEmail) {
		t.Fatalf("did not expect duplicate on %s", indexEmail)
	}
	if isDuplicate(errors.New("uniq_username"), indexUsername) {
		t.Fatalf("plain errors are not duplicate-key errors")
	}
}

func TestNotFound(t *testing.T) {
	if err := notFound(mongo.ErrNoDocuments, domain.ErrBookingNotFound); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	other := errors.New("boom")
	if err := notFound(other, domain.ErrBookingNotFound); err != other {
		t.Fatalf("expected other errors to pass through, got %v", err)
	}
}

func TestBookingFilter(t *testing.T) {
	learner := int64(4)
	cases := []struct {
		name string
		in   ports.BookingFilter
		want bson.M
	}{
		{"empty", ports.BookingFilter{}, bson.M{}},
		{"learner", ports.BookingFilter{LearnerID: &learner}, bson.M{"learner_id": int64(4)}},
		{
			"pending for date",
			ports.BookingFilter{TestDate: "2024-05-01", Result: domain.ResultPending},
			bson.M{"test_date": "2024-05-01", "result": domain.ResultPending},
		},
		{
			"completed for date",
			ports.BookingFilter{TestDate: "2024-05-01", NotResult: domain.ResultPending},
			bson.M{"test_date": "2024-05-01", "result": bson.M{"$ne": domain.ResultPending}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := bookingFilter(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("bookingFilter = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBookingSet_OnlyPatchedFields(t *testing.T) {
	r := domain.ResultAbsent
	code := "C1"
	set := bookingSet(domain.BookingPatch{Result: &r, LicenseCode: &code})

	want := bson.M{"result": domain.ResultAbsent, "license_code": "C1"}
	if !reflect.DeepEqual(set, want) {
		t.Fatalf("bookingSet = %v, want %v", set, want)
	}
}
