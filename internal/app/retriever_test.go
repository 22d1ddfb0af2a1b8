package app_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"hotel_voice/internal/app"
	"hotel_voice/internal/domain"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func testDataset() *domain.Dataset {
	return &domain.Dataset{
		Rooms: []domain.Room{
			{
				Name: "Lakeview Suite", MaxGuests: 4, Speciality: "Lake balcony",
				Amenities: []domain.Amenity{
					{Key: "baby_cot_available", Value: "Yes"},
					{Key: "pool_available", Value: "Yes"},
					{Key: "gym", Value: "No"},
					{Key: "pets_allowed", Value: "NA"},
					{Key: "wifi", Value: "Yes"},
				},
			},
			{
				Name: "Garden Cottage", MaxGuests: 2, Speciality: "NA",
				Amenities: []domain.Amenity{{Key: "gym", Value: "No"}},
			},
		},
		Pricing: []domain.PricingRecord{
			{Property: "Lakeview Suite", Date: day("2024-03-01"), Price: 100},
			{Property: "Lakeview Suite", Date: day("2024-03-02"), Price: 120},
			{Property: "Lakeview Suite", Date: day("2024-03-03"), Price: 500},
			{Property: "Garden Cottage", Date: day("2024-03-01"), Price: 80},
		},
		Rules: domain.Table{
			Columns: []string{"Rule", "Details"},
			Rows:    [][]string{{"Check-in", "2 PM"}, {"Smoking", "NA"}},
		},
		StaffQueries: domain.Table{Columns: []string{"Question", "Answer"}},
		Discounts: domain.Table{
			Columns: []string{"Member Type", "Discount"},
			Rows:    [][]string{{"Gold", "15%"}, {"Corporate", "NA"}},
		},
	}
}

func ptr[T any](v T) *T { return &v }

func TestCalculatePrice(t *testing.T) {
	ds := testDataset()
	tests := []struct {
		name, room, in, out, want string
	}{
		{"half open range", "Lakeview Suite", "2024-03-01", "2024-03-03",
			"The total price for Lakeview Suite from 2024-03-01 to 2024-03-03 (2 nights) is 220."},
		{"case insensitive", "lakeview suite", "2024-03-02", "2024-03-03",
			"The total price for lakeview suite from 2024-03-02 to 2024-03-03 (1 nights) is 120."},
		{"gaps not reconciled", "Garden Cottage", "2024-03-01", "2024-03-04",
			"The total price for Garden Cottage from 2024-03-01 to 2024-03-04 (3 nights) is 80."},
		{"no match", "Garden Cottage", "2025-01-01", "2025-01-02",
			"No pricing found for Garden Cottage between 2025-01-01 and 2025-01-02."},
		{"bad date", "Lakeview Suite", "01/03/2024", "2024-03-03",
			"Invalid check-in or check-out date format. Please use YYYY-MM-DD."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := app.CalculatePrice(ds, tt.room, tt.in, tt.out); got != tt.want {
				t.Fatalf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestRetrieve_Booking(t *testing.T) {
	r := app.NewRetriever(testDataset(), "Formi Resorts")

	got, err := r.Retrieve(domain.RetrieveQuery{Intent: domain.IntentBooking, GuestCount: ptr(3)})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := "Room: Lakeview Suite, Max Guests: 4, Amenities: Baby Cot Available: Yes, Pool Available: Yes, Speciality: Lake balcony"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}

	got, _ = r.Retrieve(domain.RetrieveQuery{Intent: domain.IntentBooking, GuestCount: ptr(1)})
	if !strings.Contains(got, "Room: Garden Cottage, Max Guests: 2, Amenities: None, Speciality: NA") {
		t.Fatalf("expected cottage line with no amenities, got %q", got)
	}
}

func TestRetrieve_BookingWithQuote(t *testing.T) {
	r := app.NewRetriever(testDataset(), "Formi Resorts")
	got, err := r.Retrieve(domain.RetrieveQuery{
		Intent: domain.IntentBooking, GuestCount: ptr(4),
		RoomName: "Lakeview Suite", CheckIn: "2024-03-01", CheckOut: "2024-03-03",
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !strings.HasSuffix(got, "\n\nThe total price for Lakeview Suite from 2024-03-01 to 2024-03-03 (2 nights) is 220.") {
		t.Fatalf("quote missing: %q", got)
	}
}

func TestRetrieve_BookingNeedsGuests(t *testing.T) {
	r := app.NewRetriever(testDataset(), "Formi Resorts")
	for _, g := range []*int{nil, ptr(0)} {
		_, err := r.Retrieve(domain.RetrieveQuery{Intent: domain.IntentBooking, GuestCount: g})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	}
}

func TestRetrieve_Tables(t *testing.T) {
	r := app.NewRetriever(testDataset(), "Formi Resorts")

	got, _ := r.Retrieve(domain.RetrieveQuery{Intent: domain.IntentPolicy})
	if want := "Rule: Check-in\nDetails: 2 PM\n\nRule: Smoking"; got != want {
		t.Fatalf("policy: got %q want %q", got, want)
	}

	got, _ = r.Retrieve(domain.RetrieveQuery{Intent: domain.IntentStaff})
	if got != "No staff queries available." {
		t.Fatalf("staff: got %q", got)
	}

	got, _ = r.Retrieve(domain.RetrieveQuery{Intent: domain.IntentDiscount})
	if want := "Member Type: Gold, Discount: 15%\nMember Type: Corporate, Discount: NA"; got != want {
		t.Fatalf("discount: got %q want %q", got, want)
	}

	got, _ = r.Retrieve(domain.RetrieveQuery{Intent: "weather"})
	if !strings.HasPrefix(got, "I can provide information about rooms") || !strings.Contains(got, "Formi Resorts") {
		t.Fatalf("general: got %q", got)
	}
}

func TestRetrieve_EmptyRulesAndMissingDiscountColumns(t *testing.T) {
	ds := testDataset()
	ds.Rules = domain.Table{}
	ds.Discounts = domain.Table{Columns: []string{"Tier"}, Rows: [][]string{{"Gold"}}}
	r := app.NewRetriever(ds, "Formi Resorts")

	if got, _ := r.Retrieve(domain.RetrieveQuery{Intent: domain.IntentPolicy}); got != "No hotel rules available." {
		t.Fatalf("policy: got %q", got)
	}
	if got, _ := r.Retrieve(domain.RetrieveQuery{Intent: domain.IntentDiscount}); got != "No discount information available." {
		t.Fatalf("discount: got %q", got)
	}
}
