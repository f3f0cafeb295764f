package search

import (
	"context"
	"testing"

	"github.com/ishare-cloud/listmatch/internal/domain/criteria"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
)

// --- Mocks ---

type mockRepo struct {
	listings []listing.Listing
	err      error
	calls    int
}

func (m *mockRepo) ListByDomain(_ context.Context, _ listing.Domain) ([]listing.Listing, error) {
	m.calls++
	return m.listings, m.err
}

// --- Fixtures ---

func car(id, title, address string, price float64, opts ...func(*listing.Listing)) listing.Listing {
	l := listing.Listing{
		ID:          id,
		Domain:      listing.Transport,
		Title:       title,
		Address:     address,
		PricePerDay: price,
		Rating:      4.0,
		Status:      "ACTIVE",
		Transport: &listing.TransportAttrs{
			VehicleType:  "Car",
			Brand:        "Toyota",
			Model:        "Vios",
			Year:         2022,
			Transmission: "Automatic",
			Seats:        5,
		},
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

func withStatus(status string) func(*listing.Listing) {
	return func(l *listing.Listing) { l.Status = status }
}

func withRating(r float64) func(*listing.Listing) {
	return func(l *listing.Listing) { l.Rating = r }
}

func withVehicle(vehicleType, brand, model string) func(*listing.Listing) {
	return func(l *listing.Listing) {
		l.Transport.VehicleType = vehicleType
		l.Transport.Brand = brand
		l.Transport.Model = model
	}
}

func stay(id, title, address string, price float64, propertyType string, guests int) listing.Listing {
	return listing.Listing{
		ID:          id,
		Domain:      listing.Accommodation,
		Title:       title,
		Address:     address,
		PricePerDay: price,
		Rating:      4.5,
		Status:      "ACTIVE",
		Accommodation: &listing.AccommodationAttrs{
			PropertyType: propertyType,
			MaxGuests:    guests,
		},
	}
}

func gear(id, title string, price float64, category, condition string) listing.Listing {
	return listing.Listing{
		ID:          id,
		Domain:      listing.Item,
		Title:       title,
		Address:     "George Town, Penang",
		PricePerDay: price,
		Rating:      4.2,
		Status:      "ACTIVE",
		Item: &listing.ItemAttrs{
			Category:  category,
			Condition: condition,
		},
	}
}

func transportSet(t *testing.T, in criteria.TransportInput) criteria.Set {
	t.Helper()
	set, err := criteria.NewTransport(in)
	if err != nil {
		t.Fatalf("criteria.NewTransport: %v", err)
	}
	return set
}

func itemSet(t *testing.T, in criteria.ItemInput) criteria.Set {
	t.Helper()
	set, err := criteria.NewItem(in)
	if err != nil {
		t.Fatalf("criteria.NewItem: %v", err)
	}
	return set
}

func strPtr(s string) *string { return &s }
func fPtr(f float64) *float64 { return &f }
func intPtr(i int) *int       { return &i }
