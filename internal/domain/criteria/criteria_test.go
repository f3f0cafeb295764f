package criteria

import (
	"errors"
	"math"
	"testing"

	"github.com/ishare-cloud/listmatch/internal/domain"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
)

func strPtr(s string) *string { return &s }
func fPtr(f float64) *float64 { return &f }
func intPtr(i int) *int       { return &i }

func TestNewTransport_AllAbsent(t *testing.T) {
	set, err := NewTransport(TransportInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !set.IsEmpty() {
		t.Errorf("expected empty set, got fields %v", set.Fields())
	}
	if set.Domain() != listing.Transport {
		t.Errorf("expected transport domain, got %s", set.Domain())
	}
}

func TestNewTransport_Normalizes(t *testing.T) {
	set, err := NewTransport(TransportInput{
		Location:    strPtr("  Kuala Lumpur  "),
		VehicleType: strPtr("CAR"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loc, ok := set.Condition(FieldLocation)
	if !ok {
		t.Fatal("expected location condition")
	}
	if loc.Text() != "kuala lumpur" {
		t.Errorf("expected trimmed lower-case location, got %q", loc.Text())
	}
	if loc.Kind() != Contains {
		t.Errorf("expected Contains kind for location, got %v", loc.Kind())
	}

	vt, _ := set.Condition(FieldVehicleType)
	if vt.Text() != "car" {
		t.Errorf("expected lower-case vehicle type, got %q", vt.Text())
	}
	if vt.Kind() != Equals {
		t.Errorf("expected Equals kind for vehicle type, got %v", vt.Kind())
	}
}

func TestNewTransport_BlankIsAbsent(t *testing.T) {
	set, err := NewTransport(TransportInput{
		Brand: strPtr("   "),
		Model: strPtr(""),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Has(FieldBrand) || set.Has(FieldModel) {
		t.Errorf("blank strings must not become constraints, got %v", set.Fields())
	}
}

func TestNewTransport_NegativePrice(t *testing.T) {
	_, err := NewTransport(TransportInput{MaxPricePerDay: fPtr(-10)})
	if !errors.Is(err, domain.ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria, got %v", err)
	}
}

func TestNewTransport_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := NewTransport(TransportInput{MinRating: fPtr(v)}); !errors.Is(err, domain.ErrInvalidCriteria) {
			t.Errorf("value %v: expected ErrInvalidCriteria, got %v", v, err)
		}
	}
}

func TestNewTransport_NumericKinds(t *testing.T) {
	set, err := NewTransport(TransportInput{
		MaxPricePerDay: fPtr(200),
		MinYear:        intPtr(2020),
		MinRating:      fPtr(4),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	price, _ := set.Condition(FieldMaxPricePerDay)
	if price.Kind() != Ceiling || price.Number() != 200 {
		t.Errorf("expected Ceiling 200, got %v %v", price.Kind(), price.Number())
	}
	year, _ := set.Condition(FieldMinYear)
	if year.Kind() != Floor || year.Number() != 2020 {
		t.Errorf("expected Floor 2020, got %v %v", year.Kind(), year.Number())
	}
}

func TestNewAccommodation_Fields(t *testing.T) {
	set, err := NewAccommodation(AccommodationInput{
		PropertyType: strPtr("Villa"),
		MinGuests:    intPtr(4),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Domain() != listing.Accommodation {
		t.Errorf("expected accommodation domain, got %s", set.Domain())
	}
	if !set.Has(FieldPropertyType) || !set.Has(FieldMinGuests) {
		t.Errorf("expected property type and min guests, got %v", set.Fields())
	}
}

func TestNewItem_KeywordIsContains(t *testing.T) {
	set, err := NewItem(ItemInput{Keyword: strPtr("Drill")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kw, ok := set.Condition(FieldKeyword)
	if !ok {
		t.Fatal("expected keyword condition")
	}
	if kw.Kind() != Contains || kw.Text() != "drill" {
		t.Errorf("expected Contains %q, got %v %q", "drill", kw.Kind(), kw.Text())
	}
}

func TestSet_Without(t *testing.T) {
	set, err := NewTransport(TransportInput{
		Location:  strPtr("penang"),
		Brand:     strPtr("toyota"),
		MinRating: fPtr(4),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reduced := set.Without(map[Field]bool{FieldBrand: true})
	if reduced.Has(FieldBrand) {
		t.Error("brand should be dropped")
	}
	if !reduced.Has(FieldLocation) || !reduced.Has(FieldMinRating) {
		t.Errorf("other fields must survive, got %v", reduced.Fields())
	}
	if !set.Has(FieldBrand) {
		t.Error("original set must be unchanged")
	}
}

func TestField_Label(t *testing.T) {
	cases := map[Field]string{
		FieldMaxPricePerDay: "price per day",
		FieldMinRating:      "rating",
		FieldVehicleType:    "vehicle type",
		FieldLocation:       "location",
	}
	for f, want := range cases {
		if got := f.Label(); got != want {
			t.Errorf("%s: expected label %q, got %q", f, want, got)
		}
	}
}

func TestDomainFields_CoverEveryDomain(t *testing.T) {
	for _, d := range []listing.Domain{listing.Transport, listing.Accommodation, listing.Item} {
		if len(DomainFields(d)) == 0 {
			t.Errorf("no fields registered for %s", d)
		}
	}
	if DomainFields("OTHER") != nil {
		t.Error("unknown domain must have no fields")
	}
}
