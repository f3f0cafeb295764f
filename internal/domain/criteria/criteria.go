// Package criteria models per-domain search criteria as typed optional
// fields. An absent field never excludes a listing; every present field is
// validated independently before evaluation.
package criteria

import (
	"fmt"
	"math"
	"strings"

	"github.com/ishare-cloud/listmatch/internal/domain"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
)

// Field names a single filter criterion.
type Field string

const (
	FieldLocation       Field = "location"
	FieldMaxPricePerDay Field = "max_price_per_day"
	FieldMinRating      Field = "min_rating"
	FieldKeyword        Field = "keyword"

	FieldVehicleType Field = "vehicle_type"
	FieldBrand       Field = "brand"
	FieldModel       Field = "model"
	FieldMinYear     Field = "min_year"

	FieldPropertyType Field = "property_type"
	FieldMinGuests    Field = "min_guests"

	FieldCategory  Field = "category"
	FieldCondition Field = "condition"
)

// Label returns the human-readable form used in summary messages.
func (f Field) Label() string {
	return strings.ReplaceAll(strings.TrimPrefix(strings.TrimPrefix(string(f), "max_"), "min_"), "_", " ")
}

// Kind is the comparison rule a condition applies.
type Kind int

const (
	// Ceiling passes when the listing value is <= the criterion.
	Ceiling Kind = iota + 1
	// Floor passes when the listing value is >= the criterion.
	Floor
	// Equals passes on case-insensitive exact equality.
	Equals
	// Contains passes on case-insensitive substring match.
	Contains
)

// Condition is a single validated criterion.
type Condition struct {
	field Field
	kind  Kind
	text  string
	num   float64
}

// Field returns the criterion name.
func (c Condition) Field() Field { return c.field }

// Kind returns the comparison rule.
func (c Condition) Kind() Kind { return c.kind }

// Text returns the normalized string value for Equals/Contains conditions.
func (c Condition) Text() string { return c.text }

// Number returns the numeric bound for Ceiling/Floor conditions.
func (c Condition) Number() float64 { return c.num }

// Set is a validated, immutable criteria set for one listing domain.
type Set struct {
	domain listing.Domain
	conds  []Condition
}

// Domain returns the listing domain this set targets.
func (s Set) Domain() listing.Domain { return s.domain }

// Conditions returns the present criteria in declaration order.
func (s Set) Conditions() []Condition { return s.conds }

// IsEmpty reports whether no criterion is present.
func (s Set) IsEmpty() bool { return len(s.conds) == 0 }

// Fields returns the names of all present criteria.
func (s Set) Fields() []Field {
	out := make([]Field, len(s.conds))
	for i, c := range s.conds {
		out[i] = c.field
	}
	return out
}

// Has reports whether the named criterion is present.
func (s Set) Has(f Field) bool {
	for _, c := range s.conds {
		if c.field == f {
			return true
		}
	}
	return false
}

// Condition returns the named condition, if present.
func (s Set) Condition(f Field) (Condition, bool) {
	for _, c := range s.conds {
		if c.field == f {
			return c, true
		}
	}
	return Condition{}, false
}

// Without returns a copy of the set with the given fields removed.
func (s Set) Without(drop map[Field]bool) Set {
	kept := make([]Condition, 0, len(s.conds))
	for _, c := range s.conds {
		if !drop[c.field] {
			kept = append(kept, c)
		}
	}
	return Set{domain: s.domain, conds: kept}
}

// TransportInput holds raw caller-supplied transport criteria.
// Nil pointers mean "no constraint".
type TransportInput struct {
	Location       *string
	MaxPricePerDay *float64
	VehicleType    *string
	Brand          *string
	Model          *string
	MinYear        *int
	MinRating      *float64
}

// NewTransport validates transport criteria into a Set.
func NewTransport(in TransportInput) (Set, error) {
	b := builder{domain: listing.Transport}
	b.text(FieldLocation, Contains, in.Location)
	b.number(FieldMaxPricePerDay, Ceiling, floatVal(in.MaxPricePerDay))
	b.text(FieldVehicleType, Equals, in.VehicleType)
	b.text(FieldBrand, Equals, in.Brand)
	b.text(FieldModel, Equals, in.Model)
	b.number(FieldMinYear, Floor, intVal(in.MinYear))
	b.number(FieldMinRating, Floor, floatVal(in.MinRating))
	return b.build()
}

// AccommodationInput holds raw caller-supplied accommodation criteria.
type AccommodationInput struct {
	Location       *string
	MaxPricePerDay *float64
	PropertyType   *string
	MinGuests      *int
	MinRating      *float64
}

// NewAccommodation validates accommodation criteria into a Set.
func NewAccommodation(in AccommodationInput) (Set, error) {
	b := builder{domain: listing.Accommodation}
	b.text(FieldLocation, Contains, in.Location)
	b.number(FieldMaxPricePerDay, Ceiling, floatVal(in.MaxPricePerDay))
	b.text(FieldPropertyType, Equals, in.PropertyType)
	b.number(FieldMinGuests, Floor, intVal(in.MinGuests))
	b.number(FieldMinRating, Floor, floatVal(in.MinRating))
	return b.build()
}

// ItemInput holds raw caller-supplied item criteria.
type ItemInput struct {
	Location       *string
	MaxPricePerDay *float64
	Category       *string
	Condition      *string
	Keyword        *string
	MinRating      *float64
}

// NewItem validates item criteria into a Set.
func NewItem(in ItemInput) (Set, error) {
	b := builder{domain: listing.Item}
	b.text(FieldLocation, Contains, in.Location)
	b.number(FieldMaxPricePerDay, Ceiling, floatVal(in.MaxPricePerDay))
	b.text(FieldCategory, Equals, in.Category)
	b.text(FieldCondition, Equals, in.Condition)
	b.text(FieldKeyword, Contains, in.Keyword)
	b.number(FieldMinRating, Floor, floatVal(in.MinRating))
	return b.build()
}

// DomainFields returns the criteria fields known for a domain, used to
// validate configured relaxation orders.
func DomainFields(d listing.Domain) []Field {
	switch d {
	case listing.Transport:
		return []Field{
			FieldLocation, FieldMaxPricePerDay, FieldVehicleType,
			FieldBrand, FieldModel, FieldMinYear, FieldMinRating,
		}
	case listing.Accommodation:
		return []Field{
			FieldLocation, FieldMaxPricePerDay, FieldPropertyType,
			FieldMinGuests, FieldMinRating,
		}
	case listing.Item:
		return []Field{
			FieldLocation, FieldMaxPricePerDay, FieldCategory,
			FieldCondition, FieldKeyword, FieldMinRating,
		}
	default:
		return nil
	}
}

type builder struct {
	domain listing.Domain
	conds  []Condition
	err    error
}

// text appends a normalized string condition. A value that is nil or blank
// after trimming is treated as absent, never as a constraint.
func (b *builder) text(f Field, k Kind, v *string) {
	if b.err != nil || v == nil {
		return
	}
	norm := strings.ToLower(strings.TrimSpace(*v))
	if norm == "" {
		return
	}
	b.conds = append(b.conds, Condition{field: f, kind: k, text: norm})
}

// number appends a numeric condition, rejecting negative and non-finite values.
func (b *builder) number(f Field, k Kind, v *float64) {
	if b.err != nil || v == nil {
		return
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		b.err = fmt.Errorf("%w: %s must be a finite number", domain.ErrInvalidCriteria, f)
		return
	}
	if *v < 0 {
		b.err = fmt.Errorf("%w: %s must not be negative, got %v", domain.ErrInvalidCriteria, f, *v)
		return
	}
	b.conds = append(b.conds, Condition{field: f, kind: k, num: *v})
}

func (b *builder) build() (Set, error) {
	if b.err != nil {
		return Set{}, b.err
	}
	return Set{domain: b.domain, conds: b.conds}, nil
}

func floatVal(p *float64) *float64 { return p }

func intVal(p *int) *float64 {
	if p == nil {
		return nil
	}
	f := float64(*p)
	return &f
}
