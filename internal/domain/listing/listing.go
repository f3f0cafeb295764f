package listing

import (
	"fmt"
	"math"
	"strings"

	"github.com/ishare-cloud/listmatch/internal/domain"
)

// Domain identifies the listing category served by a search.
type Domain string

const (
	// Transport covers rental vehicles.
	Transport Domain = "TRANSPORT"
	// Accommodation covers places to stay.
	Accommodation Domain = "ACCOMMODATION"
	// Item covers miscellaneous rentable items.
	Item Domain = "ITEM"
)

// ParseDomain maps a caller-supplied domain string to a Domain.
func ParseDomain(s string) (Domain, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Transport):
		return Transport, nil
	case string(Accommodation):
		return Accommodation, nil
	case string(Item):
		return Item, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownDomain, s)
	}
}

// Noun returns the word used for this domain in summary messages.
func (d Domain) Noun() string {
	switch d {
	case Transport:
		return "vehicle"
	case Accommodation:
		return "accommodation"
	case Item:
		return "item"
	default:
		return "listing"
	}
}

// Word returns the lower-case domain name for messages and metric labels.
func (d Domain) Word() string { return strings.ToLower(string(d)) }

// Listing is an immutable record supplied by the external data source.
// Exactly one attribute bag matching Domain must be populated.
type Listing struct {
	ID          string
	Domain      Domain
	Title       string
	Description string
	Address     string
	PricePerDay float64
	Rating      float64
	Status      string
	Images      []string

	Transport     *TransportAttrs
	Accommodation *AccommodationAttrs
	Item          *ItemAttrs
}

// TransportAttrs holds vehicle-specific listing attributes.
type TransportAttrs struct {
	VehicleType  string
	Brand        string
	Model        string
	Year         int
	Transmission string
	FuelType     string
	Seats        int
	LicensePlate string
}

// AccommodationAttrs holds lodging-specific listing attributes.
type AccommodationAttrs struct {
	PropertyType  string
	MaxGuests     int
	BedCount      int
	RoomCount     int
	BathroomCount int
	Amenities     []string
}

// ItemAttrs holds attributes for miscellaneous rentable items.
type ItemAttrs struct {
	Category       string
	Condition      string
	Brand          string
	Model          string
	DeliveryMethod string
}

// Validate checks the record for domain-required fields. A violation is a
// data-integrity fault of the external source, not a "no results" condition.
func (l *Listing) Validate() error {
	if l.ID == "" {
		return domain.NewIntegrityError("", "missing listing id")
	}
	if l.Title == "" {
		return domain.NewIntegrityError(l.ID, "missing title")
	}
	if math.IsNaN(l.PricePerDay) || math.IsInf(l.PricePerDay, 0) || l.PricePerDay < 0 {
		return domain.NewIntegrityError(l.ID, fmt.Sprintf("invalid price %v", l.PricePerDay))
	}
	switch l.Domain {
	case Transport:
		if l.Transport == nil {
			return domain.NewIntegrityError(l.ID, "transport listing without vehicle attributes")
		}
	case Accommodation:
		if l.Accommodation == nil {
			return domain.NewIntegrityError(l.ID, "accommodation listing without property attributes")
		}
	case Item:
		if l.Item == nil {
			return domain.NewIntegrityError(l.ID, "item listing without item attributes")
		}
	default:
		return domain.NewIntegrityError(l.ID, fmt.Sprintf("unknown domain %q", l.Domain))
	}
	return nil
}

// SearchText returns the keyword-searchable text of the listing.
func (l *Listing) SearchText() string {
	return l.Title + " " + l.Description
}
