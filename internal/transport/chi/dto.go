package chi

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ishare-cloud/listmatch/internal/domain/criteria"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
	searchuc "github.com/ishare-cloud/listmatch/internal/usecase/search"
)

// Per-domain search request bodies. Nil fields mean "no constraint".

type transportSearchRequest struct {
	Location       *string  `json:"location"`
	MaxPricePerDay *float64 `json:"maxPricePerDay"`
	VehicleType    *string  `json:"vehicleType"`
	Brand          *string  `json:"brand"`
	Model          *string  `json:"model"`
	MinYear        *int     `json:"minYear"`
	MinRating      *float64 `json:"minRating"`
}

type accommodationSearchRequest struct {
	Location       *string  `json:"location"`
	MaxPricePerDay *float64 `json:"maxPricePerDay"`
	PropertyType   *string  `json:"propertyType"`
	MinGuests      *int     `json:"minGuests"`
	MinRating      *float64 `json:"minRating"`
}

type itemSearchRequest struct {
	Location       *string  `json:"location"`
	MaxPricePerDay *float64 `json:"maxPricePerDay"`
	Category       *string  `json:"category"`
	Condition      *string  `json:"condition"`
	Keyword        *string  `json:"keyword"`
	MinRating      *float64 `json:"minRating"`
}

// criteriaFromRequest decodes the per-domain request body into a validated
// criteria set. An empty body means "no constraints".
func criteriaFromRequest(d listing.Domain, body io.Reader) (criteria.Set, error) {
	dec := json.NewDecoder(body)

	switch d {
	case listing.Transport:
		var req transportSearchRequest
		if err := decodeBody(dec, &req); err != nil {
			return criteria.Set{}, err
		}
		return criteria.NewTransport(criteria.TransportInput{
			Location:       req.Location,
			MaxPricePerDay: req.MaxPricePerDay,
			VehicleType:    req.VehicleType,
			Brand:          req.Brand,
			Model:          req.Model,
			MinYear:        req.MinYear,
			MinRating:      req.MinRating,
		})
	case listing.Accommodation:
		var req accommodationSearchRequest
		if err := decodeBody(dec, &req); err != nil {
			return criteria.Set{}, err
		}
		return criteria.NewAccommodation(criteria.AccommodationInput{
			Location:       req.Location,
			MaxPricePerDay: req.MaxPricePerDay,
			PropertyType:   req.PropertyType,
			MinGuests:      req.MinGuests,
			MinRating:      req.MinRating,
		})
	case listing.Item:
		var req itemSearchRequest
		if err := decodeBody(dec, &req); err != nil {
			return criteria.Set{}, err
		}
		return criteria.NewItem(criteria.ItemInput{
			Location:       req.Location,
			MaxPricePerDay: req.MaxPricePerDay,
			Category:       req.Category,
			Condition:      req.Condition,
			Keyword:        req.Keyword,
			MinRating:      req.MinRating,
		})
	default:
		return criteria.Set{}, fmt.Errorf("unsupported domain %q", d)
	}
}

func decodeBody(dec *json.Decoder, v any) error {
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// searchResponse is the external response shape: a summary message plus the
// ranked, tagged listing records.
type searchResponse struct {
	Message string       `json:"message"`
	Results []resultItem `json:"results"`
}

// resultItem carries the common listing fields plus the attribute set of
// exactly one domain.
type resultItem struct {
	ListingID   string   `json:"listingId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	PricePerDay float64  `json:"pricePerDay"`
	Images      []string `json:"images"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`

	VehicleType  *string `json:"vehicleType,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	Year         *int    `json:"year,omitempty"`
	Transmission *string `json:"transmission,omitempty"`
	FuelType     *string `json:"fuelType,omitempty"`
	Seats        *int    `json:"seats,omitempty"`
	LicensePlate *string `json:"licensePlate,omitempty"`

	PropertyType  *string   `json:"propertyType,omitempty"`
	MaxGuests     *int      `json:"maxGuests,omitempty"`
	BedCount      *int      `json:"bedCount,omitempty"`
	RoomCount     *int      `json:"roomCount,omitempty"`
	BathroomCount *int      `json:"bathroomCount,omitempty"`
	Amenities     *[]string `json:"amenities,omitempty"`

	Category       *string `json:"category,omitempty"`
	Condition      *string `json:"condition,omitempty"`
	DeliveryMethod *string `json:"deliveryMethod,omitempty"`
}

func searchResponseFromEngine(resp searchuc.Response) searchResponse {
	items := make([]resultItem, len(resp.Results))
	for i, rec := range resp.Results {
		items[i] = resultFromRecord(rec)
	}
	return searchResponse{Message: resp.Message, Results: items}
}

func resultFromRecord(rec searchuc.Record) resultItem {
	l := rec.Listing

	images := l.Images
	if images == nil {
		images = []string{}
	}

	item := resultItem{
		ListingID:   l.ID,
		Title:       l.Title,
		Description: l.Description,
		Address:     l.Address,
		PricePerDay: l.PricePerDay,
		Images:      images,
		Status:      l.Status,
		Tags:        rec.Tags,
	}

	switch {
	case l.Transport != nil:
		a := l.Transport
		item.VehicleType = &a.VehicleType
		item.Brand = &a.Brand
		item.Model = &a.Model
		item.Year = &a.Year
		item.Transmission = &a.Transmission
		item.FuelType = &a.FuelType
		item.Seats = &a.Seats
		item.LicensePlate = &a.LicensePlate
	case l.Accommodation != nil:
		a := l.Accommodation
		amenities := a.Amenities
		if amenities == nil {
			amenities = []string{}
		}
		item.PropertyType = &a.PropertyType
		item.MaxGuests = &a.MaxGuests
		item.BedCount = &a.BedCount
		item.RoomCount = &a.RoomCount
		item.BathroomCount = &a.BathroomCount
		item.Amenities = &amenities
	case l.Item != nil:
		a := l.Item
		item.Category = &a.Category
		item.Condition = &a.Condition
		item.Brand = &a.Brand
		item.Model = &a.Model
		item.DeliveryMethod = &a.DeliveryMethod
	}

	return item
}
