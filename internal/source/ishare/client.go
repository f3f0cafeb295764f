// Package ishare fetches listings from the iShare backend HTTP API.
package ishare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ishare-cloud/listmatch/internal/domain"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
)

// Config holds connection parameters for the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the iShare listings endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a backend client.
func New(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// ListByDomain fetches all listings and keeps those of the requested domain.
// The backend exposes a single /listings collection; type filtering happens
// client-side.
func (c *Client) ListByDomain(ctx context.Context, d listing.Domain) ([]listing.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/listings", nil)
	if err != nil {
		return nil, fmt.Errorf("build listings request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: backend returned %s", domain.ErrSourceUnavailable, resp.Status)
	}

	var dtos []listingDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("decode listings response: %w", err)
	}

	out := make([]listing.Listing, 0, len(dtos))
	for _, dto := range dtos {
		if !strings.EqualFold(dto.Type, string(d)) {
			continue
		}
		out = append(out, dto.toDomain(d))
	}

	c.logger.Debug("fetched listings from backend",
		zap.String("domain", d.Word()),
		zap.Int("total", len(dtos)),
		zap.Int("matching", len(out)),
	)
	return out, nil
}

// Ping checks backend reachability.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/listings", nil)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: backend returned %s", domain.ErrSourceUnavailable, resp.Status)
	}
	return nil
}

// listingDTO mirrors the backend's listing JSON shape.
type listingDTO struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	BasePrice     float64  `json:"basePrice"`
	AverageRating float64  `json:"averageRating"`
	Status        string   `json:"status"`
	Address       string   `json:"address"`
	Images        []string `json:"images"`

	VehicleType  string `json:"vehicleType"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Transmission string `json:"transmission"`
	FuelType     string `json:"fuelType"`
	Seats        int    `json:"seats"`
	LicensePlate string `json:"licensePlate"`

	PropertyType  string   `json:"propertyType"`
	MaxGuests     int      `json:"maxGuests"`
	BedCount      int      `json:"bedCount"`
	RoomCount     int      `json:"roomCount"`
	BathroomCount int      `json:"bathroomCount"`
	Amenities     []string `json:"amenities"`

	Category       string `json:"category"`
	Condition      string `json:"condition"`
	DeliveryMethod string `json:"deliveryMethod"`
}

func (d listingDTO) toDomain(dom listing.Domain) listing.Listing {
	l := listing.Listing{
		ID:          d.ID,
		Domain:      dom,
		Title:       d.Title,
		Description: d.Description,
		Address:     d.Address,
		PricePerDay: d.BasePrice,
		Rating:      d.AverageRating,
		Status:      d.Status,
		Images:      d.Images,
	}

	switch dom {
	case listing.Transport:
		l.Transport = &listing.TransportAttrs{
			VehicleType:  d.VehicleType,
			Brand:        d.Brand,
			Model:        d.Model,
			Year:         d.Year,
			Transmission: d.Transmission,
			FuelType:     d.FuelType,
			Seats:        d.Seats,
			LicensePlate: d.LicensePlate,
		}
	case listing.Accommodation:
		l.Accommodation = &listing.AccommodationAttrs{
			PropertyType:  d.PropertyType,
			MaxGuests:     d.MaxGuests,
			BedCount:      d.BedCount,
			RoomCount:     d.RoomCount,
			BathroomCount: d.BathroomCount,
			Amenities:     d.Amenities,
		}
	case listing.Item:
		l.Item = &listing.ItemAttrs{
			Category:       d.Category,
			Condition:      d.Condition,
			Brand:          d.Brand,
			Model:          d.Model,
			DeliveryMethod: d.DeliveryMethod,
		}
	}

	return l
}
