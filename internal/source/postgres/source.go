// Package postgres reads listings directly from a Postgres listings table,
// for deployments that skip the backend HTTP API.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/ishare-cloud/listmatch/internal/domain"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
)

// Source reads the listings table via database/sql + lib/pq.
type Source struct {
	db     *sql.DB
	logger *zap.Logger
}

// New opens a connection pool and verifies connectivity.
func New(dsn string, logger *zap.Logger) (*Source, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}

	logger.Info("connected to postgres listing source")
	return &Source{db: db, logger: logger}, nil
}

// Close releases the connection pool.
func (s *Source) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}
	return nil
}

// Ping checks source reachability.
func (s *Source) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	return nil
}

const listQuery = `
SELECT id, title, description, COALESCE(address, ''), base_price,
       COALESCE(average_rating, 0), status, COALESCE(images, '{}'),
       COALESCE(vehicle_type, ''), COALESCE(brand, ''), COALESCE(model, ''),
       COALESCE(year, 0), COALESCE(transmission, ''), COALESCE(fuel_type, ''),
       COALESCE(seats, 0), COALESCE(license_plate, ''),
       COALESCE(property_type, ''), COALESCE(max_guests, 0),
       COALESCE(bed_count, 0), COALESCE(room_count, 0),
       COALESCE(bathroom_count, 0), COALESCE(amenities, '{}'),
       COALESCE(category, ''), COALESCE(condition, ''),
       COALESCE(delivery_method, '')
FROM listings
WHERE type = $1`

// ListByDomain reads all listings of the given domain.
func (s *Source) ListByDomain(ctx context.Context, d listing.Domain) ([]listing.Listing, error) {
	rows, err := s.db.QueryContext(ctx, listQuery, string(d))
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []listing.Listing
	for rows.Next() {
		l, err := scanListing(rows, d)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}

	s.logger.Debug("read listings from postgres",
		zap.String("domain", d.Word()),
		zap.Int("count", len(out)),
	)
	return out, nil
}

func scanListing(rows *sql.Rows, d listing.Domain) (listing.Listing, error) {
	var (
		l         listing.Listing
		images    pq.StringArray
		amenities pq.StringArray
		transport listing.TransportAttrs
		accom     listing.AccommodationAttrs
		item      listing.ItemAttrs
	)

	err := rows.Scan(
		&l.ID, &l.Title, &l.Description, &l.Address, &l.PricePerDay,
		&l.Rating, &l.Status, &images,
		&transport.VehicleType, &transport.Brand, &transport.Model,
		&transport.Year, &transport.Transmission, &transport.FuelType,
		&transport.Seats, &transport.LicensePlate,
		&accom.PropertyType, &accom.MaxGuests,
		&accom.BedCount, &accom.RoomCount, &accom.BathroomCount, &amenities,
		&item.Category, &item.Condition, &item.DeliveryMethod,
	)
	if err != nil {
		return listing.Listing{}, fmt.Errorf("scan listing: %w", err)
	}

	l.Domain = d
	l.Images = images
	switch d {
	case listing.Transport:
		l.Transport = &transport
	case listing.Accommodation:
		accom.Amenities = amenities
		l.Accommodation = &accom
	case listing.Item:
		item.Brand = transport.Brand
		item.Model = transport.Model
		l.Item = &item
	}

	return l, nil
}
