package search

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ishare-cloud/listmatch/internal/domain"
	"github.com/ishare-cloud/listmatch/internal/domain/criteria"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
)

func newService(repo *mockRepo) *Service {
	return New(repo, DefaultPolicy(), zap.NewNop())
}

func TestSearch_ExactMatch(t *testing.T) {
	repo := &mockRepo{listings: []listing.Listing{
		car("v1", "Toyota Vios", "Jalan Ampang, Kuala Lumpur", 120),
		car("v2", "Honda City", "Bangsar, Kuala Lumpur", 140, withVehicle("Car", "Honda", "City")),
		car("v3", "Yamaha NMax", "George Town, Penang", 45, withVehicle("Motorcycle", "Yamaha", "NMax")),
	}}
	svc := newService(repo)

	set := transportSet(t, criteria.TransportInput{
		Location:    strPtr("kuala lumpur"),
		VehicleType: strPtr("car"),
	})
	resp, err := svc.Search(context.Background(), set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Outcome != OutcomeExact {
		t.Errorf("expected exact outcome, got %s", resp.Outcome)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Message != "Found 2 vehicle(s) matching your criteria." {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if len(resp.Relaxed) != 0 {
		t.Errorf("nothing should be relaxed, got %v", resp.Relaxed)
	}
	for _, r := range resp.Results {
		if r.Listing.ID == "v3" {
			t.Error("the Penang motorcycle must not appear")
		}
	}
}

func TestSearch_RelaxationNeverReturnsEmpty(t *testing.T) {
	repo := &mockRepo{listings: []listing.Listing{
		car("v1", "Toyota Vios", "Kuala Lumpur", 120),
		car("v2", "Honda City", "Kuala Lumpur", 140, withVehicle("Car", "Honda", "City")),
	}}
	svc := newService(repo)

	// No helicopter exists anywhere.
	set := transportSet(t, criteria.TransportInput{VehicleType: strPtr("helicopter")})
	resp, err := svc.Search(context.Background(), set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Outcome != OutcomeFallback {
		t.Errorf("expected fallback outcome, got %s", resp.Outcome)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected every available listing, got %d", len(resp.Results))
	}
	if len(resp.Relaxed) != 1 || resp.Relaxed[0] != criteria.FieldVehicleType {
		t.Errorf("expected vehicle type relaxed, got %v", resp.Relaxed)
	}
	want := "No exact matches; showing closest results without filtering by vehicle type."
	if resp.Message != want {
		t.Errorf("expected message %q, got %q", want, resp.Message)
	}
	for _, r := range resp.Results {
		if !contains(r.Tags, TagClosestMatch) {
			t.Errorf("%s: expected %q tag, got %v", r.Listing.ID, TagClosestMatch, r.Tags)
		}
	}
}

func TestSearch_PartialRelaxationOutcome(t *testing.T) {
	repo := &mockRepo{listings: []listing.Listing{
		car("v1", "Toyota Vios", "Kuala Lumpur", 120),
	}}
	svc := newService(repo)

	// Location matches, model does not: only model relaxes.
	set := transportSet(t, criteria.TransportInput{
		Location: strPtr("kuala lumpur"),
		Model:    strPtr("corolla"),
	})
	resp, err := svc.Search(context.Background(), set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Outcome != OutcomeRelaxed {
		t.Errorf("expected relaxed outcome, got %s", resp.Outcome)
	}
	if len(resp.Relaxed) != 1 || resp.Relaxed[0] != criteria.FieldModel {
		t.Errorf("expected only model relaxed, got %v", resp.Relaxed)
	}
}

func TestSearch_FiltersUnavailable(t *testing.T) {
	repo := &mockRepo{listings: []listing.Listing{
		car("v1", "Toyota Vios", "Kuala Lumpur", 120),
		car("v2", "Honda City", "Kuala Lumpur", 140, withStatus("INACTIVE")),
		car("v3", "Perodua Myvi", "Kuala Lumpur", 90, withStatus("PENDING_REVIEW")),
	}}
	svc := newService(repo)

	resp, err := svc.Search(context.Background(), transportSet(t, criteria.TransportInput{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Listing.ID != "v1" {
		t.Fatalf("expected only the active listing, got %d results", len(resp.Results))
	}
}

func TestSearch_EmptyDomain(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo)

	resp, err := svc.Search(context.Background(), transportSet(t, criteria.TransportInput{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Outcome != OutcomeEmpty {
		t.Errorf("expected empty outcome, got %s", resp.Outcome)
	}
	if resp.Message != "No transport listings are currently available." {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected no results, got %d", len(resp.Results))
	}
}

func TestSearch_AllCriteriaAbsent(t *testing.T) {
	repo := &mockRepo{listings: []listing.Listing{
		car("v1", "Toyota Vios", "Kuala Lumpur", 120),
		car("v2", "Honda City", "Kuala Lumpur", 140, withVehicle("Car", "Honda", "City")),
	}}
	svc := newService(repo)

	resp, err := svc.Search(context.Background(), transportSet(t, criteria.TransportInput{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Outcome != OutcomeExact {
		t.Errorf("expected exact outcome, got %s", resp.Outcome)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected every available listing, got %d", len(resp.Results))
	}
}

func TestSearch_DataIntegrityFault(t *testing.T) {
	bad := car("", "Toyota Vios", "Kuala Lumpur", 120)
	repo := &mockRepo{listings: []listing.Listing{bad}}
	svc := newService(repo)

	_, err := svc.Search(context.Background(), transportSet(t, criteria.TransportInput{}))
	if !errors.Is(err, domain.ErrDataIntegrity) {
		t.Fatalf("expected ErrDataIntegrity, got %v", err)
	}
}

func TestSearch_SourceError(t *testing.T) {
	repo := &mockRepo{err: domain.ErrSourceUnavailable}
	svc := newService(repo)

	_, err := svc.Search(context.Background(), transportSet(t, criteria.TransportInput{}))
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	repo := &mockRepo{listings: []listing.Listing{
		car("v1", "Toyota Vios", "Kuala Lumpur", 120),
		car("v2", "Honda City", "Kuala Lumpur", 120, withVehicle("Car", "Honda", "City")),
		car("v3", "Perodua Myvi", "Kuala Lumpur", 90, withVehicle("Car", "Perodua", "Myvi")),
	}}
	svc := newService(repo)
	set := transportSet(t, criteria.TransportInput{Location: strPtr("kuala lumpur")})

	first, err := svc.Search(context.Background(), set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for run := 0; run < 3; run++ {
		resp, err := svc.Search(context.Background(), set)
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", run, err)
		}
		if len(resp.Results) != len(first.Results) {
			t.Fatalf("run %d: result count changed", run)
		}
		for i := range resp.Results {
			if resp.Results[i].Listing.ID != first.Results[i].Listing.ID {
				t.Fatalf("run %d: order changed at %d", run, i)
			}
			if resp.Results[i].Score != first.Results[i].Score {
				t.Fatalf("run %d: score changed at %d", run, i)
			}
		}
	}
}

func contains(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
