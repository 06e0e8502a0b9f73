package services

import (
	"errors"
	"testing"

	"civireport/repository"
)

func newLocationEnv(t *testing.T) (*testEnv, *LocationService) {
	t.Helper()
	env := newTestEnv(t)
	return env, NewLocationService(repository.NewLocationRepository(env.db))
}

func TestLocationCreateValidates(t *testing.T) {
	_, locations := newLocationEnv(t)

	if _, err := locations.Create("", 18.2, -66.5); !errors.Is(err, ErrInvalid) {
		t.Fatalf("empty city err = %v, want ErrInvalid", err)
	}
	if _, err := locations.Create("San Juan", 123.0, -66.5); !errors.Is(err, ErrInvalid) {
		t.Fatalf("bad latitude err = %v, want ErrInvalid", err)
	}

	loc, err := locations.Create("San Juan", 18.4655, -66.1057)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if loc.ID == 0 {
		t.Errorf("id not assigned")
	}
}

func TestLocationNearbyOrdersByDistance(t *testing.T) {
	_, locations := newLocationEnv(t)

	// Ponce is ~100km from San Juan; Bayamón is next door.
	if _, err := locations.Create("San Juan", 18.4655, -66.1057); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := locations.Create("Bayamón", 18.3985, -66.1557); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := locations.Create("Ponce", 18.0111, -66.6141); err != nil {
		t.Fatalf("create: %v", err)
	}

	nearby, err := locations.Nearby(18.4655, -66.1057, 25, 10)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(nearby) != 2 {
		t.Fatalf("nearby = %d rows, want 2 within 25km", len(nearby))
	}
	if nearby[0].City != "San Juan" || nearby[1].City != "Bayamón" {
		t.Errorf("order = %q, %q; want San Juan then Bayamón", nearby[0].City, nearby[1].City)
	}
	if nearby[0].DistanceKm > nearby[1].DistanceKm {
		t.Errorf("distances not ascending")
	}
}

func TestLocationUpdateAndDelete(t *testing.T) {
	_, locations := newLocationEnv(t)

	loc, err := locations.Create("San Juan", 18.4655, -66.1057)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	city := "Carolina"
	updated, err := locations.Update(loc.ID, LocationUpdate{City: &city})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.City != "Carolina" {
		t.Errorf("city = %q, want Carolina", updated.City)
	}
	if updated.Latitude != loc.Latitude {
		t.Errorf("latitude changed by partial update")
	}

	if err := locations.Delete(loc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := locations.Delete(loc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestLocationUsageStats(t *testing.T) {
	env, locations := newLocationEnv(t)
	user := env.mustUser(t, "citizen@example.com")

	loc, err := locations.Create("San Juan", 18.4655, -66.1057)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.reports.Create(CreateReportInput{
		Title:       "pothole on the avenue",
		Description: "deep one",
		CreatedBy:   user.ID,
		LocationID:  &loc.ID,
	}); err != nil {
		t.Fatalf("report: %v", err)
	}
	env.mustReport(t, user.ID, "pothole")

	usage, err := locations.UsageStats()
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if usage.TotalLocations != 1 {
		t.Errorf("locations = %d, want 1", usage.TotalLocations)
	}
	if usage.ReportsWithLocation != 1 {
		t.Errorf("reports with location = %d, want 1", usage.ReportsWithLocation)
	}
	if usage.UniqueUsersWithLocations != 1 {
		t.Errorf("unique users = %d, want 1", usage.UniqueUsersWithLocations)
	}
}
