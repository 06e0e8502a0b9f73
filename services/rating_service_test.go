package services

import (
	"errors"
	"testing"

	"civireport/entity"
)

func ratingRowCount(t *testing.T, env *testEnv, reportID uint) int64 {
	t.Helper()
	var n int64
	if err := env.db.Model(&entity.ReportRating{}).Where("report_id = ?", reportID).Count(&n).Error; err != nil {
		t.Fatalf("count ratings: %v", err)
	}
	return n
}

func TestToggleKeepsCounterEqualToRows(t *testing.T) {
	env := newTestEnv(t)
	author := env.mustUser(t, "author@example.com")
	alice := env.mustUser(t, "alice@example.com")
	bob := env.mustUser(t, "bob@example.com")
	report := env.mustReport(t, author.ID, entity.CategoryPothole)

	if _, err := env.ratings.Toggle(report.ID, alice.ID); err != nil {
		t.Fatalf("alice toggle: %v", err)
	}
	result, err := env.ratings.Toggle(report.ID, bob.ID)
	if err != nil {
		t.Fatalf("bob toggle: %v", err)
	}
	if result.Rating != 2 || !result.NowRated {
		t.Errorf("after two raters: rating = %d, nowRated = %v, want 2/true", result.Rating, result.NowRated)
	}
	if n := ratingRowCount(t, env, report.ID); n != 2 {
		t.Errorf("rating rows = %d, want 2", n)
	}

	// toggling again turns it off
	result, err = env.ratings.Toggle(report.ID, alice.ID)
	if err != nil {
		t.Fatalf("alice re-toggle: %v", err)
	}
	if result.Rating != 1 || result.NowRated {
		t.Errorf("after toggle off: rating = %d, nowRated = %v, want 1/false", result.Rating, result.NowRated)
	}
	if n := ratingRowCount(t, env, report.ID); n != 1 {
		t.Errorf("rating rows = %d, want 1", n)
	}
}

func TestToggleRejectsSelfRating(t *testing.T) {
	env := newTestEnv(t)
	author := env.mustUser(t, "author@example.com")
	report := env.mustReport(t, author.ID, entity.CategoryPothole)

	if _, err := env.ratings.Toggle(report.ID, author.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if n := ratingRowCount(t, env, report.ID); n != 0 {
		t.Errorf("rating rows = %d, want 0", n)
	}
}

func TestUnrateAbsentIsNoop(t *testing.T) {
	env := newTestEnv(t)
	author := env.mustUser(t, "author@example.com")
	alice := env.mustUser(t, "alice@example.com")
	report := env.mustReport(t, author.ID, entity.CategoryPothole)

	result, err := env.ratings.Unrate(report.ID, alice.ID)
	if err != nil {
		t.Fatalf("unrate absent: %v", err)
	}
	if result.Rating != 0 {
		t.Errorf("rating = %d, want 0", result.Rating)
	}
}

func TestUnrateNeverGoesNegative(t *testing.T) {
	env := newTestEnv(t)
	author := env.mustUser(t, "author@example.com")
	alice := env.mustUser(t, "alice@example.com")
	report := env.mustReport(t, author.ID, entity.CategoryPothole)

	for i := 0; i < 3; i++ {
		if _, err := env.ratings.Unrate(report.ID, alice.ID); err != nil {
			t.Fatalf("unrate %d: %v", i, err)
		}
	}
	fresh, _ := env.reports.Get(report.ID)
	if fresh.Rating != 0 {
		t.Errorf("rating = %d, want 0", fresh.Rating)
	}
}

func TestRatingStatus(t *testing.T) {
	env := newTestEnv(t)
	author := env.mustUser(t, "author@example.com")
	alice := env.mustUser(t, "alice@example.com")
	report := env.mustReport(t, author.ID, entity.CategoryPothole)

	status, err := env.ratings.Status(report.ID, alice.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Rated {
		t.Errorf("rated before any toggle")
	}

	if _, err := env.ratings.Toggle(report.ID, alice.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	status, err = env.ratings.Status(report.ID, alice.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Rated || status.Rating != 1 {
		t.Errorf("rated = %v, rating = %d, want true/1", status.Rated, status.Rating)
	}
}
