package services

import (
	"errors"
	"testing"

	"civireport/entity"
)

func TestPinIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	report := env.mustReport(t, user.ID, entity.CategoryPothole)

	first, err := env.pins.Pin(user.ID, report.ID)
	if err != nil {
		t.Fatalf("pin: %v", err)
	}
	if first.AlreadyPinned {
		t.Errorf("first pin reported as already pinned")
	}

	second, err := env.pins.Pin(user.ID, report.ID)
	if err != nil {
		t.Fatalf("second pin: %v", err)
	}
	if !second.AlreadyPinned {
		t.Errorf("second pin not reported as already pinned")
	}

	var count int64
	env.db.Model(&entity.PinnedReport{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("pin rows = %d, want 1", count)
	}
}

func TestPinUnknownReport(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")

	if _, err := env.pins.Pin(user.ID, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUnpinMissingPin(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	report := env.mustReport(t, user.ID, entity.CategoryPothole)

	if err := env.pins.Unpin(user.ID, report.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPinListAndUnpin(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	a := env.mustReport(t, user.ID, entity.CategoryPothole)
	b := env.mustReport(t, user.ID, entity.CategoryFlooding)

	for _, id := range []uint{a.ID, b.ID} {
		if _, err := env.pins.Pin(user.ID, id); err != nil {
			t.Fatalf("pin %d: %v", id, err)
		}
	}

	page, err := env.pins.ListByUser(user.ID, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalCount != 2 {
		t.Errorf("pinned count = %d, want 2", page.TotalCount)
	}

	if err := env.pins.Unpin(user.ID, a.ID); err != nil {
		t.Fatalf("unpin: %v", err)
	}
	page, _ = env.pins.ListByUser(user.ID, 1, 10)
	if page.TotalCount != 1 {
		t.Errorf("pinned count after unpin = %d, want 1", page.TotalCount)
	}
}
