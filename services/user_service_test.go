package services

import (
	"errors"
	"testing"

	"civireport/entity"
)

func TestRedeemAdminCodePromotes(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	if err := env.db.Create(&entity.AdminCode{Code: "DTOP-2025", Department: entity.DepartmentDTOP}).Error; err != nil {
		t.Fatalf("seed code: %v", err)
	}

	result, err := env.users.RedeemAdminCode(user.ID, "DTOP-2025")
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if !result.Success || result.Department != entity.DepartmentDTOP {
		t.Errorf("result = %+v, want success in DTOP", result)
	}
	if result.AlreadyAdmin {
		t.Errorf("fresh citizen reported as already admin")
	}

	fresh, _ := env.users.Get(user.ID)
	if !fresh.Admin {
		t.Errorf("users.admin not set after promotion")
	}
	var admin entity.Administrator
	if err := env.db.First(&admin, user.ID).Error; err != nil {
		t.Fatalf("administrator row missing: %v", err)
	}
	if admin.Department != entity.DepartmentDTOP {
		t.Errorf("department = %q, want DTOP", admin.Department)
	}
}

func TestRedeemAdminCodeTwiceMovesDepartment(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	env.db.Create(&entity.AdminCode{Code: "DTOP-2025", Department: entity.DepartmentDTOP})
	env.db.Create(&entity.AdminCode{Code: "LUMA-2025", Department: entity.DepartmentLUMA})

	if _, err := env.users.RedeemAdminCode(user.ID, "DTOP-2025"); err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	result, err := env.users.RedeemAdminCode(user.ID, "LUMA-2025")
	if err != nil {
		t.Fatalf("second redeem: %v", err)
	}
	if !result.AlreadyAdmin {
		t.Errorf("second redemption not flagged as already admin")
	}

	var admin entity.Administrator
	env.db.First(&admin, user.ID)
	if admin.Department != entity.DepartmentLUMA {
		t.Errorf("department = %q, want LUMA after second code", admin.Department)
	}
	var count int64
	env.db.Model(&entity.Administrator{}).Where("id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("administrator rows = %d, want 1", count)
	}
}

func TestRedeemInvalidCode(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")

	if _, err := env.users.RedeemAdminCode(user.ID, "NO-SUCH-CODE"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	fresh, _ := env.users.Get(user.ID)
	if fresh.Admin {
		t.Errorf("user promoted by invalid code")
	}
}

func TestSuspendFlags(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")

	suspended, err := env.users.Suspend(user.ID)
	if err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if !suspended.Suspended {
		t.Errorf("suspended flag not set")
	}

	restored, err := env.users.Unsuspend(user.ID)
	if err != nil {
		t.Fatalf("unsuspend: %v", err)
	}
	if restored.Suspended {
		t.Errorf("suspended flag not cleared")
	}
}

func TestUserUpdateNormalizesEmail(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")

	email := "  New.Address@Example.COM "
	updated, err := env.users.Update(user.ID, UserUpdate{Email: &email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != "new.address@example.com" {
		t.Errorf("email = %q, want lowercase trimmed", updated.Email)
	}
}

func TestUserStats(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	admin := env.mustAdmin(t, "dtop@example.com", entity.DepartmentDTOP)

	a := env.mustReport(t, user.ID, entity.CategoryPothole)
	env.mustReport(t, user.ID, entity.CategoryFlooding)
	if _, err := env.reports.Resolve(a.ID, admin.ID); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	stats, err := env.users.Stats(user.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalReports != 2 {
		t.Errorf("total = %d, want 2", stats.TotalReports)
	}
	if stats.ResolvedReports != 1 || stats.OpenReports != 1 {
		t.Errorf("resolved/open = %d/%d, want 1/1", stats.ResolvedReports, stats.OpenReports)
	}
	if stats.LastReportDate == nil {
		t.Errorf("last report date missing")
	}

	// a user with no reports has no last report date
	quiet := env.mustUser(t, "quiet@example.com")
	empty, err := env.users.Stats(quiet.ID)
	if err != nil {
		t.Fatalf("stats for quiet user: %v", err)
	}
	if empty.LastReportDate != nil {
		t.Errorf("last report date = %v for a user with no reports, want nil", empty.LastReportDate)
	}
}

func TestDeleteMissingUser(t *testing.T) {
	env := newTestEnv(t)

	if err := env.users.Delete(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
