package services

import (
	"errors"
	"testing"

	"civireport/entity"
)

func TestCreateReportDefaultsAndCounter(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")

	report, err := env.reports.Create(CreateReportInput{
		Title:       "broken streetlight",
		Description: "out for a week",
		CreatedBy:   user.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if report.Status != entity.StatusOpen {
		t.Errorf("status = %q, want %q", report.Status, entity.StatusOpen)
	}
	if report.Category != entity.CategoryOther {
		t.Errorf("category = %q, want %q", report.Category, entity.CategoryOther)
	}

	fresh, err := env.userRepo.FindByID(user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if fresh.TotalReports != 1 {
		t.Errorf("total_reports = %d, want 1", fresh.TotalReports)
	}
}

func TestCreateReportRejectsInvalidCategory(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")

	_, err := env.reports.Create(CreateReportInput{
		Title:       "bad category",
		Description: "should not persist",
		Category:    "meteor_strike",
		CreatedBy:   user.ID,
	})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}

	var count int64
	env.db.Model(&entity.Report{}).Count(&count)
	if count != 0 {
		t.Errorf("report count = %d, want 0", count)
	}

	fresh, _ := env.userRepo.FindByID(user.ID)
	if fresh.TotalReports != 0 {
		t.Errorf("total_reports = %d, want 0 after rejected create", fresh.TotalReports)
	}
}

func TestValidateAndResolveStampAuditFields(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	admin := env.mustAdmin(t, "dtop@example.com", entity.DepartmentDTOP)
	report := env.mustReport(t, user.ID, entity.CategoryPothole)

	validated, err := env.reports.Validate(report.ID, admin.ID)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if validated.Status != entity.StatusInProgress {
		t.Errorf("status = %q, want in_progress", validated.Status)
	}
	if validated.ValidatedBy == nil || *validated.ValidatedBy != admin.ID {
		t.Errorf("validated_by = %v, want %d", validated.ValidatedBy, admin.ID)
	}
	if validated.ResolvedAt != nil {
		t.Errorf("resolved_at set on in_progress report")
	}

	resolved, err := env.reports.Resolve(report.ID, admin.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != entity.StatusResolved {
		t.Errorf("status = %q, want resolved", resolved.Status)
	}
	if resolved.ResolvedBy == nil || *resolved.ResolvedBy != admin.ID {
		t.Errorf("resolved_by = %v, want %d", resolved.ResolvedBy, admin.ID)
	}
	if resolved.ResolvedAt == nil {
		t.Errorf("resolved_at not stamped on resolve")
	}

	// moving away from resolved clears the timestamp
	reopened, err := env.reports.ChangeStatus(report.ID, entity.StatusOpen, admin.ID)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.ResolvedAt != nil {
		t.Errorf("resolved_at survived a move out of resolved")
	}
}

func TestReworkResolvedReportClearsResolvedAt(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	admin := env.mustAdmin(t, "dtop@example.com", entity.DepartmentDTOP)
	report := env.mustReport(t, user.ID, entity.CategoryPothole)

	if _, err := env.reports.Resolve(report.ID, admin.ID); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// sending a resolved report back to in_progress must drop the timestamp
	reworked, err := env.reports.Validate(report.ID, admin.ID)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if reworked.Status != entity.StatusInProgress {
		t.Errorf("status = %q, want in_progress", reworked.Status)
	}
	if reworked.ResolvedAt != nil {
		t.Errorf("resolved_at = %v on an in_progress report, want nil", reworked.ResolvedAt)
	}
}

func TestChangeStatusRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	report := env.mustReport(t, user.ID, entity.CategoryPothole)

	_, err := env.reports.ChangeStatus(report.ID, entity.StatusResolved, 0)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}

	fresh, _ := env.reports.Get(report.ID)
	if fresh.Status != entity.StatusOpen {
		t.Errorf("status = %q, want open after rejected change", fresh.Status)
	}
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	admin := env.mustAdmin(t, "dtop@example.com", entity.DepartmentDTOP)
	report := env.mustReport(t, user.ID, entity.CategoryPothole)

	if _, err := env.reports.ChangeStatus(report.ID, "vaporized", admin.ID); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestListRestrictsDepartmentAdmins(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	dtop := env.mustAdmin(t, "dtop@example.com", entity.DepartmentDTOP)
	luma := env.mustAdmin(t, "luma@example.com", entity.DepartmentLUMA)

	env.mustReport(t, user.ID, entity.CategoryPothole)
	env.mustReport(t, user.ID, entity.CategoryStreetLight)

	dtopPage, err := env.reports.List(1, 10, "", dtop.ID)
	if err != nil {
		t.Fatalf("dtop list: %v", err)
	}
	if dtopPage.TotalCount != 1 || dtopPage.Reports[0].Category != entity.CategoryPothole {
		t.Errorf("dtop sees %d reports, want 1 pothole", dtopPage.TotalCount)
	}

	lumaPage, err := env.reports.List(1, 10, "", luma.ID)
	if err != nil {
		t.Fatalf("luma list: %v", err)
	}
	if lumaPage.TotalCount != 1 || lumaPage.Reports[0].Category != entity.CategoryStreetLight {
		t.Errorf("luma sees %d reports, want 1 street_light", lumaPage.TotalCount)
	}

	// plain citizens see everything
	allPage, err := env.reports.List(1, 10, "", user.ID)
	if err != nil {
		t.Fatalf("citizen list: %v", err)
	}
	if allPage.TotalCount != 2 {
		t.Errorf("citizen sees %d reports, want 2", allPage.TotalCount)
	}
}

func TestSearchRequiresCriterion(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.reports.Search(SearchInput{}, 1, 10); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestSearchCombinesFilters(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	admin := env.mustAdmin(t, "dtop@example.com", entity.DepartmentDTOP)

	a := env.mustReport(t, user.ID, entity.CategoryPothole)
	env.mustReport(t, user.ID, entity.CategoryPothole)
	if _, err := env.reports.Resolve(a.ID, admin.ID); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	page, err := env.reports.Search(SearchInput{
		Status:   entity.StatusResolved,
		Category: entity.CategoryPothole,
	}, 1, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalCount != 1 || page.Reports[0].ID != a.ID {
		t.Errorf("search returned %d rows, want exactly the resolved pothole", page.TotalCount)
	}
}

func TestUpdateRejectsUnknownEnums(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	report := env.mustReport(t, user.ID, entity.CategoryPothole)

	bad := entity.Category("volcano")
	if _, err := env.reports.Update(report.ID, ReportUpdate{Category: &bad}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestGetMissingReport(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.reports.Get(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
