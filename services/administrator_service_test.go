package services

import (
	"errors"
	"testing"

	"civireport/entity"
)

func TestAllowedCategoriesForDepartmentAdmin(t *testing.T) {
	env := newTestEnv(t)
	admin := env.mustAdmin(t, "dtop@example.com", entity.DepartmentDTOP)

	allowed, err := env.admins.AllowedCategoriesFor(admin.ID)
	if err != nil {
		t.Fatalf("allowed categories: %v", err)
	}
	want := map[entity.Category]bool{
		entity.CategoryPothole:    true,
		entity.CategoryRoadDamage: true,
		entity.CategoryFallenTree: true,
	}
	if len(allowed) != len(want) {
		t.Fatalf("allowed = %v, want the 3 DTOP categories", allowed)
	}
	for _, cat := range allowed {
		if !want[cat] {
			t.Errorf("unexpected category %q", cat)
		}
	}
}

func TestAllowedCategoriesFailsOpen(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")

	// plain citizen: unrestricted
	allowed, err := env.admins.AllowedCategoriesFor(user.ID)
	if err != nil {
		t.Fatalf("citizen: %v", err)
	}
	if allowed != nil {
		t.Errorf("citizen allowed = %v, want nil", allowed)
	}

	// unknown user id: unrestricted
	allowed, err = env.admins.AllowedCategoriesFor(999)
	if err != nil {
		t.Fatalf("unknown user: %v", err)
	}
	if allowed != nil {
		t.Errorf("unknown user allowed = %v, want nil", allowed)
	}

	// admin flag without an administrators row: unrestricted
	flagged := env.mustUser(t, "flagged@example.com")
	env.db.Model(&entity.User{}).Where("id = ?", flagged.ID).Update("admin", true)
	allowed, err = env.admins.AllowedCategoriesFor(flagged.ID)
	if err != nil {
		t.Fatalf("flagged user: %v", err)
	}
	if allowed != nil {
		t.Errorf("flagged user allowed = %v, want nil", allowed)
	}
}

func TestAdministratorDetails(t *testing.T) {
	env := newTestEnv(t)
	admin := env.mustAdmin(t, "dtop@example.com", entity.DepartmentDTOP)
	if err := env.db.Create(&entity.DepartmentAdmin{AdminID: admin.ID, Department: entity.DepartmentDTOP}).Error; err != nil {
		t.Fatalf("seed seat: %v", err)
	}

	details, err := env.admins.Details(admin.ID)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details.Email != "dtop@example.com" {
		t.Errorf("email = %q", details.Email)
	}
	if details.AssignedDepartment == nil || *details.AssignedDepartment != entity.DepartmentDTOP {
		t.Errorf("assigned department = %v, want DTOP", details.AssignedDepartment)
	}
}

func TestUpdateDepartmentValidates(t *testing.T) {
	env := newTestEnv(t)
	admin := env.mustAdmin(t, "dtop@example.com", entity.DepartmentDTOP)

	if _, err := env.admins.UpdateDepartment(admin.ID, "NAVY"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}

	moved, err := env.admins.UpdateDepartment(admin.ID, entity.DepartmentLUMA)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.Department != entity.DepartmentLUMA {
		t.Errorf("department = %q, want LUMA", moved.Department)
	}
}

func TestAdminInfoForUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "citizen@example.com")
	admin := env.mustAdmin(t, "dtop@example.com", entity.DepartmentDTOP)

	info, err := env.admins.InfoForUser(user.ID)
	if err != nil {
		t.Fatalf("citizen info: %v", err)
	}
	if info.Admin || info.Department != nil {
		t.Errorf("citizen info = %+v, want non-admin", info)
	}

	info, err = env.admins.InfoForUser(admin.ID)
	if err != nil {
		t.Fatalf("admin info: %v", err)
	}
	if !info.Admin || info.Department == nil || *info.Department != entity.DepartmentDTOP {
		t.Errorf("admin info = %+v, want DTOP admin", info)
	}
}
