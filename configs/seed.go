package configs

import (
	"log"

	"civireport/entity"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the bootstrap administrator account on first run.
func SeedAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("admin already exists:", cfg.AdminEmail)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Admin:    true,
	}
	return db.Create(&admin).Error
}

// SeedAdminCodes installs one promotion code per department so the
// code-redemption flow works out of the box.
func SeedAdminCodes(db *gorm.DB) error {
	codes := map[string]entity.Department{
		"DTOP-ADMIN-2025": entity.DepartmentDTOP,
		"LUMA-ADMIN-2025": entity.DepartmentLUMA,
		"AAA-ADMIN-2025":  entity.DepartmentAAA,
		"DDS-ADMIN-2025":  entity.DepartmentDDS,
	}
	for code, dept := range codes {
		row := entity.AdminCode{Code: code, Department: dept}
		if err := db.FirstOrCreate(&row, entity.AdminCode{Code: code}).Error; err != nil {
			return err
		}
	}
	log.Println("admin codes seeded")
	return nil
}
