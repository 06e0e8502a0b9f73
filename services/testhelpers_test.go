package services

import (
	"testing"

	"civireport/entity"
	"civireport/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database per test. The connection pool
// is pinned to one connection so every query sees the same memory store.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Administrator{},
		&entity.DepartmentAdmin{},
		&entity.AdminCode{},
		&entity.Location{},
		&entity.Report{},
		&entity.ReportRating{},
		&entity.PinnedReport{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db       *gorm.DB
	admins   *AdministratorService
	reports  *ReportService
	ratings  *RatingService
	users    *UserService
	pins     *PinnedReportService
	stats    *StatsService
	userRepo *repository.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testDB(t)

	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdministratorRepository(db)
	reportRepo := repository.NewReportRepository(db)
	pinRepo := repository.NewPinnedReportRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	admins := NewAdministratorService(adminRepo, userRepo)
	reports := NewReportService(db, reportRepo, admins)

	return &testEnv{
		db:       db,
		admins:   admins,
		reports:  reports,
		ratings:  NewRatingService(db, ratingRepo, reports),
		users:    NewUserService(db, userRepo, adminRepo),
		pins:     NewPinnedReportService(pinRepo, reports, userRepo),
		stats:    NewStatsService(statsRepo),
		userRepo: userRepo,
	}
}

func (e *testEnv) mustUser(t *testing.T, email string) *entity.User {
	t.Helper()
	user := &entity.User{Email: email, Password: "hash"}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) mustAdmin(t *testing.T, email string, dept entity.Department) *entity.User {
	t.Helper()
	user := &entity.User{Email: email, Password: "hash", Admin: true}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create admin user: %v", err)
	}
	if err := e.db.Create(&entity.Administrator{ID: user.ID, Department: dept}).Error; err != nil {
		t.Fatalf("create administrator: %v", err)
	}
	return user
}

func (e *testEnv) mustReport(t *testing.T, createdBy uint, category entity.Category) *entity.Report {
	t.Helper()
	report, err := e.reports.Create(CreateReportInput{
		Title:       "test report",
		Description: "something is broken",
		Category:    category,
		CreatedBy:   createdBy,
	})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	return report
}
