package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"civireport/entity"
	"civireport/repository"

	"gorm.io/gorm"
)

// volumeEpoch is the first month the monthly-volume rollup covers.
var volumeEpoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

type StatsService struct {
	stats *repository.StatsRepository
}

func NewStatsService(stats *repository.StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// DepartmentRate is a department's resolution percentage.
type DepartmentRate struct {
	Department     entity.Department `json:"department"`
	TotalReports   int64             `json:"total_reports"`
	Resolved       int64             `json:"resolved"`
	ResolutionRate float64           `json:"resolution_rate"`
}

// ResolutionRateByDepartment rolls per-category counts up into the
// owning departments. Categories outside every department ("other") are
// excluded. Departments with no reports report a rate of 0.
func (s *StatsService) ResolutionRateByDepartment() ([]DepartmentRate, error) {
	rollups, err := s.stats.CategoryRollups()
	if err != nil {
		return nil, err
	}

	totals := map[entity.Department]*DepartmentRate{}
	for _, dept := range entity.Departments {
		totals[dept] = &DepartmentRate{Department: dept}
	}
	for _, row := range rollups {
		dept, ok := entity.CategoryDepartment[row.Category]
		if !ok {
			continue
		}
		totals[dept].TotalReports += row.Total
		totals[dept].Resolved += row.Resolved
	}

	out := make([]DepartmentRate, 0, len(totals))
	for _, row := range totals {
		if row.TotalReports > 0 {
			row.ResolutionRate = round2(float64(row.Resolved) / float64(row.TotalReports) * 100)
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ResolutionRate != out[j].ResolutionRate {
			return out[i].ResolutionRate > out[j].ResolutionRate
		}
		return out[i].Department < out[j].Department
	})
	return out, nil
}

// DepartmentDuration is a department's mean time-to-resolution split into
// whole days and remainder hours.
type DepartmentDuration struct {
	Department    entity.Department `json:"department"`
	ResolvedCount int64             `json:"resolved_count"`
	AvgDays       int               `json:"avg_days"`
	AvgHours      int               `json:"avg_hours"`
}

// AvgResolutionTimeByDepartment averages created→resolved spans per
// department, fastest first. Departments with no resolved reports are
// omitted.
func (s *StatsService) AvgResolutionTimeByDepartment() ([]DepartmentDuration, error) {
	spans, err := s.stats.ResolvedSpans()
	if err != nil {
		return nil, err
	}

	sums := map[entity.Department]time.Duration{}
	counts := map[entity.Department]int64{}
	for _, span := range spans {
		dept, ok := entity.CategoryDepartment[span.Category]
		if !ok {
			continue
		}
		sums[dept] += span.ResolvedAt.Sub(span.CreatedAt)
		counts[dept]++
	}

	out := make([]DepartmentDuration, 0, len(sums))
	for dept, sum := range sums {
		mean := sum / time.Duration(counts[dept])
		out = append(out, DepartmentDuration{
			Department:    dept,
			ResolvedCount: counts[dept],
			AvgDays:       int(mean / (24 * time.Hour)),
			AvgHours:      int((mean % (24 * time.Hour)) / time.Hour),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgDays != out[j].AvgDays {
			return out[i].AvgDays < out[j].AvgDays
		}
		if out[i].AvgHours != out[j].AvgHours {
			return out[i].AvgHours < out[j].AvgHours
		}
		return out[i].Department < out[j].Department
	})
	return out, nil
}

// MonthVolume is the report count for one calendar month.
type MonthVolume struct {
	Year  int    `json:"year"`
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// MonthlyReportVolume buckets report creation by calendar month from the
// volume epoch onward, oldest first, trimmed to the trailing `months`
// buckets that actually have data.
func (s *StatsService) MonthlyReportVolume(months int) ([]MonthVolume, error) {
	if months <= 0 {
		months = 12
	}
	stamps, err := s.stats.CreatedSince(volumeEpoch)
	if err != nil {
		return nil, err
	}

	type key struct {
		year  int
		month time.Month
	}
	counts := map[key]int64{}
	var keys []key
	for _, t := range stamps {
		k := key{t.Year(), t.Month()}
		if _, seen := counts[k]; !seen {
			keys = append(keys, k)
		}
		counts[k]++
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})
	if len(keys) > months {
		keys = keys[len(keys)-months:]
	}

	out := make([]MonthVolume, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthVolume{Year: k.year, Month: k.month.String(), Count: counts[k]})
	}
	return out, nil
}

// CategoryShare is a category's share of all reports.
type CategoryShare struct {
	Category   entity.Category `json:"category"`
	Count      int64           `json:"count"`
	Percentage float64         `json:"percentage"`
}

// TopCategories returns the n most-reported categories with their share
// of the total, most reported first.
func (s *StatsService) TopCategories(n int) ([]CategoryShare, error) {
	if n <= 0 {
		n = 5
	}
	rows, err := s.stats.CategoryCounts()
	if err != nil {
		return nil, err
	}

	var total int64
	for _, row := range rows {
		total += row.Count
	}
	if len(rows) > n {
		rows = rows[:n]
	}

	out := make([]CategoryShare, 0, len(rows))
	for _, row := range rows {
		share := CategoryShare{Category: row.Category, Count: row.Count}
		if total > 0 {
			share.Percentage = round2(float64(row.Count) / float64(total) * 100)
		}
		out = append(out, share)
	}
	return out, nil
}

// AdminPerformanceReport ranks administrators by reports handled over the
// trailing `days` window.
func (s *StatsService) AdminPerformanceReport(days int) ([]repository.AdminPerformance, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	rows, err := s.stats.AdminPerformance(cutoff)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].AvgRating = round2(rows[i].AvgRating)
	}
	return rows, nil
}

func (s *StatsService) Overview() (*repository.Overview, error) {
	o, err := s.stats.Overview()
	if err != nil {
		return nil, err
	}
	o.AvgRating = round2(o.AvgRating)
	return o, nil
}

func (s *StatsService) DepartmentStats(dept entity.Department) (*repository.DepartmentOverview, error) {
	if !entity.ValidDepartment(dept) {
		return nil, fmt.Errorf("%w: unknown department %q", ErrInvalid, dept)
	}
	row, err := s.stats.DepartmentOverview(dept)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	row.AvgRating = round2(row.AvgRating)
	return row, nil
}

// Dashboard is the bundle the admin landing page renders in one request.
type Dashboard struct {
	RecentReports []repository.RecentReport       `json:"recent_reports"`
	CategoryStats []repository.CategoryResolution `json:"category_stats"`
	StatusStats   []repository.StatusCount        `json:"status_stats"`
}

func (s *StatsService) Dashboard() (*Dashboard, error) {
	recent, err := s.stats.RecentReports(10)
	if err != nil {
		return nil, err
	}
	categories, err := s.stats.CategoryResolutions()
	if err != nil {
		return nil, err
	}
	statuses, err := s.stats.StatusCounts()
	if err != nil {
		return nil, err
	}
	return &Dashboard{RecentReports: recent, CategoryStats: categories, StatusStats: statuses}, nil
}

func (s *StatsService) AdminActivity(adminID uint) (*repository.AdminActivity, error) {
	return s.stats.AdminActivity(adminID)
}

func (s *StatsService) AllAdminWorkloads() ([]repository.AdminWorkload, error) {
	rows, err := s.stats.AllAdminWorkloads()
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].AvgRating = round2(rows[i].AvgRating)
	}
	return rows, nil
}

func (s *StatsService) TopAdminsValidated(n int) ([]repository.AdminCount, error) {
	if n <= 0 {
		n = 5
	}
	return s.stats.TopAdminsValidated(n)
}

func (s *StatsService) TopAdminsResolved(n int) ([]repository.AdminCount, error) {
	if n <= 0 {
		n = 5
	}
	return s.stats.TopAdminsResolved(n)
}

func (s *StatsService) TopUsersByReports(n int) ([]repository.UserCount, error) {
	if n <= 0 {
		n = 5
	}
	return s.stats.TopUsersByReports(n)
}
