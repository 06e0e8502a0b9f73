package repository

import (
	"math"
	"sort"

	"civireport/entity"

	"gorm.io/gorm"
)

const earthRadiusKm = 6371.0

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(loc *entity.Location) error {
	return r.db.Create(loc).Error
}

func (r *LocationRepository) FindByID(id uint) (*entity.Location, error) {
	var loc entity.Location
	if err := r.db.First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *LocationRepository) List(limit, offset int) ([]entity.Location, int64, error) {
	var total int64
	if err := r.db.Model(&entity.Location{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var locs []entity.Location
	err := r.db.Order("id").Limit(limit).Offset(offset).Find(&locs).Error
	return locs, total, err
}

func (r *LocationRepository) Update(id uint, updates map[string]any) (*entity.Location, error) {
	if len(updates) == 0 {
		return r.FindByID(id)
	}
	res := r.db.Model(&entity.Location{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(id)
}

func (r *LocationRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&entity.Location{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// NearbyLocation is a location with its distance from a query point.
type NearbyLocation struct {
	entity.Location
	DistanceKm float64 `json:"distance_km"`
}

// haversineKm is the great-circle distance between two points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Nearby returns locations within maxDistanceKm of the point, closest
// first. The distance math runs in Go so the query stays portable across
// sqlite and postgres.
func (r *LocationRepository) Nearby(lat, lon, maxDistanceKm float64, limit int) ([]NearbyLocation, error) {
	var locs []entity.Location
	if err := r.db.Find(&locs).Error; err != nil {
		return nil, err
	}

	nearby := make([]NearbyLocation, 0)
	for _, loc := range locs {
		d := haversineKm(lat, lon, loc.Latitude, loc.Longitude)
		if d < maxDistanceKm {
			nearby = append(nearby, NearbyLocation{Location: loc, DistanceKm: d})
		}
	}
	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

// LocationWithReports is a location with the number of reports filed at it.
type LocationWithReports struct {
	ID          uint    `json:"id"`
	City        string  `json:"city"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ReportCount int64   `json:"report_count"`
}

func (r *LocationRepository) ListWithReportCounts(limit, offset int) ([]LocationWithReports, int64, error) {
	var total int64
	if err := r.db.Model(&entity.Location{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []LocationWithReports
	err := r.db.Table("location").
		Select("location.id, location.city, location.latitude, location.longitude, COUNT(reports.id) AS report_count").
		Joins("LEFT JOIN reports ON reports.location = location.id").
		Group("location.id, location.city, location.latitude, location.longitude").
		Order("report_count DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, total, err
}

// LocationUsage summarizes how locations are used by reports.
type LocationUsage struct {
	TotalLocations           int64 `json:"total_locations"`
	ReportsWithLocation      int64 `json:"total_reports_with_location"`
	UniqueUsersWithLocations int64 `json:"unique_users_using_locations"`
}

func (r *LocationRepository) UsageStats() (*LocationUsage, error) {
	var usage LocationUsage
	if err := r.db.Model(&entity.Location{}).Count(&usage.TotalLocations).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entity.Report{}).Where("location IS NOT NULL").
		Count(&usage.ReportsWithLocation).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entity.Report{}).Where("location IS NOT NULL").
		Distinct("created_by").Count(&usage.UniqueUsersWithLocations).Error; err != nil {
		return nil, err
	}
	return &usage, nil
}
