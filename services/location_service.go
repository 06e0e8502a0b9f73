package services

import (
	"errors"
	"fmt"

	"civireport/entity"
	"civireport/repository"

	"gorm.io/gorm"
)

type LocationService struct {
	locations *repository.LocationRepository
}

func NewLocationService(locations *repository.LocationRepository) *LocationService {
	return &LocationService{locations: locations}
}

func (s *LocationService) Create(city string, lat, lon float64) (*entity.Location, error) {
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrInvalid)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalid)
	}

	loc := &entity.Location{City: city, Latitude: lat, Longitude: lon}
	if err := s.locations.Create(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *LocationService) Get(id uint) (*entity.Location, error) {
	loc, err := s.locations.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return loc, nil
}

func (s *LocationService) List(limit, offset int) ([]entity.Location, int64, error) {
	return s.locations.List(limit, offset)
}

// LocationUpdate is the explicit partial-update contract for locations.
type LocationUpdate struct {
	City      *string
	Latitude  *float64
	Longitude *float64
}

func (s *LocationService) Update(id uint, upd LocationUpdate) (*entity.Location, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	cols := map[string]any{}
	if upd.City != nil {
		if *upd.City == "" {
			return nil, fmt.Errorf("%w: city cannot be empty", ErrInvalid)
		}
		cols["city"] = *upd.City
	}
	if upd.Latitude != nil {
		cols["latitude"] = *upd.Latitude
	}
	if upd.Longitude != nil {
		cols["longitude"] = *upd.Longitude
	}

	return s.locations.Update(id, cols)
}

func (s *LocationService) Delete(id uint) error {
	deleted, err := s.locations.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *LocationService) Nearby(lat, lon, maxDistanceKm float64, limit int) ([]repository.NearbyLocation, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalid)
	}
	if maxDistanceKm <= 0 {
		maxDistanceKm = 10
	}
	return s.locations.Nearby(lat, lon, maxDistanceKm, limit)
}

func (s *LocationService) ListWithReportCounts(limit, offset int) ([]repository.LocationWithReports, int64, error) {
	return s.locations.ListWithReportCounts(limit, offset)
}

func (s *LocationService) UsageStats() (*repository.LocationUsage, error) {
	return s.locations.UsageStats()
}
