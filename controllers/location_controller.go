package controllers

import (
	"strconv"

	"civireport/pkg/resp"
	"civireport/services"
	"civireport/utils"

	"github.com/gin-gonic/gin"
)

type LocationController struct {
	locations *services.LocationService
}

func NewLocationController(locations *services.LocationService) *LocationController {
	return &LocationController{locations: locations}
}

// POST /locations
func (lc *LocationController) Create(c *gin.Context) {
	var req struct {
		City      string  `json:"city" binding:"required"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	loc, err := lc.locations.Create(req.City, req.Latitude, req.Longitude)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, loc)
}

// GET /locations
func (lc *LocationController) List(c *gin.Context) {
	page, limit := utils.PageParams(c)
	locations, total, err := lc.locations.List(limit, (page-1)*limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{
		"locations":   locations,
		"total_count": total,
		"total_pages": utils.TotalPages(total, limit),
		"page":        page,
	})
}

// GET /locations/:id
func (lc *LocationController) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	loc, err := lc.locations.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, loc)
}

// PATCH /locations/:id
func (lc *LocationController) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		City      *string  `json:"city"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	loc, err := lc.locations.Update(id, services.LocationUpdate{
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, loc)
}

// DELETE /locations/:id
func (lc *LocationController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := lc.locations.Delete(id); err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// GET /locations/nearby?latitude=&longitude=&max_distance=&limit=
func (lc *LocationController) Nearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("longitude"), 64)
	if latErr != nil || lonErr != nil {
		resp.BadRequest(c, "latitude and longitude are required")
		return
	}
	maxKm, _ := strconv.ParseFloat(c.DefaultQuery("max_distance", "10"), 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rows, err := lc.locations.Nearby(lat, lon, maxKm, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /locations/with-reports
func (lc *LocationController) WithReports(c *gin.Context) {
	page, limit := utils.PageParams(c)
	rows, total, err := lc.locations.ListWithReportCounts(limit, (page-1)*limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{
		"locations":   rows,
		"total_count": total,
		"total_pages": utils.TotalPages(total, limit),
		"page":        page,
	})
}

// GET /locations/stats
func (lc *LocationController) UsageStats(c *gin.Context) {
	stats, err := lc.locations.UsageStats()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, stats)
}
