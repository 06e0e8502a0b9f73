package controllers

import (
	"civireport/entity"
	"civireport/pkg/resp"
	"civireport/services"
	"civireport/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	reports *services.ReportService
	ratings *services.RatingService
}

func NewReportController(reports *services.ReportService, ratings *services.RatingService) *ReportController {
	return &ReportController{reports: reports, ratings: ratings}
}

func pageResponse(c *gin.Context, p *services.ReportPage) {
	resp.OK(c, gin.H{
		"reports":     p.Reports,
		"total_count": p.TotalCount,
		"total_pages": p.TotalPages,
		"page":        p.Page,
	})
}

// POST /reports
func (rc *ReportController) Create(c *gin.Context) {
	var req struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description" binding:"required"`
		Category    string  `json:"category"`
		LocationID  *uint   `json:"location"`
		ImageURL    *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	report, err := rc.reports.Create(services.CreateReportInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    entity.Category(req.Category),
		CreatedBy:   utils.CurrentUserID(c),
		LocationID:  req.LocationID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, report)
}

// GET /reports
func (rc *ReportController) List(c *gin.Context) {
	page, limit := utils.PageParams(c)
	result, err := rc.reports.List(page, limit, c.Query("sort"), utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	pageResponse(c, result)
}

// GET /reports/search?q=&status=&category=
func (rc *ReportController) Search(c *gin.Context) {
	page, limit := utils.PageParams(c)
	result, err := rc.reports.Search(services.SearchInput{
		Query:    c.Query("q"),
		Status:   entity.Status(c.Query("status")),
		Category: entity.Category(c.Query("category")),
		Sort:     c.Query("sort"),
		AdminID:  utils.CurrentUserID(c),
	}, page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	pageResponse(c, result)
}

// GET /reports/:id
func (rc *ReportController) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	report, err := rc.reports.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, report)
}

// PATCH /reports/:id
func (rc *ReportController) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		Category    *string `json:"category"`
		LocationID  *uint   `json:"location"`
		ImageURL    *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	upd := services.ReportUpdate{
		Title:       req.Title,
		Description: req.Description,
		LocationID:  req.LocationID,
		ImageURL:    req.ImageURL,
	}
	if req.Status != nil {
		s := entity.Status(*req.Status)
		upd.Status = &s
	}
	if req.Category != nil {
		cat := entity.Category(*req.Category)
		upd.Category = &cat
	}

	report, err := rc.reports.Update(id, upd)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, report)
}

// DELETE /reports/:id
func (rc *ReportController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := rc.reports.Delete(id); err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// PATCH /reports/:id/validate
func (rc *ReportController) Validate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	report, err := rc.reports.Validate(id, utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, report)
}

// PATCH /reports/:id/resolve
func (rc *ReportController) Resolve(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	report, err := rc.reports.Resolve(id, utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, report)
}

// PATCH /reports/:id/status
func (rc *ReportController) ChangeStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	report, err := rc.reports.ChangeStatus(id, entity.Status(req.Status), utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, report)
}

// GET /reports/status-options
func (rc *ReportController) StatusOptions(c *gin.Context) {
	resp.OK(c, gin.H{
		"statuses":   entity.Statuses,
		"categories": entity.Categories,
	})
}

// GET /reports/user/:id
func (rc *ReportController) ByUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	page, limit := utils.PageParams(c)
	result, err := rc.reports.ListByUser(id, page, limit, c.Query("sort"))
	if err != nil {
		respondErr(c, err)
		return
	}
	pageResponse(c, result)
}

// GET /reports/pending
func (rc *ReportController) Pending(c *gin.Context) {
	page, limit := utils.PageParams(c)
	result, err := rc.reports.ListPending(page, limit, c.Query("sort"))
	if err != nil {
		respondErr(c, err)
		return
	}
	pageResponse(c, result)
}

// GET /reports/assigned
func (rc *ReportController) Assigned(c *gin.Context) {
	page, limit := utils.PageParams(c)
	result, err := rc.reports.ListAssigned(utils.CurrentUserID(c), page, limit, c.Query("sort"))
	if err != nil {
		respondErr(c, err)
		return
	}
	pageResponse(c, result)
}

// POST /reports/:id/rate
func (rc *ReportController) ToggleRate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	result, err := rc.ratings.Toggle(id, utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, result)
}

// DELETE /reports/:id/rate
func (rc *ReportController) Unrate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	result, err := rc.ratings.Unrate(id, utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, result)
}

// GET /reports/:id/rate
func (rc *ReportController) RatingStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	status, err := rc.ratings.Status(id, utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, status)
}
