package controllers

import (
	"civireport/pkg/resp"
	"civireport/services"
	"civireport/utils"

	"github.com/gin-gonic/gin"
)

type PinnedReportController struct {
	pins *services.PinnedReportService
}

func NewPinnedReportController(pins *services.PinnedReportService) *PinnedReportController {
	return &PinnedReportController{pins: pins}
}

// POST /pinned-reports/:id
func (pc *PinnedReportController) Pin(c *gin.Context) {
	reportID, ok := idParam(c, "id")
	if !ok {
		return
	}
	result, err := pc.pins.Pin(utils.CurrentUserID(c), reportID)
	if err != nil {
		respondErr(c, err)
		return
	}
	if result.AlreadyPinned {
		resp.OK(c, result)
		return
	}
	resp.Created(c, result)
}

// DELETE /pinned-reports/:id
func (pc *PinnedReportController) Unpin(c *gin.Context) {
	reportID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := pc.pins.Unpin(utils.CurrentUserID(c), reportID); err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"unpinned": reportID})
}

// GET /pinned-reports/:id/status
func (pc *PinnedReportController) Status(c *gin.Context) {
	reportID, ok := idParam(c, "id")
	if !ok {
		return
	}
	pinned, err := pc.pins.IsPinned(utils.CurrentUserID(c), reportID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"report_id": reportID, "pinned": pinned})
}

// GET /pinned-reports
func (pc *PinnedReportController) List(c *gin.Context) {
	page, limit := utils.PageParams(c)
	result, err := pc.pins.ListByUser(utils.CurrentUserID(c), page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{
		"pinned_reports": result.Items,
		"total_count":    result.TotalCount,
		"total_pages":    result.TotalPages,
		"page":           result.Page,
	})
}

// GET /pinned-reports/:id
func (pc *PinnedReportController) Detail(c *gin.Context) {
	reportID, ok := idParam(c, "id")
	if !ok {
		return
	}
	row, err := pc.pins.Detail(utils.CurrentUserID(c), reportID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, row)
}
