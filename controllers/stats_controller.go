package controllers

import (
	"strconv"

	"civireport/entity"
	"civireport/pkg/resp"
	"civireport/services"
	"civireport/utils"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	n, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return n
}

// GET /stats/resolution-rate
func (sc *StatsController) ResolutionRate(c *gin.Context) {
	rows, err := sc.stats.ResolutionRateByDepartment()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /stats/resolution-time
func (sc *StatsController) ResolutionTime(c *gin.Context) {
	rows, err := sc.stats.AvgResolutionTimeByDepartment()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /stats/monthly-volume?months=
func (sc *StatsController) MonthlyVolume(c *gin.Context) {
	rows, err := sc.stats.MonthlyReportVolume(intQuery(c, "months", 12))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /stats/top-categories?n=
func (sc *StatsController) TopCategories(c *gin.Context) {
	rows, err := sc.stats.TopCategories(intQuery(c, "n", 5))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /stats/admin-performance?days=
func (sc *StatsController) AdminPerformance(c *gin.Context) {
	rows, err := sc.stats.AdminPerformanceReport(intQuery(c, "days", 30))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /stats/overview
func (sc *StatsController) Overview(c *gin.Context) {
	o, err := sc.stats.Overview()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /stats/department/:department
func (sc *StatsController) Department(c *gin.Context) {
	row, err := sc.stats.DepartmentStats(entity.Department(c.Param("department")))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, row)
}

// GET /admin/dashboard
func (sc *StatsController) Dashboard(c *gin.Context) {
	d, err := sc.stats.Dashboard()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, d)
}

// GET /admin/activity
func (sc *StatsController) MyActivity(c *gin.Context) {
	a, err := sc.stats.AdminActivity(utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, a)
}

// GET /admin/workloads
func (sc *StatsController) Workloads(c *gin.Context) {
	rows, err := sc.stats.AllAdminWorkloads()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /stats/top-validators?n=
func (sc *StatsController) TopValidators(c *gin.Context) {
	rows, err := sc.stats.TopAdminsValidated(intQuery(c, "n", 5))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /stats/top-resolvers?n=
func (sc *StatsController) TopResolvers(c *gin.Context) {
	rows, err := sc.stats.TopAdminsResolved(intQuery(c, "n", 5))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /stats/top-reporters?n=
func (sc *StatsController) TopReporters(c *gin.Context) {
	rows, err := sc.stats.TopUsersByReports(intQuery(c, "n", 5))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, rows)
}
