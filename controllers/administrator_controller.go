package controllers

import (
	"civireport/entity"
	"civireport/pkg/resp"
	"civireport/services"
	"civireport/utils"

	"github.com/gin-gonic/gin"
)

type AdministratorController struct {
	admins *services.AdministratorService
}

func NewAdministratorController(admins *services.AdministratorService) *AdministratorController {
	return &AdministratorController{admins: admins}
}

// GET /administrators
func (ac *AdministratorController) List(c *gin.Context) {
	page, limit := utils.PageParams(c)
	admins, total, err := ac.admins.List(limit, (page-1)*limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{
		"administrators": admins,
		"total_count":    total,
		"total_pages":    utils.TotalPages(total, limit),
		"page":           page,
	})
}

// GET /administrators/:id
func (ac *AdministratorController) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	details, err := ac.admins.Details(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, details)
}

// GET /administrators/department/:department
func (ac *AdministratorController) ByDepartment(c *gin.Context) {
	dept := entity.Department(c.Param("department"))
	admins, err := ac.admins.ListByDepartment(dept)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, admins)
}

// GET /administrators/available
func (ac *AdministratorController) Available(c *gin.Context) {
	admins, err := ac.admins.ListAvailable()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, admins)
}

// PATCH /administrators/:id
func (ac *AdministratorController) UpdateDepartment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Department string `json:"department" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	admin, err := ac.admins.UpdateDepartment(id, entity.Department(req.Department))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, admin)
}

// DELETE /administrators/:id
func (ac *AdministratorController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := ac.admins.Delete(id); err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// GET /administrators/me
func (ac *AdministratorController) Me(c *gin.Context) {
	info, err := ac.admins.InfoForUser(utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, info)
}
