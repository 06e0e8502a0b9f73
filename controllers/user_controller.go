package controllers

import (
	"civireport/pkg/resp"
	"civireport/services"
	"civireport/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// GET /users
func (uc *UserController) List(c *gin.Context) {
	page, limit := utils.PageParams(c)
	users, total, err := uc.users.List(limit, (page-1)*limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{
		"users":       users,
		"total_count": total,
		"total_pages": utils.TotalPages(total, limit),
		"page":        page,
	})
}

// GET /users/:id
func (uc *UserController) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := uc.users.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, user)
}

// PATCH /users/:id
func (uc *UserController) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Email     *string `json:"email"`
		Password  *string `json:"password"`
		Admin     *bool   `json:"admin"`
		Suspended *bool   `json:"suspended"`
		Pinned    *bool   `json:"pinned"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := uc.users.Update(id, services.UserUpdate{
		Email:     req.Email,
		Password:  req.Password,
		Admin:     req.Admin,
		Suspended: req.Suspended,
		Pinned:    req.Pinned,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, user)
}

// DELETE /users/:id
func (uc *UserController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := uc.users.Delete(id); err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

func (uc *UserController) flagHandler(set func(uint) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		user, err := set(id)
		if err != nil {
			respondErr(c, err)
			return
		}
		resp.OK(c, user)
	}
}

// PATCH /users/:id/suspend etc.
func (uc *UserController) Suspend(c *gin.Context) {
	uc.flagHandler(func(id uint) (any, error) { return uc.users.Suspend(id) })(c)
}
func (uc *UserController) Unsuspend(c *gin.Context) {
	uc.flagHandler(func(id uint) (any, error) { return uc.users.Unsuspend(id) })(c)
}
func (uc *UserController) Pin(c *gin.Context) {
	uc.flagHandler(func(id uint) (any, error) { return uc.users.Pin(id) })(c)
}
func (uc *UserController) Unpin(c *gin.Context) {
	uc.flagHandler(func(id uint) (any, error) { return uc.users.Unpin(id) })(c)
}

// GET /users/:id/stats
func (uc *UserController) Stats(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	stats, err := uc.users.Stats(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, stats)
}

// POST /users/redeem-code
func (uc *UserController) RedeemCode(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	result, err := uc.users.RedeemAdminCode(utils.CurrentUserID(c), req.Code)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, result)
}
