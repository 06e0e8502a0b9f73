package controllers

import (
	"civireport/pkg/resp"
	"civireport/services"
	"civireport/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := ac.auth.Register(req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, user)
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, token, err := ac.auth.Login(req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// POST /auth/logout
//
// Tokens are stateless; logout only tells the client to drop its copy.
func (ac *AuthController) Logout(c *gin.Context) {
	resp.OK(c, gin.H{"message": "logged out"})
}

// GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.auth.Me(utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, user)
}
