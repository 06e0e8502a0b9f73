package controllers

import (
	"fmt"
	"path/filepath"
	"strings"

	"civireport/pkg/resp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type UploadController struct {
	dir string
}

func NewUploadController(dir string) *UploadController {
	return &UploadController{dir: dir}
}

// POST /upload
//
// Stores the image under a random name so uploads can never collide or
// traverse out of the upload directory.
func (uc *UploadController) Image(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		resp.BadRequest(c, "image file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		resp.BadRequest(c, fmt.Sprintf("unsupported file type %q", ext))
		return
	}

	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(uc.dir, name)); err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.Created(c, gin.H{"url": "/uploads/" + name})
}
