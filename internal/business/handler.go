package business

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"reviewpay/internal/api"
	"reviewpay/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type Handler struct {
	repo      Repository
	uploadDir string
}

func NewHandler(db *sqlx.DB, uploadDir string) *Handler {
	return &Handler{
		repo:      NewRepository(db),
		uploadDir: uploadDir,
	}
}

// List godoc
// @Summary      List businesses
// @Tags         businesses
// @Security     BearerAuth
// @Produce      json
// @Param        search     query  string  false  "Match on name, category or address"
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/businesses [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = api.NormalizePage(page, pageSize)

	filter := Filter{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}

	businesses, total, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load businesses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"businesses": businesses,
		"pagination": api.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	})
}

// Get godoc
// @Summary      Get one business with its images
// @Tags         businesses
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Business ID"
// @Success      200  {object}  BusinessWithImages
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/businesses/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid business id"})
		return
	}

	b, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBusinessNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load business"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// Create godoc
// @Summary      Create a business
// @Tags         businesses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  SaveRequest  true  "Business fields"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  api.ErrorResponse
// @Router       /admin/businesses [post]
func (h *Handler) Create(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create business"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "business created",
		"business": b,
	})
}

// Update godoc
// @Summary      Update a business
// @Tags         businesses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int          true  "Business ID"
// @Param        request  body  SaveRequest  true  "Business fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/businesses/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid business id"})
		return
	}

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrBusinessNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update business"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "business updated",
		"business": b,
	})
}

// Delete godoc
// @Summary      Delete a business and its images
// @Tags         businesses
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Business ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/businesses/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid business id"})
		return
	}

	paths, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBusinessNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete business"})
		return
	}

	h.removeFiles(paths...)

	c.JSON(http.StatusOK, api.MessageResponse{
		Success: true,
		Message: "business deleted",
	})
}

// UploadImage godoc
// @Summary      Attach an image to a business
// @Tags         businesses
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id          path      int     true   "Business ID"
// @Param        image       formData  file    true   "Image file (jpg, jpeg, png, webp)"
// @Param        sort_order  formData  int     false  "Display order"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/businesses/{id}/images [post]
func (h *Handler) UploadImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid business id"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	sortOrder, _ := strconv.Atoi(c.DefaultPostForm("sort_order", "0"))

	dir := filepath.Join(h.uploadDir, "businesses")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	filename := fmt.Sprintf("%d_%d%s", id, time.Now().UnixNano(), ext)
	dst := filepath.Join(dir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	img, err := h.repo.AddImage(c.Request.Context(), id, dst, sortOrder)
	if err != nil {
		h.removeFiles(dst)
		if errors.Is(err, ErrBusinessNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "image uploaded",
		"image":   img,
	})
}

// UpdateImage godoc
// @Summary      Change an image's display order
// @Tags         businesses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        imageID  path  int                 true  "Image ID"
// @Param        request  body  ImageUpdateRequest  true  "New sort order"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/business-images/{imageID} [put]
func (h *Handler) UpdateImage(c *gin.Context) {
	imageID, err := strconv.Atoi(c.Param("imageID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	var req ImageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	img, err := h.repo.UpdateImage(c.Request.Context(), imageID, req.SortOrder)
	if err != nil {
		if errors.Is(err, ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "image updated",
		"image":   img,
	})
}

// DeleteImage godoc
// @Summary      Delete a business image
// @Tags         businesses
// @Security     BearerAuth
// @Produce      json
// @Param        imageID  path  int  true  "Image ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/business-images/{imageID} [delete]
func (h *Handler) DeleteImage(c *gin.Context) {
	imageID, err := strconv.Atoi(c.Param("imageID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	path, err := h.repo.DeleteImage(c.Request.Context(), imageID)
	if err != nil {
		if errors.Is(err, ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}

	h.removeFiles(path)

	c.JSON(http.StatusOK, api.MessageResponse{
		Success: true,
		Message: "image deleted",
	})
}

func (h *Handler) removeFiles(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Error("failed to remove upload", "path", p, "error", err)
		}
	}
}
