package notice

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"reviewpay/internal/api"
	"reviewpay/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

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
// @Summary      List notices
// @Tags         notices
// @Security     BearerAuth
// @Produce      json
// @Param        active  query  bool  false  "Only active notices"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/notices [get]
func (h *Handler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	notices, err := h.repo.List(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"notices": notices,
	})
}

// Get godoc
// @Summary      Get one notice
// @Tags         notices
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Notice ID"
// @Success      200  {object}  Notice
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/notices/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice id"})
		return
	}

	n, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNoticeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notice"})
		return
	}

	c.JSON(http.StatusOK, n)
}

// Create godoc
// @Summary      Create a notice
// @Description  Multipart form with title, content, serial and an optional file attachment.
// @Tags         notices
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        title    formData  string  true   "Title"
// @Param        content  formData  string  true   "Body"
// @Param        serial   formData  int     false  "Display order"
// @Param        file     formData  file    false  "Attachment"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  api.ErrorResponse
// @Router       /admin/notices [post]
func (h *Handler) Create(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filePath, err := h.saveFile(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store attachment"})
		return
	}

	n, err := h.repo.Create(c.Request.Context(), req, filePath)
	if err != nil {
		h.removeFile(filePath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create notice"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "notice created",
		"notice":  n,
	})
}

// Update godoc
// @Summary      Update a notice
// @Description  Multipart form; a new file replaces the stored attachment, otherwise it is kept.
// @Tags         notices
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id       path      int     true   "Notice ID"
// @Param        title    formData  string  true   "Title"
// @Param        content  formData  string  true   "Body"
// @Param        serial   formData  int     false  "Display order"
// @Param        file     formData  file    false  "Attachment"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/notices/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice id"})
		return
	}

	var req SaveRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var newPath *string
	if path, err := h.saveFile(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store attachment"})
		return
	} else if path != "" {
		newPath = &path
	}

	n, err := h.repo.Update(c.Request.Context(), id, req, newPath)
	if err != nil {
		if newPath != nil {
			h.removeFile(*newPath)
		}
		if errors.Is(err, ErrNoticeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "notice updated",
		"notice":  n,
	})
}

// SetActive godoc
// @Summary      Toggle a notice's visibility
// @Tags         notices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int            true  "Notice ID"
// @Param        request  body  ActiveRequest  true  "Active flag"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/notices/{id}/active [post]
func (h *Handler) SetActive(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice id"})
		return
	}

	var req ActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.repo.SetActive(c.Request.Context(), id, req.IsActive)
	if err != nil {
		if errors.Is(err, ErrNoticeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "notice updated",
		"notice":  n,
	})
}

// Delete godoc
// @Summary      Delete a notice
// @Tags         notices
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Notice ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/notices/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice id"})
		return
	}

	path, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNoticeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete notice"})
		return
	}

	h.removeFile(path)

	c.JSON(http.StatusOK, api.MessageResponse{
		Success: true,
		Message: "notice deleted",
	})
}

// saveFile stores the optional "file" form part and returns its path, or ""
// when the request carries no file.
func (h *Handler) saveFile(c *gin.Context) (string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", nil
	}

	dir := filepath.Join(h.uploadDir, "notices")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	dst := filepath.Join(dir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}

	return dst, nil
}

func (h *Handler) removeFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Error("failed to remove upload", "path", path, "error", err)
	}
}
