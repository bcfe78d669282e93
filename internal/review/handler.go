package review

import (
	"errors"
	"net/http"
	"strconv"

	"reviewpay/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		service: NewService(NewRepository(db)),
	}
}

// List godoc
// @Summary      List reviews
// @Description  Paginated review listing, filterable by moderation status.
// @Tags         reviews
// @Security     BearerAuth
// @Produce      json
// @Param        status     query  string  false  "PENDING, APPROVED, REJECTED or ALL"
// @Param        search     query  string  false  "Match on user or business name"
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/reviews [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = api.NormalizePage(page, pageSize)

	filter := Filter{
		Status:   c.DefaultQuery("status", StatusPending),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}

	reviews, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": reviews,
		"pagination": api.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	})
}

// Approve godoc
// @Summary      Approve a pending review
// @Description  Marks the review approved and credits the reviewer's wallet with the reward.
// @Tags         reviews
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Review ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /admin/reviews/{id}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	h.moderate(c, StatusApproved)
}

// Reject godoc
// @Summary      Reject a pending review
// @Tags         reviews
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Review ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /admin/reviews/{id}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	h.moderate(c, StatusRejected)
}

// SetStatus godoc
// @Summary      Moderate a review by explicit status
// @Tags         reviews
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int            true  "Review ID"
// @Param        request  body  StatusRequest  true  "APPROVED or REJECTED"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /admin/reviews/{id}/status [post]
func (h *Handler) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.moderate(c, req.Status)
}

func (h *Handler) moderate(c *gin.Context, status string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	rev, err := h.service.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		case errors.Is(err, ErrNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": "review already moderated"})
		case errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to moderate review"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "review " + rev.Status,
		"review":  rev,
	})
}
