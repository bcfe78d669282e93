package withdraw

import (
	"errors"
	"net/http"
	"strconv"

	"reviewpay/internal/api"
	"reviewpay/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, emails EmailSender) *Handler {
	return &Handler{
		service: NewService(NewRepository(db), NewUserLookup(db), emails),
	}
}

// List godoc
// @Summary      List withdraw requests
// @Tags         withdraws
// @Security     BearerAuth
// @Produce      json
// @Param        status     query  string  false  "pending, approved, rejected or all"
// @Param        search     query  string  false  "Match on user name or email"
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/withdraws [get]
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

	withdraws, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load withdraws"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"withdraws": withdraws,
		"pagination": api.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	})
}

// SetStatus godoc
// @Summary      Approve or reject a withdraw request
// @Description  Approval debits the user's wallet; rejection releases the request. Only pending requests can be decided.
// @Tags         withdraws
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int            true  "Withdraw ID"
// @Param        request  body  StatusRequest  true  "Decision"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Failure      422  {object}  api.ErrorResponse
// @Router       /admin/withdraws/{id}/status [post]
func (h *Handler) SetStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid withdraw id"})
		return
	}

	adminID, ok := auth.GetAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "admin not authenticated"})
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.service.Decide(c.Request.Context(), id, adminID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrWithdrawNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "withdraw request not found"})
		case errors.Is(err, ErrNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": "withdraw request already decided"})
		case errors.Is(err, ErrInsufficientBalance):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "wallet balance is below the requested amount"})
		case errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decide withdraw"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "withdraw " + w.Status,
		"withdraw": w,
	})
}
