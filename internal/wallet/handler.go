package wallet

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

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		service: NewService(NewRepository(db)),
	}
}

// GetUserWallet godoc
// @Summary      Wallet overview for a user
// @Description  Returns the user's basic profile and current wallet snapshot.
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Param        userID  path  int  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/wallet/{userID}/wallet [get]
func (h *Handler) GetUserWallet(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	overview, err := h.service.GetOverview(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    overview.User,
		"wallet":  overview.Wallet,
	})
}

// CreateAdjustment godoc
// @Summary      Apply a bonus or penalty to a user's wallet
// @Description  Records an immutable ledger entry and moves the balance. A penalty cannot drive the balance below zero.
// @Tags         wallet
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userID   path  int            true  "User ID"
// @Param        request  body  AdjustRequest  true  "Adjustment payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      422  {object}  api.ErrorResponse
// @Router       /admin/wallet/{userID}/wallet-adjustment [post]
func (h *Handler) CreateAdjustment(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	adminID, ok := auth.GetAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "admin not authenticated"})
		return
	}

	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.ApplyAdjustment(c.Request.Context(), userID, req, adminID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidKind):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, ErrInsufficientBalance):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "penalty would drive balance below zero"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply adjustment"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "adjustment applied",
		"previous_balance": result.PreviousBalance,
		"new_balance":      result.NewBalance,
		"adjustment":       result.Adjustment,
	})
}

// ListUserAdjustments godoc
// @Summary      Adjustment history for one user
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Param        userID     path   int     true   "User ID"
// @Param        type       query  string  false  "BONUS or PENALTY"
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/wallet/{userID}/wallet-adjustments [get]
func (h *Handler) ListUserAdjustments(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	filter := adjustmentFilterFromQuery(c)
	filter.UserID = userID

	h.respondAdjustments(c, filter)
}

// ListAdjustments godoc
// @Summary      Adjustment history across all users
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Param        type       query  string  false  "BONUS or PENALTY"
// @Param        search     query  string  false  "Match on user name or email"
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/wallet-adjustments [get]
func (h *Handler) ListAdjustments(c *gin.Context) {
	h.respondAdjustments(c, adjustmentFilterFromQuery(c))
}

func (h *Handler) respondAdjustments(c *gin.Context, filter AdjustmentFilter) {
	adjs, total, err := h.service.ListAdjustments(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load adjustments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"adjustments": adjs,
		"pagination": api.Pagination{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Total:    total,
		},
	})
}

func adjustmentFilterFromQuery(c *gin.Context) AdjustmentFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = api.NormalizePage(page, pageSize)

	return AdjustmentFilter{
		Kind:     c.Query("type"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}
}
