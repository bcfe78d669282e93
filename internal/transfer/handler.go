package transfer

import (
	"net/http"
	"strconv"

	"reviewpay/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// List godoc
// @Summary      List transfers between users
// @Tags         transfers
// @Security     BearerAuth
// @Produce      json
// @Param        search     query  string  false  "Match on sender or receiver name/email"
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/transfers [get]
func (h *Handler) List(c *gin.Context) {
	h.respond(c, transferFilterFromQuery(c))
}

// ListForUser godoc
// @Summary      Transfers a user sent or received
// @Tags         transfers
// @Security     BearerAuth
// @Produce      json
// @Param        userID     path   int  true   "User ID"
// @Param        page       query  int  false  "Page"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/wallet/{userID}/transfers [get]
func (h *Handler) ListForUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	filter := transferFilterFromQuery(c)
	filter.UserID = userID

	h.respond(c, filter)
}

func (h *Handler) respond(c *gin.Context, filter Filter) {
	transfers, total, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transfers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"transfers": transfers,
		"pagination": api.Pagination{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Total:    total,
		},
	})
}

func transferFilterFromQuery(c *gin.Context) Filter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = api.NormalizePage(page, pageSize)

	return Filter{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}
}
