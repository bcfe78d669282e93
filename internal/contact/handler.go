package contact

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
		service: NewService(NewRepository(db), emails),
	}
}

// List godoc
// @Summary      List contact messages
// @Tags         contacts
// @Security     BearerAuth
// @Produce      json
// @Param        status     query  string  false  "OPEN, REPLIED, RESOLVED or ALL"
// @Param        search     query  string  false  "Match on name, email or subject"
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/contacts [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = api.NormalizePage(page, pageSize)

	filter := Filter{
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}

	contacts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load contacts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"contacts": contacts,
		"pagination": api.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	})
}

// Get godoc
// @Summary      Get one contact message
// @Tags         contacts
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Contact ID"
// @Success      200  {object}  Contact
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/contacts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}

	ct, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load contact"})
		return
	}

	c.JSON(http.StatusOK, ct)
}

// Reply godoc
// @Summary      Reply to a contact message
// @Description  Stores the reply and queues it to the sender by email. Set resolve to also close the message.
// @Tags         contacts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int           true  "Contact ID"
// @Param        request  body  ReplyRequest  true  "Reply text"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/contacts/{id}/reply [post]
func (h *Handler) Reply(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}

	adminID, ok := auth.GetAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "admin not authenticated"})
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ct, err := h.service.Reply(c.Request.Context(), id, adminID, req)
	if err != nil {
		if errors.Is(err, ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save reply"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "reply sent",
		"contact": ct,
	})
}

// SetStatus godoc
// @Summary      Change a contact message's status
// @Tags         contacts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int            true  "Contact ID"
// @Param        request  body  StatusRequest  true  "New status"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/contacts/{id}/status [post]
func (h *Handler) SetStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ct, err := h.service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "status updated",
		"contact": ct,
	})
}
