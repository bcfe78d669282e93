package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// GetSummary godoc
// @Summary      Dashboard headline numbers
// @Description  User counts by status, aggregate wallet totals and pending work queues.
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/dashboard [get]
func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.repo.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
	})
}

// GetMonthlyIncome godoc
// @Summary      Monthly income series for a year
// @Description  One point per month, zero-filled, covering review income, refer income and transfer fees.
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        year  query  int  false  "Year, defaults to the current one"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  api.ErrorResponse
// @Router       /admin/dashboard/monthly-income [get]
func (h *Handler) GetMonthlyIncome(c *gin.Context) {
	year := time.Now().UTC().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = parsed
	}

	review, refer, fees, err := h.repo.MonthlyIncome(c.Request.Context(), year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load income"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"year":    year,
		"income":  MergeMonthly(year, review, refer, fees),
	})
}

// GetDailyIncome godoc
// @Summary      Daily income series for a month
// @Description  One point per calendar day, zero-filled, honoring leap years.
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        month  query  string  false  "Month as YYYY-MM, defaults to the current one"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  api.ErrorResponse
// @Router       /admin/dashboard/daily-income [get]
func (h *Handler) GetDailyIncome(c *gin.Context) {
	month := c.DefaultQuery("month", time.Now().UTC().Format("2006-01"))
	if _, err := time.Parse("2006-01", month); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidMonth.Error()})
		return
	}

	review, refer, err := h.repo.DailyIncome(c.Request.Context(), month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load income"})
		return
	}

	points, err := MergeDaily(month, review, refer)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"month":   month,
		"income":  points,
	})
}
