package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

const monthLayout = "2006-01"

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetStatistics)
	r.GET("/stats/calendar", h.GetCalendar)
}

// GetStatistics godoc
// @Summary      Streaks, success rate and achievements
// @Description  Evaluated over the 30 days ending on today (default: the server's current day).
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        today  query     string  false  "Reference day (YYYY-MM-DD)"
// @Success      200    {object}  domain.StatsReport
// @Failure      400    {object}  errorResponse
// @Router       /stats [get]
func (h *StatsHandler) GetStatistics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var today time.Time
	if raw := c.Query("today"); raw != "" {
		if !domain.IsValidDay(raw) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid today format, expected YYYY-MM-DD"})
			return
		}
		today, _ = domain.ParseDay(raw, h.svc.Location())
	}

	report, err := h.svc.GetStatistics(c.Request.Context(), domain.StatsInput{
		UserID: userID,
		Today:  today,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetCalendar godoc
// @Summary      Per-day completion levels for one month
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     string  false  "Month (YYYY-MM), defaults to the current one"
// @Success      200    {object}  domain.CalendarMonth
// @Failure      400    {object}  errorResponse
// @Router       /stats/calendar [get]
func (h *StatsHandler) GetCalendar(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var month time.Time
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.ParseInLocation(monthLayout, raw, h.svc.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month format, expected YYYY-MM"})
			return
		}
		month = parsed
	}

	cal, err := h.svc.GetCalendar(c.Request.Context(), domain.CalendarInput{
		UserID: userID,
		Month:  month,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, cal)
}
