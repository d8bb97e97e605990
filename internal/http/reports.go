package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary Dashboard stats
// @Tags reports
// @Produce json
// @Success 200 {object} service.DashboardStats
// @Router /dashboard/stats [get]
func (s *Server) dashboardStats(c *gin.Context) {
	stats, err := s.reports.DashboardStats(c, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Calendar events for a month
// @Tags reports
// @Produce json
// @Param year query int false "Year (defaults to current)"
// @Param month query int false "Month 1-12 (defaults to current)"
// @Success 200 {array} service.CalendarEvent
// @Failure 400 {object} map[string]string
// @Router /calendar/events [get]
func (s *Server) calendarEvents(c *gin.Context) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad year"})
			return
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad month"})
			return
		}
		month = m
	}
	events, err := s.reports.CalendarEvents(c, year, time.Month(month))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}
