package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
	now func() time.Time
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc, now: time.Now}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetPeriodStats)
}

// GetPeriodStats defaults to the seven days ending today.
func (h *StatsHandler) GetPeriodStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	endDate, ok := dateQuery(c, "end_date", h.now().UTC())
	if !ok {
		return
	}
	startDate, ok := dateQuery(c, "start_date", endDate.AddDate(0, 0, -6))
	if !ok {
		return
	}

	stats, err := h.svc.GetPeriodStats(c.Request.Context(), domain.StatsInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func dateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		fieldError(c, http.StatusBadRequest, "invalid "+name+" format, expected YYYY-MM-DD", name, "iso8601")
		return time.Time{}, false
	}
	return t, true
}
