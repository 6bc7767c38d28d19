package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/services"
)

type RecordHandler struct {
	svc *services.RecordService
	now func() time.Time
}

func NewRecordHandler(svc *services.RecordService) *RecordHandler {
	return &RecordHandler{
		svc: svc,
		now: time.Now,
	}
}

type recordRequest struct {
	List []exerciseItemRequest `json:"list" binding:"dive"`
}

type listRecordsQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type calendarResponse struct {
	Month      string                `json:"month"`
	Year       int                   `json:"year"`
	MonthIndex int                   `json:"month_index"`
	Prev       string                `json:"prev"`
	Next       string                `json:"next"`
	Cells      []domain.CalendarCell `json:"cells"`
}

func (h *RecordHandler) RegisterRoutes(router *gin.RouterGroup) {
	records := router.Group("/records")
	{
		records.GET("", h.List)
		records.GET("/:date", h.Get)
		records.PUT("/:date", h.Record)
	}
	router.GET("/calendar", h.Calendar)
}

// Record replaces whatever was stored for the date. An empty list marks a
// day without exercises.
func (h *RecordHandler) Record(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req recordRequest
	if !bindJSON(c, &req, true) {
		return
	}

	item, err := h.svc.Record(c.Request.Context(), services.RecordInput{
		UserID: userID,
		Date:   c.Param("date"),
		List:   toDomainItems(req.List),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *RecordHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	item, err := h.svc.Get(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *RecordHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var q listRecordsQuery
	if !bindQuery(c, &q) {
		return
	}

	items, err := h.svc.List(c.Request.Context(), userID, q.From, q.To)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// Calendar renders the month grid. month is 1-based and may roll over into
// neighbouring years; both parameters default to the current month.
func (h *RecordHandler) Calendar(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	current := domain.CurrentYearMonth(h.now())

	year, ok := intQuery(c, "year", current.Year)
	if !ok {
		return
	}
	month, ok := intQuery(c, "month", current.Month+1)
	if !ok {
		return
	}

	ym, cells, err := h.svc.MonthGrid(c.Request.Context(), userID, year, month-1)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, calendarResponse{
		Month:      ym.String(),
		Year:       ym.Year,
		MonthIndex: ym.Month,
		Prev:       ym.Prev().String(),
		Next:       ym.Next().String(),
		Cells:      cells,
	})
}

func intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fieldError(c, http.StatusBadRequest, name+" must be an integer", name, "numeric")
		return 0, false
	}
	return v, true
}
