package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/services"
)

type RoutineHandler struct {
	svc *services.RoutineService
}

func NewRoutineHandler(svc *services.RoutineService) *RoutineHandler {
	return &RoutineHandler{
		svc: svc,
	}
}

type exerciseItemRequest struct {
	Exercise      string `json:"exercise" binding:"required"`
	Weight        int    `json:"weight" binding:"min=0,max=999"`
	NumberOfTimes int    `json:"number_of_times" binding:"min=0,max=999"`
	NumberOfSets  int    `json:"number_of_sets" binding:"min=0,max=20"`
}

func (r exerciseItemRequest) toDomain() domain.ExerciseItem {
	return domain.ExerciseItem{
		Exercise:      r.Exercise,
		Weight:        r.Weight,
		NumberOfTimes: r.NumberOfTimes,
		NumberOfSets:  r.NumberOfSets,
	}
}

func toDomainItems(items []exerciseItemRequest) []domain.ExerciseItem {
	out := make([]domain.ExerciseItem, 0, len(items))
	for _, it := range items {
		out = append(out, it.toDomain())
	}
	return out
}

type createRoutineRequest struct {
	RoutineID   string              `json:"routine_id"`
	Title       string              `json:"title"`
	WeekRoutine *domain.WeekRoutine `json:"week_routine"`
}

type renameRoutineRequest struct {
	Title string `json:"title" binding:"required"`
}

type reorderRequest struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

func (h *RoutineHandler) RegisterRoutes(router *gin.RouterGroup) {
	routines := router.Group("/routines")
	{
		routines.GET("", h.List)
		routines.POST("", h.Create)
		routines.GET("/:id", h.Get)
		routines.PATCH("/:id", h.Rename)
		routines.DELETE("/:id", h.Delete)
		routines.POST("/:id/days/:day/exercises", h.AddExercise)
		routines.DELETE("/:id/days/:day/exercises/:index", h.RemoveExercise)
		routines.POST("/:id/days/:day/reorder", h.ReorderExercise)
	}
}

func (h *RoutineHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Create adds a routine. Every field is optional: the id is generated, the
// title defaults and the week starts empty.
func (h *RoutineHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req createRoutineRequest
	if !bindJSON(c, &req, true) {
		return
	}

	routine, err := h.svc.Create(c.Request.Context(), services.CreateRoutineInput{
		UserID:      userID,
		RoutineID:   req.RoutineID,
		Title:       req.Title,
		WeekRoutine: req.WeekRoutine,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, routine)
}

func (h *RoutineHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	routine, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, routine)
}

func (h *RoutineHandler) Rename(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req renameRoutineRequest
	if !bindJSON(c, &req, false) {
		return
	}

	routine, err := h.svc.Rename(c.Request.Context(), userID, c.Param("id"), req.Title)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, routine)
}

func (h *RoutineHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RoutineHandler) AddExercise(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	day, ok := dayParam(c)
	if !ok {
		return
	}

	var req exerciseItemRequest
	if !bindJSON(c, &req, false) {
		return
	}

	routine, err := h.svc.AddExercise(c.Request.Context(), services.AddExerciseInput{
		UserID:    userID,
		RoutineID: c.Param("id"),
		Day:       day,
		Item:      req.toDomain(),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, routine)
}

func (h *RoutineHandler) RemoveExercise(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	day, ok := dayParam(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		handleError(c, domain.ErrIndexOutOfRange)
		return
	}

	routine, err := h.svc.RemoveExercise(c.Request.Context(), userID, c.Param("id"), day, index)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, routine)
}

func (h *RoutineHandler) ReorderExercise(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	day, ok := dayParam(c)
	if !ok {
		return
	}

	var req reorderRequest
	if !bindJSON(c, &req, false) {
		return
	}

	routine, err := h.svc.ReorderExercise(c.Request.Context(), services.ReorderExerciseInput{
		UserID:    userID,
		RoutineID: c.Param("id"),
		Day:       day,
		From:      *req.From,
		To:        *req.To,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, routine)
}

func dayParam(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		handleError(c, domain.ErrInvalidDayIndex)
		return 0, false
	}
	return day, true
}
