package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/services"
)

type MeHandler struct {
	auth     *services.AuthService
	routines *services.RoutineService
	now      func() time.Time
}

func NewMeHandler(auth *services.AuthService, routines *services.RoutineService) *MeHandler {
	return &MeHandler{
		auth:     auth,
		routines: routines,
		now:      time.Now,
	}
}

type profileRequest struct {
	Name   string `json:"name" binding:"required"`
	Gender string `json:"gender"`
	Birth  string `json:"birth"`
	Height int    `json:"height" binding:"min=0"`
}

type currentRoutineRequest struct {
	RoutineID string `json:"routine_id"`
}

type todayResponse struct {
	Date      string                `json:"date"`
	Weekday   int                   `json:"weekday"`
	Routine   *domain.Routine       `json:"routine"`
	Exercises []domain.ExerciseItem `json:"exercises"`
}

func (h *MeHandler) RegisterRoutes(router *gin.RouterGroup) {
	me := router.Group("/me")
	{
		me.GET("", h.Me)
		me.PUT("/profile", h.UpdateProfile)
		me.PUT("/current-routine", h.SetCurrentRoutine)
		me.GET("/today", h.Today)
	}
}

func (h *MeHandler) Me(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req profileRequest
	if !bindJSON(c, &req, false) {
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, domain.Profile{
		Name:   req.Name,
		Gender: req.Gender,
		Birth:  req.Birth,
		Height: req.Height,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// SetCurrentRoutine selects the routine shown on the home screen. An empty
// routine_id clears the selection.
func (h *MeHandler) SetCurrentRoutine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req currentRoutineRequest
	if !bindJSON(c, &req, false) {
		return
	}

	if err := h.routines.SetCurrentRoutine(c.Request.Context(), userID, req.RoutineID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MeHandler) Today(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	now := h.now()
	routine, exercises, err := h.routines.Today(c.Request.Context(), userID, now)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, todayResponse{
		Date:      domain.FormatDate(now),
		Weekday:   int(now.Weekday()),
		Routine:   routine,
		Exercises: exercises,
	})
}
