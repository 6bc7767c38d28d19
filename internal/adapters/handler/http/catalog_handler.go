package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/services"
)

type CatalogHandler struct {
	svc *services.CatalogService
}

func NewCatalogHandler(svc *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type catalogQuery struct {
	Category string `form:"category"`
	Query    string `form:"q"`
}

func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/exercises", h.Filter)
}

func (h *CatalogHandler) Filter(c *gin.Context) {
	var q catalogQuery
	if !bindQuery(c, &q) {
		return
	}
	if q.Category == "" {
		q.Category = domain.CategoryAll
	}

	exercises, err := h.svc.Filter(c.Request.Context(), q.Category, q.Query)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":  q.Category,
		"q":         q.Query,
		"count":     len(exercises),
		"exercises": exercises,
	})
}
