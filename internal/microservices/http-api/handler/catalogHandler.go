package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// SlugHandler serves the list, create and delete endpoints of categories and genres.
type SlugHandler[T models.SlugEntity] struct {
	service *service.SlugService[T]
}

func NewSlugHandler[T models.SlugEntity](svc *service.SlugService[T]) *SlugHandler[T] {
	return &SlugHandler[T]{service: svc}
}

// GET /api/v1/{categories,genres}/?search=
func (h *SlugHandler[T]) List(c *gin.Context) {
	page := pageOf(c)
	list, total, err := h.service.List(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, list, total, page)
}

// POST /api/v1/{categories,genres}/
func (h *SlugHandler[T]) Create(c *gin.Context) {
	var req dto.SlugRequest
	if !bindJSON(c, &req) {
		return
	}

	entity, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity)
}

// DELETE /api/v1/{categories,genres}/:slug/
func (h *SlugHandler[T]) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
