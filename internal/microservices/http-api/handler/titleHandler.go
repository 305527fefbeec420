package handler

import (
	"net/http"
	"strconv"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// List filters by name, year, genre and category.
// GET /api/v1/titles/
func (h *TitleHandler) List(c *gin.Context) {
	filter := repository.TitleFilter{
		Name:         c.Query("name"),
		GenreSlug:    c.Query("genre"),
		CategorySlug: c.Query("category"),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"year": "Enter a number."})
			return
		}
		filter.Year = &year
	}

	page := pageOf(c)
	titles, total, err := h.titleService.List(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, dto.FromModelsToTitleResponses(titles), total, page)
}

// GET /api/v1/titles/:title_id/
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	title, err := h.titleService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(title))
}

// POST /api/v1/titles/
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.TitleRequest
	if !bindJSON(c, &req) || !checkFields(c, req.Validate(true)) {
		return
	}

	title, err := h.titleService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToTitleResponse(title))
}

// PUT, PATCH /api/v1/titles/:title_id/
func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	var req dto.TitleRequest
	if !bindJSON(c, &req) || !checkFields(c, req.Validate(isFullUpdate(c))) {
		return
	}

	title, err := h.titleService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(title))
}

// DELETE /api/v1/titles/:title_id/
func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
