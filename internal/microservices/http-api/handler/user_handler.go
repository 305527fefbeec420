package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/v1/users/?search=
func (h *UserHandler) List(c *gin.Context) {
	page := pageOf(c)
	users, total, err := h.userService.List(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, dto.FromModelsToUserResponses(users), total, page)
}

// POST /api/v1/users/
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.UserRequest
	if !bindJSON(c, &req) || !checkFields(c, req.Validate(true)) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

// GET /api/v1/users/:username/
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// PUT, PATCH /api/v1/users/:username/
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UserRequest
	if !bindJSON(c, &req) || !checkFields(c, req.Validate(isFullUpdate(c))) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// DELETE /api/v1/users/:username/
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v1/users/me/
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(middleware.CurrentUser(c)))
}

// PATCH /api/v1/users/me/
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UserRequest
	if !bindJSON(c, &req) || !checkFields(c, req.Validate(false)) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}
