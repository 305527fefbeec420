package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// parent reads the title and review ids every comment route carries.
func parent(c *gin.Context) (titleID, reviewID int64, ok bool) {
	if titleID, ok = pathID(c, "title_id"); !ok {
		return 0, 0, false
	}
	if reviewID, ok = pathID(c, "review_id"); !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}

// GET /api/v1/titles/:title_id/reviews/:review_id/comments/
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := parent(c)
	if !ok {
		return
	}

	page := pageOf(c)
	comments, total, err := h.commentService.List(c.Request.Context(), titleID, reviewID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, dto.FromModelsToCommentResponses(comments), total, page)
}

// GET /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id/
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := parent(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

// POST /api/v1/titles/:title_id/reviews/:review_id/comments/
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := parent(c)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, &req) || !checkFields(c, req.Validate(true)) {
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), middleware.CurrentUser(c), titleID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToCommentResponse(comment))
}

// PUT, PATCH /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id/
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := parent(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, &req) || !checkFields(c, req.Validate(isFullUpdate(c))) {
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), middleware.CurrentUser(c), titleID, reviewID, commentID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

// DELETE /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id/
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := parent(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), middleware.CurrentUser(c), titleID, reviewID, commentID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
