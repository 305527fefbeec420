package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	DetailNotFound         = "Not found."
	DetailInternalError    = "Internal server error."
	DetailAuthFailed       = "No active account found with the given credentials"
	DetailPermission       = "You do not have permission to perform this action."
	DetailMethodNotAllowed = "Method \"%s\" not allowed."
)

// respondError maps service errors to status codes and bodies.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Fields)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": DetailNotFound})
	case errors.Is(err, service.ErrAuthenticationFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": DetailAuthFailed})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"detail": DetailPermission})
	default:
		// logged by the request logger
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": DetailInternalError})
	}
}

// bindJSON decodes and validates the body, answering 400 itself on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrors(err))
		return false
	}
	return true
}

// checkFields answers 400 when a request-level presence check failed.
func checkFields(c *gin.Context, errs map[string]string) bool {
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return false
	}
	return true
}

// isFullUpdate is true for the methods that must carry every required field.
func isFullUpdate(c *gin.Context) bool {
	return c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut
}

// pathID parses a numeric path parameter; anything else is a missing object.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": DetailNotFound})
		return 0, false
	}
	return id, true
}

func pageOf(c *gin.Context) dto.Page {
	return dto.ParsePage(c.Query("limit"), c.Query("offset"))
}

// absoluteURL rebuilds the request URL as the client addressed it.
func absoluteURL(c *gin.Context) *url.URL {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return &url.URL{
		Scheme:   scheme,
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
	}
}

func paginated[T any](c *gin.Context, results []T, total int64, page dto.Page) {
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(results, total, absoluteURL(c), page))
}
