package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/smartcampus/internal/dto"
	"github.com/lshigami/smartcampus/internal/service"
	"github.com/rs/zerolog/log"
)

// StatusFor maps a service error kind to its HTTP status.
func StatusFor(kind service.ErrorKind) int {
	switch kind {
	case service.KindValidation, service.KindAlreadySubmitted:
		return http.StatusBadRequest
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondError renders err as a dto.ErrorResponse. The underlying cause is
// logged, never sent.
func RespondError(c *gin.Context, err error) {
	kind := service.KindOf(err)
	status := StatusFor(kind)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: string(kind), Message: service.MessageOf(err)})
}

// BadRequest is for failures detected in the transport layer itself.
func BadRequest(c *gin.Context, message string, details ...string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   string(service.KindValidation),
		Message: message,
		Details: details,
	})
}

// ParseID reads a positive uint id from a query or path value.
func ParseID(raw, name string) (uint, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s format", name)
	}
	return uint(id), nil
}

// SendResults writes a rendered results payload; CSV is sent as a download.
func SendResults(c *gin.Context, rendered *service.RenderedResults) {
	if strings.HasPrefix(rendered.ContentType, "text/csv") {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rendered.Filename))
	}
	c.Data(http.StatusOK, rendered.ContentType, rendered.Body)
}
