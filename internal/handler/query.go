package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"betsense/internal/forms"
	"betsense/internal/gateway"
	"betsense/internal/models"
	"betsense/internal/repository"
)

// SurfaceHeader selects the surface an action result is sequenced on.
const SurfaceHeader = "X-Surface-Key"

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func floatQueryPtr(c *gin.Context, key string) *float64 {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return &f
		}
	}
	return nil
}

func boolQueryPtr(c *gin.Context, key string) *bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return &b
		}
	}
	return nil
}

func strQueryPtr(c *gin.Context, key string) *string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return &val
	}
	return nil
}

func paginationMeta(limit, offset int, total int64) map[string]any {
	if limit <= 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	hasNext := int64(offset+limit) < total
	return map[string]any{
		"limit":    limit,
		"offset":   offset,
		"total":    total,
		"has_next": hasNext,
	}
}

func surfaceKey(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(SurfaceHeader))
}

// respondInvalid writes a 400 for form and contract validation errors and
// reports whether it did.
func respondInvalid(c *gin.Context, err error) bool {
	var fields forms.FieldErrors
	if errors.As(err, &fields) {
		Invalid(c, fields)
		return true
	}
	var verr *gateway.ValidationError
	if errors.As(err, &verr) {
		Invalid(c, verr.Fields)
		return true
	}
	return false
}

// respondStoreError maps repository errors to status codes.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		Error(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, repository.ErrDuplicateID):
		Error(c, http.StatusConflict, "duplicate id", nil)
	case errors.Is(err, models.ErrInvalidNumber):
		Error(c, http.StatusBadRequest, "invalid number", nil)
	default:
		Error(c, http.StatusInternalServerError, "store unavailable", nil)
	}
}

func bindError(c *gin.Context, err error) {
	Error(c, http.StatusBadRequest, "invalid request body", map[string]any{"error": err.Error()})
}
