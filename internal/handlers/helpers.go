package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"callcenter/internal/authz"
	"callcenter/internal/models"
	"callcenter/internal/services"
)

// tolerant of the value type (int / int64 / float64 / string)
func getInt64FromCtx(c *gin.Context, key string) (int64, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		return int64(t), true
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getUserAndRole(c *gin.Context) (userID int64, roleID int) {
	if id, ok := getInt64FromCtx(c, "user_id"); ok {
		userID = id
	}
	if id, ok := getInt64FromCtx(c, "role_id"); ok {
		roleID = int(id)
	}
	return
}

func parseID(c *gin.Context, tag string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		log.Printf("%s[err] invalid id=%q", tag, c.Param("id"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// scopeToAgent pins agents to their own rows; supervisors may narrow with ?assignee_id.
func scopeToAgent(c *gin.Context, filter *models.TaskFilter) bool {
	userID, roleID := getUserAndRole(c)
	if !authz.IsElevated(roleID) {
		filter.AssigneeID = &userID
		return true
	}
	if v, ok := c.GetQuery("assignee_id"); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignee_id"})
			return false
		}
		filter.AssigneeID = &id
	}
	return true
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrRetailerNotFound),
		errors.Is(err, services.ErrAgentNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrTaskCompleted),
		errors.Is(err, services.ErrRetailerExists),
		errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidOutcome),
		errors.Is(err, models.ErrInvalidPriority),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidDueDate),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrInvalidUser),
		errors.Is(err, services.ErrInvalidRetailer),
		errors.Is(err, services.ErrNoReportAddress):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidRefresh):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrEmailDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, tag string, err error) {
	code := statusFor(err)
	log.Printf("%s[err] status=%d: %v", tag, code, err)
	if code == http.StatusInternalServerError {
		c.JSON(code, gin.H{"error": "internal error"})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
