package handlers

import (
	"net/http"
	"strings"

	"restaurant_pos/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthRequired resolves the bearer token to the acting employee and puts
// the identity on the request context. Everything downstream receives an
// explicit actor instead of reading ambient session state.
func AuthRequired(employeeService services.EmployeeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		session, err := employeeService.ResolveSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set("employee_id", session.EmployeeID)
		c.Set("employee_role", session.Role)
		c.Next()
	}
}

func actorID(c *gin.Context) uint {
	value, ok := c.Get("employee_id")
	if !ok {
		return 0
	}
	id, _ := value.(uint)
	return id
}
