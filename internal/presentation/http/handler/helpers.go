package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetEmployeeID extracts the employee ID from the Gin context
func GetEmployeeID(c *gin.Context) *uuid.UUID {
	idVal, exists := c.Get("employee_id")
	if !exists {
		return nil
	}
	employeeID, ok := idVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &employeeID
}

// GetEmployeeName extracts the employee display name from the Gin context.
// May be blank when the employee record carries no name.
func GetEmployeeName(c *gin.Context) string {
	name, exists := c.Get("employee_name")
	if !exists {
		return ""
	}
	return name.(string)
}

// GetPermissions extracts the employee's permissions from the Gin context
func GetPermissions(c *gin.Context) []string {
	permissions, exists := c.Get("permissions")
	if !exists {
		return nil
	}
	return permissions.([]string)
}

// HasPermission checks whether the authenticated employee holds a capability
func HasPermission(c *gin.Context, capability string) bool {
	for _, p := range GetPermissions(c) {
		if p == capability {
			return true
		}
	}
	return false
}

// GetSessionID extracts the POS session identifier from the request header.
// Each till keeps its own cart keyed by this value.
func GetSessionID(c *gin.Context) string {
	return c.GetHeader("X-POS-Session")
}
