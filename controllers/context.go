// file: controllers/context.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"CFOCup/models"
)

// currentUserID 从中间件写入的上下文中取当前用户 ID
func currentUserID(c *gin.Context) uint32 {
	v, _ := c.Get("user_id")
	id, _ := v.(uint32)
	return id
}

func currentUserRole(c *gin.Context) models.UserRole {
	v, _ := c.Get("user_role")
	role, _ := v.(models.UserRole)
	return role
}
