package routes

import (
	controller "filter-delivery-backend/controllers"
	"filter-delivery-backend/middleware"
	"filter-delivery-backend/models"

	"github.com/gin-gonic/gin"
)

func AuditRoutes(incomingRoutes *gin.Engine) {
	admin := middleware.Authorize(models.RoleAdmin)

	incomingRoutes.GET("/audit", admin, controller.GetAuditRecords())
	incomingRoutes.GET("/audit/statistics", admin, controller.GetAuditStatistics())
	incomingRoutes.GET("/audit/:audit_id", admin, controller.GetAuditRecord())
	incomingRoutes.POST("/audit/:audit_id/revert", admin, controller.RevertAuditRecord())
}
