package routes

import (
	controller "filter-delivery-backend/controllers"
	"filter-delivery-backend/middleware"
	"filter-delivery-backend/models"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	view := middleware.Authorize(models.RoleAdmin, models.RoleBackOffice, models.RoleFieldService, models.RoleWarehouse)
	edit := middleware.Authorize(models.RoleAdmin, models.RoleBackOffice)
	// field service patches status and photos from the road
	field := middleware.Authorize(models.RoleAdmin, models.RoleBackOffice, models.RoleFieldService)

	incomingRoutes.GET("/orders", view, controller.GetOrders())
	incomingRoutes.GET("/orders/unassigned", view, controller.GetUnassignedOrders())
	incomingRoutes.GET("/orders/:order_id", view, controller.GetOrder())
	incomingRoutes.POST("/orders", edit, controller.CreateOrder())
	incomingRoutes.PATCH("/orders/:order_id", edit, controller.UpdateOrder())
	incomingRoutes.DELETE("/orders/:order_id", edit, controller.DeleteOrder())

	incomingRoutes.POST("/orders/assign", edit, controller.AssignDriver())
	incomingRoutes.POST("/orders/sequence", edit, controller.UpdateDeliverySequence())

	incomingRoutes.PATCH("/orders/:order_id/status", field, controller.UpdateOrderStatus())
	incomingRoutes.PATCH("/orders/:order_id/article-number", edit, controller.UpdateArticleNumber())
	incomingRoutes.PATCH("/orders/:order_id/driver", edit, controller.UpdateAssignedDriver())
	incomingRoutes.POST("/orders/:order_id/images/upload-url", field, controller.GenerateImageUploadURL())
	incomingRoutes.PATCH("/orders/:order_id/images", field, controller.UpdateOrderImages())
}
