package routes

import (
	controller "filter-delivery-backend/controllers"
	"filter-delivery-backend/middleware"
	"filter-delivery-backend/models"

	"github.com/gin-gonic/gin"
)

func ItemRoutes(incomingRoutes *gin.Engine) {
	view := middleware.Authorize(models.RoleAdmin, models.RoleBackOffice, models.RoleFieldService, models.RoleWarehouse)
	edit := middleware.Authorize(models.RoleAdmin, models.RoleBackOffice)

	incomingRoutes.GET("/items", view, controller.GetItems())
	incomingRoutes.GET("/items/:item_id", view, controller.GetItem())
	incomingRoutes.POST("/items", edit, controller.CreateItem())
	incomingRoutes.PATCH("/items/:item_id", edit, controller.UpdateItem())
	incomingRoutes.DELETE("/items/:item_id", edit, controller.DeleteItem())
}
