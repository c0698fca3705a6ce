package routes

import (
	controller "filter-delivery-backend/controllers"
	"filter-delivery-backend/middleware"
	"filter-delivery-backend/models"

	"github.com/gin-gonic/gin"
)

func DriverRoutes(incomingRoutes *gin.Engine) {
	view := middleware.Authorize(models.RoleAdmin, models.RoleBackOffice, models.RoleFieldService)
	edit := middleware.Authorize(models.RoleAdmin, models.RoleBackOffice)

	incomingRoutes.GET("/drivers", view, controller.GetDrivers())
	incomingRoutes.GET("/drivers/:driver_id", view, controller.GetDriver())
	incomingRoutes.POST("/drivers", edit, controller.CreateDriver())
	incomingRoutes.PATCH("/drivers/:driver_id", edit, controller.UpdateDriver())
	incomingRoutes.DELETE("/drivers/:driver_id", edit, controller.DeleteDriver())
}
