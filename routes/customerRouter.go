package routes

import (
	controller "filter-delivery-backend/controllers"
	"filter-delivery-backend/middleware"
	"filter-delivery-backend/models"

	"github.com/gin-gonic/gin"
)

func CustomerRoutes(incomingRoutes *gin.Engine) {
	view := middleware.Authorize(models.RoleAdmin, models.RoleBackOffice, models.RoleFieldService)
	edit := middleware.Authorize(models.RoleAdmin, models.RoleBackOffice)

	incomingRoutes.GET("/customers", view, controller.GetCustomers())
	incomingRoutes.GET("/customers/:customer_id", view, controller.GetCustomer())
	incomingRoutes.GET("/customers/:customer_id/orders", view, controller.GetCustomerOrders())
	incomingRoutes.POST("/customers", edit, controller.CreateCustomer())
	incomingRoutes.PATCH("/customers/:customer_id", edit, controller.UpdateCustomer())
	incomingRoutes.DELETE("/customers/:customer_id", edit, controller.DeleteCustomer())
}
