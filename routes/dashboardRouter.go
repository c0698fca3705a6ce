package routes

import (
	controller "filter-delivery-backend/controllers"
	"filter-delivery-backend/middleware"
	"filter-delivery-backend/models"

	"github.com/gin-gonic/gin"
)

func DashboardRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/dashboard/stats",
		middleware.Authorize(models.RoleAdmin, models.RoleBackOffice),
		controller.GetDashboardStats())
}
