package routes

import (
	controller "filter-delivery-backend/controllers"
	"filter-delivery-backend/middleware"
	"filter-delivery-backend/models"

	"github.com/gin-gonic/gin"
)

// PublicUserRoutes are mounted before the auth middleware.
func PublicUserRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/users/register", controller.Register())
	incomingRoutes.POST("/users/login", controller.Login())
}

func UserRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/users/profile", controller.GetProfile())
	incomingRoutes.GET("/ws", controller.HandleWebSocket())

	admin := middleware.Authorize(models.RoleAdmin)
	incomingRoutes.GET("/users", admin, controller.GetUsers())
	incomingRoutes.GET("/users/:user_id", admin, controller.GetUser())
	incomingRoutes.PATCH("/users/:user_id", admin, controller.UpdateUser())
	incomingRoutes.PATCH("/users/:user_id/status", admin, controller.UpdateUserStatus())
}
