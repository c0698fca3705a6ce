package main

import (
	"os"
	"time"

	"filter-delivery-backend/database"
	"filter-delivery-backend/middleware"
	"filter-delivery-backend/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Info().Msg("no .env file found, relying on the environment")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if err := database.EnsureIndexes(database.Client); err != nil {
		log.Fatal().Err(err).Msg("could not create indexes")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	allowOrigins := []string{"http://localhost:9000"}
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		allowOrigins = []string{origin}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.PublicUserRoutes(router)
	router.Use(middleware.Authentication())
	routes.UserRoutes(router)
	routes.CustomerRoutes(router)
	routes.DriverRoutes(router)
	routes.ItemRoutes(router)
	routes.OrderRoutes(router)
	routes.DashboardRoutes(router)
	routes.AuditRoutes(router)

	log.Info().Str("port", port).Msg("starting server")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
