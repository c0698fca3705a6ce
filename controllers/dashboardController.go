package controllers

import (
	"net/http"
	"time"

	"filter-delivery-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetDashboardStats aggregates the counts the back-office landing page shows.
func GetDashboardStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		activeCustomers, err := customerCollection.CountDocuments(ctx, bson.M{"status": models.CustomerStatusActive, "deleted": false})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}
		activeDrivers, err := driverCollection.CountDocuments(ctx, bson.M{"status": models.DriverStatusActive, "deleted": false})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}
		activeItems, err := itemCollection.CountDocuments(ctx, bson.M{"is_active": true})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}

		groupStage := bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}}
		cursor, err := orderCollection.Aggregate(ctx, mongo.Pipeline{groupStage})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}
		var grouped []struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.All(ctx, &grouped); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}
		ordersByStatus := map[string]int64{}
		var totalOrders int64
		for _, g := range grouped {
			ordersByStatus[g.Status] = g.Count
			totalOrders += g.Count
		}

		now := time.Now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		ordersThisMonth, err := orderCollection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": monthStart}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"activeCustomers": activeCustomers,
			"activeDrivers":   activeDrivers,
			"activeItems":     activeItems,
			"totalOrders":     totalOrders,
			"ordersByStatus":  ordersByStatus,
			"ordersThisMonth": ordersThisMonth,
		})
	}
}
