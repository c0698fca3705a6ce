package controllers

import (
	"net/http"
	"time"

	"filter-delivery-backend/database"
	"filter-delivery-backend/helpers"
	"filter-delivery-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var driverCollection *mongo.Collection = database.OpenCollection(database.Client, "driver")

func GetDrivers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		filter := bson.M{"deleted": false}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}

		opts := options.Find().SetSort(bson.D{{Key: "driver_number", Value: 1}})
		cursor, err := driverCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while listing drivers"})
			return
		}
		allDrivers := []models.Driver{}
		if err := cursor.All(ctx, &allDrivers); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, allDrivers)
	}
}

func GetDriver() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		driverId := c.Param("driver_id")
		var driver models.Driver
		err := driverCollection.FindOne(ctx, bson.M{"driver_id": driverId, "deleted": false}).Decode(&driver)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "driver not found"})
			return
		}
		c.JSON(http.StatusOK, driver)
	}
}

func CreateDriver() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var driver models.Driver
		if err := c.BindJSON(&driver); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}
		if err := validate.Struct(&driver); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid driver payload", "details": err.Error()})
			return
		}

		count, err := driverCollection.CountDocuments(ctx, bson.M{"driver_number": driver.Driver_number})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while checking the driver number"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "message": "driver number already exists", "details": *driver.Driver_number})
			return
		}

		if driver.Status == "" {
			driver.Status = models.DriverStatusActive
		}
		driver.Deleted = false
		driver.ID = primitive.NewObjectID()
		driver.Driver_id = driver.ID.Hex()
		driver.Created_at = time.Now()
		driver.Updated_at = driver.Created_at

		if _, err := driverCollection.InsertOne(ctx, driver); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "message": "driver number already exists", "details": *driver.Driver_number})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "driver was not created"})
			return
		}

		helpers.RecordAudit(ctx, actor(c), models.AuditActionCreate, "driver", driver.Driver_id, nil, driver)
		c.JSON(http.StatusCreated, driver)
	}
}

func UpdateDriver() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		driverId := c.Param("driver_id")
		var patch models.DriverUpdate
		if err := helpers.BindStrict(c, &patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}

		var before models.Driver
		if err := driverCollection.FindOne(ctx, bson.M{"driver_id": driverId, "deleted": false}).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "driver not found"})
			return
		}

		if patch.Status != nil {
			switch *patch.Status {
			case models.DriverStatusActive, models.DriverStatusOnVacation, models.DriverStatusInactive:
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid driver status", "details": *patch.Status})
				return
			}
		}
		if patch.Driver_number != nil && *patch.Driver_number != *before.Driver_number {
			count, err := driverCollection.CountDocuments(ctx, bson.M{"driver_number": patch.Driver_number})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while checking the driver number"})
				return
			}
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "message": "driver number already exists", "details": *patch.Driver_number})
				return
			}
		}

		var updateObj primitive.D
		appendString := func(key string, value *string) {
			if value != nil {
				updateObj = append(updateObj, bson.E{Key: key, Value: value})
			}
		}
		appendString("driver_number", patch.Driver_number)
		appendString("first_name", patch.First_name)
		appendString("last_name", patch.Last_name)
		appendString("street", patch.Street)
		appendString("zip_code", patch.Zip_code)
		appendString("city", patch.City)
		appendString("phone", patch.Phone)
		appendString("email", patch.Email)
		appendString("license_class", patch.License_class)
		appendString("status", patch.Status)
		if len(updateObj) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "nothing to update"})
			return
		}
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		_, err := driverCollection.UpdateOne(ctx, bson.M{"driver_id": driverId}, bson.D{{Key: "$set", Value: updateObj}})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "message": "driver number already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "driver update failed"})
			return
		}

		var after models.Driver
		if err := driverCollection.FindOne(ctx, bson.M{"driver_id": driverId}).Decode(&after); err == nil {
			helpers.RecordAudit(ctx, actor(c), models.AuditActionUpdate, "driver", driverId, before, after)
			c.JSON(http.StatusOK, after)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "driver updated"})
	}
}

func DeleteDriver() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		driverId := c.Param("driver_id")
		var before models.Driver
		if err := driverCollection.FindOne(ctx, bson.M{"driver_id": driverId, "deleted": false}).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "driver not found"})
			return
		}

		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "deleted", Value: true},
			{Key: "updated_at", Value: time.Now()},
		}}}
		if _, err := driverCollection.UpdateOne(ctx, bson.M{"driver_id": driverId}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "driver delete failed"})
			return
		}

		after := before
		after.Deleted = true
		helpers.RecordAudit(ctx, actor(c), models.AuditActionDelete, "driver", driverId, before, after)
		c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
	}
}
