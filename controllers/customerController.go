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

var customerCollection *mongo.Collection = database.OpenCollection(database.Client, "customer")

func GetCustomers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		filter := bson.M{"deleted": false}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}
		if search := c.Query("search"); search != "" {
			filter["$or"] = []bson.M{
				{"customer_number": bson.M{"$regex": search, "$options": "i"}},
				{"first_name": bson.M{"$regex": search, "$options": "i"}},
				{"last_name": bson.M{"$regex": search, "$options": "i"}},
				{"company": bson.M{"$regex": search, "$options": "i"}},
				{"city": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		opts := options.Find().SetSort(bson.D{{Key: "customer_number", Value: 1}})
		cursor, err := customerCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while listing customers"})
			return
		}
		allCustomers := []models.Customer{}
		if err := cursor.All(ctx, &allCustomers); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, allCustomers)
	}
}

func GetCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		customerId := c.Param("customer_id")
		var customer models.Customer
		err := customerCollection.FindOne(ctx, bson.M{"customer_id": customerId, "deleted": false}).Decode(&customer)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "customer not found"})
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func CreateCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var customer models.Customer
		if err := c.BindJSON(&customer); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}
		if err := validate.Struct(&customer); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid customer payload", "details": err.Error()})
			return
		}

		count, err := customerCollection.CountDocuments(ctx, bson.M{"customer_number": customer.Customer_number})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while checking the customer number"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "message": "customer number already exists", "details": *customer.Customer_number})
			return
		}

		if customer.Status == "" {
			customer.Status = models.CustomerStatusActive
		}
		customer.Deleted = false
		customer.ID = primitive.NewObjectID()
		customer.Customer_id = customer.ID.Hex()
		customer.Created_at = time.Now()
		customer.Updated_at = customer.Created_at

		if _, err := customerCollection.InsertOne(ctx, customer); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "message": "customer number already exists", "details": *customer.Customer_number})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "customer was not created"})
			return
		}

		helpers.RecordAudit(ctx, actor(c), models.AuditActionCreate, "customer", customer.Customer_id, nil, customer)
		c.JSON(http.StatusCreated, customer)
	}
}

func UpdateCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		customerId := c.Param("customer_id")
		var patch models.CustomerUpdate
		if err := helpers.BindStrict(c, &patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}

		var before models.Customer
		if err := customerCollection.FindOne(ctx, bson.M{"customer_id": customerId, "deleted": false}).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "customer not found"})
			return
		}

		if patch.Status != nil {
			switch *patch.Status {
			case models.CustomerStatusActive, models.CustomerStatusOnVacation, models.CustomerStatusInactive:
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid customer status", "details": *patch.Status})
				return
			}
		}
		if patch.Customer_number != nil && *patch.Customer_number != *before.Customer_number {
			count, err := customerCollection.CountDocuments(ctx, bson.M{"customer_number": patch.Customer_number})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while checking the customer number"})
				return
			}
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "message": "customer number already exists", "details": *patch.Customer_number})
				return
			}
		}

		var updateObj primitive.D
		appendString := func(key string, value *string) {
			if value != nil {
				updateObj = append(updateObj, bson.E{Key: key, Value: value})
			}
		}
		appendString("customer_number", patch.Customer_number)
		appendString("first_name", patch.First_name)
		appendString("last_name", patch.Last_name)
		appendString("company", patch.Company)
		appendString("street", patch.Street)
		appendString("zip_code", patch.Zip_code)
		appendString("city", patch.City)
		appendString("phone", patch.Phone)
		appendString("email", patch.Email)
		appendString("status", patch.Status)
		appendString("visit_time_from", patch.Visit_time_from)
		appendString("visit_time_to", patch.Visit_time_to)
		appendString("notes", patch.Notes)
		if patch.Latitude != nil {
			updateObj = append(updateObj, bson.E{Key: "latitude", Value: patch.Latitude})
		}
		if patch.Longitude != nil {
			updateObj = append(updateObj, bson.E{Key: "longitude", Value: patch.Longitude})
		}
		if len(updateObj) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "nothing to update"})
			return
		}
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		_, err := customerCollection.UpdateOne(ctx, bson.M{"customer_id": customerId}, bson.D{{Key: "$set", Value: updateObj}})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "message": "customer number already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "customer update failed"})
			return
		}

		var after models.Customer
		if err := customerCollection.FindOne(ctx, bson.M{"customer_id": customerId}).Decode(&after); err == nil {
			helpers.RecordAudit(ctx, actor(c), models.AuditActionUpdate, "customer", customerId, before, after)
			c.JSON(http.StatusOK, after)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "customer updated"})
	}
}

// DeleteCustomer flips the tombstone. The row stays for order history.
func DeleteCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		customerId := c.Param("customer_id")
		var before models.Customer
		if err := customerCollection.FindOne(ctx, bson.M{"customer_id": customerId, "deleted": false}).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "customer not found"})
			return
		}

		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "deleted", Value: true},
			{Key: "updated_at", Value: time.Now()},
		}}}
		if _, err := customerCollection.UpdateOne(ctx, bson.M{"customer_id": customerId}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "customer delete failed"})
			return
		}

		after := before
		after.Deleted = true
		helpers.RecordAudit(ctx, actor(c), models.AuditActionDelete, "customer", customerId, before, after)
		c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
	}
}

func GetCustomerOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		customerId := c.Param("customer_id")
		count, err := customerCollection.CountDocuments(ctx, bson.M{"customer_id": customerId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "customer not found"})
			return
		}

		opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
		cursor, err := orderCollection.Find(ctx, bson.M{"customer_id": customerId}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while listing customer orders"})
			return
		}
		orders := []models.Order{}
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
