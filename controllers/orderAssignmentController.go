package controllers

import (
	"net/http"
	"strings"
	"time"

	"filter-delivery-backend/helpers"
	"filter-delivery-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// AssignDriver bulk-assigns one driver to a list of orders. Zero modified
// orders is treated as a failure so the caller notices stale id lists.
func AssignDriver() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var body struct {
			Order_ids []string `json:"orderIds"`
			Driver_id *string  `json:"driverId"`
		}
		if err := helpers.BindStrict(c, &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}
		if len(body.Order_ids) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "orderIds must not be empty"})
			return
		}
		if body.Driver_id == nil || *body.Driver_id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "driverId is required"})
			return
		}
		if err := requireDriver(ctx, *body.Driver_id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dependency", "message": err.Error()})
			return
		}

		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "driver_id", Value: body.Driver_id},
			{Key: "updated_at", Value: time.Now()},
		}}}
		result, err := orderCollection.UpdateMany(ctx, bson.M{"order_id": bson.M{"$in": body.Order_ids}}, update)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "driver assignment failed"})
			return
		}
		if result.ModifiedCount == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "state", "message": "no orders were modified"})
			return
		}

		helpers.RecordAudit(ctx, actor(c), models.AuditActionUpdate, "order", strings.Join(body.Order_ids, ","), nil,
			map[string]interface{}{"driver_id": *body.Driver_id})
		c.JSON(http.StatusOK, gin.H{"message": "driver assigned", "modifiedCount": result.ModifiedCount})
	}
}

// UpdateDeliverySequence writes a 1-based route position to every listed
// order, in list order. Any order not assigned to the given driver, or not
// scheduled on the given date when one is sent, aborts the whole batch
// before anything is written.
func UpdateDeliverySequence() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var body struct {
			Order_ids []string `json:"orderIds"`
			Driver_id *string  `json:"driverId"`
			Date      *string  `json:"date"`
		}
		if err := helpers.BindStrict(c, &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}
		if len(body.Order_ids) == 0 || body.Driver_id == nil || *body.Driver_id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "orderIds and driverId are required"})
			return
		}
		var day *time.Time
		if body.Date != nil && *body.Date != "" {
			parsed, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "date must be YYYY-MM-DD"})
				return
			}
			day = &parsed
		}

		for _, orderId := range body.Order_ids {
			var order models.Order
			if err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order); err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "order " + orderId + " not found"})
				return
			}
			if order.Driver_id == nil || *order.Driver_id != *body.Driver_id {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   "state",
					"message": "order " + orderId + " is not assigned to this driver",
				})
				return
			}
			if day != nil && !orderOnDate(order, *day) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   "state",
					"message": "order " + orderId + " is not scheduled for " + *body.Date,
				})
				return
			}
		}

		for position, orderId := range body.Order_ids {
			sequence := position + 1
			update := bson.D{{Key: "$set", Value: bson.D{
				{Key: "delivery_sequence", Value: sequence},
				{Key: "updated_at", Value: time.Now()},
			}}}
			if _, err := orderCollection.UpdateOne(ctx, bson.M{"order_id": orderId}, update); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "sequence update failed at order " + orderId})
				return
			}
		}

		helpers.RecordAudit(ctx, actor(c), models.AuditActionUpdate, "order", strings.Join(body.Order_ids, ","), nil,
			map[string]interface{}{"delivery_sequence": body.Order_ids, "driver_id": *body.Driver_id})
		c.JSON(http.StatusOK, gin.H{"message": "delivery sequence updated", "count": len(body.Order_ids)})
	}
}

func UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		orderId := c.Param("order_id")
		var body struct {
			Status *string `json:"status"`
		}
		if err := helpers.BindStrict(c, &body); err != nil || body.Status == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "status is required"})
			return
		}
		if !validOrderStatus(*body.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid order status", "details": *body.Status})
			return
		}

		var before models.Order
		if err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "order not found"})
			return
		}

		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: body.Status},
			{Key: "updated_at", Value: time.Now()},
		}}}
		if _, err := orderCollection.UpdateOne(ctx, bson.M{"order_id": orderId}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "status update failed"})
			return
		}

		after := before
		after.Status = *body.Status
		helpers.RecordAudit(ctx, actor(c), models.AuditActionUpdate, "order", orderId, before, after)
		helpers.Broadcast("orderStatus", after)
		c.JSON(http.StatusOK, after)
	}
}

func UpdateArticleNumber() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		orderId := c.Param("order_id")
		var body struct {
			Article_number *string `json:"articleNumber"`
		}
		if err := helpers.BindStrict(c, &body); err != nil || body.Article_number == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "articleNumber is required"})
			return
		}

		var before models.Order
		if err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "order not found"})
			return
		}

		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "article_number", Value: body.Article_number},
			{Key: "updated_at", Value: time.Now()},
		}}}
		if _, err := orderCollection.UpdateOne(ctx, bson.M{"order_id": orderId}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "article number update failed"})
			return
		}

		after := before
		after.Article_number = body.Article_number
		helpers.RecordAudit(ctx, actor(c), models.AuditActionUpdate, "order", orderId, before, after)
		c.JSON(http.StatusOK, after)
	}
}

// UpdateAssignedDriver patches a single order's driver. An empty string
// unassigns.
func UpdateAssignedDriver() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		orderId := c.Param("order_id")
		var body struct {
			Driver_id *string `json:"assignedDriver"`
		}
		if err := helpers.BindStrict(c, &body); err != nil || body.Driver_id == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "assignedDriver is required"})
			return
		}
		if *body.Driver_id != "" {
			if err := requireDriver(ctx, *body.Driver_id); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "dependency", "message": err.Error()})
				return
			}
		}

		var before models.Order
		if err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "order not found"})
			return
		}

		setDoc := bson.D{{Key: "updated_at", Value: time.Now()}}
		if *body.Driver_id == "" {
			setDoc = append(setDoc, bson.E{Key: "driver_id", Value: nil})
		} else {
			setDoc = append(setDoc, bson.E{Key: "driver_id", Value: body.Driver_id})
		}
		if _, err := orderCollection.UpdateOne(ctx, bson.M{"order_id": orderId}, bson.D{{Key: "$set", Value: setDoc}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "driver update failed"})
			return
		}

		after := before
		if *body.Driver_id == "" {
			after.Driver_id = nil
		} else {
			after.Driver_id = body.Driver_id
		}
		helpers.RecordAudit(ctx, actor(c), models.AuditActionUpdate, "order", orderId, before, after)
		c.JSON(http.StatusOK, after)
	}
}

// GenerateImageUploadURL hands the client a presigned PUT URL; the image
// bytes never pass through this service.
func GenerateImageUploadURL() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		orderId := c.Param("order_id")
		var body struct {
			Type      *string `json:"type"`
			Extension *string `json:"extension"`
		}
		if err := helpers.BindStrict(c, &body); err != nil || body.Type == nil || body.Extension == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "type and extension are required"})
			return
		}
		if *body.Type != "before" && *body.Type != "after" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "type must be before or after", "details": *body.Type})
			return
		}

		count, err := orderCollection.CountDocuments(ctx, bson.M{"order_id": orderId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "order not found"})
			return
		}

		uploadURL, objectName, err := helpers.GenerateUploadURL(ctx, orderId, *body.Type, *body.Extension)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "upload url generation failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uploadUrl": uploadURL, "objectName": objectName})
	}
}

// UpdateOrderImages mutates one of the two image lists: single add/remove
// by type, or a bulk replace of the whole list. Each list caps at 10.
func UpdateOrderImages() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		orderId := c.Param("order_id")
		var body struct {
			Type   *string  `json:"type"`
			Action *string  `json:"action"`
			Image  *string  `json:"image"`
			Images []string `json:"images"`
		}
		if err := helpers.BindStrict(c, &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}
		if body.Type == nil || (*body.Type != "before" && *body.Type != "after") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "type must be before or after"})
			return
		}
		if body.Action == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "action is required"})
			return
		}

		var before models.Order
		if err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "order not found"})
			return
		}

		current := before.Before_images
		field := "before_images"
		if *body.Type == "after" {
			current = before.After_images
			field = "after_images"
		}

		image := ""
		if body.Image != nil {
			image = *body.Image
		}
		next, err := mutateImageList(current, *body.Action, image, body.Images)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}

		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: field, Value: next},
			{Key: "updated_at", Value: time.Now()},
		}}}
		if _, err := orderCollection.UpdateOne(ctx, bson.M{"order_id": orderId}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "image update failed"})
			return
		}

		after := before
		if *body.Type == "after" {
			after.After_images = next
		} else {
			after.Before_images = next
		}
		helpers.RecordAudit(ctx, actor(c), models.AuditActionUpdate, "order", orderId, before, after)
		c.JSON(http.StatusOK, after)
	}
}
