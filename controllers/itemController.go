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

var itemCollection *mongo.Collection = database.OpenCollection(database.Client, "item")

// dimensionFilter is the unique 5-tuple a catalog item is keyed on.
func dimensionFilter(filterType *string, length, width, depth *float64, unit *string) bson.M {
	return bson.M{
		"filter_type":     filterType,
		"length":          length,
		"width":           width,
		"depth":           depth,
		"unit_of_measure": unit,
	}
}

func GetItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		filter := bson.M{}
		if c.Query("activeOnly") == "true" {
			filter["is_active"] = true
		}
		if filterType := c.Query("filterType"); filterType != "" {
			filter["filter_type"] = filterType
		}

		opts := options.Find().SetSort(bson.D{{Key: "filter_type", Value: 1}, {Key: "length", Value: 1}})
		cursor, err := itemCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while listing items"})
			return
		}
		allItems := []models.Item{}
		if err := cursor.All(ctx, &allItems); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, allItems)
	}
}

func GetItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		itemId := c.Param("item_id")
		var item models.Item
		err := itemCollection.FindOne(ctx, bson.M{"item_id": itemId}).Decode(&item)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "item not found"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func CreateItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var item models.Item
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}
		if err := validate.Struct(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid item payload", "details": err.Error()})
			return
		}

		count, err := itemCollection.CountDocuments(ctx, dimensionFilter(item.Filter_type, item.Length, item.Width, item.Depth, item.Unit_of_measure))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while checking the dimension combination"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": "an item with this dimension combination already exists"})
			return
		}

		if item.Is_active == nil {
			active := true
			item.Is_active = &active
		}
		item.ID = primitive.NewObjectID()
		item.Item_id = item.ID.Hex()
		item.Created_at = time.Now()
		item.Updated_at = item.Created_at

		if _, err := itemCollection.InsertOne(ctx, item); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": "an item with this dimension combination already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "item was not created"})
			return
		}

		helpers.RecordAudit(ctx, actor(c), models.AuditActionCreate, "item", item.Item_id, nil, item)
		c.JSON(http.StatusCreated, item)
	}
}

func UpdateItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		itemId := c.Param("item_id")
		var patch models.ItemUpdate
		if err := helpers.BindStrict(c, &patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}

		var before models.Item
		if err := itemCollection.FindOne(ctx, bson.M{"item_id": itemId}).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "item not found"})
			return
		}

		// the merged dimensions must stay unique
		merged := before
		if patch.Filter_type != nil {
			merged.Filter_type = patch.Filter_type
		}
		if patch.Length != nil {
			merged.Length = patch.Length
		}
		if patch.Width != nil {
			merged.Width = patch.Width
		}
		if patch.Depth != nil {
			merged.Depth = patch.Depth
		}
		if patch.Unit_of_measure != nil {
			merged.Unit_of_measure = patch.Unit_of_measure
		}
		if patch.Filter_type != nil || patch.Length != nil || patch.Width != nil || patch.Depth != nil || patch.Unit_of_measure != nil {
			filter := dimensionFilter(merged.Filter_type, merged.Length, merged.Width, merged.Depth, merged.Unit_of_measure)
			filter["item_id"] = bson.M{"$ne": itemId}
			count, err := itemCollection.CountDocuments(ctx, filter)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while checking the dimension combination"})
				return
			}
			if count > 0 {
				c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": "an item with this dimension combination already exists"})
				return
			}
		}

		var updateObj primitive.D
		if patch.Filter_type != nil {
			updateObj = append(updateObj, bson.E{Key: "filter_type", Value: patch.Filter_type})
		}
		if patch.Length != nil {
			updateObj = append(updateObj, bson.E{Key: "length", Value: patch.Length})
		}
		if patch.Width != nil {
			updateObj = append(updateObj, bson.E{Key: "width", Value: patch.Width})
		}
		if patch.Depth != nil {
			updateObj = append(updateObj, bson.E{Key: "depth", Value: patch.Depth})
		}
		if patch.Unit_of_measure != nil {
			updateObj = append(updateObj, bson.E{Key: "unit_of_measure", Value: patch.Unit_of_measure})
		}
		if patch.Description != nil {
			updateObj = append(updateObj, bson.E{Key: "description", Value: patch.Description})
		}
		if patch.Unit_price != nil {
			updateObj = append(updateObj, bson.E{Key: "unit_price", Value: patch.Unit_price})
		}
		if patch.Is_active != nil {
			updateObj = append(updateObj, bson.E{Key: "is_active", Value: patch.Is_active})
		}
		if len(updateObj) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "nothing to update"})
			return
		}
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		_, err := itemCollection.UpdateOne(ctx, bson.M{"item_id": itemId}, bson.D{{Key: "$set", Value: updateObj}})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": "an item with this dimension combination already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "item update failed"})
			return
		}

		var after models.Item
		if err := itemCollection.FindOne(ctx, bson.M{"item_id": itemId}).Decode(&after); err == nil {
			helpers.RecordAudit(ctx, actor(c), models.AuditActionUpdate, "item", itemId, before, after)
			c.JSON(http.StatusOK, after)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "item updated"})
	}
}

// DeleteItem soft-deletes: the item disappears from new orders but stays
// referenced by historical line items.
func DeleteItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		itemId := c.Param("item_id")
		var before models.Item
		if err := itemCollection.FindOne(ctx, bson.M{"item_id": itemId}).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "item not found"})
			return
		}

		inactive := false
		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_active", Value: inactive},
			{Key: "updated_at", Value: time.Now()},
		}}}
		if _, err := itemCollection.UpdateOne(ctx, bson.M{"item_id": itemId}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "item delete failed"})
			return
		}

		after := before
		after.Is_active = &inactive
		helpers.RecordAudit(ctx, actor(c), models.AuditActionDelete, "item", itemId, before, after)
		c.JSON(http.StatusOK, gin.H{"message": "item deactivated"})
	}
}
