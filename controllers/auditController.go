package controllers

import (
	"net/http"
	"strconv"
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

var auditCollection *mongo.Collection = database.OpenCollection(database.Client, "audit")

// auditedCollections maps a collection name from an audit record to its
// live collection and id field, for reverts.
func auditedCollection(name string) (*mongo.Collection, string) {
	switch name {
	case "customer":
		return customerCollection, "customer_id"
	case "driver":
		return driverCollection, "driver_id"
	case "item":
		return itemCollection, "item_id"
	case "order":
		return orderCollection, "order_id"
	case "user":
		return userCollection, "user_id"
	}
	return nil, ""
}

func GetAuditRecords() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		filter := bson.M{}
		if collection := c.Query("collection"); collection != "" {
			filter["collection"] = collection
		}
		if action := c.Query("action"); action != "" {
			filter["action"] = action
		}
		if userId := c.Query("userId"); userId != "" {
			filter["user_id"] = userId
		}
		if documentId := c.Query("documentId"); documentId != "" {
			filter["document_id"] = documentId
		}
		if from, to := c.Query("from"), c.Query("to"); from != "" || to != "" {
			span := bson.M{}
			if from != "" {
				fromDay, err := time.Parse("2006-01-02", from)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "from must be YYYY-MM-DD"})
					return
				}
				span["$gte"] = fromDay
			}
			if to != "" {
				toDay, err := time.Parse("2006-01-02", to)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "to must be YYYY-MM-DD"})
					return
				}
				span["$lt"] = toDay.AddDate(0, 0, 1)
			}
			filter["timestamp"] = span
		}

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "50"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 50
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}}).
			SetSkip(int64((page - 1) * recordPerPage)).
			SetLimit(int64(recordPerPage))
		cursor, err := auditCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while listing audit records"})
			return
		}
		records := []models.AuditRecord{}
		if err := cursor.All(ctx, &records); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

func GetAuditRecord() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		auditId := c.Param("audit_id")
		var record models.AuditRecord
		err := auditCollection.FindOne(ctx, bson.M{"audit_id": auditId}).Decode(&record)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "audit record not found"})
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

// GetAuditStatistics groups the trail by action and by collection.
func GetAuditStatistics() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		byAction, err := groupCounts(c, auditCollection, "$action")
		if err != nil {
			return
		}
		byCollection, err := groupCounts(c, auditCollection, "$collection")
		if err != nil {
			return
		}
		total, err := auditCollection.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total":        total,
			"byAction":     byAction,
			"byCollection": byCollection,
		})
	}
}

func groupCounts(c *gin.Context, collection *mongo.Collection, key string) (map[string]int64, error) {
	ctx, cancel := requestContext(c)
	defer cancel()

	groupStage := bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: key},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}}
	cursor, err := collection.Aggregate(ctx, mongo.Pipeline{groupStage})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
		return nil, err
	}
	var grouped []struct {
		Key   string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &grouped); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
		return nil, err
	}
	counts := map[string]int64{}
	for _, g := range grouped {
		counts[g.Key] = g.Count
	}
	return counts, nil
}

// RevertAuditRecord replays the old values of an update record onto the
// target document. The replay itself lands in the trail as a new update.
func RevertAuditRecord() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		auditId := c.Param("audit_id")
		var record models.AuditRecord
		if err := auditCollection.FindOne(ctx, bson.M{"audit_id": auditId}).Decode(&record); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "audit record not found"})
			return
		}
		if record.Action != models.AuditActionUpdate {
			c.JSON(http.StatusBadRequest, gin.H{"error": "state", "message": "only update records can be reverted", "details": record.Action})
			return
		}
		if len(record.Changes) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "state", "message": "audit record has no field changes to revert"})
			return
		}

		targetCollection, idField := auditedCollection(record.Collection)
		if targetCollection == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "state", "message": "unknown audit collection", "details": record.Collection})
			return
		}

		idFilter := bson.M{idField: record.Document_id}
		var before bson.M
		if err := targetCollection.FindOne(ctx, idFilter).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "target document no longer exists"})
			return
		}

		var revertObj primitive.D
		for _, change := range record.Changes {
			revertObj = append(revertObj, bson.E{Key: change.Field, Value: change.Old})
		}
		revertObj = append(revertObj, bson.E{Key: "updated_at", Value: time.Now()})

		if _, err := targetCollection.UpdateOne(ctx, idFilter, bson.D{{Key: "$set", Value: revertObj}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "revert failed"})
			return
		}

		var after bson.M
		if err := targetCollection.FindOne(ctx, idFilter).Decode(&after); err == nil {
			helpers.RecordAudit(ctx, actor(c), models.AuditActionUpdate, record.Collection, record.Document_id, before, after)
		}
		c.JSON(http.StatusOK, gin.H{"message": "audit record reverted", "documentId": record.Document_id})
	}
}
