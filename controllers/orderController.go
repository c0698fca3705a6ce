package controllers

import (
	"context"
	"fmt"
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

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "order")

// requireActiveCustomer resolves a customer and rejects inactive or
// tombstoned ones before any order document is written.
func requireActiveCustomer(ctx context.Context, customerId string) (int, error) {
	var customer models.Customer
	err := customerCollection.FindOne(ctx, bson.M{"customer_id": customerId}).Decode(&customer)
	if err != nil {
		return http.StatusNotFound, fmt.Errorf("customer %s not found", customerId)
	}
	if customer.Deleted || customer.Status != models.CustomerStatusActive {
		return http.StatusBadRequest, fmt.Errorf("customer %s is not active", customerId)
	}
	return 0, nil
}

// requireActiveItems checks that every referenced catalog item exists and is
// still active.
func requireActiveItems(ctx context.Context, items []models.OrderLineItem) (int, error) {
	for _, line := range items {
		if line.Item_id == nil {
			return http.StatusBadRequest, fmt.Errorf("line item is missing its itemId")
		}
		var item models.Item
		err := itemCollection.FindOne(ctx, bson.M{"item_id": line.Item_id}).Decode(&item)
		if err != nil {
			return http.StatusBadRequest, fmt.Errorf("item %s does not exist", *line.Item_id)
		}
		if item.Is_active == nil || !*item.Is_active {
			return http.StatusBadRequest, fmt.Errorf("item %s is not active", *line.Item_id)
		}
	}
	return 0, nil
}

func requireDriver(ctx context.Context, driverId string) error {
	count, err := driverCollection.CountDocuments(ctx, bson.M{"driver_id": driverId, "deleted": false})
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("driver %s not found", driverId)
	}
	return nil
}

func newOrderDocument(req models.OrderCreate, createdBy string, now time.Time) models.Order {
	order := models.Order{
		ID:                 primitive.NewObjectID(),
		Customer_id:        req.Customer_id,
		Items:              req.Items,
		Payment_method:     req.Payment_method,
		Driver_id:          req.Driver_id,
		Article_number:     req.Article_number,
		Total_net_amount:   req.Total_net_amount,
		Total_gross_amount: req.Total_gross_amount,
		Before_images:      []string{},
		After_images:       []string{},
		Created_by:         &createdBy,
		Created_at:         now,
		Updated_at:         now,
	}
	order.Order_id = order.ID.Hex()
	return order
}

func CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var req models.OrderCreate
		if err := helpers.BindStrict(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}
		if req.Customer_id == nil || *req.Customer_id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "field customer is required"})
			return
		}
		if status, err := requireActiveCustomer(ctx, *req.Customer_id); err != nil {
			c.JSON(status, gin.H{"error": "dependency", "message": err.Error()})
			return
		}
		if req.Driver_id != nil && *req.Driver_id != "" {
			if err := requireDriver(ctx, *req.Driver_id); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "dependency", "message": err.Error()})
				return
			}
		}

		caller := actor(c)
		now := time.Now()
		reqStart := req.Start_date.TimePtr()
		reqEnd := req.End_date.TimePtr()

		// a draft needs nothing beyond the customer
		if req.Status != nil && *req.Status == models.OrderStatusDraft {
			numbers, err := helpers.AllocateOrderNumbers(ctx, now.Year(), 1)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
				return
			}
			order := newOrderDocument(req, caller.User_id, now)
			order.Order_number = numbers[0]
			order.Status = models.OrderStatusDraft
			order.Main_order = true
			order.Start_date = reqStart
			order.End_date = reqEnd
			order.Frequency = req.Frequency

			if _, err := orderCollection.InsertOne(ctx, order); err != nil {
				if mongo.IsDuplicateKeyError(err) {
					c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": "order number already exists", "details": order.Order_number})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "order was not created"})
				return
			}
			helpers.RecordAudit(ctx, caller, models.AuditActionCreate, "order", order.Order_id, nil, order)
			helpers.Broadcast("orderCreated", order)
			c.JSON(http.StatusCreated, []models.Order{order})
			return
		}

		if missing := firstMissingOrderField(req.Items, reqStart, reqEnd, req.Frequency, req.Total_net_amount, req.Total_gross_amount); missing != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "field " + missing + " is required"})
			return
		}
		if !helpers.ValidFrequency(*req.Frequency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid frequency", "details": *req.Frequency})
			return
		}
		if status, err := requireActiveItems(ctx, req.Items); err != nil {
			c.JSON(status, gin.H{"error": "dependency", "message": err.Error()})
			return
		}
		if req.Status != nil && !validOrderStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid order status", "details": *req.Status})
			return
		}

		dates, err := helpers.GenerateRecurringDates(*reqStart, *reqEnd, *req.Frequency)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}
		if len(dates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "startDate must not be after endDate"})
			return
		}

		numbers, err := helpers.AllocateOrderNumbers(ctx, dates[0].Year(), len(dates))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}

		created := make([]models.Order, 0, len(dates))
		for i, date := range dates {
			order := newOrderDocument(req, caller.User_id, now)
			order.Order_number = numbers[i]
			order.Frequency = req.Frequency
			startDate := date
			order.Start_date = &startDate
			if i == 0 {
				// the main order describes the whole series and keeps the
				// requested end date; members are single deliveries
				order.Main_order = true
				order.End_date = reqEnd
				order.Status = models.OrderStatusPending
				if req.Status != nil {
					order.Status = *req.Status
				}
			} else {
				memberEnd := date
				order.End_date = &memberEnd
				order.Status = models.OrderStatusPending
				order.Original_order_number = &numbers[0]
			}

			// inserts are sequential and unwrapped: a failure here leaves the
			// already inserted part of the series in place
			if _, err := orderCollection.InsertOne(ctx, order); err != nil {
				if mongo.IsDuplicateKeyError(err) {
					c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": "order number already exists", "details": order.Order_number})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": fmt.Sprintf("order %d of %d was not created", i+1, len(dates))})
				return
			}
			created = append(created, order)
		}

		helpers.RecordAudit(ctx, caller, models.AuditActionCreate, "order", created[0].Order_id, nil, created[0])
		helpers.Broadcast("orderCreated", created[0])
		c.JSON(http.StatusCreated, created)
	}
}

func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		filter := bson.M{}
		if search := c.Query("search"); search != "" {
			filter["$or"] = []bson.M{
				{"order_number": bson.M{"$regex": search, "$options": "i"}},
				{"article_number": bson.M{"$regex": search, "$options": "i"}},
			}
		}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}
		if customer := c.Query("customer"); customer != "" {
			filter["customer_id"] = customer
		}
		if driver := c.Query("driver"); driver != "" {
			filter["driver_id"] = driver
		}
		if date := c.Query("date"); date != "" {
			day, err := time.Parse("2006-01-02", date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "date must be YYYY-MM-DD"})
				return
			}
			filter["start_date"] = bson.M{"$gte": day, "$lt": day.AddDate(0, 0, 1)}
		} else if from, to := c.Query("startDate"), c.Query("endDate"); from != "" || to != "" {
			span := bson.M{}
			if from != "" {
				fromDay, err := time.Parse("2006-01-02", from)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "startDate must be YYYY-MM-DD"})
					return
				}
				span["$gte"] = fromDay
			}
			if to != "" {
				toDay, err := time.Parse("2006-01-02", to)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "endDate must be YYYY-MM-DD"})
					return
				}
				span["$lt"] = toDay.AddDate(0, 0, 1)
			}
			filter["start_date"] = span
		} else if year, month := c.Query("year"), c.Query("month"); year != "" && month != "" {
			first, err := time.Parse("2006-1", year+"-"+month)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "year and month must be numeric"})
				return
			}
			filter["start_date"] = bson.M{"$gte": first, "$lt": first.AddDate(0, 1, 0)}
		}
		// by default finished series drop out of the listing
		if c.Query("allOrders") != "true" && filter["status"] == nil {
			filter["status"] = bson.M{"$nin": []string{models.OrderStatusCompleted, models.OrderStatusCancelled}}
		}

		opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}, {Key: "order_number", Value: 1}})
		cursor, err := orderCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while listing orders"})
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

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		orderId := c.Param("order_id")
		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func GetUnassignedOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		filter := bson.M{
			"status": models.OrderStatusPending,
			"$or": []bson.M{
				{"driver_id": nil},
				{"driver_id": ""},
			},
		}
		opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
		cursor, err := orderCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while listing unassigned orders"})
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

func UpdateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		orderId := c.Param("order_id")
		var patch models.OrderUpdate
		if err := helpers.BindStrict(c, &patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}

		var before models.Order
		if err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "order not found"})
			return
		}

		isDraft := before.Status == models.OrderStatusDraft
		if touchesSchedule(patch) && !before.Main_order && before.Original_order_number != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "state",
				"message": "schedule changes must be made on the main order of the series",
				"details": *before.Original_order_number,
			})
			return
		}

		if patch.Customer_id != nil {
			if status, err := requireActiveCustomer(ctx, *patch.Customer_id); err != nil {
				c.JSON(status, gin.H{"error": "dependency", "message": err.Error()})
				return
			}
		}
		if patch.Items != nil {
			if status, err := requireActiveItems(ctx, *patch.Items); err != nil {
				c.JSON(status, gin.H{"error": "dependency", "message": err.Error()})
				return
			}
		}
		if patch.Status != nil && !validOrderStatus(*patch.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid order status", "details": *patch.Status})
			return
		}
		if patch.Driver_id != nil && *patch.Driver_id != "" {
			if err := requireDriver(ctx, *patch.Driver_id); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "dependency", "message": err.Error()})
				return
			}
		}
		if patch.Frequency != nil && !helpers.ValidFrequency(*patch.Frequency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid frequency", "details": *patch.Frequency})
			return
		}

		// merged mandatory validation for anything beyond a draft
		mergedItems := before.Items
		if patch.Items != nil {
			mergedItems = *patch.Items
		}
		patchStart := patch.Start_date.TimePtr()
		patchEnd := patch.End_date.TimePtr()
		mergedStart := before.Start_date
		if patchStart != nil {
			mergedStart = patchStart
		}
		mergedEnd := before.End_date
		if patchEnd != nil {
			mergedEnd = patchEnd
		}
		mergedFrequency := before.Frequency
		if patch.Frequency != nil {
			mergedFrequency = patch.Frequency
		}
		mergedNet := before.Total_net_amount
		if patch.Total_net_amount != nil {
			mergedNet = patch.Total_net_amount
		}
		mergedGross := before.Total_gross_amount
		if patch.Total_gross_amount != nil {
			mergedGross = patch.Total_gross_amount
		}
		if !isDraft {
			if missing := firstMissingOrderField(mergedItems, mergedStart, mergedEnd, mergedFrequency, mergedNet, mergedGross); missing != "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "field " + missing + " is required"})
				return
			}
		}

		var updateObj primitive.D
		if patch.Customer_id != nil {
			updateObj = append(updateObj, bson.E{Key: "customer_id", Value: patch.Customer_id})
		}
		if patch.Items != nil {
			updateObj = append(updateObj, bson.E{Key: "items", Value: *patch.Items})
		}
		if patch.Payment_method != nil {
			updateObj = append(updateObj, bson.E{Key: "payment_method", Value: patch.Payment_method})
		}
		if patch.Status != nil {
			updateObj = append(updateObj, bson.E{Key: "status", Value: patch.Status})
		}
		if patchStart != nil {
			updateObj = append(updateObj, bson.E{Key: "start_date", Value: patchStart})
		}
		if patchEnd != nil {
			updateObj = append(updateObj, bson.E{Key: "end_date", Value: patchEnd})
		}
		if patch.Frequency != nil {
			updateObj = append(updateObj, bson.E{Key: "frequency", Value: patch.Frequency})
		}
		if patch.Driver_id != nil {
			updateObj = append(updateObj, bson.E{Key: "driver_id", Value: patch.Driver_id})
		}
		if patch.Article_number != nil {
			updateObj = append(updateObj, bson.E{Key: "article_number", Value: patch.Article_number})
		}
		if patch.Total_net_amount != nil {
			updateObj = append(updateObj, bson.E{Key: "total_net_amount", Value: patch.Total_net_amount})
		}
		if patch.Total_gross_amount != nil {
			updateObj = append(updateObj, bson.E{Key: "total_gross_amount", Value: patch.Total_gross_amount})
		}
		if len(updateObj) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "nothing to update"})
			return
		}
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		if _, err := orderCollection.UpdateOne(ctx, bson.M{"order_id": orderId}, bson.D{{Key: "$set", Value: updateObj}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "order update failed"})
			return
		}

		var after models.Order
		if err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&after); err != nil {
			c.JSON(http.StatusOK, gin.H{"message": "order updated"})
			return
		}

		// a schedule change on a main order invalidates its generated series;
		// members are rebuilt from the freshly updated main so a combined
		// patch (say frequency plus items) never leaves them stale
		if touchesSchedule(patch) && after.Main_order && !isDraft {
			if err := regenerateSeries(ctx, c, after, *mergedStart, *mergedEnd, *mergedFrequency); err != nil {
				return
			}
		}
		helpers.RecordAudit(ctx, actor(c), models.AuditActionUpdate, "order", orderId, before, after)
		if patch.Status != nil {
			helpers.Broadcast("orderStatus", after)
		}
		c.JSON(http.StatusOK, after)
	}
}

// regenerateSeries drops every still-pending member of the main order's
// series and recreates the members from the new schedule. The main argument
// must be the already-updated document, every recreated member mirrors its
// current fields. Members that already moved past pending stay untouched.
// Writes its own error response and returns non-nil when the caller should
// stop.
func regenerateSeries(ctx context.Context, c *gin.Context, main models.Order, start time.Time, end time.Time, frequency string) error {
	if _, err := orderCollection.DeleteMany(ctx, bson.M{
		"original_order_number": main.Order_number,
		"status":                models.OrderStatusPending,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "series cleanup failed"})
		return err
	}

	dates, err := helpers.GenerateRecurringDates(start, end, frequency)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
		return err
	}
	if len(dates) < 2 {
		return nil
	}

	memberDates := dates[1:]
	numbers, err := helpers.AllocateOrderNumbers(ctx, dates[0].Year(), len(memberDates))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
		return err
	}

	now := time.Now()
	for i, date := range memberDates {
		member := seriesMember(main, numbers[i], date, now)
		if _, err := orderCollection.InsertOne(ctx, member); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": fmt.Sprintf("series member %d of %d was not recreated", i+1, len(memberDates))})
			return err
		}
	}
	return nil
}

// DeleteOrder removes a whole series no matter which member is targeted.
// Only draft and pending orders may be deleted.
func DeleteOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		orderId := c.Param("order_id")
		var order models.Order
		if err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "order not found"})
			return
		}
		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusDraft {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "state",
				"message": "only draft and pending orders can be deleted",
				"details": order.Status,
			})
			return
		}

		filter := bson.M{"order_id": orderId}
		if root := seriesRootNumber(order); root != "" {
			filter = bson.M{"$or": []bson.M{
				{"order_number": root},
				{"original_order_number": root},
			}}
		}
		result, err := orderCollection.DeleteMany(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "order delete failed"})
			return
		}

		helpers.RecordAudit(ctx, actor(c), models.AuditActionDelete, "order", order.Order_id, order, nil)
		c.JSON(http.StatusOK, gin.H{"message": "order deleted", "deletedCount": result.DeletedCount})
	}
}
