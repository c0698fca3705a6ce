package controllers

import (
	"fmt"
	"time"

	"filter-delivery-backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// firstMissingOrderField reports the first mandatory field a non-draft order
// is missing, in the fixed check order: items, startDate, endDate, frequency,
// totalNetAmount, totalGrossAmount. Empty string means nothing is missing.
func firstMissingOrderField(items []models.OrderLineItem, startDate *time.Time, endDate *time.Time, frequency *string, netAmount *float64, grossAmount *float64) string {
	if len(items) == 0 {
		return "items"
	}
	if startDate == nil {
		return "startDate"
	}
	if endDate == nil {
		return "endDate"
	}
	if frequency == nil || *frequency == "" {
		return "frequency"
	}
	if netAmount == nil {
		return "totalNetAmount"
	}
	if grossAmount == nil {
		return "totalGrossAmount"
	}
	return ""
}

func validOrderStatus(status string) bool {
	for _, s := range models.OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// touchesSchedule reports whether a patch changes the fields a recurring
// series is generated from.
func touchesSchedule(patch models.OrderUpdate) bool {
	return patch.Frequency != nil || patch.Start_date != nil || patch.End_date != nil
}

// seriesRootNumber resolves the canonical order number of the series an
// order belongs to, or "" for a standalone order.
func seriesRootNumber(order models.Order) string {
	if order.Main_order {
		return order.Order_number
	}
	if order.Original_order_number != nil && *order.Original_order_number != "" {
		return *order.Original_order_number
	}
	return ""
}

// seriesMember builds one generated member of a recurring series from the
// current state of its main order. Members are single deliveries: start and
// end date collapse to the delivery date, status resets to pending.
func seriesMember(main models.Order, number string, date time.Time, now time.Time) models.Order {
	memberDate := date
	member := models.Order{
		ID:                    primitive.NewObjectID(),
		Order_number:          number,
		Customer_id:           main.Customer_id,
		Items:                 main.Items,
		Payment_method:        main.Payment_method,
		Status:                models.OrderStatusPending,
		Start_date:            &memberDate,
		End_date:              &memberDate,
		Frequency:             main.Frequency,
		Driver_id:             main.Driver_id,
		Original_order_number: &main.Order_number,
		Article_number:        main.Article_number,
		Total_net_amount:      main.Total_net_amount,
		Total_gross_amount:    main.Total_gross_amount,
		Before_images:         []string{},
		After_images:          []string{},
		Created_by:            main.Created_by,
		Created_at:            now,
		Updated_at:            now,
	}
	member.Order_id = member.ID.Hex()
	return member
}

// orderOnDate reports whether an order's delivery falls on the given
// calendar day.
func orderOnDate(order models.Order, day time.Time) bool {
	if order.Start_date == nil {
		return false
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return !order.Start_date.Before(dayStart) && order.Start_date.Before(dayStart.AddDate(0, 0, 1))
}

const (
	imageActionAdd     = "add"
	imageActionRemove  = "remove"
	imageActionReplace = "replace"
)

// mutateImageList applies one image-list mutation and enforces the cap.
// add/remove work on a single filename, replace swaps the whole list.
func mutateImageList(list []string, action string, image string, images []string) ([]string, error) {
	switch action {
	case imageActionAdd:
		if image == "" {
			return nil, fmt.Errorf("image filename is required for add")
		}
		for _, existing := range list {
			if existing == image {
				return list, nil
			}
		}
		next := append(append([]string{}, list...), image)
		if len(next) > models.MaxOrderImages {
			return nil, fmt.Errorf("image list is limited to %d entries", models.MaxOrderImages)
		}
		return next, nil
	case imageActionRemove:
		if image == "" {
			return nil, fmt.Errorf("image filename is required for remove")
		}
		next := []string{}
		found := false
		for _, existing := range list {
			if existing == image {
				found = true
				continue
			}
			next = append(next, existing)
		}
		if !found {
			return nil, fmt.Errorf("image %q is not in the list", image)
		}
		return next, nil
	case imageActionReplace:
		if len(images) > models.MaxOrderImages {
			return nil, fmt.Errorf("image list is limited to %d entries", models.MaxOrderImages)
		}
		if images == nil {
			images = []string{}
		}
		return images, nil
	}
	return nil, fmt.Errorf("unknown image action %q", action)
}
