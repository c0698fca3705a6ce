package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusDraft                = "draft"
	OrderStatusPending              = "pending"
	OrderStatusInProgress           = "in_progress"
	OrderStatusOutForDelivery       = "out_for_delivery"
	OrderStatusDelivered            = "delivered"
	OrderStatusDenied               = "denied"
	OrderStatusCustomerNotAvailable = "customer_not_available"
	OrderStatusCompleted            = "completed"
	OrderStatusCancelled            = "cancelled"
	OrderStatusPaused               = "paused"
)

var OrderStatuses = []string{
	OrderStatusDraft,
	OrderStatusPending,
	OrderStatusInProgress,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusDenied,
	OrderStatusCustomerNotAvailable,
	OrderStatusCompleted,
	OrderStatusCancelled,
	OrderStatusPaused,
}

const (
	FrequencyDaily        = "daily"
	FrequencyWeekdays     = "weekdays"
	FrequencyTwiceInAWeek = "twice_in_a_week"
	FrequencyWeekly       = "weekly"
	FrequencyEvery2ndWeek = "every_2nd_week"
	FrequencyEvery3rdWeek = "every_3rd_week"
	FrequencyEvery5thWeek = "every_5th_week"
	FrequencyEvery6thWeek = "every_6th_week"
	FrequencyEvery8thWeek = "every_8th_week"
	FrequencyMonthly      = "monthly"
	FrequencyQuarterly    = "quarterly"
	FrequencySemiAnnually = "semi_annually"
	FrequencyAnnually     = "annually"
	FrequencyOneTime      = "one_time"
)

// MaxOrderImages caps each of the two image lists per order.
const MaxOrderImages = 10

// OrderLineItem amounts are stored as sent, never recomputed.
type OrderLineItem struct {
	Item_id      *string  `json:"itemId" validate:"required"`
	Quantity     *int     `json:"quantity" validate:"required,gt=0"`
	Unit_price   *float64 `json:"unitPrice" validate:"required"`
	Vat_rate     *float64 `json:"vatRate" validate:"required"`
	Net_amount   *float64 `json:"netAmount" validate:"required"`
	Gross_amount *float64 `json:"grossAmount" validate:"required"`
}

// Order is a single delivery. A recurring series is a set of orders
// sharing one lineage: exactly one carries Main_order=true and its
// Order_number is every sibling's Original_order_number.
type Order struct {
	ID                    primitive.ObjectID `bson:"_id" json:"-"`
	Order_id              string             `json:"orderId"`
	Order_number          string             `json:"orderNumber"`
	Customer_id           *string            `json:"customer" validate:"required"`
	Items                 []OrderLineItem    `json:"items"`
	Payment_method        *string            `json:"paymentMethod"`
	Status                string             `json:"status"`
	Start_date            *time.Time         `json:"startDate"`
	End_date              *time.Time         `json:"endDate"`
	Frequency             *string            `json:"frequency"`
	Driver_id             *string            `json:"assignedDriver"`
	Main_order            bool               `json:"mainOrder"`
	Original_order_number *string            `json:"originalOrderNumber"`
	Delivery_sequence     *int               `json:"deliverySequence"`
	Article_number        *string            `json:"articleNumber"`
	Total_net_amount      *float64           `json:"totalNetAmount"`
	Total_gross_amount    *float64           `json:"totalGrossAmount"`
	Before_images         []string           `json:"beforeImages"`
	After_images          []string           `json:"afterImages"`
	Created_by            *string            `json:"createdBy"`
	Created_at            time.Time          `json:"createdAt"`
	Updated_at            time.Time          `json:"updatedAt"`
}

// OrderCreate is the request body for POST /orders.
type OrderCreate struct {
	Customer_id        *string         `json:"customer" validate:"required"`
	Items              []OrderLineItem `json:"items"`
	Payment_method     *string         `json:"paymentMethod"`
	Status             *string         `json:"status"`
	Start_date         *FlexDate       `json:"startDate"`
	End_date           *FlexDate       `json:"endDate"`
	Frequency          *string         `json:"frequency"`
	Driver_id          *string         `json:"assignedDriver"`
	Article_number     *string         `json:"articleNumber"`
	Total_net_amount   *float64        `json:"totalNetAmount"`
	Total_gross_amount *float64        `json:"totalGrossAmount"`
}

// OrderUpdate is the full patchable surface for PATCH /orders/:order_id.
// Anything outside this struct rejects the update.
type OrderUpdate struct {
	Customer_id        *string          `json:"customer"`
	Items              *[]OrderLineItem `json:"items"`
	Payment_method     *string          `json:"paymentMethod"`
	Status             *string          `json:"status"`
	Start_date         *FlexDate        `json:"startDate"`
	End_date           *FlexDate        `json:"endDate"`
	Frequency          *string          `json:"frequency"`
	Driver_id          *string          `json:"assignedDriver"`
	Article_number     *string          `json:"articleNumber"`
	Total_net_amount   *float64         `json:"totalNetAmount"`
	Total_gross_amount *float64         `json:"totalGrossAmount"`
}
