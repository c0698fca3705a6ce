package controllers

import (
	"testing"
	"time"

	"filter-delivery-backend/models"
)

func lineItem(itemId string) models.OrderLineItem {
	quantity := 1
	price := 10.0
	vat := 19.0
	net := 10.0
	gross := 11.9
	return models.OrderLineItem{
		Item_id:      &itemId,
		Quantity:     &quantity,
		Unit_price:   &price,
		Vat_rate:     &vat,
		Net_amount:   &net,
		Gross_amount: &gross,
	}
}

func TestFirstMissingOrderFieldOrder(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 14)
	frequency := models.FrequencyWeekly
	net := 100.0
	gross := 119.0
	items := []models.OrderLineItem{lineItem("item-1")}

	tests := []struct {
		name      string
		items     []models.OrderLineItem
		start     *time.Time
		end       *time.Time
		frequency *string
		net       *float64
		gross     *float64
		want      string
	}{
		{"itemsFirst", nil, nil, nil, nil, nil, nil, "items"},
		{"startDateSecond", items, nil, nil, nil, nil, nil, "startDate"},
		{"endDateThird", items, &start, nil, nil, nil, nil, "endDate"},
		{"frequencyFourth", items, &start, &end, nil, nil, nil, "frequency"},
		{"netAmountFifth", items, &start, &end, &frequency, nil, nil, "totalNetAmount"},
		{"grossAmountLast", items, &start, &end, &frequency, &net, nil, "totalGrossAmount"},
		{"complete", items, &start, &end, &frequency, &net, &gross, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := firstMissingOrderField(tt.items, tt.start, tt.end, tt.frequency, tt.net, tt.gross)
			if got != tt.want {
				t.Errorf("firstMissingOrderField() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstMissingOrderFieldEmptyFrequency(t *testing.T) {
	start := time.Now()
	end := start.AddDate(0, 0, 7)
	frequency := ""
	items := []models.OrderLineItem{lineItem("item-1")}
	if got := firstMissingOrderField(items, &start, &end, &frequency, nil, nil); got != "frequency" {
		t.Errorf("empty frequency should count as missing, got %q", got)
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, status := range models.OrderStatuses {
		if !validOrderStatus(status) {
			t.Errorf("status %q should be valid", status)
		}
	}
	for _, status := range []string{"", "shipped", "DRAFT", "Pending"} {
		if validOrderStatus(status) {
			t.Errorf("status %q should be invalid", status)
		}
	}
}

func TestTouchesSchedule(t *testing.T) {
	frequency := models.FrequencyMonthly
	now := models.FlexDate{Time: time.Now()}
	articleNumber := "AB-1"

	tests := []struct {
		name  string
		patch models.OrderUpdate
		want  bool
	}{
		{"frequency", models.OrderUpdate{Frequency: &frequency}, true},
		{"startDate", models.OrderUpdate{Start_date: &now}, true},
		{"endDate", models.OrderUpdate{End_date: &now}, true},
		{"unrelatedField", models.OrderUpdate{Article_number: &articleNumber}, false},
		{"empty", models.OrderUpdate{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := touchesSchedule(tt.patch); got != tt.want {
				t.Errorf("touchesSchedule() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeriesRootNumber(t *testing.T) {
	original := "A-2024-0001"
	tests := []struct {
		name  string
		order models.Order
		want  string
	}{
		{"mainOrder", models.Order{Order_number: "A-2024-0001", Main_order: true}, "A-2024-0001"},
		{"seriesMember", models.Order{Order_number: "A-2024-0002", Original_order_number: &original}, "A-2024-0001"},
		{"standalone", models.Order{Order_number: "A-2024-0009"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := seriesRootNumber(tt.order); got != tt.want {
				t.Errorf("seriesRootNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeriesMemberMirrorsMain(t *testing.T) {
	customer := "cust-1"
	frequency := models.FrequencyMonthly
	driver := "drv-1"
	net := 200.0
	gross := 238.0
	main := models.Order{
		Order_number:       "A-2024-0010",
		Customer_id:        &customer,
		Items:              []models.OrderLineItem{lineItem("item-9")},
		Frequency:          &frequency,
		Driver_id:          &driver,
		Main_order:         true,
		Total_net_amount:   &net,
		Total_gross_amount: &gross,
	}
	date := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	member := seriesMember(main, "A-2024-0011", date, time.Now())

	if member.Order_number != "A-2024-0011" {
		t.Errorf("order number = %q, want A-2024-0011", member.Order_number)
	}
	if member.Main_order {
		t.Error("a series member must never be the main order")
	}
	if member.Original_order_number == nil || *member.Original_order_number != main.Order_number {
		t.Errorf("originalOrderNumber = %v, want %q", member.Original_order_number, main.Order_number)
	}
	if member.Status != models.OrderStatusPending {
		t.Errorf("status = %q, want pending", member.Status)
	}
	if member.Start_date == nil || !member.Start_date.Equal(date) {
		t.Errorf("startDate = %v, want %v", member.Start_date, date)
	}
	if member.End_date == nil || !member.End_date.Equal(date) {
		t.Errorf("endDate = %v, want the member's own delivery date %v", member.End_date, date)
	}
	if len(member.Items) != 1 || *member.Items[0].Item_id != "item-9" {
		t.Errorf("member must carry the main order's current items, got %+v", member.Items)
	}
	if member.Customer_id == nil || *member.Customer_id != customer {
		t.Errorf("member must carry the main order's current customer, got %v", member.Customer_id)
	}
	if member.Frequency == nil || *member.Frequency != frequency {
		t.Errorf("member must carry the main order's current frequency, got %v", member.Frequency)
	}
	if member.Total_net_amount == nil || *member.Total_net_amount != net {
		t.Errorf("member must carry the main order's current totals, got %v", member.Total_net_amount)
	}
	if member.Order_id == "" {
		t.Error("member must get its own order id")
	}
}

func TestOrderOnDate(t *testing.T) {
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	midday := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	dayBefore := day.AddDate(0, 0, -1)
	nextDay := day.AddDate(0, 0, 1)

	tests := []struct {
		name  string
		start *time.Time
		want  bool
	}{
		{"midnightSameDay", &day, true},
		{"middaySameDay", &midday, true},
		{"dayBefore", &dayBefore, false},
		{"nextDay", &nextDay, false},
		{"noStartDate", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orderOnDate(models.Order{Start_date: tt.start}, day); got != tt.want {
				t.Errorf("orderOnDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMutateImageListAdd(t *testing.T) {
	next, err := mutateImageList([]string{"a.jpg"}, imageActionAdd, "b.jpg", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next) != 2 || next[1] != "b.jpg" {
		t.Errorf("got %v, want [a.jpg b.jpg]", next)
	}
}

func TestMutateImageListAddIsIdempotent(t *testing.T) {
	next, err := mutateImageList([]string{"a.jpg"}, imageActionAdd, "a.jpg", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next) != 1 {
		t.Errorf("adding an existing image must not duplicate it, got %v", next)
	}
}

func TestMutateImageListAddOverCap(t *testing.T) {
	full := make([]string, models.MaxOrderImages)
	for i := range full {
		full[i] = "img" + string(rune('a'+i)) + ".jpg"
	}
	if _, err := mutateImageList(full, imageActionAdd, "overflow.jpg", nil); err == nil {
		t.Fatal("expected an error when exceeding the image cap")
	}
}

func TestMutateImageListRemove(t *testing.T) {
	next, err := mutateImageList([]string{"a.jpg", "b.jpg"}, imageActionRemove, "a.jpg", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next) != 1 || next[0] != "b.jpg" {
		t.Errorf("got %v, want [b.jpg]", next)
	}
}

func TestMutateImageListRemoveMissing(t *testing.T) {
	if _, err := mutateImageList([]string{"a.jpg"}, imageActionRemove, "zz.jpg", nil); err == nil {
		t.Fatal("expected an error when removing an image not in the list")
	}
}

func TestMutateImageListReplace(t *testing.T) {
	next, err := mutateImageList([]string{"a.jpg"}, imageActionReplace, "", []string{"x.jpg", "y.jpg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next) != 2 || next[0] != "x.jpg" {
		t.Errorf("got %v, want [x.jpg y.jpg]", next)
	}
}

func TestMutateImageListReplaceWithNilClears(t *testing.T) {
	next, err := mutateImageList([]string{"a.jpg"}, imageActionReplace, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next) != 0 {
		t.Errorf("replace with nil should clear the list, got %v", next)
	}
}

func TestMutateImageListReplaceOverCap(t *testing.T) {
	tooMany := make([]string, models.MaxOrderImages+1)
	for i := range tooMany {
		tooMany[i] = "x.jpg"
	}
	if _, err := mutateImageList(nil, imageActionReplace, "", tooMany); err == nil {
		t.Fatal("expected an error when replacing with more than the cap")
	}
}

func TestMutateImageListUnknownAction(t *testing.T) {
	if _, err := mutateImageList(nil, "rotate", "a.jpg", nil); err == nil {
		t.Fatal("expected an error for an unknown action")
	}
}
