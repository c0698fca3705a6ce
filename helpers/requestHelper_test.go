package helpers

import (
	"strings"
	"testing"

	"filter-delivery-backend/models"
)

func TestDecodeStrictAcceptsKnownFields(t *testing.T) {
	body := `{"firstName": "Ada", "city": "Berlin"}`
	var patch models.CustomerUpdate
	if err := DecodeStrict(strings.NewReader(body), &patch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patch.First_name == nil || *patch.First_name != "Ada" {
		t.Errorf("firstName not decoded: %+v", patch)
	}
	if patch.City == nil || *patch.City != "Berlin" {
		t.Errorf("city not decoded: %+v", patch)
	}
}

func TestDecodeStrictRejectsUnknownField(t *testing.T) {
	body := `{"firstName": "Ada", "mainOrder": true}`
	var patch models.CustomerUpdate
	err := DecodeStrict(strings.NewReader(body), &patch)
	if err == nil {
		t.Fatal("expected an error for an unknown field")
	}
	if !strings.Contains(err.Error(), "cannot be updated") {
		t.Errorf("error should name the rejected field problem, got: %v", err)
	}
}

func TestDecodeStrictRejectsTrailingDocument(t *testing.T) {
	body := `{"firstName": "Ada"} {"firstName": "Eve"}`
	var patch models.CustomerUpdate
	if err := DecodeStrict(strings.NewReader(body), &patch); err == nil {
		t.Fatal("expected an error for trailing JSON")
	}
}

func TestDecodeStrictRejectsMalformedBody(t *testing.T) {
	var patch models.OrderUpdate
	if err := DecodeStrict(strings.NewReader(`{"status": `), &patch); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
