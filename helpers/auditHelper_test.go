package helpers

import (
	"testing"

	"filter-delivery-backend/models"
)

func changeByField(changes []models.FieldChange, field string) (models.FieldChange, bool) {
	for _, change := range changes {
		if change.Field == field {
			return change, true
		}
	}
	return models.FieldChange{}, false
}

func TestDiffDocumentsChangedField(t *testing.T) {
	oldDoc := map[string]interface{}{"status": "pending", "city": "Berlin"}
	newDoc := map[string]interface{}{"status": "in_progress", "city": "Berlin"}

	changes := DiffDocuments(oldDoc, newDoc)
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1: %v", len(changes), changes)
	}
	if changes[0].Field != "status" || changes[0].Old != "pending" || changes[0].New != "in_progress" {
		t.Errorf("unexpected change: %+v", changes[0])
	}
}

func TestDiffDocumentsAddedAndRemovedFields(t *testing.T) {
	oldDoc := map[string]interface{}{"notes": "call first"}
	newDoc := map[string]interface{}{"phone": "030123"}

	changes := DiffDocuments(oldDoc, newDoc)
	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2: %v", len(changes), changes)
	}
	if notes, ok := changeByField(changes, "notes"); !ok || notes.Old != "call first" || notes.New != nil {
		t.Errorf("removed field diffed wrong: %+v", notes)
	}
	if phone, ok := changeByField(changes, "phone"); !ok || phone.Old != nil || phone.New != "030123" {
		t.Errorf("added field diffed wrong: %+v", phone)
	}
}

func TestDiffDocumentsSkipsInternalFields(t *testing.T) {
	oldDoc := map[string]interface{}{
		"_id":           "a",
		"created_at":    "2024-01-01",
		"updated_at":    "2024-01-01",
		"password":      "hash1",
		"token":         "t1",
		"refresh_token": "r1",
		"status":        "active",
	}
	newDoc := map[string]interface{}{
		"_id":           "b",
		"created_at":    "2024-02-02",
		"updated_at":    "2024-02-02",
		"password":      "hash2",
		"token":         "t2",
		"refresh_token": "r2",
		"status":        "active",
	}
	if changes := DiffDocuments(oldDoc, newDoc); len(changes) != 0 {
		t.Fatalf("internal fields leaked into the diff: %v", changes)
	}
}

func TestDiffDocumentsDeepEquality(t *testing.T) {
	oldDoc := map[string]interface{}{"items": []interface{}{map[string]interface{}{"quantity": 2}}}
	sameDoc := map[string]interface{}{"items": []interface{}{map[string]interface{}{"quantity": 2}}}
	if changes := DiffDocuments(oldDoc, sameDoc); len(changes) != 0 {
		t.Fatalf("deep-equal nested values reported as changed: %v", changes)
	}

	changedDoc := map[string]interface{}{"items": []interface{}{map[string]interface{}{"quantity": 3}}}
	if changes := DiffDocuments(oldDoc, changedDoc); len(changes) != 1 {
		t.Fatalf("nested change not detected: %v", changes)
	}
}

func TestDiffDocumentsSortedByFieldName(t *testing.T) {
	oldDoc := map[string]interface{}{"zeta": 1, "alpha": 1, "mid": 1}
	newDoc := map[string]interface{}{"zeta": 2, "alpha": 2, "mid": 2}
	changes := DiffDocuments(oldDoc, newDoc)
	if len(changes) != 3 {
		t.Fatalf("got %d changes, want 3", len(changes))
	}
	if changes[0].Field != "alpha" || changes[1].Field != "mid" || changes[2].Field != "zeta" {
		t.Errorf("changes not sorted by field name: %v", changes)
	}
}

func TestNormalizeDocumentUsesStorageKeys(t *testing.T) {
	customer := models.Customer{Status: "active", Deleted: false}
	doc := NormalizeDocument(customer)
	if doc["status"] != "active" {
		t.Errorf(`doc["status"] = %v, want "active"`, doc["status"])
	}
	if _, ok := doc["deleted"]; !ok {
		t.Error("expected storage key deleted to be present")
	}
}

func TestNormalizeDocumentNil(t *testing.T) {
	doc := NormalizeDocument(nil)
	if len(doc) != 0 {
		t.Fatalf("nil document should normalize to an empty map, got %v", doc)
	}
}
