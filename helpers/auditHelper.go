package helpers

import (
	"context"
	"reflect"
	"sort"
	"time"

	"filter-delivery-backend/database"
	"filter-delivery-backend/models"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var auditCollection *mongo.Collection = database.OpenCollection(database.Client, "audit")

// auditIgnoredFields never show up in a diff. Diffs are keyed by storage
// field names so a revert can replay them with a plain $set.
var auditIgnoredFields = map[string]bool{
	"_id":           true,
	"created_at":    true,
	"updated_at":    true,
	"password":      true,
	"token":         true,
	"refresh_token": true,
}

// NormalizeDocument flattens any document into its storage shape so diffs
// compare serialized values instead of Go types. A nil document becomes an
// empty map (creates diff against nothing, deletes diff to nothing).
func NormalizeDocument(doc interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	if doc == nil {
		return out
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return out
	}
	var decoded bson.M
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}(decoded)
}

// DiffDocuments produces the per-field old/new pairs between two normalized
// documents, skipping internal and credential fields. Fields are compared by
// deep equality on their decoded bson representation.
func DiffDocuments(oldDoc map[string]interface{}, newDoc map[string]interface{}) []models.FieldChange {
	fields := map[string]bool{}
	for k := range oldDoc {
		fields[k] = true
	}
	for k := range newDoc {
		fields[k] = true
	}

	names := make([]string, 0, len(fields))
	for k := range fields {
		if auditIgnoredFields[k] {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)

	var changes []models.FieldChange
	for _, name := range names {
		oldVal, newVal := oldDoc[name], newDoc[name]
		if reflect.DeepEqual(oldVal, newVal) {
			continue
		}
		changes = append(changes, models.FieldChange{Field: name, Old: oldVal, New: newVal})
	}
	return changes
}

// RecordAudit diffs two document snapshots and appends the change record.
// Best effort only: every failure is logged and swallowed, the primary
// mutation is never rolled back or failed because of its audit entry.
func RecordAudit(ctx context.Context, actor models.AuthUser, action string, collection string, documentID string, oldDoc interface{}, newDoc interface{}) {
	changes := DiffDocuments(NormalizeDocument(oldDoc), NormalizeDocument(newDoc))
	if action == models.AuditActionUpdate && len(changes) == 0 {
		return
	}

	record := models.AuditRecord{
		ID:          primitive.NewObjectID(),
		User_id:     actor.User_id,
		User_name:   actor.Name,
		Action:      action,
		Collection:  collection,
		Document_id: documentID,
		Changes:     changes,
		Timestamp:   time.Now(),
	}
	record.Audit_id = record.ID.Hex()
	if meta, ok := ctx.Value(auditMetaKey{}).(AuditMeta); ok {
		record.Request_ip = meta.IP
		record.Request_uri = meta.URI
	}

	if _, err := auditCollection.InsertOne(ctx, record); err != nil {
		log.Error().Err(err).
			Str("collection", collection).
			Str("document_id", documentID).
			Str("action", action).
			Msg("audit write failed")
	}
}

// AuditMeta is request metadata attached to audit records.
type AuditMeta struct {
	IP  string
	URI string
}

type auditMetaKey struct{}

// WithAuditMeta stores request metadata for RecordAudit to pick up.
func WithAuditMeta(ctx context.Context, meta AuditMeta) context.Context {
	return context.WithValue(ctx, auditMetaKey{}, meta)
}
