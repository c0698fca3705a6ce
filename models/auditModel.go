package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// FieldChange is one before/after pair inside an audit record.
type FieldChange struct {
	Field string      `json:"field"`
	Old   interface{} `json:"old" bson:"old"`
	New   interface{} `json:"new" bson:"new"`
}

// AuditRecord is append-only. Reverting one replays the old values and is
// itself logged as a fresh update record.
type AuditRecord struct {
	ID          primitive.ObjectID `bson:"_id" json:"-"`
	Audit_id    string             `json:"auditId"`
	User_id     string             `json:"userId"`
	User_name   string             `json:"userName"`
	Action      string             `json:"action"`
	Collection  string             `json:"collection" bson:"collection"`
	Document_id string             `json:"documentId"`
	Changes     []FieldChange      `json:"changes"`
	Request_ip  string             `json:"requestIp"`
	Request_uri string             `json:"requestUri"`
	Timestamp   time.Time          `json:"timestamp" bson:"timestamp"`
}
