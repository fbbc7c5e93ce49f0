package auditor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// AuditCollectionName holds one document per consumed enrollment event.
const AuditCollectionName = "enrollment_audit"

// AuditHandler appends consumed events to the enrollment_audit collection.
type AuditHandler struct {
	coll *mongo.Collection
}

// NewAuditHandler constructs a handler backed by the provided database.
func NewAuditHandler(db *mongo.Database) *AuditHandler {
	return &AuditHandler{coll: db.Collection(AuditCollectionName)}
}

type auditRecord struct {
	EventType  string                 `bson:"event_type"`
	Topic      string                 `bson:"topic"`
	Partition  int                    `bson:"partition"`
	Offset     int64                  `bson:"record_offset"`
	Payload    map[string]interface{} `bson:"payload"`
	ReceivedAt time.Time              `bson:"received_at"`
}

// Handle stores the event payload in the audit collection.
func (h *AuditHandler) Handle(ctx context.Context, msg Message) error {
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	_, err := h.coll.InsertOne(ctx, auditRecord{
		EventType:  msg.EventType,
		Topic:      msg.Topic,
		Partition:  msg.Partition,
		Offset:     msg.Offset,
		Payload:    payload,
		ReceivedAt: msg.Timestamp,
	})
	return err
}
