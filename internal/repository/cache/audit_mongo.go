package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const auditCollection = "muhurat_cache_audit"

// MongoAudit persists cache writes for offline inspection. Each Record
// call upserts by cache key so the collection holds the latest payload
// per key plus the write history count.
type MongoAudit struct {
	coll *mongo.Collection
}

// NewMongoAudit returns an AuditStore over the given database.
func NewMongoAudit(db *mongo.Database) *MongoAudit {
	return &MongoAudit{coll: db.Collection(auditCollection)}
}

// Record upserts the audit row for key.
func (a *MongoAudit) Record(ctx context.Context, key, value string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"cache_key":  key,
			"payload":    value,
			"written_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"created_at": now,
		},
		"$inc": bson.M{"write_count": 1},
	}
	_, err := a.coll.UpdateOne(ctx, bson.M{"cache_key": key}, update,
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("record cache audit %s: %w", key, err)
	}
	return nil
}
