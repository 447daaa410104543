package recorder

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"CrossSentinel/internal/model"
)

const mongoCollection = "scans"

// MongoRecorder stores one document per scan run.
type MongoRecorder struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoRecorder connects to uri and ensures the started_at index exists.
func NewMongoRecorder(ctx context.Context, uri, database string) (*MongoRecorder, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(database).Collection(mongoCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "started_at", Value: -1}},
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("create index: %w", err)
	}

	log.Printf("[INFO] mongo recorder connected: %s.%s", database, mongoCollection)
	return &MongoRecorder{client: client, collection: coll}, nil
}

func (r *MongoRecorder) RecordScan(ctx context.Context, res *model.ScanResult) error {
	if _, err := r.collection.InsertOne(ctx, NewScanRecord(res)); err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	return nil
}

func (r *MongoRecorder) Close() error {
	log.Println("[INFO] closing mongo recorder")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}
