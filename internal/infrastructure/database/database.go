package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"uploadgate/pkg/logger"
)

const UploadCollection = "upload"

type Database struct {
	DBName       string
	QueryTimeout time.Duration
	Client       *mongo.Client
}

func Connect(cfg Config) (*Database, error) {
	logger.Info("connecting to database", "db", cfg.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectionTimeout)*time.Millisecond)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(time.Duration(cfg.ConnectionTimeout) * time.Millisecond).
		SetBSONOptions(&options.BSONOptions{
			NilSliceAsEmpty: true,
		})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	qCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.QueryTimeout)*time.Millisecond)
	defer cancel()

	if err := client.Ping(qCtx, nil); err != nil {
		return nil, err
	}

	db := &Database{
		Client:       client,
		DBName:       cfg.DBName,
		QueryTimeout: time.Duration(cfg.QueryTimeout) * time.Millisecond,
	}

	if err := initUploadCollection(db); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *Database) collection() *mongo.Collection {
	return db.Client.Database(db.DBName).Collection(UploadCollection)
}

func initUploadCollection(db *Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), db.QueryTimeout)
	defer cancel()

	collections, err := db.Client.Database(db.DBName).ListCollectionNames(ctx, bson.M{"name": UploadCollection})
	if err != nil {
		return err
	}
	if len(collections) > 0 {
		return nil // already exists
	}

	collOpts := options.CreateCollection().SetValidator(bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"_id", "name", "path", "size", "sha256", "upload_time"},
			"properties": bson.M{
				"_id": bson.M{
					"bsonType":    "string",
					"minLength":   36,
					"maxLength":   36,
					"description": "must be a uuid",
				},
				"name":          bson.M{"bsonType": "string", "minLength": 1},
				"original_name": bson.M{"bsonType": "string"},
				"path":          bson.M{"bsonType": "string"},
				"size":          bson.M{"bsonType": "long", "minimum": 0},
				"mime_type":     bson.M{"bsonType": "string"},
				"kind": bson.M{
					"enum": []string{"PNG", "JPEG", "GIF", "UNKNOWN"},
				},
				"sha256": bson.M{
					"bsonType": "string",
					"pattern":  "^[a-f0-9]{64}$",
				},
				"decoder":        bson.M{"bsonType": "string"},
				"mirror_address": bson.M{"bsonType": "string"},
				"mirror_bucket":  bson.M{"bsonType": "string"},
				"mirror_key":     bson.M{"bsonType": "string"},
				"upload_time":    bson.M{"bsonType": "date"},
				"author":         bson.M{"bsonType": "string"},
			},
		},
	})

	err = db.Client.Database(db.DBName).CreateCollection(ctx, UploadCollection, collOpts)
	if err != nil {
		return err
	}

	_, err = db.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "upload_time", Value: -1}}},
		{Keys: bson.D{{Key: "sha256", Value: 1}}},
	})

	return err
}

func (db *Database) Stop() error {
	if err := db.Client.Disconnect(context.Background()); err != nil {
		return err
	}

	return nil
}
