package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo implements Store on top of a MongoDB database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo dials the database and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Mongo{client: client, db: client.Database(database)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Insert(ctx context.Context, collection string, doc any) (string, error) {
	res, err := m.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", wrapDriverErr(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		return id.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (m *Mongo) Find(ctx context.Context, collection string, filter Filter, limit int64, out any) error {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := m.db.Collection(collection).Find(ctx, bson.M(filter), opts)
	if err != nil {
		return wrapDriverErr(err)
	}
	defer cur.Close(ctx)

	if err := cur.All(ctx, out); err != nil {
		return wrapDriverErr(err)
	}
	return nil
}

func (m *Mongo) FindOne(ctx context.Context, collection string, filter Filter, out any) error {
	err := m.db.Collection(collection).FindOne(ctx, bson.M(filter)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return wrapDriverErr(err)
	}
	return nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return wrapDriverErr(err)
	}
	return nil
}

func (m *Mongo) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := m.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, wrapDriverErr(err)
	}
	return names, nil
}

// EnsureIndexes creates the uniqueness constraints the data model relies on:
// employee.nik is the natural key, session.token resolves bearer tokens.
// task.nik backs the owner-scoped listing.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(CollectionEmployee).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "nik", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return wrapDriverErr(err)
	}

	_, err = m.db.Collection(CollectionSession).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return wrapDriverErr(err)
	}

	_, err = m.db.Collection(CollectionTask).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "nik", Value: 1}},
	})
	return wrapDriverErr(err)
}

// wrapDriverErr folds driver failures into ErrUnavailable so every dependent
// operation fails with the same store condition, distinct from ErrNotFound.
func wrapDriverErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
