package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// New connects and pings before the caller starts serving traffic.
func New(ctx context.Context, uri, name string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &DB{Client: client, Database: client.Database(name)}, nil
}

func (d *DB) Books() *mongo.Collection { return d.Database.Collection("books") }

func (d *DB) Close(ctx context.Context) error { return d.Client.Disconnect(ctx) }
