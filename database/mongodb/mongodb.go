/*
Copyright © 2020 Marvin

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/wentaojin/docmigrate/utils/configutil"
	"github.com/wentaojin/docmigrate/utils/constant"
)

// ErrDuplicateDocument is returned when the collection already holds a document with the same _id
var ErrDuplicateDocument = errors.New("duplicate document identity")

type Database struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

// NewDatabase connects and pings the target, the client is held until Close
func NewDatabase(ctx context.Context, opts *configutil.MongoOptions) (*Database, error) {
	timeout := time.Duration(opts.ConnectTimeout) * time.Second
	clientOpts := options.Client().
		ApplyURI(opts.URI()).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetMaxPoolSize(1)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("error on open mongodb connection: %v", err)
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("error on ping mongodb connection: %v", err)
	}
	return &Database{
		Client:     client,
		Collection: client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// InsertDocument writes a single document, there is no upsert
func (d *Database) InsertDocument(ctx context.Context, doc bson.D) error {
	if _, err := d.Collection.InsertOne(ctx, doc); err != nil {
		return insertError(d.Collection.Name(), doc, err)
	}
	return nil
}

func insertError(collection string, doc bson.D, err error) error {
	id := documentID(doc)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert collection [%s] document [_id=%v] failed: %w, error: [%v]", collection, id, ErrDuplicateDocument, err)
	}
	return fmt.Errorf("insert collection [%s] document [_id=%v] failed, error: [%w]", collection, id, err)
}

func documentID(doc bson.D) interface{} {
	for _, e := range doc {
		if e.Key == constant.DocumentFieldID {
			return e.Value
		}
	}
	return nil
}

func (d *Database) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return d.Client.Disconnect(ctx)
}
