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
package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/wentaojin/docmigrate/model/record"
)

// IDatabaseExtractor reads the relational source page by page
type IDatabaseExtractor interface {
	CountRows(ctx context.Context, kind string) (uint64, error)
	GetGoodsByPage(ctx context.Context, offset, size uint64) ([]record.Goods, error)
	GetCommentsByPage(ctx context.Context, offset, size uint64) ([]record.Comment, error)
	GetCommentsByGoods(ctx context.Context, goodsID string) ([]record.Comment, error)
	Close() error
}

// IDatabaseLoader writes one document at a time into the target collection
type IDatabaseLoader interface {
	InsertDocument(ctx context.Context, doc bson.D) error
	Close() error
}
