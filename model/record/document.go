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
package record

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/wentaojin/docmigrate/utils/constant"
)

// ToDocument returns the flat user sub-document
func (u User) ToDocument() bson.D {
	return bson.D{
		{Key: "id", Value: u.ID},
		{Key: "name", Value: u.Name},
		{Key: "province", Value: u.Province},
		{Key: "register_time", Value: u.RegisterTime},
		{Key: "level_name", Value: u.LevelName},
		{Key: "is_mobile", Value: u.IsMobile},
	}
}

// ToDocument returns the flat product sub-document
func (p Product) ToDocument() bson.D {
	return bson.D{
		{Key: "id", Value: p.ID},
		{Key: "name", Value: p.Name},
		{Key: "color", Value: p.Color},
		{Key: "size", Value: p.Size},
	}
}

// ToDocument returns the comment document, _id is the embedded user id
func (c Comment) ToDocument() bson.D {
	return bson.D{
		{Key: constant.DocumentFieldID, Value: c.User.ID},
		{Key: "user", Value: c.User.ToDocument()},
		{Key: "product", Value: c.Product.ToDocument()},
		{Key: "content", Value: c.Content},
		{Key: "date", Value: c.Date},
		{Key: "reply_count", Value: int64(c.ReplyCount)},
		{Key: "score", Value: int64(c.Score)},
		{Key: "status", Value: c.Status},
		{Key: "title", Value: c.Title},
		{Key: "days", Value: int64(c.Days)},
		{Key: "tags", Value: c.Tags},
	}
}

// ToDocument returns the goods document with its comments nested in extraction order
func (g Goods) ToDocument() bson.D {
	comments := make(bson.A, 0, len(g.Comments))
	for _, c := range g.Comments {
		comments = append(comments, c.ToDocument())
	}
	return bson.D{
		{Key: constant.DocumentFieldID, Value: g.ID},
		{Key: "name", Value: g.Name},
		{Key: "comment_num", Value: int64(g.CommentNum)},
		{Key: "shop_name", Value: g.ShopName},
		{Key: "link", Value: g.Link},
		{Key: "comment_version", Value: g.CommentVersion},
		{Key: "score_1_count", Value: int64(g.Score1Count)},
		{Key: "score_2_count", Value: int64(g.Score2Count)},
		{Key: "score_3_count", Value: int64(g.Score3Count)},
		{Key: "score_4_count", Value: int64(g.Score4Count)},
		{Key: "score_5_count", Value: int64(g.Score5Count)},
		{Key: "price", Value: float64(g.Price)},
		{Key: "comments", Value: comments},
	}
}
