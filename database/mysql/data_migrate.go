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
package mysql

import (
	"context"
	"fmt"

	"github.com/wentaojin/docmigrate/model/record"
	"github.com/wentaojin/docmigrate/utils/constant"
	"github.com/wentaojin/docmigrate/utils/stringutil"
)

func (d *Database) CountRows(ctx context.Context, kind string) (uint64, error) {
	table, err := d.tableName(kind)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, stringutil.QuoteIdentifier(table))

	var count uint64
	if err = d.DBConn.WithContext(ctx).Raw(query).Row().Scan(&count); err != nil {
		return 0, fmt.Errorf("count table [%s] rows failed, sql: [%s], error: [%w]", table, query, err)
	}
	return count, nil
}

func (d *Database) GetGoodsByPage(ctx context.Context, offset, size uint64) ([]record.Goods, error) {
	goods, err := fetchPage(ctx, d, d.GoodsTable, offset, size, mapGoods)
	if err != nil {
		return nil, err
	}
	for i := range goods {
		comments, err := d.GetCommentsByGoods(ctx, goods[i].ID)
		if err != nil {
			return nil, err
		}
		goods[i].Comments = comments
	}
	return goods, nil
}

func (d *Database) GetCommentsByPage(ctx context.Context, offset, size uint64) ([]record.Comment, error) {
	return fetchPage(ctx, d, d.CommentTable, offset, size, mapComment)
}

func (d *Database) GetCommentsByGoods(ctx context.Context, goodsID string) ([]record.Comment, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE %s = ?`,
		stringutil.QuoteIdentifier(d.CommentTable), stringutil.QuoteIdentifier(constant.CommentColumnGoodsID))
	return queryRecords(ctx, d, d.CommentTable, query, []interface{}{goodsID}, mapComment)
}

// fetchPage reads the rows [offset, offset+size) in the table's default scan order
func fetchPage[T any](ctx context.Context, d *Database, table string, offset, size uint64, mapper RowMapper[T]) ([]T, error) {
	query := fmt.Sprintf(`SELECT * FROM %s LIMIT ?, ?`, stringutil.QuoteIdentifier(table))
	return queryRecords(ctx, d, table, query, []interface{}{offset, size}, mapper)
}

func mapGoods(r *RowReader) record.Goods {
	return record.Goods{
		ID:             r.String(constant.GoodsColumnID),
		Name:           r.String(constant.GoodsColumnName),
		CommentNum:     r.Uint32(constant.GoodsColumnCommentNum),
		ShopName:       r.String(constant.GoodsColumnShopName),
		Link:           r.String(constant.GoodsColumnLink),
		CommentVersion: r.String(constant.GoodsColumnCommentVersion),
		Score1Count:    r.Uint32(constant.GoodsColumnScore1Count),
		Score2Count:    r.Uint32(constant.GoodsColumnScore2Count),
		Score3Count:    r.Uint32(constant.GoodsColumnScore3Count),
		Score4Count:    r.Uint32(constant.GoodsColumnScore4Count),
		Score5Count:    r.Uint32(constant.GoodsColumnScore5Count),
		Price:          r.Float32(constant.GoodsColumnPrice),
	}
}

func mapComment(r *RowReader) record.Comment {
	return record.Comment{
		User: record.User{
			ID:           r.String(constant.CommentColumnUserID),
			Name:         r.String(constant.CommentColumnUserName),
			Province:     r.String(constant.CommentColumnUserProvince),
			RegisterTime: r.String(constant.CommentColumnUserRegisterTime),
			LevelName:    r.String(constant.CommentColumnUserLevelName),
			IsMobile:     r.String(constant.CommentColumnIsMobile),
		},
		Product: record.Product{
			ID:    r.String(constant.CommentColumnGoodsID),
			Name:  r.String(constant.CommentColumnGoodsName),
			Color: r.String(constant.CommentColumnProductColor),
			Size:  r.String(constant.CommentColumnProductSize),
		},
		Content:    r.String(constant.CommentColumnContent),
		Date:       r.String(constant.CommentColumnDate),
		ReplyCount: r.Uint32(constant.CommentColumnReplyCount),
		Score:      r.Uint32(constant.CommentColumnScore),
		Status:     r.String(constant.CommentColumnStatus),
		Title:      r.String(constant.CommentColumnTitle),
		Days:       r.Uint32(constant.CommentColumnDays),
		Tags:       r.String(constant.CommentColumnTags),
	}
}
