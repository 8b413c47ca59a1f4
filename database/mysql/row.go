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
	"database/sql"
	"errors"
	"fmt"

	"github.com/wentaojin/docmigrate/utils/stringutil"
)

var (
	ErrColumnNotFound = errors.New("column not found")
	ErrColumnNull     = errors.New("column value is null")
	ErrColumnType     = errors.New("column value type mismatch")
)

// Row is one result row keyed by exact column name
type Row map[string]sql.NullString

// RowMapper converts one row into a record, the first column error is kept by the reader
type RowMapper[T any] func(r *RowReader) T

// RowReader reads typed column values out of a Row and keeps the first error,
// so a mapper can read every field and check Err once
type RowReader struct {
	table string
	row   Row
	err   error
}

func NewRowReader(table string, row Row) *RowReader {
	return &RowReader{table: table, row: row}
}

func (r *RowReader) value(column string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	v, ok := r.row[column]
	if !ok {
		r.err = fmt.Errorf("table [%s] column [%s]: %w", r.table, column, ErrColumnNotFound)
		return "", false
	}
	if !v.Valid {
		r.err = fmt.Errorf("table [%s] column [%s]: %w", r.table, column, ErrColumnNull)
		return "", false
	}
	return v.String, true
}

func (r *RowReader) String(column string) string {
	s, _ := r.value(column)
	return s
}

func (r *RowReader) Uint32(column string) uint32 {
	s, ok := r.value(column)
	if !ok {
		return 0
	}
	u, err := stringutil.StrconvUintBitSize(s, 32)
	if err != nil {
		r.err = fmt.Errorf("table [%s] column [%s] value [%s] parse uint32 failed: %w: %v", r.table, column, s, ErrColumnType, err)
		return 0
	}
	return uint32(u)
}

func (r *RowReader) Float32(column string) float32 {
	s, ok := r.value(column)
	if !ok {
		return 0
	}
	f, err := stringutil.StrconvFloatBitSize(s, 32)
	if err != nil {
		r.err = fmt.Errorf("table [%s] column [%s] value [%s] parse float32 failed: %w: %v", r.table, column, s, ErrColumnType, err)
		return 0
	}
	return float32(f)
}

func (r *RowReader) Err() error {
	return r.err
}

// queryRecords runs the query and maps every row, the result set is closed
// before returning so follow-up queries can reuse the single connection
func queryRecords[T any](ctx context.Context, d *Database, table, query string, args []interface{}, mapper RowMapper[T]) ([]T, error) {
	rows, err := d.DBConn.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("query sql [%s] failed, error: [%w]", query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query rows.Columns failed, sql: [%v], error: [%w]", query, err)
	}

	values := make([]sql.NullString, len(columns))
	scans := make([]interface{}, len(columns))
	for i := range values {
		scans[i] = &values[i]
	}

	var records []T
	for rows.Next() {
		if err = rows.Scan(scans...); err != nil {
			return nil, fmt.Errorf("query rows.Scan failed, sql: [%v], error: [%w]", query, err)
		}
		row := make(Row, len(columns))
		for i, c := range columns {
			row[c] = values[i]
		}

		reader := NewRowReader(table, row)
		rec := mapper(reader)
		if err = reader.Err(); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("query rows.Next failed, sql: [%v], error: [%w]", query, err)
	}
	return records, nil
}
